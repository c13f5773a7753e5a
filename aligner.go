package main

import (
	"strconv"
	"time"
)

// chartZone is the single zone all bar timestamps are rendered in, so
// that two bars at the same instant always format to the same label
// regardless of the offset they arrived with.
var chartZone = func() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.UTC
	}
	return loc
}()

const (
	dateLayout     = "2006-01-02"
	intradayLayout = "2006-01-02 15:04"
)

// BuildChartPayload maps a ticker's trades onto a fetched price series.
// Bars must be time-ordered ascending (the provider's contract). Every
// trade yields exactly one BuyPoint, in input order: either pinned to
// the first bar of its buy date, or a fallback point at the trade's own
// recorded date and price when no bar exists for that date.
func BuildChartPayload(bars []PriceBar, trades []Trade, rangeKey string) (*ChartPayload, error) {
	if len(bars) == 0 {
		return nil, ErrNoQuotes
	}
	key, params := ResolveRange(rangeKey)

	layout := dateLayout
	if params.Intraday {
		layout = intradayLayout
	}

	labels := make([]string, 0, len(bars))
	prices := make([]float64, 0, len(bars))
	for _, bar := range bars {
		labels = append(labels, bar.Timestamp.In(chartZone).Format(layout))
		prices = append(prices, bar.Close)
	}

	// Date-keyed index over the bars: first bar of each calendar date
	// wins, so intraday trades pin to the day's opening bar. Insert only
	// when the key is absent.
	type dayBar struct {
		label string
		price float64
	}
	byDate := make(map[string]dayBar, len(bars))
	for i, label := range labels {
		date := label
		if len(date) > len(dateLayout) {
			date = date[:len(dateLayout)]
		}
		if _, ok := byDate[date]; !ok {
			byDate[date] = dayBar{label: label, price: prices[i]}
		}
	}

	buys := make([]BuyPoint, 0, len(trades))
	for _, tr := range trades {
		point := BuyPoint{
			X:     tr.BuyDate,
			Y:     tr.BuyPrice,
			Label: "Buy " + tr.Ticker + ": " + formatAmount(tr.BuyPrice) + " x" + formatAmount(tr.Qty),
		}
		if matched, ok := byDate[tr.BuyDate]; ok {
			point.X = matched.label
			point.Y = matched.price
		}
		buys = append(buys, point)
	}

	return &ChartPayload{
		Labels:   labels,
		Prices:   prices,
		Current:  prices[len(prices)-1],
		RangeKey: key,
		Buys:     buys,
	}, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
