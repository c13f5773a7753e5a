package main

// AggregatePortfolio joins per-ticker store aggregates with live prices.
// priceLookup returns (price, true) when a quote is available; a missing
// quote leaves the row's price, market value and profit nil rather than
// zero. Portfolio value only sums rows with a known price; profit is
// value minus invested, or 0 when there are no rows at all.
func AggregatePortfolio(rows []TickerAggregate, priceLookup func(ticker string) (float64, bool)) ([]TickerSummary, PortfolioTotals) {
	summaries := make([]TickerSummary, 0, len(rows))
	var totals PortfolioTotals

	for _, row := range rows {
		summary := TickerSummary{
			Ticker:   row.Ticker,
			Trades:   row.Trades,
			TotalQty: row.TotalQty,
			Invested: row.Invested,
		}
		if price, ok := priceLookup(row.Ticker); ok {
			value := row.TotalQty * price
			profit := value - row.Invested
			summary.CurrentPrice = &price
			summary.MarketValue = &value
			summary.Profit = &profit
			totals.Value += value
		}
		totals.Invested += summary.Invested
		summaries = append(summaries, summary)
	}

	if len(rows) > 0 {
		totals.Profit = totals.Value - totals.Invested
	}
	return summaries, totals
}
