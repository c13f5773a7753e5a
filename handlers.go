package main

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

func (ws *WebServer) showPortfolio(c *gin.Context) {
	var errMsg string
	summaries, totals, err := ws.tracker.PortfolioSummary()
	if err != nil {
		errMsg = "Failed to load portfolio: " + err.Error()
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Tickers":   summaries,
		"Portfolio": totals,
		"Error":     errMsg,
	})
}

func (ws *WebServer) createTrade(c *gin.Context) {
	ticker := ws.tracker.canon.Canonicalize(c.PostForm("ticker"))
	buyDate := strings.TrimSpace(c.PostForm("buy_date"))
	buyPrice := parseFloatOr(c.PostForm("buy_price"), 0)
	qty := parseFloatOr(c.PostForm("qty"), 1)

	if ticker == "" || !isValidDate(buyDate) || buyPrice <= 0 || qty <= 0 {
		c.Redirect(http.StatusFound, "/")
		return
	}

	if _, err := ws.tracker.database.InsertTrade(ticker, buyDate, buyPrice, qty); err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.Redirect(http.StatusFound, tickerPath(ticker))
}

func (ws *WebServer) showTicker(c *gin.Context) {
	raw := c.Param("ticker")
	ticker := ws.tracker.canon.Canonicalize(raw)
	rangeKey := strings.ToLower(c.Query("range"))

	// Keep one URL per security: a non-canonical path spelling redirects
	// to the canonical one, preserving the range selection.
	if ticker != raw {
		target := tickerPath(ticker)
		if rangeKey != "" {
			target += "?range=" + url.QueryEscape(rangeKey)
		}
		c.Redirect(http.StatusFound, target)
		return
	}

	trades, payload, usedKey, err := ws.tracker.ChartData(ticker, rangeKey)
	if err != nil {
		msg := "Failed to load trades: " + err.Error()
		if errors.Is(err, ErrNoQuotes) {
			msg = "No quotes available for this range."
		}
		ws.renderTicker(c, ticker, usedKey, trades, nil, msg)
		return
	}
	ws.renderTicker(c, ticker, usedKey, trades, payload, "")
}

func (ws *WebServer) renderTicker(c *gin.Context, ticker, rangeKey string, trades []Trade, payload *ChartPayload, errMsg string) {
	var chartJSON template.JS
	if payload != nil {
		if data, err := json.Marshal(payload); err == nil {
			chartJSON = template.JS(data)
		}
	}
	c.HTML(http.StatusOK, "ticker.html", gin.H{
		"Ticker":       ticker,
		"Trades":       trades,
		"Chart":        payload,
		"ChartJSON":    chartJSON,
		"RangeKey":     rangeKey,
		"RangeOptions": RangeOptions(),
		"Error":        errMsg,
	})
}

func (ws *WebServer) deleteTrade(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	ticker, found, err := ws.tracker.database.DeleteTrade(id)
	if err != nil || !found {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.Redirect(http.StatusFound, tickerPath(ticker))
}

func (ws *WebServer) updateTrade(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	existing, err := ws.tracker.database.GetTrade(id)
	if err != nil || existing == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	ticker := ws.tracker.canon.Canonicalize(c.PostForm("ticker"))
	buyDate := strings.TrimSpace(c.PostForm("buy_date"))
	buyPrice := parseFloatOr(c.PostForm("buy_price"), 0)
	qty := parseFloatOr(c.PostForm("qty"), 0)

	if ticker == "" || !isValidDate(buyDate) || buyPrice <= 0 || qty <= 0 {
		c.Redirect(http.StatusFound, tickerPath(existing.Ticker))
		return
	}

	if _, err := ws.tracker.database.UpdateTrade(id, ticker, buyDate, buyPrice, qty); err != nil {
		c.Redirect(http.StatusFound, tickerPath(existing.Ticker))
		return
	}
	c.Redirect(http.StatusFound, tickerPath(ticker))
}

func tickerPath(ticker string) string {
	return "/ticker/" + url.PathEscape(ticker)
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	return uint(id), err
}

// parseFloatOr mirrors the form semantics: an empty field takes the
// default, an unparseable one is invalid (0).
func parseFloatOr(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func isValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}
