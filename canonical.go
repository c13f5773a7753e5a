package main

import (
	"strings"
)

// Canonicalizer resolves user-entered ticker symbols to one canonical
// spelling. Every boundary that accepts a ticker (forms, path params,
// provider lookups) must go through the same Canonicalize call so a
// security never ends up stored under two spellings.
type Canonicalizer struct {
	aliases map[string]string
}

// NewCanonicalizer builds a canonicalizer from an alias table. Keys and
// values are normalized, and alias chains (A->B, B->C) are flattened to
// their final symbol so Canonicalize is idempotent.
func NewCanonicalizer(aliases map[string]string) *Canonicalizer {
	norm := make(map[string]string, len(aliases))
	for from, to := range aliases {
		norm[normalizeSymbol(from)] = normalizeSymbol(to)
	}
	for from, to := range norm {
		seen := 0
		for {
			next, ok := norm[to]
			if !ok || next == to || seen > len(norm) {
				break
			}
			to = next
			seen++
		}
		norm[from] = to
	}
	return &Canonicalizer{aliases: norm}
}

// Canonicalize upper-cases and trims the raw symbol, then resolves it
// through the alias table.
func (c *Canonicalizer) Canonicalize(raw string) string {
	sym := normalizeSymbol(raw)
	if canonical, ok := c.aliases[sym]; ok {
		return canonical
	}
	return sym
}

// Aliases returns the flattened alias table, keyed by old symbol.
func (c *Canonicalizer) Aliases() map[string]string {
	return c.aliases
}

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
