package analysis

import (
	"strings"

	"github.com/sitshu/stock-analyst/internal/provider"
)

// Analyzer runs the per-request analytic pipeline against a market-data
// fetcher. It holds no mutable state; every call recomputes from provider
// data.
type Analyzer struct {
	Fetcher provider.Fetcher
}

// New creates an Analyzer backed by the given fetcher.
func New(fetcher provider.Fetcher) *Analyzer {
	return &Analyzer{Fetcher: fetcher}
}

func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

func ptr(v float64) *float64 { return &v }

func roundPtr(p *float64, places int) *float64 {
	if p == nil {
		return nil
	}
	return ptr(roundTo(*p, places))
}
