package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/sitshu/stock-analyst/internal/indicator"
	"github.com/sitshu/stock-analyst/internal/model"
	"github.com/sitshu/stock-analyst/internal/provider"
)

// DefaultEarningsLimit bounds how many earnings events a reaction analysis
// considers.
const DefaultEarningsLimit = 12

// EarningsEvents returns a ticker's earnings records, newest first.
func (a *Analyzer) EarningsEvents(ticker string, limit int) ([]model.EarningsEvent, error) {
	ticker = normalizeTicker(ticker)
	if limit <= 0 {
		limit = DefaultEarningsLimit
	}
	events, err := a.Fetcher.EarningsDates(ticker, limit)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []model.EarningsEvent{}
	}
	return events, nil
}

// Reaction aligns a ticker's earnings events to its price history and
// computes post-announcement reaction statistics. Missing data degrades to
// absent fields, never to a failure.
func (a *Analyzer) Reaction(ticker string, limit int) (*model.ReactionReport, error) {
	ticker = normalizeTicker(ticker)
	events, err := a.EarningsEvents(ticker, limit)
	if err != nil {
		return nil, err
	}
	report := &model.ReactionReport{Ticker: ticker, Items: []model.ReactionItem{}}
	if len(events) == 0 {
		return report, nil
	}

	earliest := events[0].ReportDate.Time
	for _, e := range events {
		if e.ReportDate.Before(earliest) {
			earliest = e.ReportDate.Time
		}
	}
	// 20 calendar days of warm-up for the volatility baseline
	start := earliest.AddDate(0, 0, -20)
	bars, err := a.Fetcher.PriceHistory(ticker, provider.HistoryQuery{Start: start, Interval: "1d"})
	if err != nil || len(bars) == 0 {
		for _, e := range events {
			report.Items = append(report.Items, model.ReactionItem{ReportDate: e.ReportDate})
		}
		reverseItems(report.Items)
		return report, nil
	}

	closes := indicator.Closes(bars)
	vol := indicator.AnnualizedVolSeries(closes, 20)

	items := make([]model.ReactionItem, 0, len(events))
	for _, e := range events {
		items = append(items, reactionItem(e, bars, closes, vol))
	}
	// events arrive newest first; the report lists items oldest first
	reverseItems(items)
	report.Items = items
	report.Summary = summarize(items, events)
	return report, nil
}

// reactionItem computes the post-event returns for one earnings event. The
// event date advances to the first trading day at or after it; it never
// looks backward.
func reactionItem(e model.EarningsEvent, bars []model.PriceBar, closes, vol []float64) model.ReactionItem {
	item := model.ReactionItem{ReportDate: e.ReportDate}

	idx := sort.Search(len(bars), func(i int) bool {
		return !dayOf(bars[i].Date).Before(e.ReportDate.Time)
	})
	if idx == len(bars) {
		return item
	}

	c0 := closes[idx]
	if idx+1 < len(closes) && c0 != 0 {
		item.NextDayReturnPct = ptr((closes[idx+1]/c0 - 1.0) * 100.0)
	}
	if idx+5 < len(closes) && c0 != 0 {
		item.FiveDayReturnPct = ptr((closes[idx+5]/c0 - 1.0) * 100.0)
	}
	baseIdx := idx - 1
	if baseIdx < 0 {
		baseIdx = 0
	}
	if !math.IsNaN(vol[baseIdx]) {
		item.BaselineVolatilityPct = ptr(vol[baseIdx])
	}
	return item
}

// summarize aggregates reaction items into the per-ticker summary. Groups
// with no members stay nil: "no evidence" is not the same as zero.
func summarize(items []model.ReactionItem, events []model.EarningsEvent) model.ReactionSummary {
	var summary model.ReactionSummary

	var up, down, absMoves []float64
	for _, it := range items {
		if it.NextDayReturnPct == nil {
			continue
		}
		m := *it.NextDayReturnPct
		if m >= 0 {
			up = append(up, m)
		} else {
			down = append(down, m)
		}
		absMoves = append(absMoves, math.Abs(m))
	}
	if len(up) > 0 {
		summary.AverageUpsidePct = ptr(meanOf(up))
	}
	if len(down) > 0 {
		summary.AverageDownsidePct = ptr(meanOf(down))
	}
	if len(absMoves) > 0 {
		summary.AverageAbsMovePct = ptr(meanOf(absMoves))
	}

	beats, misses := 0, 0
	for _, e := range events {
		if e.EPSSurprisePct == nil {
			continue
		}
		if *e.EPSSurprisePct > 0 {
			beats++
		} else if *e.EPSSurprisePct < 0 {
			misses++
		}
	}
	if beats > 0 {
		summary.BeatsCount = &beats
	}
	if misses > 0 {
		summary.MissesCount = &misses
	}
	return summary
}

func meanOf(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func reverseItems(items []model.ReactionItem) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
