package provider

import (
	"time"

	"github.com/sitshu/stock-analyst/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars    []model.PriceBar
	Events  []model.EarningsEvent
	InfoMap map[string]any
	Price   float64
	Err     error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) PriceHistory(_ string, _ HistoryQuery) ([]model.PriceBar, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return GenerateBars(m.Price, 120), nil
}

func (m *MockFetcher) EarningsDates(_ string, limit int) ([]model.EarningsEvent, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if limit > 0 && len(m.Events) > limit {
		return m.Events[:limit], nil
	}
	return m.Events, nil
}

func (m *MockFetcher) Info(_ string) (map[string]any, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.InfoMap == nil {
		return map[string]any{}, nil
	}
	return m.InfoMap, nil
}

func (m *MockFetcher) LastClose(_ string) (float64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	if m.Price != 0 {
		return m.Price, nil
	}
	if len(m.Bars) > 0 {
		return m.Bars[len(m.Bars)-1].Close, nil
	}
	return 0, nil
}

// GenerateBars builds a gently trending synthetic daily series around
// basePrice, weekends skipped.
func GenerateBars(basePrice float64, count int) []model.PriceBar {
	if basePrice == 0 {
		basePrice = 100
	}
	bars := make([]model.PriceBar, 0, count)
	day := time.Now().UTC().AddDate(0, 0, -count*7/5)
	for len(bars) < count {
		day = day.AddDate(0, 0, 1)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		i := len(bars)
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars = append(bars, model.PriceBar{
			Date:   time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		})
	}
	return bars
}
