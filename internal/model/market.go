package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds chronologically ordered closing prices for one symbol.
// It is treated as read-only once collected.
type PriceSeries struct {
	Symbol    string
	Closes    []float64
	FetchedAt time.Time
}

// Last returns the most recent close, or 0 for an empty series.
func (s *PriceSeries) Last() float64 {
	if len(s.Closes) == 0 {
		return 0
	}
	return s.Closes[len(s.Closes)-1]
}

// ExtractCloses returns the close of every bar, in order.
func ExtractCloses(bars []OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
