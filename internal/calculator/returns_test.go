package calculator

import (
	"errors"
	"math"
	"testing"

	"PriceSentinel/internal/model"
)

func TestEstimateReturns_KnownSeries(t *testing.T) {
	prices := []float64{100, 110, 99, 108.9}
	stats, err := EstimateReturns(prices)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logs := []float64{math.Log(1.1), math.Log(0.9), math.Log(1.1)}
	mean := (logs[0] + logs[1] + logs[2]) / 3
	var ss float64
	for _, l := range logs {
		ss += (l - mean) * (l - mean)
	}
	wantVol := math.Sqrt(ss / 2)

	if math.Abs(stats.Drift-mean) > 1e-12 {
		t.Errorf("drift: expected %.12f, got %.12f", mean, stats.Drift)
	}
	if math.Abs(stats.Volatility-wantVol) > 1e-12 {
		t.Errorf("volatility: expected %.12f, got %.12f", wantVol, stats.Volatility)
	}
	if stats.Observations != 3 {
		t.Errorf("expected 3 observations, got %d", stats.Observations)
	}
}

func TestEstimateReturns_ConstantSeries(t *testing.T) {
	stats, err := EstimateReturns([]float64{50, 50, 50, 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Drift != 0 || stats.Volatility != 0 {
		t.Errorf("expected zero drift and volatility, got %+v", stats)
	}
}

func TestEstimateReturns_TwoPrices(t *testing.T) {
	stats, err := EstimateReturns([]float64{10, 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(stats.Drift-math.Log(2)) > 1e-12 {
		t.Errorf("expected drift ln2, got %f", stats.Drift)
	}
	if stats.Volatility != 0 {
		t.Errorf("expected zero volatility for a single return, got %f", stats.Volatility)
	}
}

func TestEstimateReturns_VolatilityNonNegative(t *testing.T) {
	series := [][]float64{
		{1, 2, 3, 4, 5},
		{5, 4, 3, 2, 1},
		{100, 101.5, 99.2, 103.7, 98.1, 120.0},
		{0.01, 1000, 0.02},
	}
	for _, s := range series {
		stats, err := EstimateReturns(s)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", s, err)
		}
		if stats.Volatility < 0 || math.IsNaN(stats.Volatility) {
			t.Errorf("%v: expected volatility >= 0, got %f", s, stats.Volatility)
		}
	}
}

func TestEstimateReturns_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
	}{
		{"nil", nil},
		{"single", []float64{10.0}},
		{"zero price", []float64{10, 0, 12}},
		{"negative price", []float64{10, 11, -1}},
		{"NaN price", []float64{10, math.NaN()}},
		{"infinite price", []float64{math.Inf(1), 10}},
	}
	for _, tt := range tests {
		_, err := EstimateReturns(tt.prices)
		if !errors.Is(err, model.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", tt.name, err)
		}
	}
}

func TestEstimateReturns_ErrorNamesInput(t *testing.T) {
	_, err := EstimateReturns([]float64{10, 11, -3})
	var ie *model.InputError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *model.InputError, got %T", err)
	}
	if ie.Field != "prices[2]" {
		t.Errorf("expected field prices[2], got %q", ie.Field)
	}
	if ie.Value != -3.0 {
		t.Errorf("expected value -3, got %v", ie.Value)
	}
}

func TestEstimateFromSeries_Nil(t *testing.T) {
	if _, err := EstimateFromSeries(nil); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLogReturns_Length(t *testing.T) {
	logs, err := LogReturns([]float64{1, 2, 4, 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("expected 3 log returns, got %d", len(logs))
	}
	for i, l := range logs {
		if math.Abs(l-math.Ln2) > 1e-12 {
			t.Errorf("log return %d: expected ln2, got %f", i, l)
		}
	}
}

func TestStatsFromLogReturns(t *testing.T) {
	prices := []float64{100, 102, 99, 101}
	logs, err := LogReturns(prices)
	if err != nil {
		t.Fatal(err)
	}
	fromLogs, err := StatsFromLogReturns(logs)
	if err != nil {
		t.Fatal(err)
	}
	fromPrices, err := EstimateReturns(prices)
	if err != nil {
		t.Fatal(err)
	}
	if fromLogs != fromPrices {
		t.Errorf("expected %+v, got %+v", fromPrices, fromLogs)
	}

	if _, err := StatsFromLogReturns(nil); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for no returns, got %v", err)
	}
	if _, err := StatsFromLogReturns([]float64{0.1, math.NaN()}); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for NaN return, got %v", err)
	}
}
