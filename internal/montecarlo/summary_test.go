package montecarlo

import (
	"errors"
	"math"
	"testing"

	"PriceSentinel/internal/model"
)

func batchOf(start float64, terminals ...float64) *model.TrialBatch {
	b := &model.TrialBatch{StartPrice: start}
	for _, p := range terminals {
		b.Outcomes = append(b.Outcomes, outcome(start, p))
	}
	return b
}

func TestSummarize_Counts(t *testing.T) {
	rep, err := Summarize(batchOf(100, 110, 90, 100, 120))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.NumTrials != 4 || rep.NumProfit != 2 || rep.NumLoss != 1 || rep.NumFlat != 1 {
		t.Errorf("unexpected counts %+v", rep)
	}
	if rep.PctProfit != 50 || rep.PctLoss != 25 {
		t.Errorf("expected 50%%/25%%, got %v/%v", rep.PctProfit, rep.PctLoss)
	}
	if rep.MeanEnd != 105 || rep.MeanChange != 5 || rep.MeanPctChange != 5 {
		t.Errorf("unexpected means %+v", rep)
	}
	if rep.MinEnd != 90 || rep.MaxEnd != 120 {
		t.Errorf("unexpected range %v-%v", rep.MinEnd, rep.MaxEnd)
	}
}

func TestSummarize_Percentiles(t *testing.T) {
	terminals := make([]float64, 100)
	for i := range terminals {
		terminals[len(terminals)-1-i] = float64(i + 1)
	}
	rep, err := Summarize(batchOf(50, terminals...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.P5End < 5 || rep.P5End > 6 || rep.P50End != 50 || rep.P95End < 95 || rep.P95End > 96 {
		t.Errorf("unexpected percentiles p5=%v p50=%v p95=%v", rep.P5End, rep.P50End, rep.P95End)
	}
	if !(rep.P5End <= rep.P50End && rep.P50End <= rep.P95End) {
		t.Error("percentiles must be ordered")
	}
}

func TestSummarize_SingleTrial(t *testing.T) {
	rep, err := Summarize(batchOf(10, 12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.StdDevEnd != 0 || math.IsNaN(rep.StdDevEnd) {
		t.Errorf("expected zero std-dev for one trial, got %v", rep.StdDevEnd)
	}
	if rep.PctProfit != 100 {
		t.Errorf("expected 100%% profit, got %v", rep.PctProfit)
	}
}

func TestSummarize_EmptyBatch(t *testing.T) {
	if _, err := Summarize(&model.TrialBatch{}); !errors.Is(err, model.ErrEmptyBatch) {
		t.Errorf("expected ErrEmptyBatch, got %v", err)
	}
	if _, err := Summarize(nil); !errors.Is(err, model.ErrEmptyBatch) {
		t.Errorf("expected ErrEmptyBatch for nil batch, got %v", err)
	}
}
