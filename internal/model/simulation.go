package model

// ReturnStats holds the log-return statistics of a price series.
type ReturnStats struct {
	Drift        float64 // mean log return per step
	Volatility   float64 // sample std-dev of log returns per step, >= 0
	Observations int     // number of log returns used
}

// SimulatedPath is one simulated price path. Index 0 is the start price,
// so a path over h steps has h+1 elements.
type SimulatedPath []float64

// Terminal returns the last price of the path.
func (p SimulatedPath) Terminal() float64 {
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1]
}

// TrialOutcome is the terminal result of one trial relative to its start price.
type TrialOutcome struct {
	TerminalPrice  float64
	AbsoluteChange float64
	PercentChange  float64
}

// TrialBatch holds one outcome per trial, first trial at index 0.
type TrialBatch struct {
	StartPrice float64
	Horizon    int
	Outcomes   []TrialOutcome
}

// Len returns the number of trials in the batch.
func (b *TrialBatch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Outcomes)
}

// TerminalPrices returns the terminal price of every trial, in trial order.
func (b *TrialBatch) TerminalPrices() []float64 {
	out := make([]float64, b.Len())
	for i, o := range b.Outcomes {
		out[i] = o.TerminalPrice
	}
	return out
}

// SummaryReport is a reduction of a TrialBatch. Outcomes with exactly 0%
// change are counted in NumFlat, never as profit or loss.
type SummaryReport struct {
	NumTrials     int
	NumProfit     int
	NumLoss       int
	NumFlat       int
	PctProfit     float64
	PctLoss       float64
	MeanEnd       float64
	MeanChange    float64
	MeanPctChange float64
	MinEnd        float64
	MaxEnd        float64
	StdDevEnd     float64
	P5End         float64
	P50End        float64
	P95End        float64
}
