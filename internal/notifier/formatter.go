package notifier

import (
	"fmt"
	"strings"

	"PriceSentinel/internal/forecast"
	"PriceSentinel/internal/model"
)

// Markup selects how emphasis is rendered.
type Markup int

const (
	Plain Markup = iota
	HTML         // Telegram parse_mode=HTML
)

func (m Markup) bold(s string) string {
	if m == HTML {
		return "<b>" + s + "</b>"
	}
	return s
}

// FormatReturnStats formats the estimated drift and volatility.
func FormatReturnStats(symbol string, stats model.ReturnStats, m Markup) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📐 %s | %s\n\n", m.bold("Return estimate"), symbol))
	b.WriteString(fmt.Sprintf("Observations: %d log returns\n", stats.Observations))
	b.WriteString(fmt.Sprintf("Drift (mu): %+.6f per step\n", stats.Drift))
	b.WriteString(fmt.Sprintf("Volatility (sigma): %.6f per step\n", stats.Volatility))
	return b.String()
}

// FormatSummaryReport formats one evaluation result.
func FormatSummaryReport(res *forecast.Result, m Markup) string {
	var b strings.Builder
	rep := res.Report

	b.WriteString(fmt.Sprintf("📊 %s | %s | %s\n\n", m.bold("PriceSentinel forecast"), res.Symbol,
		res.CreatedAt.Format("2006-01-02 15:04")))

	b.WriteString(fmt.Sprintf("Start price: %.2f\n", res.StartPrice))
	if res.High52w > 0 {
		b.WriteString(fmt.Sprintf("52w range: %.2f - %.2f (position %.0f%%)\n", res.Low52w, res.High52w, res.Position52w*100))
	}
	b.WriteString(fmt.Sprintf("Drift: %+.6f | Volatility: %.6f (%d returns)\n",
		res.Stats.Drift, res.Stats.Volatility, res.Stats.Observations))
	b.WriteString(fmt.Sprintf("Horizon: %d steps | Trials: %d\n\n", res.Batch.Horizon, rep.NumTrials))

	b.WriteString(fmt.Sprintf("🎲 %s\n", m.bold("Outcome distribution:")))
	b.WriteString(fmt.Sprintf("  Profit: %d (%.2f%%)\n", rep.NumProfit, rep.PctProfit))
	b.WriteString(fmt.Sprintf("  Loss:   %d (%.2f%%)\n", rep.NumLoss, rep.PctLoss))
	if rep.NumFlat > 0 {
		b.WriteString(fmt.Sprintf("  Flat:   %d\n", rep.NumFlat))
	}
	b.WriteString("  ─────────────────\n")
	b.WriteString(fmt.Sprintf("  Mean end price: %.2f\n", rep.MeanEnd))
	b.WriteString(fmt.Sprintf("  Mean change: %+.2f (%+.2f%%)\n", rep.MeanChange, rep.MeanPctChange))
	b.WriteString(fmt.Sprintf("  Range: %.2f - %.2f (sd %.2f)\n", rep.MinEnd, rep.MaxEnd, rep.StdDevEnd))
	b.WriteString(fmt.Sprintf("  P5 / P50 / P95: %.2f / %.2f / %.2f\n", rep.P5End, rep.P50End, rep.P95End))

	b.WriteString(fmt.Sprintf("\nrun %s (%s)", res.RunID, res.Elapsed.Round(1e6)))
	return b.String()
}
