package collector

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"PriceSentinel/internal/model"
)

// CSVFetcher reads daily bars from local CSV files, one file per symbol
// (<Dir>/<SYMBOL>.csv). The header must contain a "Close" or "Adj Close"
// column; an optional "Date" column (YYYY-MM-DD) orders the rows.
type CSVFetcher struct {
	Dir string
	// Path, when set, is used for every symbol instead of Dir.
	Path string
	// PreferAdjusted selects "Adj Close" over "Close" when both exist.
	PreferAdjusted bool
}

func NewCSVFetcher(dir string) *CSVFetcher { return &CSVFetcher{Dir: dir, PreferAdjusted: true} }

func (f *CSVFetcher) Name() string { return "csv" }

func (f *CSVFetcher) path(symbol string) string {
	if f.Path != "" {
		return f.Path
	}
	return filepath.Join(f.Dir, strings.ToUpper(symbol)+".csv")
}

func (f *CSVFetcher) FetchDailyBars(_ context.Context, symbol string, days int) ([]model.OHLCV, error) {
	p := f.path(symbol)
	fp, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", p, err)
	}
	defer fp.Close()

	bars, err := ParseBarsCSV(fp, f.PreferAdjusted)
	if err != nil {
		return nil, fmt.Errorf("parse csv %s: %w", p, err)
	}
	if days > 0 && len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

// ParseBarsCSV parses bars from CSV data with a header row. Rows whose close
// is empty, "null" or non-positive are skipped.
func ParseBarsCSV(r io.Reader, preferAdjusted bool) ([]model.OHLCV, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	closeIdx, ok := cols["close"]
	if adj, hasAdj := cols["adj close"]; hasAdj && (preferAdjusted || !ok) {
		closeIdx, ok = adj, true
	}
	if !ok {
		return nil, errors.New("no close column in header")
	}
	dateIdx, hasDate := cols["date"]

	var bars []model.OHLCV
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if closeIdx >= len(rec) {
			continue
		}
		raw := strings.TrimSpace(rec[closeIdx])
		if raw == "" || strings.EqualFold(raw, "null") {
			continue
		}
		c, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parse close %q: %w", line, raw, err)
		}
		if !(c > 0) {
			continue
		}
		bar := model.OHLCV{Close: c, Open: field(rec, cols, "open"), High: field(rec, cols, "high"),
			Low: field(rec, cols, "low"), Volume: field(rec, cols, "volume")}
		if hasDate && dateIdx < len(rec) {
			ts, err := time.Parse("2006-01-02", strings.TrimSpace(rec[dateIdx]))
			if err != nil {
				return nil, fmt.Errorf("line %d: parse date: %w", line, err)
			}
			bar.Time = ts
		}
		bars = append(bars, bar)
	}

	if hasDate {
		sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	}
	return bars, nil
}

func field(rec []string, cols map[string]int, name string) float64 {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return 0
	}
	v, _ := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
	return v
}
