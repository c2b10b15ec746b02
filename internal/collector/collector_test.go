package collector

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"PriceSentinel/internal/model"
)

func TestCollect_MockBars(t *testing.T) {
	col := NewCollector(&MockFetcher{Price: 100}, "TEST", 60)
	series, err := col.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series.Closes) != 60 {
		t.Fatalf("expected 60 closes, got %d", len(series.Closes))
	}
	for i, c := range series.Closes {
		if c <= 0 {
			t.Errorf("close %d not positive: %v", i, c)
		}
	}
	if series.Symbol != "TEST" {
		t.Errorf("expected symbol TEST, got %q", series.Symbol)
	}
}

func TestCollect_DropsNonPositive(t *testing.T) {
	bars := []model.OHLCV{{Close: 10}, {Close: 0}, {Close: 11}, {Close: -2}, {Close: 12}}
	series, err := NewCollector(&MockFetcher{DailyData: bars}, "X", 10).Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{10, 11, 12}
	if len(series.Closes) != len(want) {
		t.Fatalf("expected %v, got %v", want, series.Closes)
	}
	for i := range want {
		if series.Closes[i] != want[i] {
			t.Errorf("close %d: expected %v, got %v", i, want[i], series.Closes[i])
		}
	}
	if series.Last() != 12 {
		t.Errorf("expected last close 12, got %v", series.Last())
	}
}

func TestCollect_TooFewCloses(t *testing.T) {
	col := NewCollector(&MockFetcher{DailyData: []model.OHLCV{{Close: 10}}}, "X", 10)
	if _, err := col.Collect(context.Background()); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCollect_FetchError(t *testing.T) {
	boom := errors.New("boom")
	col := NewCollector(&MockFetcher{Err: boom}, "X", 10)
	if _, err := col.Collect(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected wrapped fetch error, got %v", err)
	}
}

func TestParseBarsCSV_YahooExport(t *testing.T) {
	data := `Date,Open,High,Low,Close,Adj Close,Volume
2024-01-03,101,102,100,101.5,100.5,900
2024-01-02,100,101,99,100.5,99.5,1000
2024-01-04,null,null,null,null,null,null
2024-01-05,102,103,101,102.5,101.5,1100
`
	bars, err := ParseBarsCSV(strings.NewReader(data), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(bars))
	}
	want := []float64{99.5, 100.5, 101.5}
	for i := range want {
		if bars[i].Close != want[i] {
			t.Errorf("bar %d: expected adj close %v, got %v", i, want[i], bars[i].Close)
		}
	}
	if bars[0].Volume != 1000 {
		t.Errorf("expected volume 1000, got %v", bars[0].Volume)
	}

	raw, err := ParseBarsCSV(strings.NewReader(data), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw[0].Close != 100.5 {
		t.Errorf("expected raw close 100.5, got %v", raw[0].Close)
	}
}

func TestParseBarsCSV_CloseOnly(t *testing.T) {
	bars, err := ParseBarsCSV(strings.NewReader("close\n1\n2\n3\n"), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 3 || bars[2].Close != 3 {
		t.Errorf("unexpected bars %+v", bars)
	}
}

func TestParseBarsCSV_Errors(t *testing.T) {
	tests := []string{
		"date,price\n2024-01-01,1\n",
		"date,close\n2024-01-01,abc\n",
		"date,close\nnot-a-date,1\n",
		"",
	}
	for _, data := range tests {
		if _, err := ParseBarsCSV(strings.NewReader(data), true); err == nil {
			t.Errorf("expected error for %q", data)
		}
	}
}

func TestCSVFetcher_File(t *testing.T) {
	dir := t.TempDir()
	content := "Date,Close\n2024-01-01,10\n2024-01-02,11\n2024-01-03,12\n"
	if err := os.WriteFile(filepath.Join(dir, "ACME.csv"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	f := NewCSVFetcher(dir)
	bars, err := f.FetchDailyBars(context.Background(), "acme", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 2 || bars[0].Close != 11 || bars[1].Close != 12 {
		t.Errorf("expected last two bars, got %+v", bars)
	}
	if !bars[1].Time.Equal(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected time %v", bars[1].Time)
	}
	if _, err := f.FetchDailyBars(context.Background(), "missing", 2); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestYahooRange(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{10, "1mo"}, {60, "3mo"}, {252, "1y"}, {300, "2y"}, {1000, "5y"}, {5000, "max"},
	}
	for _, tt := range tests {
		if got := yahooRange(tt.days); got != tt.want {
			t.Errorf("yahooRange(%d): expected %q, got %q", tt.days, tt.want, got)
		}
	}
}
