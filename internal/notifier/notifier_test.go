package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"PriceSentinel/internal/forecast"
	"PriceSentinel/internal/model"
	"PriceSentinel/internal/pathstore"
)

func sampleResult() *forecast.Result {
	return &forecast.Result{
		RunID:      "run-1",
		Symbol:     "ACME",
		StartPrice: 100,
		Stats:      model.ReturnStats{Drift: 0.0004, Volatility: 0.012, Observations: 250},
		Batch:      &model.TrialBatch{StartPrice: 100, Horizon: 30},
		Report: model.SummaryReport{
			NumTrials: 1000, NumProfit: 550, NumLoss: 440, NumFlat: 10,
			PctProfit: 55, PctLoss: 44, MeanEnd: 101.2, MeanChange: 1.2, MeanPctChange: 1.2,
			MinEnd: 80, MaxEnd: 130, StdDevEnd: 6.5, P5End: 90.1, P50End: 101, P95End: 112.3,
		},
		Samples:   pathstore.NewArchive(),
		CreatedAt: time.Date(2025, 1, 2, 9, 30, 0, 0, time.UTC),
	}
}

func TestFormatSummaryReport(t *testing.T) {
	html := FormatSummaryReport(sampleResult(), HTML)
	for _, want := range []string{
		"<b>PriceSentinel forecast</b>", "ACME", "2025-01-02 09:30",
		"Profit: 550 (55.00%)", "Loss:   440 (44.00%)", "Flat:   10",
		"Mean end price: 101.20", "P5 / P50 / P95: 90.10 / 101.00 / 112.30", "run run-1",
		"Horizon: 30 steps | Trials: 1000",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q:\n%s", want, html)
		}
	}

	plain := FormatSummaryReport(sampleResult(), Plain)
	if strings.Contains(plain, "<b>") {
		t.Error("plain report must not contain HTML tags")
	}
}

func TestFormatSummaryReport_NoFlatLine(t *testing.T) {
	res := sampleResult()
	res.Report.NumFlat = 0
	if strings.Contains(FormatSummaryReport(res, Plain), "Flat:") {
		t.Error("flat line should be omitted when no trial is flat")
	}
}

func TestFormatReturnStats(t *testing.T) {
	out := FormatReturnStats("ACME", model.ReturnStats{Drift: -0.001, Volatility: 0.02, Observations: 9}, Plain)
	for _, want := range []string{"ACME", "9 log returns", "-0.001000", "0.020000"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestTelegramNotifier_Send(t *testing.T) {
	var got map[string]string
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.BaseURL = srv.URL
	if err := tn.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/botTOKEN/sendMessage" {
		t.Errorf("unexpected path %q", path)
	}
	if got["chat_id"] != "42" || got["text"] != "hello" || got["parse_mode"] != "HTML" {
		t.Errorf("unexpected payload %v", got)
	}
}

func TestTelegramNotifier_SendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad", http.StatusBadRequest)
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.BaseURL = srv.URL
	if err := tn.Send(context.Background(), "hello"); err == nil {
		t.Error("expected error on non-200")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := tn.SendWithRetry(ctx, "hello", 3); err == nil {
		t.Error("expected error when context is cancelled")
	}
}

func TestTelegramNotifier_Enabled(t *testing.T) {
	if NewTelegramNotifier("", "1", "").Enabled() {
		t.Error("notifier without token must be disabled")
	}
	if !NewTelegramNotifier("t", "1", "").Enabled() {
		t.Error("notifier with token and chat must be enabled")
	}
	var nilNotifier *TelegramNotifier
	if nilNotifier.Enabled() {
		t.Error("nil notifier must be disabled")
	}
}

func TestStartPolling_DispatchesCommands(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/getUpdates") {
			w.Write([]byte(`{"ok":true,"result":[{"update_id":7,"message":{"text":" /run "}}]}`))
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.BaseURL = srv.URL

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var commands []string
	done := make(chan struct{})
	go func() {
		tn.StartPolling(ctx, func(_ context.Context, cmd string) string {
			mu.Lock()
			commands = append(commands, cmd)
			mu.Unlock()
			cancel()
			return ""
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("polling did not stop after cancel")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(commands) == 0 || commands[0] != "/run" {
		t.Errorf("expected trimmed /run command, got %v", commands)
	}
}
