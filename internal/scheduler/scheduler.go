package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"PriceSentinel/internal/collector"
	"PriceSentinel/internal/forecast"
	"PriceSentinel/internal/notifier"

	"github.com/robfig/cron/v3"
)

// Sender delivers a formatted report.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler re-runs the forecast on a cron schedule and pushes the report.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Params    forecast.Params
	Notifier  Sender
	Ctx       context.Context

	mu   sync.Mutex
	last *forecast.Result
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, params forecast.Params, sender Sender) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Params:    params,
		Notifier:  sender,
		Ctx:       ctx,
	}
}

// Register adds the forecast task under the given cron spec (with seconds).
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.forecastTask); err != nil {
		return fmt.Errorf("register forecast task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the forecast task immediately.
func (s *Scheduler) RunNow() {
	s.forecastTask()
}

// Last returns the most recent successful result, or nil.
func (s *Scheduler) Last() *forecast.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Run collects prices and evaluates one forecast.
func (s *Scheduler) Run(ctx context.Context) (*forecast.Result, error) {
	series, err := s.Collector.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}
	res, err := forecast.Evaluate(ctx, series, s.Params)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", series.Symbol, err)
	}

	s.mu.Lock()
	s.last = res
	s.mu.Unlock()
	return res, nil
}

func (s *Scheduler) forecastTask() {
	log.Printf("[INFO] running forecast for %s", s.Collector.Symbol)
	res, err := s.Run(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] forecast: %v", err)
		s.trySend(fmt.Sprintf("❌ Forecast for %s failed: %v", s.Collector.Symbol, err))
		return
	}
	log.Printf("[INFO] run %s: %d trials, mean end %.2f, profit %.1f%%",
		res.RunID, res.Report.NumTrials, res.Report.MeanEnd, res.Report.PctProfit)
	s.trySend(notifier.FormatSummaryReport(res, notifier.HTML))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	var name string
	if fields := strings.Fields(command); len(fields) > 0 {
		name = strings.ToLower(fields[0])
	}
	switch name {
	case "/run":
		res, err := s.Run(ctx)
		if err != nil {
			return fmt.Sprintf("❌ Forecast failed: %v", err)
		}
		return notifier.FormatSummaryReport(res, notifier.HTML)
	case "/last":
		if res := s.Last(); res != nil {
			return notifier.FormatSummaryReport(res, notifier.HTML)
		}
		return "No forecast has run yet. Send /run to start one."
	case "/stats":
		res := s.Last()
		if res == nil {
			return "No forecast has run yet. Send /run to start one."
		}
		return notifier.FormatReturnStats(res.Symbol, res.Stats, notifier.HTML)
	default:
		return "Available commands:\n• /run - run a forecast now\n• /last - last forecast report\n• /stats - last drift/volatility estimate"
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		log.Printf("[INFO] report:\n%s", text)
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
