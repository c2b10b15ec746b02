package main

import (
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"PriceSentinel/internal/forecast"
	"PriceSentinel/internal/notifier"
	"PriceSentinel/internal/scheduler"

	"github.com/spf13/cobra"
)

func newWatchCmd(root *rootOptions) *cobra.Command {
	var runOnStart bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the forecast on a cron schedule and push reports to Telegram",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config validation: %w", err)
			}

			col, closeFn, err := root.newCollector(cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var sender scheduler.Sender
			tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
			if err := cfg.ValidateNotifier(); err != nil {
				log.Printf("[WARN] %v; reports will be logged only", err)
			} else {
				sender = tn
			}

			sched := scheduler.NewScheduler(ctx, col, forecast.Params{
				Horizon:     cfg.Simulation.Horizon,
				NumTrials:   cfg.Simulation.NumTrials,
				Seed:        cfg.Simulation.Seed,
				Workers:     cfg.Simulation.Workers,
				SamplePaths: cfg.Simulation.SamplePaths,
			}, sender)
			if err := sched.Register(cfg.Schedule.Cron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			if sender != nil {
				go tn.StartPolling(ctx, sched.HandleCommand)
				log.Println("[INFO] Telegram polling started")
			}
			if runOnStart {
				log.Println("[INFO] run-on-start enabled, executing forecast now")
				go sched.RunNow()
			}

			log.Printf("[INFO] watching %s on %q. Press Ctrl+C to stop.", cfg.DataSource.Symbol, cfg.Schedule.Cron)
			<-ctx.Done()
			log.Println("[INFO] shutdown signal received, stopping...")
			return nil
		},
	}
	cmd.Flags().BoolVar(&runOnStart, "run-on-start", false, "run one forecast immediately")
	return cmd
}
