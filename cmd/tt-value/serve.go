package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/tt-value/internal/alerts"
	"github.com/yourusername/tt-value/internal/api"
	"github.com/yourusername/tt-value/internal/health"
	"github.com/yourusername/tt-value/internal/metrics"
	"github.com/yourusername/tt-value/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve annotated listings over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if cfg.Metrics.Enabled {
			metrics.InitRegistry()
		}

		c, err := buildComponents(ctx, true)
		if err != nil {
			return err
		}
		defer c.Close()

		if cfg.Alerts.Enabled {
			notifier, err := alerts.NewTelegramNotifier(cfg.Alerts.TelegramToken, cfg.Alerts.ChatID, cfg.Alerts.MinScore, appLog)
			if err != nil {
				return err
			}
			notifier.SetOutcomeLabels(cfg.Engine.FirstOutcome, cfg.Engine.SecondOutcome)
			c.refresh.AddSink(notifier)
			appLog.WithField("chat_id", cfg.Alerts.ChatID).Info("Telegram alerts enabled")
		}
		defer c.refresh.Wait()

		window, err := api.NewActiveWindow(cfg)
		if err != nil {
			return err
		}
		cache := api.NewResultCache(cfg.CacheTTL(), time.Now)
		handlers := api.NewHandlers(c.refresh, c.lookup, cache, window, time.Now, appLog)

		checker := health.NewChecker(health.Config{
			ServiceName: cfg.App.Name,
			Version:     Version,
			Commit:      GitCommit,
			Logger:      appLog,
		})
		if c.db != nil {
			checker.AddCheck("database", c.db)
		}
		if p, ok := c.market.(health.Pinger); ok {
			checker.AddCheck("market", p)
		}

		if cfg.Scheduler.Enabled {
			sched := scheduler.NewScheduler(window.Location, appLog)
			if _, err := sched.ScheduleWarm(cfg.Scheduler.WarmSchedule, handlers); err != nil {
				return err
			}
			if err := sched.Start(); err != nil {
				return err
			}
			defer sched.Stop()
		}

		metricsPath := ""
		if cfg.Metrics.Enabled {
			metricsPath = cfg.Metrics.Path
		}
		server := api.NewServer(api.ServerConfig{
			Address:      cfg.ListenAddress(),
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
			MetricsPath:  metricsPath,
			StaticDir:    cfg.Server.StaticDir,
		}, handlers, checker, appLog)

		appLog.WithFields(logrus.Fields{
			"address": cfg.ListenAddress(),
			"market":  c.market.Name(),
			"stats":   cfg.Stats.Source,
			"window":  fmt.Sprintf("%02d-%02d %s", window.StartHour, window.EndHour, window.Location),
		}).Info("tt-value starting")

		checker.SetReady(true)
		return server.Run(ctx)
	},
}
