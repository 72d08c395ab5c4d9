package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/evdnx/papertrader/config"
	"github.com/evdnx/papertrader/engine"
	"github.com/evdnx/papertrader/logger"
	"github.com/evdnx/papertrader/market"
	"github.com/evdnx/papertrader/paper"
	"github.com/evdnx/papertrader/strategy"
)

var (
	flagInterval    time.Duration
	flagStrategy    string
	flagPair        string
	flagConfigPath  string
	flagMetricsAddr string
)

var rootCmd = &cobra.Command{
	Use:   "papertrader",
	Short: "Paper-trading simulator with a multi-strategy signal engine",
	Long: `papertrader simulates an automated crypto trading bot end to end:
synthetic market data, a paper ledger, eight signal strategies with
regime-aware post-processing, and risk/performance analytics.`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the periodic trading simulation",
	RunE:  runSimulation,
}

func init() {
	runCmd.Flags().DurationVar(&flagInterval, "interval", 5*time.Second, "Driver tick interval")
	runCmd.Flags().StringVar(&flagStrategy, "strategy", string(strategy.Ensemble), "Strategy to drive the cycle")
	runCmd.Flags().StringVar(&flagPair, "pair", "BTC/GBP", "Instrument to trade")
	runCmd.Flags().StringVar(&flagConfigPath, "config", "", "Optional YAML config file (env overrides it)")
	runCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", ":9190", "Prometheus metrics listen address")
	rootCmd.AddCommand(runCmd)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	// A local .env is optional; real deployments set the environment.
	_ = godotenv.Load()

	var cfg config.TradingConfig
	var err error
	if flagConfigPath != "" {
		cfg, err = config.FromFile(flagConfigPath)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		return err
	}

	log, err := logger.NewZapLogger()
	if err != nil {
		return err
	}

	gen := market.NewGenerator()
	ledger := paper.NewLedger(gen, map[string]float64{
		"BTC": 1.2,
		"ETH": 3.5,
		"GBP": 12000,
	}, paper.WithLogger(log))

	eng, err := engine.New(cfg, gen, ledger, engine.WithLogger(log))
	if err != nil {
		return err
	}

	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(flagMetricsAddr, nil); err != nil {
			log.Error("metrics_server_stopped", logger.Err(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	name := strategy.Name(flagStrategy)
	log.Info("simulation_started",
		logger.String("strategy", flagStrategy),
		logger.String("pair", flagPair),
		logger.Dur("interval", flagInterval),
	)

	ticker := time.NewTicker(flagInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			stats := eng.BotStats()
			log.Info("simulation_stopped",
				logger.Int("trades", stats.Trades),
				logger.Float64("win_rate", stats.WinRate),
				logger.Float64("total_profit", stats.TotalProfit),
			)
			return nil
		case <-ticker.C:
			res, err := eng.Cycle(ctx, name, flagPair)
			if err != nil {
				if ctx.Err() != nil {
					continue // shutting down; in-flight fetch cancelled
				}
				log.Error("cycle_failed", logger.Err(err))
				continue
			}
			if res.Executed {
				log.Info("trade_executed", logger.String("confirmation", res.Confirmation))
			}
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
