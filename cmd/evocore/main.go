// Package main provides the evocore binary: run constrained experiments from
// TOML files and inspect the random engine.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/evocore/config"
	"github.com/lixenwraith/evocore/constraint"
	"github.com/lixenwraith/evocore/random"
	"github.com/lixenwraith/evocore/sampling"
	"github.com/lixenwraith/evocore/telemetry"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "evocore"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Constrained population generation and selection",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(logLevel)
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(runCmd(), sampleCmd(), &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})
	return cmd
}

func setupLogging(level string) {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func runCmd() *cobra.Command {
	var (
		configPath  string
		seed        uint64
		metricsAddr string
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run an experiment file",
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				exp.Seed = seed
			}
			return runExperiment(cmd, exp, metricsAddr, metricsFile)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Experiment file (TOML)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Override the experiment seed (0 draws one from entropy)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while running")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write final metrics in text exposition format to this file")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func runExperiment(cmd *cobra.Command, exp *config.Experiment, metricsAddr, metricsFile string) error {
	eng, problem, err := exp.NewEngine()
	if err != nil {
		return err
	}
	eng.SetLogger(slog.Default().With("experiment", exp.Name))

	reg := prometheus.NewRegistry()
	obs, err := telemetry.NewObserver[float64](reg)
	if err != nil {
		return err
	}
	eng.SetObserver(obs)

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if metricsAddr != "" {
		srv := &http.Server{
			Addr:              metricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Metrics server failed", "addr", metricsAddr, "error", err)
			}
		}()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
		slog.Info("Serving metrics", "addr", metricsAddr)
	}

	pool, runErr := eng.Run(ctx)
	if runErr != nil && pool == nil {
		return runErr
	}

	best, err := eng.GetBest()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s seed=%d algorithm=%s generations=%d\n",
		eng.RunID(), eng.Seed(), exp.Algorithm, pool.Generation)
	fmt.Fprintf(out, "feasible %d/%d\n", pool.Stats.Feasible, pool.Stats.Size)
	fmt.Fprintf(out, "best objective %g\n", best.Objective)
	for i, name := range problem.Variables {
		fmt.Fprintf(out, "  %s = %g\n", name, best.Genome[i])
	}
	for _, c := range constraint.Violated(problem.Constraints, best.Genome) {
		fmt.Fprintf(out, "  violated: %s\n", c)
	}

	if metricsFile != "" {
		if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return runErr
}

func sampleCmd() *cobra.Command {
	var (
		seed      uint64
		n         int
		algorithm string
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print draws for a seed, for replay checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, err := random.ParseAlgorithm(algorithm)
			if err != nil {
				return err
			}
			if n < 1 {
				return fmt.Errorf("--n must be positive, got %d", n)
			}
			return printSamples(cmd, random.NewWith(alg, seed), n)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 1, "Generator seed")
	cmd.Flags().IntVar(&n, "n", 10, "Population size")
	cmd.Flags().StringVar(&algorithm, "algorithm", "pcg", "Generator (pcg, chacha8, mt19937, xoshiro256, splitmix64)")
	return cmd
}

func printSamples(cmd *cobra.Command, s random.State, n int) error {
	out := cmd.OutOrStdout()

	perm, s := sampling.Permutation(n)(s)
	fmt.Fprintf(out, "shuffle:   %v\n", perm)

	population := make([]int, n)
	for i := range population {
		population[i] = i
	}
	sub, s := sampling.SampleWithoutReplacement(n/2, population)(s)
	fmt.Fprintf(out, "sample:    %v\n", sub)

	idx, s := sampling.SampleIndices(min(n, 5), n)(s)
	fmt.Fprintf(out, "indices:   %v\n", idx)

	normals, s := random.Replicate(3, sampling.Normal())(s)
	fmt.Fprintf(out, "normal:    %.6f\n", normals)

	ints, _ := random.Replicate(5, random.Range(1, 6))(s)
	fmt.Fprintf(out, "dice:      %v\n", ints)
	return nil
}
