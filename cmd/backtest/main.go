package main

import (
	"context"
	"flag"
	"log"
	"os"

	"mlft/internal/backtest"
	"mlft/internal/feed"
	"mlft/internal/model/enum"
	"mlft/internal/ops"
	"mlft/internal/report"
	"mlft/internal/state"
	"mlft/internal/strategy/demo"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"
)

func main() {
	configPath := flag.String("config", "", "Path to JSON or YAML run config")
	instruments := flag.String("instruments", "", "Instrument CSV file")
	bars := flag.String("bars", "", "Bar data CSV file")
	matchAlgo := flag.String("match-algo", "", "Match algorithm: NoTrade | AlwaysFilled")
	outputDir := flag.String("output-dir", "", "Directory for orders/trades/positions CSV (empty=disable)")
	snapshot := flag.String("snapshot", "", "Write the final positions snapshot to this JSON file")
	verifySnapshot := flag.String("verify-snapshot", "", "Compare the final positions with this snapshot")
	seed := flag.Int64("seed", 0, "Demo strategy random seed")
	maxQty := flag.Float64("max-qty", 0, "Demo strategy max order qty")
	killSwitch := flag.Bool("kill-switch", false, "Reject every submission")
	pyroscopeAddr := flag.String("pyroscope", "", "Pyroscope server address (empty=disable)")
	quiet := flag.Bool("quiet", false, "Do not print result tables")
	flag.Parse()

	loaded, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "instruments":
			loaded.Instruments = *instruments
		case "bars":
			loaded.Bars = *bars
		case "match-algo":
			algo, err := enum.ParseMatchAlgorithm(*matchAlgo)
			if err != nil {
				log.Fatalf("invalid match-algo: %v", err)
			}
			loaded.MatchAlgo = algo
		case "output-dir":
			loaded.Output.Dir = *outputDir
		case "snapshot":
			loaded.Output.Snapshot = *snapshot
		case "verify-snapshot":
			loaded.Output.VerifySnapshot = *verifySnapshot
		case "seed":
			loaded.Strategy.Seed = *seed
		case "max-qty":
			loaded.Strategy.MaxQty = *maxQty
		case "kill-switch":
			loaded.Risk.KillSwitch = *killSwitch
		}
	})
	if err := loaded.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	if loaded.Instruments == "" || loaded.Bars == "" {
		log.Fatalf("instruments and bars are required")
	}

	if *pyroscopeAddr != "" {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "mlft/backtest",
			ServerAddress:   *pyroscopeAddr,
			Tags: map[string]string{
				"algo": loaded.MatchAlgo.String(),
			},
			Logger: profilerLogger{},
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			log.Fatalf("pyroscope start failed: %v", err)
		}
		defer func() {
			_ = profiler.Stop()
		}()
	}

	if err := run(loaded, *quiet); err != nil {
		log.Fatalf("backtest failed: %v", err)
	}
}

func loadConfig(path string) (ops.Loaded, error) {
	if path == "" {
		return ops.Default(), nil
	}
	return ops.Load(path)
}

func run(loaded ops.Loaded, quiet bool) error {
	registry, err := feed.LoadInstruments(loaded.Instruments)
	if err != nil {
		return err
	}
	barData, err := feed.LoadBars(loaded.Bars)
	if err != nil {
		return err
	}
	logs.Infof("loaded %d instruments on %v, %d bars", registry.Count(), registry.Exchanges(), len(barData))

	strategy := demo.NewRandom(demo.Config{
		Seed:   loaded.Strategy.Seed,
		MaxQty: loaded.Strategy.MaxQty,
	})
	engine, err := backtest.New(backtest.Config{
		MatchAlgo: loaded.MatchAlgo,
		Risk:      loaded.Risk,
	}, registry.Instruments(), strategy)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-sys.Shutdown():
			logs.Info("shutdown requested, stopping backtest")
			cancel()
		case <-ctx.Done():
		}
	}()

	result, err := engine.Run(ctx, barData)
	if err != nil {
		return err
	}

	rep := report.Build(result)
	if !quiet {
		if err := rep.WriteText(os.Stdout); err != nil {
			return err
		}
	}
	if loaded.Output.Dir != "" {
		paths, err := rep.WriteCSVDir(loaded.Output.Dir)
		if err != nil {
			return err
		}
		logs.Infof("report written: %v", paths)
	}
	if loaded.Output.Snapshot != "" {
		if err := state.WriteSnapshot(loaded.Output.Snapshot, result.Snapshot); err != nil {
			return err
		}
		logs.Infof("snapshot written: %s", loaded.Output.Snapshot)
	}
	if loaded.Output.VerifySnapshot != "" {
		expected, err := state.ReadSnapshot(loaded.Output.VerifySnapshot)
		if err != nil {
			return err
		}
		if err := state.CompareSnapshots(expected, result.Snapshot); err != nil {
			return err
		}
		logs.Infof("snapshot verified: %s", loaded.Output.VerifySnapshot)
	}

	stats := result.Stats
	logs.Infof("summary: bars=%d submitted=%d clamped=%d fills=%d cancels=%d dropped=%d conflicts=%d rejects=%v profit=%.4f fee=%.4f",
		stats.Bars, stats.Submitted, stats.Clamped, stats.Fills, stats.Cancels, stats.Dropped, stats.Conflicts,
		stats.Rejects, result.RealProfit(), result.Fee())
	logs.Infof("latency: bar avg=%s max=%s, strategy avg=%s max=%s",
		stats.BarLatency.Avg, stats.BarLatency.Max, stats.StrategyLatency.Avg, stats.StrategyLatency.Max)
	return nil
}

// profilerLogger routes pyroscope output through the process logger.
type profilerLogger struct{}

func (profilerLogger) Infof(format string, args ...interface{})  { logs.Infof(format, args...) }
func (profilerLogger) Debugf(_ string, _ ...interface{})         {}
func (profilerLogger) Errorf(format string, args ...interface{}) { logs.Errorf(format, args...) }
