package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"risk-desk-go/config"
	"risk-desk-go/infrastructure/alert"
	"risk-desk-go/infrastructure/logger"
	"risk-desk-go/market"
	"risk-desk-go/monitor"
	"risk-desk-go/risk"
	"risk-desk-go/sim"
)

// 本地市场风险模拟：随机游走行情驱动随机订单流，风控引擎维护净持仓、
// 计算未实现盈亏并做限额告警。不连接任何外部系统。
func main() {
	cfgPath := flag.String("config", defaultConfigPath(), "path to YAML config")
	steps := flag.Int("steps", 0, "number of simulation steps (0 = run until interrupted)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "rng seed for prices and trades")
	metricsAddr := flag.String("metricsAddr", "", "override metrics listen address")
	watch := flag.Bool("watch", true, "hot-reload simulation pacing on config change")
	flag.Parse()

	cfg, err := config.LoadWithEnvOverrides(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Close() }()

	rng := rand.New(rand.NewSource(*seed))
	prices := market.NewSimulator(cfg.Catalog(), rng)

	bounds := make(map[string]sim.Bounds, len(cfg.Instruments))
	for _, ic := range cfg.Instruments {
		bounds[ic.ID] = sim.Bounds{Min: ic.MinQty, Max: ic.MaxQty}
	}
	gen, err := sim.NewGenerator(bounds, rng)
	if err != nil {
		log.Fatal("init generator", zap.Error(err))
	}

	engine, err := risk.NewEngine(cfg.LimitConfig())
	if err != nil {
		log.Fatal("init risk engine", zap.Error(err))
	}

	channels := []alert.Channel{alert.NewConsoleChannel("console")}
	if cfg.Log.OutputFile != "" {
		if f, err := os.OpenFile(cfg.Log.OutputFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			channels = append(channels, alert.NewLogChannel("file", f))
			defer f.Close()
		} else {
			log.Warn("alert file channel disabled", zap.Error(err))
		}
	}
	mgr := alert.NewManager(channels, 30*time.Second)
	mon := monitor.New(monitor.DefaultConfig())
	if cfg.Metrics.Addr != "" {
		mon.StartServer(cfg.Metrics.Addr)
		log.Info("metrics endpoint up", zap.String("addr", cfg.Metrics.Addr))
	}

	runner := &sim.Runner{
		Prices:   prices,
		Gen:      gen,
		Engine:   engine,
		Log:      log,
		Notifier: risk.NewNotifier(alertBridge{mgr: mgr}),
		Monitor:  mon,
	}
	runner.SetPacing(cfg.Simulation)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *watch {
		go func() {
			w := config.Watcher{Path: *cfgPath}
			_ = w.Start(ctx, func(sc config.SimulationConfig) {
				runner.SetPacing(sc)
				log.LogEvent(zapcore.InfoLevel, "config_event", map[string]interface{}{"path": *cfgPath})
			})
		}()
	}

	log.Info("simulation starting",
		zap.Int("instruments", len(cfg.Instruments)),
		zap.Int64("seed", *seed),
		zap.Int("steps", *steps),
	)

	runErr := runner.Run(ctx, *steps)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("simulation aborted", zap.Error(runErr))
	}

	if view, err := engine.Snapshot(prices.Prices()); err == nil {
		printSnapshot(view, runner.Trades())
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		os.Exit(1)
	}
}

// alertBridge 将引擎告警接入告警管理器。
type alertBridge struct {
	mgr *alert.Manager
}

func (b alertBridge) Send(a risk.Alert) {
	fields := map[string]interface{}{}
	switch d := a.Details.(type) {
	case risk.InstrumentNotionalDetails:
		fields["instrument"] = d.InstrumentID
		fields["notional"] = d.Notional
	case risk.GrossNotionalDetails:
		fields["gross_notional"] = d.GrossNotional
	}
	_ = b.mgr.SendAlert(alert.Alert{
		Level:     string(a.Severity),
		Kind:      a.Kind,
		Message:   a.Message,
		Timestamp: a.Timestamp,
		Fields:    fields,
	})
}

func printSnapshot(v risk.SnapshotView, trades int) {
	fmt.Println("==== SNAPSHOT ====")
	for _, p := range v.Positions {
		fmt.Printf("%s: qty=%.2f avg=%.4f price=%.4f notional=%.2f pnl=%.2f\n",
			p.InstrumentID, p.NetQuantity, p.AvgEntryPrice, p.CurrentPrice, p.Notional, p.PnL)
	}
	fmt.Printf("trades=%d gross notional=%.2f total pnl=%.2f\n", trades, v.GrossNotional, v.TotalPnL)
}

func defaultConfigPath() string {
	if v := os.Getenv("RISKDESK_CONFIG"); v != "" {
		return v
	}
	return "config.yaml"
}
