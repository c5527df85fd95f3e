package sim

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"risk-desk-go/config"
	"risk-desk-go/infrastructure/logger"
	"risk-desk-go/market"
	"risk-desk-go/monitor"
	"risk-desk-go/risk"
)

// Runner 顺序驱动模拟循环：行情 tick → 随机成交 → 风控评估 → 周期快照。
// 核心保证每一步完整执行后才进入下一步，不存在交错的账本变更。
type Runner struct {
	Prices   *market.Simulator
	Gen      *Generator
	Engine   *risk.Engine
	Log      *logger.Logger
	Notifier *risk.Notifier   // 可选
	Monitor  *monitor.Monitor // 可选

	mu     sync.Mutex
	pacing config.SimulationConfig
	trades int
}

// SetPacing 热更新节奏参数（tick 间隔、快照周期、步间休眠）。
// 标的与限额配置不走该入口，进程生命周期内固定。
func (r *Runner) SetPacing(sc config.SimulationConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pacing = sc
}

// pacingSnapshot 将秒级配置折算为循环参数。价格 tick 间隔按步间休眠
// 折算成步数，顺序循环里不单独起定时器。
func (r *Runner) pacingSnapshot() (sleep time.Duration, priceEvery, snapEvery int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sc := r.pacing
	if sc.SleepSecondsBetweenSteps <= 0 {
		sc.SleepSecondsBetweenSteps = 0.2
	}
	if sc.PriceTickSeconds <= 0 {
		sc.PriceTickSeconds = sc.SleepSecondsBetweenSteps
	}
	sleep = time.Duration(sc.SleepSecondsBetweenSteps * float64(time.Second))
	priceEvery = int(math.Max(1, math.Round(sc.PriceTickSeconds/sc.SleepSecondsBetweenSteps)))
	snapEvery = sc.SnapshotEveryNTrades
	if snapEvery <= 0 {
		snapEvery = 20
	}
	return sleep, priceEvery, snapEvery
}

// Step 执行一次完整迭代。tickPrices 指示本步是否推进行情。
func (r *Runner) Step(tickPrices bool, snapEvery int) error {
	if r.Prices == nil || r.Gen == nil || r.Engine == nil {
		return errors.New("runner not initialized")
	}
	if tickPrices {
		r.Prices.Tick()
	}

	trade, err := r.Gen.Next(r.Prices.Price)
	if err != nil {
		return err
	}
	prices := r.Prices.Prices()

	alerts, err := r.Engine.ProcessTrade(trade, prices)
	if err != nil {
		return err
	}

	if r.Log != nil {
		r.Log.LogTrade(trade.InstrumentID, string(trade.Side), trade.Quantity, trade.Price)
		for _, a := range alerts {
			r.Log.LogRisk(a.Kind, string(a.Severity), a.Message)
		}
	}
	if r.Notifier != nil {
		r.Notifier.Notify(alerts)
	}
	if r.Monitor != nil {
		r.Monitor.ObserveTrade()
		r.Monitor.ObserveAlerts(alerts)
	}

	r.mu.Lock()
	r.trades++
	n := r.trades
	r.mu.Unlock()

	if snapEvery > 0 && n%snapEvery == 0 {
		view, err := r.Engine.Snapshot(prices)
		if err != nil {
			return err
		}
		if r.Log != nil {
			r.Log.LogSnapshot(view.GrossNotional, view.TotalPnL, len(view.Positions))
		}
		if r.Monitor != nil {
			r.Monitor.ObserveSnapshot(view)
		}
	}
	return nil
}

// Run 运行至 ctx 取消或完成 maxSteps 步（maxSteps <= 0 表示不限）。
func (r *Runner) Run(ctx context.Context, maxSteps int) error {
	for step := 1; maxSteps <= 0 || step <= maxSteps; step++ {
		sleep, priceEvery, snapEvery := r.pacingSnapshot()

		if err := r.Step(step%priceEvery == 0, snapEvery); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
	}
	return nil
}

// Trades 返回已处理的成交笔数。
func (r *Runner) Trades() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.trades
}
