package risk

import (
	"fmt"
	"sync"

	"risk-desk-go/inventory"
	"risk-desk-go/market"
)

// Engine 风控唯一入口：ProcessTrade 变更账本并评估限额，
// Snapshot 给出只读估值视图。每个实例独占自己的仓位表，
// 可在测试中并存多个互不干扰的实例。
type Engine struct {
	mu      sync.Mutex
	ledger  *inventory.Ledger
	monitor *Monitor
	clock   Clock
}

func NewEngine(limits LimitConfig) (*Engine, error) {
	monitor, err := NewMonitor(limits)
	if err != nil {
		return nil, err
	}
	return &Engine{
		ledger:  inventory.NewLedger(),
		monitor: monitor,
		clock:   NowUTC,
	}, nil
}

// ProcessTrade 应用成交并对全量仓位做限额评估，返回本次评估的告警。
// 成交标的缺价时在变更账本之前失败，保证失败原子性。
func (e *Engine) ProcessTrade(t market.Trade, prices map[string]float64) ([]Alert, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := prices[t.InstrumentID]; !ok {
		return nil, fmt.Errorf("process trade %s: %w", t.InstrumentID, market.ErrUnknownInstrument)
	}
	e.ledger.Apply(t)
	return e.monitor.Evaluate(e.ledger.All(), priceFromMap(prices), e.clock.Now())
}

// PositionView 快照中的单标的估值行。
type PositionView struct {
	InstrumentID  string
	NetQuantity   float64
	AvgEntryPrice float64
	CurrentPrice  float64
	Notional      float64
	PnL           float64
}

// SnapshotView 按标的 id 排序的只读估值视图。
type SnapshotView struct {
	Positions     []PositionView
	GrossNotional float64
	TotalPnL      float64
}

// Snapshot 输出当前持仓估值，不变更任何状态。
// 平仓记录也包含在内（名义市值与盈亏为零）。
func (e *Engine) Snapshot(prices map[string]float64) (SnapshotView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var view SnapshotView
	for _, pos := range e.ledger.All() {
		px, ok := prices[pos.InstrumentID]
		if !ok {
			return SnapshotView{}, fmt.Errorf("snapshot %s: %w", pos.InstrumentID, market.ErrUnknownInstrument)
		}
		notional := pos.Notional(px)
		pnl := pos.UnrealizedPnL(px)
		view.Positions = append(view.Positions, PositionView{
			InstrumentID:  pos.InstrumentID,
			NetQuantity:   pos.NetQuantity,
			AvgEntryPrice: pos.AvgEntryPrice,
			CurrentPrice:  px,
			Notional:      notional,
			PnL:           pnl,
		})
		view.GrossNotional += notional
		view.TotalPnL += pnl
	}
	return view, nil
}

// Position 返回单标的仓位副本，供指标上报使用。
func (e *Engine) Position(instrumentID string) (inventory.Position, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Get(instrumentID)
}

func priceFromMap(prices map[string]float64) market.PriceFn {
	return func(id string) (float64, error) {
		p, ok := prices[id]
		if !ok {
			return 0, fmt.Errorf("price for %s: %w", id, market.ErrUnknownInstrument)
		}
		return p, nil
	}
}
