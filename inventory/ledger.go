package inventory

import (
	"sort"
	"sync"

	"risk-desk-go/market"
)

// Ledger 以标的 id 为键维护持仓，唯一的变更入口是 Apply。
// 仓位一经创建不再删除，平仓后记录仍保留（均价已归零）。
type Ledger struct {
	mu        sync.RWMutex
	positions map[string]Position
}

func NewLedger() *Ledger {
	return &Ledger{positions: make(map[string]Position)}
}

// GetOrCreate 返回现有仓位，不存在则插入零仓位。不会失败。
func (l *Ledger) GetOrCreate(instrumentID string) Position {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.getOrCreateLocked(instrumentID)
}

func (l *Ledger) getOrCreateLocked(instrumentID string) Position {
	p, ok := l.positions[instrumentID]
	if !ok {
		p = Position{InstrumentID: instrumentID}
		l.positions[instrumentID] = p
	}
	return p
}

// Apply 将成交应用到对应仓位。
func (l *Ledger) Apply(t market.Trade) Position {
	l.mu.Lock()
	defer l.mu.Unlock()
	next := ApplyTrade(l.getOrCreateLocked(t.InstrumentID), t)
	l.positions[t.InstrumentID] = next
	return next
}

// Get 返回仓位副本。
func (l *Ledger) Get(instrumentID string) (Position, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.positions[instrumentID]
	return p, ok
}

// All 返回按标的 id 排序的仓位副本，保证评估顺序可重现。
func (l *Ledger) All() []Position {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Position, 0, len(l.positions))
	for _, p := range l.positions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InstrumentID < out[j].InstrumentID })
	return out
}

// Len 返回已创建的仓位数（含已平仓记录）。
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.positions)
}
