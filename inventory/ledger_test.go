package inventory

import (
	"testing"

	"risk-desk-go/market"
)

func TestLedgerGetOrCreate(t *testing.T) {
	l := NewLedger()
	p := l.GetOrCreate("AAPL")
	if p.InstrumentID != "AAPL" || p.NetQuantity != 0 || p.AvgEntryPrice != 0 {
		t.Fatalf("unexpected new position: %+v", p)
	}
	if l.Len() != 1 {
		t.Fatalf("expected 1 position, got %d", l.Len())
	}
	// 再次获取不应新建
	_ = l.GetOrCreate("AAPL")
	if l.Len() != 1 {
		t.Fatalf("expected 1 position after repeat, got %d", l.Len())
	}
}

func TestLedgerWeightedAverage(t *testing.T) {
	// avg 必须等于按历史成交重算的数量加权均价
	l := NewLedger()
	fills := []struct{ qty, price float64 }{
		{100, 50}, {200, 56}, {50, 61}, {150, 48},
	}
	totalQty, totalVal := 0.0, 0.0
	for _, f := range fills {
		l.Apply(market.Trade{InstrumentID: "MSFT", Side: market.SideBuy, Quantity: f.qty, Price: f.price})
		totalQty += f.qty
		totalVal += f.qty * f.price
	}
	p, ok := l.Get("MSFT")
	if !ok {
		t.Fatalf("position missing")
	}
	want := totalVal / totalQty
	if diff := p.AvgEntryPrice - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("avg %v, recomputed %v", p.AvgEntryPrice, want)
	}
	if p.NetQuantity != totalQty {
		t.Fatalf("net %v, want %v", p.NetQuantity, totalQty)
	}
}

func TestLedgerFlatRecordPersists(t *testing.T) {
	l := NewLedger()
	l.Apply(market.Trade{InstrumentID: "AAPL", Side: market.SideBuy, Quantity: 50, Price: 50})
	l.Apply(market.Trade{InstrumentID: "AAPL", Side: market.SideSell, Quantity: 50, Price: 75})

	p, ok := l.Get("AAPL")
	if !ok {
		t.Fatalf("flat position should persist")
	}
	if p.NetQuantity != 0 || p.AvgEntryPrice != 0 {
		t.Fatalf("expected zeroed record, got %+v", p)
	}
}

func TestLedgerAllSorted(t *testing.T) {
	l := NewLedger()
	for _, id := range []string{"MSFT", "AAPL", "EURUSD"} {
		l.Apply(market.Trade{InstrumentID: id, Side: market.SideBuy, Quantity: 1, Price: 1})
	}
	all := l.All()
	want := []string{"AAPL", "EURUSD", "MSFT"}
	for i, id := range want {
		if all[i].InstrumentID != id {
			t.Fatalf("position %d = %s, want %s", i, all[i].InstrumentID, id)
		}
	}
}
