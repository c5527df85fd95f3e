package sim

import (
	"errors"
	"math/rand"
	"sort"

	"risk-desk-go/market"
	"risk-desk-go/risk"
)

// Bounds 单个标的允许的随机成交数量范围。
type Bounds struct {
	Min float64
	Max float64
}

// Generator 产生随机订单流：随机标的、随机方向、范围内随机数量，
// 以价格源当前价成交。
type Generator struct {
	ids    []string // 排序保证同一种子下序列可重现
	bounds map[string]Bounds
	rng    *rand.Rand
	clock  risk.Clock
}

func NewGenerator(bounds map[string]Bounds, rng *rand.Rand) (*Generator, error) {
	if len(bounds) == 0 {
		return nil, errors.New("generator: no instruments configured")
	}
	ids := make([]string, 0, len(bounds))
	for id := range bounds {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return &Generator{
		ids:    ids,
		bounds: bounds,
		rng:    rng,
		clock:  risk.NowUTC,
	}, nil
}

// Next 生成下一笔成交；价格源缺价时失败。
func (g *Generator) Next(price market.PriceFn) (market.Trade, error) {
	id := g.ids[g.rng.Intn(len(g.ids))]
	b := g.bounds[id]
	qty := b.Min + g.rng.Float64()*(b.Max-b.Min)

	side := market.SideBuy
	if g.rng.Intn(2) == 1 {
		side = market.SideSell
	}

	px, err := price(id)
	if err != nil {
		return market.Trade{}, err
	}
	return market.Trade{
		Timestamp:    g.clock.Now(),
		InstrumentID: id,
		Side:         side,
		Quantity:     qty,
		Price:        px,
	}, nil
}
