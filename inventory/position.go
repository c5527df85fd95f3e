package inventory

import (
	"math"

	"risk-desk-go/market"
)

// State 持仓方向。
type State int

const (
	Flat State = iota
	Long
	Short
)

func (s State) String() string {
	switch s {
	case Long:
		return "LONG"
	case Short:
		return "SHORT"
	default:
		return "FLAT"
	}
}

// Position 单一标的的净持仓与加权平均开仓价。
// 不变式：NetQuantity == 0 时 AvgEntryPrice == 0。
type Position struct {
	InstrumentID  string
	NetQuantity   float64
	AvgEntryPrice float64
}

// State 返回持仓方向。
func (p Position) State() State {
	switch {
	case p.NetQuantity > 0:
		return Long
	case p.NetQuantity < 0:
		return Short
	default:
		return Flat
	}
}

// closeTolerance 处理浮点恰好平仓：|new| 落在该相对容差内视为归零，
// 避免舍入误差被误判成反向翻仓。
const closeTolerance = 1e-9

// ApplyTrade 纯函数：旧仓位 + 成交 → 新仓位。
// 四类迁移按方向与幅度判定，互斥：
//   - 恰好平仓：数量与均价同时归零
//   - 同向加仓（含从零开仓）：数量加权平均成本
//   - 同向减仓：成本不变
//   - 反向翻仓：残余仓位按成交价重新开仓
func ApplyTrade(p Position, t market.Trade) Position {
	signed := t.SignedQty()
	newQty := p.NetQuantity + signed

	scale := math.Max(1, math.Max(math.Abs(p.NetQuantity), math.Abs(signed)))
	switch {
	case math.Abs(newQty) <= closeTolerance*scale:
		return Position{InstrumentID: p.InstrumentID}

	case sameDirection(p.NetQuantity, signed):
		total := p.AvgEntryPrice*math.Abs(p.NetQuantity) + t.Price*math.Abs(signed)
		return Position{
			InstrumentID:  p.InstrumentID,
			NetQuantity:   newQty,
			AvgEntryPrice: total / math.Abs(newQty),
		}

	case p.NetQuantity*newQty > 0:
		// 减仓未过零，成本保持
		return Position{
			InstrumentID:  p.InstrumentID,
			NetQuantity:   newQty,
			AvgEntryPrice: p.AvgEntryPrice,
		}

	default:
		// 翻仓，以成交价作为新开仓成本
		return Position{
			InstrumentID:  p.InstrumentID,
			NetQuantity:   newQty,
			AvgEntryPrice: t.Price,
		}
	}
}

// sameDirection 判断本次成交是否与现有仓位同向（零仓位视为同向开仓）。
func sameDirection(net, signed float64) bool {
	if net == 0 {
		return true
	}
	return (net > 0) == (signed > 0)
}
