package inventory

import "math"

// Notional 持仓名义市值 |net * price|。
func (p Position) Notional(price float64) float64 {
	return math.Abs(p.NetQuantity * price)
}

// UnrealizedPnL 基于当前价的未实现盈亏，(price - avg) * net，
// 多头上涨为正，空头下跌为正。
func (p Position) UnrealizedPnL(price float64) float64 {
	return (price - p.AvgEntryPrice) * p.NetQuantity
}
