package risk

import (
	"fmt"
	"time"

	"risk-desk-go/inventory"
	"risk-desk-go/market"
)

// LimitConfig 风控阈值，构造时校验，之后只读。
type LimitConfig struct {
	MaxNotionalPerInstrument float64
	MaxGrossNotional         float64
}

// Validate 拒绝非正阈值。
func (c LimitConfig) Validate() error {
	if c.MaxNotionalPerInstrument <= 0 {
		return fmt.Errorf("%w: maxNotionalPerInstrument must be > 0, got %v",
			ErrInvalidLimitConfig, c.MaxNotionalPerInstrument)
	}
	if c.MaxGrossNotional <= 0 {
		return fmt.Errorf("%w: maxGrossNotional must be > 0, got %v",
			ErrInvalidLimitConfig, c.MaxGrossNotional)
	}
	return nil
}

// Monitor 对账本快照做无状态限额评估。
type Monitor struct {
	limits LimitConfig
}

func NewMonitor(limits LimitConfig) (*Monitor, error) {
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	return &Monitor{limits: limits}, nil
}

// Limits 返回当前阈值配置。
func (m *Monitor) Limits() LimitConfig { return m.limits }

// Evaluate 按标的名义市值与组合总名义市值逐项检查。
// positions 需已按标的 id 排序（Ledger.All 保证），使告警顺序可重现。
// 持仓非零但缺价视为致命错误：无法定价的仓位不能做风控判断。
func (m *Monitor) Evaluate(positions []inventory.Position, price market.PriceFn, now time.Time) ([]Alert, error) {
	var alerts []Alert
	gross := 0.0

	for _, pos := range positions {
		if pos.NetQuantity == 0 {
			// 平仓记录名义市值为零，永不告警
			continue
		}
		px, err := price(pos.InstrumentID)
		if err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", pos.InstrumentID, err)
		}
		notional := pos.Notional(px)
		gross += notional

		if notional > m.limits.MaxNotionalPerInstrument {
			alerts = append(alerts, Alert{
				Timestamp: now,
				Severity:  SeverityCritical,
				Kind:      KindInstrumentNotionalLimit,
				Message: fmt.Sprintf("instrument %s notional %.2f exceeds limit %.2f",
					pos.InstrumentID, notional, m.limits.MaxNotionalPerInstrument),
				Details: InstrumentNotionalDetails{
					InstrumentID: pos.InstrumentID,
					Notional:     notional,
				},
			})
		}
	}

	if gross > m.limits.MaxGrossNotional {
		alerts = append(alerts, Alert{
			Timestamp: now,
			Severity:  SeverityWarn,
			Kind:      KindGrossNotionalLimit,
			Message: fmt.Sprintf("gross notional %.2f exceeds limit %.2f",
				gross, m.limits.MaxGrossNotional),
			Details: GrossNotionalDetails{GrossNotional: gross},
		})
	}

	return alerts, nil
}
