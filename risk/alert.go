package risk

import "time"

// Severity 告警级别，INFO < WARN < CRITICAL。
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarn     Severity = "WARN"
	SeverityCritical Severity = "CRITICAL"
)

// 告警类型标签。
const (
	KindInstrumentNotionalLimit = "INSTRUMENT_NOTIONAL_LIMIT"
	KindGrossNotionalLimit      = "GROSS_NOTIONAL_LIMIT"
)

// Details 各告警类型专属的载荷，封闭集合。
type Details interface {
	alertDetails()
}

// InstrumentNotionalDetails 单标的名义市值超限。
type InstrumentNotionalDetails struct {
	InstrumentID string
	Notional     float64
}

func (InstrumentNotionalDetails) alertDetails() {}

// GrossNotionalDetails 组合总名义市值超限。
type GrossNotionalDetails struct {
	GrossNotional float64
}

func (GrossNotionalDetails) alertDetails() {}

// Alert 一次限额评估产生的告警，创建后不可变。
type Alert struct {
	Timestamp time.Time
	Severity  Severity
	Kind      string
	Message   string
	Details   Details
}
