package monitor

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"risk-desk-go/risk"
)

// Monitor Prometheus 指标收集器，每个实例持有独立 registry。
type Monitor struct {
	registry *prometheus.Registry

	// 成交与告警
	tradesProcessed prometheus.Counter
	alertsRaised    *prometheus.CounterVec

	// 仓位指标（按标的）
	position *prometheus.GaugeVec
	notional *prometheus.GaugeVec
	pnl      *prometheus.GaugeVec

	// 组合汇总
	grossNotional prometheus.Gauge
	totalPnL      prometheus.Gauge
}

// Config 监控配置。
type Config struct {
	Namespace string
	Subsystem string
}

// DefaultConfig 返回默认配置。
func DefaultConfig() Config {
	return Config{
		Namespace: "riskdesk",
		Subsystem: "sim",
	}
}

// New 创建 Monitor。
func New(cfg Config) *Monitor {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Monitor{
		registry: reg,
		tradesProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "trades_processed_total",
			Help: "Number of trades applied to the ledger",
		}),
		alertsRaised: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "alerts_raised_total",
			Help: "Limit alerts raised, labeled by kind",
		}, []string{"kind"}),
		position: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "net_position",
			Help: "Signed net quantity per instrument",
		}, []string{"instrument"}),
		notional: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "notional",
			Help: "Absolute notional per instrument",
		}, []string{"instrument"}),
		pnl: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "unrealized_pnl",
			Help: "Unrealized PnL per instrument",
		}, []string{"instrument"}),
		grossNotional: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "gross_notional",
			Help: "Sum of notional across all instruments",
		}),
		totalPnL: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "total_unrealized_pnl",
			Help: "Sum of unrealized PnL across all instruments",
		}),
	}
	return m
}

// ObserveTrade 记录一笔已处理成交。
func (m *Monitor) ObserveTrade() {
	m.tradesProcessed.Inc()
}

// ObserveAlerts 按类型累计本次评估产生的告警。
func (m *Monitor) ObserveAlerts(alerts []risk.Alert) {
	for _, a := range alerts {
		m.alertsRaised.WithLabelValues(a.Kind).Inc()
	}
}

// ObserveSnapshot 将估值视图写入仓位与汇总指标。
func (m *Monitor) ObserveSnapshot(v risk.SnapshotView) {
	for _, p := range v.Positions {
		m.position.WithLabelValues(p.InstrumentID).Set(p.NetQuantity)
		m.notional.WithLabelValues(p.InstrumentID).Set(p.Notional)
		m.pnl.WithLabelValues(p.InstrumentID).Set(p.PnL)
	}
	m.grossNotional.Set(v.GrossNotional)
	m.totalPnL.Set(v.TotalPnL)
}

// Handler 返回 /metrics 处理器。
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StartServer 在独立 goroutine 中启动指标服务。
func (m *Monitor) StartServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	go func() {
		_ = http.ListenAndServe(addr, mux)
	}()
}
