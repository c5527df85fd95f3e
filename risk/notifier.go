package risk

import (
	"context"
	"log/slog"
)

// AlertClient 抽象外部告警通道。
type AlertClient interface {
	Send(a Alert)
}

// Notifier 将引擎告警转发到日志与外部通道。
type Notifier struct {
	alert AlertClient
}

func NewNotifier(alert AlertClient) *Notifier {
	return &Notifier{alert: alert}
}

// Notify 逐条转发本次评估的告警，日志级别跟随告警级别。
func (n *Notifier) Notify(alerts []Alert) {
	for _, a := range alerts {
		slog.Log(context.Background(), slogLevel(a.Severity), "limit breach",
			"kind", a.Kind,
			"severity", string(a.Severity),
			"msg", a.Message,
		)
		if n.alert != nil {
			n.alert.Send(a)
		}
	}
}

func slogLevel(s Severity) slog.Level {
	switch s {
	case SeverityCritical:
		return slog.LevelError
	case SeverityWarn:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
