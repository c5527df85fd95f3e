package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"risk-desk-go/monitor/logschema"
)

// Logger 封装 zap，提供结构化日志。
type Logger struct {
	*zap.Logger
	config Config
}

// Config 日志配置。
type Config struct {
	Level      string   `yaml:"level"`      // debug, info, warn, error
	Format     string   `yaml:"format"`     // json 或 console
	Outputs    []string `yaml:"outputs"`    // stdout, file
	OutputFile string   `yaml:"outputFile"` // 日志文件路径
}

// DefaultConfig 返回默认配置。
func DefaultConfig() Config {
	return Config{
		Level:   "info",
		Format:  "console",
		Outputs: []string{"stdout"},
	}
}

// New 创建 Logger。
func New(cfg Config) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %s: %w", cfg.Level, err)
	}

	var encCfg zapcore.EncoderConfig
	if cfg.Format == "console" {
		encCfg = zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encCfg = zap.NewProductionEncoderConfig()
	}
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	newEncoder := func() zapcore.Encoder {
		if cfg.Format == "console" {
			return zapcore.NewConsoleEncoder(encCfg)
		}
		return zapcore.NewJSONEncoder(encCfg)
	}

	var cores []zapcore.Core
	if contains(cfg.Outputs, "stdout") {
		cores = append(cores, zapcore.NewCore(newEncoder(), zapcore.AddSync(os.Stdout), level))
	}
	if contains(cfg.Outputs, "file") && cfg.OutputFile != "" {
		f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), level))
	}
	if len(cores) == 0 {
		cores = append(cores, zapcore.NewCore(newEncoder(), zapcore.AddSync(os.Stdout), level))
	}

	zl := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return &Logger{Logger: zl, config: cfg}, nil
}

// LogEvent 记录结构化事件；字段先经 logschema 校验，缺字段时附带
// schema_error 字段而不是丢弃事件。
func (l *Logger) LogEvent(level zapcore.Level, event string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	if err := logschema.Validate(event, fields); err != nil {
		fields["schema_error"] = err.Error()
	}
	zfields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zfields = append(zfields, zap.Any(k, v))
	}
	l.Log(level, event, zfields...)
}

// LogTrade 记录一笔成交事件。
func (l *Logger) LogTrade(instrumentID, side string, qty, price float64) {
	l.LogEvent(zapcore.InfoLevel, "trade_event", map[string]interface{}{
		"instrument": instrumentID,
		"side":       side,
		"qty":        qty,
		"price":      price,
	})
}

// LogRisk 记录一次限额告警。
func (l *Logger) LogRisk(kind, severity, msg string) {
	l.LogEvent(zapcore.WarnLevel, "risk_event", map[string]interface{}{
		"kind":     kind,
		"severity": severity,
		"msg":      msg,
	})
}

// LogSnapshot 记录周期快照汇总。
func (l *Logger) LogSnapshot(grossNotional, totalPnL float64, positions int) {
	l.LogEvent(zapcore.InfoLevel, "snapshot_event", map[string]interface{}{
		"grossNotional": grossNotional,
		"totalPnl":      totalPnL,
		"positions":     positions,
	})
}

// Close 刷新缓冲。
func (l *Logger) Close() error {
	return l.Sync()
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
