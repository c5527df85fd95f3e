package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"risk-desk-go/infrastructure/logger"
	"risk-desk-go/market"
	"risk-desk-go/risk"
)

// AppConfig holds the full runtime configuration.
type AppConfig struct {
	Instruments []InstrumentConfig `yaml:"instruments"`
	Limits      LimitsConfig       `yaml:"limits"`
	Simulation  SimulationConfig   `yaml:"simulation"`
	Metrics     MetricsConfig      `yaml:"metrics"`
	Log         logger.Config      `yaml:"log"`
}

// InstrumentConfig describes one tradable instrument plus the quantity
// range the trade generator may draw from.
type InstrumentConfig struct {
	ID         string  `yaml:"id"`
	Type       string  `yaml:"type"`       // equity | fx
	StartPrice float64 `yaml:"startPrice"`
	Volatility string  `yaml:"volatility"` // very_low | low | medium
	MinQty     float64 `yaml:"minQty"`
	MaxQty     float64 `yaml:"maxQty"`
}

type LimitsConfig struct {
	MaxNotionalPerInstrument float64 `yaml:"maxNotionalPerInstrument"`
	MaxGrossNotional         float64 `yaml:"maxGrossNotional"`
}

// SimulationConfig controls loop pacing. All fields have defaults and may
// be updated at runtime through the watcher; instrument and limit changes
// require a restart.
type SimulationConfig struct {
	PriceTickSeconds         float64 `yaml:"priceTickSeconds"`
	SnapshotEveryNTrades     int     `yaml:"snapshotEveryNTrades"`
	SleepSecondsBetweenSteps float64 `yaml:"sleepSecondsBetweenSteps"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"` // e.g. ":9090"; empty disables the endpoint
}

func defaultSimulation() SimulationConfig {
	return SimulationConfig{
		PriceTickSeconds:         1.0,
		SnapshotEveryNTrades:     20,
		SleepSecondsBetweenSteps: 0.2,
	}
}

// Load reads YAML config from path, fills defaults and validates.
func Load(path string) (AppConfig, error) {
	var cfg AppConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	cfg.Simulation = defaultSimulation()
	cfg.Log = logger.DefaultConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadWithEnvOverrides loads config then overrides operational fields from
// env vars if present.
func LoadWithEnvOverrides(path string) (AppConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	if v := os.Getenv("RISKDESK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("RISKDESK_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	return cfg, Validate(cfg)
}

// Catalog converts the validated instrument list into catalog entries.
func (c AppConfig) Catalog() []market.Instrument {
	out := make([]market.Instrument, 0, len(c.Instruments))
	for _, ic := range c.Instruments {
		class, _ := market.ParseAssetClass(ic.Type)
		vol, _ := market.ParseVolClass(ic.Volatility)
		out = append(out, market.Instrument{
			ID:         ic.ID,
			Class:      class,
			Volatility: vol,
			StartPrice: ic.StartPrice,
		})
	}
	return out
}

// LimitConfig converts the limits section.
func (c AppConfig) LimitConfig() risk.LimitConfig {
	return risk.LimitConfig{
		MaxNotionalPerInstrument: c.Limits.MaxNotionalPerInstrument,
		MaxGrossNotional:         c.Limits.MaxGrossNotional,
	}
}
