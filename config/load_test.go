package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"risk-desk-go/risk"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

const validYAML = `
instruments:
  - id: AAPL
    type: equity
    startPrice: 200.0
    volatility: medium
    minQty: 10
    maxQty: 5000
  - id: EURUSD
    type: fx
    startPrice: 1.10
    volatility: very_low
    minQty: 1000
    maxQty: 10000
limits:
  maxNotionalPerInstrument: 1000000
  maxGrossNotional: 2000000
`

func TestLoad(t *testing.T) {
	path := writeTempConfig(t, validYAML)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Instruments) != 2 || cfg.Instruments[0].ID != "AAPL" {
		t.Fatalf("unexpected instruments: %+v", cfg.Instruments)
	}
	if cfg.Limits.MaxGrossNotional != 2000000 {
		t.Fatalf("unexpected limits: %+v", cfg.Limits)
	}
	// simulation section omitted: defaults must apply
	if cfg.Simulation.SnapshotEveryNTrades != 20 || cfg.Simulation.PriceTickSeconds != 1.0 {
		t.Fatalf("defaults not applied: %+v", cfg.Simulation)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("log defaults not applied: %+v", cfg.Log)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeTempConfig(t, validYAML)
	t.Setenv("RISKDESK_LOG_LEVEL", "debug")
	t.Setenv("RISKDESK_METRICS_ADDR", ":9191")
	cfg, err := LoadWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Metrics.Addr != ":9191" {
		t.Fatalf("env overrides not applied: %+v %+v", cfg.Log, cfg.Metrics)
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr error
		wantMsg string
	}{
		{
			name:    "no instruments",
			mutate:  func(c *AppConfig) { c.Instruments = nil },
			wantErr: risk.ErrInvalidInstrumentConfig,
		},
		{
			name:    "duplicate id",
			mutate:  func(c *AppConfig) { c.Instruments[1].ID = "AAPL" },
			wantErr: risk.ErrInvalidInstrumentConfig,
			wantMsg: "AAPL",
		},
		{
			name:    "bad asset class",
			mutate:  func(c *AppConfig) { c.Instruments[0].Type = "crypto" },
			wantErr: risk.ErrInvalidInstrumentConfig,
			wantMsg: "crypto",
		},
		{
			name:    "bad volatility",
			mutate:  func(c *AppConfig) { c.Instruments[0].Volatility = "extreme" },
			wantErr: risk.ErrInvalidInstrumentConfig,
		},
		{
			name:    "non-positive start price",
			mutate:  func(c *AppConfig) { c.Instruments[0].StartPrice = 0 },
			wantErr: risk.ErrInvalidInstrumentConfig,
			wantMsg: "startPrice",
		},
		{
			name:    "min qty above max",
			mutate:  func(c *AppConfig) { c.Instruments[0].MinQty = 6000 },
			wantErr: risk.ErrInvalidInstrumentConfig,
			wantMsg: "qty range",
		},
		{
			name:    "zero instrument limit",
			mutate:  func(c *AppConfig) { c.Limits.MaxNotionalPerInstrument = 0 },
			wantErr: risk.ErrInvalidLimitConfig,
		},
		{
			name:    "negative gross limit",
			mutate:  func(c *AppConfig) { c.Limits.MaxGrossNotional = -1 },
			wantErr: risk.ErrInvalidLimitConfig,
		},
		{
			name:    "zero snapshot cadence",
			mutate:  func(c *AppConfig) { c.Simulation.SnapshotEveryNTrades = 0 },
			wantMsg: "snapshotEveryNTrades",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(writeTempConfig(t, validYAML))
			if err != nil {
				t.Fatalf("base config invalid: %v", err)
			}
			tc.mutate(&cfg)
			err = Validate(cfg)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("error %v does not wrap %v", err, tc.wantErr)
			}
			if tc.wantMsg != "" && !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("error %q does not name %q", err, tc.wantMsg)
			}
		})
	}
}

func TestCatalogConversion(t *testing.T) {
	cfg, err := Load(writeTempConfig(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cat := cfg.Catalog()
	if len(cat) != 2 {
		t.Fatalf("expected 2 catalog entries, got %d", len(cat))
	}
	if cat[0].ID != "AAPL" || string(cat[0].Class) != "equity" || cat[0].StartPrice != 200 {
		t.Fatalf("unexpected entry: %+v", cat[0])
	}
	limits := cfg.LimitConfig()
	if err := limits.Validate(); err != nil {
		t.Fatalf("converted limits invalid: %v", err)
	}
}
