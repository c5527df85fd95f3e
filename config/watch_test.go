package config

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

func TestWatcherAppliesPacingUpdate(t *testing.T) {
	path := writeTempConfig(t, validYAML)

	updates := make(chan SimulationConfig, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	w := Watcher{Path: path, Cooldown: 10 * time.Millisecond}
	go func() {
		_ = w.Start(ctx, func(sc SimulationConfig) {
			select {
			case updates <- sc:
			default:
			}
		})
	}()

	// 等待 watcher 注册完成
	time.Sleep(100 * time.Millisecond)

	updated := strings.Replace(validYAML, "maxGrossNotional: 2000000",
		"maxGrossNotional: 2000000\nsimulation:\n  snapshotEveryNTrades: 7", 1)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	select {
	case sc := <-updates:
		if sc.SnapshotEveryNTrades != 7 {
			t.Fatalf("pacing update = %+v, want snapshotEveryNTrades 7", sc)
		}
	case <-ctx.Done():
		t.Fatalf("no pacing update observed")
	}
}

func TestWatcherIgnoresInvalidConfig(t *testing.T) {
	path := writeTempConfig(t, validYAML)

	updates := make(chan SimulationConfig, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := Watcher{Path: path, Cooldown: 10 * time.Millisecond}
	go func() {
		_ = w.Start(ctx, func(sc SimulationConfig) {
			select {
			case updates <- sc:
			default:
			}
		})
	}()

	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(path, []byte("instruments: []\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	select {
	case sc := <-updates:
		t.Fatalf("invalid config applied: %+v", sc)
	case <-time.After(500 * time.Millisecond):
	}
}
