package config

import (
	"fmt"

	"risk-desk-go/market"
	"risk-desk-go/risk"
)

// Validate checks the whole config and reports the first offending field.
func Validate(cfg AppConfig) error {
	if len(cfg.Instruments) == 0 {
		return fmt.Errorf("%w: instruments list is empty", risk.ErrInvalidInstrumentConfig)
	}
	seen := make(map[string]bool, len(cfg.Instruments))
	for _, ic := range cfg.Instruments {
		if ic.ID == "" {
			return fmt.Errorf("%w: instrument id is required", risk.ErrInvalidInstrumentConfig)
		}
		if seen[ic.ID] {
			return fmt.Errorf("%w: duplicate instrument id %s", risk.ErrInvalidInstrumentConfig, ic.ID)
		}
		seen[ic.ID] = true
		if _, err := market.ParseAssetClass(ic.Type); err != nil {
			return fmt.Errorf("%w: instrument %s: %v", risk.ErrInvalidInstrumentConfig, ic.ID, err)
		}
		if _, err := market.ParseVolClass(ic.Volatility); err != nil {
			return fmt.Errorf("%w: instrument %s: %v", risk.ErrInvalidInstrumentConfig, ic.ID, err)
		}
		if ic.StartPrice <= 0 {
			return fmt.Errorf("%w: instrument %s startPrice must be > 0, got %v",
				risk.ErrInvalidInstrumentConfig, ic.ID, ic.StartPrice)
		}
		if ic.MinQty <= 0 || ic.MaxQty <= 0 || ic.MinQty > ic.MaxQty {
			return fmt.Errorf("%w: instrument %s qty range %v..%v is invalid",
				risk.ErrInvalidInstrumentConfig, ic.ID, ic.MinQty, ic.MaxQty)
		}
	}

	if err := cfg.LimitConfig().Validate(); err != nil {
		return err
	}

	sim := cfg.Simulation
	if sim.PriceTickSeconds <= 0 {
		return fmt.Errorf("simulation.priceTickSeconds must be > 0, got %v", sim.PriceTickSeconds)
	}
	if sim.SleepSecondsBetweenSteps <= 0 {
		return fmt.Errorf("simulation.sleepSecondsBetweenSteps must be > 0, got %v", sim.SleepSecondsBetweenSteps)
	}
	if sim.SnapshotEveryNTrades <= 0 {
		return fmt.Errorf("simulation.snapshotEveryNTrades must be > 0, got %v", sim.SnapshotEveryNTrades)
	}
	return nil
}
