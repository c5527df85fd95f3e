package market

import (
	"errors"
	"fmt"
)

// ErrUnknownInstrument is returned when a price or trade references an
// instrument id that is not part of the catalog.
var ErrUnknownInstrument = errors.New("unknown instrument")

// AssetClass distinguishes the broad instrument category.
type AssetClass string

const (
	AssetEquity AssetClass = "equity"
	AssetFX     AssetClass = "fx"
)

// ParseAssetClass maps a config string onto an AssetClass.
func ParseAssetClass(s string) (AssetClass, error) {
	switch AssetClass(s) {
	case AssetEquity, AssetFX:
		return AssetClass(s), nil
	default:
		return "", fmt.Errorf("invalid asset class %q", s)
	}
}

// VolClass buckets an instrument by expected volatility; it selects the
// step size of the simulated price walk.
type VolClass string

const (
	VolVeryLow VolClass = "very_low"
	VolLow     VolClass = "low"
	VolMedium  VolClass = "medium"
)

// ParseVolClass maps a config string onto a VolClass.
func ParseVolClass(s string) (VolClass, error) {
	switch VolClass(s) {
	case VolVeryLow, VolLow, VolMedium:
		return VolClass(s), nil
	default:
		return "", fmt.Errorf("invalid volatility class %q", s)
	}
}

// Instrument is a static catalog entry. Immutable after startup.
type Instrument struct {
	ID         string
	Class      AssetClass
	Volatility VolClass
	StartPrice float64
}
