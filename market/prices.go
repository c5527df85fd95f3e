package market

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
)

// volScale maps a volatility class onto the half-width of the per-tick
// percentage move.
var volScale = map[VolClass]float64{
	VolVeryLow: 0.0005,
	VolLow:     0.001,
	VolMedium:  0.002,
}

// priceFloor keeps simulated prices strictly positive.
const priceFloor = 0.01

// Simulator drives a bounded random walk over the instrument catalog.
// Each Tick moves every price by a uniform percentage draw scaled by the
// instrument's volatility class.
type Simulator struct {
	mu          sync.RWMutex
	ids         []string // sorted; fixes rng draw order so runs are reproducible
	instruments map[string]Instrument
	prices      map[string]float64
	rng         *rand.Rand
}

// NewSimulator seeds current prices from the catalog start prices. The
// rng is injected so tests can run deterministically.
func NewSimulator(catalog []Instrument, rng *rand.Rand) *Simulator {
	s := &Simulator{
		ids:         make([]string, 0, len(catalog)),
		instruments: make(map[string]Instrument, len(catalog)),
		prices:      make(map[string]float64, len(catalog)),
		rng:         rng,
	}
	for _, inst := range catalog {
		s.ids = append(s.ids, inst.ID)
		s.instruments[inst.ID] = inst
		s.prices[inst.ID] = inst.StartPrice
	}
	sort.Strings(s.ids)
	return s
}

// Tick advances every instrument price by one random step.
func (s *Simulator) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.ids {
		scale, ok := volScale[s.instruments[id].Volatility]
		if !ok {
			scale = volScale[VolLow]
		}
		// uniform pct move in [-scale, +scale]
		pct := (s.rng.Float64()*2 - 1) * scale
		next := s.prices[id] * (1 + pct)
		if next < priceFloor {
			next = priceFloor
		}
		s.prices[id] = next
	}
}

// Price returns the current price for id.
func (s *Simulator) Price(instrumentID string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.prices[instrumentID]
	if !ok {
		return 0, fmt.Errorf("price for %s: %w", instrumentID, ErrUnknownInstrument)
	}
	return p, nil
}

// Prices returns a copy of the current price map.
func (s *Simulator) Prices() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]float64, len(s.prices))
	for id, p := range s.prices {
		out[id] = p
	}
	return out
}
