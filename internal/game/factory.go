package game

import "time"

// Factory builds engines that share one move supplier and clock.
type Factory struct {
	supplier MoveSupplier
	now      func() time.Time
}

func NewFactory(supplier MoveSupplier, now func() time.Time) *Factory {
	if supplier == nil {
		supplier = NewRandomSupplier()
	}
	if now == nil {
		now = time.Now
	}
	return &Factory{supplier: supplier, now: now}
}

func (f *Factory) CreateEngine(id string) *RoundEngine {
	return NewRoundEngine(
		WithID(id),
		WithSupplier(f.supplier),
		WithClock(f.now),
	)
}
