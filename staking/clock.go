package staking

import "time"

// Clock supplies ledger time in integer seconds. The engine never reads the
// wall clock directly so accrual behavior stays deterministic under test.
type Clock interface {
	Now() int64
}

type systemClock struct{}

func (systemClock) Now() int64 {
	return time.Now().Unix()
}

// SystemClock returns the wall-clock backed Clock used in production
func SystemClock() Clock {
	return systemClock{}
}
