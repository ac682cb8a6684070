// Package budget implements the per-user point ledger: a fixed ceiling of
// points per sprint, allocated incrementally across companies. Functions are
// pure over an entries snapshot; persistence happens elsewhere, and callers
// apply the returned snapshot only after the write is confirmed.
package budget

import (
	"errors"

	"github.com/google/uuid"
)

// DefaultCeiling is the points every user may allocate per sprint.
const DefaultCeiling = 100.0

var (
	ErrInvalidAmount  = errors.New("investment amount must be greater than zero")
	ErrInvalidPrice   = errors.New("company price must be greater than zero")
	ErrBudgetExceeded = errors.New("investment exceeds remaining budget")
	// ErrLedgerCorrupt means the entries already sum past the ceiling. This
	// is surfaced, never clamped, so the caller can reload from the source
	// of truth.
	ErrLedgerCorrupt = errors.New("ledger exceeds budget ceiling")
)

// Entry is one position: accumulated points and accumulated shares for a
// single company. Shares sum amount/price at each contribution's price and
// are never recomputed from the total.
type Entry struct {
	CompanyID uuid.UUID
	Amount    float64
	Shares    float64
}

// Invested returns the total points allocated across all entries.
func Invested(entries []Entry) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.Amount
	}
	return sum
}

// Remaining returns ceiling minus the allocated total. A negative result is
// an invariant violation and returns ErrLedgerCorrupt.
func Remaining(entries []Entry, ceiling float64) (float64, error) {
	rem := ceiling - Invested(entries)
	if rem < 0 {
		return 0, ErrLedgerCorrupt
	}
	return rem, nil
}

// Record validates an investment against the ceiling and returns a new
// entries slice with the position created or topped up. The input slice is
// never mutated; on any error it is returned unchanged semantics-wise
// (callers keep their snapshot).
func Record(entries []Entry, companyID uuid.UUID, amount, price, ceiling float64) ([]Entry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}
	rem, err := Remaining(entries, ceiling)
	if err != nil {
		return nil, err
	}
	if amount > rem {
		return nil, ErrBudgetExceeded
	}

	out := make([]Entry, len(entries))
	copy(out, entries)
	for i := range out {
		if out[i].CompanyID == companyID {
			out[i].Amount += amount
			out[i].Shares += amount / price
			return out, nil
		}
	}
	return append(out, Entry{
		CompanyID: companyID,
		Amount:    amount,
		Shares:    amount / price,
	}), nil
}
