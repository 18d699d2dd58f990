package tracker

import "github.com/skuubrain/Solscanner/internal/domain"

// ClassifyTransition compares two observations of the same wallet, keyed by
// mint, and classifies the move. Pure function of its inputs.
//
//	current empty                      -> sold_all
//	every previous mint gone or zeroed -> sold_all
//	any mint gone, zeroed, or reduced  -> sold_partially
//	otherwise                          -> holding
func ClassifyTransition(previous, current map[string]float64) domain.PositionStatus {
	if len(current) == 0 {
		return domain.StatusSoldAll
	}

	sold := 0
	reduced := 0
	for mint, prevAmount := range previous {
		currAmount := current[mint]
		if currAmount == 0 {
			sold++
		} else if currAmount < prevAmount {
			reduced++
		}
	}

	if len(previous) > 0 && sold == len(previous) {
		return domain.StatusSoldAll
	}
	if sold > 0 || reduced > 0 {
		return domain.StatusSoldPartially
	}
	return domain.StatusHolding
}
