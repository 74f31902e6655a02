package domain

import "fmt"

// AllocationBasis selects the weight function used to split a fee pool
// across line items. Chosen by the caller, never inferred.
type AllocationBasis string

const (
	// BasisByQuantity weights each item by its declared quantity.
	BasisByQuantity AllocationBasis = "quantity"
	// BasisByValue weights each item by its goods value in the pool currency.
	BasisByValue AllocationBasis = "value"
	// BasisEqual gives every item the same weight.
	BasisEqual AllocationBasis = "equal"
)

// ParseAllocationBasis maps a request string onto a known basis.
func ParseAllocationBasis(s string) (AllocationBasis, error) {
	switch AllocationBasis(s) {
	case BasisByQuantity, BasisByValue, BasisEqual:
		return AllocationBasis(s), nil
	default:
		return "", fmt.Errorf("basis %q: %w", s, ErrUnknownBasis)
	}
}
