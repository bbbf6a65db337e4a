package domain

import "fmt"

// CheckDenseOrder verifies that the orders of sections are exactly {0..N-1}
// with no duplicates, and that section ids are unique.
func CheckDenseOrder(sections []SectionInstance) error {
	n := len(sections)
	seen := make([]bool, n)
	ids := make(map[string]struct{}, n)
	for _, s := range sections {
		if s.Order < 0 || s.Order >= n {
			return fmt.Errorf("%w: order %d out of range for %d sections", ErrOrderInvariant, s.Order, n)
		}
		if seen[s.Order] {
			return fmt.Errorf("%w: order %d assigned twice", ErrOrderInvariant, s.Order)
		}
		seen[s.Order] = true
		if _, dup := ids[s.ID]; dup {
			return fmt.Errorf("%w: section id %q repeated", ErrOrderInvariant, s.ID)
		}
		ids[s.ID] = struct{}{}
	}
	return nil
}
