package staging

import "fmt"

// StructuralError reports a yard plan that cannot be analyzed at all, as
// opposed to per-train conditions that only skip a single train.
type StructuralError struct {
	Plan   string
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("yard plan %s unusable: %s", e.Plan, e.Reason)
}
