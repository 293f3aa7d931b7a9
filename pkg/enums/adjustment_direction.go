package enums

import "fmt"

// AdjustmentDirection is the direction of a manual balance adjustment.
type AdjustmentDirection string

const (
	AdjustmentAdd      AdjustmentDirection = "add"
	AdjustmentSubtract AdjustmentDirection = "subtract"
)

var validAdjustmentDirections = []AdjustmentDirection{
	AdjustmentAdd,
	AdjustmentSubtract,
}

// String implements fmt.Stringer.
func (a AdjustmentDirection) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AdjustmentDirection.
func (a AdjustmentDirection) IsValid() bool {
	for _, candidate := range validAdjustmentDirections {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAdjustmentDirection converts raw input into an AdjustmentDirection.
func ParseAdjustmentDirection(value string) (AdjustmentDirection, error) {
	for _, candidate := range validAdjustmentDirections {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid adjustment direction %q", value)
}
