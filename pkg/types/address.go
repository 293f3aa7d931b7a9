package types

import "strings"

// Address is the shipping destination captured with each order. It is stored
// as jsonb and never normalized after order creation.
type Address struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Street   string `json:"street"`
	Ward     string `json:"ward,omitempty"`
	District string `json:"district,omitempty"`
	City     string `json:"city"`
	Note     string `json:"note,omitempty"`
}

// IsZero reports whether no address fields were supplied.
func (a Address) IsZero() bool {
	return strings.TrimSpace(a.FullName) == "" &&
		strings.TrimSpace(a.Phone) == "" &&
		strings.TrimSpace(a.Street) == "" &&
		strings.TrimSpace(a.City) == ""
}
