package commission

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRateFor(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{"Mỹ phẩm", "0.1"},
		{"Điện tử", "0.2"},
		{"Điện lạnh", "0.3"},
		{"Cao cấp", "0.5"},
		{"VIP", "0.6"},
		{"Đồ chơi", "0"},
		{"", "0"},
	}

	for _, tc := range tests {
		got := RateFor(tc.category)
		want, _ := decimal.NewFromString(tc.want)
		if !got.Equal(want) {
			t.Errorf("RateFor(%q) = %s, want %s", tc.category, got, want)
		}
	}
}

func TestForLine(t *testing.T) {
	price := decimal.NewFromInt(100000)

	got := ForLine(price, 2, "Điện tử")
	if want := decimal.NewFromInt(40000); !got.Equal(want) {
		t.Fatalf("expected commission %s, got %s", want, got)
	}

	if got := ForLine(price, 3, "Đồ chơi"); !got.IsZero() {
		t.Fatalf("expected zero commission for unrated category, got %s", got)
	}

	if got := ForLine(price, 0, "VIP"); !got.IsZero() {
		t.Fatalf("expected zero commission for zero quantity, got %s", got)
	}
}

func TestForLineRoundsToTwoPlaces(t *testing.T) {
	price, _ := decimal.NewFromString("33333.33")
	got := ForLine(price, 1, "Mỹ phẩm")
	want, _ := decimal.NewFromString("3333.33")
	if !got.Equal(want) {
		t.Fatalf("expected rounded commission %s, got %s", want, got)
	}
}
