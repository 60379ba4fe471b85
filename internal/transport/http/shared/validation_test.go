package shared

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidatorCollectsIssues(t *testing.T) {
	v := NewValidator()
	v.Required("name", "  ", "name is required")
	v.MinLength("password", "short", 8, "password too short")
	v.Enum("role", "SUPERVISOR", []string{"ADMIN", "MANAGER", "USER"}, "unknown role")
	v.PositiveAmount("dailySalary", decimal.Zero, "must be positive")

	if !v.HasIssues() {
		t.Fatal("expected issues")
	}
	if len(v.Issues()) != 4 {
		t.Fatalf("expected 4 issues, got %d", len(v.Issues()))
	}
}

func TestValidatorEnumIgnoresCase(t *testing.T) {
	v := NewValidator()
	v.Enum("role", "admin", []string{"ADMIN"}, "unknown role")
	if v.HasIssues() {
		t.Fatalf("expected case-insensitive match, got %+v", v.Issues())
	}
}

func TestValidatorDate(t *testing.T) {
	v := NewValidator()

	parsed, ok := v.Date("joinDate", "2025-03-15")
	if !ok || parsed.Year() != 2025 {
		t.Fatalf("expected valid date, got ok=%v %v", ok, parsed)
	}

	if _, ok := v.Date("dateOfBirth", "15/03/2025"); ok {
		t.Fatal("expected rejection of non-ISO date")
	}
	if !v.HasIssues() {
		t.Fatal("expected a recorded issue")
	}
}

func TestValidatorDateOrder(t *testing.T) {
	v := NewValidator()
	start, _ := v.Date("startDate", "2025-03-10")
	end, _ := v.Date("endDate", "2025-03-05")
	v.DateOrder("startDate", start, "endDate", end)

	if len(v.Issues()) != 2 {
		t.Fatalf("expected issues on both fields, got %+v", v.Issues())
	}
}

func TestAmountBetween(t *testing.T) {
	one := decimal.NewFromInt(1)
	two := decimal.NewFromInt(2)

	v := NewValidator()
	v.AmountBetween("multiplier", decimal.NewFromFloat(1.5), one, two, "out of range")
	if v.HasIssues() {
		t.Fatalf("1.5 must be accepted: %+v", v.Issues())
	}

	v = NewValidator()
	v.AmountBetween("multiplier", decimal.NewFromFloat(2.5), one, two, "out of range")
	if !v.HasIssues() {
		t.Fatal("2.5 must be rejected")
	}
}

func TestPageCount(t *testing.T) {
	cases := []struct {
		total, want int
	}{
		{0, 0},
		{1, 1},
		{20, 1},
		{21, 2},
		{40, 2},
	}
	for _, tc := range cases {
		if got := PageCount(tc.total); got != tc.want {
			t.Fatalf("PageCount(%d) = %d, want %d", tc.total, got, tc.want)
		}
	}
}
