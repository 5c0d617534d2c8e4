package util

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateCost(t *testing.T) {
	cases := []struct {
		cost    string
		wantErr bool
	}{
		{"0", false},
		{"0.00", false},
		{"150.75", false},
		{"9999999.99", false},
		{"-0.01", true},
		{"-500", true},
		{"10000000", true},
	}
	for _, c := range cases {
		cost, err := decimal.NewFromString(c.cost)
		if err != nil {
			t.Fatalf("parse %q: %v", c.cost, err)
		}
		err = ValidateCost(cost)
		if (err != nil) != c.wantErr {
			t.Errorf("ValidateCost(%s) error = %v, wantErr %v", c.cost, err, c.wantErr)
		}
	}
}

func TestValidateInventoryCode(t *testing.T) {
	cases := []struct {
		code    string
		wantErr bool
	}{
		{"IT-PC-001", false},
		{"A", false},
		{strings.Repeat("X", 50), false},
		{"", true},
		{strings.Repeat("X", 51), true},
	}
	for _, c := range cases {
		err := ValidateInventoryCode(c.code)
		if (err != nil) != c.wantErr {
			t.Errorf("ValidateInventoryCode(%q) error = %v, wantErr %v", c.code, err, c.wantErr)
		}
	}
}
