// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		label string
		want  Category
	}{
		{"Stationary Energy", CategoryStationaryEnergy},
		{"stationary energy", CategoryStationaryEnergy},
		{"  Stationary   Energy  ", CategoryStationaryEnergy},
		{"Waste", CategoryWaste},
		{"WASTE", CategoryWaste},
		{"Transport", CategoryTransport},
		{"transport\n", CategoryTransport},
		{"Other", CategoryOther},
		{"Energy", CategoryOther},
		{"Transportation", CategoryOther},
		{"Water", CategoryOther},
		{"", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := ParseCategory(tt.label); got != tt.want {
				t.Errorf("ParseCategory(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestCategoriesOrder(t *testing.T) {
	want := []Category{CategoryStationaryEnergy, CategoryWaste, CategoryTransport, CategoryOther}
	if len(Categories) != len(want) {
		t.Fatalf("got %d categories, want %d", len(Categories), len(want))
	}
	for i, c := range want {
		if Categories[i] != c {
			t.Errorf("Categories[%d] = %q, want %q", i, Categories[i], c)
		}
	}
}
