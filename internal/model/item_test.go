package model

import "testing"

func TestParsePackagingType(t *testing.T) {
	tests := []struct {
		in      string
		want    PackagingType
		wantErr bool
	}{
		{"", PackagingUnset, false},
		{"Bottle", PackagingBottle, false},
		{"Tetra Pack", PackagingTetraPack, false},
		{"bottle", PackagingUnset, true},
		{"none", PackagingUnset, true},
		{"-1", PackagingUnset, true},
	}

	for _, tt := range tests {
		got, err := ParsePackagingType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePackagingType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParsePackagingType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"active", StatusActive, false},
		{"inactive", StatusInactive, false},
		{"discontinued", StatusDiscontinued, false},
		{"", StatusUnset, true},
		{"retired", StatusUnset, true},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStatus(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStatusOrDefault(t *testing.T) {
	if got := StatusUnset.OrDefault(); got != StatusActive {
		t.Errorf("unset status should default to active, got %q", got)
	}
	if got := StatusDiscontinued.OrDefault(); got != StatusDiscontinued {
		t.Errorf("expected discontinued to be kept, got %q", got)
	}
}
