package sheet

import "testing"

func TestColumnIndex(t *testing.T) {
	tests := []struct {
		letters string
		want    int
	}{
		{"A", 0},
		{"B", 1},
		{"L", 11},
		{"Z", 25},
		{"AA", 26},
		{"AZ", 51},
		{"BA", 52},
		{"ZZ", 701},
		{"AAA", 702},
		{"h", 7},
	}

	for _, tt := range tests {
		t.Run(tt.letters, func(t *testing.T) {
			got, err := ColumnIndex(tt.letters)
			if err != nil {
				t.Fatalf("ColumnIndex(%q) error = %v", tt.letters, err)
			}
			if got != tt.want {
				t.Errorf("ColumnIndex(%q) = %d, want %d", tt.letters, got, tt.want)
			}
		})
	}
}

func TestColumnIndex_Invalid(t *testing.T) {
	for _, in := range []string{"", "A1", "-", "ÄB"} {
		if _, err := ColumnIndex(in); err == nil {
			t.Errorf("ColumnIndex(%q) expected error", in)
		}
	}
}

func TestColumnName_RoundTrip(t *testing.T) {
	for i := 0; i < 2000; i++ {
		name := ColumnName(i)
		back, err := ColumnIndex(name)
		if err != nil {
			t.Fatalf("ColumnIndex(%q) error = %v", name, err)
		}
		if back != i {
			t.Fatalf("round trip %d -> %q -> %d", i, name, back)
		}
	}
}

func TestCellRef(t *testing.T) {
	if got := CellRef(2, 7); got != "H2" {
		t.Errorf("CellRef(2, 7) = %q, want H2", got)
	}
	if got := CellRef(10, 26); got != "AA10" {
		t.Errorf("CellRef(10, 26) = %q, want AA10", got)
	}
}
