package fold

import "testing"

func TestString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Société Générale", "societe generale"},
		{"  BNP Paribas ", "bnp paribas"},
		{"préparation", "preparation"},
		{"Crédit Agricole CIB", "credit agricole cib"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := String(tc.in); got != tc.want {
			t.Errorf("String(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal("Goldman Sachs", "goldman sachs") {
		t.Error("expected case-insensitive equality")
	}
	if !Equal("Société Générale", "SOCIETE GENERALE") {
		t.Error("expected accent-insensitive equality")
	}
	if Equal("Natixis", "Nomura") {
		t.Error("different names should not be equal")
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		s, sub string
		want   bool
	}{
		{"Goldman Sachs", "goldman", true},
		{"goldman", "Goldman Sachs", false},
		{"Société Générale CIB", "societe generale", true},
		{"anything", "", false},
		{"", "x", false},
	}
	for _, tc := range tests {
		if got := Contains(tc.s, tc.sub); got != tc.want {
			t.Errorf("Contains(%q, %q) = %v, want %v", tc.s, tc.sub, got, tc.want)
		}
	}
}
