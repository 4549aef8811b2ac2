package domain

import "testing"

func TestDisplayClassForCoversFullMapping(t *testing.T) {
	cases := []struct {
		status HalalStatus
		want   DisplayClass
	}{
		{HalalCertified, ClassVerified},
		{HalalPartial, ClassProbable},
		{HalalMuscleMeat, ClassProbable},
		{HalalMixed, ClassOptions},
		{HalalUnknown, ClassUnconfirmed},
		{NotHalal, ClassUnconfirmed},
		{HalalStatus("garbage"), ClassUnconfirmed},
		{HalalStatus(""), ClassUnconfirmed},
	}
	for _, tc := range cases {
		if got := DisplayClassFor(tc.status); got != tc.want {
			t.Fatalf("DisplayClassFor(%q) = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestNormalizeHalalStatusRejectsOpenValues(t *testing.T) {
	if got := NormalizeHalalStatus("certified"); got != HalalCertified {
		t.Fatalf("expected certified, got %q", got)
	}
	if got := NormalizeHalalStatus("Halal Certified!"); got != HalalUnknown {
		t.Fatalf("expected fallback to unknown, got %q", got)
	}
	if got := NormalizeHalalStatus(""); got != HalalUnknown {
		t.Fatalf("expected fallback to unknown for empty, got %q", got)
	}
}

func TestNormalizeAlcoholStatusRejectsOpenValues(t *testing.T) {
	if got := NormalizeAlcoholStatus("beer_wine"); got != AlcoholBeerWine {
		t.Fatalf("expected beer_wine, got %q", got)
	}
	if got := NormalizeAlcoholStatus("cocktails"); got != AlcoholUnknown {
		t.Fatalf("expected fallback to unknown, got %q", got)
	}
}
