package ranking

import (
	"math"
	"testing"
)

func TestDiceSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "iphone", "iphone", 1},
		{"case insensitive identical", "iPhone", "IPHONE", 1},
		{"whitespace ignored", "iphone 15", "iphone15", 1},
		{"both empty", "", "", 0},
		{"one empty", "iphone", "", 0},
		{"single char", "a", "b", 0},
		{"disjoint", "abcd", "wxyz", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DiceSimilarity(tt.a, tt.b); got != tt.want {
				t.Errorf("DiceSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDiceSimilarity_KnownValue(t *testing.T) {
	// "night" and "nacht" share exactly one bigram ("ht") out of 4+4.
	got := DiceSimilarity("night", "nacht")
	want := 2.0 * 1 / 8
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("DiceSimilarity(night, nacht) = %v, want %v", got, want)
	}
}

func TestDiceSimilarity_TypoTolerance(t *testing.T) {
	typo := DiceSimilarity("ifone", "iphone 15")
	unrelated := DiceSimilarity("ifone", "steel water bottle")
	if typo <= unrelated {
		t.Errorf("misspelled query should still score against the intended title: typo=%v unrelated=%v", typo, unrelated)
	}
	if typo <= 0 {
		t.Errorf("expected partial credit for transposed spelling, got %v", typo)
	}
}

func TestDiceSimilarity_Bounded(t *testing.T) {
	pairs := [][2]string{
		{"mango pulp", "fresh mango pulp 1kg"},
		{"chai", "masala chai premium"},
		{"a very long query with many words", "short"},
	}
	for _, pair := range pairs {
		got := DiceSimilarity(pair[0], pair[1])
		if got < 0 || got > 1 {
			t.Errorf("DiceSimilarity(%q, %q) = %v, out of [0,1]", pair[0], pair[1], got)
		}
	}
}
