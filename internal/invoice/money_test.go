package invoice

import "testing"

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"$350.00", 350},
		{"350", 350},
		{"1,250.50", 1250.5},
		{"CAD 99.99", 99.99},
		{"", 0},
		{"free", 0},
		{".", 0},
		{"$0.00", 0},
		{"12.34.56", 12.3456}, // second dot dropped, digits kept
	}
	for _, c := range cases {
		if got := ParseMoney(c.in); got != c.want {
			t.Errorf("ParseMoney(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
