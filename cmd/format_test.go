package cmd

import "testing"

func TestFormatNaira(t *testing.T) {
	t.Parallel()

	cases := []struct {
		amount int64
		want   string
	}{
		{0, "₦0"},
		{50, "₦50"},
		{6000, "₦6,000"},
		{50000, "₦50,000"},
		{1234567, "₦1,234,567"},
	}
	for _, tc := range cases {
		if got := formatNaira(tc.amount); got != tc.want {
			t.Errorf("formatNaira(%d) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}
