package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"(617) 555-1234", "+16175551234"},
		{"617-555-1234", "+16175551234"},
		{"+44 20 7946 0958", "+442079460958"},
		{"  (617) 555-1234  ", "+16175551234"},
		{"(555) 555-1122", "(555) 555-1122"}, // 555 area code is not a valid US number
		{"not a number", "not a number"},
		{"", ""},
		{"   ", ""},
	}

	for _, tc := range cases {
		if got := NormalizeE164(tc.input); got != tc.want {
			t.Errorf("NormalizeE164(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
