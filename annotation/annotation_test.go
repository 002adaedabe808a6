package annotation

import "testing"

func TestParseLabel(t *testing.T) {
	for _, l := range Labels() {
		got, err := ParseLabel(string(l))
		if err != nil {
			t.Errorf("%s: unexpected error: %v", l, err)
		}
		if got != l {
			t.Errorf("expected %s, got %s", l, got)
		}
		if l.Description() == "" {
			t.Errorf("%s: missing description", l)
		}
	}

	if _, err := ParseLabel(" ok "); err != nil {
		t.Errorf("expected surrounding space to be ignored: %v", err)
	}

	for _, s := range []string{"", "none", "OK", "bad"} {
		if _, err := ParseLabel(s); err == nil {
			t.Errorf("%q: expected error", s)
		}
	}
}
