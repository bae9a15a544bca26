package mavaddr

import "testing"

func TestParseAddress(t *testing.T) {
	cases := []struct {
		in      string
		want    Address
		wantErr bool
	}{
		{"192.168", New(192, 168), false},
		{"0.0", 0, false},
		{"255.255", New(255, 255), false},
		{"256.0", 0, true},
		{"1.2.3", 0, true},
		{"abc.1", 0, true},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error, got %v", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("Parse(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestAddressOrdering(t *testing.T) {
	a := New(1, 255)
	b := New(2, 0)
	if !(a < b) {
		t.Errorf("expected %v < %v", a, b)
	}
}

func TestAddressString(t *testing.T) {
	a := New(192, 168)
	if got, want := a.String(), "192.168"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestBroadcast(t *testing.T) {
	if !New(0, 0).Broadcast() {
		t.Error("0.0 should be broadcast")
	}
	if New(1, 0).Broadcast() {
		t.Error("1.0 should not be broadcast")
	}
}
