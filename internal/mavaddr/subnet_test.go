package mavaddr

import "testing"

func TestSubnetContains(t *testing.T) {
	cases := []struct {
		subnet string
		addr   string
		want   bool
	}{
		{"128.0/8", "128.255", true},
		{"128.0/9", "128.255", false},
		{"128.255\\1", "0.200", true},
		{"192.168", "192.168", true},
		{"192.168", "192.169", false},
		{"10.0:255.0", "10.200", true},
		{"10.0:255.0", "11.200", false},
	}
	for _, c := range cases {
		sn, err := ParseSubnet(c.subnet)
		if err != nil {
			t.Fatalf("ParseSubnet(%q): %v", c.subnet, err)
		}
		a, err := Parse(c.addr)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.addr, err)
		}
		if got := sn.Contains(a); got != c.want {
			t.Errorf("Subnet(%q).Contains(%q) = %v, want %v", c.subnet, c.addr, got, c.want)
		}
	}
}

func TestSubnetRoundTrip(t *testing.T) {
	inputs := []string{"192.168", "128.0/8", "128.0/16", "10.10\\4", "10.0:255.15"}
	for _, in := range inputs {
		sn, err := ParseSubnet(in)
		if err != nil {
			t.Fatalf("ParseSubnet(%q): %v", in, err)
		}
		printed := sn.String()
		sn2, err := ParseSubnet(printed)
		if err != nil {
			t.Fatalf("ParseSubnet(%q) [reprint of %q]: %v", printed, in, err)
		}
		if sn != sn2 {
			t.Errorf("round trip mismatch: %q -> %q -> %+v != %+v", in, printed, sn, sn2)
		}
	}
}

func TestParseSubnetErrors(t *testing.T) {
	bad := []string{"192.168/17", "192.168\\9", "300.1", "192.168:256.0"}
	for _, in := range bad {
		if _, err := ParseSubnet(in); err == nil {
			t.Errorf("ParseSubnet(%q): expected error", in)
		}
	}
}
