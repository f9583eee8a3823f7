package main

import (
	"net"
	"testing"
)

func TestGuessIpAddress(t *testing.T) {
	base := net.IP{192, 168, 0, 1}
	tests := []struct {
		partial  string
		expected net.IP
	}{
		{"42", net.IP{192, 168, 0, 42}},
		{"15.42", net.IP{192, 168, 15, 42}},
		{"10.100.15.42", net.IP{10, 100, 15, 42}},
		{"", base},
	}
	for _, tt := range tests {
		actual, err := guessIpAddress(base, tt.partial)
		if err != nil {
			t.Fatal(err)
		}
		if !actual.Equal(tt.expected) {
			t.Fatalf("%q: expected %v, actual %v", tt.partial, tt.expected, actual)
		}
	}
}

func TestGuessIpAddressFromIPv4InIPv6(t *testing.T) {
	actual, err := guessIpAddress(net.ParseIP("192.168.0.1"), "7")
	if err != nil {
		t.Fatal(err)
	}
	if !actual.Equal(net.IP{192, 168, 0, 7}) {
		t.Fatalf("expected 192.168.0.7, actual %v", actual)
	}
}

func TestGuessIpAddressRejectsGarbage(t *testing.T) {
	base := net.IP{192, 168, 0, 1}
	for _, partial := range []string{"300", "a.b", "1.2.3.4.5", "-1"} {
		if _, err := guessIpAddress(base, partial); err == nil {
			t.Fatalf("expected an error for %q", partial)
		}
	}
}

func TestPeerAddress(t *testing.T) {
	local := net.IP{192, 168, 0, 1}
	tests := []struct {
		typed    string
		expected string
	}{
		{"42", "192.168.0.42:5000"},
		{"42:6000", "192.168.0.42:6000"},
		{"1.42:6000", "192.168.1.42:6000"},
		{":6000", "192.168.0.1:6000"},
	}
	for _, tt := range tests {
		actual, err := peerAddress(local, tt.typed, 5000)
		if err != nil {
			t.Fatalf("%q: %v", tt.typed, err)
		}
		if actual != tt.expected {
			t.Fatalf("%q: expected %s, actual %s", tt.typed, tt.expected, actual)
		}
	}
	if _, err := peerAddress(local, "42:99999", 5000); err == nil {
		t.Fatal("expected an error for an out of range port")
	}
}

func TestSubnetOf(t *testing.T) {
	ipnet, err := subnetOf(net.ParseIP("127.0.0.1"))
	if err != nil {
		t.Fatalf("subnetOf error: %v", err)
	}
	t.Logf("subnet: %s", ipnet.String())

	if !ipnet.Contains(net.ParseIP("127.0.0.1")) {
		t.Fatalf("expected subnet %s to contain 127.0.0.1", ipnet.String())
	}
	if _, err := subnetOf(net.IPv4zero); err == nil {
		t.Fatal("expected an error for the unspecified address")
	}
}

func TestLocalIPKeepsSpecifiedAddress(t *testing.T) {
	ip := net.IP{10, 0, 0, 3}
	actual, err := localIP(ip)
	if err != nil {
		t.Fatal(err)
	}
	if !actual.Equal(ip) {
		t.Fatalf("expected %v, actual %v", ip, actual)
	}
}
