package netloc

import (
	"errors"
	"net"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func ipNet(s string) *net.IPNet {
	ip, n, err := net.ParseCIDR(s)
	if err != nil {
		panic(err)
	}
	n.IP = ip
	return n
}

func fixed(ifaces ...Interface) func() ([]Interface, error) {
	return func() ([]Interface, error) { return ifaces, nil }
}

func TestLocate(t *testing.T) {
	t.Parallel()
	up := net.FlagUp | net.FlagBroadcast

	tests := []struct {
		name   string
		ifaces []Interface
		want   string
	}{
		{
			name: "loopback then LAN",
			ifaces: []Interface{
				{Name: "lo", Flags: net.FlagUp | net.FlagLoopback, Addrs: []net.Addr{ipNet("127.0.0.1/8")}},
				{Name: "eth0", Flags: up, Addrs: []net.Addr{ipNet("192.168.1.5/24")}},
			},
			want: "192.168.1.5",
		},
		{
			name: "first match wins",
			ifaces: []Interface{
				{Name: "wlan0", Flags: up, Addrs: []net.Addr{ipNet("10.0.0.7/8")}},
				{Name: "eth0", Flags: up, Addrs: []net.Addr{ipNet("192.168.1.5/24")}},
			},
			want: "10.0.0.7",
		},
		{
			name: "IPv6 skipped in favour of later IPv4",
			ifaces: []Interface{
				{Name: "eth0", Flags: up, Addrs: []net.Addr{ipNet("fe80::1/64"), ipNet("172.16.0.2/16")}},
			},
			want: "172.16.0.2",
		},
		{
			name: "down interface skipped",
			ifaces: []Interface{
				{Name: "eth0", Flags: net.FlagBroadcast, Addrs: []net.Addr{ipNet("192.168.1.5/24")}},
				{Name: "eth1", Flags: up, Addrs: []net.Addr{&net.IPAddr{IP: net.ParseIP("192.168.2.9")}}},
			},
			want: "192.168.2.9",
		},
		{
			name: "loopback address on non-loopback interface skipped",
			ifaces: []Interface{
				{Name: "dummy0", Flags: up, Addrs: []net.Addr{ipNet("127.0.0.2/8")}},
			},
			want: "",
		},
		{
			name: "only loopback",
			ifaces: []Interface{
				{Name: "lo", Flags: net.FlagUp | net.FlagLoopback, Addrs: []net.Addr{ipNet("127.0.0.1/8"), ipNet("::1/128")}},
			},
			want: "",
		},
		{
			name:   "no interfaces",
			ifaces: nil,
			want:   "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := &Locator{Interfaces: fixed(tt.ifaces...)}
			got := l.Locate(8000)
			if got.Host != tt.want {
				t.Errorf("Host: got %q, want %q", got.Host, tt.want)
			}
			if got.Port != 8000 {
				t.Errorf("Port: got %d, want 8000", got.Port)
			}
			if got.Available() != (tt.want != "") {
				t.Errorf("Available: got %v for host %q", got.Available(), got.Host)
			}
		})
	}
}

func TestLocateListingErrorYieldsEmptyHost(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.WarnLevel)
	l := &Locator{
		Interfaces: func() ([]Interface, error) { return nil, errors.New("netlink: permission denied") },
		Logger:     zap.New(core),
	}
	got := l.Locate(8000)
	if got.Available() {
		t.Errorf("expected unavailable address, got %+v", got)
	}
	if logs.Len() != 1 {
		t.Errorf("expected one warning, got %d", logs.Len())
	}
}

func TestAddressURL(t *testing.T) {
	t.Parallel()
	if got := (Address{Host: "192.168.1.5", Port: 8000}).URL(); got != "http://192.168.1.5:8000" {
		t.Errorf("URL: got %q", got)
	}
	// An unavailable address renders verbatim rather than as a sentinel.
	if got := (Address{Port: 8000}).URL(); got != "http://:8000" {
		t.Errorf("empty host URL: got %q, want http://:8000", got)
	}
}

func TestSystemInterfaces(t *testing.T) {
	t.Parallel()
	ifaces, err := SystemInterfaces()
	if err != nil {
		t.Skipf("interface listing unavailable: %v", err)
	}
	// Whatever the host has, Locate must not panic and must keep the port.
	l := &Locator{Interfaces: fixed(ifaces...)}
	if got := l.Locate(1234); got.Port != 1234 {
		t.Errorf("Port: got %d, want 1234", got.Port)
	}
}
