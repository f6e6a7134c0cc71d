// Package netloc finds an address other devices on the local network can use
// to reach this machine.
package netloc

import (
	"fmt"
	"net"
	"strconv"

	"go.uber.org/zap"
)

// Address is a host and port. An empty Host means no LAN address was found.
type Address struct {
	Host string
	Port int
}

// Available reports whether a LAN host was found.
func (a Address) Available() bool {
	return a.Host != ""
}

// URL renders the address as http://host:port. The host is used verbatim, so
// an unavailable address renders as "http://:port".
func (a Address) URL() string {
	return fmt.Sprintf("http://%s", net.JoinHostPort(a.Host, strconv.Itoa(a.Port)))
}

// Interface is the subset of net.Interface the locator inspects.
type Interface struct {
	Name  string
	Flags net.Flags
	Addrs []net.Addr
}

// Locator selects the first usable IPv4 address from an interface listing.
type Locator struct {
	// Interfaces lists the machine's interfaces in OS order.
	// Defaults to SystemInterfaces.
	Interfaces func() ([]Interface, error)
	Logger     *zap.Logger
}

// Locate returns the LAN address for port using the system interfaces.
func Locate(port int, logger *zap.Logger) Address {
	l := &Locator{Logger: logger}
	return l.Locate(port)
}

// Locate returns the first non-loopback IPv4 address found on an up
// interface, paired with port. It never fails: when nothing qualifies, or
// the listing itself fails, the returned Host is empty.
func (l *Locator) Locate(port int) Address {
	logger := l.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	list := l.Interfaces
	if list == nil {
		list = SystemInterfaces
	}

	ifaces, err := list()
	if err != nil {
		logger.Warn("listing network interfaces", zap.Error(err))
		return Address{Port: port}
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		for _, addr := range iface.Addrs {
			ip := addrIP(addr)
			if ip == nil || ip.IsLoopback() {
				continue
			}
			if ip4 := ip.To4(); ip4 != nil {
				logger.Debug("selected LAN address",
					zap.String("interface", iface.Name),
					zap.String("ip", ip4.String()))
				return Address{Host: ip4.String(), Port: port}
			}
		}
	}
	return Address{Port: port}
}

func addrIP(addr net.Addr) net.IP {
	switch a := addr.(type) {
	case *net.IPNet:
		return a.IP
	case *net.IPAddr:
		return a.IP
	}
	return nil
}

// SystemInterfaces lists the host's interfaces with their unicast addresses.
// An interface whose addresses cannot be read is kept with none.
func SystemInterfaces() ([]Interface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	out := make([]Interface, 0, len(ifaces))
	for _, iface := range ifaces {
		addrs, _ := iface.Addrs()
		out = append(out, Interface{Name: iface.Name, Flags: iface.Flags, Addrs: addrs})
	}
	return out, nil
}
