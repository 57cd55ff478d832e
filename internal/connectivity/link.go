package connectivity

import (
	"context"
	"fmt"
	"net"
)

// Link is the wireless association underneath the broker session. Once
// associated it is assumed to stay up.
type Link interface {
	Associate(ctx context.Context) error
	Associated() bool
}

// InterfaceLink treats a host network interface as the wireless link: it is
// associated when the interface is up and holds an address. The host's
// supplicant owns the actual SSID join. An empty interface name means the
// host network is managed elsewhere and is always considered associated.
type InterfaceLink struct {
	Name string
	SSID string

	lookup func(name string) (*net.Interface, error)
	addrs  func(ifi *net.Interface) ([]net.Addr, error)
}

// NewInterfaceLink returns a link bound to the named interface.
func NewInterfaceLink(name, ssid string) *InterfaceLink {
	return &InterfaceLink{
		Name:   name,
		SSID:   ssid,
		lookup: net.InterfaceByName,
		addrs:  func(ifi *net.Interface) ([]net.Addr, error) { return ifi.Addrs() },
	}
}

// Associate checks the interface once; the caller owns the retry loop.
func (l *InterfaceLink) Associate(ctx context.Context) error {
	if l.Name == "" {
		return nil
	}
	ifi, err := l.lookup(l.Name)
	if err != nil {
		return fmt.Errorf("lookup interface %s: %w", l.Name, err)
	}
	if ifi.Flags&net.FlagUp == 0 {
		return fmt.Errorf("interface %s is down (ssid %q)", l.Name, l.SSID)
	}
	addrs, err := l.addrs(ifi)
	if err != nil {
		return fmt.Errorf("list addresses of %s: %w", l.Name, err)
	}
	if len(addrs) == 0 {
		return fmt.Errorf("interface %s has no address yet (ssid %q)", l.Name, l.SSID)
	}
	return nil
}

// Associated reports whether the interface is currently usable.
func (l *InterfaceLink) Associated() bool {
	return l.Associate(context.Background()) == nil
}
