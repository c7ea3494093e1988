package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// DomainChecker verifies that the domain part of an address resolves to a
// mail exchanger or, failing that, to any host.
type DomainChecker struct {
	resolver Resolver
	timeout  time.Duration
}

func NewDomainChecker(r Resolver) *DomainChecker {
	if r == nil {
		r = net.DefaultResolver
	}
	return &DomainChecker{resolver: r, timeout: 3 * time.Second}
}

func (c *DomainChecker) Valid(ctx context.Context, email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if mx, err := c.resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := c.resolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
