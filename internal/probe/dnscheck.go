package probe

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"time"
)

// DNS classifications logged for endpoints that returned no HTTP answer.
const (
	dnsResolves    = "RESOLVES"
	dnsNoARecord   = "NO_A_RECORD"
	dnsNXDomain    = "NXDOMAIN"
	dnsServfail    = "SERVFAIL_or_TIMEOUT"
	dnsInvalidName = "INVALID_NAME"
)

var dnsTimeout = 3 * time.Second

// DiagnoseDNS classifies the DNS state of an endpoint URL's host. It is a
// triage aid for transport failures, logged by the runner and never recorded
// in the probe result.
func DiagnoseDNS(endpoint string) string {
	host := endpoint
	if u, err := url.Parse(endpoint); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}
	host = strings.TrimSpace(host)
	if host == "" || strings.Contains(host, "://") {
		return dnsInvalidName
	}

	ctx, cancel := context.WithTimeout(context.Background(), dnsTimeout)
	defer cancel()
	r := &net.Resolver{} // OS resolver

	ips, err := r.LookupIP(ctx, "ip", host)
	if err == nil && len(ips) > 0 {
		return dnsResolves
	}
	hasNS := false
	if ns, nsErr := r.LookupNS(ctx, host); nsErr == nil && len(ns) > 0 {
		hasNS = true
	}
	return classifyDNSError(err, hasNS)
}

// classifyDNSError maps a failed address lookup to a class, most specific
// condition first. A host with nameservers but no address records is a zone
// configuration problem, not a missing zone.
func classifyDNSError(err error, hasNS bool) string {
	if hasNS {
		return dnsNoARecord
	}
	var de *net.DNSError
	if errors.As(err, &de) {
		if de.IsNotFound {
			return dnsNXDomain
		}
		if de.IsTemporary || de.Timeout() {
			return dnsServfail
		}
	}
	if err != nil {
		return dnsServfail
	}
	return dnsNXDomain
}
