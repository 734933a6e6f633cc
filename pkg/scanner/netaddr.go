package scanner

import (
	"net/netip"
	"regexp"
)

var (
	ipv4Regex     = regexp.MustCompile(`^[0-9]{1,3}(?:\.[0-9]{1,3}){3}`)
	ipv6Regex     = regexp.MustCompile(`^[0-9A-Fa-f:]*:[0-9A-Fa-f:.]*(?:%[0-9A-Za-z_.-]+)?`)
	addrPortRegex = regexp.MustCompile(`^(?:[0-9]{1,3}(?:\.[0-9]{1,3}){3}|\[[0-9A-Fa-f:.]+(?:%[0-9A-Za-z_.-]+)?\]):[0-9]+`)
)

func addrScanner(re *regexp.Regexp, expected string, accept func(netip.Addr) bool) Scanner[netip.Addr] {
	return ScanFunc[netip.Addr](func(c Cursor) (netip.Addr, Cursor, error) {
		text, next, err := scanPattern(c, re, expected)
		if err != nil {
			return netip.Addr{}, c, err
		}
		addr, err := netip.ParseAddr(text)
		if err != nil {
			return netip.Addr{}, c, failure(c.SkipSpace(), expected, err)
		}
		if !accept(addr) {
			return netip.Addr{}, c, failure(c.SkipSpace(), expected, nil)
		}
		return addr, next, nil
	})
}

// IPv4 scans a dotted-quad IPv4 address.
func IPv4() Scanner[netip.Addr] {
	return addrScanner(ipv4Regex, "an IPv4 address", netip.Addr.Is4)
}

// IPv6 scans an IPv6 address, with an optional zone.
func IPv6() Scanner[netip.Addr] {
	return addrScanner(ipv6Regex, "an IPv6 address", netip.Addr.Is6)
}

// IP scans an IPv4 or IPv6 address.
func IP() Scanner[netip.Addr] {
	v4, v6 := IPv4(), IPv6()
	return ScanFunc[netip.Addr](func(c Cursor) (netip.Addr, Cursor, error) {
		if addr, next, err := v6.Scan(c); err == nil {
			return addr, next, nil
		}
		addr, next, err := v4.Scan(c)
		if err != nil {
			return netip.Addr{}, c, failure(c.SkipSpace(), "an IP address", err)
		}
		return addr, next, nil
	})
}

// AddrPort scans an address and port such as "10.0.0.1:80" or "[::1]:443".
func AddrPort() Scanner[netip.AddrPort] {
	return ScanFunc[netip.AddrPort](func(c Cursor) (netip.AddrPort, Cursor, error) {
		const expected = "an address and port"
		text, next, err := scanPattern(c, addrPortRegex, expected)
		if err != nil {
			return netip.AddrPort{}, c, err
		}
		ap, err := netip.ParseAddrPort(text)
		if err != nil {
			return netip.AddrPort{}, c, failure(c.SkipSpace(), expected, err)
		}
		return ap, next, nil
	})
}
