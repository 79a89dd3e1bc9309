// Package netmeta validates and normalizes the network metadata (IP and MAC
// addresses) reported by tracking clients. Enrichment is best effort: invalid
// values are dropped, never rejected.
package netmeta

import (
	"net"
	"strings"
)

func ValidIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	// Loopback and unspecified addresses carry no tracking value.
	if parsed.IsLoopback() || parsed.IsUnspecified() {
		return false
	}
	return true
}

func ValidMAC(mac string) bool {
	hw, err := net.ParseMAC(mac)
	return err == nil && len(hw) == 6
}

// NormalizeMAC returns the MAC in upper-case colon-separated form.
func NormalizeMAC(mac string) (string, bool) {
	hw, err := net.ParseMAC(mac)
	if err != nil || len(hw) != 6 {
		return "", false
	}
	return strings.ToUpper(hw.String()), true
}

// Sanitize filters a reported (ip, mac) pair down to the values worth
// storing. Either pointer may come back nil.
func Sanitize(ip, mac *string) (*string, *string) {
	var outIP, outMAC *string

	if ip != nil && ValidIP(*ip) {
		v := *ip
		outIP = &v
	}
	if mac != nil {
		if normalized, ok := NormalizeMAC(*mac); ok {
			outMAC = &normalized
		}
	}

	return outIP, outMAC
}
