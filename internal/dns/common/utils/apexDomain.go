package utils

import (
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// ApexDomain returns the registrable apex (eTLD+1) of a name, used by the
// CLI to summarize where an answer's authority lies. Falls back to the name
// itself when the public suffix list cannot split it.
func ApexDomain(n domain.Name) string {
	host := strings.TrimSuffix(n.Canonical().String(), ".")
	apex, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return apex
}
