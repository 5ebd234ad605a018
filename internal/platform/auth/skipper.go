package auth

import "strings"

// PublicPaths is the allow-list of request paths served without a bound
// principal. Entries ending in "/*" match by prefix; everything else matches
// exactly. The list is built once at startup and injected into
// RequirePrincipal, so deployments can open additional surfaces (docs,
// provider webhooks) without touching the middleware.
type PublicPaths struct {
	exact    map[string]bool
	prefixes []string
}

// NewPublicPaths builds an allow-list from path patterns.
func NewPublicPaths(patterns ...string) *PublicPaths {
	p := &PublicPaths{exact: make(map[string]bool)}
	for _, pat := range patterns {
		if trimmed, ok := strings.CutSuffix(pat, "/*"); ok {
			p.prefixes = append(p.prefixes, trimmed+"/")
			continue
		}
		p.exact[pat] = true
	}
	return p
}

// DefaultPublicPaths covers registration, login, the health checks, API
// documentation, and the payment and billing webhook callbacks, which are
// invoked by external providers that cannot carry our bearer tokens.
func DefaultPublicPaths() *PublicPaths {
	return NewPublicPaths(
		"/health",
		"/health/db",
		"/api/auth/register",
		"/api/auth/login",
		"/api/docs",
		"/api/pay/*",
		"/api/bill/*",
	)
}

// Contains reports whether path may be served without a principal.
func (p *PublicPaths) Contains(path string) bool {
	if p.exact[path] {
		return true
	}
	for _, prefix := range p.prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
