package security

import (
	"net/http"
	"slices"
	"sort"
	"strings"
)

const HeaderName = "Content-Security-Policy"

/*
Policy maps a CSP directive to the sources it allows.
*/
type Policy map[string][]string

var DefaultPolicy = Policy{
	"default-src": {"'self'"},
	"script-src":  {"'self'", "connect.facebook.net", "assets.pinterest.com", "danehillard.disqus.com", "danehillard-dev.disqus.com", "log.pinterest.com", "'unsafe-inline'"},
	"style-src":   {"'self'", "fonts.googleapis.com", "a.disquscdn.com", "'unsafe-inline'"},
	"font-src":    {"'self'", "fonts.gstatic.com"},
	"frame-src":   {"'self'", "staticxx.facebook.com", "www.facebook.com", "disqus.com"},
	"img-src":     {"'self'", "data:", "www.facebook.com", "referrer.disqus.com", "a.disquscdn.com"},
}

/*
String renders the header value. Directives are sorted by name so the
output doesn't depend on map order.

	default-src 'self'; font-src 'self' fonts.gstatic.com; ...
*/
func (p Policy) String() string {
	names := make([]string, 0, len(p))

	for name := range p {
		names = append(names, name)
	}

	sort.Strings(names)
	directives := make([]string, 0, len(names))

	for _, name := range names {
		directives = append(directives, strings.Join(append([]string{name}, p[name]...), " "))
	}

	return strings.Join(directives, "; ")
}

/*
Allow returns a copy of the policy with sources appended to directive.
Sources already present are not repeated.
*/
func (p Policy) Allow(directive string, sources ...string) Policy {
	result := make(Policy, len(p)+1)

	for name, existing := range p {
		result[name] = append([]string{}, existing...)
	}

	for _, source := range sources {
		if source != "" && !slices.Contains(result[directive], source) {
			result[directive] = append(result[directive], source)
		}
	}

	return result
}

/*
ContentSecurityPolicy returns middleware that sets the policy header on
every response.
*/
func ContentSecurityPolicy(policy Policy) func(http.Handler) http.Handler {
	value := policy.String()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderName, value)
			next.ServeHTTP(w, r)
		})
	}
}
