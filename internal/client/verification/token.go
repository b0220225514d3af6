package verification

import (
	"net/url"
	"strings"

	"github.com/dmitrijs2005/spabook/internal/common"
)

// TokenFromPath extracts the token from a path like /verify-email/<token>.
// A bare token is accepted too. The result is "" when no usable token is
// present, including tokens made only of whitespace.
func TokenFromPath(path string) string {
	p := strings.TrimSpace(path)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if rest, ok := strings.CutPrefix(p, common.RouteVerifyEmail); ok {
		// The route must end at a segment boundary.
		if rest != "" && rest[0] != '/' {
			return ""
		}
		p = rest
	}
	p = strings.Trim(p, "/")
	if strings.Contains(p, "/") {
		return ""
	}
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}
	return strings.TrimSpace(p)
}
