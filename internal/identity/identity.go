package identity

import (
	"net/http"
	"strings"
)

// UnknownUser is stamped on orders when no identity accompanies the request.
// A documented default, not an error.
const UnknownUser = "unknown_user"

type Resolver interface {
	CurrentUser(r *http.Request) string
}

// HeaderResolver reads the user id the identity layer injects upstream.
type HeaderResolver struct {
	header string
}

func NewHeaderResolver() *HeaderResolver {
	return &HeaderResolver{header: "X-User-Id"}
}

func (h *HeaderResolver) CurrentUser(r *http.Request) string {
	userID := strings.TrimSpace(r.Header.Get(h.header))
	if userID == "" {
		return UnknownUser
	}
	return userID
}
