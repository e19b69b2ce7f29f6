package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	roledomain "gamevault/backend/internal/domain/role"
	authusecase "gamevault/backend/internal/usecase/auth"
)

const jwtCookieName = "jwt"

type ctxKeyIdentity struct{}

// authenticate verifies the bearer credential (cookie or Authorization
// header) and attaches the verified identity to the request context.
// Requests without a verifiable identity never reach business logic.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		identity, err := s.authService.CheckToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyIdentity{}, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRoles gates a handler on the verified identity's role claim. An
// empty required set admits any authenticated identity. Roles are flat
// and compared by exact name.
func (s *Server) requireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := identityFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			if identity.Role == "" {
				writeError(w, http.StatusForbidden, "User role not found. Access denied.")
				return
			}
			if len(roles) > 0 && !containsRole(roles, identity.Role) {
				writeError(w, http.StatusForbidden, fmt.Sprintf(
					"User is not allowed to access this endpoint. Required role(s): %s. Current role: %s",
					strings.Join(roles, ", "), identity.Role,
				))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// protect admits any authenticated identity.
func (s *Server) protect(h http.HandlerFunc) http.Handler {
	return s.authenticate(s.requireRoles()(h))
}

// protectAdmin admits administrators only.
func (s *Server) protectAdmin(h http.HandlerFunc) http.Handler {
	return s.authenticate(s.requireRoles(roledomain.Administrator)(h))
}

func identityFromContext(ctx context.Context) (authusecase.Identity, bool) {
	identity, ok := ctx.Value(ctxKeyIdentity{}).(authusecase.Identity)
	return identity, ok
}

// canActFor reports whether the identity may act on resources owned by
// ownerID. Administrators bypass the ownership check.
func canActFor(identity authusecase.Identity, ownerID int64) bool {
	if identity.Role == roledomain.Administrator {
		return true
	}
	return identity.UserID == ownerID
}

func containsRole(roles []string, candidate string) bool {
	for _, r := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// extractToken pulls the bearer credential from the jwt cookie or the
// Authorization header, in that order.
func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(jwtCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return extractBearerToken(r.Header.Get("Authorization"))
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
