package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/storefront/pkg/auth"
)

type claimsKey struct{}

// AuthMiddleware validates the bearer token and stores the verified
// identity in the request context. Handlers downstream read it with
// EmailFromCtx / UserIDFromCtx / RolesFromCtx and never re-check the token.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.Replace(r.Header.Get("Authorization"), "Bearer ", "", 1)

		if token == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromCtx returns the verified token claims, if any.
func ClaimsFromCtx(r *http.Request) (*auth.Claims, bool) {
	c, ok := r.Context().Value(claimsKey{}).(*auth.Claims)
	return c, ok
}

// EmailFromCtx returns the authenticated user's email.
func EmailFromCtx(r *http.Request) (string, bool) {
	if c, ok := ClaimsFromCtx(r); ok {
		return c.Email, true
	}
	return "", false
}

// UserIDFromCtx returns the authenticated user's id.
func UserIDFromCtx(r *http.Request) (uint, bool) {
	if c, ok := ClaimsFromCtx(r); ok {
		return c.UserID, true
	}
	return 0, false
}

// RolesFromCtx returns the authenticated user's role set.
func RolesFromCtx(r *http.Request) ([]string, bool) {
	c, ok := ClaimsFromCtx(r)
	if !ok || c.Roles == "" {
		return nil, ok
	}
	return strings.Split(c.Roles, ","), true
}

// HasRole reports whether the authenticated user holds the given role.
func HasRole(r *http.Request, role string) bool {
	roles, _ := RolesFromCtx(r)
	for _, have := range roles {
		if have == role {
			return true
		}
	}
	return false
}
