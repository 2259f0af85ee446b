package router

import (
	"context"
	"net/http"
	"strings"

	"github.com/smashstrix/smashstrix/internal/pkg/jwt"
)

func middlewareAuthentication(verifier jwt.JWT, revoked func(ctx context.Context, tokenID string) bool, public map[string]map[string]struct{}) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if routes, ok := public[r.Method]; ok {
				if _, skip := routes[matchedRoute(r)]; skip {
					// Public endpoints still honor a valid token so they can
					// tailor responses to the caller. A bad one is ignored.
					if parts := strings.Fields(r.Header.Get("Authorization")); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
						if claims, err := verifier.Verify(parts[1]); err == nil {
							if revoked == nil || !revoked(r.Context(), claims.ID) {
								r = r.WithContext(jwt.SetAuth(r.Context(), claims))
							}
						}
					}
					next.ServeHTTP(w, r)
					return
				}
			}

			parts := strings.Fields(r.Header.Get("Authorization"))
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeJSON(w, errorBody{Message: "authentication required"}, http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				writeJSON(w, errorBody{Message: "invalid or expired token"}, http.StatusUnauthorized)
				return
			}

			if revoked != nil && revoked(r.Context(), claims.ID) {
				writeJSON(w, errorBody{Message: "invalid or expired token"}, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(jwt.SetAuth(r.Context(), claims)))
		})
	}
}
