package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/kintai-app/kintai-backend-go/internal/pkg/jwt"
)

// employeeIDFromRequest reads the authenticated employee from the verified
// token. Handlers always pass the ID on explicitly; services never reach
// into the request context for identity.
func employeeIDFromRequest(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", jwt.ErrInvalidToken
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", jwt.ErrInvalidToken
	}
	return employeeID, nil
}

func isAdminFromRequest(r *http.Request) bool {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return false
	}
	admin, ok := claims["is_admin"].(bool)
	return ok && admin
}
