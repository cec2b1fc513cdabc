package middleware

import (
	"net/http"

	"github.com/facemark/attendance-backend-go/internal/domain/auth"
	"github.com/facemark/attendance-backend-go/internal/domain/employee"
	"github.com/facemark/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AdminOnly gates roster management and reporting routes on the
// designation claim.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		designation, ok := claims["designation"].(string)
		if !ok || designation != string(employee.DesignationAdmin) {
			response.Forbidden(w, "Admin privilege required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
