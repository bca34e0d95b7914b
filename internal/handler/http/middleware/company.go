package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireCompany rejects tokens that are not bound to a company.
func RequireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CompanyID(r); !ok {
			response.HandleError(w, user.ErrCompanyIDRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CompanyID returns the company_id claim of the verified token.
func CompanyID(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", false
	}
	return companyID, true
}
