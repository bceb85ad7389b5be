package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/user-service/pkg/helpers"
	"github.com/oksasatya/user-service/pkg/response"
)

const SubjectKey = "subject"

// BearerAuth requires a valid "Authorization: Bearer <token>" header and
// stores the token subject in the context. A nil verifier disables the check.
func BearerAuth(v *helpers.TokenVerifier) gin.HandlerFunc {
	if v == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.Header("WWW-Authenticate", `Bearer realm="users"`)
			response.Abort(c, http.StatusUnauthorized, "missing bearer token", nil)
			return
		}
		claims, err := v.Verify(strings.TrimSpace(token))
		if err != nil {
			c.Header("WWW-Authenticate", `Bearer error="invalid_token"`)
			response.Abort(c, http.StatusUnauthorized, "invalid bearer token", nil)
			return
		}
		c.Set(SubjectKey, claims.Subject)
		c.Next()
	}
}
