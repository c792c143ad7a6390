package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/inventory_console/internal/utils"
)

// CSRFField is the hidden form field carrying the token.
const CSRFField = "csrf_token"

// CSRFHeader is accepted for script-driven requests.
const CSRFHeader = "X-CSRF-Token"

// CSRFMiddleware rejects state-changing requests without a valid token.
func CSRFMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		token := c.PostForm(CSRFField)
		if token == "" {
			token = c.GetHeader(CSRFHeader)
		}
		if !Web(c).VerifyCSRF(token) {
			log.Warn().Str("path", c.Request.URL.Path).Str("ip", c.ClientIP()).Msg("Rejected request with invalid CSRF token")
			utils.Error(c, http.StatusForbidden, utils.CodeCSRFInvalid, "Invalid or missing form token. Reload the page and try again.")
			c.Abort()
			return
		}
		c.Next()
	}
}
