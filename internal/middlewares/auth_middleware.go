package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/responses"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/utils"
)

// Context keys set by Authenticate.
const (
	UserIDKey = "userId"
	ClaimsKey = "claims"
)

var errUnauthorized = errors.New("unauthorized")

// TokenVerifier validates an access token and reports revoked ones as errors.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*utils.Claims, error)
}

func Authenticate(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			responses.Abort(c, http.StatusUnauthorized, errUnauthorized, "No token, authorization denied")
			return
		}

		// Expected format: "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			responses.Abort(c, http.StatusUnauthorized, errUnauthorized, "Invalid Authorization format")
			return
		}

		claims, err := verifier.VerifyToken(c.Request.Context(), parts[1])
		if err != nil {
			responses.Abort(c, http.StatusUnauthorized, err, "Token is not valid")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}
