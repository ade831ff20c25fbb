package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"proxboard/internal/auth"
	"proxboard/internal/model"
)

// Auth rejects requests the authenticator does not accept. Routes
// registered without it stay open regardless of configuration.
func Auth(authenticator auth.Authenticator) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := authenticator.Authenticate(ctx.Request); err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, model.NewResponse("Invalid or missing API key", nil))
			return
		}
		ctx.Next()
	}
}
