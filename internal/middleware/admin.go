package middleware

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/shafe/handcraft/internal/common"
	inErrors "github.com/shafe/handcraft/internal/errors"
	inHttp "github.com/shafe/handcraft/internal/http"
	"github.com/shafe/handcraft/internal/log"
)

// Admin must run after Auth so the jwt token is already on the context.
func Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context()).
			With().
			Str(log.KeyTag, "middleware admin").
			Logger()
		c := logger.WithContext(r.Context())

		if role := common.RoleFromJwtToken(c); role != common.RoleAdmin {
			logger.Error().
				Err(inErrors.ErrForbidden).
				Str("role", role).
				Msg(inErrors.ErrForbidden.Error())
			inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
				"status":     "failed",
				"statusCode": http.StatusForbidden,
				"message":    inErrors.ErrForbidden.Error(),
			})
			return
		}

		next.ServeHTTP(w, r.WithContext(c))
	})
}
