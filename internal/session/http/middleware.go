// Package http provides the session endpoints and the identity middleware.
package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
	authzHTTP "github.com/ovationhq/ovation/internal/authz/http"
	"github.com/ovationhq/ovation/internal/httputil"
	sessionUseCase "github.com/ovationhq/ovation/internal/session/usecase"
)

// bearerToken extracts the Bearer token from the Authorization header,
// case-insensitive on the scheme. Returns "" when the header is absent or
// not a bearer scheme.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	const bearerPrefix = "bearer "
	if len(authHeader) < len(bearerPrefix) ||
		!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return authHeader[len(bearerPrefix):]
}

// IdentityMiddleware resolves the request identity and stores it in the
// context for the guards downstream.
//
// Resolution rules:
//   - No Authorization header → the anonymous identity. Anonymous requests
//     proceed; each route's guard decides whether they may pass.
//   - A bearer token that fails authentication → 401. A presented
//     credential must be valid or the request stops here.
//   - A valid token → identity built from the user's granted features.
//     Feature strings that fell out of the catalog since they were granted
//     are dropped with a warning rather than poisoning the identity.
func IdentityMiddleware(
	useCase sessionUseCase.UseCase,
	catalog *authzDomain.Catalog,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		plainToken := bearerToken(c)
		if plainToken == "" {
			ctx := authzHTTP.WithIdentity(c.Request.Context(), authzDomain.Anonymous())
			c.Request = c.Request.WithContext(ctx)
			c.Next()
			return
		}

		user, err := useCase.Authenticate(c.Request.Context(), plainToken)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		features, unknown := catalog.ParseKnown(user.Features)
		if len(unknown) > 0 {
			logger.Warn("user holds features no longer in the catalog",
				slog.String("username", user.Username),
				slog.Any("unknown_features", unknown))
		}

		identity := authzDomain.NewIdentity(user.ID, user.Username, features)
		ctx := authzHTTP.WithIdentity(c.Request.Context(), identity)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("user_id", user.ID.String()),
			slog.String("username", user.Username))

		c.Next()
	}
}
