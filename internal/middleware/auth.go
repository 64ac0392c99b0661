package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/arcadehq/arcade/internal/modules/serializer"
	"github.com/arcadehq/arcade/internal/modules/service"
)

// AdminAuth returns a middleware that authenticates requests using admin
// session bearer tokens. It resolves the session, requires the admin flag,
// and sets the user in the context. It also sets the user_id attribute on the
// current span for telemetry filtering.
func AdminAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ctx, authSpan := otel.Tracer("middleware").Start(ctx, "admin_auth",
			trace.WithAttributes(attribute.String("middleware", "admin_auth")))

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			authSpan.SetAttributes(attribute.Bool("authenticated", false))
			authSpan.End()
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		user, err := auth.Authenticate(ctx, raw)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				authSpan.SetAttributes(attribute.Bool("authenticated", false))
				authSpan.End()
				c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
				return
			}
			authSpan.RecordError(err)
			authSpan.End()
			c.AbortWithStatusJSON(http.StatusInternalServerError, serializer.DBErr("", err))
			return
		}

		if !user.IsAdmin {
			authSpan.SetAttributes(
				attribute.String("user_id", user.ID.String()),
				attribute.Bool("authenticated", false),
			)
			authSpan.End()
			c.AbortWithStatusJSON(http.StatusForbidden, serializer.Err(http.StatusForbidden, "admin access required", nil))
			return
		}

		// Set user_id attribute on the current span for telemetry filtering
		rootSpan := trace.SpanFromContext(c.Request.Context())
		if rootSpan.SpanContext().IsValid() {
			rootSpan.SetAttributes(attribute.String("user_id", user.ID.String()))
		}

		authSpan.SetAttributes(
			attribute.String("user_id", user.ID.String()),
			attribute.Bool("authenticated", true),
		)
		authSpan.End()

		c.Set("user", user)
		c.Next()
	}
}
