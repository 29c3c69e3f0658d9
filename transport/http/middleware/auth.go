package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"rkhub/config"
	"rkhub/infras/jwt"
	"rkhub/infras/otel"
	"rkhub/permissions"
	"rkhub/shared/constant"
	"rkhub/shared/failure"
	"rkhub/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type trustedCallerKey struct{}

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	tokens jwt.JWT
	otel   otel.Otel
	policy *permissions.Policy
	apiKey string
}

func NewAuthRoleMiddleware(tokens jwt.JWT, otel otel.Otel, policy *permissions.Policy, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		tokens: tokens,
		otel:   otel,
		policy: policy,
		apiKey: cfg.App.APIKey,
	}
}

// route resolves the policy entry for the chi pattern the request will
// match, e.g. /v1/admin/updates/{id}.
func (m *authRoleImpl) route(request *http.Request) (permissions.Route, string) {
	pattern := request.URL.Path

	if rctx := chi.RouteContext(request.Context()); rctx != nil && rctx.Routes != nil {
		pattern = rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
	}

	if m.policy == nil {
		return permissions.Route{}, pattern
	}

	route, _ := m.policy.Lookup(request.Method, pattern)

	return route, pattern
}

func trusted(ctx context.Context) bool {
	ok, _ := ctx.Value(trustedCallerKey{}).(bool)

	return ok
}

func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, jwt.ErrInvalidClaim):
		return "Invalid token claims"
	case errors.Is(err, jwt.ErrInvalidToken):
		return "Invalid token"
	default:
		return "Token validation failed"
	}
}

// Auth verifies the bearer access token and stores its claims on the
// request context.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		route, pattern := m.route(request)
		if trusted(ctx) || route.Public {
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"http.route":  pattern,
			"http.method": request.Method,
		})

		token, err := jwt.FromHeader(request.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			scope.TraceError(err)
			response.WithError(writer, failure.Unauthorized(err.Error()))

			return
		}

		claims, err := m.tokens.Verify(token, jwt.AccessToken)
		if err == nil && claims.Email == constant.Empty {
			err = jwt.ErrInvalidClaim
		}

		if err != nil {
			scope.TraceError(err)
			log.Warn().Err(err).Str("route", pattern).Msg("rejected access token")
			response.WithError(writer, failure.Unauthorized(tokenErrorMessage(err)))

			return
		}

		scope.SetAttribute("admin.id", claims.AdminID)
		next.ServeHTTP(writer, request.WithContext(jwt.WithClaims(ctx, claims)))
	})
}

// RBAC admits the request when the role from Auth is listed for the route in
// permissions.json. A route listing no roles is open to any admin.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if trusted(ctx) {
			next.ServeHTTP(writer, request)

			return
		}

		if m.policy == nil {
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		route, _ := m.route(request)
		if m.policy.Public || route.Public {
			next.ServeHTTP(writer, request)

			return
		}

		var role string
		if claims, ok := jwt.ClaimsFrom(ctx); ok {
			role = claims.Role
		}

		if !route.Allows(role) {
			scope.SetAttributes(map[string]any{
				"admin.role":    role,
				"allowed_roles": route.Roles,
			})
			scope.TraceError(failure.ForbiddenError)
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

// APIKey marks callers presenting the configured key as trusted so Auth and
// RBAC let them through. Requests without the header fall through to Auth.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		presented := request.Header.Get(constant.RequestHeaderAPIKey)
		if presented == constant.Empty {
			scope.SetAttribute("http.source", "client")
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.apiKey == constant.Empty || subtle.ConstantTimeCompare([]byte(presented), []byte(m.apiKey)) != 1 {
			scope.TraceError(failure.ForbiddenError)
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request.WithContext(context.WithValue(ctx, trustedCallerKey{}, true)))
	})
}
