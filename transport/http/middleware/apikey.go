package middleware

import (
	"bilateral/shared/constant"
	"bilateral/shared/failure"
	"bilateral/transport/http/response"
	"crypto/subtle"
	"net/http"
)

var errMissingAPIKey = failure.Unauthorized("Missing API key")

// APIKey guards operator endpoints. With no key configured every request is refused.
func (a *appMiddleware) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, scope := a.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)
		expected := a.config.App.APIKey

		if apiKey == "" {
			scope.TraceError(errMissingAPIKey)
			response.WithError(writer, errMissingAPIKey)

			return
		}

		if expected == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
			scope.TraceError(failure.ForbiddenError)
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request)
	})
}
