package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/rental-pricing-engine/internal/application"
	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
	"github.com/DanielPopoola/rental-pricing-engine/internal/interfaces/rest"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

// OpenAPIValidator rejects requests that do not match the document's
// parameter and body schemas. Routes the document does not describe pass
// through untouched.
func OpenAPIValidator(doc *openapi3.T, logger *slog.Logger) (func(http.Handler) http.Handler, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	options := &openapi3filter.Options{
		MultiError:         false,
		ExcludeRequestBody: false,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
					next.ServeHTTP(w, r)
					return
				}
				rest.WriteError(w, application.NewInternalError(err), logger)
				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				rest.WriteError(w, application.NewInvalidInputError(toInvalidArgument(err)), logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

func toInvalidArgument(err error) error {
	field := "request"
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		switch {
		case reqErr.Parameter != nil:
			field = reqErr.Parameter.Name
		case reqErr.RequestBody != nil:
			field = "body"
		}
		var schemaErr *openapi3.SchemaError
		if errors.As(err, &schemaErr) {
			if path := schemaErr.JSONPointer(); len(path) > 0 {
				field = path[len(path)-1]
			}
			return domain.NewInvalidArgumentError(field, schemaErr.Reason)
		}
		if reqErr.Reason != "" {
			return domain.NewInvalidArgumentError(field, reqErr.Reason)
		}
	}
	return domain.NewInvalidArgumentError(field, err.Error())
}
