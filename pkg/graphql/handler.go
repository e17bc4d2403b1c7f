package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/storefront/pkg/bind"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

// Request is the standard GraphQL-over-HTTP body.
type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// Handler answers POST with a JSON Request body, and GET with ?query=.
// Query errors come back in the result's errors array with status 200.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Request
		switch r.Method {
		case http.MethodGet:
			req.Query = r.URL.Query().Get("query")
			req.OperationName = r.URL.Query().Get("operationName")
		case http.MethodPost:
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				response.ValidationError(w, map[string]string{bind.SchemaKey: "The request body must be valid JSON."})
				return
			}
		default:
			w.Header().Set("Allow", "GET, POST")
			response.Message(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		if req.Query == "" {
			response.ValidationError(w, map[string]string{"query": "The query field is required."})
			return
		}

		ctx := r.Context()
		result := Execute(schema, req, func(p *graphql.Params) { p.Context = ctx })
		if result.HasErrors() {
			logger.WithCtx(ctx).Debug("graphql errors", "errors", result.Errors)
		}
		response.JSON(w, http.StatusOK, result)
	}
}
