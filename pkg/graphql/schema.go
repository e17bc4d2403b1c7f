// Package graphql serves a graphql-go schema over HTTP.
package graphql

import (
	"github.com/graphql-go/graphql"
)

// NewSchema creates a read-only schema from the root query object.
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}

// Execute runs one request against schema.
func Execute(schema graphql.Schema, req Request, opts ...func(*graphql.Params)) *graphql.Result {
	params := graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
	}
	for _, opt := range opts {
		opt(&params)
	}
	return graphql.Do(params)
}
