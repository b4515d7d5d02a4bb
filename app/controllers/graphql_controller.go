package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/shashiranjanraj/storefront/app/graph"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

// GraphQLController serves the catalog query endpoint.
type GraphQLController struct {
	schema graphql.Schema
}

func NewGraphQLController(products *services.ProductService) (*GraphQLController, error) {
	schema, err := graph.NewSchema(products)
	if err != nil {
		return nil, err
	}
	return &GraphQLController{schema: schema}, nil
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// Query executes a GraphQL document. GET takes ?query=, POST a JSON body.
func (c *GraphQLController) Query(w http.ResponseWriter, r *http.Request) {
	var req graphqlRequest
	if r.Method == http.MethodGet {
		req.Query = r.URL.Query().Get("query")
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid GraphQL request body")
		return
	}
	if req.Query == "" {
		response.Error(w, http.StatusBadRequest, "Missing query")
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         c.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		Context:        r.Context(),
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result) //nolint:errcheck
}
