// Package graph exposes the product catalog as a read-only GraphQL API.
package graph

import (
	"errors"

	"github.com/graphql-go/graphql"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/services"
	pkggraphql "github.com/shashiranjanraj/storefront/pkg/graphql"
)

var imageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Image",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.ID, Resolve: imageField(func(i models.Image) interface{} { return int(i.ID) })},
		"name":        &graphql.Field{Type: graphql.String, Resolve: imageField(func(i models.Image) interface{} { return i.Name })},
		"contentType": &graphql.Field{Type: graphql.String, Resolve: imageField(func(i models.Image) interface{} { return i.ContentType })},
		"isPreview":   &graphql.Field{Type: graphql.Boolean, Resolve: imageField(func(i models.Image) interface{} { return i.IsPreview })},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.ID, Resolve: productField(func(p models.Product) interface{} { return int(p.ID) })},
		"title":       &graphql.Field{Type: graphql.String, Resolve: productField(func(p models.Product) interface{} { return p.Title })},
		"description": &graphql.Field{Type: graphql.String, Resolve: productField(func(p models.Product) interface{} { return p.Description })},
		"price":       &graphql.Field{Type: graphql.Int, Resolve: productField(func(p models.Product) interface{} { return p.Price })},
		"previewImageId": &graphql.Field{
			Type: graphql.Int,
			Resolve: productField(func(p models.Product) interface{} {
				if p.PreviewImageID == nil {
					return nil
				}
				return int(*p.PreviewImageID)
			}),
		},
		"images": &graphql.Field{
			Type:    graphql.NewList(imageType),
			Resolve: productField(func(p models.Product) interface{} { return p.Images }),
		},
	},
})

// NewSchema builds the catalog schema around the product service.
func NewSchema(products *services.ProductService) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"title": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					title, _ := p.Args["title"].(string)
					return products.List(p.Context, title)
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					product, err := products.GetByID(p.Context, uint(id))
					if errors.Is(err, services.ErrProductNotFound) {
						return nil, nil
					}
					return product, err
				},
			},
		},
	})

	return pkggraphql.NewSchema(query)
}

func productField(pick func(models.Product) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		switch v := p.Source.(type) {
		case models.Product:
			return pick(v), nil
		case *models.Product:
			return pick(*v), nil
		}
		return nil, nil
	}
}

func imageField(pick func(models.Image) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if v, ok := p.Source.(models.Image); ok {
			return pick(v), nil
		}
		return nil, nil
	}
}
