package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/wayfarer/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to the place service.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"latitude":  &graphql.Field{Type: graphql.Float},
			"longitude": &graphql.Field{Type: graphql.Float},
		},
	})

	placeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Place",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"coordinates": &graphql.Field{Type: geoPointType},
			"tags":        &graphql.Field{Type: graphql.NewList(graphql.String)},
			"owners":      &graphql.Field{Type: graphql.NewList(graphql.String)},
			"description": &graphql.Field{Type: graphql.String},
			"distance_km": &graphql.Field{Type: graphql.Float},
			"created_at":  &graphql.Field{Type: graphql.DateTime},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"places": &graphql.Field{
				Type:        graphql.NewList(placeType),
				Description: "List all places",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Places.ListPlaces(p.Context)
				},
			},
			"place": &graphql.Field{
				Type:        placeType,
				Description: "Get a place by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					return deps.Places.GetPlace(p.Context, id)
				},
			},
			"placesNear": &graphql.Field{
				Type:        graphql.NewList(placeType),
				Description: "Places within distance_km of a point, nearest first",
				Args: graphql.FieldConfigArgument{
					"latitude":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"longitude":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"distance_km": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: defaultNearRadiusKm},
					"tag":         &graphql.ArgumentConfig{Type: graphql.String},
					"name":        &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					q := domain.NearQuery{
						Center: domain.GeoPoint{
							Lat: p.Args["latitude"].(float64),
							Lon: p.Args["longitude"].(float64),
						},
						RadiusKm: p.Args["distance_km"].(float64),
					}
					if tag, ok := p.Args["tag"].(string); ok {
						q.Tag = tag
					}
					if name, ok := p.Args["name"].(string); ok {
						q.NameContains = name
					}
					return deps.Places.FindNear(p.Context, q)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
