// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/app/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/listings": {
            "get": {"tags": ["listings"], "summary": "Browse visible listings", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["listings"], "summary": "Create a listing", "responses": {"201": {"description": "Created"}}}
        },
        "/listings/trend": {
            "get": {"tags": ["listings"], "summary": "Actively featured listings", "responses": {"200": {"description": "OK"}}}
        },
        "/listings/{id}": {
            "get": {"tags": ["listings"], "summary": "Get a listing", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["listings"], "summary": "Delete a listing", "responses": {"204": {"description": "No Content"}}}
        },
        "/listings/{id}/contact": {
            "get": {"tags": ["listings"], "summary": "Chat link for a listing", "responses": {"200": {"description": "OK"}}}
        },
        "/listings/{id}/promotion": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["promotion"], "summary": "Request a promotion", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/listings/pending": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Listings awaiting approval", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/listings/{id}/approve": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Approve a promotion", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/listings/{id}/reject": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Reject a listing", "responses": {"204": {"description": "No Content"}}}
        },
        "/admin/bans": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "List bans", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/bans/{userId}": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Ban a user", "responses": {"204": {"description": "No Content"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Lift a ban", "responses": {"204": {"description": "No Content"}}}
        },
        "/favorites": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["favorites"], "summary": "Favorite listing ids", "responses": {"200": {"description": "OK"}}}
        },
        "/favorites/{jobId}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["favorites"], "summary": "Add a favorite", "responses": {"204": {"description": "No Content"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["favorites"], "summary": "Remove a favorite", "responses": {"204": {"description": "No Content"}}}
        },
        "/auth/magic-link": {
            "post": {"tags": ["auth"], "summary": "Email a sign-in link", "responses": {"202": {"description": "Accepted"}}}
        },
        "/auth/verify": {
            "post": {"tags": ["auth"], "summary": "Exchange a magic-link token for a session", "responses": {"200": {"description": "OK"}}}
        },
        "/auth/sign-out": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "End the session", "responses": {"204": {"description": "No Content"}}}
        },
        "/state": {
            "get": {"tags": ["session"], "summary": "Application state for the caller", "responses": {"200": {"description": "OK"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "EMKO API",
	Description:      "Neighborhood classifieds board: listings, promotions, favorites and moderation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
