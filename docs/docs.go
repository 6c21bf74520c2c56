// Package docs holds the OpenAPI document served at /swagger/*.
// Regenerate with: swag init -g cmd/server/main.go
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
        "/api/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "Registration details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.Envelope"}}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.Envelope"}}
                }
            }
        },
        "/api/auth/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.Envelope"}}
                }
            }
        },
        "/api/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.Envelope"}}
                }
            }
        },
        "/api/users/profile": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Update own profile",
                "parameters": [
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.updateProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.Envelope"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Delete own account",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.Envelope"}}
                }
            }
        },
        "/api/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List products",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Create a product",
                "parameters": [
                    {"description": "Product details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createProductRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.Envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.Envelope"}}
                }
            }
        },
        "/api/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Get a product",
                "parameters": [{"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.Envelope"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Update a product",
                "parameters": [
                    {"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.updateProductRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.Envelope"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Delete a product",
                "parameters": [{"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.Envelope"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness check",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        }
    },
    "definitions": {
        "handler.Envelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {}
            }
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["name", "email", "password"],
            "properties": {
                "name": {"type": "string", "maxLength": 100, "minLength": 1},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.updateProfileRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "maxLength": 100, "minLength": 1},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6}
            }
        },
        "handler.createProductRequest": {
            "type": "object",
            "required": ["name", "description", "price", "stock"],
            "properties": {
                "name": {"type": "string", "maxLength": 200, "minLength": 2},
                "description": {"type": "string", "maxLength": 2000, "minLength": 10},
                "price": {"type": "number", "minimum": 0},
                "stock": {"type": "integer", "minimum": 0},
                "imageUrl": {"type": "string"}
            }
        },
        "handler.updateProductRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "maxLength": 200, "minLength": 2},
                "description": {"type": "string", "maxLength": 2000, "minLength": 10},
                "price": {"type": "number", "minimum": 0},
                "stock": {"type": "integer", "minimum": 0},
                "imageUrl": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Marketplace API",
	Description:      "Accounts, bearer-token auth and a product catalog.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
