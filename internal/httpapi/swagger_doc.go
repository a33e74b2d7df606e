//go:build swagger

package httpapi

import "github.com/swaggo/swag"

// swaggerDoc is the OpenAPI 2.0 document served at /swagger/doc.json.
const swaggerDoc = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/state": {
            "get": {
                "summary": "Current application state",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StateResponse"}},
                    "503": {"description": "Store loop stopped", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/actions": {
            "post": {
                "summary": "Dispatch an action",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "action", "required": true, "schema": {"$ref": "#/definitions/types.ActionRequest"}}
                ],
                "responses": {
                    "200": {"description": "State after the dispatch", "schema": {"$ref": "#/definitions/types.StateResponse"}},
                    "400": {"description": "Unknown type or bad payload", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "409": {"description": "Reentrant dispatch", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Not JSON", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/users/{id}/load": {
            "post": {
                "summary": "Load a user from the users API into the store",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.LoadUserResponse"}},
                    "400": {"description": "Invalid id", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "404": {"description": "Unknown remote user", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "502": {"description": "Remote failure", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "504": {"description": "Remote timeout", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/views/hello": {
            "get": {
                "summary": "Rendered hello view",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ViewResponse"}},
                    "422": {"description": "Enthusiasm below 1", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/views/login": {
            "get": {
                "summary": "Rendered login view",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ViewResponse"}}
                }
            }
        },
        "/healthz": {"get": {"summary": "Liveness", "responses": {"200": {"description": "ok"}}}},
        "/readyz": {"get": {"summary": "Readiness", "responses": {"200": {"description": "ready"}, "503": {"description": "starting"}}}}
    },
    "definitions": {
        "types.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 2},
                "firstName": {"type": "string", "example": "Janet"},
                "lastName": {"type": "string", "example": "Weaver"},
                "avatar": {"type": "string"}
            }
        },
        "types.StateResponse": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/types.User"},
                "enthusiasmLevel": {"type": "integer", "example": 3}
            }
        },
        "types.ActionRequest": {
            "type": "object",
            "required": ["type"],
            "properties": {
                "type": {"type": "string", "example": "enthusiasm/INCREMENT"},
                "payload": {"type": "object"}
            }
        },
        "types.LoadUserResponse": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/types.User"},
                "state": {"$ref": "#/definitions/types.StateResponse"}
            }
        },
        "types.ViewResponse": {
            "type": "object",
            "properties": {
                "view": {"type": "string", "example": "hello"},
                "text": {"type": "string", "example": "Hello Janet!!!"},
                "props": {"type": "object"}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds the values substituted into swaggerDoc.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "hellod API",
	Description:      "HTTP surface over the hellod state store: read state, dispatch actions, load users.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  swaggerDoc,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
