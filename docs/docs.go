// Package docs holds the Swagger 2.0 document for the apple routes, registered with swag
// so gofiber/swagger can serve it. It is maintained by hand alongside the handler annotations.
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
        "/api/apples": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Apples"],
                "summary": "List apples",
                "parameters": [
                    {"type": "integer", "default": 10, "description": "page size", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "rows to skip", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.AppleListResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Apples"],
                "summary": "Save apple",
                "parameters": [
                    {"description": "apple; id is optional", "name": "apple", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.AppleDTO"}}
                ],
                "responses": {
                    "201": {"description": "Apple saved successfully", "schema": {"$ref": "#/definitions/model.AppleDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "409": {"description": "Conflicting apple ID. Entity already exists"}
                }
            }
        },
        "/api/apples/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Apples"],
                "summary": "Get apple with specified ID",
                "parameters": [
                    {"type": "string", "description": "apple id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Apple fetched successfully", "schema": {"$ref": "#/definitions/model.AppleDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Cannot find Apple with specified ID"}
                }
            },
            "put": {
                "description": "Replaces the name of the apple at the path id. Any id in the body is ignored.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Apples"],
                "summary": "Update apple",
                "parameters": [
                    {"type": "string", "description": "apple id", "name": "id", "in": "path", "required": true},
                    {"description": "replacement fields", "name": "apple", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.AppleDTO"}}
                ],
                "responses": {
                    "200": {"description": "Apple updated successfully", "schema": {"$ref": "#/definitions/model.AppleDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Cannot find Apple with specified ID"}
                }
            },
            "delete": {
                "tags": ["Apples"],
                "summary": "Delete apple by ID",
                "parameters": [
                    {"type": "string", "description": "apple id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "Apple deleted successfully"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Cannot find Apple with specified ID"}
                }
            }
        }
    },
    "definitions": {
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.errorEnvelope"},
                "request_id": {"type": "string"}
            }
        },
        "model.AppleDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "service.AppleListResult": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/model.AppleDTO"}},
                "total": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Apples API",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
