package api

import "github.com/swaggo/swag"

// docTemplate is the OpenAPI 2.0 document for the /api/v1 routes. It follows
// the annotations on the handlers in handlers.go.
const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    },
    "security": [{"ApiKeyAuth": []}],
    "paths": {
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Health check",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/replays/decode": {
            "post": {
                "tags": ["replays"],
                "summary": "Decode a replay",
                "consumes": ["application/octet-stream"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "boolean", "name": "events", "in": "query", "description": "Include events"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Malformed replay", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "422": {"description": "Corrupt event stream", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/replays/repack": {
            "post": {
                "tags": ["replays"],
                "summary": "Re-encode a replay",
                "consumes": ["application/octet-stream"],
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"type": "integer", "name": "preset", "in": "query", "description": "LZMA preset 0-9"}
                ],
                "responses": {
                    "200": {"description": "Encoded replay"},
                    "400": {"description": "Malformed replay", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/replay-data/parse": {
            "post": {
                "tags": ["replays"],
                "summary": "Parse replay event data",
                "consumes": ["application/octet-stream", "text/plain"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "mode", "in": "query", "description": "Game mode (default standard)"},
                    {"type": "boolean", "name": "base64", "in": "query", "description": "Body is base64 text"},
                    {"type": "boolean", "name": "compressed", "in": "query", "description": "Body is LZMA compressed (default true)"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Malformed data", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/replays": {
            "get": {
                "tags": ["archive"],
                "summary": "List archived replays",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "limit", "in": "query", "description": "Maximum number of ids"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}}
            },
            "post": {
                "tags": ["archive"],
                "summary": "Archive a replay",
                "consumes": ["application/octet-stream"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Malformed replay", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/replays/{id}": {
            "get": {
                "tags": ["archive"],
                "summary": "Download an archived replay",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true, "description": "Replay id"}
                ],
                "responses": {
                    "200": {"description": "Replay file"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            },
            "delete": {
                "tags": ["archive"],
                "summary": "Delete an archived replay",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true, "description": "Replay id"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/replays/{id}/summary": {
            "get": {
                "tags": ["archive"],
                "summary": "Summarize an archived replay",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true, "description": "Replay id"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds the exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "osr API",
	Description:      "Decode, re-encode and archive .osr replay files.",
	InfoInstanceName: swag.Name,
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
