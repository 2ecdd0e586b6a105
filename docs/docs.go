// Package docs registers the OpenAPI document served under /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sessionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorPayload"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Create an account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/registerRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/sessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorPayload"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorPayload"}}
                }
            }
        },
        "/auth/logout": {
            "post": {"tags": ["auth"], "summary": "Sign out", "responses": {"204": {"description": "No Content"}}}
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Current principal",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.User"}}}
            }
        },
        "/documents": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["documents"],
                "summary": "List documents",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Search title or file name", "name": "q", "in": "query"},
                    {"type": "string", "description": "Exact category", "name": "category", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/listResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["documents"],
                "summary": "Upload a document",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "name": "category", "in": "formData", "required": true},
                    {"type": "file", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Document"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errorPayload"}}
                }
            }
        },
        "/documents/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["documents"],
                "summary": "Delete a document",
                "description": "Unknown IDs also answer 204.",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/documents/{id}/download": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["documents"],
                "summary": "Request a download",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/service.Receipt"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorPayload"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["documents"],
                "summary": "Dashboard counters and the newest documents",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dashboardResponse"}}}
            }
        },
        "/admin/documents": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "List every document with storage details",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/listResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorPayload"}}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness probe",
                "description": "Pings the database when one is configured.",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "errorPayload": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "fields": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "loginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "registerRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}
        },
        "sessionResponse": {
            "type": "object",
            "properties": {"user": {"$ref": "#/definitions/model.User"}, "token": {"type": "string"}}
        },
        "listResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/model.Document"}},
                "total": {"type": "integer"},
                "categories": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dashboardResponse": {
            "type": "object",
            "properties": {
                "total_documents": {"type": "integer"},
                "categories": {"type": "integer"},
                "recent_uploads": {"type": "integer"},
                "recent": {"type": "array", "items": {"$ref": "#/definitions/model.Document"}}
            }
        },
        "model.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "user"]}
            }
        },
        "model.Document": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "category": {"type": "string"},
                "upload_date": {"type": "string", "example": "2024-01-15"},
                "file_name": {"type": "string"},
                "file_size": {"type": "string", "example": "2.5 MB"},
                "uploaded_by": {"type": "string"},
                "storage_path": {"type": "string"},
                "content_type": {"type": "string"}
            }
        },
        "service.Receipt": {
            "type": "object",
            "properties": {
                "document_id": {"type": "string"},
                "file_name": {"type": "string"},
                "status": {"type": "string", "example": "requested"},
                "url": {"type": "string"},
                "expires_at": {"type": "string", "format": "date-time"}
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
	Title:            "Document Vault API",
	Description:      "Session and document repository API with simulated operation latency.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
