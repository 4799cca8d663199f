// Package docs is generated by swaggo/swag from the handler annotations.
// Regenerate with: swag init -g cmd/web/main.go -o docs
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
        "/": {
            "get": {
                "produces": ["text/html"],
                "tags": ["pages"],
                "summary": "Home page",
                "parameters": [
                    {"type": "string", "description": "\"new\" opens the create form", "name": "form", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "502": {"description": "external API unavailable"}
                }
            }
        },
        "/login": {
            "get": {
                "produces": ["text/html"],
                "tags": ["auth"],
                "summary": "Login form",
                "responses": {
                    "200": {"description": "OK"},
                    "502": {"description": "tenant display could not be loaded"}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/html"],
                "tags": ["auth"],
                "summary": "Submit login",
                "parameters": [
                    {"type": "string", "description": "Email", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "303": {"description": "redirect to /"},
                    "401": {"description": "credentials rejected, form re-rendered"},
                    "422": {"description": "validation failed, form re-rendered"}
                }
            }
        },
        "/register": {
            "get": {
                "produces": ["text/html"],
                "tags": ["auth"],
                "summary": "Registration form",
                "responses": {
                    "200": {"description": "OK"},
                    "502": {"description": "tenant display could not be loaded"}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/html"],
                "tags": ["auth"],
                "summary": "Submit registration",
                "parameters": [
                    {"type": "string", "description": "First name", "name": "first_name", "in": "formData", "required": true},
                    {"type": "string", "description": "Last name", "name": "last_name", "in": "formData", "required": true},
                    {"type": "string", "description": "Email", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true},
                    {"type": "string", "description": "Password confirmation", "name": "confirm_password", "in": "formData", "required": true},
                    {"type": "boolean", "description": "Register as administrator", "name": "is_admin", "in": "formData"}
                ],
                "responses": {
                    "303": {"description": "redirect to /"},
                    "422": {"description": "validation failed, form re-rendered"}
                }
            }
        },
        "/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {
                    "303": {"description": "redirect to /"}
                }
            }
        },
        "/competitions": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/html"],
                "tags": ["competitions"],
                "summary": "Create competition",
                "parameters": [
                    {"type": "string", "description": "Title", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "Description", "name": "description", "in": "formData", "required": true},
                    {"type": "string", "description": "Start (YYYY-MM-DDTHH:MM)", "name": "start_at", "in": "formData", "required": true},
                    {"type": "string", "description": "End (YYYY-MM-DDTHH:MM)", "name": "end_at", "in": "formData", "required": true},
                    {"type": "boolean", "description": "Make public", "name": "public", "in": "formData"},
                    {"type": "boolean", "description": "Rival is free text", "name": "custom_rival", "in": "formData"},
                    {"type": "string", "description": "Rival tenant name", "name": "rival", "in": "formData"},
                    {"type": "string", "description": "Free-text rival name", "name": "custom_rival_name", "in": "formData"}
                ],
                "responses": {
                    "303": {"description": "redirect to /"},
                    "403": {"description": "caller is not an admin"},
                    "422": {"description": "validation failed, form re-rendered"}
                }
            }
        },
        "/competitions/{id}": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/html"],
                "tags": ["competitions"],
                "summary": "Update competition",
                "parameters": [
                    {"type": "string", "description": "Competition ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Title", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "Description", "name": "description", "in": "formData", "required": true},
                    {"type": "string", "description": "Start (YYYY-MM-DDTHH:MM)", "name": "start_at", "in": "formData", "required": true},
                    {"type": "string", "description": "End (YYYY-MM-DDTHH:MM)", "name": "end_at", "in": "formData", "required": true},
                    {"type": "boolean", "description": "Make public", "name": "public", "in": "formData"},
                    {"type": "boolean", "description": "Rival is free text", "name": "custom_rival", "in": "formData"},
                    {"type": "string", "description": "Rival tenant name", "name": "rival", "in": "formData"},
                    {"type": "string", "description": "Free-text rival name", "name": "custom_rival_name", "in": "formData"}
                ],
                "responses": {
                    "303": {"description": "redirect to /"},
                    "403": {"description": "caller may not edit this competition"},
                    "404": {"description": "competition not found"},
                    "422": {"description": "validation failed, form re-rendered"}
                }
            }
        },
        "/competitions/{id}/edit": {
            "get": {
                "produces": ["text/html"],
                "tags": ["competitions"],
                "summary": "Edit competition form",
                "parameters": [
                    {"type": "string", "description": "Competition ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "caller may not edit this competition"},
                    "404": {"description": "competition not found"}
                }
            }
        },
        "/competitions/{id}/delete": {
            "post": {
                "tags": ["competitions"],
                "summary": "Delete competition",
                "parameters": [
                    {"type": "string", "description": "Competition ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "303": {"description": "redirect to /"},
                    "403": {"description": "caller may not delete this competition"},
                    "404": {"description": "competition not found"},
                    "502": {"description": "external API rejected the request"}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.dependencyStatus": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "dependencies": {
                    "type": "object",
                    "additionalProperties": {"$ref": "#/definitions/handler.dependencyStatus"}
                },
                "status": {"type": "string"}
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
	Title:            "Schools Web",
	Description:      "Server-rendered multi-tenant front-end for the schools application.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
