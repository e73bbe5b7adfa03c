// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with `swag init -g internal/api/router.go`.
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
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/v1/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["dashboard"],
                "summary": "Dashboard counters and latest customers",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/customers": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["customers"],
                "summary": "List customers",
                "parameters": [
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["customers"],
                "summary": "Create a customer",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/v1/customers/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["customers"],
                "summary": "Get a customer",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["customers"],
                "summary": "Edit a customer",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["customers"],
                "summary": "Delete a customer",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/customers/{id}/image": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["customers"],
                "summary": "Replace a customer's image",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "file", "name": "image", "in": "formData", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/v1/customers/import": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["import"],
                "summary": "Import customers from an xlsx file",
                "consumes": ["multipart/form-data"],
                "parameters": [{"type": "file", "name": "excel_file", "in": "formData", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/v1/customers/import/sample": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["import"],
                "summary": "Download the import template",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/customers/import/runs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["import"],
                "summary": "Recent import runs",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/customers/export/pdf": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["import"],
                "summary": "Download the customer report",
                "produces": ["application/pdf"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "List users",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Register a user",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/v1/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Get a user with profile",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Edit a user",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["profile"],
                "summary": "Current user's profile",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["profile"],
                "summary": "Edit the current user's account and profile",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/profile/image": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["profile"],
                "summary": "Replace the current user's profile image",
                "consumes": ["multipart/form-data"],
                "parameters": [{"type": "file", "name": "profile_image", "in": "formData", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "CRM API",
	Description:      "Customer records, spreadsheet import and PDF reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
