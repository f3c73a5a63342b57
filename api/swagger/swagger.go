package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Tutor Marketplace API",
        "description": "Registration, login and teacher directory backend",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Teachers", "description": "Public teacher directory"},
        {"name": "Authentication", "description": "Registration and login"},
        {"name": "Admin", "description": "Password-gated maintenance"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check including store reachability",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Store unreachable"}
                }
            }
        },
        "/api/list-teachers": {
            "get": {
                "tags": ["Teachers"],
                "summary": "List all teacher profiles joined with user data",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TeacherList"}}
                }
            }
        },
        "/api/teacher/{id}": {
            "get": {
                "tags": ["Teachers"],
                "summary": "Get one teacher by ID",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Teacher not found"}
                }
            }
        },
        "/api/teacher/profile": {
            "get": {
                "tags": ["Teachers"],
                "summary": "Get the profile owned by a user",
                "parameters": [
                    {"name": "userId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Profile not found"}
                }
            },
            "post": {
                "tags": ["Teachers"],
                "summary": "Update the caller's own profile (Bearer token required)",
                "responses": {
                    "200": {"description": "Updated"},
                    "401": {"description": "Missing or invalid session token"}
                }
            }
        },
        "/api/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a user account (upsert)",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Missing required fields"},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate by email and password",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/api/auth/register-teacher": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a teacher and its profile atomically",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Missing userId or email"},
                    "500": {"description": "Transaction failure"}
                }
            }
        },
        "/api/admin/delete-teacher": {
            "post": {
                "tags": ["Admin"],
                "summary": "Remove a teacher account and profile",
                "responses": {
                    "200": {"description": "Removed"},
                    "400": {"description": "Missing id"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/api/admin/export-teachers": {
            "get": {
                "tags": ["Admin"],
                "summary": "Export the directory as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File attachment"},
                    "401": {"description": "Unauthorized"}
                }
            }
        }
    },
    "definitions": {
        "TeacherList": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "count": {"type": "integer"},
                "teachers": {"type": "array", "items": {"type": "object"}}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
