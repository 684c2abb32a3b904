package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Growth Report API",
        "description": "Report template engine and public share surface for the academy back office",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Templates", "description": "Report template store"},
        {"name": "Reports", "description": "Publication registry"},
        {"name": "Public", "description": "Unauthenticated share links"}
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
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/templates": {
            "get": {
                "tags": ["Templates"],
                "summary": "List report templates",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"schema": {"$ref": "#/definitions/ResponseEnvelope"}, "description": "OK"}
                }
            },
            "post": {
                "tags": ["Templates"],
                "summary": "Create a template",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTemplateRequest"}}
                ],
                "responses": {
                    "201": {"schema": {"$ref": "#/definitions/ResponseEnvelope"}, "description": "Created"},
                    "400": {"schema": {"$ref": "#/definitions/ResponseEnvelope"}, "description": "Validation failed"}
                }
            }
        },
        "/api/v1/templates/{id}": {
            "get": {
                "tags": ["Templates"],
                "summary": "Get a template",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"schema": {"$ref": "#/definitions/ResponseEnvelope"}, "description": "OK"},
                    "404": {"schema": {"$ref": "#/definitions/ResponseEnvelope"}, "description": "Not found"}
                }
            },
            "put": {
                "tags": ["Templates"],
                "summary": "Update a template",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTemplateRequest"}}
                ],
                "responses": {
                    "200": {"schema": {"$ref": "#/definitions/ResponseEnvelope"}, "description": "OK"},
                    "404": {"schema": {"$ref": "#/definitions/ResponseEnvelope"}, "description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Templates"],
                "summary": "Delete an unused template",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"schema": {"$ref": "#/definitions/ResponseEnvelope"}, "description": "Not found"},
                    "409": {"schema": {"$ref": "#/definitions/ResponseEnvelope"}, "description": "Still referenced by published reports"}
                }
            }
        },
        "/api/v1/templates/{id}/duplicate": {
            "post": {
                "tags": ["Templates"],
                "summary": "Duplicate a template",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "201": {"schema": {"$ref": "#/definitions/ResponseEnvelope"}, "description": "Created"},
                    "404": {"schema": {"$ref": "#/definitions/ResponseEnvelope"}, "description": "Not found"}
                }
            }
        },
        "/api/v1/templates/seed": {
            "post": {
                "tags": ["Templates"],
                "summary": "Install the starter template catalog",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"schema": {"$ref": "#/definitions/ResponseEnvelope"}, "description": "Seed result"}
                }
            }
        },
        "/api/v1/templates/preview": {
            "post": {
                "tags": ["Templates"],
                "summary": "Preview a body against the sample dataset",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PreviewTemplateRequest"}}
                ],
                "responses": {
                    "200": {"schema": {"$ref": "#/definitions/ResponseEnvelope"}, "description": "Rendered preview"}
                }
            }
        },
        "/api/v1/reports": {
            "get": {
                "tags": ["Reports"],
                "summary": "List published reports",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"schema": {"$ref": "#/definitions/ResponseEnvelope"}, "description": "OK"}
                }
            },
            "post": {
                "tags": ["Reports"],
                "summary": "Publish a report for a student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PublishReportRequest"}}
                ],
                "responses": {
                    "201": {"schema": {"$ref": "#/definitions/ResponseEnvelope"}, "description": "Published"},
                    "404": {"schema": {"$ref": "#/definitions/ResponseEnvelope"}, "description": "Student or template not found"}
                }
            }
        },
        "/api/v1/reports/{publicId}": {
            "delete": {
                "tags": ["Reports"],
                "summary": "Unpublish a report",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "publicId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Unpublished"},
                    "404": {"schema": {"$ref": "#/definitions/ResponseEnvelope"}, "description": "Not found"}
                }
            }
        },
        "/api/v1/reports/{publicId}/export": {
            "get": {
                "tags": ["Reports"],
                "summary": "Export a published report as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "publicId", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "pdf"}
                ],
                "responses": {
                    "200": {"description": "Document download"},
                    "404": {"schema": {"$ref": "#/definitions/ResponseEnvelope"}, "description": "Not found"}
                }
            }
        },
        "/r/{publicId}": {
            "get": {
                "tags": ["Public"],
                "summary": "Fetch a shared report",
                "parameters": [
                    {"name": "publicId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"schema": {"$ref": "#/definitions/ResponseEnvelope"}, "description": "Rendered report"},
                    "404": {"schema": {"$ref": "#/definitions/ResponseEnvelope"}, "description": "Not found"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "definitions": {
        "CreateTemplateRequest": {
            "type": "object",
            "required": ["name", "body"],
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "body": {"type": "string"}
            }
        },
        "UpdateTemplateRequest": {
            "type": "object",
            "required": ["name", "body"],
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "body": {"type": "string"}
            }
        },
        "PreviewTemplateRequest": {
            "type": "object",
            "required": ["body"],
            "properties": {
                "body": {"type": "string"}
            }
        },
        "PublishReportRequest": {
            "type": "object",
            "required": ["title", "student_id", "template_id"],
            "properties": {
                "title": {"type": "string"},
                "student_id": {"type": "string"},
                "template_id": {"type": "string"},
                "visibility": {"$ref": "#/definitions/VisibilityOptions"}
            }
        },
        "VisibilityOptions": {
            "type": "object",
            "properties": {
                "show_basic_info": {"type": "boolean"},
                "show_attendance": {"type": "boolean"},
                "show_ai_activity": {"type": "boolean"},
                "show_concepts": {"type": "boolean"},
                "show_homework": {"type": "boolean"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
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
