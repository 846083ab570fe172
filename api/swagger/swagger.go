package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CodeReg API",
        "description": "Student registration, hackathon enrolment and random team generation, scoped to a browser session workspace.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Workspace", "description": "Active view, dashboard and banner"},
        {"name": "Students", "description": "Student roster"},
        {"name": "Hackathons", "description": "Hackathons and enrolment"},
        {"name": "Teams", "description": "Team generation and export"}
    ],
    "parameters": {
        "SessionHeader": {"name": "X-Session-ID", "in": "header", "type": "string", "description": "Workspace id; the codereg_session cookie is used when absent"},
        "HackathonID": {"name": "id", "in": "path", "required": true, "type": "string"}
    },
    "paths": {
        "/state": {
            "get": {
                "tags": ["Workspace"],
                "summary": "Current workspace state",
                "parameters": [{"$ref": "#/parameters/SessionHeader"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Workspace"],
                "summary": "Dashboard cards",
                "parameters": [{"$ref": "#/parameters/SessionHeader"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/view": {
            "put": {
                "tags": ["Workspace"],
                "summary": "Switch the active view",
                "parameters": [
                    {"$ref": "#/parameters/SessionHeader"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NavigateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unknown or non-navigable view", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"$ref": "#/parameters/SessionHeader"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Register student",
                "parameters": [
                    {"$ref": "#/parameters/SessionHeader"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentForm"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate email or roll number", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/hackathons": {
            "get": {
                "tags": ["Hackathons"],
                "summary": "List hackathons",
                "parameters": [{"$ref": "#/parameters/SessionHeader"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Hackathons"],
                "summary": "Create hackathon",
                "parameters": [
                    {"$ref": "#/parameters/SessionHeader"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/HackathonForm"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/hackathons/{id}": {
            "get": {
                "tags": ["Hackathons"],
                "summary": "Get hackathon detail",
                "parameters": [{"$ref": "#/parameters/SessionHeader"}, {"$ref": "#/parameters/HackathonID"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/hackathons/{id}/registrations": {
            "post": {
                "tags": ["Hackathons"],
                "summary": "Register the latest student for a hackathon",
                "parameters": [{"$ref": "#/parameters/SessionHeader"}, {"$ref": "#/parameters/HackathonID"}],
                "responses": {
                    "200": {"description": "Student already registered", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "201": {"description": "Registered", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "No student registered yet", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/hackathons/{id}/teams": {
            "get": {
                "tags": ["Teams"],
                "summary": "Current teams of a hackathon",
                "parameters": [{"$ref": "#/parameters/SessionHeader"}, {"$ref": "#/parameters/HackathonID"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Teams"],
                "summary": "Generate teams",
                "parameters": [{"$ref": "#/parameters/SessionHeader"}, {"$ref": "#/parameters/HackathonID"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "No registered students", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/hackathons/{id}/teams/export": {
            "get": {
                "tags": ["Teams"],
                "summary": "Download the team roster",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"$ref": "#/parameters/SessionHeader"},
                    {"$ref": "#/parameters/HackathonID"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Roster file", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "No teams generated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notification": {
            "get": {
                "tags": ["Workspace"],
                "summary": "Current banner",
                "parameters": [{"$ref": "#/parameters/SessionHeader"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notification/{token}": {
            "delete": {
                "tags": ["Workspace"],
                "summary": "Dismiss the banner if it still carries the token",
                "parameters": [
                    {"$ref": "#/parameters/SessionHeader"},
                    {"name": "token", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "StudentForm": {
            "type": "object",
            "required": ["name", "roll_number", "email", "phone_number"],
            "properties": {
                "name": {"type": "string"},
                "roll_number": {"type": "string"},
                "course": {"type": "string"},
                "year": {"type": "string"},
                "batch": {"type": "string"},
                "email": {"type": "string", "format": "email"},
                "phone_number": {"type": "string"}
            }
        },
        "HackathonForm": {
            "type": "object",
            "required": ["name", "date", "description", "max_teams"],
            "properties": {
                "name": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "description": {"type": "string"},
                "max_teams": {"type": "integer", "minimum": 1}
            }
        },
        "NavigateRequest": {
            "type": "object",
            "required": ["view"],
            "properties": {
                "view": {"type": "string", "enum": ["dashboard", "registerStudent", "createHackathon"]}
            }
        },
        "Notification": {
            "type": "object",
            "properties": {
                "token": {"type": "integer"},
                "kind": {"type": "string", "enum": ["success", "info", "warning", "error"]},
                "message": {"type": "string"},
                "posted_at": {"type": "string", "format": "date-time"}
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
        "ResponseMeta": {
            "type": "object",
            "properties": {
                "notification": {"$ref": "#/definitions/Notification"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"$ref": "#/definitions/ResponseMeta"}
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
