package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "LMS Content Access API",
        "description": "Course content access decisions and enrolment period management",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Access", "description": "Content access decisions"},
        {"name": "Enrolments", "description": "Student course enrolments"},
        {"name": "Courses", "description": "Courses and their contents"},
        {"name": "Students", "description": "Student registry"}
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
        "/api/v1/access/check": {
            "post": {
                "tags": ["Access"],
                "summary": "Check whether a student may access course content",
                "parameters": [
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CheckContentAccessRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Decision", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown student, course or enrolment"}
                }
            }
        },
        "/api/v1/enrolments": {
            "post": {
                "tags": ["Enrolments"],
                "summary": "Enroll a student in a course",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/api/v1/enrolments/{id}": {
            "get": {
                "tags": ["Enrolments"],
                "summary": "Get an enrolment",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Enrolment"}
                }
            }
        },
        "/api/v1/enrolments/{id}/period": {
            "put": {
                "tags": ["Enrolments"],
                "summary": "Update an enrolment's active period",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Updated"},
                    "422": {"description": "Invalid enrolment period"}
                }
            }
        },
        "/api/v1/courses": {
            "post": {
                "tags": ["Courses"],
                "summary": "Create a course",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/api/v1/courses/{id}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get a course",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Course"}
                }
            }
        },
        "/api/v1/courses/{id}/contents": {
            "get": {
                "tags": ["Courses"],
                "summary": "List course contents",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Contents"}
                }
            }
        },
        "/api/v1/courses/{id}/contents/export": {
            "get": {
                "tags": ["Courses"],
                "summary": "Export course contents as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "CSV document"}
                }
            }
        },
        "/api/v1/courses/{id}/lessons": {
            "post": {
                "tags": ["Courses"],
                "summary": "Schedule a lesson",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/api/v1/courses/{id}/homeworks": {
            "post": {
                "tags": ["Courses"],
                "summary": "Add a homework",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/api/v1/courses/{id}/prep-materials": {
            "post": {
                "tags": ["Courses"],
                "summary": "Add preparatory material",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/api/v1/students": {
            "post": {
                "tags": ["Students"],
                "summary": "Register a student",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/api/v1/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get a student",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Student"}
                }
            }
        }
    },
    "definitions": {
        "CheckContentAccessRequest": {
            "type": "object",
            "required": ["student_id", "course_id", "content_id"],
            "properties": {
                "student_id": {"type": "string"},
                "course_id": {"type": "string"},
                "content_id": {"type": "string"},
                "access_time": {"type": "string", "format": "date-time"}
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
