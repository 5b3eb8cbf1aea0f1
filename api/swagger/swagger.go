package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Student Portal API",
        "description": "Student records, GPA and payment-request workflow",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Student accounts and organizer sign-in"},
        {"name": "Students", "description": "Student records and course lists"},
        {"name": "Notifications", "description": "Payment-request workflow"},
        {"name": "Exports", "description": "ID-card and transcript downloads"}
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate a student account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/save-user": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Create a login account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Email already exists"}
                }
            }
        },
        "/organizer-login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate an organizer",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Access denied"}
                }
            }
        },
        "/get-student": {
            "get": {
                "tags": ["Students"],
                "summary": "Fetch a student record",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "code", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/save-student": {
            "post": {
                "tags": ["Students"],
                "summary": "Save a student record and course list",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Student"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Account cannot edit student data"}
                }
            }
        },
        "/get-notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List payment notifications",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/pay-notification": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Request a payment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PayRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "A pending request already exists"}
                }
            }
        },
        "/respond-notification": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Respond to a payment request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RespondRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Only the auditing organizer can respond"},
                    "409": {"description": "Already responded"}
                }
            }
        },
        "/confirm-payment": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Confirm a payment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ConfirmRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "No response to confirm"}
                }
            }
        },
        "/export-card": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export a student identity card (PDF)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "code", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF document"}
                }
            }
        },
        "/export-transcript": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export a student transcript (CSV)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "code", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "CSV document"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "code": {"type": "string"}
            }
        },
        "Student": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "name": {"type": "string"},
                "nid": {"type": "string"},
                "level": {"type": "string"},
                "major": {"type": "string"},
                "division": {"type": "string"},
                "photo": {"type": "string"},
                "courses": {"type": "array", "items": {"$ref": "#/definitions/Course"}}
            }
        },
        "Course": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "name": {"type": "string"},
                "credits": {"type": "number"},
                "grade": {"type": "string"}
            }
        },
        "PayRequest": {
            "type": "object",
            "properties": {
                "studentCode": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "RespondRequest": {
            "type": "object",
            "properties": {
                "notificationId": {"type": "string"},
                "notificationIndex": {"type": "integer"},
                "response": {
                    "type": "object",
                    "properties": {
                        "hours": {"type": "number"},
                        "price": {"type": "number"}
                    }
                }
            }
        },
        "ConfirmRequest": {
            "type": "object",
            "properties": {
                "notificationId": {"type": "string"},
                "notificationIndex": {"type": "integer"}
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
