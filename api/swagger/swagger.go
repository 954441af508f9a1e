package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Summer Camp API",
        "description": "Course enrollment and payment backend",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Token issuance"},
        {"name": "Users", "description": "Registration and role management"},
        {"name": "Classes", "description": "Class lifecycle and catalog"},
        {"name": "Selections", "description": "Pending class selections"},
        {"name": "Payments", "description": "Payment intents and enrollment records"}
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
        "/jwt": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange identity claims for an access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TokenResponse"}}
                }
            }
        },
        "/users": {
            "post": {
                "tags": ["Users"],
                "summary": "Upsert a user on first sign-in",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "Existing user"},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "get": {
                "tags": ["Users"],
                "summary": "List all users (admin only)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/role/{role}": {
            "get": {
                "tags": ["Users"],
                "summary": "List users holding a role (admin only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "role", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/user/role/{email}": {
            "get": {
                "tags": ["Users"],
                "summary": "Resolve the persisted role for an email",
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/RoleResult"}}
                }
            }
        },
        "/users/admin/{id}": {
            "patch": {
                "tags": ["Users"],
                "summary": "Grant the admin role (admin only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Updated"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/users/instructor/{id}": {
            "patch": {
                "tags": ["Users"],
                "summary": "Grant the instructor role (admin only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Updated"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/class": {
            "post": {
                "tags": ["Classes"],
                "summary": "Propose a class (instructor only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClassRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "get": {
                "tags": ["Classes"],
                "summary": "List all classes (admin only)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/class/approved": {
            "get": {
                "tags": ["Classes"],
                "summary": "List classes open for enrollment",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/class/popular": {
            "get": {
                "tags": ["Classes"],
                "summary": "List approved classes ranked by enrollment",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/class/instructor/{email}": {
            "get": {
                "tags": ["Classes"],
                "summary": "List an instructor's classes",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/class/approve/{id}": {
            "put": {
                "tags": ["Classes"],
                "summary": "Approve a class (admin only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/class/deny/{id}": {
            "put": {
                "tags": ["Classes"],
                "summary": "Deny a class (admin only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/class/feedback/{id}": {
            "get": {
                "tags": ["Classes"],
                "summary": "Get a class with its feedback",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "patch": {
                "tags": ["Classes"],
                "summary": "Attach feedback to a class (admin only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FeedbackRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/class/seats/{id}": {
            "put": {
                "tags": ["Classes"],
                "summary": "Reserve one seat on a class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "409": {"description": "No seats remaining", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/myClasses": {
            "post": {
                "tags": ["Selections"],
                "summary": "Select a class for later payment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SelectClassRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/myClasses/student/{email}": {
            "get": {
                "tags": ["Selections"],
                "summary": "List a student's pending selections",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/myClasses/one/{id}": {
            "get": {
                "tags": ["Selections"],
                "summary": "Fetch the selection referencing a class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/myClasses/{id}": {
            "delete": {
                "tags": ["Selections"],
                "summary": "Remove a pending selection",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/create-payment-intent": {
            "post": {
                "tags": ["Payments"],
                "summary": "Create a payment intent for a charge amount",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateIntentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/IntentResponse"}},
                    "400": {"description": "Invalid amount", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "502": {"description": "Gateway failure", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/payment": {
            "post": {
                "tags": ["Payments"],
                "summary": "Record a confirmed payment and clear the selection",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PaymentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/checkout": {
            "post": {
                "tags": ["Payments"],
                "summary": "Reserve a seat and record the payment atomically",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PaymentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "409": {"description": "No seats remaining", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/enroll/{email}": {
            "get": {
                "tags": ["Payments"],
                "summary": "List the classes a student has paid for",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/payment-history/{email}": {
            "get": {
                "tags": ["Payments"],
                "summary": "List a student's payments, newest first",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/payment-history/{email}/export": {
            "get": {
                "tags": ["Payments"],
                "summary": "Download a student's payment history as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File"}
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
        "TokenRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"}
            },
            "required": ["email"]
        },
        "TokenResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"}
            }
        },
        "RegisterUserRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "photo_url": {"type": "string"},
                "role": {"type": "string"}
            },
            "required": ["email", "name"]
        },
        "RoleResult": {
            "type": "object",
            "properties": {
                "userRole": {"type": "string"}
            }
        },
        "CreateClassRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "image_url": {"type": "string"},
                "price": {"type": "number"},
                "seats": {"type": "integer"}
            },
            "required": ["name", "price", "seats"]
        },
        "FeedbackRequest": {
            "type": "object",
            "properties": {
                "feedback": {"type": "string"}
            },
            "required": ["feedback"]
        },
        "SelectClassRequest": {
            "type": "object",
            "properties": {
                "class_id": {"type": "string"}
            },
            "required": ["class_id"]
        },
        "CreateIntentRequest": {
            "type": "object",
            "properties": {
                "price": {"type": "number"}
            },
            "required": ["price"]
        },
        "IntentResponse": {
            "type": "object",
            "properties": {
                "clientSecret": {"type": "string"}
            }
        },
        "PaymentRequest": {
            "type": "object",
            "properties": {
                "class_id": {"type": "string"},
                "amount": {"type": "number"},
                "transaction_id": {"type": "string"}
            },
            "required": ["class_id", "amount", "transaction_id"]
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "boolean"},
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
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
