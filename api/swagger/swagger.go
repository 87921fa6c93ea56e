package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Coaching Conflict API",
        "description": "Schedule conflict checks for coaching batches, carts and enrollments.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Conflicts", "description": "Batch, cart and ad-hoc conflict checks"},
        {"name": "Cart", "description": "Student cart with conflict-guarded additions"},
        {"name": "Operations", "description": "Health, readiness and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Operations"],
                "summary": "Liveness check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ready": {
            "get": {
                "tags": ["Operations"],
                "summary": "Readiness check for postgres and redis",
                "responses": {
                    "200": {"description": "All dependencies reachable"},
                    "503": {"description": "At least one dependency failed"}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["Operations"],
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {"200": {"description": "Metrics exposition"}}
            }
        },
        "/api/v1/students/{studentId}/batches/{batchId}/conflicts": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "Check a batch against the student's cart and enrollments",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"},
                    {"name": "batchId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Check result", "schema": {"$ref": "#/definitions/CheckResultEnvelope"}},
                    "404": {"description": "Batch not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/{studentId}/cart/validation": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "Validate every item in the student's cart",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Cart validation", "schema": {"$ref": "#/definitions/CartValidationEnvelope"}}
                }
            }
        },
        "/api/v1/students/{studentId}/cart/validation/export": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "Download the cart conflict report",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Report file", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Exports disabled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/{studentId}/cart": {
            "get": {
                "tags": ["Cart"],
                "summary": "List the cart with its validation",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "Cart view", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Cart"],
                "summary": "Add an offering to the cart",
                "description": "Coaching batches that clash are rejected with 409 and the check result in data.",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddCartItemRequest"}}
                ],
                "responses": {
                    "201": {"description": "Item added", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Schedule conflict", "schema": {"$ref": "#/definitions/CheckResultEnvelope"}},
                    "422": {"description": "Cart is full", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/{studentId}/cart/{itemId}": {
            "get": {
                "tags": ["Cart"],
                "summary": "Get a cart item",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"},
                    {"name": "itemId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Cart item", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Cart"],
                "summary": "Remove a cart item",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"},
                    {"name": "itemId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Removed"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/conflicts/evaluate": {
            "post": {
                "tags": ["Conflicts"],
                "summary": "Evaluate an ad-hoc slot against an explicit schedule",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EvaluateRequest"}}
                ],
                "responses": {
                    "200": {"description": "Check result", "schema": {"$ref": "#/definitions/CheckResultEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/conflicts/cart": {
            "post": {
                "tags": ["Conflicts"],
                "summary": "Validate an explicit cart against explicit passes",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CartSnapshotRequest"}}
                ],
                "responses": {
                    "200": {"description": "Cart validation", "schema": {"$ref": "#/definitions/CartValidationEnvelope"}}
                }
            }
        },
        "/api/v1/batches/{batchId}/cache": {
            "delete": {
                "tags": ["Operations"],
                "summary": "Drop the cached definition of a batch",
                "parameters": [
                    {"name": "batchId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"204": {"description": "Invalidated"}}
            }
        }
    },
    "definitions": {
        "ScheduleItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "label": {"type": "string"},
                "businessId": {"type": "string"},
                "businessName": {"type": "string"},
                "subjectId": {"type": "string"},
                "subjectName": {"type": "string"},
                "batchId": {"type": "string"},
                "scheduleDays": {"type": "array", "items": {"type": "string"}},
                "startMinutes": {"type": "integer"},
                "endMinutes": {"type": "integer"},
                "source": {"type": "string", "enum": ["cart", "enrollment"]}
            }
        },
        "TimeWindow": {
            "type": "object",
            "properties": {
                "startMinutes": {"type": "integer"},
                "endMinutes": {"type": "integer"},
                "label": {"type": "string"}
            }
        },
        "ConflictDetail": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["duplicate_batch", "same_subject_same_center", "time_overlap"]},
                "existing": {"$ref": "#/definitions/ScheduleItem"},
                "overlapDays": {"type": "array", "items": {"type": "string"}},
                "overlapMinutes": {"type": "integer"},
                "overlapWindow": {"$ref": "#/definitions/TimeWindow"},
                "message": {"type": "string"}
            }
        },
        "CheckResult": {
            "type": "object",
            "properties": {
                "hasConflict": {"type": "boolean"},
                "conflicts": {"type": "array", "items": {"$ref": "#/definitions/ConflictDetail"}},
                "infoMessages": {"type": "array", "items": {"type": "string"}}
            }
        },
        "CartValidation": {
            "type": "object",
            "properties": {
                "hasConflicts": {"type": "boolean"},
                "cartPairConflicts": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "cartItemId": {"type": "string"},
                            "otherItemId": {"type": "string"},
                            "conflict": {"$ref": "#/definitions/ConflictDetail"}
                        }
                    }
                },
                "enrollmentConflicts": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "cartItemId": {"type": "string"},
                            "conflict": {"$ref": "#/definitions/ConflictDetail"}
                        }
                    }
                },
                "conflictingItemIds": {"type": "array", "items": {"type": "string"}},
                "infoMessages": {"type": "array", "items": {"type": "string"}}
            }
        },
        "CartItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "vertical": {"type": "string", "enum": ["coaching", "gym", "library"]},
                "businessId": {"type": "string"},
                "businessName": {"type": "string"},
                "subjectId": {"type": "string"},
                "subjectName": {"type": "string"},
                "batchId": {"type": "string"},
                "batchName": {"type": "string"},
                "scheduleDays": {"type": "array", "items": {"type": "string"}},
                "timeSlot": {"type": "string", "example": "16:00-18:00"}
            }
        },
        "Pass": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "vertical": {"type": "string"},
                "businessId": {"type": "string"},
                "businessName": {"type": "string"},
                "subjectId": {"type": "string"},
                "subjectName": {"type": "string"},
                "batchId": {"type": "string"},
                "scheduleDays": {"type": "array", "items": {"type": "string"}},
                "timeSlot": {"type": "string"},
                "status": {"type": "string", "enum": ["active", "reserved", "paused", "expired", "cancelled"]}
            }
        },
        "EvaluateRequest": {
            "type": "object",
            "properties": {
                "candidate": {
                    "type": "object",
                    "required": ["businessId", "scheduleDays", "startTime", "endTime"],
                    "properties": {
                        "label": {"type": "string"},
                        "batchId": {"type": "string"},
                        "subjectId": {"type": "string"},
                        "subjectName": {"type": "string"},
                        "businessId": {"type": "string"},
                        "businessName": {"type": "string"},
                        "scheduleDays": {"type": "array", "items": {"type": "string"}},
                        "startTime": {"type": "string", "example": "16:00"},
                        "endTime": {"type": "string", "example": "18:00"}
                    }
                },
                "cart": {"type": "array", "items": {"$ref": "#/definitions/CartItem"}},
                "passes": {"type": "array", "items": {"$ref": "#/definitions/Pass"}}
            }
        },
        "CartSnapshotRequest": {
            "type": "object",
            "properties": {
                "cart": {"type": "array", "items": {"$ref": "#/definitions/CartItem"}},
                "passes": {"type": "array", "items": {"$ref": "#/definitions/Pass"}}
            }
        },
        "AddCartItemRequest": {
            "type": "object",
            "required": ["vertical"],
            "properties": {
                "vertical": {"type": "string", "enum": ["coaching", "gym", "library"]},
                "batchId": {"type": "string"},
                "businessId": {"type": "string"},
                "businessName": {"type": "string"},
                "scheduleDays": {"type": "array", "items": {"type": "string"}},
                "timeSlot": {"type": "string"}
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
        },
        "CheckResultEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/CheckResult"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        },
        "CartValidationEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/CartValidation"},
                "error": {"$ref": "#/definitions/APIError"}
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
