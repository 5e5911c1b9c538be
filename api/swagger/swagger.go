package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "PRISM API",
        "description": "Personnel tracking for company-level military units",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Authentication and user administration"},
        {"name": "Soldiers", "description": "Soldier roster management"},
        {"name": "Tasks", "description": "Training task catalogue"},
        {"name": "Attendance", "description": "Daily attendance records and statistics"},
        {"name": "Exercises", "description": "Training exercise sessions"},
        {"name": "Evaluations", "description": "Task evaluations and ratings"},
        {"name": "StructuralUnits", "description": "Structural sub-unit registry"}
    ],
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
                "tags": ["Auth"],
                "summary": "Authenticate with username and password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current user profile",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a new user (admin only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/User"}}
                }
            }
        },
        "/auth/users": {
            "get": {
                "tags": ["Auth"],
                "summary": "List superuser accounts (admin only)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/User"}}}
                }
            }
        },
        "/auth/users/{id}": {
            "get": {
                "tags": ["Auth"],
                "summary": "Get user by ID (admin only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}}
                }
            },
            "put": {
                "tags": ["Auth"],
                "summary": "Update user (admin only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}},
                    "403": {"description": "Admin accounts cannot be modified", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            },
            "delete": {
                "tags": ["Auth"],
                "summary": "Delete user (admin only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "403": {"description": "Admin accounts cannot be deleted", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/soldiers": {
            "get": {
                "tags": ["Soldiers"],
                "summary": "List soldiers",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "primaryUnit", "in": "query", "type": "string"},
                    {"name": "subUnit", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Soldier"}}}
                }
            },
            "post": {
                "tags": ["Soldiers"],
                "summary": "Create soldier",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSoldierRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Soldier"}}
                }
            }
        },
        "/soldiers/{id}": {
            "get": {
                "tags": ["Soldiers"],
                "summary": "Get soldier by ID",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Soldier"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            },
            "put": {
                "tags": ["Soldiers"],
                "summary": "Update soldier",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateSoldierRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Soldier"}}
                }
            },
            "delete": {
                "tags": ["Soldiers"],
                "summary": "Delete soldier (admin only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/tasks": {
            "get": {
                "tags": ["Tasks"],
                "summary": "List tasks",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "type", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Task"}}}
                }
            },
            "post": {
                "tags": ["Tasks"],
                "summary": "Create task",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTaskRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Task"}}
                }
            }
        },
        "/tasks/{id}": {
            "get": {
                "tags": ["Tasks"],
                "summary": "Get task by ID",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Task"}}
                }
            },
            "put": {
                "tags": ["Tasks"],
                "summary": "Update task",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTaskRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Task"}}
                }
            },
            "delete": {
                "tags": ["Tasks"],
                "summary": "Delete task (admin only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "List attendance records",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "unit", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "soldier", "in": "query", "type": "string"},
                    {"name": "date", "in": "query", "type": "string"},
                    {"name": "startDate", "in": "query", "type": "string"},
                    {"name": "endDate", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/AttendanceRecord"}}}
                }
            },
            "post": {
                "tags": ["Attendance"],
                "summary": "Create attendance record",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAttendanceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/AttendanceRecord"}},
                    "409": {"description": "Duplicate record for date and soldier", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/attendance/bulk": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Bulk upsert attendance for a day",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkAttendanceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/BulkAttendanceResult"}}
                }
            }
        },
        "/attendance/date/{date}": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Attendance records for a single day",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "date", "in": "path", "required": true, "type": "string"},
                    {"name": "unit", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/AttendanceRecord"}}}
                }
            }
        },
        "/attendance/stats": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Attendance statistics",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "unit", "in": "query", "type": "string"},
                    {"name": "startDate", "in": "query", "type": "string"},
                    {"name": "endDate", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AttendanceStats"}}
                }
            }
        },
        "/attendance/export": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Export attendance records as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "unit", "in": "query", "type": "string"},
                    {"name": "startDate", "in": "query", "type": "string"},
                    {"name": "endDate", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File attachment"}
                }
            }
        },
        "/attendance/{id}": {
            "put": {
                "tags": ["Attendance"],
                "summary": "Update attendance status or reason",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateAttendanceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AttendanceRecord"}}
                }
            },
            "delete": {
                "tags": ["Attendance"],
                "summary": "Delete attendance record",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/exercises": {
            "get": {
                "tags": ["Exercises"],
                "summary": "List exercises",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "unit", "in": "query", "type": "string"},
                    {"name": "startDate", "in": "query", "type": "string"},
                    {"name": "endDate", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Exercise"}}}
                }
            },
            "post": {
                "tags": ["Exercises"],
                "summary": "Create exercise",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateExerciseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Exercise"}}
                }
            }
        },
        "/exercises/stats": {
            "get": {
                "tags": ["Exercises"],
                "summary": "Exercise statistics",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "unit", "in": "query", "type": "string"},
                    {"name": "startDate", "in": "query", "type": "string"},
                    {"name": "endDate", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ExerciseStats"}}
                }
            }
        },
        "/exercises/{id}": {
            "get": {
                "tags": ["Exercises"],
                "summary": "Get exercise by ID",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Exercise"}}
                }
            },
            "put": {
                "tags": ["Exercises"],
                "summary": "Update exercise",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateExerciseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Exercise"}}
                }
            },
            "delete": {
                "tags": ["Exercises"],
                "summary": "Delete exercise (admin only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/evaluations": {
            "get": {
                "tags": ["Evaluations"],
                "summary": "List evaluations",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "evaluationType", "in": "query", "type": "string"},
                    {"name": "startDate", "in": "query", "type": "string"},
                    {"name": "endDate", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Evaluation"}}}
                }
            },
            "post": {
                "tags": ["Evaluations"],
                "summary": "Create evaluation",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEvaluationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Evaluation"}},
                    "409": {"description": "Evaluation already exists for the task", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/evaluations/stats": {
            "get": {
                "tags": ["Evaluations"],
                "summary": "Evaluation statistics",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "evaluationType", "in": "query", "type": "string"},
                    {"name": "startDate", "in": "query", "type": "string"},
                    {"name": "endDate", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/EvaluationStats"}}
                }
            }
        },
        "/evaluations/{id}": {
            "get": {
                "tags": ["Evaluations"],
                "summary": "Get evaluation by ID",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Evaluation"}}
                }
            },
            "put": {
                "tags": ["Evaluations"],
                "summary": "Update evaluation",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateEvaluationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Evaluation"}}
                }
            },
            "delete": {
                "tags": ["Evaluations"],
                "summary": "Delete evaluation (admin only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/structural-units": {
            "get": {
                "tags": ["StructuralUnits"],
                "summary": "List structural units",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "parentUnit", "in": "query", "type": "string"},
                    {"name": "active", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/StructuralUnit"}}}
                }
            },
            "post": {
                "tags": ["StructuralUnits"],
                "summary": "Create structural unit",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStructuralUnitRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/StructuralUnit"}}
                }
            }
        },
        "/structural-units/initialize": {
            "post": {
                "tags": ["StructuralUnits"],
                "summary": "Seed default structural units (admin only)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "409": {"description": "Default units already exist", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/structural-units/{id}": {
            "get": {
                "tags": ["StructuralUnits"],
                "summary": "Get structural unit by ID",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/StructuralUnit"}}
                }
            },
            "put": {
                "tags": ["StructuralUnits"],
                "summary": "Update structural unit",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStructuralUnitRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/StructuralUnit"}}
                }
            },
            "delete": {
                "tags": ["StructuralUnits"],
                "summary": "Delete structural unit (admin only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        }
    },
    "definitions": {
        "MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
        },
        "LoginResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "role": {"type": "string"},
                "active": {"type": "boolean"},
                "token": {"type": "string"}
            }
        },
        "User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "superuser"]},
                "active": {"type": "boolean"},
                "createdAt": {"type": "string"}
            }
        },
        "RegisterUserRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string"}
            },
            "required": ["username", "password"]
        },
        "UpdateUserRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "active": {"type": "boolean"}
            }
        },
        "Soldier": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "militaryRank": {"type": "string"},
                "joinDate": {"type": "string"},
                "primaryUnit": {"type": "string"},
                "subUnit": {"type": "string"},
                "active": {"type": "boolean"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "CreateSoldierRequest": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "militaryRank": {"type": "string"},
                "joinDate": {"type": "string"},
                "primaryUnit": {"type": "string"},
                "subUnit": {"type": "string"}
            },
            "required": ["firstName", "lastName", "militaryRank", "primaryUnit"]
        },
        "UpdateSoldierRequest": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "militaryRank": {"type": "string"},
                "joinDate": {"type": "string"},
                "primaryUnit": {"type": "string"},
                "subUnit": {"type": "string"},
                "active": {"type": "boolean"}
            }
        },
        "Task": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "code": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "type": {"type": "string", "enum": ["Individualios", "Kolektyvines"]},
                "duration": {"type": "number"},
                "createdBy": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "CreateTaskRequest": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "type": {"type": "string"},
                "duration": {"type": "number"}
            },
            "required": ["code", "name", "type", "duration"]
        },
        "UpdateTaskRequest": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "type": {"type": "string"},
                "duration": {"type": "number"}
            }
        },
        "AttendanceRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "date": {"type": "string"},
                "soldier": {"type": "string"},
                "status": {"type": "string", "enum": ["Present", "Absent", "Sick", "Leave", "Mission", "Other"]},
                "reason": {"type": "string"},
                "unit": {"type": "string"},
                "createdBy": {"type": "string"},
                "soldierFirstName": {"type": "string"},
                "soldierLastName": {"type": "string"},
                "soldierRank": {"type": "string"}
            }
        },
        "CreateAttendanceRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "soldier": {"type": "string"},
                "status": {"type": "string"},
                "reason": {"type": "string"},
                "unit": {"type": "string"}
            },
            "required": ["date", "soldier", "status", "unit"]
        },
        "UpdateAttendanceRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "reason": {"type": "string"}
            }
        },
        "BulkAttendanceRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "unit": {"type": "string"},
                "records": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "soldier": {"type": "string"},
                            "status": {"type": "string"},
                            "reason": {"type": "string"}
                        }
                    }
                }
            },
            "required": ["date", "unit", "records"]
        },
        "BulkAttendanceResult": {
            "type": "object",
            "properties": {
                "created": {"type": "integer"},
                "updated": {"type": "integer"},
                "errors": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "soldier": {"type": "string"},
                            "message": {"type": "string"}
                        }
                    }
                }
            }
        },
        "AttendanceStats": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "statusCounts": {"type": "object"},
                "statusPercentages": {"type": "object"},
                "timeSeries": {"type": "array", "items": {"type": "object"}}
            }
        },
        "Exercise": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "task": {"type": "string"},
                "date": {"type": "string"},
                "duration": {"type": "number"},
                "stage": {"type": "string", "enum": ["IS", "IT", "II", "-"]},
                "instructor": {"type": "string"},
                "unit": {"type": "string"},
                "participants": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "soldier": {"type": "string"},
                            "attended": {"type": "boolean"}
                        }
                    }
                }
            }
        },
        "CreateExerciseRequest": {
            "type": "object",
            "properties": {
                "task": {"type": "string"},
                "date": {"type": "string"},
                "duration": {"type": "number"},
                "stage": {"type": "string"},
                "instructor": {"type": "string"},
                "unit": {"type": "string"},
                "participants": {"type": "array", "items": {"type": "object"}}
            },
            "required": ["task", "date", "duration", "unit"]
        },
        "UpdateExerciseRequest": {
            "type": "object",
            "properties": {
                "task": {"type": "string"},
                "date": {"type": "string"},
                "duration": {"type": "number"},
                "stage": {"type": "string"},
                "instructor": {"type": "string"},
                "unit": {"type": "string"},
                "participants": {"type": "array", "items": {"type": "object"}}
            }
        },
        "ExerciseStats": {
            "type": "object",
            "properties": {
                "totalExercises": {"type": "integer"},
                "stageCounts": {"type": "object"},
                "taskStats": {"type": "array", "items": {"type": "object"}},
                "attendanceRate": {"type": "number"}
            }
        },
        "Evaluation": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "task": {"type": "string"},
                "taskCode": {"type": "string"},
                "taskName": {"type": "string"},
                "evaluationType": {"type": "string", "enum": ["Oficialus", "Neoficialus"]},
                "date": {"type": "string"},
                "recordedBy": {"type": "string"},
                "completionPercentage": {"type": "number"},
                "totalPassed": {"type": "integer"},
                "dailyPassed": {"type": "integer"},
                "ratings": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "soldier": {"type": "string"},
                            "rating": {"type": "string", "enum": ["I", "IA", "NI", "-"]}
                        }
                    }
                },
                "history": {"type": "array", "items": {"type": "object"}}
            }
        },
        "CreateEvaluationRequest": {
            "type": "object",
            "properties": {
                "task": {"type": "string"},
                "evaluationType": {"type": "string"},
                "date": {"type": "string"},
                "ratings": {"type": "array", "items": {"type": "object"}}
            },
            "required": ["task", "evaluationType", "date"]
        },
        "UpdateEvaluationRequest": {
            "type": "object",
            "properties": {
                "evaluationType": {"type": "string"},
                "date": {"type": "string"},
                "ratings": {"type": "array", "items": {"type": "object"}}
            }
        },
        "EvaluationStats": {
            "type": "object",
            "properties": {
                "totalEvaluations": {"type": "integer"},
                "officialCount": {"type": "integer"},
                "unofficialCount": {"type": "integer"},
                "ratingDistribution": {"type": "object"},
                "taskPerformance": {"type": "array", "items": {"type": "object"}},
                "passingRate": {"type": "number"}
            }
        },
        "StructuralUnit": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "parentUnit": {"type": "string"},
                "active": {"type": "boolean"},
                "createdAt": {"type": "string"}
            }
        },
        "CreateStructuralUnitRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "parentUnit": {"type": "string"}
            },
            "required": ["name", "parentUnit"]
        },
        "UpdateStructuralUnitRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "active": {"type": "boolean"}
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
