// Package docs holds the Swagger 2.0 document for the HTTP API, registered
// with swag so it can be served at /swagger/doc.json.
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
    "definitions": {
        "api.CreateTaskRequest": {
            "properties": {
                "description": {
                    "maxLength": 1000,
                    "type": "string"
                },
                "isFinished": {
                    "type": "boolean"
                },
                "ownerUserId": {
                    "type": "integer"
                },
                "title": {
                    "maxLength": 100,
                    "type": "string"
                }
            },
            "required": [
                "title"
            ],
            "type": "object"
        },
        "api.CreateUserRequest": {
            "properties": {
                "name": {
                    "maxLength": 50,
                    "minLength": 3,
                    "type": "string"
                },
                "password": {
                    "maxLength": 72,
                    "minLength": 8,
                    "type": "string"
                },
                "position": {
                    "maxLength": 100,
                    "type": "string"
                },
                "role": {
                    "enum": [
                        "Admin",
                        "User"
                    ],
                    "type": "string"
                },
                "username": {
                    "maxLength": 50,
                    "minLength": 3,
                    "type": "string"
                }
            },
            "required": [
                "name",
                "password",
                "position",
                "username"
            ],
            "type": "object"
        },
        "api.TaskResponse": {
            "properties": {
                "createdAt": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "isFinished": {
                    "type": "boolean"
                },
                "ownerUserId": {
                    "type": "integer"
                },
                "title": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "api.TokenResponse": {
            "properties": {
                "access_token": {
                    "description": "AccessToken is the HS256 JWT to send as \"Authorization: Bearer <token>\"",
                    "type": "string"
                },
                "expires_at": {
                    "description": "ExpiresAt is the RFC 3339 timestamp when the token expires",
                    "type": "string"
                },
                "token_type": {
                    "description": "TokenType is always \"Bearer\"",
                    "type": "string"
                }
            },
            "type": "object"
        },
        "api.UpdateTaskRequest": {
            "properties": {
                "description": {
                    "maxLength": 1000,
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "isFinished": {
                    "type": "boolean"
                },
                "ownerUserId": {
                    "type": "integer"
                },
                "title": {
                    "maxLength": 100,
                    "type": "string"
                }
            },
            "required": [
                "title"
            ],
            "type": "object"
        },
        "api.UpdateUserRequest": {
            "properties": {
                "id": {
                    "type": "integer"
                },
                "name": {
                    "maxLength": 50,
                    "minLength": 3,
                    "type": "string"
                },
                "password": {
                    "maxLength": 72,
                    "minLength": 8,
                    "type": "string"
                },
                "position": {
                    "maxLength": 100,
                    "type": "string"
                },
                "role": {
                    "enum": [
                        "Admin",
                        "User"
                    ],
                    "type": "string"
                },
                "username": {
                    "maxLength": 50,
                    "minLength": 3,
                    "type": "string"
                }
            },
            "required": [
                "name",
                "position",
                "username"
            ],
            "type": "object"
        },
        "api.UserResponse": {
            "properties": {
                "createdAt": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "position": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                },
                "username": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "domain.FieldError": {
            "properties": {
                "field": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "shared.Problem": {
            "properties": {
                "errors": {
                    "items": {
                        "$ref": "#/definitions/domain.FieldError"
                    },
                    "type": "array"
                },
                "kind": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                },
                "trace_id": {
                    "type": "string"
                }
            },
            "type": "object"
        }
    },
    "paths": {
        "/api/Tasks": {
            "get": {
                "description": "Returns all tasks ordered by id, optionally only those of one owner.",
                "parameters": [
                    {
                        "description": "Owner user ID",
                        "in": "query",
                        "name": "ownerUserId",
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "items": {
                                "$ref": "#/definitions/api.TaskResponse"
                            },
                            "type": "array"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    }
                },
                "security": [
                    {
                        "BasicAuth": []
                    }
                ],
                "summary": "List tasks",
                "tags": [
                    "tasks"
                ]
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "New tasks always start unfinished.",
                "parameters": [
                    {
                        "description": "Task",
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.CreateTaskRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    }
                },
                "security": [
                    {
                        "BasicAuth": []
                    }
                ],
                "summary": "Create a task",
                "tags": [
                    "tasks"
                ]
            },
            "put": {
                "consumes": [
                    "application/json"
                ],
                "description": "The task is identified by the id in the body.",
                "parameters": [
                    {
                        "description": "Task",
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.UpdateTaskRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    }
                },
                "security": [
                    {
                        "BasicAuth": []
                    }
                ],
                "summary": "Update a task",
                "tags": [
                    "tasks"
                ]
            }
        },
        "/api/Tasks/finish/{id}": {
            "put": {
                "description": "Finishing an already finished task succeeds.",
                "parameters": [
                    {
                        "description": "Task ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    }
                },
                "security": [
                    {
                        "BasicAuth": []
                    }
                ],
                "summary": "Mark a task as finished",
                "tags": [
                    "tasks"
                ]
            }
        },
        "/api/Tasks/{id}": {
            "delete": {
                "parameters": [
                    {
                        "description": "Task ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    }
                },
                "security": [
                    {
                        "BasicAuth": []
                    }
                ],
                "summary": "Delete a task",
                "tags": [
                    "tasks"
                ]
            },
            "get": {
                "parameters": [
                    {
                        "description": "Task ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.TaskResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    }
                },
                "security": [
                    {
                        "BasicAuth": []
                    }
                ],
                "summary": "Get a task by ID",
                "tags": [
                    "tasks"
                ]
            }
        },
        "/api/Users": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "items": {
                                "$ref": "#/definitions/api.UserResponse"
                            },
                            "type": "array"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    }
                },
                "security": [
                    {
                        "BasicAuth": []
                    }
                ],
                "summary": "List users",
                "tags": [
                    "users"
                ]
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "User",
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.CreateUserRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/api.UserResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    }
                },
                "security": [
                    {
                        "BasicAuth": []
                    }
                ],
                "summary": "Create a user",
                "tags": [
                    "users"
                ]
            },
            "put": {
                "consumes": [
                    "application/json"
                ],
                "description": "The user is identified by the id in the body. An empty password keeps the current one.",
                "parameters": [
                    {
                        "description": "User",
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.UpdateUserRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    }
                },
                "security": [
                    {
                        "BasicAuth": []
                    }
                ],
                "summary": "Update a user",
                "tags": [
                    "users"
                ]
            }
        },
        "/api/Users/me": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.UserResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    }
                },
                "security": [
                    {
                        "BasicAuth": []
                    }
                ],
                "summary": "Get the authenticated user",
                "tags": [
                    "users"
                ]
            }
        },
        "/api/Users/{id}": {
            "delete": {
                "description": "Users that still own tasks cannot be deleted.",
                "parameters": [
                    {
                        "description": "User ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    }
                },
                "security": [
                    {
                        "BasicAuth": []
                    }
                ],
                "summary": "Delete a user",
                "tags": [
                    "users"
                ]
            },
            "get": {
                "parameters": [
                    {
                        "description": "User ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.UserResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    }
                },
                "security": [
                    {
                        "BasicAuth": []
                    }
                ],
                "summary": "Get a user by ID",
                "tags": [
                    "users"
                ]
            }
        },
        "/api/Users/{id}/tasks": {
            "get": {
                "parameters": [
                    {
                        "description": "User ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "items": {
                                "$ref": "#/definitions/api.TaskResponse"
                            },
                            "type": "array"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    }
                },
                "security": [
                    {
                        "BasicAuth": []
                    }
                ],
                "summary": "List the tasks owned by a user",
                "tags": [
                    "users"
                ]
            }
        },
        "/api/auth/token": {
            "post": {
                "description": "Exchanges Basic credentials for a short-lived bearer token.",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.TokenResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/shared.Problem"
                        }
                    }
                },
                "security": [
                    {
                        "BasicAuth": []
                    }
                ],
                "summary": "Issue an access token",
                "tags": [
                    "auth"
                ]
            }
        },
        "/health": {
            "get": {
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "string"
                        }
                    }
                },
                "summary": "Health check",
                "tags": [
                    "ops"
                ]
            }
        }
    },
    "securityDefinitions": {
        "BasicAuth": {
            "type": "basic"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Todolist API",
	Description:      "Task and user management with HTTP Basic or bearer authentication.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
