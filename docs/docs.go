// Package docs holds the OpenAPI document served at /swagger. Regenerate with `swag init`.
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
    "paths": {
        "/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Categories"],
                "summary": "List categories",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/courses": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Courses"],
                "summary": "List courses",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "string", "name": "categoryId", "in": "query"},
                    {"type": "string", "name": "level", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/courses/{id}/enroll": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["Enrollment"],
                "summary": "Enroll the current user in a course",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Already enrolled"},
                    "201": {"description": "Enrolled"},
                    "404": {"description": "Course not found"}
                }
            }
        },
        "/quizzes/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Quizzes"],
                "summary": "Get a quiz",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "name": "review", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/quizzes/{id}/submit": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Quizzes"],
                "summary": "Submit an attempt",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Search"],
                "summary": "Search courses, lessons and quizzes",
                "parameters": [
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "string", "name": "type", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Unknown type"}}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "LMS Backend API",
	Description:      "Course catalogue, enrollment and quiz grading service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
