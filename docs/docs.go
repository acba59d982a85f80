// Package docs 由 swag 生成的接口文档
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["系统监控"],
                "summary": "健康检查接口",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.Response"}}}
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["认证管理"],
                "summary": "操作员登录",
                "parameters": [
                    {"description": "登录信息", "name": "loginRequest", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.Response"}}
                }
            }
        },
        "/simulation/start": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["仿真管理"],
                "summary": "启动仿真",
                "parameters": [
                    {"description": "仿真参数", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/service.StartRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/utils.Response"}}
                }
            }
        },
        "/simulation/stop": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["仿真管理"],
                "summary": "停止仿真",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.Response"}}}
            }
        },
        "/simulation/info": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["仿真管理"],
                "summary": "获取仿真状态",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.Response"}}}
            }
        },
        "/simulation/runs": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["仿真管理"],
                "summary": "获取仿真记录列表",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "当前页", "name": "current", "in": "query"},
                    {"type": "integer", "default": 10, "description": "每页大小", "name": "size", "in": "query"},
                    {"type": "string", "description": "结束状态", "name": "status", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.Response"}}}
            }
        },
        "/network/topology/info": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["网络管理"],
                "summary": "获取仿真拓扑概况",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.Response"}}}
            }
        },
        "/alarms": {
            "get": {
                "produces": ["application/json"],
                "tags": ["告警管理"],
                "summary": "获取告警列表",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "当前页", "name": "current", "in": "query"},
                    {"type": "integer", "default": 10, "description": "每页大小", "name": "size", "in": "query"},
                    {"type": "string", "description": "告警状态(pending/resolved)", "name": "status", "in": "query"},
                    {"type": "string", "description": "仿真标识", "name": "run_key", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.Response"}}}
            }
        }
    },
    "definitions": {
        "handlers.LoginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "service.StartRequest": {
            "type": "object",
            "properties": {
                "topology": {"type": "string", "example": "database"},
                "ring_size": {"type": "integer"},
                "seed": {"type": "integer"},
                "tasks": {"type": "array", "items": {"type": "integer"}},
                "max_slots": {"type": "integer"},
                "workers": {"type": "integer"},
                "slot_interval_ms": {"type": "integer"}
            }
        },
        "utils.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "description": "请在此输入 'Bearer {token}' 格式的 JWT token",
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "UAV 多跳任务卸载仿真 API",
	Description:      "UAV 网络多跳任务卸载仿真后端API文档",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
