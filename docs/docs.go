// Package docs registers the OpenAPI document served by the swagger UI.
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
        "/api/summarize": {
            "post": {
                "description": "YouTube 動画のURLを受け取り、メタデータを取得して要約を生成します",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["summarize"],
                "summary": "動画要約",
                "parameters": [
                    {
                        "description": "要約リクエスト",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/summarize.Request"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/summarize.Response"
                        }
                    },
                    "400": {
                        "description": "Bad request - invalid URL or no content",
                        "schema": {
                            "$ref": "#/definitions/summarize.ErrorResponse"
                        }
                    },
                    "429": {
                        "description": "Too many requests - rate limit exceeded",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "Upstream or generation failure",
                        "schema": {
                            "$ref": "#/definitions/summarize.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "ヘルスチェック",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["ops"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {
                        "description": "ready"
                    },
                    "503": {
                        "description": "summarizer unavailable"
                    }
                }
            }
        },
        "/live": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["ops"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "alive"
                    }
                }
            }
        }
    },
    "definitions": {
        "summarize.Request": {
            "type": "object",
            "properties": {
                "videoUrl": {
                    "type": "string",
                    "example": "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
                },
                "locale": {
                    "type": "string",
                    "example": "ko"
                }
            }
        },
        "summarize.Response": {
            "type": "object",
            "properties": {
                "summary": {
                    "type": "string",
                    "example": "이 영상은 ..."
                }
            }
        },
        "summarize.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string",
                    "example": "유효한 유튜브 영상 주소를 찾을 수 없습니다."
                },
                "receivedUrl": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "vidbrief API",
	Description:      "YouTube video summarization service",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
