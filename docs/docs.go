// Package docs HealPrint gateway OpenAPI document, served at /swagger.
//
// 게이트웨이 경로 기준으로 직접 관리하는 문서이며 swag init 으로 생성하지 않는다.
// handler 패키지의 @Router 주석은 각 서비스 내부 경로를 기준으로 한다.
// 라우트를 추가하거나 바꾸면 이 파일의 경로에 게이트웨이 prefix(/users, /chat, /diagnostic)를 붙여 함께 수정한다.
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
        "/": {
            "get": {
                "tags": [
                    "Gateway"
                ],
                "summary": "게이트웨이 정보",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/gateway.RootResponse"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "tags": [
                    "Gateway"
                ],
                "summary": "전체 서비스 헬스 체크",
                "produces": [
                    "application/json"
                ],
                "description": "각 서비스의 /health 를 동시에 조회합니다 (healthy, unhealthy, unreachable).",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/gateway.HealthResponse"
                        }
                    }
                }
            }
        },
        "/register": {
            "post": {
                "tags": [
                    "User"
                ],
                "summary": "회원가입 (Register)",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "description": "회원가입 요청 정보",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.RegisterRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.AuthResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/login": {
            "post": {
                "tags": [
                    "User"
                ],
                "summary": "로그인 (Login)",
                "produces": [
                    "application/json"
                ],
                "description": "성공 시 httpOnly 세션 쿠키(access_token)와 토큰을 함께 반환합니다.",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "description": "로그인 요청 정보",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.AuthResponse"
                        }
                    },
                    "401": {
                        "description": "인증 실패 (자격 증명 오류)",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": [
                    "Auth"
                ],
                "summary": "현재 세션 사용자 (Me)",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.UserProfile"
                        }
                    },
                    "401": {
                        "description": "인증 토큰 누락 또는 만료",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "CookieAuth": []
                    },
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/auth/logout": {
            "post": {
                "tags": [
                    "Auth"
                ],
                "summary": "로그아웃 (Logout)",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.SuccessResponse"
                        }
                    }
                }
            }
        },
        "/auth/google/url": {
            "get": {
                "tags": [
                    "Auth"
                ],
                "summary": "Google 동의 화면 URL",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "query",
                        "name": "redirect_uri",
                        "type": "string",
                        "description": "허용된 redirect URI"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.GoogleURLResponse"
                        }
                    },
                    "400": {
                        "description": "허용되지 않은 redirect URI",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Google 로그인 미설정",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/auth/google/callback": {
            "post": {
                "tags": [
                    "Auth"
                ],
                "summary": "Google OAuth 콜백",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "description": "code, redirect_uri, state",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.GoogleCallbackRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.AuthResponse"
                        }
                    },
                    "400": {
                        "description": "잘못된 요청 또는 state 불일치",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Google 인증 실패",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Google 로그인 미설정",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/auth/google/token": {
            "post": {
                "tags": [
                    "Auth"
                ],
                "summary": "Google ID 토큰 로그인 (One Tap)",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "description": "Google ID 토큰",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.GoogleTokenRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.AuthResponse"
                        }
                    },
                    "400": {
                        "description": "토큰 누락",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "유효하지 않은 토큰 또는 미인증 이메일",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Google 로그인 미설정",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/users/profile/{user_id}": {
            "get": {
                "tags": [
                    "User"
                ],
                "summary": "프로필 조회 (Profile)",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "user_id",
                        "description": "사용자 ID",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.UserProfile"
                        }
                    },
                    "404": {
                        "description": "사용자 없음",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/chat/chat": {
            "post": {
                "tags": [
                    "Chat"
                ],
                "summary": "채팅 메시지 전송",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "description": "메시지, user_id, conversation_id(선택)",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/chat.ChatRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/chat.ChatResponse"
                        }
                    },
                    "400": {
                        "description": "빈 메시지 또는 user_id 누락",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "대화 없음",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "대화 길이 초과",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/chat/conversations": {
            "post": {
                "tags": [
                    "Chat"
                ],
                "summary": "새 대화 생성",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "description": "user_id, title(선택)",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.CreateConversationRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.CreateConversationResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/chat/conversation/{conversation_id}": {
            "get": {
                "tags": [
                    "Chat"
                ],
                "summary": "대화 전체 기록 조회",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "conversation_id",
                        "description": "대화 ID",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Conversation"
                        }
                    },
                    "404": {
                        "description": "대화 없음",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/chat/conversation/{conversation_id}/summary": {
            "get": {
                "tags": [
                    "Chat"
                ],
                "summary": "대화 요약",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "conversation_id",
                        "description": "대화 ID",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/chat.Summary"
                        }
                    },
                    "404": {
                        "description": "대화 없음",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/chat/conversations/{user_id}": {
            "get": {
                "tags": [
                    "Chat"
                ],
                "summary": "사용자 대화 목록",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "user_id",
                        "description": "사용자 ID",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.ConversationListResponse"
                        }
                    }
                }
            }
        },
        "/chat/analyze/{conversation_id}": {
            "post": {
                "tags": [
                    "Chat"
                ],
                "summary": "대화 기반 건강 분석",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "conversation_id",
                        "description": "대화 ID",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/agent.Analysis"
                        }
                    },
                    "404": {
                        "description": "대화 없음",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "수집된 증상 없음",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "LLM 제공자 오류",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "LLM 미설정",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/chat/chat/voice": {
            "post": {
                "tags": [
                    "Voice"
                ],
                "summary": "음성 채팅",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "multipart/form-data"
                ],
                "parameters": [
                    {
                        "in": "formData",
                        "name": "audio",
                        "type": "file",
                        "required": true,
                        "description": "WAV 음성 파일"
                    },
                    {
                        "in": "formData",
                        "name": "user_id",
                        "type": "string",
                        "required": true,
                        "description": "사용자 ID"
                    },
                    {
                        "in": "formData",
                        "name": "conversation_id",
                        "type": "string",
                        "description": "대화 ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.VoiceChatResponse"
                        }
                    },
                    "400": {
                        "description": "음성 파일 누락",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "413": {
                        "description": "파일 크기 초과",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "음성 인식 실패",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "음성 기능 비활성화",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/chat/conversation/{conversation_id}/audio": {
            "get": {
                "tags": [
                    "Voice"
                ],
                "summary": "대화 오디오 목록",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "conversation_id",
                        "description": "대화 ID",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.AudioListResponse"
                        }
                    }
                }
            }
        },
        "/chat/conversation/{conversation_id}/audio/{filename}": {
            "get": {
                "tags": [
                    "Voice"
                ],
                "summary": "녹음된 오디오 파일 스트리밍",
                "produces": [
                    "audio/wav"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "conversation_id",
                        "description": "대화 ID",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "in": "path",
                        "name": "filename",
                        "description": "오디오 파일명",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "404": {
                        "description": "파일을 찾을 수 없음",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/chat/ws/chat": {
            "get": {
                "tags": [
                    "WebSocket (Chat)"
                ],
                "summary": "채팅 WebSocket 연결",
                "description": "텍스트 프레임 하나가 사용자 메시지 하나입니다. 응답은 chat.ChatResponse JSON 프레임입니다.",
                "parameters": [
                    {
                        "in": "query",
                        "name": "user_id",
                        "type": "string",
                        "required": true,
                        "description": "사용자 ID"
                    },
                    {
                        "in": "query",
                        "name": "conversation_id",
                        "type": "string",
                        "description": "이어갈 대화 ID"
                    }
                ],
                "responses": {
                    "101": {
                        "description": "101 Switching Protocols",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "400": {
                        "description": "user_id 누락",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/diagnostic/analyze": {
            "post": {
                "tags": [
                    "Diagnostic"
                ],
                "summary": "증상 기반 진단",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "description": "증상 보고",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.SymptomReport"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.DiagnosticResult"
                        }
                    },
                    "400": {
                        "description": "user_id 누락",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/diagnostic/patterns": {
            "get": {
                "tags": [
                    "Diagnostic"
                ],
                "summary": "진단 패턴 목록",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.PatternsResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string",
                    "example": "에러 원인 및 설명"
                }
            }
        },
        "handler.SuccessResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string",
                    "example": "Logged out successfully"
                }
            }
        },
        "handler.RegisterRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "age": {
                    "type": "integer"
                },
                "country": {
                    "type": "string"
                }
            }
        },
        "handler.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            }
        },
        "handler.AudioClip": {
            "type": "object",
            "properties": {
                "created_at": {
                    "type": "string"
                },
                "file_name": {
                    "type": "string",
                    "example": "c2s_1730000000000_1.wav"
                },
                "role": {
                    "type": "string",
                    "example": "user"
                },
                "url": {
                    "type": "string"
                }
            }
        },
        "handler.AudioListResponse": {
            "type": "object",
            "properties": {
                "clips": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handler.AudioClip"
                    }
                },
                "conversation_id": {
                    "type": "string"
                }
            }
        },
        "handler.AuthResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "age": {
                    "type": "integer"
                },
                "country": {
                    "type": "string"
                },
                "picture": {
                    "type": "string"
                },
                "auth_provider": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "access_token": {
                    "type": "string"
                },
                "token_type": {
                    "type": "string",
                    "example": "bearer"
                }
            }
        },
        "handler.GoogleURLResponse": {
            "type": "object",
            "properties": {
                "url": {
                    "type": "string"
                },
                "state": {
                    "type": "string"
                }
            }
        },
        "handler.GoogleCallbackRequest": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "redirect_uri": {
                    "type": "string"
                },
                "state": {
                    "type": "string"
                }
            }
        },
        "handler.GoogleTokenRequest": {
            "type": "object",
            "properties": {
                "token": {
                    "type": "string"
                }
            }
        },
        "handler.CreateConversationRequest": {
            "type": "object",
            "properties": {
                "user_id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                }
            }
        },
        "handler.CreateConversationResponse": {
            "type": "object",
            "properties": {
                "conversation_id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                }
            }
        },
        "handler.ConversationListResponse": {
            "type": "object",
            "properties": {
                "user_id": {
                    "type": "string"
                },
                "conversations": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.ConversationSummary"
                    }
                }
            }
        },
        "handler.VoiceChatResponse": {
            "type": "object",
            "properties": {
                "response": {
                    "type": "string"
                },
                "conversation_id": {
                    "type": "string"
                },
                "message_id": {
                    "type": "string"
                },
                "assessment_stage": {
                    "type": "string"
                },
                "symptoms_collected": {
                    "type": "object",
                    "additionalProperties": {
                        "$ref": "#/definitions/models.SymptomMention"
                    }
                },
                "needs_diagnosis": {
                    "type": "boolean"
                },
                "fallback_mode": {
                    "type": "boolean"
                },
                "error": {
                    "type": "string"
                },
                "transcript": {
                    "type": "string"
                },
                "audio_url": {
                    "type": "string"
                }
            }
        },
        "handler.PatternsResponse": {
            "type": "object",
            "properties": {
                "patterns": {
                    "type": "object",
                    "additionalProperties": {
                        "$ref": "#/definitions/diagnostic.Pattern"
                    }
                }
            }
        },
        "diagnostic.Pattern": {
            "type": "object",
            "properties": {
                "triggers": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "recommendations": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "models.UserProfile": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "age": {
                    "type": "integer"
                },
                "country": {
                    "type": "string"
                },
                "picture": {
                    "type": "string"
                },
                "auth_provider": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                }
            }
        },
        "models.SymptomMention": {
            "type": "object",
            "properties": {
                "category": {
                    "type": "string"
                },
                "mentioned": {
                    "type": "boolean"
                }
            }
        },
        "models.Message": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "seq": {
                    "type": "integer"
                },
                "role": {
                    "type": "string"
                },
                "content": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                }
            }
        },
        "models.Conversation": {
            "type": "object",
            "properties": {
                "conversation_id": {
                    "type": "string"
                },
                "user_id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "messages": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Message"
                    }
                },
                "assessment_stage": {
                    "type": "string"
                },
                "symptoms_collected": {
                    "type": "object",
                    "additionalProperties": {
                        "$ref": "#/definitions/models.SymptomMention"
                    }
                },
                "needs_diagnosis": {
                    "type": "boolean"
                },
                "last_message": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "models.ConversationSummary": {
            "type": "object",
            "properties": {
                "conversation_id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "last_message": {
                    "type": "string"
                },
                "message_count": {
                    "type": "integer"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "models.SymptomReport": {
            "type": "object",
            "properties": {
                "user_id": {
                    "type": "string"
                },
                "skin_symptoms": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "hair_symptoms": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "lifestyle_factors": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "models.DiagnosticResult": {
            "type": "object",
            "properties": {
                "analysis_id": {
                    "type": "string"
                },
                "user_id": {
                    "type": "string"
                },
                "primary_concerns": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "likely_causes": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "recommendations": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "confidence_score": {
                    "type": "number"
                },
                "next_steps": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "referral_suggested": {
                    "type": "boolean"
                }
            }
        },
        "chat.ChatRequest": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "user_id": {
                    "type": "string"
                },
                "conversation_id": {
                    "type": "string"
                }
            }
        },
        "chat.ChatResponse": {
            "type": "object",
            "properties": {
                "response": {
                    "type": "string"
                },
                "conversation_id": {
                    "type": "string"
                },
                "message_id": {
                    "type": "string"
                },
                "assessment_stage": {
                    "type": "string"
                },
                "symptoms_collected": {
                    "type": "object",
                    "additionalProperties": {
                        "$ref": "#/definitions/models.SymptomMention"
                    }
                },
                "needs_diagnosis": {
                    "type": "boolean"
                },
                "fallback_mode": {
                    "type": "boolean"
                },
                "error": {
                    "type": "string"
                }
            }
        },
        "chat.Summary": {
            "type": "object",
            "properties": {
                "conversation_id": {
                    "type": "string"
                },
                "user_id": {
                    "type": "string"
                },
                "message_count": {
                    "type": "integer"
                },
                "symptoms_collected": {
                    "type": "object",
                    "additionalProperties": {
                        "$ref": "#/definitions/models.SymptomMention"
                    }
                },
                "assessment_stage": {
                    "type": "string"
                },
                "last_message": {
                    "$ref": "#/definitions/models.Message"
                }
            }
        },
        "agent.Analysis": {
            "type": "object",
            "properties": {
                "analysis": {
                    "type": "string"
                },
                "symptoms_analyzed": {
                    "type": "object",
                    "additionalProperties": {
                        "$ref": "#/definitions/models.SymptomMention"
                    }
                },
                "health_factors": {
                    "type": "array",
                    "items": {
                        "type": "object"
                    }
                },
                "conversation_id": {
                    "type": "string"
                }
            }
        },
        "gateway.RootResponse": {
            "type": "object",
            "properties": {
                "service": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "services": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                }
            }
        },
        "gateway.HealthResponse": {
            "type": "object",
            "properties": {
                "gateway": {
                    "type": "string"
                },
                "services": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        },
        "CookieAuth": {
            "type": "apiKey",
            "name": "access_token",
            "in": "cookie"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "HealPrint API",
	Description:      "HealPrint backend: gateway, user/auth, chat and diagnostic services.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
