// Package docs регистрирует описание HTTP API в формате Swagger 2.0.
// Описание поддерживается вручную вместе с аннотациями обработчиков.
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
        "/api/orders": {
            "get": {
                "description": "Возвращает всех пользователей из последнего загруженного файла со всеми их заказами.",
                "produces": ["application/json"],
                "tags": ["Orders"],
                "summary": "Список всех заказов",
                "responses": {
                    "200": {
                        "description": "Пользователи с заказами",
                        "schema": {"$ref": "#/definitions/response.UsersResponse"}
                    },
                    "500": {
                        "description": "Внутренняя ошибка сервера",
                        "schema": {"$ref": "#/definitions/response.Response"}
                    }
                }
            }
        },
        "/api/orders/filter": {
            "get": {
                "description": "При заданном order_id ищет по заказу, иначе по промежутку дат. Без параметров возвращает все заказы.",
                "produces": ["application/json"],
                "tags": ["Orders"],
                "summary": "Фильтрация заказов",
                "parameters": [
                    {"type": "string", "description": "Идентификатор заказа", "name": "order_id", "in": "query"},
                    {"type": "string", "format": "date", "description": "Начало периода, 2006-01-02", "name": "start_date", "in": "query"},
                    {"type": "string", "format": "date", "description": "Конец периода, 2006-01-02", "name": "end_date", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "Найденные пользователи",
                        "schema": {"$ref": "#/definitions/response.UsersResponse"}
                    },
                    "400": {
                        "description": "Ошибка валидации",
                        "schema": {"$ref": "#/definitions/response.Response"}
                    },
                    "500": {
                        "description": "Внутренняя ошибка сервера",
                        "schema": {"$ref": "#/definitions/response.Response"}
                    }
                }
            }
        },
        "/api/orders/upload": {
            "post": {
                "description": "Разбирает файл фиксированной ширины и заменяет им содержимое хранилища.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Orders"],
                "summary": "Загрузка файла заказов",
                "parameters": [
                    {"type": "file", "description": "Файл заказов", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "Нормализованные пользователи",
                        "schema": {"$ref": "#/definitions/response.UsersResponse"},
                        "headers": {
                            "X-Upload-ID": {"type": "string", "description": "Идентификатор загрузки"}
                        }
                    },
                    "400": {
                        "description": "Некорректный файл",
                        "schema": {"$ref": "#/definitions/response.Response"}
                    },
                    "413": {
                        "description": "Файл слишком большой",
                        "schema": {"$ref": "#/definitions/response.Response"}
                    },
                    "429": {
                        "description": "Слишком много запросов",
                        "schema": {"$ref": "#/definitions/response.Response"}
                    },
                    "500": {
                        "description": "Внутренняя ошибка сервера",
                        "schema": {"$ref": "#/definitions/response.Response"}
                    }
                }
            }
        },
        "/health": {
            "get": {
                "description": "Возвращает статус OK, если сервис принимает запросы.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Проверка доступности",
                "responses": {
                    "200": {
                        "description": "Сервис доступен",
                        "schema": {"$ref": "#/definitions/response.Response"}
                    }
                }
            }
        }
    },
    "definitions": {
        "models.ProductResponse": {
            "type": "object",
            "properties": {
                "product_id": {"type": "integer", "example": 111},
                "value": {"type": "string", "example": "512.24"}
            }
        },
        "models.OrderResponse": {
            "type": "object",
            "properties": {
                "order_id": {"type": "integer", "example": 123},
                "total": {"type": "string", "example": "1024.48"},
                "date": {"type": "string", "format": "date", "example": "2021-12-01"},
                "products": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/models.ProductResponse"}
                }
            }
        },
        "models.UserOrdersResponse": {
            "type": "object",
            "properties": {
                "user_id": {"type": "integer", "example": 1},
                "name": {"type": "string", "example": "Zarelli"},
                "orders": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/models.OrderResponse"}
                }
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "Error"},
                "error": {"type": "string"}
            }
        },
        "response.UsersResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "OK"},
                "data": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/models.UserOrdersResponse"}
                }
            }
        }
    }
}`

// SwaggerInfo содержит метаданные API, которые можно переопределить при запуске.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Order Normalizer API",
	Description:      "Загрузка файлов заказов фиксированной ширины и выборка нормализованных заказов.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
