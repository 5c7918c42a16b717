// Package docs serves the OpenAPI description of the HTTP API. Keep it in
// step with the @Router annotations in internal/transport/rest.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@freedesk.local"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/agenda/export": {
            "get": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Загружает iCalendar с записями за период в хранилище и возвращает временную ссылку",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Агенда"
                ],
                "summary": "Выгрузка агенды",
                "parameters": [
                    {
                        "type": "string",
                        "description": "С даты YYYY-MM-DD",
                        "name": "from",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "По дату YYYY-MM-DD, по умолчанию +30 дней",
                        "name": "to",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.AgendaExport"
                        }
                    },
                    "400": {
                        "description": "Неверный период",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    },
                    "502": {
                        "description": "Хранилище недоступно",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    }
                }
            }
        },
        "/appointments": {
            "post": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Клиент запрашивает слот. Клиент определяется по токену",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Записи"
                ],
                "summary": "Запросить запись",
                "parameters": [
                    {
                        "description": "Слот",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.BookingRequestDTO"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.Appointment"
                        }
                    },
                    "400": {
                        "description": "Ошибка валидации",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    },
                    "402": {
                        "description": "Есть неоплаченные счета",
                        "schema": {
                            "$ref": "#/definitions/rest.paymentRequiredBody"
                        }
                    },
                    "403": {
                        "description": "Доступно только клиенту",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    },
                    "409": {
                        "description": "Слот недоступен",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    },
                    "429": {
                        "description": "Слишком много запросов",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    },
                    "502": {
                        "description": "Ошибка внешнего компонента",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    }
                }
            },
            "get": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Клиент видит только свои записи",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Записи"
                ],
                "summary": "Список записей",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Статус",
                        "name": "status",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "ID клиента (только для фрилансера)",
                        "name": "client_id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "С даты YYYY-MM-DD",
                        "name": "date_from",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "По дату YYYY-MM-DD",
                        "name": "date_to",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Размер страницы",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Смещение",
                        "name": "offset",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/rest.paginatedResponse"
                        }
                    },
                    "400": {
                        "description": "Неверные параметры",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    }
                }
            }
        },
        "/appointments/book": {
            "post": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Фрилансер создает подтвержденную запись для клиента",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Записи"
                ],
                "summary": "Записать клиента",
                "parameters": [
                    {
                        "description": "Клиент и слот",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.FreelancerBookingDTO"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.Appointment"
                        }
                    },
                    "400": {
                        "description": "Ошибка валидации",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    },
                    "402": {
                        "description": "Есть неоплаченные счета",
                        "schema": {
                            "$ref": "#/definitions/rest.paymentRequiredBody"
                        }
                    },
                    "409": {
                        "description": "Слот недоступен",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    }
                }
            }
        },
        "/appointments/{id}": {
            "get": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Записи"
                ],
                "summary": "Получить запись по ID",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID записи",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Appointment"
                        }
                    },
                    "403": {
                        "description": "Доступ запрещен",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    },
                    "404": {
                        "description": "Запись не найдена",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    }
                }
            }
        },
        "/appointments/{id}/cancel": {
            "post": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Повторная отмена ничего не меняет",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Записи"
                ],
                "summary": "Отменить запись",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID записи",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Appointment"
                        }
                    },
                    "403": {
                        "description": "Доступ запрещен",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    },
                    "404": {
                        "description": "Запись не найдена",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    }
                }
            }
        },
        "/appointments/{id}/confirm": {
            "post": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Повторное подтверждение ничего не меняет",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Записи"
                ],
                "summary": "Подтвердить запись",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID записи",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Appointment"
                        }
                    },
                    "404": {
                        "description": "Запись не найдена",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    },
                    "409": {
                        "description": "Запись отменена",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    }
                }
            }
        },
        "/appointments/{id}/reschedule": {
            "post": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Новая запись создается до отмены исходной. При неудаче исходная запись не меняется. Новое время не может пересекаться с исходной записью, пока она не отменена",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Записи"
                ],
                "summary": "Перенести запись",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID записи",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Новый слот",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.RescheduleDTO"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.RescheduleResult"
                        }
                    },
                    "402": {
                        "description": "Есть неоплаченные счета",
                        "schema": {
                            "$ref": "#/definitions/rest.paymentRequiredBody"
                        }
                    },
                    "409": {
                        "description": "Слот недоступен или запись отменена",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    },
                    "502": {
                        "description": "Новая запись создана, исходная не отменена",
                        "schema": {
                            "$ref": "#/definitions/rest.rescheduleIncompleteBody"
                        }
                    }
                }
            }
        },
        "/auth/login": {
            "post": {
                "description": "Авторизует пользователя и возвращает токены доступа",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Авторизация"
                ],
                "summary": "Вход в систему",
                "parameters": [
                    {
                        "description": "Данные для входа",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Токены доступа и обновления",
                        "schema": {
                            "$ref": "#/definitions/domain.Tokens"
                        }
                    },
                    "400": {
                        "description": "Ошибка валидации",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    },
                    "401": {
                        "description": "Неверные учетные данные",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    },
                    "403": {
                        "description": "Аккаунт деактивирован",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    }
                }
            }
        },
        "/auth/logout": {
            "post": {
                "description": "Завершает сессию пользователя",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Авторизация"
                ],
                "summary": "Выход из системы",
                "parameters": [
                    {
                        "description": "Токен обновления",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.RefreshTokenRequest"
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Успешный выход"
                    },
                    "400": {
                        "description": "Ошибка валидации",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    },
                    "500": {
                        "description": "Внутренняя ошибка сервера",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    }
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "description": "Обновляет токены доступа и обновления",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Авторизация"
                ],
                "summary": "Обновление токена",
                "parameters": [
                    {
                        "description": "Токен обновления",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.RefreshTokenRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Новые токены доступа и обновления",
                        "schema": {
                            "$ref": "#/definitions/domain.Tokens"
                        }
                    },
                    "400": {
                        "description": "Ошибка валидации",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    },
                    "401": {
                        "description": "Неверный токен обновления",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    }
                }
            }
        },
        "/auth/register": {
            "post": {
                "description": "Создает аккаунт клиента и его карточку",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Авторизация"
                ],
                "summary": "Регистрация клиента",
                "parameters": [
                    {
                        "description": "Данные для регистрации",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.RegisterRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "ID пользователя",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "400": {
                        "description": "Ошибка валидации",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    },
                    "409": {
                        "description": "Email уже зарегистрирован",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    },
                    "500": {
                        "description": "Внутренняя ошибка сервера",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    }
                }
            }
        },
        "/availability/rules": {
            "get": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Возвращает недельные правила доступности фрилансера",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Доступность"
                ],
                "summary": "Правила доступности",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "День недели, 0 - понедельник",
                        "name": "day_of_week",
                        "in": "query"
                    },
                    {
                        "type": "boolean",
                        "description": "Только активные",
                        "name": "active_only",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.AvailabilityRule"
                            }
                        }
                    },
                    "400": {
                        "description": "Неверные параметры",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    },
                    "403": {
                        "description": "Доступ запрещен",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Доступность"
                ],
                "summary": "Добавить правило доступности",
                "parameters": [
                    {
                        "description": "Правило",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.CreateAvailabilityRuleDTO"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.AvailabilityRule"
                        }
                    },
                    "400": {
                        "description": "Ошибка валидации",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    },
                    "403": {
                        "description": "Доступ запрещен",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    }
                }
            }
        },
        "/availability/rules/{id}": {
            "get": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Доступность"
                ],
                "summary": "Получить правило доступности",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID правила",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.AvailabilityRule"
                        }
                    },
                    "404": {
                        "description": "Правило не найдено",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    }
                }
            },
            "patch": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Уже созданные записи не затрагиваются",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Доступность"
                ],
                "summary": "Включить или выключить правило",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID правила",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Активность",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.ToggleAvailabilityRuleDTO"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.AvailabilityRule"
                        }
                    },
                    "404": {
                        "description": "Правило не найдено",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Уже созданные записи не затрагиваются",
                "tags": [
                    "Доступность"
                ],
                "summary": "Удалить правило доступности",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID правила",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Правило не найдено",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    }
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Служебное"
                ],
                "summary": "Проверка состояния",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/invoices/unpaid": {
            "get": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Клиент видит свои счета, фрилансер указывает client_id",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Счета"
                ],
                "summary": "Неоплаченные счета",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID клиента (только для фрилансера)",
                        "name": "client_id",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.Invoice"
                            }
                        }
                    },
                    "400": {
                        "description": "Не указан клиент",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    },
                    "502": {
                        "description": "Модуль счетов недоступен",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    }
                }
            }
        },
        "/me": {
            "get": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Возвращает роль пользователя и ID его карточки клиента",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Авторизация"
                ],
                "summary": "Текущий пользователь",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Identity"
                        }
                    },
                    "401": {
                        "description": "Не авторизован",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    }
                }
            }
        },
        "/slots": {
            "get": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Слоты вычисляются из активных правил при каждом запросе",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Доступность"
                ],
                "summary": "Слоты на дату",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Дата YYYY-MM-DD",
                        "name": "date",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.Slot"
                            }
                        }
                    },
                    "400": {
                        "description": "Неверная дата",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    }
                }
            }
        },
        "/timers": {
            "get": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Запущенные и приостановленные таймеры текущего пользователя",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Учет времени"
                ],
                "summary": "Таймеры",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.TimerSession"
                            }
                        }
                    }
                }
            }
        },
        "/timers/entries": {
            "get": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Учет времени"
                ],
                "summary": "Учтенное время",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Категория",
                        "name": "category",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "С даты YYYY-MM-DD",
                        "name": "from",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "По дату YYYY-MM-DD",
                        "name": "to",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Размер страницы",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Смещение",
                        "name": "offset",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.TimeEntry"
                            }
                        }
                    }
                }
            }
        },
        "/timers/{category}/pause": {
            "post": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Учет времени"
                ],
                "summary": "Приостановить таймер",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Категория",
                        "name": "category",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.TimerSession"
                        }
                    },
                    "404": {
                        "description": "Таймер не найден",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    }
                }
            }
        },
        "/timers/{category}/start": {
            "post": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Запускает новый или возобновляет приостановленный таймер",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Учет времени"
                ],
                "summary": "Запустить таймер",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Категория",
                        "name": "category",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.TimerSession"
                        }
                    },
                    "400": {
                        "description": "Неверная категория",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    }
                }
            }
        },
        "/timers/{category}/stop": {
            "post": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Сохраняет накопленное время и удаляет таймер",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Учет времени"
                ],
                "summary": "Остановить таймер",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Категория",
                        "name": "category",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Заметка",
                        "name": "input",
                        "in": "body",
                        "schema": {
                            "$ref": "#/definitions/domain.StopTimerDTO"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.TimeEntry"
                        }
                    },
                    "404": {
                        "description": "Таймер не найден",
                        "schema": {
                            "$ref": "#/definitions/rest.errorResponseBody"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "domain.AgendaExport": {
            "type": "object",
            "properties": {
                "url": {
                    "type": "string"
                },
                "object_name": {
                    "type": "string"
                },
                "appointments": {
                    "type": "integer"
                },
                "expires_at": {
                    "type": "string"
                }
            }
        },
        "domain.Appointment": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "client_id": {
                    "type": "integer"
                },
                "appointment_date": {
                    "type": "string",
                    "example": "2025-03-03"
                },
                "start_time": {
                    "type": "string",
                    "example": "09:00"
                },
                "end_time": {
                    "type": "string",
                    "example": "09:30"
                },
                "status": {
                    "type": "string"
                },
                "meeting_type": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                },
                "rescheduled_from": {
                    "type": "integer"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                },
                "client_name": {
                    "type": "string"
                }
            }
        },
        "domain.AvailabilityRule": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "day_of_week": {
                    "type": "integer"
                },
                "start_time": {
                    "type": "string",
                    "example": "09:00"
                },
                "end_time": {
                    "type": "string",
                    "example": "12:00"
                },
                "slot_duration": {
                    "type": "integer"
                },
                "is_active": {
                    "type": "boolean"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "domain.BookingRequestDTO": {
            "type": "object",
            "required": [
                "date",
                "meeting_type",
                "start_time"
            ],
            "properties": {
                "date": {
                    "type": "string",
                    "example": "2025-03-03"
                },
                "start_time": {
                    "type": "string",
                    "example": "09:00"
                },
                "meeting_type": {
                    "type": "string",
                    "enum": [
                        "remote",
                        "in-person"
                    ]
                },
                "notes": {
                    "type": "string"
                }
            }
        },
        "domain.CreateAvailabilityRuleDTO": {
            "type": "object",
            "required": [
                "day_of_week",
                "end_time",
                "slot_duration",
                "start_time"
            ],
            "properties": {
                "day_of_week": {
                    "type": "integer"
                },
                "start_time": {
                    "type": "string",
                    "example": "09:00"
                },
                "end_time": {
                    "type": "string",
                    "example": "12:00"
                },
                "slot_duration": {
                    "type": "integer",
                    "example": 30
                },
                "is_active": {
                    "type": "boolean"
                }
            }
        },
        "domain.FreelancerBookingDTO": {
            "type": "object",
            "required": [
                "client_id",
                "date",
                "meeting_type",
                "start_time"
            ],
            "properties": {
                "client_id": {
                    "type": "integer"
                },
                "date": {
                    "type": "string",
                    "example": "2025-03-03"
                },
                "start_time": {
                    "type": "string",
                    "example": "09:00"
                },
                "meeting_type": {
                    "type": "string",
                    "enum": [
                        "remote",
                        "in-person"
                    ]
                },
                "notes": {
                    "type": "string"
                }
            }
        },
        "domain.Identity": {
            "type": "object",
            "properties": {
                "user_id": {
                    "type": "integer"
                },
                "email": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                },
                "client_id": {
                    "type": "integer"
                }
            }
        },
        "domain.Invoice": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "client_id": {
                    "type": "integer"
                },
                "number": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "amount_cents": {
                    "type": "integer"
                },
                "currency": {
                    "type": "string"
                },
                "due_date": {
                    "type": "string"
                },
                "issued_at": {
                    "type": "string"
                }
            }
        },
        "domain.LoginRequest": {
            "type": "object",
            "required": [
                "email",
                "password"
            ],
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            }
        },
        "domain.RefreshTokenRequest": {
            "type": "object",
            "required": [
                "refresh_token"
            ],
            "properties": {
                "refresh_token": {
                    "type": "string"
                }
            }
        },
        "domain.RegisterRequest": {
            "type": "object",
            "required": [
                "email",
                "first_name",
                "last_name",
                "password"
            ],
            "properties": {
                "first_name": {
                    "type": "string"
                },
                "last_name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "company": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            }
        },
        "domain.RescheduleDTO": {
            "type": "object",
            "required": [
                "date",
                "start_time"
            ],
            "properties": {
                "date": {
                    "type": "string",
                    "example": "2025-03-04"
                },
                "start_time": {
                    "type": "string",
                    "example": "10:00"
                },
                "meeting_type": {
                    "type": "string",
                    "enum": [
                        "remote",
                        "in-person"
                    ]
                },
                "notes": {
                    "type": "string"
                }
            }
        },
        "domain.RescheduleResult": {
            "type": "object",
            "properties": {
                "appointment": {
                    "$ref": "#/definitions/domain.Appointment"
                },
                "old_id": {
                    "type": "integer"
                },
                "old_cancelled": {
                    "type": "boolean"
                }
            }
        },
        "domain.Slot": {
            "type": "object",
            "properties": {
                "start_time": {
                    "type": "string",
                    "example": "09:00"
                },
                "duration": {
                    "type": "integer"
                },
                "available": {
                    "type": "boolean"
                }
            }
        },
        "domain.StopTimerDTO": {
            "type": "object",
            "properties": {
                "note": {
                    "type": "string"
                }
            }
        },
        "domain.TimeEntry": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "user_id": {
                    "type": "integer"
                },
                "category": {
                    "type": "string"
                },
                "seconds": {
                    "type": "integer"
                },
                "note": {
                    "type": "string"
                },
                "stopped_at": {
                    "type": "string"
                }
            }
        },
        "domain.TimerSession": {
            "type": "object",
            "properties": {
                "category": {
                    "type": "string"
                },
                "state": {
                    "type": "string"
                },
                "started_at": {
                    "type": "string"
                },
                "elapsed_seconds": {
                    "type": "integer"
                }
            }
        },
        "domain.ToggleAvailabilityRuleDTO": {
            "type": "object",
            "required": [
                "is_active"
            ],
            "properties": {
                "is_active": {
                    "type": "boolean"
                }
            }
        },
        "domain.Tokens": {
            "type": "object",
            "properties": {
                "access_token": {
                    "type": "string"
                },
                "refresh_token": {
                    "type": "string"
                }
            }
        },
        "rest.errorResponseBody": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "code": {
                    "type": "integer"
                },
                "field": {
                    "type": "string"
                },
                "reason": {
                    "type": "string"
                }
            }
        },
        "rest.paginatedResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "total_count": {
                    "type": "integer"
                },
                "page": {
                    "type": "integer"
                },
                "page_size": {
                    "type": "integer"
                },
                "total_pages": {
                    "type": "integer"
                }
            }
        },
        "rest.paymentRequiredBody": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "code": {
                    "type": "integer"
                },
                "field": {
                    "type": "string"
                },
                "reason": {
                    "type": "string"
                },
                "invoices": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Invoice"
                    }
                }
            }
        },
        "rest.rescheduleIncompleteBody": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "code": {
                    "type": "integer"
                },
                "field": {
                    "type": "string"
                },
                "reason": {
                    "type": "string"
                },
                "appointment": {
                    "$ref": "#/definitions/domain.Appointment"
                },
                "old_id": {
                    "type": "integer"
                }
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "FreeDesk API",
	Description:      "API записи клиентов к фрилансеру и учета рабочего времени",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
