// Package docs registra la especificación OpenAPI de la API (formato swag).
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/auth/login": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.LoginResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Iniciar sesión",
                "tags": [
                    "auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "login (email o username), password",
                        "schema": {
                            "$ref": "#/definitions/dto.LoginRequest"
                        }
                    }
                ]
            }
        },
        "/api/auth/logout": {
            "post": {
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Cerrar sesión (revoca el token actual)",
                "tags": [
                    "auth"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ]
            }
        },
        "/api/auth/me": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.UserResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Usuario autenticado",
                "tags": [
                    "auth"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ]
            }
        },
        "/api/auth/password": {
            "put": {
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Cambiar contraseña",
                "tags": [
                    "auth"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "contraseña actual y nueva",
                        "schema": {
                            "$ref": "#/definitions/dto.ChangePasswordRequest"
                        }
                    }
                ]
            }
        },
        "/api/auth/register": {
            "post": {
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.UserResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Registrar usuario en una empresa existente",
                "tags": [
                    "auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "company_id, username, email, password, role",
                        "schema": {
                            "$ref": "#/definitions/dto.RegisterRequest"
                        }
                    }
                ]
            }
        },
        "/api/auth/register-company": {
            "post": {
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.RegisterCompanyResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Registrar empresa con su usuario administrador",
                "tags": [
                    "auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "empresa y admin",
                        "schema": {
                            "$ref": "#/definitions/dto.RegisterCompanyRequest"
                        }
                    }
                ]
            }
        },
        "/api/crm/customers": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.Paginated-dto_CustomerResponse"
                        }
                    }
                },
                "summary": "Listar clientes",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "página",
                        "type": "integer"
                    },
                    {
                        "name": "per_page",
                        "in": "query",
                        "required": false,
                        "description": "tamaño de página",
                        "type": "integer"
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "required": false,
                        "description": "active, inactive, prospect, lost",
                        "type": "string"
                    },
                    {
                        "name": "customer_type",
                        "in": "query",
                        "required": false,
                        "description": "prospect, customer, partner",
                        "type": "string"
                    },
                    {
                        "name": "q",
                        "in": "query",
                        "required": false,
                        "description": "nombre, empresa o email",
                        "type": "string"
                    }
                ]
            },
            "post": {
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.CustomerResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Crear cliente",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "datos del cliente",
                        "schema": {
                            "$ref": "#/definitions/dto.CreateCustomerRequest"
                        }
                    }
                ]
            }
        },
        "/api/crm/customers/bulk": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.BulkResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Operación masiva sobre clientes",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "description": "delete, update_type o assign sobre hasta 100 clientes; se aplica a todos o a ninguno.",
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "acción e ids",
                        "schema": {
                            "$ref": "#/definitions/dto.BulkCustomerRequest"
                        }
                    }
                ]
            }
        },
        "/api/crm/customers/export": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Exportar clientes en CSV",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "text/csv"
                ]
            }
        },
        "/api/crm/customers/{id}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.CustomerResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Obtener cliente",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID del cliente",
                        "type": "string"
                    }
                ]
            },
            "put": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.CustomerResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Actualizar cliente",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID del cliente",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "campos a cambiar",
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateCustomerRequest"
                        }
                    }
                ]
            },
            "delete": {
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Eliminar cliente",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "description": "Se rechaza con 409 CUSTOMER_HAS_DEPENDENTS si el cliente tiene tickets u oportunidades.",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID del cliente",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/crm/leads": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.Paginated-dto_LeadResponse"
                        }
                    }
                },
                "summary": "Listar oportunidades",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "página",
                        "type": "integer"
                    },
                    {
                        "name": "per_page",
                        "in": "query",
                        "required": false,
                        "description": "tamaño de página",
                        "type": "integer"
                    },
                    {
                        "name": "stage",
                        "in": "query",
                        "required": false,
                        "description": "new, qualified, proposal, negotiation, won, lost",
                        "type": "string"
                    },
                    {
                        "name": "priority",
                        "in": "query",
                        "required": false,
                        "description": "low, medium, high, urgent",
                        "type": "string"
                    },
                    {
                        "name": "customer_id",
                        "in": "query",
                        "required": false,
                        "description": "cliente",
                        "type": "string"
                    },
                    {
                        "name": "q",
                        "in": "query",
                        "required": false,
                        "description": "título",
                        "type": "string"
                    }
                ]
            },
            "post": {
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.LeadResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Crear oportunidad",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "datos de la oportunidad",
                        "schema": {
                            "$ref": "#/definitions/dto.CreateLeadRequest"
                        }
                    }
                ]
            }
        },
        "/api/crm/leads/{id}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.LeadResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Obtener oportunidad",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID de la oportunidad",
                        "type": "string"
                    }
                ]
            },
            "put": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.LeadResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Actualizar oportunidad (no cambia la etapa)",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID de la oportunidad",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "campos a cambiar",
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateLeadRequest"
                        }
                    }
                ]
            },
            "delete": {
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Eliminar oportunidad",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "description": "Borra también sus actividades.",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID de la oportunidad",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/crm/leads/{id}/activities": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.LeadActivityResponse"
                            }
                        }
                    }
                },
                "summary": "Actividades de la oportunidad",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID de la oportunidad",
                        "type": "string"
                    }
                ]
            },
            "post": {
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.LeadActivityResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Registrar actividad (llamada, email, reunión, nota)",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID de la oportunidad",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "actividad",
                        "schema": {
                            "$ref": "#/definitions/dto.CreateLeadActivityRequest"
                        }
                    }
                ]
            }
        },
        "/api/crm/leads/{id}/history": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.TransitionResponse"
                            }
                        }
                    }
                },
                "summary": "Historial de etapas",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID de la oportunidad",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/crm/leads/{id}/stage": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.LeadResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Mover la oportunidad en el pipeline",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID de la oportunidad",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "nueva etapa y nota",
                        "schema": {
                            "$ref": "#/definitions/dto.LeadStageRequest"
                        }
                    }
                ]
            }
        },
        "/api/crm/tickets": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.Paginated-dto_TicketResponse"
                        }
                    }
                },
                "summary": "Listar tickets",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "página",
                        "type": "integer"
                    },
                    {
                        "name": "per_page",
                        "in": "query",
                        "required": false,
                        "description": "tamaño de página",
                        "type": "integer"
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "required": false,
                        "description": "open, in_progress, waiting, resolved, closed",
                        "type": "string"
                    },
                    {
                        "name": "priority",
                        "in": "query",
                        "required": false,
                        "description": "low, medium, high, urgent",
                        "type": "string"
                    },
                    {
                        "name": "customer_id",
                        "in": "query",
                        "required": false,
                        "description": "cliente",
                        "type": "string"
                    },
                    {
                        "name": "assigned_to",
                        "in": "query",
                        "required": false,
                        "description": "usuario asignado",
                        "type": "string"
                    },
                    {
                        "name": "q",
                        "in": "query",
                        "required": false,
                        "description": "asunto",
                        "type": "string"
                    }
                ]
            },
            "post": {
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.TicketResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Abrir ticket",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "cliente, asunto y descripción",
                        "schema": {
                            "$ref": "#/definitions/dto.CreateTicketRequest"
                        }
                    }
                ]
            }
        },
        "/api/crm/tickets/triage": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.TicketTriageDTO"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Sugerir categoría, prioridad y severidad de un ticket con IA",
                "tags": [
                    "ai"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "description": "Analiza asunto y descripción y devuelve la clasificación más probable con el\nrazonamiento del modelo. Timeout interno de 10 s; 503 si la IA no está configurada.",
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "subject y description",
                        "schema": {
                            "$ref": "#/definitions/dto.TicketTriageRequest"
                        }
                    }
                ]
            }
        },
        "/api/crm/tickets/{id}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.TicketResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Obtener ticket",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID del ticket",
                        "type": "string"
                    }
                ]
            },
            "put": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.TicketResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Actualizar ticket (no cambia el estado)",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID del ticket",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "campos a cambiar",
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateTicketRequest"
                        }
                    }
                ]
            },
            "delete": {
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Eliminar ticket",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "description": "Borra también sus respuestas.",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID del ticket",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/crm/tickets/{id}/history": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.TransitionResponse"
                            }
                        }
                    }
                },
                "summary": "Historial de estados del ticket",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID del ticket",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/crm/tickets/{id}/responses": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.TicketReplyResponse"
                            }
                        }
                    }
                },
                "summary": "Respuestas del ticket",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID del ticket",
                        "type": "string"
                    },
                    {
                        "name": "include_internal",
                        "in": "query",
                        "required": false,
                        "description": "incluir notas internas (por defecto true)",
                        "type": "boolean"
                    }
                ]
            },
            "post": {
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.TicketReplyResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Responder el ticket o dejar nota interna",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID del ticket",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "mensaje",
                        "schema": {
                            "$ref": "#/definitions/dto.CreateTicketResponseRequest"
                        }
                    }
                ]
            }
        },
        "/api/crm/tickets/{id}/status": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.TicketResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Cambiar estado del ticket",
                "tags": [
                    "crm"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "description": "Notifica al cliente por email; un fallo de envío no revierte el cambio.",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID del ticket",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "nuevo estado y nota",
                        "schema": {
                            "$ref": "#/definitions/dto.StatusChangeRequest"
                        }
                    }
                ]
            }
        },
        "/api/dashboard/stats": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.DashboardResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Estadísticas del dashboard",
                "tags": [
                    "dashboard"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "description": "Totales, bloques HR y CRM según el rol, gráficos y actividad reciente."
            }
        },
        "/api/hr/applications/{id}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ApplicationResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Obtener postulación",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID de la postulación",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/hr/applications/{id}/status": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ApplicationResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Avanzar la postulación en el pipeline",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID de la postulación",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "nuevo estado, puntaje y notas",
                        "schema": {
                            "$ref": "#/definitions/dto.ApplicationStatusRequest"
                        }
                    }
                ]
            }
        },
        "/api/hr/attendance/check-in": {
            "post": {
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.AttendanceResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Registrar entrada del día",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "employee_id",
                        "schema": {
                            "$ref": "#/definitions/dto.CheckRequest"
                        }
                    }
                ]
            }
        },
        "/api/hr/attendance/check-out": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.AttendanceResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Registrar salida del día",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "employee_id",
                        "schema": {
                            "$ref": "#/definitions/dto.CheckRequest"
                        }
                    }
                ]
            }
        },
        "/api/hr/attendance/report/{employeeId}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.AttendanceReportResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Reporte de asistencia por rango de fechas",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "employeeId",
                        "in": "path",
                        "required": true,
                        "description": "ID del empleado",
                        "type": "string"
                    },
                    {
                        "name": "start",
                        "in": "query",
                        "required": true,
                        "description": "YYYY-MM-DD",
                        "type": "string"
                    },
                    {
                        "name": "end",
                        "in": "query",
                        "required": true,
                        "description": "YYYY-MM-DD",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/hr/employees": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.Paginated-dto_EmployeeResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Listar empleados",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "página",
                        "type": "integer"
                    },
                    {
                        "name": "per_page",
                        "in": "query",
                        "required": false,
                        "description": "tamaño de página (máx. 100)",
                        "type": "integer"
                    },
                    {
                        "name": "department",
                        "in": "query",
                        "required": false,
                        "description": "departamento",
                        "type": "string"
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "required": false,
                        "description": "active, inactive, terminated, on_leave",
                        "type": "string"
                    },
                    {
                        "name": "q",
                        "in": "query",
                        "required": false,
                        "description": "nombre, email o código",
                        "type": "string"
                    }
                ]
            },
            "post": {
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.EmployeeResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Crear empleado",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "datos del empleado",
                        "schema": {
                            "$ref": "#/definitions/dto.CreateEmployeeRequest"
                        }
                    }
                ]
            }
        },
        "/api/hr/employees/bulk": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.BulkResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Operación masiva sobre empleados",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "description": "delete, update_status o update_department sobre hasta 100 empleados; se aplica a todos o a ninguno.",
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "acción e ids",
                        "schema": {
                            "$ref": "#/definitions/dto.BulkEmployeeRequest"
                        }
                    }
                ]
            }
        },
        "/api/hr/employees/export": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Exportar empleados en CSV",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "text/csv"
                ]
            }
        },
        "/api/hr/employees/{id}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.EmployeeResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Obtener empleado",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID del empleado",
                        "type": "string"
                    }
                ]
            },
            "put": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.EmployeeResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Actualizar empleado",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID del empleado",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "campos a cambiar",
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateEmployeeRequest"
                        }
                    }
                ]
            },
            "delete": {
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Eliminar empleado",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID del empleado",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/hr/employees/{id}/reports": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.EmployeeResponse"
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Reportes directos del empleado",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID del manager",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/hr/jobs": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.Paginated-dto_JobResponse"
                        }
                    }
                },
                "summary": "Listar vacantes",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "página",
                        "type": "integer"
                    },
                    {
                        "name": "per_page",
                        "in": "query",
                        "required": false,
                        "description": "tamaño de página (máx. 100)",
                        "type": "integer"
                    },
                    {
                        "name": "department",
                        "in": "query",
                        "required": false,
                        "description": "departamento",
                        "type": "string"
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "required": false,
                        "description": "draft, open, closed, filled",
                        "type": "string"
                    },
                    {
                        "name": "q",
                        "in": "query",
                        "required": false,
                        "description": "título",
                        "type": "string"
                    }
                ]
            },
            "post": {
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.JobResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Crear vacante (queda en draft)",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "datos de la vacante",
                        "schema": {
                            "$ref": "#/definitions/dto.CreateJobRequest"
                        }
                    }
                ]
            }
        },
        "/api/hr/jobs/{id}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.JobResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Obtener vacante",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID de la vacante",
                        "type": "string"
                    }
                ]
            },
            "put": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.JobResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Actualizar vacante",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID de la vacante",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "campos a cambiar",
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateJobRequest"
                        }
                    }
                ]
            },
            "delete": {
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Eliminar vacante",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "description": "Se rechaza con 409 si la vacante tiene postulaciones.",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID de la vacante",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/hr/jobs/{id}/applications": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.Paginated-dto_ApplicationResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Postulaciones de una vacante",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID de la vacante",
                        "type": "string"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "página",
                        "type": "integer"
                    },
                    {
                        "name": "per_page",
                        "in": "query",
                        "required": false,
                        "description": "tamaño de página",
                        "type": "integer"
                    }
                ]
            },
            "post": {
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.ApplicationResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Postularse a una vacante abierta",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID de la vacante",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "datos del candidato",
                        "schema": {
                            "$ref": "#/definitions/dto.CreateApplicationRequest"
                        }
                    }
                ]
            }
        },
        "/api/hr/jobs/{id}/history": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.TransitionResponse"
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Historial de estados de la vacante",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID de la vacante",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/hr/jobs/{id}/status": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.JobResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Cambiar estado de la vacante",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID de la vacante",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "nuevo estado y nota",
                        "schema": {
                            "$ref": "#/definitions/dto.StatusChangeRequest"
                        }
                    }
                ]
            }
        },
        "/api/hr/leaves": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.Paginated-dto_LeaveResponse"
                        }
                    }
                },
                "summary": "Listar solicitudes de ausencia",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "página",
                        "type": "integer"
                    },
                    {
                        "name": "per_page",
                        "in": "query",
                        "required": false,
                        "description": "tamaño de página",
                        "type": "integer"
                    },
                    {
                        "name": "employee_id",
                        "in": "query",
                        "required": false,
                        "description": "empleado",
                        "type": "string"
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "required": false,
                        "description": "pending, approved, rejected, cancelled",
                        "type": "string"
                    },
                    {
                        "name": "type",
                        "in": "query",
                        "required": false,
                        "description": "vacation, sick, ...",
                        "type": "string"
                    }
                ]
            },
            "post": {
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.LeaveResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Solicitar ausencia",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "empleado, tipo y fechas",
                        "schema": {
                            "$ref": "#/definitions/dto.CreateLeaveRequest"
                        }
                    }
                ]
            }
        },
        "/api/hr/leaves/balance/{employeeId}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.LeaveBalanceResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Saldo de días por tipo de ausencia del año en curso",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "employeeId",
                        "in": "path",
                        "required": true,
                        "description": "ID del empleado",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/hr/leaves/{id}/approve": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.LeaveResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Aprobar solicitud",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID de la solicitud",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": false,
                        "description": "comentario",
                        "schema": {
                            "$ref": "#/definitions/dto.LeaveDecisionRequest"
                        }
                    }
                ]
            }
        },
        "/api/hr/leaves/{id}/cancel": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.LeaveResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Cancelar solicitud pendiente",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID de la solicitud",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": false,
                        "description": "comentario",
                        "schema": {
                            "$ref": "#/definitions/dto.LeaveDecisionRequest"
                        }
                    }
                ]
            }
        },
        "/api/hr/leaves/{id}/reject": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.LeaveResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Rechazar solicitud",
                "tags": [
                    "hr"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID de la solicitud",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": false,
                        "description": "comentario",
                        "schema": {
                            "$ref": "#/definitions/dto.LeaveDecisionRequest"
                        }
                    }
                ]
            }
        },
        "/api/hr/payroll": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.Paginated-dto_PayrollResponse"
                        }
                    }
                },
                "summary": "Listar registros de nómina",
                "tags": [
                    "payroll"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "página",
                        "type": "integer"
                    },
                    {
                        "name": "per_page",
                        "in": "query",
                        "required": false,
                        "description": "tamaño de página",
                        "type": "integer"
                    },
                    {
                        "name": "employee_id",
                        "in": "query",
                        "required": false,
                        "description": "empleado",
                        "type": "string"
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "required": false,
                        "description": "draft, processed, paid",
                        "type": "string"
                    },
                    {
                        "name": "period_start",
                        "in": "query",
                        "required": false,
                        "description": "YYYY-MM-DD",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/hr/payroll/run": {
            "post": {
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.RunPayrollResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Liquidar nómina de un período",
                "tags": [
                    "payroll"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "description": "Calcula en borrador la nómina de los empleados activos (o de los indicados).\nLos empleados que ya tienen registro en el período se omiten.",
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "período y empleados opcionales",
                        "schema": {
                            "$ref": "#/definitions/dto.RunPayrollRequest"
                        }
                    }
                ]
            }
        },
        "/api/hr/payroll/{id}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.PayrollResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Obtener registro de nómina",
                "tags": [
                    "payroll"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID del registro",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/hr/payroll/{id}/history": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.TransitionResponse"
                            }
                        }
                    }
                },
                "summary": "Historial de estados del registro de nómina",
                "tags": [
                    "payroll"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID del registro",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/hr/payroll/{id}/payslip": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Descargar desprendible de pago en PDF",
                "tags": [
                    "payroll"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/pdf"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID del registro",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/hr/payroll/{id}/status": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.PayrollResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Procesar o marcar como pagado",
                "tags": [
                    "payroll"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID del registro",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "processed o paid",
                        "schema": {
                            "$ref": "#/definitions/dto.StatusChangeRequest"
                        }
                    }
                ]
            }
        },
        "/api/reports/customer-summary": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.CustomerSummaryResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Reporte resumen de la cartera de clientes",
                "tags": [
                    "reports"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "description": "Total, desglose por tipo, industria, prioridad y estado, y altas de los últimos 30 días."
            }
        },
        "/api/reports/employee-summary": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.EmployeeSummaryResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Reporte resumen de la plantilla",
                "tags": [
                    "reports"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "description": "Total, desglose por departamento, tipo de contrato y estado, e ingresos de los últimos 30 días."
            }
        },
        "/api/search": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.SearchResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Búsqueda global en empleados, clientes y oportunidades",
                "tags": [
                    "dashboard"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "description": "Solo devuelve los tipos que el rol puede leer; máximo 5 resultados por tipo.",
                "parameters": [
                    {
                        "name": "q",
                        "in": "query",
                        "required": true,
                        "description": "texto (mínimo 2 caracteres)",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/users": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.Paginated-dto_UserResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Listar usuarios",
                "tags": [
                    "users"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "página",
                        "type": "integer"
                    },
                    {
                        "name": "per_page",
                        "in": "query",
                        "required": false,
                        "description": "tamaño de página (máx. 100)",
                        "type": "integer"
                    },
                    {
                        "name": "role",
                        "in": "query",
                        "required": false,
                        "description": "rol",
                        "type": "string"
                    },
                    {
                        "name": "is_active",
                        "in": "query",
                        "required": false,
                        "description": "true/false",
                        "type": "string"
                    },
                    {
                        "name": "q",
                        "in": "query",
                        "required": false,
                        "description": "búsqueda por nombre, email o username",
                        "type": "string"
                    }
                ]
            }
        },
        "/api/users/{id}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.UserResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Obtener usuario",
                "tags": [
                    "users"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID del usuario",
                        "type": "string"
                    }
                ]
            },
            "put": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.UserResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Actualizar usuario (datos, rol, activo)",
                "tags": [
                    "users"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID del usuario",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "campos a cambiar",
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateUserRequest"
                        }
                    }
                ]
            },
            "delete": {
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "summary": "Eliminar usuario",
                "tags": [
                    "users"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "ID del usuario",
                        "type": "string"
                    }
                ]
            }
        }
    },
    "definitions": {
        "dto.ApplicationResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                },
                "job_id": {
                    "type": "string"
                },
                "employee_id": {
                    "type": "string"
                },
                "first_name": {
                    "type": "string"
                },
                "last_name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "cover_letter": {
                    "type": "string"
                },
                "source": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "rating": {
                    "type": "integer"
                },
                "reviewed_by": {
                    "type": "string"
                },
                "reviewed_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.ApplicationStatusRequest": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "rating": {
                    "type": "integer"
                },
                "note": {
                    "type": "string"
                }
            },
            "required": [
                "status"
            ]
        },
        "dto.AttendanceReportResponse": {
            "type": "object",
            "properties": {
                "employee_id": {
                    "type": "string"
                },
                "start": {
                    "type": "string"
                },
                "end": {
                    "type": "string"
                },
                "working_days": {
                    "type": "integer"
                },
                "present_days": {
                    "type": "integer"
                },
                "late_days": {
                    "type": "integer"
                },
                "total_hours": {
                    "type": "string",
                    "example": "0"
                },
                "average_hours": {
                    "type": "string",
                    "example": "0"
                },
                "records": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.AttendanceResponse"
                    }
                }
            }
        },
        "dto.AttendanceResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "employee_id": {
                    "type": "string"
                },
                "date": {
                    "type": "string"
                },
                "check_in": {
                    "type": "string",
                    "format": "date-time"
                },
                "check_out": {
                    "type": "string",
                    "format": "date-time"
                },
                "hours_worked": {
                    "type": "string",
                    "example": "0"
                },
                "status": {
                    "type": "string"
                }
            }
        },
        "dto.BulkCustomerRequest": {
            "type": "object",
            "required": [
                "action",
                "customer_ids"
            ],
            "properties": {
                "action": {
                    "type": "string",
                    "enum": [
                        "delete",
                        "update_type",
                        "assign"
                    ]
                },
                "customer_ids": {
                    "type": "array",
                    "maxItems": 100,
                    "minItems": 1,
                    "items": {
                        "type": "string"
                    }
                },
                "customer_type": {
                    "type": "string",
                    "enum": [
                        "prospect",
                        "customer",
                        "partner"
                    ]
                },
                "owner_id": {
                    "type": "string"
                }
            }
        },
        "dto.BulkEmployeeRequest": {
            "type": "object",
            "required": [
                "action",
                "employee_ids"
            ],
            "properties": {
                "action": {
                    "type": "string",
                    "enum": [
                        "delete",
                        "update_status",
                        "update_department"
                    ]
                },
                "employee_ids": {
                    "type": "array",
                    "maxItems": 100,
                    "minItems": 1,
                    "items": {
                        "type": "string"
                    }
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "active",
                        "inactive",
                        "terminated",
                        "on_leave"
                    ]
                },
                "department": {
                    "type": "string",
                    "maxLength": 100
                }
            }
        },
        "dto.BulkResponse": {
            "type": "object",
            "properties": {
                "action": {
                    "type": "string"
                },
                "affected": {
                    "type": "integer"
                }
            }
        },
        "dto.CRMStatsDTO": {
            "type": "object",
            "properties": {
                "active_leads": {
                    "type": "integer"
                },
                "open_tickets": {
                    "type": "integer"
                },
                "overdue_tickets": {
                    "type": "integer"
                },
                "pipeline_value": {
                    "type": "string",
                    "example": "0"
                },
                "won_value": {
                    "type": "string",
                    "example": "0"
                }
            }
        },
        "dto.ChangePasswordRequest": {
            "type": "object",
            "properties": {
                "current_password": {
                    "type": "string"
                },
                "new_password": {
                    "type": "string"
                }
            },
            "required": [
                "current_password",
                "new_password"
            ]
        },
        "dto.ChartPoint": {
            "type": "object",
            "properties": {
                "key": {
                    "type": "string"
                },
                "label": {
                    "type": "string"
                },
                "count": {
                    "type": "integer"
                },
                "value": {
                    "type": "string",
                    "example": "0"
                }
            }
        },
        "dto.ChartsDTO": {
            "type": "object",
            "properties": {
                "employees_by_department": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ChartPoint"
                    }
                },
                "leads_by_stage": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ChartPoint"
                    }
                },
                "tickets_by_status": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ChartPoint"
                    }
                },
                "tickets_by_priority": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ChartPoint"
                    }
                }
            }
        },
        "dto.CheckRequest": {
            "type": "object",
            "properties": {
                "employee_id": {
                    "type": "string"
                }
            }
        },
        "dto.CompanyResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.CreateApplicationRequest": {
            "type": "object",
            "properties": {
                "employee_id": {
                    "type": "string"
                },
                "first_name": {
                    "type": "string"
                },
                "last_name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "cover_letter": {
                    "type": "string"
                },
                "source": {
                    "type": "string"
                }
            }
        },
        "dto.CreateCustomerRequest": {
            "type": "object",
            "properties": {
                "company_name": {
                    "type": "string"
                },
                "first_name": {
                    "type": "string"
                },
                "last_name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "address": {
                    "type": "string"
                },
                "city": {
                    "type": "string"
                },
                "country": {
                    "type": "string"
                },
                "industry": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "customer_type": {
                    "type": "string"
                },
                "priority": {
                    "type": "string"
                },
                "tags": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "owner_id": {
                    "type": "string"
                }
            },
            "required": [
                "email"
            ]
        },
        "dto.CreateEmployeeRequest": {
            "type": "object",
            "properties": {
                "user_id": {
                    "type": "string"
                },
                "first_name": {
                    "type": "string"
                },
                "last_name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "date_of_birth": {
                    "type": "string"
                },
                "department": {
                    "type": "string"
                },
                "position": {
                    "type": "string"
                },
                "hire_date": {
                    "type": "string"
                },
                "employment_type": {
                    "type": "string"
                },
                "salary": {
                    "type": "string",
                    "example": "0"
                },
                "salary_type": {
                    "type": "string"
                },
                "manager_id": {
                    "type": "string"
                }
            },
            "required": [
                "first_name",
                "email",
                "department"
            ]
        },
        "dto.CreateJobRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "department": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "employment_type": {
                    "type": "string"
                },
                "experience_level": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "requirements": {
                    "type": "string"
                },
                "salary_min": {
                    "type": "string",
                    "example": "0"
                },
                "salary_max": {
                    "type": "string",
                    "example": "0"
                },
                "salary_currency": {
                    "type": "string"
                },
                "positions_available": {
                    "type": "integer"
                },
                "closing_date": {
                    "type": "string"
                }
            },
            "required": [
                "title",
                "department"
            ]
        },
        "dto.CreateLeadActivityRequest": {
            "type": "object",
            "properties": {
                "type": {
                    "type": "string"
                },
                "subject": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "outcome": {
                    "type": "string"
                },
                "follow_up_date": {
                    "type": "string"
                }
            },
            "required": [
                "type",
                "subject"
            ]
        },
        "dto.CreateLeadRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "customer_id": {
                    "type": "string"
                },
                "owner_id": {
                    "type": "string"
                },
                "contact_name": {
                    "type": "string"
                },
                "contact_email": {
                    "type": "string"
                },
                "source": {
                    "type": "string"
                },
                "priority": {
                    "type": "string"
                },
                "estimated_value": {
                    "type": "string",
                    "example": "0"
                },
                "probability": {
                    "type": "integer"
                },
                "expected_close_date": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                }
            },
            "required": [
                "title",
                "customer_id"
            ]
        },
        "dto.CreateLeaveRequest": {
            "type": "object",
            "properties": {
                "employee_id": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "start_date": {
                    "type": "string"
                },
                "end_date": {
                    "type": "string"
                },
                "reason": {
                    "type": "string"
                }
            },
            "required": [
                "type",
                "start_date",
                "end_date"
            ]
        },
        "dto.CreateTicketRequest": {
            "type": "object",
            "properties": {
                "customer_id": {
                    "type": "string"
                },
                "subject": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "priority": {
                    "type": "string"
                },
                "severity": {
                    "type": "string"
                },
                "channel": {
                    "type": "string"
                },
                "assigned_to": {
                    "type": "string"
                }
            },
            "required": [
                "customer_id",
                "subject",
                "description"
            ]
        },
        "dto.CreateTicketResponseRequest": {
            "type": "object",
            "properties": {
                "type": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "is_internal": {
                    "type": "boolean"
                }
            },
            "required": [
                "message"
            ]
        },
        "dto.CustomerResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                },
                "company_name": {
                    "type": "string"
                },
                "first_name": {
                    "type": "string"
                },
                "last_name": {
                    "type": "string"
                },
                "display_name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "address": {
                    "type": "string"
                },
                "city": {
                    "type": "string"
                },
                "country": {
                    "type": "string"
                },
                "industry": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "customer_type": {
                    "type": "string"
                },
                "priority": {
                    "type": "string"
                },
                "tags": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "owner_id": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.CustomerSummaryResponse": {
            "type": "object",
            "properties": {
                "total_customers": {
                    "type": "integer"
                },
                "type_breakdown": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ChartPoint"
                    }
                },
                "industry_breakdown": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ChartPoint"
                    }
                },
                "priority_breakdown": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ChartPoint"
                    }
                },
                "status_breakdown": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ChartPoint"
                    }
                },
                "recent_customers_30_days": {
                    "type": "integer"
                },
                "generated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.DashboardResponse": {
            "type": "object",
            "properties": {
                "totals": {
                    "$ref": "#/definitions/dto.TotalsDTO"
                },
                "hr": {
                    "$ref": "#/definitions/dto.HRStatsDTO"
                },
                "crm": {
                    "$ref": "#/definitions/dto.CRMStatsDTO"
                },
                "charts": {
                    "$ref": "#/definitions/dto.ChartsDTO"
                },
                "recent_activity": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.TransitionResponse"
                    }
                },
                "generated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.EmployeeResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                },
                "user_id": {
                    "type": "string"
                },
                "first_name": {
                    "type": "string"
                },
                "last_name": {
                    "type": "string"
                },
                "full_name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "date_of_birth": {
                    "type": "string"
                },
                "department": {
                    "type": "string"
                },
                "position": {
                    "type": "string"
                },
                "hire_date": {
                    "type": "string"
                },
                "employment_type": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "salary": {
                    "type": "string",
                    "example": "0"
                },
                "salary_type": {
                    "type": "string"
                },
                "manager_id": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.EmployeeSummaryResponse": {
            "type": "object",
            "properties": {
                "total_employees": {
                    "type": "integer"
                },
                "department_breakdown": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ChartPoint"
                    }
                },
                "employment_type_breakdown": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ChartPoint"
                    }
                },
                "status_breakdown": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ChartPoint"
                    }
                },
                "recent_hires_30_days": {
                    "type": "integer"
                },
                "generated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "details": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.FieldError"
                    }
                }
            }
        },
        "dto.FieldError": {
            "type": "object",
            "properties": {
                "field": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "dto.HRStatsDTO": {
            "type": "object",
            "properties": {
                "total_employees": {
                    "type": "integer"
                },
                "open_positions": {
                    "type": "integer"
                },
                "recent_hires": {
                    "type": "integer"
                },
                "pending_leaves": {
                    "type": "integer"
                }
            }
        },
        "dto.JobResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "department": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "employment_type": {
                    "type": "string"
                },
                "experience_level": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "requirements": {
                    "type": "string"
                },
                "salary_min": {
                    "type": "string",
                    "example": "0"
                },
                "salary_max": {
                    "type": "string",
                    "example": "0"
                },
                "salary_currency": {
                    "type": "string"
                },
                "positions_available": {
                    "type": "integer"
                },
                "status": {
                    "type": "string"
                },
                "accepting_applications": {
                    "type": "boolean"
                },
                "published_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "closing_date": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.LeadActivityResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "lead_id": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "subject": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "outcome": {
                    "type": "string"
                },
                "follow_up_date": {
                    "type": "string"
                },
                "created_by": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.LeadResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "customer_id": {
                    "type": "string"
                },
                "owner_id": {
                    "type": "string"
                },
                "contact_name": {
                    "type": "string"
                },
                "contact_email": {
                    "type": "string"
                },
                "source": {
                    "type": "string"
                },
                "priority": {
                    "type": "string"
                },
                "estimated_value": {
                    "type": "string",
                    "example": "0"
                },
                "probability": {
                    "type": "integer"
                },
                "weighted_value": {
                    "type": "string",
                    "example": "0"
                },
                "stage": {
                    "type": "string"
                },
                "stage_label": {
                    "type": "string"
                },
                "expected_close_date": {
                    "type": "string"
                },
                "actual_close_date": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.LeadStageRequest": {
            "type": "object",
            "properties": {
                "stage": {
                    "type": "string"
                },
                "note": {
                    "type": "string"
                }
            },
            "required": [
                "stage"
            ]
        },
        "dto.LeaveBalanceItem": {
            "type": "object",
            "properties": {
                "type": {
                    "type": "string"
                },
                "allowance": {
                    "type": "integer"
                },
                "used": {
                    "type": "integer"
                },
                "remaining": {
                    "type": "integer"
                }
            }
        },
        "dto.LeaveBalanceResponse": {
            "type": "object",
            "properties": {
                "employee_id": {
                    "type": "string"
                },
                "year": {
                    "type": "integer"
                },
                "balances": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.LeaveBalanceItem"
                    }
                }
            }
        },
        "dto.LeaveDecisionRequest": {
            "type": "object",
            "properties": {
                "note": {
                    "type": "string"
                }
            }
        },
        "dto.LeaveResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "employee_id": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "start_date": {
                    "type": "string"
                },
                "end_date": {
                    "type": "string"
                },
                "days": {
                    "type": "integer"
                },
                "reason": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "reviewed_by": {
                    "type": "string"
                },
                "reviewed_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "properties": {
                "login": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            },
            "required": [
                "login",
                "password"
            ]
        },
        "dto.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {
                    "type": "string"
                },
                "token_type": {
                    "type": "string"
                },
                "expires_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "user": {
                    "$ref": "#/definitions/dto.UserResponse"
                }
            }
        },
        "dto.PageQuery": {
            "type": "object",
            "properties": {}
        },
        "dto.Paginated-dto_ApplicationResponse": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ApplicationResponse"
                    }
                },
                "total": {
                    "type": "integer"
                },
                "page": {
                    "type": "integer"
                },
                "per_page": {
                    "type": "integer"
                },
                "pages": {
                    "type": "integer"
                },
                "has_prev": {
                    "type": "boolean"
                },
                "has_next": {
                    "type": "boolean"
                }
            }
        },
        "dto.Paginated-dto_CustomerResponse": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.CustomerResponse"
                    }
                },
                "total": {
                    "type": "integer"
                },
                "page": {
                    "type": "integer"
                },
                "per_page": {
                    "type": "integer"
                },
                "pages": {
                    "type": "integer"
                },
                "has_prev": {
                    "type": "boolean"
                },
                "has_next": {
                    "type": "boolean"
                }
            }
        },
        "dto.Paginated-dto_EmployeeResponse": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.EmployeeResponse"
                    }
                },
                "total": {
                    "type": "integer"
                },
                "page": {
                    "type": "integer"
                },
                "per_page": {
                    "type": "integer"
                },
                "pages": {
                    "type": "integer"
                },
                "has_prev": {
                    "type": "boolean"
                },
                "has_next": {
                    "type": "boolean"
                }
            }
        },
        "dto.Paginated-dto_JobResponse": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.JobResponse"
                    }
                },
                "total": {
                    "type": "integer"
                },
                "page": {
                    "type": "integer"
                },
                "per_page": {
                    "type": "integer"
                },
                "pages": {
                    "type": "integer"
                },
                "has_prev": {
                    "type": "boolean"
                },
                "has_next": {
                    "type": "boolean"
                }
            }
        },
        "dto.Paginated-dto_LeadResponse": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.LeadResponse"
                    }
                },
                "total": {
                    "type": "integer"
                },
                "page": {
                    "type": "integer"
                },
                "per_page": {
                    "type": "integer"
                },
                "pages": {
                    "type": "integer"
                },
                "has_prev": {
                    "type": "boolean"
                },
                "has_next": {
                    "type": "boolean"
                }
            }
        },
        "dto.Paginated-dto_LeaveResponse": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.LeaveResponse"
                    }
                },
                "total": {
                    "type": "integer"
                },
                "page": {
                    "type": "integer"
                },
                "per_page": {
                    "type": "integer"
                },
                "pages": {
                    "type": "integer"
                },
                "has_prev": {
                    "type": "boolean"
                },
                "has_next": {
                    "type": "boolean"
                }
            }
        },
        "dto.Paginated-dto_PayrollResponse": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.PayrollResponse"
                    }
                },
                "total": {
                    "type": "integer"
                },
                "page": {
                    "type": "integer"
                },
                "per_page": {
                    "type": "integer"
                },
                "pages": {
                    "type": "integer"
                },
                "has_prev": {
                    "type": "boolean"
                },
                "has_next": {
                    "type": "boolean"
                }
            }
        },
        "dto.Paginated-dto_TicketResponse": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.TicketResponse"
                    }
                },
                "total": {
                    "type": "integer"
                },
                "page": {
                    "type": "integer"
                },
                "per_page": {
                    "type": "integer"
                },
                "pages": {
                    "type": "integer"
                },
                "has_prev": {
                    "type": "boolean"
                },
                "has_next": {
                    "type": "boolean"
                }
            }
        },
        "dto.Paginated-dto_UserResponse": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.UserResponse"
                    }
                },
                "total": {
                    "type": "integer"
                },
                "page": {
                    "type": "integer"
                },
                "per_page": {
                    "type": "integer"
                },
                "pages": {
                    "type": "integer"
                },
                "has_prev": {
                    "type": "boolean"
                },
                "has_next": {
                    "type": "boolean"
                }
            }
        },
        "dto.PayrollResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "employee_id": {
                    "type": "string"
                },
                "period_start": {
                    "type": "string"
                },
                "period_end": {
                    "type": "string"
                },
                "working_days": {
                    "type": "integer"
                },
                "present_days": {
                    "type": "integer"
                },
                "basic_salary": {
                    "type": "string",
                    "example": "0"
                },
                "allowances": {
                    "type": "string",
                    "example": "0"
                },
                "overtime_hours": {
                    "type": "string",
                    "example": "0"
                },
                "overtime_pay": {
                    "type": "string",
                    "example": "0"
                },
                "absence_deduction": {
                    "type": "string",
                    "example": "0"
                },
                "gross_pay": {
                    "type": "string",
                    "example": "0"
                },
                "tax": {
                    "type": "string",
                    "example": "0"
                },
                "other_deductions": {
                    "type": "string",
                    "example": "0"
                },
                "net_pay": {
                    "type": "string",
                    "example": "0"
                },
                "status": {
                    "type": "string"
                },
                "processed_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.RegisterCompanyRequest": {
            "type": "object",
            "properties": {
                "company_name": {
                    "type": "string"
                },
                "company_email": {
                    "type": "string"
                },
                "username": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                },
                "first_name": {
                    "type": "string"
                },
                "last_name": {
                    "type": "string"
                }
            },
            "required": [
                "company_name",
                "username",
                "email",
                "password"
            ]
        },
        "dto.RegisterCompanyResponse": {
            "type": "object",
            "properties": {
                "company": {
                    "$ref": "#/definitions/dto.CompanyResponse"
                },
                "user": {
                    "$ref": "#/definitions/dto.UserResponse"
                }
            }
        },
        "dto.RegisterRequest": {
            "type": "object",
            "properties": {
                "company_id": {
                    "type": "string"
                },
                "username": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                },
                "first_name": {
                    "type": "string"
                },
                "last_name": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                }
            },
            "required": [
                "company_id",
                "username",
                "email",
                "password"
            ]
        },
        "dto.RunPayrollRequest": {
            "type": "object",
            "properties": {
                "period_start": {
                    "type": "string"
                },
                "period_end": {
                    "type": "string"
                },
                "employee_ids": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            },
            "required": [
                "period_start",
                "period_end"
            ]
        },
        "dto.RunPayrollResponse": {
            "type": "object",
            "properties": {
                "created": {
                    "type": "integer"
                },
                "skipped": {
                    "type": "integer"
                },
                "total_net": {
                    "type": "string",
                    "example": "0"
                },
                "records": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.PayrollResponse"
                    }
                }
            }
        },
        "dto.SearchResponse": {
            "type": "object",
            "properties": {
                "query": {
                    "type": "string"
                },
                "results": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.SearchResult"
                    }
                }
            }
        },
        "dto.SearchResult": {
            "type": "object",
            "properties": {
                "kind": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "extra": {
                    "type": "string"
                }
            }
        },
        "dto.StatusChangeRequest": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "note": {
                    "type": "string"
                }
            },
            "required": [
                "status"
            ]
        },
        "dto.TicketReplyResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "ticket_id": {
                    "type": "string"
                },
                "author_id": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "is_internal": {
                    "type": "boolean"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.TicketResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                },
                "customer_id": {
                    "type": "string"
                },
                "subject": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "priority": {
                    "type": "string"
                },
                "severity": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "channel": {
                    "type": "string"
                },
                "assigned_to": {
                    "type": "string"
                },
                "resolution_date": {
                    "type": "string",
                    "format": "date-time"
                },
                "satisfaction_rating": {
                    "type": "integer"
                },
                "is_overdue": {
                    "type": "boolean"
                },
                "sla_hours": {
                    "type": "integer"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.TicketTriageDTO": {
            "type": "object",
            "properties": {
                "suggested_category": {
                    "type": "string"
                },
                "suggested_priority": {
                    "type": "string"
                },
                "suggested_severity": {
                    "type": "string"
                },
                "confidence": {
                    "type": "number"
                },
                "reasoning": {
                    "type": "string"
                }
            }
        },
        "dto.TicketTriageRequest": {
            "type": "object",
            "properties": {
                "subject": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                }
            },
            "required": [
                "subject",
                "description"
            ]
        },
        "dto.TotalsDTO": {
            "type": "object",
            "properties": {
                "active_employees": {
                    "type": "integer"
                },
                "active_customers": {
                    "type": "integer"
                }
            }
        },
        "dto.TransitionResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "entity_type": {
                    "type": "string"
                },
                "entity_id": {
                    "type": "string"
                },
                "from_status": {
                    "type": "string"
                },
                "to_status": {
                    "type": "string"
                },
                "changed_by": {
                    "type": "string"
                },
                "changed_at": {
                    "type": "string"
                },
                "note": {
                    "type": "string"
                }
            }
        },
        "dto.UpdateCustomerRequest": {
            "type": "object",
            "properties": {
                "company_name": {
                    "type": "string"
                },
                "first_name": {
                    "type": "string"
                },
                "last_name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "address": {
                    "type": "string"
                },
                "city": {
                    "type": "string"
                },
                "country": {
                    "type": "string"
                },
                "industry": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "customer_type": {
                    "type": "string"
                },
                "priority": {
                    "type": "string"
                },
                "tags": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "owner_id": {
                    "type": "string"
                }
            }
        },
        "dto.UpdateEmployeeRequest": {
            "type": "object",
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
                "phone": {
                    "type": "string"
                },
                "department": {
                    "type": "string"
                },
                "position": {
                    "type": "string"
                },
                "employment_type": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "salary": {
                    "type": "string",
                    "example": "0"
                },
                "salary_type": {
                    "type": "string"
                },
                "manager_id": {
                    "type": "string"
                }
            }
        },
        "dto.UpdateJobRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "department": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "requirements": {
                    "type": "string"
                },
                "salary_min": {
                    "type": "string",
                    "example": "0"
                },
                "salary_max": {
                    "type": "string",
                    "example": "0"
                },
                "positions_available": {
                    "type": "integer"
                },
                "closing_date": {
                    "type": "string"
                }
            }
        },
        "dto.UpdateLeadRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "owner_id": {
                    "type": "string"
                },
                "contact_name": {
                    "type": "string"
                },
                "contact_email": {
                    "type": "string"
                },
                "source": {
                    "type": "string"
                },
                "priority": {
                    "type": "string"
                },
                "estimated_value": {
                    "type": "string",
                    "example": "0"
                },
                "probability": {
                    "type": "integer"
                },
                "expected_close_date": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                }
            }
        },
        "dto.UpdateTicketRequest": {
            "type": "object",
            "properties": {
                "subject": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "priority": {
                    "type": "string"
                },
                "severity": {
                    "type": "string"
                },
                "assigned_to": {
                    "type": "string"
                },
                "satisfaction_rating": {
                    "type": "integer"
                }
            }
        },
        "dto.UpdateUserRequest": {
            "type": "object",
            "properties": {
                "first_name": {
                    "type": "string"
                },
                "last_name": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                },
                "is_active": {
                    "type": "boolean"
                }
            }
        },
        "dto.UserResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "company_id": {
                    "type": "string"
                },
                "username": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "first_name": {
                    "type": "string"
                },
                "last_name": {
                    "type": "string"
                },
                "full_name": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                },
                "role_label": {
                    "type": "string"
                },
                "is_active": {
                    "type": "boolean"
                },
                "last_login_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "host": "{{.Host}}",
    "schemes": {{ marshal .Schemes }}
}`

// SwaggerInfo metadatos de la especificación.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "People360 API",
	Description:      "API multiempresa de Recursos Humanos y CRM.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
