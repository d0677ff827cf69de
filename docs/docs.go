// Package docs registra el documento Swagger del API en swag. El JSON sigue
// las anotaciones de handler.go; docs_test.go verifica que no se desincronicen.
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
        "/dashboard": {
            "get": {
                "description": "Trae los registros de todas las mascotas visibles (propias + compartidas), recalcula todas las vistas y publica el snapshot. Si el backend falla, las vistas se devuelven vacías (nunca 5xx). Autenticación: header X-Debug-User-ID (dev) o Authorization con Bearer token (prod).",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "dashboard"
                ],
                "summary": "Refrescar dashboard completo",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dashboard.Snapshot"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/dashboard/snapshot": {
            "get": {
                "description": "Devuelve el último dashboard publicado por GET /dashboard, sin ir al backend.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "dashboard"
                ],
                "summary": "Último snapshot publicado",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dashboard.Snapshot"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "404": {
                        "description": "snapshot not found",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/dashboard/activity": {
            "get": {
                "description": "Une pesajes, visitas, vacunas y documentos en un feed ordenado del más reciente al más antiguo.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "dashboard"
                ],
                "summary": "Feed de actividad reciente",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    },
                    {
                        "type": "integer",
                        "description": "Máximo por fuente. Por defecto 5",
                        "name": "limit_per_source",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Corte total del feed. 0 = sin corte",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/health.ActivityItem"
                            }
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "400": {
                        "description": "parámetros inválidos",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/dashboard/calendar": {
            "get": {
                "description": "Une vacunas, tratamientos activos, visitas, eventos genéricos y cumpleaños sintéticos. Orden ascendente por fecha.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "dashboard"
                ],
                "summary": "Eventos de calendario",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "CSV de IDs de mascota (solo se consideran las visibles)",
                        "name": "pet_ids",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "CSV de tipos: vaccination,treatment,vet_visit,grooming,other",
                        "name": "types",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Fecha mínima (YYYY-MM-DD o RFC3339)",
                        "name": "from",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Fecha máxima inclusive (YYYY-MM-DD o RFC3339)",
                        "name": "to",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/health.CalendarEvent"
                            }
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "400": {
                        "description": "parámetros de filtro inválidos",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/dashboard/calendar.ics": {
            "get": {
                "description": "Mismos filtros que /dashboard/calendar, serializado como RFC 5545 para suscribirse desde un cliente de calendario.",
                "produces": [
                    "text/calendar"
                ],
                "tags": [
                    "dashboard"
                ],
                "summary": "Exportar calendario (iCalendar)",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "CSV de IDs de mascota",
                        "name": "pet_ids",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "CSV de tipos de evento",
                        "name": "types",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Fecha mínima (YYYY-MM-DD o RFC3339)",
                        "name": "from",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Fecha máxima inclusive (YYYY-MM-DD o RFC3339)",
                        "name": "to",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "VCALENDAR",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "400": {
                        "description": "parámetros de filtro inválidos",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/dashboard/alerts": {
            "get": {
                "description": "Vacunas y turnos de tratamiento que vencen dentro de la ventana, ordenados por severidad y días restantes.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "dashboard"
                ],
                "summary": "Alertas priorizadas",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    },
                    {
                        "type": "integer",
                        "description": "Ventana en días. Por defecto ALERT_DAYS_THRESHOLD (30)",
                        "name": "days",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/health.PriorityAlert"
                            }
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "400": {
                        "description": "days inválido",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/dashboard/metrics": {
            "get": {
                "description": "Cobertura de vacunas, medicación activa, tendencia de peso y control anual.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "dashboard"
                ],
                "summary": "Métricas de salud",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/health.HealthMetrics"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/dashboard/priorities": {
            "get": {
                "description": "Dosis y visitas de hoy más alertas críticas, ordenadas por urgencia y hora.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "dashboard"
                ],
                "summary": "Prioridades del día",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/health.Priority"
                            }
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/dashboard/insights": {
            "get": {
                "description": "Recomendaciones derivadas de las métricas (vacunas, cumpleaños, peso, control, medicación, temporada).",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "dashboard"
                ],
                "summary": "Tarjetas de insights",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/health.Insight"
                            }
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "health.ActivityItem": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "pet_id": {
                    "type": "string"
                },
                "pet_name": {
                    "type": "string"
                },
                "pet_photo_url": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                },
                "icon": {
                    "type": "string"
                }
            }
        },
        "health.CalendarEvent": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "pet_id": {
                    "type": "string"
                },
                "pet_name": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "due_date": {
                    "type": "string"
                },
                "priority": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                },
                "color": {
                    "type": "string"
                },
                "related_id": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "age": {
                    "type": "integer"
                }
            }
        },
        "health.PriorityAlert": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "pet_id": {
                    "type": "string"
                },
                "pet_name": {
                    "type": "string"
                },
                "due_date": {
                    "type": "string"
                },
                "severity": {
                    "type": "string"
                },
                "action_label": {
                    "type": "string"
                },
                "action_url": {
                    "type": "string"
                },
                "days_remaining": {
                    "type": "integer"
                }
            }
        },
        "health.VaccinationMetrics": {
            "type": "object",
            "properties": {
                "current": {
                    "type": "integer"
                },
                "total": {
                    "type": "integer"
                },
                "percentage": {
                    "type": "integer"
                },
                "overdue": {
                    "type": "integer"
                },
                "due_soon": {
                    "type": "integer"
                }
            }
        },
        "health.MedicationMetrics": {
            "type": "object",
            "properties": {
                "active": {
                    "type": "integer"
                },
                "total": {
                    "type": "integer"
                },
                "by_pet": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                }
            }
        },
        "health.WeightMetrics": {
            "type": "object",
            "properties": {
                "trend": {
                    "type": "string"
                },
                "change": {
                    "type": "number"
                },
                "change_percentage": {
                    "type": "number"
                },
                "last_weight": {
                    "type": "number"
                },
                "unit": {
                    "type": "string"
                }
            }
        },
        "health.CheckupMetrics": {
            "type": "object",
            "properties": {
                "days_since_last_visit": {
                    "type": "integer"
                },
                "next_due_date": {
                    "type": "string"
                },
                "days_until_next": {
                    "type": "integer"
                },
                "is_overdue": {
                    "type": "boolean"
                }
            }
        },
        "health.HealthMetrics": {
            "type": "object",
            "properties": {
                "vaccinations": {
                    "$ref": "#/definitions/health.VaccinationMetrics"
                },
                "medications": {
                    "$ref": "#/definitions/health.MedicationMetrics"
                },
                "weight": {
                    "$ref": "#/definitions/health.WeightMetrics"
                },
                "checkups": {
                    "$ref": "#/definitions/health.CheckupMetrics"
                }
            }
        },
        "health.Priority": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "pet_id": {
                    "type": "string"
                },
                "pet_name": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "due_time": {
                    "type": "string"
                },
                "urgency": {
                    "type": "string"
                },
                "icon": {
                    "type": "string"
                },
                "color": {
                    "type": "string"
                },
                "completed": {
                    "type": "boolean"
                }
            }
        },
        "health.Insight": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "severity": {
                    "type": "string"
                },
                "icon": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "action_label": {
                    "type": "string"
                },
                "action_type": {
                    "type": "string"
                },
                "pet_id": {
                    "type": "string"
                },
                "pet_name": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "color": {
                    "type": "string"
                },
                "background_color": {
                    "type": "string"
                },
                "action_data": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                },
                "dismissible": {
                    "type": "boolean"
                }
            }
        },
        "dashboard.Snapshot": {
            "type": "object",
            "properties": {
                "user_id": {
                    "type": "string"
                },
                "generation": {
                    "type": "integer"
                },
                "generated_at": {
                    "type": "string"
                },
                "activity": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/health.ActivityItem"
                    }
                },
                "calendar": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/health.CalendarEvent"
                    }
                },
                "alerts": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/health.PriorityAlert"
                    }
                },
                "metrics": {
                    "$ref": "#/definitions/health.HealthMetrics"
                },
                "priorities": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/health.Priority"
                    }
                },
                "insights": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/health.Insight"
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pet Health Record API",
	Description:      "Dashboard de salud de mascotas: actividad, calendario, alertas, métricas, prioridades e insights.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
