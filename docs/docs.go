// Package docs holds the OpenAPI document served under /swagger.
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
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/api/v1/station/state": {
            "get": {
                "description": "Latest snapshot saved by the control loop: session phase, last valid readings, posture timer, connectivity.",
                "produces": ["application/json"],
                "tags": ["station"],
                "summary": "Get station state",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/models.StationState"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/api/v1/logs": {
            "get": {
                "description": "Filter the station journal by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). If 'to' is date-only, it is treated as end-of-day inclusive.",
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "List journal events",
                "parameters": [
                    {"type": "string", "example": "2025-08-01", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "example": "2025-08-31", "description": "End of range. Date-only treated as end of day.", "name": "to", "in": "query"},
                    {"enum": ["SESSION", "ALERT", "CONNECTIVITY"], "type": "string", "description": "Event type", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "count, events",
                        "schema": {"type": "object", "additionalProperties": true}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        }
    },
    "definitions": {
        "models.StationState": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "session": {"type": "string", "example": "WORKING"},
                "elapsed_seconds": {"type": "integer"},
                "remaining_seconds": {"type": "integer"},
                "temperature_c": {"type": "number"},
                "humidity_pct": {"type": "number"},
                "luminosity": {"type": "number"},
                "distance_cm": {"type": "number"},
                "posture_seconds": {"type": "number"},
                "connectivity": {"type": "string", "example": "CONNECTED"},
                "updated_at": {"type": "string"}
            }
        },
        "models.StationEvent": {
            "type": "object",
            "properties": {
                "event_id": {"type": "string"},
                "occurred_at": {"type": "string"},
                "type": {"type": "string", "example": "ALERT"},
                "description": {"type": "string", "example": "Alert: poor posture!"},
                "metadata": {}
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
	Title:            "Wellbeing Station API",
	Description:      "Read-only status API of the desk wellbeing station.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
