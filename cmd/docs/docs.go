// Package docs holds the swagger document served by gin-swagger.
// Regenerate with: swag init -g cmd/farm_backend/main.go -o cmd/docs
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
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "User login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "login", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/clotures": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["clotures"],
                "summary": "List period closures of a year",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Year", "name": "annee", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ClotureResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["clotures"],
                "summary": "Open a period closure",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "cloture", "required": true, "schema": {"$ref": "#/definitions/dto.CreateClotureRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.ClotureResponse"}},
                    "409": {"description": "A closure already exists for this month", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/clotures/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["clotures"],
                "summary": "Export the closures of a year",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Year", "name": "annee", "in": "query", "required": true},
                    {"enum": ["xlsx"], "type": "string", "description": "Export format", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ExportFile"}}
                }
            }
        },
        "/clotures/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["clotures"],
                "summary": "Get a period closure",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Closure ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ClotureResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/clotures/{id}/valider": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["clotures"],
                "summary": "Validate a period closure",
                "parameters": [
                    {"type": "string", "description": "Closure ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ClotureResponse"}},
                    "409": {"description": "Closure is not open", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/clotures/{id}/cloturer": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["clotures"],
                "summary": "Close a period closure",
                "parameters": [
                    {"type": "string", "description": "Closure ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ClotureResponse"}},
                    "409": {"description": "Closure is not validated", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.ExportFile": {
            "type": "object",
            "properties": {
                "content_base64": {"type": "string"},
                "filename": {"type": "string"},
                "mime_type": {"type": "string"}
            }
        },
        "dto.AuthResponse": {
            "type": "object",
            "properties": {
                "expiresAt": {"type": "string"},
                "userData": {"$ref": "#/definitions/dto.UserResponse"},
                "userToken": {"type": "string"}
            }
        },
        "dto.ClotureResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "mois": {"type": "integer"},
                "annee": {"type": "integer"},
                "statut": {"type": "string", "enum": ["ouverte", "validee", "cloturee"]},
                "chiffre_affaires": {"type": "number"},
                "total_achats": {"type": "number"},
                "charges_personnel": {"type": "number"},
                "autres_charges": {"type": "number"},
                "total_charges": {"type": "number"},
                "resultat_brut": {"type": "number"},
                "variation_tresorerie": {"type": "number"},
                "creances_clients": {"type": "number"},
                "dettes_fournisseurs": {"type": "number"},
                "cree_par_nom": {"type": "string"},
                "date_creation": {"type": "string"},
                "valide_par_nom": {"type": "string"},
                "date_validation": {"type": "string"},
                "cloture_par_nom": {"type": "string"},
                "date_cloture": {"type": "string"},
                "lecture_seule": {"type": "boolean"},
                "actions": {
                    "type": "object",
                    "properties": {
                        "validate": {"type": "boolean"},
                        "close": {"type": "boolean"}
                    }
                }
            }
        },
        "dto.CreateClotureRequest": {
            "type": "object",
            "required": ["annee", "mois"],
            "properties": {
                "annee": {"type": "integer", "maximum": 2100, "minimum": 2000},
                "mois": {"type": "integer", "maximum": 12, "minimum": 1}
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "dto.UserResponse": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "organisationID": {"type": "string"},
                "role": {"type": "string", "enum": ["ADMIN", "COMPTABLE", "LECTEUR"]},
                "userID": {"type": "string"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
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
	Title:            "Farm Management Backend API",
	Description:      "Monthly period close (cloture) of a farm ledger.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
