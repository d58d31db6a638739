// Package docs registra a especificação OpenAPI servida em /swagger/.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Registra um novo operador",
            "parameters": [{"in": "body", "name": "registration", "required": true, "schema": {"$ref": "#/definitions/domain.Registration"}}],
            "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Operator"}},
                          "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                          "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                          "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Autentica um operador e retorna um JWT",
            "parameters": [{"in": "body", "name": "login", "required": true, "schema": {"$ref": "#/definitions/domain.Credentials"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.TokenResponse"}},
                          "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}}},
        "/warehouses": {
            "get": {"tags": ["warehouses"], "summary": "Lista os armazéns na ordem do registro", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Warehouse"}}}}},
            "post": {"tags": ["warehouses"], "summary": "Cadastra um armazém", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "warehouse", "required": true, "schema": {"$ref": "#/definitions/domain.CreateWarehouseRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Warehouse"}},
                              "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                              "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}}},
        "/warehouses/{id}": {
            "get": {"tags": ["warehouses"], "summary": "Busca um armazém com seus itens", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Warehouse"}},
                              "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}},
            "delete": {"tags": ["warehouses"], "summary": "Remove um armazém e seus itens", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"204": {"description": "No Content"},
                              "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}}},
        "/warehouses/{id}/items": {"post": {"tags": ["items"], "summary": "Aloca um item em um armazém", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true},
                           {"in": "body", "name": "item", "required": true, "schema": {"$ref": "#/definitions/domain.AddItemRequest"}}],
            "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Item"}},
                          "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}}},
        "/warehouses/{id}/items/{itemID}/deactivate": {"patch": {"tags": ["items"], "summary": "Desativa um item", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true},
                           {"in": "path", "name": "itemID", "type": "integer", "required": true}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Item"}}}}},
        "/capacity/available-warehouse": {"get": {"tags": ["capacity"], "summary": "Primeiro armazém que comporta o item em todos os dias", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "query", "name": "start", "type": "string", "required": true},
                           {"in": "query", "name": "end", "type": "string", "required": true},
                           {"in": "query", "name": "height", "type": "number", "required": true},
                           {"in": "query", "name": "width", "type": "number", "required": true},
                           {"in": "query", "name": "length", "type": "number", "required": true}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.AvailableWarehouseResponse"}},
                          "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                          "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}}},
        "/capacity/fully-utilized": {"get": {"tags": ["capacity"], "summary": "Dias com capacidade disponível zero ou negativa", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "query", "name": "start", "type": "string", "required": true},
                           {"in": "query", "name": "end", "type": "string", "required": true}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.FullyUtilizedResponse"}}}}},
        "/capacity/available": {"get": {"tags": ["capacity"], "summary": "Capacidade disponível agregada por dia", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "query", "name": "start", "type": "string", "required": true},
                           {"in": "query", "name": "end", "type": "string", "required": true}],
            "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.AvailableCapacityEntry"}}}}}},
        "/capacity/least-used": {"get": {"tags": ["capacity"], "summary": "Armazém com menor uso em volume-dias", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "query", "name": "start", "type": "string", "required": true},
                           {"in": "query", "name": "end", "type": "string", "required": true}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.LeastUsedWarehouseResponse"}}}}},
        "/reports/latest": {"get": {"tags": ["reports"], "summary": "Último relatório de utilização", "security": [{"BearerAuth": []}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.UtilizationReport"}},
                          "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}}}
    },
    "definitions": {
        "domain.ThreeDRoom": {"type": "object", "properties": {"height": {"type": "number"}, "width": {"type": "number"}, "length": {"type": "number"}}},
        "domain.Item": {"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"},
            "dimensions": {"$ref": "#/definitions/domain.ThreeDRoom"}, "start_date": {"type": "string"}, "end_date": {"type": "string"},
            "is_active": {"type": "boolean"}, "created_at": {"type": "string"}}},
        "domain.Warehouse": {"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"},
            "capacity": {"$ref": "#/definitions/domain.ThreeDRoom"}, "items": {"type": "array", "items": {"$ref": "#/definitions/domain.Item"}},
            "created_at": {"type": "string"}, "updated_at": {"type": "string"}}},
        "domain.CreateWarehouseRequest": {"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"},
            "capacity": {"$ref": "#/definitions/domain.ThreeDRoom"}}},
        "domain.AddItemRequest": {"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"},
            "dimensions": {"$ref": "#/definitions/domain.ThreeDRoom"}, "start_date": {"type": "string"}, "end_date": {"type": "string"}}},
        "domain.AvailableWarehouseResponse": {"type": "object", "properties": {"warehouse_id": {"type": "integer"}, "found": {"type": "boolean"}}},
        "domain.LeastUsedWarehouseResponse": {"type": "object", "properties": {"warehouse_id": {"type": "integer"}, "found": {"type": "boolean"}}},
        "domain.FullyUtilizedResponse": {"type": "object", "properties": {"dates": {"type": "array", "items": {"type": "string"}}}},
        "domain.AvailableCapacityEntry": {"type": "object", "properties": {"date": {"type": "string"}, "available": {"type": "number"}}},
        "domain.DailyCapacity": {"type": "object", "properties": {"date": {"type": "string"}, "available": {"type": "number"}}},
        "domain.UtilizationReport": {"type": "object", "properties": {"id": {"type": "string"}, "generated_at": {"type": "string"},
            "start_date": {"type": "string"}, "end_date": {"type": "string"}, "warehouse_count": {"type": "integer"},
            "total_capacity": {"type": "number"}, "daily": {"type": "array", "items": {"$ref": "#/definitions/domain.DailyCapacity"}},
            "fully_utilized_dates": {"type": "array", "items": {"type": "string"}},
            "overbooked_dates": {"type": "array", "items": {"type": "string"}}, "least_used_warehouse": {"type": "integer"}}},
        "domain.Registration": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}, "role": {"type": "string"}}},
        "domain.Credentials": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "domain.Operator": {"type": "object", "properties": {"id": {"type": "string"}, "email": {"type": "string"}, "role": {"type": "string"},
            "created_at": {"type": "string"}, "updated_at": {"type": "string"}}},
        "domain.TokenResponse": {"type": "object", "properties": {"token": {"type": "string"}}},
        "domain.ErrorResponse": {"type": "object", "properties": {"code": {"type": "integer"}, "category": {"type": "string"}, "message": {"type": "string"}}}
    }
}`

// SwaggerInfo contém as informações exportadas da especificação.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "GoCapacity API",
	Description:      "Motor de capacidade volumétrica de armazéns: alocação, dias lotados, capacidade disponível e armazém menos usado.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
