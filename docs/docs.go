// Package docs registers the OpenAPI document served under /swagger/.
// The document is maintained by hand alongside the handler annotations.
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
        "/wallet/create": {"post": {"tags": ["wallet"], "summary": "Create wallet", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.CreateRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.CreateResponse"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}}}},
        "/wallet/import": {"post": {"tags": ["wallet"], "summary": "Import wallet", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.ImportRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.AddressResponse"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}}}},
        "/wallet/unlock": {"post": {"tags": ["wallet"], "summary": "Unlock wallet", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.PasswordRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.AddressResponse"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}}}},
        "/wallet/lock": {"post": {"tags": ["wallet"], "summary": "Lock wallet", "produces": ["application/json"],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.MessageResponse"}}}}},
        "/wallet/status": {"get": {"tags": ["wallet"], "summary": "Wallet status", "produces": ["application/json"],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.StatusResponse"}}}}},
        "/wallet/mnemonic": {"get": {"tags": ["wallet"], "summary": "Preview a fresh mnemonic", "produces": ["application/json"],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.MnemonicResponse"}}}}},
        "/wallet/addresses": {"post": {"tags": ["wallet"], "summary": "Derive address", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.DeriveRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.AddressResponse"}}, "423": {"description": "Locked", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}}}},
        "/wallet/addresses/select": {"post": {"tags": ["wallet"], "summary": "Select address", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.SelectAddressRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.AddressResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}}}},
        "/wallet/export": {"post": {"tags": ["wallet"], "summary": "Export mnemonic", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.PasswordRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.MnemonicResponse"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}}}},
        "/wallet/password": {"post": {"tags": ["wallet"], "summary": "Change password", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.ChangePasswordRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.MessageResponse"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}}}},
        "/wallet/remove": {"post": {"tags": ["wallet"], "summary": "Remove wallet", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.PasswordRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.MessageResponse"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}}}},
        "/wallet/receive": {"get": {"tags": ["wallet"], "summary": "Receive", "produces": ["application/json"],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ReceiveResponse"}}, "423": {"description": "Locked", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}}}},
        "/chains": {
            "get": {"tags": ["chains"], "summary": "List networks", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ChainsResponse"}}}},
            "post": {"tags": ["chains"], "summary": "Add network", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.Chain"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Chain"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}}}},
        "/chains/select": {"post": {"tags": ["chains"], "summary": "Select network", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.SelectChainRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Chain"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}}}},
        "/chains/remove": {"post": {"tags": ["chains"], "summary": "Remove custom network", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.SelectChainRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.MessageResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}}}},
        "/tokens": {
            "get": {"tags": ["tokens"], "summary": "List tokens", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.TokensResponse"}}}},
            "post": {"tags": ["tokens"], "summary": "Add token", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.AddTokenRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Token"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}}}},
        "/tokens/remove": {"post": {"tags": ["tokens"], "summary": "Remove token", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.RemoveTokenRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.MessageResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}}}},
        "/balance": {"get": {"tags": ["balance"], "summary": "Get balances", "produces": ["application/json"],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.BalanceResponse"}}, "423": {"description": "Locked", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}}}},
        "/send/estimate": {"post": {"tags": ["send"], "summary": "Estimate gas", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.EstimateRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.EstimateResponse"}}}}},
        "/send/max": {"post": {"tags": ["send"], "summary": "Max sendable", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "schema": {"$ref": "#/definitions/model.MaxRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.MaxResponse"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}}}},
        "/send": {"post": {"tags": ["send"], "summary": "Send", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.SendRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SendResponse"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}, "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}, "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}}}},
        "/transactions": {"get": {"tags": ["transactions"], "summary": "Get sent transactions", "produces": ["application/json"],
            "parameters": [
                {"type": "integer", "name": "chainId", "in": "query"},
                {"type": "string", "name": "symbol", "in": "query"},
                {"type": "string", "name": "to", "in": "query"},
                {"type": "string", "name": "hash", "in": "query"},
                {"type": "string", "name": "status", "in": "query"},
                {"type": "string", "name": "since", "in": "query"},
                {"type": "string", "name": "until", "in": "query"}
            ],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.HistoryResponse"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}}}}
    },
    "definitions": {
        "model.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}, "code": {"type": "string"}}},
        "model.MessageResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}}},
        "model.CreateRequest": {"type": "object", "required": ["password", "confirmPassword"], "properties": {"password": {"type": "string"}, "confirmPassword": {"type": "string"}}},
        "model.CreateResponse": {"type": "object", "properties": {"mnemonic": {"type": "string"}, "address": {"type": "string"}}},
        "model.ImportRequest": {"type": "object", "required": ["mnemonic", "password", "confirmPassword"], "properties": {"mnemonic": {"type": "string"}, "password": {"type": "string"}, "confirmPassword": {"type": "string"}}},
        "model.PasswordRequest": {"type": "object", "required": ["password"], "properties": {"password": {"type": "string"}}},
        "model.ChangePasswordRequest": {"type": "object", "required": ["oldPassword", "newPassword", "confirmPassword"], "properties": {"oldPassword": {"type": "string"}, "newPassword": {"type": "string"}, "confirmPassword": {"type": "string"}}},
        "model.DerivedAddress": {"type": "object", "properties": {"index": {"type": "integer"}, "address": {"type": "string"}}},
        "model.DeriveRequest": {"type": "object", "required": ["index"], "properties": {"index": {"type": "integer"}}},
        "model.SelectAddressRequest": {"type": "object", "required": ["address"], "properties": {"address": {"type": "string"}}},
        "model.AddressResponse": {"type": "object", "properties": {"address": {"type": "string"}, "addresses": {"type": "array", "items": {"$ref": "#/definitions/model.DerivedAddress"}}}},
        "model.MnemonicResponse": {"type": "object", "properties": {"mnemonic": {"type": "string"}}},
        "model.StatusResponse": {"type": "object", "properties": {"exists": {"type": "boolean"}, "unlocked": {"type": "boolean"}, "currentAddress": {"type": "string"}, "addresses": {"type": "array", "items": {"$ref": "#/definitions/model.DerivedAddress"}}, "chain": {"$ref": "#/definitions/model.Chain"}}},
        "model.ReceiveResponse": {"type": "object", "properties": {"address": {"type": "string"}, "QR": {"type": "string"}}},
        "model.Chain": {"type": "object", "required": ["name", "chainId", "rpcUrl", "ticker", "explorerUrl"], "properties": {"name": {"type": "string"}, "chainId": {"type": "integer"}, "rpcUrl": {"type": "string"}, "ticker": {"type": "string"}, "explorerUrl": {"type": "string"}, "logoUrl": {"type": "string"}, "priceId": {"type": "string"}, "custom": {"type": "boolean"}}},
        "model.SelectChainRequest": {"type": "object", "required": ["chainId"], "properties": {"chainId": {"type": "integer"}}},
        "model.ChainsResponse": {"type": "object", "properties": {"current": {"type": "integer"}, "chains": {"type": "array", "items": {"$ref": "#/definitions/model.Chain"}}}},
        "model.Token": {"type": "object", "properties": {"name": {"type": "string"}, "symbol": {"type": "string"}, "address": {"type": "string"}, "decimals": {"type": "integer"}}},
        "model.AddTokenRequest": {"type": "object", "required": ["name", "symbol", "address"], "properties": {"name": {"type": "string"}, "symbol": {"type": "string"}, "address": {"type": "string"}, "decimals": {"type": "integer"}}},
        "model.RemoveTokenRequest": {"type": "object", "required": ["symbol"], "properties": {"symbol": {"type": "string"}}},
        "model.TokensResponse": {"type": "object", "properties": {"chainId": {"type": "integer"}, "tokens": {"type": "array", "items": {"$ref": "#/definitions/model.Token"}}}},
        "model.AssetBalance": {"type": "object", "properties": {"symbol": {"type": "string"}, "address": {"type": "string"}, "decimals": {"type": "integer"}, "raw": {"type": "string"}, "amount": {"type": "string"}, "display": {"type": "string"}, "error": {"type": "string"}}},
        "model.BalanceResponse": {"type": "object", "properties": {"address": {"type": "string"}, "chainId": {"type": "integer"}, "native": {"$ref": "#/definitions/model.AssetBalance"}, "tokens": {"type": "array", "items": {"$ref": "#/definitions/model.AssetBalance"}}, "fiatValue": {"type": "string"}, "fiatRate": {"type": "string"}, "fiatCurrency": {"type": "string"}}},
        "model.EstimateRequest": {"type": "object", "required": ["toAddress", "amount"], "properties": {"toAddress": {"type": "string"}, "amount": {"type": "string"}, "token": {"type": "string"}}},
        "model.EstimateResponse": {"type": "object", "properties": {"gasLimit": {"type": "integer"}, "gasPriceGwei": {"type": "string"}, "estimated": {"type": "boolean"}, "error": {"type": "string"}}},
        "model.MaxRequest": {"type": "object", "properties": {"gasLimit": {"type": "integer"}, "gasPriceGwei": {"type": "string"}}},
        "model.MaxResponse": {"type": "object", "properties": {"amount": {"type": "string"}, "fee": {"type": "string"}}},
        "model.SendRequest": {"type": "object", "required": ["toAddress", "amount"], "properties": {"toAddress": {"type": "string"}, "amount": {"type": "string"}, "token": {"type": "string"}, "gasLimit": {"type": "integer"}, "gasPriceGwei": {"type": "string"}}},
        "model.SendResponse": {"type": "object", "properties": {"txHash": {"type": "string"}, "status": {"type": "string"}, "explorerUrl": {"type": "string"}}},
        "model.Transaction": {"type": "object", "properties": {"hash": {"type": "string"}, "chainId": {"type": "integer"}, "from": {"type": "string"}, "to": {"type": "string"}, "amount": {"type": "string"}, "symbol": {"type": "string"}, "status": {"type": "string"}, "timestamp": {"type": "string"}, "explorerUrl": {"type": "string"}}},
        "model.HistoryResponse": {"type": "object", "properties": {"transactions": {"type": "array", "items": {"$ref": "#/definitions/model.Transaction"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "EVM Wallet API",
	Description:      "Local single-user wallet for EVM chains",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
