// Package main Warzone Core API
//
// Warzone Core is the game economy and combat engine behind the Warzone
// front end. It owns the three player currencies, the missile, fighter and
// drone arsenals, defense structures, the passive ZP miner, attack
// resolution with loot and XP, and the randomized reward boxes.
//
//	Schemes: http, https
//	Host: localhost:8080
//	BasePath: /api/v1
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
//	Security:
//	- bearer
package main

import (
	"context"

	_ "github.com/warzonebot/warzone-core/docs"
	"github.com/warzonebot/warzone-core/internal/app"
)

// @title Warzone Core API Service
// @version 1.0
// @description Warzone Core is the game economy and combat engine behind the Warzone front end.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	ctx := context.Background()
	application := app.NewApplication(ctx)
	application.Setup()
}
