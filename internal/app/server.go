package app

import (
	"github.com/warzonebot/warzone-core/internal/http"
	"github.com/warzonebot/warzone-core/internal/http/handlers"
	"github.com/warzonebot/warzone-core/internal/http/middleware"
	"github.com/warzonebot/warzone-core/internal/infrastructure/auth"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
)

// InitHTTPServer initializes the HTTP server with all dependencies
func (a *application) InitHTTPServer(
	jwtService auth.JWTService,
	userHandler *handlers.UserHandler,
	economyHandler *handlers.EconomyHandler,
	shopHandler *handlers.ShopHandler,
	combatHandler *handlers.CombatHandler,
	boxHandler *handlers.BoxHandler,
	adminHandler *handlers.AdminHandler,
	errorHandler *middleware.ErrorHandler,
	log *logger.Logger,
) *http.Server {
	port := a.config.Server.Port
	if port == "" {
		port = "8080"
	}

	return http.NewServer(
		jwtService,
		a.config.JWT.GatewayKey,
		userHandler,
		economyHandler,
		shopHandler,
		combatHandler,
		boxHandler,
		adminHandler,
		errorHandler,
		log,
		port,
	)
}

// StartHTTPServer runs the server; it blocks the fx invoke goroutine.
func (a *application) StartHTTPServer(server *http.Server) {
	go func() {
		if err := server.Start(); err != nil {
			panic(err)
		}
	}()
}
