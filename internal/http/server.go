package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/warzonebot/warzone-core/internal/http/handlers"
	"github.com/warzonebot/warzone-core/internal/http/middleware"
	"github.com/warzonebot/warzone-core/internal/infrastructure/auth"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
)

// Server represents the HTTP server
type Server struct {
	router         *gin.Engine
	jwtService     auth.JWTService
	gatewayKey     string
	userHandler    *handlers.UserHandler
	economyHandler *handlers.EconomyHandler
	shopHandler    *handlers.ShopHandler
	combatHandler  *handlers.CombatHandler
	boxHandler     *handlers.BoxHandler
	adminHandler   *handlers.AdminHandler
	errorHandler   *middleware.ErrorHandler
	port           string
}

// NewServer creates a new HTTP server
func NewServer(
	jwtService auth.JWTService,
	gatewayKey string,
	userHandler *handlers.UserHandler,
	economyHandler *handlers.EconomyHandler,
	shopHandler *handlers.ShopHandler,
	combatHandler *handlers.CombatHandler,
	boxHandler *handlers.BoxHandler,
	adminHandler *handlers.AdminHandler,
	errorHandler *middleware.ErrorHandler,
	log *logger.Logger,
	port string,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(errorHandler.RequestIDMiddleware())
	router.Use(errorHandler.TimeoutMiddleware(30 * time.Second))
	router.Use(errorHandler.RecoveryMiddleware())
	router.Use(middleware.RequestLogger(log))

	server := &Server{
		router:         router,
		jwtService:     jwtService,
		gatewayKey:     gatewayKey,
		userHandler:    userHandler,
		economyHandler: economyHandler,
		shopHandler:    shopHandler,
		combatHandler:  combatHandler,
		boxHandler:     boxHandler,
		adminHandler:   adminHandler,
		errorHandler:   errorHandler,
		port:           port,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all the routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.router.Group("/api/v1")
	{
		gateway := v1.Group("/")
		gateway.Use(middleware.GatewayKeyMiddleware(s.gatewayKey))
		{
			gateway.POST("/auth/token", s.userHandler.Token)
			gateway.POST("/users/register", s.userHandler.Register)
		}

		protected := v1.Group("/")
		protected.Use(middleware.JWTMiddleware(s.jwtService))
		{
			userRoutes := protected.Group("/users")
			{
				userRoutes.GET("/me", s.userHandler.GetProfile)
			}

			economyRoutes := protected.Group("/economy")
			{
				economyRoutes.POST("/credit", s.economyHandler.Credit)
				economyRoutes.POST("/debit", s.economyHandler.Debit)
			}

			minerRoutes := protected.Group("/miner")
			{
				minerRoutes.POST("/claim", s.economyHandler.ClaimMiner)
				minerRoutes.POST("/upgrade", s.economyHandler.UpgradeMiner)
			}

			shopRoutes := protected.Group("/shop")
			{
				shopRoutes.POST("/purchase", s.shopHandler.Purchase)
				shopRoutes.POST("/defense", s.shopHandler.UpgradeDefense)
			}

			combatRoutes := protected.Group("/combat")
			{
				combatRoutes.POST("/attack", s.combatHandler.Attack)
			}

			boxRoutes := protected.Group("/boxes")
			{
				boxRoutes.POST("/open", s.boxHandler.Open)
			}

			adminRoutes := protected.Group("/admin")
			{
				adminRoutes.POST("/adjust", s.adminHandler.Adjust)
				adminRoutes.POST("/level", s.adminHandler.SetLevel)
				adminRoutes.POST("/gift", s.adminHandler.Gift)
				adminRoutes.GET("/stats", s.adminHandler.Stats)
			}
		}
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.port)
	return s.router.Run(addr)
}
