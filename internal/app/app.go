package app

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/warzonebot/warzone-core/internal/config"
	"go.uber.org/fx"
)

// Application provides application level setup
type Application interface {
	Setup()
	GetContext() context.Context
}

// application represents context and configure file
type application struct {
	ctx    context.Context
	config *config.Config
}

// NewApplication creates a new application
func NewApplication(ctx context.Context) Application {
	return &application{ctx: ctx}
}

// GetContext returns application context
func (a *application) GetContext() context.Context {
	return a.ctx
}

// Setup creates a new fx application with all modules
func (a *application) Setup() {
	fmt.Println("[x] Starting Warzone Core Service...")

	path := flag.String("e", "./config", "env file directory")
	flag.Parse()

	err := a.setupViper(*path)
	if err != nil {
		log.Panic(err.Error())
	}

	app := fx.New(
		fx.Provide(
			a.InitLogger,
			a.InitDatabase,
			a.InitTxManager,
			a.InitRepository,
			a.InitUserLockManager,
			a.InitCatalog,
			a.InitRoller,
			a.InitJWTService,
			a.InitNotifier,
			a.InitOutboxProcessor,
			a.InitUserUseCase,
			a.InitEconomyUseCase,
			a.InitInventoryUseCase,
			a.InitCombatUseCase,
			a.InitBoxUseCase,
			a.InitAdminUseCase,
			a.InitUserHandler,
			a.InitEconomyHandler,
			a.InitShopHandler,
			a.InitCombatHandler,
			a.InitBoxHandler,
			a.InitAdminHandler,
			a.InitErrorHandler,
			a.InitHTTPServer,
		),
		fx.Invoke(a.StartOutboxProcessor, a.StartHTTPServer),
	)

	app.Run()
}
