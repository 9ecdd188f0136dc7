package app

import (
	"github.com/warzonebot/warzone-core/internal/catalog"
	"github.com/warzonebot/warzone-core/internal/infrastructure/rng"
)

func (a *application) InitCatalog() *catalog.Catalog {
	return catalog.Default()
}

func (a *application) InitRoller() rng.Roller {
	return rng.New()
}
