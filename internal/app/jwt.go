package app

import (
	"github.com/warzonebot/warzone-core/internal/config"
	"github.com/warzonebot/warzone-core/internal/infrastructure/auth"
)

func (a *application) InitJWTService() auth.JWTService {
	cfg := &config.JWTConfig{
		Secret:     a.config.JWT.Secret,
		Expiry:     a.config.JWT.Expiry,
		GatewayKey: a.config.JWT.GatewayKey,
	}
	return auth.NewJWTService(cfg)
}
