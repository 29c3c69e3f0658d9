package main

import (
	"rkhub/config"
	"rkhub/di"
	"rkhub/helper"
	"rkhub/shared/logger"
	"rkhub/shared/timezone"

	"github.com/rs/zerolog/log"
)

//go:generate go run github.com/swaggo/swag/cmd/swag init -g cmd/app/main.go -d ../../ -o ../../docs

// @title RK Hub API
// @version 1.0
// @description Public site and admin panel backend for RK Hub: updates, gallery, admission enquiries.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	logger.InitLogger()

	cfg := config.Get()
	logger.Configure(cfg)
	timezone.Configure(cfg)

	if err := helper.AutoMigrate(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	http := di.InitializeService()
	http.Serve()
}
