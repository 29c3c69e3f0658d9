package main

import (
	"context"
	"flag"
	"os"
	"rkhub/config"
	"rkhub/di"
	"rkhub/internal/domains/admin/model/dto"
	"rkhub/shared/constant"
	"rkhub/shared/logger"
	"rkhub/shared/timezone"

	"github.com/rs/zerolog/log"
)

const passwordEnv = "ADMIN_PASSWORD"

func main() {
	logger.InitLogger()

	email := flag.String("email", "", "admin email address")
	role := flag.String("role", constant.RoleAdmin, "admin role: superadmin or admin")
	flag.Parse()

	password := os.Getenv(passwordEnv)
	if *email == "" || password == "" {
		log.Fatal().Msgf("usage: %s=<password> admin -email <email> [-role superadmin|admin]", passwordEnv)
	}

	cfg := config.Get()
	logger.Configure(cfg)
	timezone.Configure(cfg)

	svc := di.InitializeAdminService()

	res, err := svc.Create(context.Background(), dto.CreateAdminRequest{
		Email:    *email,
		Password: password,
		Role:     *role,
	})
	if err != nil {
		log.Fatal().Err(err).Str("email", *email).Msg("Failed to create admin")
	}

	log.Info().Str("id", res.ID).Str("email", res.Email).Str("role", res.Role).Msg("Admin created")
}
