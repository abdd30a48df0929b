package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/primeitclub/ict-meetup-api/config"
	"github.com/primeitclub/ict-meetup-api/internal/app"
	"github.com/rs/zerolog/log"

	postgresDriver "github.com/primeitclub/ict-meetup-api/internal/infrastructure/database/postgres"
)

//	@title			ICT Meetup API
//	@version		1.0
//	@description	Administrative API for flagship event versions, users and audit logs.
//	@BasePath		/api
func main() {
	config := config.CreateNewConfig()
	db, err := postgresDriver.GetDBInstance(config.PostgreSQLConfig.DBUsername, config.PostgreSQLConfig.DBPassword, config.PostgreSQLConfig.DBHost, config.PostgreSQLConfig.DBPort, config.PostgreSQLConfig.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to the database")
	}

	server := app.App{
		DB:     db,
		Config: config,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Info().Msg("Shutting down")
		if err := server.StopServer(); err != nil {
			log.Error().Err(err).Msg("Failed to stop server cleanly")
		}
	}()

	server.Start()
}
