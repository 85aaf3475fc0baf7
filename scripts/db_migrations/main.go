package main

import (
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	server_config "github.com/carson-networks/finance-tracker/internal/config"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

func main() {
	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}
	logger := logging.SetupLogging(env.LogLevel)

	db, err := sql.Open("postgres", env.PostgresDSN())
	if err != nil {
		logger.WithError(err).Fatal("sql.Open")
		return
	}

	result, err := storage.RunMigrations(db)
	if err != nil {
		logger.WithError(err).Fatal("storage.RunMigrations")
		return
	}

	logger.WithFields(logrus.Fields{
		"preMigrationVersion":  result.PreviousVersion,
		"postMigrationVersion": result.CurrentVersion,
	}).Info("Migration status")
}
