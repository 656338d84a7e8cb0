package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/database/postgres"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/migration"
	"github.com/vfg2006/marketing-metrics-api/internal/config"
)

// Aplica as migrações pendentes no banco configurado em DATABASE_*
func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.Info("Iniciando script de migração...")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar configuração")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar no banco")
	}
	defer conn.Close()

	startTime := time.Now()
	applied, err := migration.Apply(ctx, conn, migration.Migrations)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar migrações")
	}

	logrus.WithFields(logrus.Fields{
		"applied":  applied,
		"duration": time.Since(startTime).String(),
	}).Info("Migração concluída")
}
