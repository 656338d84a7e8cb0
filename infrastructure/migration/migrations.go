package migration

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/database/postgres"
)

// Migration é um passo versionado do schema. Versões são aplicadas em ordem crescente.
type Migration struct {
	Version    int
	Name       string
	Statements []string
}

const createSchemaMigrations = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version    INTEGER PRIMARY KEY,
	name       TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

var Migrations = []Migration{
	{
		Version: 1,
		Name:    "create_daily_metrics",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS daily_metrics (
				id          BIGSERIAL PRIMARY KEY,
				customer_id TEXT NOT NULL,
				date        DATE NOT NULL,
				metrics     JSONB NOT NULL,
				partial     BOOLEAN NOT NULL DEFAULT FALSE,
				created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT daily_metrics_customer_date_key UNIQUE (customer_id, date)
			)`,
		},
	},
	{
		Version: 2,
		Name:    "index_daily_metrics_partial",
		Statements: []string{
			`CREATE INDEX IF NOT EXISTS daily_metrics_partial_idx ON daily_metrics (customer_id, date) WHERE partial`,
		},
	},
}

// Pending devolve as migrações ainda não aplicadas, em ordem
func Pending(migrations []Migration, applied map[int]bool) []Migration {
	pending := make([]Migration, 0)
	for _, m := range migrations {
		if !applied[m.Version] {
			pending = append(pending, m)
		}
	}
	return pending
}

// Apply cria a tabela de controle e aplica cada migração pendente na sua própria transação
func Apply(ctx context.Context, conn postgres.Conn, migrations []Migration) (int, error) {
	if _, err := conn.ExecContext(ctx, createSchemaMigrations); err != nil {
		return 0, fmt.Errorf("erro ao criar tabela schema_migrations: %w", err)
	}

	applied, err := appliedVersions(ctx, conn)
	if err != nil {
		return 0, err
	}

	pending := Pending(migrations, applied)
	for _, m := range pending {
		err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
			for _, statement := range m.Statements {
				if _, err := tx.ExecContext(ctx, statement); err != nil {
					return err
				}
			}

			query, args, err := buildRecordMigration(m)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, query, args...)
			return err
		})
		if err != nil {
			return 0, fmt.Errorf("erro ao aplicar migração %d (%s): %w", m.Version, m.Name, err)
		}

		logrus.WithFields(logrus.Fields{
			"version": m.Version,
			"name":    m.Name,
		}).Info("migration: applied")
	}

	return len(pending), nil
}

func appliedVersions(ctx context.Context, conn postgres.Queryer) (map[int]bool, error) {
	rows, err := conn.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("erro ao listar migrações aplicadas: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

func buildRecordMigration(m Migration) (string, []any, error) {
	return squirrel.
		Insert("schema_migrations").
		Columns("version", "name").
		Values(m.Version, m.Name).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}
