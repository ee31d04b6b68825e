// Aplica las migraciones SQL embebidas contra la base configurada.
// Registra cada archivo aplicado en schema_migrations para no repetirlo.
package main

import (
	"context"
	"embed"
	"sort"

	"github.com/jhoicas/Repuestos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Repuestos-api/pkg/config"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename    TEXT PRIMARY KEY,
			executed_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		log.Fatal().Err(err).Msg("crear tabla schema_migrations")
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		log.Fatal().Err(err).Msg("leer migraciones embebidas")
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		var applied bool
		err := pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE filename = $1)`, name,
		).Scan(&applied)
		if err != nil {
			log.Fatal().Err(err).Str("file", name).Msg("consultar historial")
		}
		if applied {
			log.Debug().Str("file", name).Msg("migración ya aplicada")
			continue
		}

		sqlBytes, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			log.Fatal().Err(err).Str("file", name).Msg("leer migración")
		}

		// Cada migración y su registro en el historial van en una sola transacción.
		tx, err := pool.Begin(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("begin")
		}
		if _, err := tx.Exec(ctx, string(sqlBytes)); err != nil {
			_ = tx.Rollback(ctx)
			log.Fatal().Err(err).Str("file", name).Msg("ejecutar migración")
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO schema_migrations (filename) VALUES ($1)`, name); err != nil {
			_ = tx.Rollback(ctx)
			log.Fatal().Err(err).Str("file", name).Msg("registrar migración")
		}
		if err := tx.Commit(ctx); err != nil {
			log.Fatal().Err(err).Str("file", name).Msg("commit")
		}
		log.Info().Str("file", name).Msg("migración aplicada")
	}

	log.Info().Msg("migraciones al día")
}
