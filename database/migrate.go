package database

import (
	"context"
	"embed"
	"fmt"
	"path"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    name       TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type migrationFile struct {
	name string
	data []byte
}

// RunMigrations applies every embedded migration that has not been recorded in
// schema_migrations, in file name order. It returns the names it applied.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	files, err := loadMigrations()
	if err != nil {
		return nil, err
	}

	if _, err := pool.Exec(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	var applied []string
	for _, mf := range files {
		var exists bool
		err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, mf.name).Scan(&exists)
		if err != nil {
			return applied, fmt.Errorf("check migration %s: %w", mf.name, err)
		}
		if exists || len(mf.data) == 0 {
			continue
		}

		transactor := NewDBTransactor(pool)
		err = transactor.WithTransaction(ctx, func(ctx context.Context) error {
			tx, err := GetTx(ctx)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, string(mf.data)); err != nil {
				return fmt.Errorf("exec migration %s: %w", mf.name, err)
			}
			_, err = tx.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, mf.name)
			return err
		})
		if err != nil {
			return applied, err
		}
		applied = append(applied, mf.name)
	}

	return applied, nil
}

func loadMigrations() ([]migrationFile, error) {
	entries, err := embeddedMigrations.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	var files []migrationFile
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		content, err := embeddedMigrations.ReadFile(path.Join("migrations", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read embedded migration %s: %w", entry.Name(), err)
		}
		files = append(files, migrationFile{name: entry.Name(), data: content})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].name < files[j].name })
	return files, nil
}
