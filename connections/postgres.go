package connections

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

var (
	pgPool     *pgxpool.Pool
	pgPoolOnce sync.Once
)

func connString() string {
	host := os.Getenv("PG_HOST")
	port := os.Getenv("PG_PORT")
	user := os.Getenv("PG_USER")
	password := os.Getenv("PG_PASSWORD")
	database := os.Getenv("PG_DATABASE")
	poolMax := os.Getenv("PG_POOL_MAX")

	if poolMax == "" {
		poolMax = "10"
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?pool_max_conns=%s",
		user, password, host, port, database, poolMax,
	)
}

// Postgres returns the PostgreSQL connection pool
func Postgres() *pgxpool.Pool {
	pgPoolOnce.Do(func() {
		var err error
		pgPool, err = pgxpool.New(context.Background(), connString())
		if err != nil {
			panic(fmt.Sprintf("Unable to connect to PostgreSQL: %v", err))
		}
	})
	return pgPool
}

// StdDB opens a database/sql handle over the pgx driver. The migration
// runner needs the database/sql interface.
func StdDB() (*sql.DB, error) {
	cfg, err := pgxpool.ParseConfig(connString())
	if err != nil {
		return nil, err
	}
	return stdlib.OpenDB(*cfg.ConnConfig), nil
}

// ClosePostgres closes the PostgreSQL connection pool
func ClosePostgres() {
	if pgPool != nil {
		pgPool.Close()
	}
}
