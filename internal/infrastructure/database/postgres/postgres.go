package postgres

import (
	"fmt"
	"sync"

	"github.com/XSAM/otelsql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

var lock = &sync.Mutex{}
var db *sqlx.DB

func GetDBInstance(user, password, host, port, dbName string) (*sqlx.DB, error) {
	lock.Lock()
	defer lock.Unlock()

	if db != nil {
		log.Info().Str("component", "GetDBInstance").Msg("instance is already created")
		return db, nil
	}

	sqlDB, err := otelsql.Open("postgres",
		fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbName),
		otelsql.WithAttributes(
			semconv.DBSystemPostgreSQL,
			semconv.DBNameKey.String(dbName),
		),
		otelsql.WithSpanOptions(otelsql.SpanOptions{
			DisableQuery: true,
		}),
	)
	if err != nil {
		return nil, err
	}

	conn := sqlx.NewDb(sqlDB, "postgres")
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}

	db = conn
	log.Info().Str("component", "GetDBInstance").Str("host", host).Str("database", dbName).Msg("database connected")

	return db, nil
}
