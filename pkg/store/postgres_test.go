package store

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fleximart/retail-ingress/pkg/config"
)

func TestCloseLogsAndReleasesPool(t *testing.T) {
	// Open validates the DSN without dialing, so no server is needed.
	db, err := sqlx.Open("pgx", "host=localhost port=5432 user=u password=p dbname=d sslmode=disable")
	require.NoError(t, err)

	pg := &Postgres{
		db:     db,
		logger: zap.NewNop(),
		cfg:    &config.PostgresConfig{Host: "localhost", Port: 5432, Database: "d"},
	}
	require.NoError(t, pg.Close())
}
