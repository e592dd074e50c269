package app

import (
	"testing"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/config"
	"github.com/stretchr/testify/require"
)

func TestDatabaseURL(t *testing.T) {
	cfg := &config.Config{DBUrl: "postgres://society:secret@db:5432/society"}
	u, err := databaseURL(cfg)
	require.NoError(t, err)
	require.Equal(t, cfg.DBUrl, u)

	cfg.LDFlag_UsingIsolatedSchema = true
	_, err = databaseURL(cfg)
	require.Error(t, err, "isolated schema needs a runner id and run number")

	cfg.UniqueRunnerID, cfg.UniqueRunNumber = "Runner", "42"
	u, err = databaseURL(cfg)
	require.NoError(t, err)
	require.Equal(t, "postgres://runner-42:secret@db:5432/society?application_name=runner-42", u)
}

func TestConnectWithBackoffRejectsBadURL(t *testing.T) {
	_, err := connectWithBackoff("housekeeping-service", "::not a url", 1, 0)
	require.Error(t, err)
}
