package service

import (
	"io"
	"log/slog"
	"testing"

	"hostel_complaints/internal/metrics"
	"hostel_complaints/internal/repository"
	"hostel_complaints/internal/utils"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMockStore(t *testing.T) (pgxmock.PgxPoolIface, *repository.Store) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, repository.NewStore(mock)
}

func newTestMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

func newTestJWT() *utils.JWTUtil {
	return utils.NewJWTUtil(testSecret, 1)
}

func intPtr(i int) *int {
	return &i
}

func newForeignJWT() *utils.JWTUtil {
	return utils.NewJWTUtil("someone-elses-secret", 1)
}
