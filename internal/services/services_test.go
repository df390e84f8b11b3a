package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/max-ramos-rod/nda-backend/internal/db"
	"github.com/max-ramos-rod/nda-backend/internal/db/models"
	"github.com/max-ramos-rod/nda-backend/internal/stellar"
	"github.com/max-ramos-rod/nda-backend/pkg/metrics"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the full service stack against a throwaway sqlite
// database and the offline Stellar client.
type testEnv struct {
	db     *gorm.DB
	mock   *stellar.MockClient
	users  *UserService
	grants *GrantService
	access *AccessService
	vault  *VaultService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "vault_test.db")),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))

	log := zap.NewNop()
	collector := metrics.NewMetricsCollector()
	mock := stellar.NewMockClient(log)

	users := NewUserService(database, mock, log, collector)
	grants := NewGrantService(database, log)
	access := NewAccessService(database, log)
	vault := NewVaultService(database, users, grants, access, mock, log, collector)

	return &testEnv{
		db:     database,
		mock:   mock,
		users:  users,
		grants: grants,
		access: access,
		vault:  vault,
	}
}

func (env *testEnv) registerUser(t *testing.T, username string, role models.UserRole) *models.User {
	t.Helper()
	user, err := env.users.Register(context.Background(), username, "s3cret-pass", role)
	require.NoError(t, err)
	return user
}
