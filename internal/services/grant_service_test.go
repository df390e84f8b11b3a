package services

import (
	"context"
	"testing"

	"github.com/max-ramos-rod/nda-backend/internal/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAuthorizedFollowsRecordShare(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	const processID = "proc-1"
	const supplierKey = "GSUPPLIERKEY"

	authorized, err := env.grants.IsAuthorized(ctx, processID, supplierKey)
	require.NoError(t, err)
	assert.False(t, authorized, "no share recorded yet")

	share, err := env.grants.RecordShare(ctx, processID, supplierKey, "tx-hash-1")
	require.NoError(t, err)
	assert.NotEmpty(t, share.ID)
	assert.False(t, share.SharedAt.IsZero())

	authorized, err = env.grants.IsAuthorized(ctx, processID, supplierKey)
	require.NoError(t, err)
	assert.True(t, authorized)
}

func TestIsAuthorizedMatchesExactly(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, err := env.grants.RecordShare(ctx, "proc-1", "GSUPPLIERKEY", "tx-hash-1")
	require.NoError(t, err)

	for name, pair := range map[string][2]string{
		"different process": {"proc-2", "GSUPPLIERKEY"},
		"different key":     {"proc-1", "GOTHERKEY"},
		"different case":    {"proc-1", "gsupplierkey"},
	} {
		authorized, err := env.grants.IsAuthorized(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.False(t, authorized, name)
	}
}

func TestDuplicateSharesAreHarmless(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	s1, err := env.grants.RecordShare(ctx, "proc-1", "GSUPPLIERKEY", "tx-1")
	require.NoError(t, err)
	s2, err := env.grants.RecordShare(ctx, "proc-1", "GSUPPLIERKEY", "tx-2")
	require.NoError(t, err)
	assert.NotEqual(t, s1.ID, s2.ID)

	authorized, err := env.grants.IsAuthorized(ctx, "proc-1", "GSUPPLIERKEY")
	require.NoError(t, err)
	assert.True(t, authorized)

	var count int64
	require.NoError(t, env.db.Model(&models.ProcessShare{}).
		Where("process_id = ? AND supplier_public_key = ?", "proc-1", "GSUPPLIERKEY").
		Count(&count).Error)
	assert.EqualValues(t, 2, count, "both rows are kept in the ledger")
}
