package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/max-ramos-rod/nda-backend/internal/db/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GrantService is the grant ledger: a durable, append-only record of
// (process, supplier) shares. It never touches plaintext; authorization
// is purely an existence check over its rows.
type GrantService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewGrantService(db *gorm.DB, logger *zap.Logger) *GrantService {
	return &GrantService{
		db:     db,
		logger: logger.With(zap.String("service", "grant_service")),
	}
}

// RecordShare appends a share row. It does not check for an existing
// grant for the same pair; duplicates are permitted and harmless for
// authorization.
func (gs *GrantService) RecordShare(ctx context.Context, processID, supplierPublicKey, transactionHash string) (*models.ProcessShare, error) {
	share := &models.ProcessShare{
		ID:                     uuid.New().String(),
		ProcessID:              processID,
		SupplierPublicKey:      supplierPublicKey,
		StellarTransactionHash: transactionHash,
	}

	if err := gs.db.WithContext(ctx).Create(share).Error; err != nil {
		return nil, fmt.Errorf("%w: recording share: %v", ErrStorage, err)
	}

	gs.logger.Info("Share recorded",
		zap.String("share_id", share.ID),
		zap.String("process_id", processID),
		zap.String("supplier_public_key", supplierPublicKey))
	return share, nil
}

// IsAuthorized reports whether at least one share row matches both the
// process and the supplier key exactly (case-sensitive).
func (gs *GrantService) IsAuthorized(ctx context.Context, processID, supplierPublicKey string) (bool, error) {
	var count int64
	err := gs.db.WithContext(ctx).
		Model(&models.ProcessShare{}).
		Where("process_id = ? AND supplier_public_key = ?", processID, supplierPublicKey).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: checking authorization: %v", ErrStorage, err)
	}
	return count > 0, nil
}
