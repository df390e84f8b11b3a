package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/max-ramos-rod/nda-backend/internal/db/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AccessService is the access log: one immutable row per successful
// read, plus the owner-facing notification view over those rows.
type AccessService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewAccessService(db *gorm.DB, logger *zap.Logger) *AccessService {
	return &AccessService{
		db:     db,
		logger: logger.With(zap.String("service", "access_service")),
	}
}

// AccessDetail is one notification row: an access joined with the
// process title and the accessing supplier's username.
type AccessDetail struct {
	ID               string    `json:"id"`
	ProcessID        string    `json:"process_id"`
	SupplierID       string    `json:"supplier_id"`
	AccessedAt       time.Time `json:"accessed_at"`
	ProcessTitle     string    `json:"process_title"`
	SupplierUsername string    `json:"supplier_username"`
}

func (as *AccessService) RecordAccess(ctx context.Context, processID, supplierID string) (*models.ProcessAccess, error) {
	access := &models.ProcessAccess{
		ID:         uuid.New().String(),
		ProcessID:  processID,
		SupplierID: supplierID,
	}

	if err := as.db.WithContext(ctx).Create(access).Error; err != nil {
		return nil, fmt.Errorf("%w: recording access: %v", ErrStorage, err)
	}

	as.logger.Info("Access recorded",
		zap.String("access_id", access.ID),
		zap.String("process_id", processID),
		zap.String("supplier_id", supplierID))
	return access, nil
}

// ListForOwner returns every access to the client's processes, most
// recent first. The result reflects storage state at call time.
func (as *AccessService) ListForOwner(ctx context.Context, clientID string) ([]AccessDetail, error) {
	var details []AccessDetail
	err := as.db.WithContext(ctx).
		Table("process_accesses").
		Select("process_accesses.id, process_accesses.process_id, process_accesses.supplier_id, process_accesses.accessed_at, processes.title AS process_title, users.username AS supplier_username").
		Joins("JOIN processes ON process_accesses.process_id = processes.id").
		Joins("JOIN users ON process_accesses.supplier_id = users.id").
		Where("processes.client_id = ?", clientID).
		Order("process_accesses.accessed_at DESC").
		Scan(&details).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing accesses: %v", ErrStorage, err)
	}
	return details, nil
}
