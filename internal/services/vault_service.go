package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/max-ramos-rod/nda-backend/internal/db/models"
	"github.com/max-ramos-rod/nda-backend/internal/stellar"
	"github.com/max-ramos-rod/nda-backend/pkg/metrics"
	"github.com/max-ramos-rod/nda-backend/pkg/seal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VaultService orchestrates the confidentiality protocol: create
// encrypts and persists, share attests and records a grant, access
// checks the grant ledger, decrypts, and audits.
type VaultService struct {
	db      *gorm.DB
	users   *UserService
	grants  *GrantService
	access  *AccessService
	stellar stellar.Client
	logger  *zap.Logger
	metrics *metrics.MetricsCollector
}

func NewVaultService(
	db *gorm.DB,
	users *UserService,
	grants *GrantService,
	access *AccessService,
	stellarClient stellar.Client,
	logger *zap.Logger,
	metricsCollector *metrics.MetricsCollector,
) *VaultService {
	return &VaultService{
		db:      db,
		users:   users,
		grants:  grants,
		access:  access,
		stellar: stellarClient,
		logger:  logger.With(zap.String("service", "vault_service")),
		metrics: metricsCollector,
	}
}

type ProcessSummary struct {
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	Status    models.ProcessStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
}

// AccessResult is what a supplier gets back from a successful,
// audited read.
type AccessResult struct {
	ProcessID  string    `json:"process_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AccessedAt time.Time `json:"accessed_at"`
}

// CreateProcess encrypts content under a fresh per-process key and
// persists the sealed document. The returned process carries the
// ciphertext and key fields; callers expose metadata only.
func (vs *VaultService) CreateProcess(ctx context.Context, clientUsername, title, content string) (*models.Process, error) {
	start := time.Now()

	client, err := vs.users.FindByUsername(ctx, clientUsername)
	if err != nil {
		return nil, err
	}

	key, err := seal.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generating process key: %w", err)
	}
	encrypted, err := seal.Encrypt(content, key)
	if err != nil {
		return nil, fmt.Errorf("encrypting process content: %w", err)
	}

	process := &models.Process{
		ID:               uuid.New().String(),
		ClientID:         client.ID,
		Title:            title,
		EncryptedContent: encrypted,
		EncryptionKey:    key,
		Status:           models.StatusActive,
	}

	if err := vs.db.WithContext(ctx).Create(process).Error; err != nil {
		return nil, fmt.Errorf("%w: creating process: %v", ErrStorage, err)
	}

	vs.metrics.IncrementCounter("processes_created")
	vs.metrics.ObserveLatency("process_create", time.Since(start))

	vs.logger.Info("Process created",
		zap.String("process_id", process.ID),
		zap.String("client_id", client.ID),
		zap.String("title", title))
	return process, nil
}

// ListProcesses returns the owner's processes newest first, without
// content or keys.
func (vs *VaultService) ListProcesses(ctx context.Context, clientUsername string) ([]ProcessSummary, error) {
	client, err := vs.users.FindByUsername(ctx, clientUsername)
	if err != nil {
		return nil, err
	}

	var processes []models.Process
	err = vs.db.WithContext(ctx).
		Where("client_id = ?", client.ID).
		Order("created_at DESC").
		Find(&processes).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing processes: %v", ErrStorage, err)
	}

	summaries := make([]ProcessSummary, 0, len(processes))
	for _, p := range processes {
		summaries = append(summaries, ProcessSummary{
			ID:        p.ID,
			Title:     p.Title,
			Status:    p.Status,
			CreatedAt: p.CreatedAt,
		})
	}
	return summaries, nil
}

// ShareProcess grants a supplier access to a process. The attestation
// is not best-effort: if the Stellar client fails, the whole share
// fails and no grant is written.
func (vs *VaultService) ShareProcess(ctx context.Context, processID, supplierPublicKey, clientUsername string) (*models.ProcessShare, error) {
	start := time.Now()

	process, err := vs.findProcess(ctx, processID)
	if err != nil {
		return nil, err
	}

	client, err := vs.users.FindByUsername(ctx, clientUsername)
	if err != nil {
		return nil, err
	}

	txHash, err := vs.stellar.AttestShare(ctx, client.StellarSecretKey, supplierPublicKey, process.ID)
	if err != nil {
		vs.logger.Error("Share attestation failed",
			zap.String("process_id", processID),
			zap.String("supplier_public_key", supplierPublicKey),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrAttestation, err)
	}

	share, err := vs.grants.RecordShare(ctx, process.ID, supplierPublicKey, txHash)
	if err != nil {
		return nil, err
	}

	vs.metrics.IncrementCounter("shares_recorded")
	vs.metrics.ObserveLatency("process_share", time.Since(start))
	return share, nil
}

// AccessProcess is the supplier read path. The sequence is strict:
// resolve process, resolve supplier, authorize against the supplier's
// stored public key, decrypt, audit. A failed audit write fails the
// whole read even though decryption succeeded; unaudited reads are
// never returned.
func (vs *VaultService) AccessProcess(ctx context.Context, processID, supplierUsername string) (*AccessResult, error) {
	start := time.Now()

	process, err := vs.findProcess(ctx, processID)
	if err != nil {
		return nil, err
	}

	supplier, err := vs.users.FindByUsername(ctx, supplierUsername)
	if err != nil {
		return nil, err
	}

	authorized, err := vs.grants.IsAuthorized(ctx, process.ID, supplier.StellarPublicKey)
	if err != nil {
		return nil, err
	}
	if !authorized {
		vs.metrics.IncrementCounter("accesses_denied")
		vs.logger.Warn("Access denied: process not shared with supplier",
			zap.String("process_id", process.ID),
			zap.String("supplier_id", supplier.ID))
		return nil, ErrForbidden
	}

	content, err := seal.Decrypt(process.EncryptedContent, process.EncryptionKey)
	if err != nil {
		// Cipher failure detail stays in the log; callers only see
		// an internal failure, never which check tripped.
		vs.logger.Error("Decryption failed on authorized access",
			zap.String("process_id", process.ID),
			zap.Error(err))
		return nil, fmt.Errorf("opening sealed content for process %s: %w", process.ID, err)
	}

	access, err := vs.access.RecordAccess(ctx, process.ID, supplier.ID)
	if err != nil {
		return nil, err
	}

	vs.metrics.IncrementCounter("accesses_granted")
	vs.metrics.ObserveLatency("process_access", time.Since(start))

	return &AccessResult{
		ProcessID:  process.ID,
		Title:      process.Title,
		Content:    content,
		AccessedAt: access.AccessedAt,
	}, nil
}

// Notifications is the owner's reverse view of the access log.
func (vs *VaultService) Notifications(ctx context.Context, clientUsername string) ([]AccessDetail, error) {
	client, err := vs.users.FindByUsername(ctx, clientUsername)
	if err != nil {
		return nil, err
	}
	return vs.access.ListForOwner(ctx, client.ID)
}

func (vs *VaultService) findProcess(ctx context.Context, processID string) (*models.Process, error) {
	var process models.Process
	err := vs.db.WithContext(ctx).First(&process, "id = ?", processID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: process %q", ErrNotFound, processID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: looking up process: %v", ErrStorage, err)
	}
	return &process, nil
}
