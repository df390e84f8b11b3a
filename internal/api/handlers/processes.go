package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/max-ramos-rod/nda-backend/internal/services"
	"go.uber.org/zap"
)

type ProcessHandler struct {
	vault  *services.VaultService
	logger *zap.Logger
}

func NewProcessHandler(vault *services.VaultService, logger *zap.Logger) *ProcessHandler {
	return &ProcessHandler{
		vault:  vault,
		logger: logger.With(zap.String("handler", "process")),
	}
}

type createProcessRequest struct {
	Title               string `json:"title" binding:"required"`
	ConfidentialContent string `json:"confidential_content" binding:"required"`
	ClientUsername      string `json:"client_username" binding:"required"`
}

type shareProcessRequest struct {
	ProcessID         string `json:"process_id" binding:"required"`
	SupplierPublicKey string `json:"supplier_public_key" binding:"required"`
	ClientUsername    string `json:"client_username" binding:"required"`
}

type accessProcessRequest struct {
	ProcessID         string `json:"process_id" binding:"required"`
	SupplierPublicKey string `json:"supplier_public_key"`
	SupplierUsername  string `json:"supplier_username" binding:"required"`
}

type processResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type shareResponse struct {
	ID                     string    `json:"id"`
	ProcessID              string    `json:"process_id"`
	SupplierPublicKey      string    `json:"supplier_public_key"`
	StellarTransactionHash string    `json:"stellar_transaction_hash"`
	SharedAt               time.Time `json:"shared_at"`
}

func (ph *ProcessHandler) CreateProcess(c *gin.Context) {
	var req createProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, confidential_content and client_username are required"})
		return
	}

	process, err := ph.vault.CreateProcess(c.Request.Context(), req.ClientUsername, req.Title, req.ConfidentialContent)
	if err != nil {
		ph.logger.Warn("Create process failed", zap.String("client_username", req.ClientUsername), zap.Error(err))
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, processResponse{
		ID:        process.ID,
		Title:     process.Title,
		Status:    string(process.Status),
		CreatedAt: process.CreatedAt,
	})
}

func (ph *ProcessHandler) ListProcesses(c *gin.Context) {
	clientUsername := c.Query("client_username")
	if clientUsername == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client_username query parameter is required"})
		return
	}

	summaries, err := ph.vault.ListProcesses(c.Request.Context(), clientUsername)
	if err != nil {
		abortWithError(c, err)
		return
	}

	responses := make([]processResponse, 0, len(summaries))
	for _, s := range summaries {
		responses = append(responses, processResponse{
			ID:        s.ID,
			Title:     s.Title,
			Status:    string(s.Status),
			CreatedAt: s.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, responses)
}

func (ph *ProcessHandler) ShareProcess(c *gin.Context) {
	var req shareProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "process_id, supplier_public_key and client_username are required"})
		return
	}

	share, err := ph.vault.ShareProcess(c.Request.Context(), req.ProcessID, req.SupplierPublicKey, req.ClientUsername)
	if err != nil {
		ph.logger.Warn("Share process failed",
			zap.String("process_id", req.ProcessID),
			zap.String("supplier_public_key", req.SupplierPublicKey),
			zap.Error(err))
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, shareResponse{
		ID:                     share.ID,
		ProcessID:              share.ProcessID,
		SupplierPublicKey:      share.SupplierPublicKey,
		StellarTransactionHash: share.StellarTransactionHash,
		SharedAt:               share.SharedAt,
	})
}

func (ph *ProcessHandler) AccessProcess(c *gin.Context) {
	var req accessProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "process_id and supplier_username are required"})
		return
	}

	// The supplier is identified by username; the grant check runs
	// against the public key stored with that user, not the one in
	// the request body.
	result, err := ph.vault.AccessProcess(c.Request.Context(), req.ProcessID, req.SupplierUsername)
	if err != nil {
		ph.logger.Warn("Access process failed",
			zap.String("process_id", req.ProcessID),
			zap.String("supplier_username", req.SupplierUsername),
			zap.Error(err))
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
