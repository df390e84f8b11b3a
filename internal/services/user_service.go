package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/max-ramos-rod/nda-backend/internal/db/models"
	"github.com/max-ramos-rod/nda-backend/internal/stellar"
	"github.com/max-ramos-rod/nda-backend/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db      *gorm.DB
	stellar stellar.Client
	logger  *zap.Logger
	metrics *metrics.MetricsCollector
}

func NewUserService(db *gorm.DB, stellarClient stellar.Client, logger *zap.Logger, metricsCollector *metrics.MetricsCollector) *UserService {
	return &UserService{
		db:      db,
		stellar: stellarClient,
		logger:  logger.With(zap.String("service", "user_service")),
		metrics: metricsCollector,
	}
}

// Register creates a user with a funded Stellar account and a bcrypt
// password hash. The username must be free; the secret key is persisted
// but never returned through the API.
func (us *UserService) Register(ctx context.Context, username, password string, role models.UserRole) (*models.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	var existing models.User
	err := us.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: username %q is taken", ErrConflict, username)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: looking up username: %v", ErrStorage, err)
	}

	account, err := us.stellar.CreateAccount(ctx)
	if err != nil {
		us.logger.Error("Stellar account creation failed",
			zap.String("username", username), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrAttestation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		ID:               uuid.New().String(),
		Username:         username,
		StellarPublicKey: account.PublicKey,
		StellarSecretKey: account.SecretKey,
		PasswordHash:     string(hash),
		Role:             role,
	}

	if err := us.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("%w: creating user: %v", ErrStorage, err)
	}

	us.metrics.IncrementCounter("users_registered")
	us.logger.Info("User registered",
		zap.String("user_id", user.ID),
		zap.String("username", username),
		zap.String("role", string(role)))
	return user, nil
}

// Login resolves a user by username and verifies the password. Unknown
// user and wrong password are indistinguishable to the caller.
func (us *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := us.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		us.logger.Warn("Invalid password", zap.String("username", username))
		return nil, ErrUnauthorized
	}
	return user, nil
}

func (us *UserService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := us.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %q", ErrNotFound, username)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: looking up user: %v", ErrStorage, err)
	}
	return &user, nil
}
