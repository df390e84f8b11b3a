package stellar

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MockClient is the offline attestation collaborator: keys have the
// Stellar shape but exist on no ledger, and attestation references are
// synthetic. FailAttest lets tests exercise the strict-share path.
type MockClient struct {
	logger     *zap.Logger
	FailAttest error
}

func NewMockClient(logger *zap.Logger) *MockClient {
	return &MockClient{
		logger: logger.With(zap.String("component", "stellar_mock")),
	}
}

const strkeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

func (mc *MockClient) CreateAccount(ctx context.Context) (*Account, error) {
	public, err := mockKey("G")
	if err != nil {
		return nil, err
	}
	secret, err := mockKey("S")
	if err != nil {
		return nil, err
	}

	mc.logger.Info("Mock Stellar account created", zap.String("public_key", public))
	return &Account{PublicKey: public, SecretKey: secret}, nil
}

func (mc *MockClient) AttestShare(ctx context.Context, sourceSecret, supplierPublicKey, processID string) (string, error) {
	if mc.FailAttest != nil {
		return "", mc.FailAttest
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	reference := "mock_tx_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]

	mc.logger.Info("Mock share attested",
		zap.String("process_id", processID),
		zap.String("reference", reference))
	return reference, nil
}

func mockKey(prefix string) (string, error) {
	var sb strings.Builder
	sb.WriteString(prefix)
	for i := 0; i < 55; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(strkeyAlphabet))))
		if err != nil {
			return "", fmt.Errorf("generating mock key: %w", err)
		}
		sb.WriteByte(strkeyAlphabet[n.Int64()])
	}
	return sb.String(), nil
}
