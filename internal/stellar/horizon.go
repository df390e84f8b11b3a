package stellar

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/stellar/go/keypair"
	"go.uber.org/zap"
)

// HorizonClient implements Client against a Stellar Horizon server.
// Accounts are funded through friendbot, so it only works on networks
// that run one (the testnet). The share attestation verifies that both
// parties exist on the ledger and derives a stable reference over the
// share parameters; it does not broadcast a payment.
type HorizonClient struct {
	horizonURL   string
	friendbotURL string
	httpClient   *http.Client
	logger       *zap.Logger
}

func NewHorizonClient(horizonURL, friendbotURL string, logger *zap.Logger) *HorizonClient {
	return &HorizonClient{
		horizonURL:   horizonURL,
		friendbotURL: friendbotURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		logger:       logger.With(zap.String("component", "stellar_horizon")),
	}
}

type AccountDetails struct {
	AccountID string    `json:"account_id"`
	Sequence  string    `json:"sequence"`
	Balances  []Balance `json:"balances"`
}

type Balance struct {
	Balance   string `json:"balance"`
	AssetType string `json:"asset_type"`
}

func (hc *HorizonClient) CreateAccount(ctx context.Context) (*Account, error) {
	kp, err := keypair.Random()
	if err != nil {
		return nil, fmt.Errorf("generating keypair: %w", err)
	}

	account := &Account{
		PublicKey: kp.Address(),
		SecretKey: kp.Seed(),
	}

	if err := hc.fundAccount(ctx, account.PublicKey); err != nil {
		return nil, err
	}

	hc.logger.Info("Stellar account created and funded",
		zap.String("public_key", account.PublicKey))
	return account, nil
}

func (hc *HorizonClient) fundAccount(ctx context.Context, publicKey string) error {
	fundURL := fmt.Sprintf("%s?addr=%s", hc.friendbotURL, url.QueryEscape(publicKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fundURL, nil)
	if err != nil {
		return err
	}

	resp, err := hc.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("friendbot request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("friendbot funding failed for %s: status %d: %s",
			publicKey, resp.StatusCode, string(body))
	}
	return nil
}

// GetAccount fetches account details from Horizon. A missing account is
// an error: attestation requires both parties to exist on the ledger.
func (hc *HorizonClient) GetAccount(ctx context.Context, accountID string) (*AccountDetails, error) {
	accountURL := fmt.Sprintf("%s/accounts/%s", hc.horizonURL, url.PathEscape(accountID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, accountURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := hc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("horizon request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("account %s not found on ledger: status %d", accountID, resp.StatusCode)
	}

	var account AccountDetails
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, fmt.Errorf("decoding horizon account response: %w", err)
	}
	return &account, nil
}

// XLMBalance returns the native balance of an account, "0" when the
// account holds no native asset line.
func (hc *HorizonClient) XLMBalance(ctx context.Context, accountID string) (string, error) {
	account, err := hc.GetAccount(ctx, accountID)
	if err != nil {
		return "", err
	}
	for _, b := range account.Balances {
		if b.AssetType == "native" {
			return b.Balance, nil
		}
	}
	return "0", nil
}

func (hc *HorizonClient) AttestShare(ctx context.Context, sourceSecret, supplierPublicKey, processID string) (string, error) {
	source, err := keypair.ParseFull(sourceSecret)
	if err != nil {
		return "", fmt.Errorf("parsing source secret key: %w", err)
	}
	sourcePublic := source.Address()

	if _, err := hc.GetAccount(ctx, sourcePublic); err != nil {
		return "", fmt.Errorf("verifying source account: %w", err)
	}
	if _, err := hc.GetAccount(ctx, supplierPublicKey); err != nil {
		return "", fmt.Errorf("verifying supplier account: %w", err)
	}

	reference := shareReference(sourcePublic, supplierPublicKey, processID)

	hc.logger.Info("Share attested",
		zap.String("process_id", processID),
		zap.String("supplier_public_key", supplierPublicKey),
		zap.String("reference", reference[:16]))
	return reference, nil
}

func shareReference(sourcePublic, supplierPublicKey, processID string) string {
	data := fmt.Sprintf("%s:%s:%s:%s", sourcePublic, supplierPublicKey, processID, ShareMemo(processID))
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}
