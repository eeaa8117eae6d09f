package chainrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainerrors "claimerapi/contexts/snapshot-claims/claim-service/domain/errors"
	"claimerapi/contexts/snapshot-claims/claim-service/ports"
	"claimerapi/internal/shared/units"
)

// Client talks to the chain-indexing node over JSON/HTTP. Every failure
// mode that is not a well-formed answer (transport error, timeout, non-2xx,
// undecodable body) wraps domainerrors.ErrChainUnavailable so the verifier
// can distinguish operational faults from negative results.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("chain node url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) GetTipHeight(ctx context.Context) (ports.TipStatus, error) {
	var result tipResponse
	if err := c.get(ctx, "/api/v1/tip", &result); err != nil {
		return ports.TipStatus{}, err
	}
	return ports.TipStatus{Hash: result.Hash, Height: result.Height}, nil
}

func (c *Client) GetBalance(ctx context.Context, address string, minConfirmations int) (*big.Int, error) {
	path := fmt.Sprintf("/api/v1/address/%s/balance?min_conf=%d",
		url.PathEscape(strings.TrimSpace(address)), minConfirmations)

	var result balanceResponse
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	balance, err := units.ParseUnits(result.Balance)
	if err != nil {
		return nil, fmt.Errorf("%w: balance payload: %v", domainerrors.ErrChainUnavailable, err)
	}
	return balance, nil
}

func (c *Client) VerifySignature(ctx context.Context, address, message, signature string) (bool, error) {
	request := verifyMessageRequest{
		Address:   strings.TrimSpace(address),
		Message:   message,
		Signature: signature,
	}
	var result verifyMessageResponse
	if err := c.post(ctx, "/api/v1/verifymessage", request, &result); err != nil {
		return false, err
	}
	return result.Verified, nil
}

func (c *Client) ValidateAddress(ctx context.Context, address string) (ports.AddressStatus, error) {
	path := "/api/v1/address/" + url.PathEscape(strings.TrimSpace(address))

	var result validateAddressResponse
	if err := c.get(ctx, path, &result); err != nil {
		return ports.AddressStatus{}, err
	}
	return ports.AddressStatus{IsValid: result.IsValid, IsWitness: result.IsWitness}, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domainerrors.ErrChainUnavailable, err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: encode request: %v", domainerrors.ErrChainUnavailable, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domainerrors.ErrChainUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrChainUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", domainerrors.ErrChainUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d from %s", domainerrors.ErrChainUnavailable, resp.StatusCode, req.URL.Path)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode response from %s: %v", domainerrors.ErrChainUnavailable, req.URL.Path, err)
	}
	return nil
}

type tipResponse struct {
	Hash   string `json:"hash"`
	Height int64  `json:"height"`
}

type balanceResponse struct {
	Balance string `json:"balance"`
}

type verifyMessageRequest struct {
	Address   string `json:"address"`
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

type verifyMessageResponse struct {
	Verified bool `json:"verified"`
}

type validateAddressResponse struct {
	IsValid   bool `json:"is_valid"`
	IsWitness bool `json:"is_witness"`
}
