// Package api is the typed HTTP client for the account backend. All
// endpoints are JSON-over-HTTPS POSTs with Portuguese wire names, kept
// compatible with the already-deployed backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmelo-dev/luzpalavra/internal/client/models"
	"github.com/dmelo-dev/luzpalavra/internal/common"
)

// Error codes the backend may return in an error payload.
const (
	codePromoInvalid = "codigo_invalido"
	codePromoUsed    = "codigo_usado"
	codePromoExpired = "codigo_expirado"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// NormalizeEmail canonicalizes an address the way the backend keys its
// records: trimmed and lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type errorResponse struct {
	Error string `json:"error"`
}

// post sends a JSON body and decodes a JSON reply into out. Transport
// failures map to ErrorConnectivity so callers can word the toast; 4xx
// replies carrying a known error code map to their sentinel.
func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorConnectivity, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorConnectivity, err)
	}

	if resp.StatusCode >= 400 {
		var er errorResponse
		_ = json.Unmarshal(data, &er)
		switch er.Error {
		case codePromoInvalid:
			return common.ErrPromoRejected
		case codePromoUsed:
			return common.ErrPromoUsed
		case codePromoExpired:
			return common.ErrPromoExpired
		}
		return fmt.Errorf("%w: server replied %d", common.ErrorInternal, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: bad response body: %v", common.ErrorInternal, err)
	}
	return nil
}

type getAccessRequest struct {
	Email string `json:"email"`
}

type getAccessResponse struct {
	Entitlements *models.Entitlements `json:"entitlements"`
}

// GetAccess asks the backend which volumes the account owns. A nil
// result means the backend has no record for the address.
func (c *Client) GetAccess(ctx context.Context, email string) (*models.Entitlements, error) {
	var resp getAccessResponse
	err := c.post(ctx, "/getAcesso", getAccessRequest{Email: NormalizeEmail(email)}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Entitlements, nil
}

type createPaymentRequest struct {
	Email   string  `json:"email"`
	Product string  `json:"produto"`
	Value   float64 `json:"valor"`
}

type createPaymentResponse struct {
	InitPoint string `json:"init_point"`
}

// CreatePayment opens a checkout for the given product and returns the
// URL the user must be sent to.
func (c *Client) CreatePayment(ctx context.Context, email, sku string, value float64) (string, error) {
	var resp createPaymentResponse
	err := c.post(ctx, "/criarPagamento", createPaymentRequest{
		Email:   NormalizeEmail(email),
		Product: sku,
		Value:   value,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.InitPoint == "" {
		return "", common.ErrNoCheckoutURL
	}
	return resp.InitPoint, nil
}

type registerTokenRequest struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// RegisterToken associates a push token with the account.
func (c *Client) RegisterToken(ctx context.Context, email, token string) error {
	return c.post(ctx, "/registrarToken", registerTokenRequest{
		Email: NormalizeEmail(email),
		Token: token,
	}, nil)
}

type activateCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"codigo"`
}

type activateCodeResponse struct {
	Entitlements *models.Entitlements `json:"entitlements"`
}

// ActivateCode redeems a promo code for the account. On success the
// backend replies with the account's updated entitlement set.
func (c *Client) ActivateCode(ctx context.Context, email, code string) (*models.Entitlements, error) {
	var resp activateCodeResponse
	err := c.post(ctx, "/ativarCodigo", activateCodeRequest{
		Email: NormalizeEmail(email),
		Code:  strings.TrimSpace(code),
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Entitlements == nil {
		return nil, common.ErrPromoRejected
	}
	return resp.Entitlements, nil
}

type createStatusUploadRequest struct {
	DeviceID string `json:"device_id"`
	Format   string `json:"formato"`
}

type createStatusUploadResponse struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}

// CreateStatusUpload asks the backend for a pre-signed slot to publish a
// status image. uploadURL accepts one PUT; publicURL is what gets
// shared.
func (c *Client) CreateStatusUpload(ctx context.Context, deviceID, format string) (uploadURL, publicURL string, err error) {
	var resp createStatusUploadResponse
	err = c.post(ctx, "/criarUploadStatus", createStatusUploadRequest{
		DeviceID: deviceID,
		Format:   format,
	}, &resp)
	if err != nil {
		return "", "", err
	}
	return resp.UploadURL, resp.PublicURL, nil
}
