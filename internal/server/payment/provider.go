// Package payment talks to the checkout provider. One call: create a
// preference, get back the URL the buyer is sent to.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmelo-dev/luzpalavra/internal/common"
)

// Provider creates checkout preferences. Tests substitute a fake.
type Provider interface {
	CreatePreference(ctx context.Context, pref Preference) (initPoint string, err error)
}

// Preference is one checkout to be created.
type Preference struct {
	Title        string
	UnitPrice    float64
	PayerEmail   string
	ExternalRef  string
	NotifyURL    string
}

// HTTPProvider is the real provider client.
type HTTPProvider struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewHTTPProvider(baseURL, token string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 20 * time.Second},
	}
}

type preferenceRequest struct {
	Items []preferenceItem `json:"items"`
	Payer struct {
		Email string `json:"email"`
	} `json:"payer"`
	ExternalReference string `json:"external_reference"`
	NotificationURL   string `json:"notification_url,omitempty"`
}

type preferenceItem struct {
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type preferenceResponse struct {
	InitPoint string `json:"init_point"`
}

func (p *HTTPProvider) CreatePreference(ctx context.Context, pref Preference) (string, error) {
	reqBody := preferenceRequest{
		Items: []preferenceItem{{
			Title:     pref.Title,
			Quantity:  1,
			UnitPrice: pref.UnitPrice,
		}},
		ExternalReference: pref.ExternalRef,
		NotificationURL:   pref.NotifyURL,
	}
	reqBody.Payer.Email = pref.PayerEmail

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/checkout/preferences", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorConnectivity, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorConnectivity, err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("provider replied %d: %s", resp.StatusCode, data)
	}

	var pr preferenceResponse
	if err := json.Unmarshal(data, &pr); err != nil {
		return "", fmt.Errorf("bad provider response: %w", err)
	}
	if pr.InitPoint == "" {
		return "", common.ErrNoCheckoutURL
	}

	return pr.InitPoint, nil
}
