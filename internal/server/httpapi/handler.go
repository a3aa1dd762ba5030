// Package httpapi exposes the backend over plain JSON-over-HTTP POSTs.
// Field names are Portuguese, matching the app already in the field.
package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmelo-dev/luzpalavra/internal/common"
	"github.com/dmelo-dev/luzpalavra/internal/logging"
	"github.com/dmelo-dev/luzpalavra/internal/server/models"
	"github.com/dmelo-dev/luzpalavra/internal/server/services"
)

// Error codes carried in 4xx payloads.
const (
	codePromoInvalid = "codigo_invalido"
	codePromoUsed    = "codigo_usado"
	codePromoExpired = "codigo_expirado"
	codeBadRequest   = "requisicao_invalida"
	codeInternal     = "erro_interno"
)

type Handler struct {
	access   *services.AccessService
	payments *services.PaymentService
	promos   *services.PromoService
	pushes   *services.PushService
	shares   *services.ShareService
	logger   logging.Logger
}

func NewHandler(access *services.AccessService, payments *services.PaymentService, promos *services.PromoService, pushes *services.PushService, shares *services.ShareService, logger logging.Logger) *Handler {
	return &Handler{
		access:   access,
		payments: payments,
		promos:   promos,
		pushes:   pushes,
		shares:   shares,
		logger:   logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	return strings.Contains(email, "@")
}

type getAccessRequest struct {
	Email string `json:"email"`
}

type getAccessResponse struct {
	Entitlements *models.Entitlements `json:"entitlements,omitempty"`
}

// GetAccess handles POST /getAcesso. Unknown accounts get a null
// entitlements field, not an error.
func (h *Handler) GetAccess(w http.ResponseWriter, r *http.Request) {
	var req getAccessRequest
	if err := parseJSONBody(r, &req); err != nil {
		errorResponse(w, http.StatusBadRequest, codeBadRequest)
		return
	}
	email := normalizeEmail(req.Email)
	if !validEmail(email) {
		errorResponse(w, http.StatusBadRequest, codeBadRequest)
		return
	}

	ent, found, err := h.access.Get(r.Context(), email)
	if err != nil {
		h.logger.Error(r.Context(), "get access failed", "error", err)
		errorResponse(w, http.StatusInternalServerError, codeInternal)
		return
	}

	resp := getAccessResponse{}
	if found {
		resp.Entitlements = &ent
	}
	jsonResponse(w, http.StatusOK, resp)
}

type createPaymentRequest struct {
	Email   string  `json:"email"`
	Product string  `json:"produto"`
	Value   float64 `json:"valor"`
}

type createPaymentResponse struct {
	InitPoint string `json:"init_point"`
}

// CreatePayment handles POST /criarPagamento. The valor field is
// accepted for compatibility but the price comes from the server table.
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := parseJSONBody(r, &req); err != nil {
		errorResponse(w, http.StatusBadRequest, codeBadRequest)
		return
	}
	email := normalizeEmail(req.Email)
	if !validEmail(email) {
		errorResponse(w, http.StatusBadRequest, codeBadRequest)
		return
	}

	initPoint, err := h.payments.CreateCheckout(r.Context(), email, req.Product)
	if err != nil {
		if errors.Is(err, common.ErrUnknownProduct) {
			errorResponse(w, http.StatusBadRequest, codeBadRequest)
			return
		}
		h.logger.Error(r.Context(), "create payment failed", "error", err)
		errorResponse(w, http.StatusInternalServerError, codeInternal)
		return
	}

	jsonResponse(w, http.StatusOK, createPaymentResponse{InitPoint: initPoint})
}

type webhookRequest struct {
	ExternalReference string `json:"external_reference"`
}

// PaymentWebhook handles POST /pagamentoWebhook, the provider's payment
// confirmation. The external reference is our own signed pay ref, so a
// bad one is answered 200 to stop the provider from retrying forever.
func (h *Handler) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	var req webhookRequest
	if err := parseJSONBody(r, &req); err != nil {
		errorResponse(w, http.StatusBadRequest, codeBadRequest)
		return
	}
	ref := req.ExternalReference
	if ref == "" {
		ref = r.URL.Query().Get("external_reference")
	}

	if err := h.payments.Settle(r.Context(), ref); err != nil {
		if errors.Is(err, common.ErrInvalidPayToken) {
			h.logger.Warn(r.Context(), "webhook with invalid pay ref")
			w.WriteHeader(http.StatusOK)
			return
		}
		h.logger.Error(r.Context(), "webhook settle failed", "error", err)
		errorResponse(w, http.StatusInternalServerError, codeInternal)
		return
	}

	w.WriteHeader(http.StatusOK)
}

type registerTokenRequest struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// RegisterToken handles POST /registrarToken.
func (h *Handler) RegisterToken(w http.ResponseWriter, r *http.Request) {
	var req registerTokenRequest
	if err := parseJSONBody(r, &req); err != nil {
		errorResponse(w, http.StatusBadRequest, codeBadRequest)
		return
	}
	email := normalizeEmail(req.Email)
	if !validEmail(email) || req.Token == "" {
		errorResponse(w, http.StatusBadRequest, codeBadRequest)
		return
	}

	if err := h.pushes.RegisterToken(r.Context(), email, req.Token); err != nil {
		h.logger.Error(r.Context(), "register token failed", "error", err)
		errorResponse(w, http.StatusInternalServerError, codeInternal)
		return
	}

	w.WriteHeader(http.StatusOK)
}

type activateCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"codigo"`
}

type activateCodeResponse struct {
	Entitlements *models.Entitlements `json:"entitlements"`
}

// ActivateCode handles POST /ativarCodigo. Rejection reasons travel as
// error codes so the app can word the toast.
func (h *Handler) ActivateCode(w http.ResponseWriter, r *http.Request) {
	var req activateCodeRequest
	if err := parseJSONBody(r, &req); err != nil {
		errorResponse(w, http.StatusBadRequest, codeBadRequest)
		return
	}
	email := normalizeEmail(req.Email)
	code := strings.TrimSpace(req.Code)
	if !validEmail(email) || code == "" {
		errorResponse(w, http.StatusBadRequest, codeBadRequest)
		return
	}

	ent, err := h.promos.Activate(r.Context(), email, code)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrPromoRejected):
		errorResponse(w, http.StatusBadRequest, codePromoInvalid)
		return
	case errors.Is(err, common.ErrPromoUsed):
		errorResponse(w, http.StatusBadRequest, codePromoUsed)
		return
	case errors.Is(err, common.ErrPromoExpired):
		errorResponse(w, http.StatusBadRequest, codePromoExpired)
		return
	default:
		h.logger.Error(r.Context(), "activate code failed", "error", err)
		errorResponse(w, http.StatusInternalServerError, codeInternal)
		return
	}

	jsonResponse(w, http.StatusOK, activateCodeResponse{Entitlements: &ent})
}

type createStatusUploadRequest struct {
	DeviceID string `json:"device_id"`
	Format   string `json:"formato"`
}

type createStatusUploadResponse struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}

// CreateStatusUpload handles POST /criarUploadStatus.
func (h *Handler) CreateStatusUpload(w http.ResponseWriter, r *http.Request) {
	var req createStatusUploadRequest
	if err := parseJSONBody(r, &req); err != nil {
		errorResponse(w, http.StatusBadRequest, codeBadRequest)
		return
	}
	if req.DeviceID == "" {
		errorResponse(w, http.StatusBadRequest, codeBadRequest)
		return
	}
	format := req.Format
	if format != "story" && format != "feed" {
		format = "story"
	}

	uploadURL, publicURL, err := h.shares.CreateUpload(r.Context(), req.DeviceID, format)
	if err != nil {
		h.logger.Error(r.Context(), "create status upload failed", "error", err)
		errorResponse(w, http.StatusInternalServerError, codeInternal)
		return
	}

	jsonResponse(w, http.StatusOK, createStatusUploadResponse{UploadURL: uploadURL, PublicURL: publicURL})
}

// NewRouter wires every endpoint onto a fresh mux.
func NewRouter(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /getAcesso", h.GetAccess)
	mux.HandleFunc("POST /criarPagamento", h.CreatePayment)
	mux.HandleFunc("POST /pagamentoWebhook", h.PaymentWebhook)
	mux.HandleFunc("POST /registrarToken", h.RegisterToken)
	mux.HandleFunc("POST /ativarCodigo", h.ActivateCode)
	mux.HandleFunc("POST /criarUploadStatus", h.CreateStatusUpload)

	return mux
}
