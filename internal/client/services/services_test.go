package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dmelo-dev/luzpalavra/internal/client/models"
	"github.com/dmelo-dev/luzpalavra/internal/client/state"
	"github.com/dmelo-dev/luzpalavra/internal/logging"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// fakeBackend is a programmable Backend for service tests.
type fakeBackend struct {
	accessResult   *models.Entitlements
	accessErr      error
	accessCalls    int
	paymentURL     string
	paymentErr     error
	paymentSKU     string
	paymentValue   float64
	tokenErr       error
	lastToken      string
	activateResult *models.Entitlements
	activateErr    error
	uploadURL      string
	publicURL      string
	uploadErr      error
	uploadFormat   string

	// beforeAccessReply runs between the request being "sent" and the
	// reply arriving; tests use it to race a local write.
	beforeAccessReply func()
}

func (f *fakeBackend) GetAccess(ctx context.Context, email string) (*models.Entitlements, error) {
	f.accessCalls++
	if f.beforeAccessReply != nil {
		f.beforeAccessReply()
	}
	return f.accessResult, f.accessErr
}

func (f *fakeBackend) CreatePayment(ctx context.Context, email, sku string, value float64) (string, error) {
	f.paymentSKU = sku
	f.paymentValue = value
	return f.paymentURL, f.paymentErr
}

func (f *fakeBackend) RegisterToken(ctx context.Context, email, token string) error {
	f.lastToken = token
	return f.tokenErr
}

func (f *fakeBackend) ActivateCode(ctx context.Context, email, code string) (*models.Entitlements, error) {
	return f.activateResult, f.activateErr
}

func (f *fakeBackend) CreateStatusUpload(ctx context.Context, deviceID, format string) (string, string, error) {
	f.uploadFormat = format
	return f.uploadURL, f.publicURL, f.uploadErr
}

// fakeOpener records opened URLs.
type fakeOpener struct {
	urls []string
	err  error
}

func (f *fakeOpener) OpenURL(ctx context.Context, url string) error {
	if f.err != nil {
		return f.err
	}
	f.urls = append(f.urls, url)
	return nil
}

// fakeClipboard records copied text.
type fakeClipboard struct {
	copied []string
}

func (f *fakeClipboard) Copy(ctx context.Context, text string) error {
	f.copied = append(f.copied, text)
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testStore(t *testing.T) *state.Store {
	t.Helper()
	ctx := context.Background()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := state.OpenDatabase(ctx, dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	s, err := state.Open(ctx, db, testLogger())
	require.NoError(t, err)
	return s
}
