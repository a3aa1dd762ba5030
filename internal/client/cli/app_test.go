package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dmelo-dev/luzpalavra/internal/client/config"
	"github.com/dmelo-dev/luzpalavra/internal/client/models"
	"github.com/dmelo-dev/luzpalavra/internal/client/services"
	"github.com/dmelo-dev/luzpalavra/internal/client/state"
	"github.com/dmelo-dev/luzpalavra/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBackend lets app tests run without a server.
type stubBackend struct {
	access     *models.Entitlements
	paymentURL string
	activate   *models.Entitlements
}

func (s *stubBackend) GetAccess(ctx context.Context, email string) (*models.Entitlements, error) {
	return s.access, nil
}

func (s *stubBackend) CreatePayment(ctx context.Context, email, sku string, value float64) (string, error) {
	return s.paymentURL, nil
}

func (s *stubBackend) RegisterToken(ctx context.Context, email, token string) error {
	return nil
}

func (s *stubBackend) ActivateCode(ctx context.Context, email, code string) (*models.Entitlements, error) {
	return s.activate, nil
}

func (s *stubBackend) CreateStatusUpload(ctx context.Context, deviceID, format string) (string, string, error) {
	return "", "", nil
}

// captureOutput redirects the print seams for the duration of the test
// and returns a getter for everything written.
func captureOutput(t *testing.T) func() string {
	t.Helper()
	var sb strings.Builder

	oldPrintln, oldPrintf := printlnFn, printfFn
	printlnFn = func(args ...any) { sb.WriteString(fmt.Sprintln(args...)) }
	printfFn = func(format string, args ...any) { fmt.Fprintf(&sb, format, args...) }
	t.Cleanup(func() { printlnFn, printfFn = oldPrintln, oldPrintf })

	return sb.String
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestApp(t *testing.T, backend services.Backend, input string) *App {
	t.Helper()
	ctx := context.Background()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := state.OpenDatabase(ctx, dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	store, err := state.Open(ctx, db, testLogger())
	require.NoError(t, err)

	logger := testLogger()
	cfg := &config.Config{}
	cfg.LoadDefaults()

	return &App{
		config:        cfg,
		store:         store,
		logger:        logger,
		account:       services.NewAccountService(store),
		entitlements:  services.NewEntitlementService(store, backend, logger),
		purchases:     services.NewPurchaseService(store, backend, nil, logger),
		notifications: services.NewNotificationService(store, backend),
		community:     services.NewCommunityService(store, nil, nil),
		share:         services.NewShareService(store, backend, nil),
		screen:        homeScreen{},
		reader:        bufio.NewReader(strings.NewReader(input)),
	}
}

func TestOpenLockedVolumeGatesOnEmailThenResumes(t *testing.T) {
	out := captureOutput(t)
	ctx := context.Background()

	backend := &stubBackend{paymentURL: "https://pay.example/x"}
	// the email gate consumes this line
	app := newTestApp(t, backend, "ana@ex.com\n")

	app.openVolume(ctx, 2)

	assert.Contains(t, out(), "Bem-vindo(a)!")
	assert.Contains(t, out(), "Iniciando checkout...")
	assert.Contains(t, out(), "https://pay.example/x")
	assert.Equal(t, "ana@ex.com", app.store.Email())

	// the deferred intent was consumed
	pending, err := app.store.TakePendingAction(ctx)
	require.NoError(t, err)
	assert.Nil(t, pending)
}

func TestEmailGateRepromptsOnInvalidAddress(t *testing.T) {
	out := captureOutput(t)
	ctx := context.Background()

	backend := &stubBackend{paymentURL: "https://pay.example/x"}
	app := newTestApp(t, backend, "sem-arroba\nana@ex.com\n")

	app.openVolume(ctx, 2)

	assert.Contains(t, out(), "Email inválido.")
	assert.Contains(t, out(), "Bem-vindo(a)!")
	assert.Contains(t, out(), "Iniciando checkout...")
	assert.Equal(t, "ana@ex.com", app.store.Email())
}

func TestEmailGateDismissedByBlankLine(t *testing.T) {
	out := captureOutput(t)
	ctx := context.Background()

	app := newTestApp(t, &stubBackend{}, "\n")

	app.openVolume(ctx, 2)

	assert.NotContains(t, out(), "Bem-vindo(a)!")
	assert.Empty(t, app.store.Email())

	// the intent stays parked for a later email submission
	pending, err := app.store.TakePendingAction(ctx)
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, models.PendingPurchase, pending.Type)
}

func TestSplitCommand(t *testing.T) {
	cmd, args, rest := splitCommand("nota confiar mais em Deus")
	assert.Equal(t, "nota", cmd)
	assert.Equal(t, []string{"confiar", "mais", "em", "Deus"}, args)
	assert.Equal(t, "confiar mais em Deus", rest)

	cmd, args, rest = splitCommand("  nota oi  ")
	assert.Equal(t, "nota", cmd)
	assert.Equal(t, []string{"oi"}, args)
	assert.Equal(t, "oi", rest)

	cmd, args, rest = splitCommand("ABRIR 2")
	assert.Equal(t, "abrir", cmd)
	assert.Equal(t, []string{"2"}, args)
	assert.Equal(t, "2", rest)

	cmd, args, rest = splitCommand("   ")
	assert.Empty(t, cmd)
	assert.Nil(t, args)
	assert.Empty(t, rest)
}

func TestSubmitEmailInvalidTogglesNothing(t *testing.T) {
	out := captureOutput(t)
	app := newTestApp(t, &stubBackend{}, "")

	app.submitEmail(context.Background(), "sem-arroba")

	assert.Contains(t, out(), "Email inválido.")
	assert.Empty(t, app.store.Email())
}

func TestOpenUnlockedVolumeNavigatesToDayList(t *testing.T) {
	_ = captureOutput(t)
	app := newTestApp(t, &stubBackend{}, "")

	app.openVolume(context.Background(), 1)

	sc, ok := app.screen.(dayListScreen)
	require.True(t, ok)
	assert.Equal(t, 1, sc.volume.ID)
}

func TestRefreshAccessToasts(t *testing.T) {
	out := captureOutput(t)
	ctx := context.Background()

	backend := &stubBackend{access: &models.Entitlements{Volume2: true}}
	app := newTestApp(t, backend, "")
	require.NoError(t, app.store.SetEmail(ctx, "ana@ex.com"))

	app.refreshAccess(ctx)
	assert.Contains(t, out(), "Acessos atualizados! ✨")
	assert.True(t, app.store.Unlocked(2))

	backend.access = nil
	app.refreshAccess(ctx)
	assert.Contains(t, out(), "Nenhum novo acesso encontrado.")
}

func TestCheckInCommand(t *testing.T) {
	out := captureOutput(t)
	app := newTestApp(t, &stubBackend{}, "")

	app.checkIn(context.Background(), "5")

	assert.Contains(t, out(), "Estado salvo ✨")
	got, ok := app.store.TodayCheckIn()
	require.True(t, ok)
	assert.Equal(t, "🙌", got.Emoji)
}

func TestGetSimpleText(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("  hello \n"))
	got, err := GetSimpleText(reader, "Prompt")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestGetSimpleTextPartialLineOnEOF(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("partial"))
	got, err := GetSimpleText(reader, "Prompt")
	require.NoError(t, err)
	assert.Equal(t, "partial", got)
}
