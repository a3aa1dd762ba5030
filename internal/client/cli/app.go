package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dmelo-dev/luzpalavra/internal/client/api"
	"github.com/dmelo-dev/luzpalavra/internal/client/config"
	"github.com/dmelo-dev/luzpalavra/internal/client/platform"
	"github.com/dmelo-dev/luzpalavra/internal/client/services"
	"github.com/dmelo-dev/luzpalavra/internal/client/speech"
	"github.com/dmelo-dev/luzpalavra/internal/client/state"
	"github.com/dmelo-dev/luzpalavra/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the store, the services and the screen router together for
// the interactive CLI.
type App struct {
	config *config.Config
	store  *state.Store
	logger logging.Logger

	account       services.AccountService
	entitlements  services.EntitlementService
	purchases     services.PurchaseService
	notifications services.NotificationService
	community     services.CommunityService
	share         services.ShareService

	player *speech.Coordinator
	caps   platform.Capabilities

	screen Screen
	reader *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := state.OpenDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "err", err)
		return nil, err
	}

	store, err := state.Open(ctx, db, logger)
	if err != nil {
		return nil, err
	}

	backend := api.NewClient(c.ServerBaseURL)
	caps := platform.Probe()
	logger.Info(ctx, "platform capabilities", "probe", caps.String())

	var player *speech.Coordinator
	if engine, ok := speech.Probe(); ok {
		player = speech.NewCoordinator(engine, c.SpeechResumeGrace)
	} else {
		logger.Info(ctx, "no speech engine on this host")
	}

	return &App{
		config:        c,
		store:         store,
		logger:        logger,
		account:       services.NewAccountService(store),
		entitlements:  services.NewEntitlementService(store, backend, logger),
		purchases:     services.NewPurchaseService(store, backend, caps.Opener, logger),
		notifications: services.NewNotificationService(store, backend),
		community:     services.NewCommunityService(store, caps.Opener, caps.Geolocator),
		share:         services.NewShareService(store, backend, caps.Clipboard),
		player:        player,
		caps:          caps,
		screen:        homeScreen{},
		reader:        bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	printlnFn("Luz da Palavra (digite 'ajuda' para os comandos)")
	if a.store.Email() == "" {
		printlnFn("Bem-vindo(a)!")
	}
	a.repl(ctx)
}

// toast shows a short user-facing notice, in the wording of the app.
func (a *App) toast(msg string) {
	printlnFn(msg)
}

// printlnFn and printfFn are test seams for user-facing output.
var (
	printlnFn = func(args ...any) { fmt.Println(args...) }
	printfFn  = func(format string, args ...any) { fmt.Printf(format, args...) }
)
