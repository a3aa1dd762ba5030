package cli

import (
	"context"
	"errors"

	"github.com/dmelo-dev/luzpalavra/internal/client/models"
	"github.com/dmelo-dev/luzpalavra/internal/common"
)

// promptEmail opens the email gate: reads an address, stores it and
// resumes the action that was waiting behind the gate. An invalid
// address keeps the gate open; a blank line dismisses it.
func (a *App) promptEmail(ctx context.Context) {
	for {
		email, err := GetSimpleText(a.reader, "Informe seu email para continuar")
		if err != nil || email == "" {
			return
		}
		if a.submitEmail(ctx, email) {
			return
		}
	}
}

// submitEmail stores the address and replays any parked action.
// Reports whether the gate is settled; an invalid address leaves it
// open.
func (a *App) submitEmail(ctx context.Context, email string) bool {
	pending, err := a.account.SubmitEmail(ctx, email)
	if errors.Is(err, common.ErrInvalidEmail) {
		a.toast("Email inválido.")
		return false
	}
	if err != nil {
		a.logger.Warn(ctx, "could not save email", "err", err)
		return true
	}
	a.toast("Bem-vindo(a)!")

	if pending != nil {
		a.resumePending(ctx, *pending)
	}
	return true
}

// resumePending replays the single action that was parked behind the
// email gate.
func (a *App) resumePending(ctx context.Context, action models.PendingAction) {
	switch action.Type {
	case models.PendingPurchase:
		a.startPurchase(ctx, action.SKU)
	case models.PendingCommunity:
		if gated, err := a.community.JoinGroup(ctx); !gated && err == nil {
			a.toast("Abrindo WhatsApp... ✨")
		}
	}
}

func (a *App) startPurchase(ctx context.Context, sku string) {
	res, err := a.purchases.InitiatePurchase(ctx, sku)
	switch {
	case errors.Is(err, common.ErrUnknownProduct):
		printlnFn("Produto não encontrado.")
		return
	case err != nil:
		a.toast("Falha na conexão.")
		return
	}

	if res.Gated {
		a.promptEmail(ctx)
		return
	}

	a.toast("Iniciando checkout...")
	if !res.Opened {
		printlnFn("Abra no navegador:", res.CheckoutURL)
	}
}
