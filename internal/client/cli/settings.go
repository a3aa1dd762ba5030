package cli

import (
	"context"
	"errors"

	"github.com/dmelo-dev/luzpalavra/internal/client/models"
	"github.com/dmelo-dev/luzpalavra/internal/common"
)

func (a *App) renderSettings() {
	email := a.account.Email()
	if email == "" {
		email = "(não informado)"
	}
	notif := "off"
	if a.notifications.Enabled() {
		notif = "on"
	}
	printfFn("Email: %s | Fonte: %s | Avisos diários: %s\n", email, a.store.FontScale(), notif)
}

func (a *App) dispatchAux(ctx context.Context, cmd string, args []string, rest string) {
	if cmd == "voltar" {
		a.navigate(homeScreen{})
		a.render()
		return
	}

	switch a.screen.(type) {
	case communityScreen:
		a.dispatchCommunity(ctx, cmd, rest)
	case settingsScreen:
		a.dispatchSettings(ctx, cmd, args)
	default:
		printlnFn("Comando desconhecido:", cmd)
	}
}

func (a *App) dispatchCommunity(ctx context.Context, cmd, rest string) {
	switch cmd {
	case "entrar":
		gated, err := a.community.JoinGroup(ctx)
		if gated {
			a.promptEmail(ctx)
			return
		}
		if errors.Is(err, common.ErrorUnavailable) {
			printlnFn("Abra no navegador:", "https://chat.whatsapp.com/IkqCQlm4gfo1KJWlJaZFch")
			return
		}
		if err != nil {
			a.logger.Warn(ctx, "could not open group invite", "err", err)
			return
		}
		a.toast("Abrindo WhatsApp... ✨")

	case "buscar":
		err := a.community.SearchChurches(ctx, rest)
		if errors.Is(err, common.ErrEmptyQuery) {
			a.toast("Digite um local ou escolha uma categoria.")
			return
		}
		if errors.Is(err, common.ErrorUnavailable) {
			a.toast("Busca indisponível neste aparelho.")
			return
		}

	case "perto":
		err := a.community.NearbyChurches(ctx)
		if errors.Is(err, common.ErrorUnavailable) {
			a.toast("Geolocalização não suportada.")
			return
		}
		if err != nil {
			a.toast("Erro ao obter localização. Tente busca manual.")
		}

	default:
		printlnFn("Comando desconhecido:", cmd)
	}
}

func (a *App) dispatchSettings(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "email":
		if len(args) == 0 {
			printlnFn("Uso: email <endereço>")
			return
		}
		a.submitEmail(ctx, args[0])

	case "fonte":
		if len(args) == 0 {
			printlnFn("Uso: fonte <sm|base|lg>")
			return
		}
		scale := models.FontScale(args[0])
		if !scale.Valid() {
			printlnFn("Uso: fonte <sm|base|lg>")
			return
		}
		if err := a.store.SetFontScale(ctx, scale); err != nil {
			a.logger.Warn(ctx, "could not save font scale", "err", err)
			return
		}
		a.toast("Estado salvo ✨")

	case "avisos":
		if len(args) == 0 {
			printlnFn("Uso: avisos <on|off>")
			return
		}
		a.setNotifications(ctx, args[0] == "on")

	case "codigo", "código":
		a.activateCode(ctx)

	case "zerar":
		if err := a.store.Reset(ctx); err != nil {
			a.logger.Warn(ctx, "could not reset state", "err", err)
			return
		}
		a.toast("Estado salvo ✨")

	default:
		printlnFn("Comando desconhecido:", cmd)
	}
}

func (a *App) setNotifications(ctx context.Context, on bool) {
	if !on {
		if err := a.notifications.Disable(ctx); err != nil {
			a.logger.Warn(ctx, "could not disable notifications", "err", err)
		}
		return
	}

	err := a.notifications.Enable(ctx)
	switch {
	case errors.Is(err, common.ErrEmailRequired):
		a.promptEmail(ctx)
	case err != nil:
		a.toast("Falha na conexão.")
	default:
		a.toast("Notificações ativas! 🙏")
	}
}

func (a *App) activateCode(ctx context.Context) {
	code, err := getPromoCode()
	if err != nil {
		a.logger.Warn(ctx, "could not read promo code", "err", err)
		return
	}

	err = a.entitlements.ActivateByCode(ctx, code)
	switch {
	case errors.Is(err, common.ErrEmptyPromoCode):
		a.toast("Digite o código.")
	case errors.Is(err, common.ErrEmailRequired):
		a.promptEmail(ctx)
	case errors.Is(err, common.ErrPromoUsed):
		a.toast("Código já utilizado.")
	case errors.Is(err, common.ErrPromoExpired):
		a.toast("Código expirado.")
	case err != nil:
		a.toast("Código inválido.")
	default:
		a.toast("Liberado! ✨")
	}
}
