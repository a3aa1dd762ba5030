package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/dmelo-dev/luzpalavra/internal/client/catalog"
	"github.com/dmelo-dev/luzpalavra/internal/client/models"
	"github.com/dmelo-dev/luzpalavra/internal/client/services"
	"github.com/dmelo-dev/luzpalavra/internal/common"
)

// render prints the current screen's content.
func (a *App) render() {
	switch sc := a.screen.(type) {
	case homeScreen:
		a.renderHome()
	case dayListScreen:
		a.renderDayList(sc)
	case readerScreen:
		a.renderReader(sc)
	case progressScreen:
		a.renderProgress()
	case communityScreen:
		printlnFn("WhatsApp Oficial e igrejas perto de você. Digite 'ajuda'.")
	case settingsScreen:
		a.renderSettings()
	}
}

func (a *App) renderHome() {
	progress := a.store.Progress()
	printfFn("🔥 Sequência: %d dia(s) | ✅ %d leitura(s)\n", progress.Streak, progress.TotalCompleted())

	if _, ok := a.store.TodayCheckIn(); !ok {
		printlnFn("Como está seu coração hoje? (humor 1-5)")
	}

	for _, v := range catalog.Volumes() {
		marker := "  "
		if !a.entitlements.IsUnlocked(v.ID) {
			marker = "🔒"
		}
		printfFn("%s Vol %d — %s (%s)\n", marker, v.ID, v.Title, v.Subtitle)
	}
}

func (a *App) dispatchHome(ctx context.Context, cmd string, args []string, rest string) {
	switch cmd {
	case "abrir":
		if len(args) == 0 {
			printlnFn("Uso: abrir <vol>")
			return
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			printlnFn("Uso: abrir <vol>")
			return
		}
		a.openVolume(ctx, id)

	case "atualizar":
		a.refreshAccess(ctx)

	case "humor":
		if len(args) == 0 {
			printlnFn("Uso: humor <1-5>")
			return
		}
		a.checkIn(ctx, args[0])

	case "nota":
		if rest == "" {
			printlnFn("Uso: nota <texto>")
			return
		}
		if err := a.store.AddQuickNote(ctx, rest); err != nil {
			a.toast("Escreva algo primeiro.")
			return
		}
		a.toast("Nota salva ✨")

	case "combo":
		a.startPurchase(ctx, catalog.ComboSKU)

	default:
		printlnFn("Comando desconhecido:", cmd)
	}
}

// openVolume goes to the day list, or starts the purchase flow when the
// volume is still locked.
func (a *App) openVolume(ctx context.Context, id int) {
	volume, ok := catalog.VolumeByID(id)
	if !ok {
		printlnFn("Volume não encontrado.")
		return
	}

	if !a.entitlements.IsUnlocked(id) {
		a.startPurchase(ctx, catalog.SKUForVolume(id))
		return
	}

	if err := a.store.SetCurrentVolume(ctx, id); err != nil {
		a.logger.Warn(ctx, "could not persist current volume", "err", err)
	}
	a.navigate(dayListScreen{volume: volume})
	a.render()
}

func (a *App) refreshAccess(ctx context.Context) {
	outcome, err := a.entitlements.Refresh(ctx)
	switch {
	case errors.Is(err, common.ErrEmailRequired):
		a.toast("Informe seu email primeiro (em ajustes).")
	case err != nil:
		a.toast("Erro ao conectar com servidor.")
	case outcome == services.RefreshUpdated:
		a.toast("Acessos atualizados! ✨")
	case outcome == services.RefreshNoAccess:
		a.toast("Nenhum novo acesso encontrado.")
	}
}

func (a *App) checkIn(ctx context.Context, arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(models.CheckInEmojis) {
		printlnFn("Uso: humor <1-5>")
		return
	}
	if err := a.store.RecordCheckIn(ctx, models.CheckInEmojis[n-1]); err != nil {
		a.logger.Warn(ctx, "could not save check-in", "err", err)
		return
	}
	a.toast("Estado salvo ✨")
}

func (a *App) renderDayList(sc dayListScreen) {
	printfFn("Vol %d — %s\n", sc.volume.ID, sc.volume.Title)
	for _, d := range sc.volume.Days {
		done := " "
		if a.store.IsCompleted(sc.volume.ID, d.Day) {
			done = "✅"
		}
		fav := " "
		if a.store.IsFavorite(sc.volume.ID, d.Day) {
			fav = "❤️"
		}
		printfFn("%s%s Dia %d — %s\n", done, fav, d.Day, d.Title)
	}
}

func (a *App) dispatchDayList(ctx context.Context, cmd string, args []string) {
	sc := a.screen.(dayListScreen)

	switch cmd {
	case "ler":
		if len(args) == 0 {
			printlnFn("Uso: ler <dia>")
			return
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			printlnFn("Uso: ler <dia>")
			return
		}
		day, ok := sc.volume.DayByNumber(n)
		if !ok {
			printlnFn("Dia não encontrado.")
			return
		}
		a.navigate(readerScreen{volume: sc.volume, day: day})
		a.render()

	case "voltar":
		a.navigate(homeScreen{})
		a.render()

	default:
		printlnFn("Comando desconhecido:", cmd)
	}
}

func (a *App) renderProgress() {
	p := a.store.Progress()
	printfFn("🔥 Sequência: %d dia(s)\n", p.Streak)
	printfFn("✅ Leituras concluídas: %d\n", p.TotalCompleted())

	favs := 0
	for _, days := range p.Favorites {
		favs += len(days)
	}
	printfFn("❤️ Favoritos: %d\n", favs)

	if checkins := a.store.CheckIns(); len(checkins) > 0 {
		printfFn("Últimos humores: ")
		start := 0
		if len(checkins) > 7 {
			start = len(checkins) - 7
		}
		for _, c := range checkins[start:] {
			printfFn("%s ", c.Emoji)
		}
		printlnFn()
	}

	for _, n := range a.store.QuickNotes() {
		printfFn("- %s (%s)\n", n.Text, n.Date.Format("02/01"))
	}
}
