package cli

import (
	"context"
	"strings"

	"github.com/dmelo-dev/luzpalavra/internal/client/models"
	"github.com/dmelo-dev/luzpalavra/internal/client/services"
)

func (a *App) renderReader(sc readerScreen) {
	d := sc.day
	printfFn("— Dia %d: %s —\n\n", d.Day, d.Title)
	printfFn("\"%s\"\n%s\n\n", d.Verse, d.Reference)
	printlnFn(d.Reading)
	printfFn("\nAplicação: %s\n", d.Application)
	printfFn("Oração: %s\n", d.Prayer)
	printfFn("Exercício: %s\n", d.Exercise)
	printfFn("\n✨ %s\n", d.AnchorPhrase)
}

func (a *App) dispatchReader(ctx context.Context, cmd string, args []string, rest string) {
	sc := a.screen.(readerScreen)

	switch cmd {
	case "ouvir":
		a.toggleSpeech(sc)

	case "concluir":
		newly, err := a.store.MarkDayCompleted(ctx, sc.volume.ID, sc.day.Day)
		if err != nil {
			a.logger.Warn(ctx, "could not save completion", "err", err)
			return
		}
		if newly {
			a.toast("Leitura concluída ✅")
		} else {
			printlnFn("Dia já concluído.")
		}

	case "favoritar":
		added, err := a.store.ToggleFavorite(ctx, sc.volume.ID, sc.day.Day)
		if err != nil {
			a.logger.Warn(ctx, "could not save favorite", "err", err)
			return
		}
		if added {
			a.toast("Favoritado ❤️")
		} else {
			a.toast("Removido 💔")
		}

	case "anotar":
		a.saveNote(ctx, sc, args, rest)

	case "legenda":
		if err := a.share.CopyCaption(ctx, sc.volume.ID, sc.day); err != nil {
			printlnFn(a.share.Caption(sc.volume.ID, sc.day))
			a.toast("Copie e cole no WhatsApp 🙏")
			return
		}
		a.toast("Legenda copiada! ✨")

	case "cartao":
		a.printCard(sc, args)

	case "voltar":
		a.navigate(dayListScreen{volume: sc.volume})
		a.render()

	default:
		printlnFn("Comando desconhecido:", cmd)
	}
}

func (a *App) toggleSpeech(sc readerScreen) {
	if a.player == nil {
		a.toast("Leitura em voz alta indisponível neste aparelho.")
		return
	}
	st, err := a.player.Toggle(sc.day.SpokenText())
	if err != nil {
		a.toast("Não consegui iniciar a leitura em voz alta.")
		return
	}
	printlnFn("🔊", st.String())
}

var noteFields = map[string]models.NoteField{
	"falou":   models.NoteFieldGodSpoke,
	"entrega": models.NoteFieldSurrender,
	"passo":   models.NoteFieldPracticalStep,
}

func (a *App) saveNote(ctx context.Context, sc readerScreen, args []string, rest string) {
	if len(args) < 2 {
		printlnFn("Uso: anotar <falou|entrega|passo> <texto>")
		return
	}
	field, ok := noteFields[strings.ToLower(args[0])]
	if !ok {
		printlnFn("Uso: anotar <falou|entrega|passo> <texto>")
		return
	}
	text := strings.TrimSpace(strings.TrimPrefix(rest, args[0]))
	if err := a.store.SetNoteField(ctx, sc.volume.ID, sc.day.Day, field, text); err != nil {
		a.logger.Warn(ctx, "could not save note", "err", err)
		return
	}
	a.toast("Nota salva ✨")
}

// printCard shows the status-card descriptor a rendering frontend would
// rasterize.
func (a *App) printCard(sc readerScreen, args []string) {
	format := services.CardFormatStory
	gradientID := ""
	if len(args) > 0 && args[0] == "feed" {
		format = services.CardFormatFeed
	}
	if len(args) > 1 {
		gradientID = args[1]
	}

	card := a.share.BuildCard(format, gradientID, sc.volume.ID, sc.day)
	printfFn("Cartão %dx%d, fundo %s (%s)\n", card.Width, card.Height, card.Gradient.Name, card.Gradient.Tone)
	printfFn("\"%s\" — %s\n", card.Phrase, card.Ref)
}
