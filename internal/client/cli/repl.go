package cli

import (
	"bufio"
	"context"
	"os"
	"strings"
)

// repl reads commands and dispatches them against the current screen.
// Errors are reported as toasts; nothing here is fatal.
func (a *App) repl(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	a.render()

	for {
		printfFn("lp %s> ", a.screen.name())
		if !scanner.Scan() {
			return
		}
		cmd, args, rest := splitCommand(scanner.Text())
		if cmd == "" {
			continue
		}

		if a.dispatchGlobal(ctx, cmd) {
			continue
		}
		if cmd == "sair" {
			printlnFn("Até amanhã 🙏")
			return
		}

		switch a.screen.(type) {
		case homeScreen:
			a.dispatchHome(ctx, cmd, args, rest)
		case dayListScreen:
			a.dispatchDayList(ctx, cmd, args)
		case readerScreen:
			a.dispatchReader(ctx, cmd, args, rest)
		case progressScreen, communityScreen, settingsScreen:
			a.dispatchAux(ctx, cmd, args, rest)
		}
	}
}

// splitCommand breaks an input line into the lowered command word, its
// remaining fields and the free-text remainder after the command word.
// Surrounding whitespace never changes the result.
func splitCommand(line string) (cmd string, args []string, rest string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", nil, ""
	}
	trimmed := strings.TrimSpace(line)
	return strings.ToLower(parts[0]), parts[1:], strings.TrimSpace(strings.TrimPrefix(trimmed, parts[0]))
}

// dispatchGlobal handles the commands that work on every screen.
// Reports whether the command was consumed.
func (a *App) dispatchGlobal(ctx context.Context, cmd string) bool {
	switch cmd {
	case "ajuda":
		a.printHelp()
	case "inicio", "início":
		a.navigate(homeScreen{})
		a.render()
	case "progresso":
		a.navigate(progressScreen{})
		a.render()
	case "comunidade":
		a.navigate(communityScreen{})
		a.render()
	case "ajustes":
		a.navigate(settingsScreen{})
		a.render()
	default:
		return false
	}
	return true
}

func (a *App) printHelp() {
	switch a.screen.(type) {
	case homeScreen:
		printlnFn("Comandos: abrir <vol>, atualizar, humor <1-5>, nota <texto>, combo, progresso, comunidade, ajustes, sair")
	case dayListScreen:
		printlnFn("Comandos: ler <dia>, voltar, sair")
	case readerScreen:
		printlnFn("Comandos: ouvir, concluir, favoritar, anotar <falou|entrega|passo> <texto>, legenda, cartao [story|feed] [fundo], voltar, sair")
	case communityScreen:
		printlnFn("Comandos: entrar, buscar <local>, perto, voltar, sair")
	case settingsScreen:
		printlnFn("Comandos: email <endereço>, fonte <sm|base|lg>, avisos <on|off>, codigo, zerar, voltar, sair")
	default:
		printlnFn("Comandos: voltar, inicio, sair")
	}
}
