package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	if a.userEmail == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userEmail)
}

// Root runs the interactive command loop until exit or EOF.
func (a *App) Root(ctx context.Context) {

	fmt.Fprintln(a.out, "Welcome to passvault CLI (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "pv %s> ", a.getStatus())

		line, err := a.reader.ReadString('\n')
		if err != nil {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: list, show N, add, edit N, del N, export FILE, import FILE, gen [LENGTH], exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: register, login, gen [LENGTH], exit")
			}

		case "register":
			a.Register(ctx)

		case "login":
			a.Login(ctx)

		case "list", "l":
			a.List(ctx)

		case "show":
			a.Show(ctx, args)

		case "add":
			a.Add(ctx)

		case "edit":
			a.Edit(ctx, args)

		case "del":
			a.Delete(ctx, args)

		case "export":
			a.Export(ctx, args)

		case "import":
			a.Import(ctx, args)

		case "gen":
			a.Generate(args)

		case "exit", "quit":
			return

		default:
			fmt.Fprintf(a.out, "unknown command: %s\n", cmd)
		}
	}
}
