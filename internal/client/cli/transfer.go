package cli

import (
	"context"
	"fmt"
	"os"
)

// Export downloads the vault as one JSON array document and writes it to a
// file. Fields stay encrypted in the document.
func (a *App) Export(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "usage: export FILE")
		return
	}

	document, err := a.api.Export(ctx)
	if err != nil {
		a.printAPIError(err)
		return
	}

	if err := os.WriteFile(args[0], document, 0600); err != nil {
		fmt.Fprintf(a.out, "error writing file: %v\n", err)
		return
	}

	fmt.Fprintf(a.out, "exported to %s\n", args[0])
}

// Import uploads a previously exported document. Entries are appended to
// the vault, re-owned to the current account.
func (a *App) Import(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "usage: import FILE")
		return
	}

	document, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(a.out, "error reading file: %v\n", err)
		return
	}

	result, err := a.api.Import(ctx, document)
	if err != nil {
		a.printAPIError(err)
		return
	}

	fmt.Fprintf(a.out, "imported %d entries (%d failed)\n", result.Imported, result.Failed)
}
