package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"passvault/internal/client"
	"passvault/internal/common"
)

// List fetches and prints the user's entries, decrypted for display. The
// listing is cached so show/edit/del can refer to entries by number.
func (a *App) List(ctx context.Context) {
	entries, err := a.api.ListEntries(ctx)
	if err != nil {
		a.printAPIError(err)
		return
	}

	for i := range entries {
		a.decryptEntry(&entries[i])
	}
	a.lastEntries = entries

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "vault is empty")
		return
	}

	for i, e := range entries {
		fmt.Fprintf(a.out, "%3d. %-25s %-25s %s\n", i+1, e.Title, e.Username, e.URL)
	}
}

// Show prints all fields of a single entry, password included.
func (a *App) Show(ctx context.Context, args []string) {
	entry, ok := a.pickEntry(args)
	if !ok {
		return
	}

	fmt.Fprintf(a.out, "Title:    %s\n", entry.Title)
	fmt.Fprintf(a.out, "Username: %s\n", entry.Username)
	fmt.Fprintf(a.out, "Password: %s\n", entry.Password)
	fmt.Fprintf(a.out, "URL:      %s\n", entry.URL)
	fmt.Fprintf(a.out, "Notes:    %s\n", entry.Notes)
	fmt.Fprintf(a.out, "Updated:  %s\n", entry.UpdatedAt.Format("2006-01-02 15:04:05"))
}

// Add prompts for the five content fields, encrypts them and creates a new
// entry.
func (a *App) Add(ctx context.Context) {
	fields, err := a.promptFields(client.Fields{})
	if err != nil {
		fmt.Fprintf(a.out, "error reading input: %v\n", err)
		return
	}

	encrypted, err := a.encryptFields(fields)
	if err != nil {
		fmt.Fprintf(a.out, "error encrypting fields: %v\n", err)
		return
	}

	if _, err := a.api.CreateEntry(ctx, encrypted); err != nil {
		a.printAPIError(err)
		return
	}

	fmt.Fprintln(a.out, "entry added")
}

// Edit re-prompts the fields of an existing entry (empty input keeps the
// current value) and sends the update.
func (a *App) Edit(ctx context.Context, args []string) {
	entry, ok := a.pickEntry(args)
	if !ok {
		return
	}

	current := client.Fields{
		Title:    entry.Title,
		Username: entry.Username,
		Password: entry.Password,
		URL:      entry.URL,
		Notes:    entry.Notes,
	}

	fields, err := a.promptFields(current)
	if err != nil {
		fmt.Fprintf(a.out, "error reading input: %v\n", err)
		return
	}

	encrypted, err := a.encryptFields(fields)
	if err != nil {
		fmt.Fprintf(a.out, "error encrypting fields: %v\n", err)
		return
	}

	if _, err := a.api.UpdateEntry(ctx, entry.ID, encrypted); err != nil {
		a.printAPIError(err)
		return
	}

	fmt.Fprintln(a.out, "entry updated")
}

// Delete removes an entry by its displayed number.
func (a *App) Delete(ctx context.Context, args []string) {
	entry, ok := a.pickEntry(args)
	if !ok {
		return
	}

	if err := a.api.DeleteEntry(ctx, entry.ID); err != nil {
		a.printAPIError(err)
		return
	}

	fmt.Fprintln(a.out, "entry deleted")
}

// pickEntry resolves a 1-based index argument against the cached listing.
func (a *App) pickEntry(args []string) (*client.Entry, bool) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "usage: show|edit|del N (run 'list' first)")
		return nil, false
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(a.lastEntries) {
		fmt.Fprintln(a.out, "no such entry; run 'list' first")
		return nil, false
	}

	return &a.lastEntries[n-1], true
}

func (a *App) promptFields(current client.Fields) (client.Fields, error) {
	prompts := []struct {
		label string
		value *string
	}{
		{"Title", &current.Title},
		{"Username", &current.Username},
		{"Password", &current.Password},
		{"URL", &current.URL},
		{"Notes", &current.Notes},
	}

	for _, p := range prompts {
		label := p.label
		if *p.value != "" {
			label = fmt.Sprintf("%s [%s]", p.label, *p.value)
		}
		v, err := GetSimpleText(a.reader, label, a.out)
		if err != nil {
			return current, err
		}
		if v != "" {
			*p.value = v
		}
	}

	return current, nil
}

func (a *App) printAPIError(err error) {
	switch {
	case errors.Is(err, common.ErrUnauthorized):
		fmt.Fprintln(a.out, "session expired; please login again")
	case errors.Is(err, common.ErrNotFound):
		fmt.Fprintln(a.out, "entry not found")
	default:
		fmt.Fprintf(a.out, "request failed: %v\n", err)
	}
}
