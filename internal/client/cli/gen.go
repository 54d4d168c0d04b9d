package cli

import (
	"fmt"
	"strconv"

	"passvault/internal/passgen"
)

// Generate prints a random password. With no argument the length defaults
// to 16; all character categories are enabled and look-alike characters
// are excluded.
func (a *App) Generate(args []string) {
	length := 16
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintln(a.out, "usage: gen [LENGTH]")
			return
		}
		length = n
	}

	password, err := passgen.Generate(length,
		passgen.Categories{Letters: true, Digits: true, Symbols: true}, true)
	if err != nil {
		fmt.Fprintf(a.out, "error generating password: %v\n", err)
		return
	}

	fmt.Fprintln(a.out, password)
}
