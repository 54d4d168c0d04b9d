package cli

import (
	"context"
	"errors"
	"fmt"

	"passvault/internal/common"
)

// Register creates a new account on the server and keeps the issued token
// for the rest of the session.
func (a *App) Register(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error reading email: %v\n", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error reading password: %v\n", err)
		return
	}

	if err := a.api.Signup(ctx, email, password); err != nil {
		switch {
		case errors.Is(err, common.ErrConflict):
			fmt.Fprintln(a.out, "email already exists")
		case errors.Is(err, common.ErrValidation):
			fmt.Fprintln(a.out, "email and password required")
		default:
			fmt.Fprintf(a.out, "registration failed: %v\n", err)
		}
		return
	}

	a.userEmail = email
	fmt.Fprintln(a.out, "registered and logged in")
}

// Login obtains a fresh token for an existing account.
func (a *App) Login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error reading email: %v\n", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error reading password: %v\n", err)
		return
	}

	if err := a.api.Login(ctx, email, password); err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			fmt.Fprintln(a.out, "invalid credentials")
		} else {
			fmt.Fprintf(a.out, "login failed: %v\n", err)
		}
		return
	}

	a.userEmail = email
	fmt.Fprintln(a.out, "logged in")
}
