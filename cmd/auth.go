package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"scoreline/internal/session"
	"scoreline/internal/shared"
)

// AuthRegister creates a new account. No session state is touched; the user
// signs in afterwards.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	if err := r.gate(session.RequireGuest, "auth register"); err != nil {
		return err
	}

	password := cmd.String("password")
	confirm := cmd.String("confirm")
	if confirm == "" {
		confirm = password
	}

	user, err := r.auth.Register(ctx, cmd.String("username"), cmd.String("email"), password, confirm)
	if err != nil {
		return err
	}

	r.logger.Info("account created", "username", user.Username)
	r.writePlain("✓ Account created: %s <%s>\n", user.Username, user.Email)
	r.writePlain("Run 'scoreline auth login' to sign in.\n")
	return nil
}

// AuthLogin runs the sign-in chain and persists the session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.gate(session.RequireGuest, "auth login"); err != nil {
		return err
	}

	err := r.session.Run(ctx, func(ctx context.Context) error {
		_, err := r.engine.Login(ctx, cmd.String("username"), cmd.String("password"))
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	signedIn := r.session.User()
	r.writePlain("✓ Signed in as %s\n", signedIn.Username)
	return nil
}

// AuthLogout clears the persisted session. Purely local, no backend call.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.session.Logout(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	r.writePlain("✓ Signed out\n")
	return nil
}

// AuthWhoami shows the signed-in user from local session state.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	if err := r.gate(session.RequireAuthenticated, "auth whoami"); err != nil {
		return err
	}

	user := r.session.User()
	if cmd.Bool("json") {
		return r.writeJSON(user, true)
	}

	r.writePlain("Username: %s\n", user.Username)
	r.writePlain("Email: %s\n", user.Email)
	if len(user.Roles) > 0 {
		r.writePlain("Roles: %v\n", user.Roles)
	}
	return nil
}

// AuthStatus reports the session state. With --verify the token is checked
// against the backend and a rejected session is cleared.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("verify") {
		user, err := r.engine.Verify(ctx)
		if err != nil {
			if errors.Is(err, shared.ErrNotAuthenticated) {
				r.writePlain("✗ Not signed in\n")
				return nil
			}
			r.writePlain("✗ Session rejected by backend, cleared locally\n")
			return err
		}
		r.writePlain("✓ Session valid\n")
		r.writePlain("Signed in as: %s\n", user.Username)
		return nil
	}

	if !r.session.IsAuthenticated() {
		r.writePlain("✗ Not signed in\n")
		return nil
	}

	user := r.session.User()
	r.writePlain("✓ Signed in as %s\n", user.Username)
	r.writePlain("Note: local state only, run with --verify to check the token against the backend\n")
	return nil
}
