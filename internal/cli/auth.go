package cli

import (
	"github.com/spf13/cobra"

	"taskdeck/internal/api"
)

func newLoginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print the normalized identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opContext(app)
			defer cancel()

			client, err := newClient(app)
			if err != nil {
				return err
			}
			if app.cfg.Email == "" || app.cfg.Password == "" {
				return errMissingCredentials
			}
			id, err := client.Login(ctx, api.Credentials{Email: app.cfg.Email, Password: app.cfg.Password})
			if err != nil {
				return err
			}
			return writeOut(cmd, app, id)
		},
	}
}

func newRegisterCmd(app *App) *cobra.Command {
	var name, confirmation string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and print the normalized identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Both checks happen before any network call; the adapter only
			// forwards. Empty credentials would otherwise pass the
			// confirmation match trivially.
			if app.cfg.Email == "" || app.cfg.Password == "" {
				return errMissingCredentials
			}
			if confirmation != app.cfg.Password {
				return confirmationMismatchError{}
			}

			ctx, cancel := opContext(app)
			defer cancel()

			client, err := newClient(app)
			if err != nil {
				return err
			}
			id, err := client.Register(ctx, api.RegisterCredentials{
				Name:                 name,
				Email:                app.cfg.Email,
				Password:             app.cfg.Password,
				PasswordConfirmation: confirmation,
			})
			if err != nil {
				return err
			}
			return writeOut(cmd, app, id)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&confirmation, "password-confirmation", "", "Must match --password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password-confirmation")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Invalidate the server-side session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opContext(app)
			defer cancel()

			client, err := loggedInClient(ctx, app)
			if err != nil {
				return err
			}
			if err := client.Logout(ctx); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]string{"status": "logged out"})
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the authenticated identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opContext(app)
			defer cancel()

			client, err := loggedInClient(ctx, app)
			if err != nil {
				return err
			}
			id, err := client.FetchIdentity(ctx)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, id)
		},
	}
}
