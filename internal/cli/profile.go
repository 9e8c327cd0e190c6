package cli

import (
	"github.com/spf13/cobra"

	"taskdeck/internal/api"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Profile and password management",
	}
	cmd.AddCommand(newProfileUpdateCmd(app))
	cmd.AddCommand(newProfilePasswordCmd(app))
	return cmd
}

func newProfileUpdateCmd(app *App) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update display name and email",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opContext(app)
			defer cancel()

			client, err := loggedInClient(ctx, app)
			if err != nil {
				return err
			}
			id, err := client.UpdateProfile(ctx, api.ProfileUpdate{Name: name, Email: email})
			if err != nil {
				return err
			}
			return writeOut(cmd, app, id)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New display name")
	cmd.Flags().StringVar(&email, "new-email", "", "New email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("new-email")
	return cmd
}

func newProfilePasswordCmd(app *App) *cobra.Command {
	var current, next, confirmation string

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change the account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if next != confirmation {
				return confirmationMismatchError{}
			}
			ctx, cancel := opContext(app)
			defer cancel()

			client, err := loggedInClient(ctx, app)
			if err != nil {
				return err
			}
			msg, err := client.ChangePassword(ctx, api.PasswordChange{
				CurrentPassword:      current,
				Password:             next,
				PasswordConfirmation: confirmation,
			})
			if err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]string{"message": msg})
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "Current password")
	cmd.Flags().StringVar(&next, "new", "", "New password")
	cmd.Flags().StringVar(&confirmation, "confirmation", "", "Must match --new")
	_ = cmd.MarkFlagRequired("current")
	_ = cmd.MarkFlagRequired("new")
	_ = cmd.MarkFlagRequired("confirmation")
	return cmd
}
