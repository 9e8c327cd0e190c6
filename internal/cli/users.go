package cli

import "github.com/spf13/cobra"

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "User directory (admin)",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all users with normalized roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opContext(app)
			defer cancel()

			client, err := loggedInClient(ctx, app)
			if err != nil {
				return err
			}
			users, err := client.FetchUsers(ctx)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, users)
		},
	})
	return cmd
}
