package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"taskdeck/internal/api"
	"taskdeck/internal/config"
	"taskdeck/internal/format"
	"taskdeck/internal/session"
	"taskdeck/internal/tui"
)

type App struct {
	BaseURL    string
	Email      string
	Password   string
	PrettyJSON bool
	Format     string

	cfg config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "taskdeck",
		Short:        "Terminal client for the task service (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  taskdeck

  # Scriptable commands (credentials from flags or TASKDECK_EMAIL/TASKDECK_PASSWORD)
  taskdeck tasks list --status "To Do" --sort-by due_date
  taskdeck tasks create --title "Buy milk" --tags "home, errands"
  taskdeck whoami
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		app.cfg = config.Load()
		if app.BaseURL != "" {
			app.cfg.BaseURL = app.BaseURL
		}
		if app.Email != "" {
			app.cfg.Email = app.Email
		}
		if app.Password != "" {
			app.cfg.Password = app.Password
		}
	}

	cmd.PersistentFlags().StringVar(&app.BaseURL, "base-url", "", "Service /api root (default: TASKDECK_BASE_URL)")
	cmd.PersistentFlags().StringVar(&app.Email, "email", "", "Account email (default: TASKDECK_EMAIL)")
	cmd.PersistentFlags().StringVar(&app.Password, "password", "", "Account password (default: TASKDECK_PASSWORD)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "json", "Output format (json)")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newRegisterCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newUsersCmd(app))
	cmd.AddCommand(newProfileCmd(app))

	return cmd
}

func runTUI(app *App) error {
	client, err := api.New(app.cfg.BaseURL, app.cfg.Timeout)
	if err != nil {
		return err
	}
	return tui.Run(tui.Options{
		Client:   client,
		Store:    session.NewStore(client),
		Theme:    app.cfg.Theme,
		DebugLog: app.cfg.DebugLog,
	})
}

// opContext bounds one CLI invocation's network work.
func opContext(app *App) (context.Context, context.CancelFunc) {
	timeout := app.cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	// Scriptable commands log in first, so allow both calls.
	return context.WithTimeout(context.Background(), 2*timeout)
}

func newClient(app *App) (*api.Client, error) {
	return api.New(app.cfg.BaseURL, app.cfg.Timeout)
}

// loggedInClient authenticates from config for one scriptable invocation.
// The session cookie lives only in this process's jar.
func loggedInClient(ctx context.Context, app *App) (*api.Client, error) {
	client, err := newClient(app)
	if err != nil {
		return nil, err
	}
	if app.cfg.Email == "" || app.cfg.Password == "" {
		return nil, errMissingCredentials
	}
	if _, err := client.Login(ctx, api.Credentials{Email: app.cfg.Email, Password: app.cfg.Password}); err != nil {
		return nil, err
	}
	return client, nil
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}
