package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"auralis-cli/internal/config"
	"auralis-cli/internal/format"
	"auralis-cli/internal/logging"
	"auralis-cli/internal/organizer"
	"auralis-cli/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type App struct {
	Dir        string
	Format     string
	PrettyJSON bool
	LogLevel   string

	v        *viper.Viper
	settings *config.Settings
	log      *slog.Logger
	closeLog func() error
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "auralis",
		Short:         "Auralis personal organizer (inbox, tasks, projects, areas, notes)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Capture something, then turn it into a task
  auralis inbox add --content "Renew passport"
  auralis inbox convert inbox_...

  # Projects need an open task before they can become active
  auralis projects add --name "Fix fence"
  auralis tasks add --title "Buy nails" --project project_...
  auralis projects set-status project_... --status active

  # Human-readable output
  auralis tasks list --format table
`),
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := app.load(cmd); err != nil {
			return writeErr(cmd, configError{err: err})
		}
		return nil
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.closeLog != nil {
			return app.closeLog()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Path to data dir (default: $AURALIS_DIR or <config dir>/data)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "", "Output format (json|edn|yaml|table)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level on stderr (debug|info|warn|error)")

	cmd.AddCommand(newInboxCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newAreasCmd(app))
	cmd.AddCommand(newNotesCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// load resolves settings with precedence flags > env > config.yaml > defaults.
func (app *App) load(cmd *cobra.Command) error {
	v, err := config.New()
	if err != nil {
		return err
	}
	flags := cmd.Root().PersistentFlags()
	for key, name := range map[string]string{
		"dir":       "dir",
		"format":    "format",
		"pretty":    "pretty",
		"log.level": "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}
	s, err := config.Load(v)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(s.Log.Level)
	if err != nil {
		return err
	}

	app.v = v
	app.settings = s
	app.Dir = s.Dir
	app.Format = s.Format
	app.PrettyJSON = s.Pretty
	app.log = logging.New(cmd.ErrOrStderr(), level)
	if s.Log.File != "" {
		fl, closeFn, err := logging.NewFile(s.Log.File, level)
		if err != nil {
			return err
		}
		app.log = fl
		app.closeLog = closeFn
	}
	return nil
}

// withService opens the store, runs fn and closes the store again.
func withService(cmd *cobra.Command, app *App, fn func(ctx context.Context, svc *organizer.Service) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(ctx, app.Dir)
	if err != nil {
		return writeErr(cmd, fmt.Errorf("open store: %w", err))
	}
	defer func() { _ = st.Close() }()

	svc, err := organizer.New(ctx, st, organizer.Options{
		DefaultAreaID:   app.settings.DefaultArea.ID,
		DefaultAreaName: app.settings.DefaultArea.Name,
		Logger:          app.log,
	})
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := fn(ctx, svc); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

// writeErr prints err as a JSON error envelope on stderr. The returned error is
// marked so Execute does not report it twice.
func writeErr(cmd *cobra.Command, err error) error {
	var r reportedError
	if errors.As(err, &r) {
		return err
	}
	writeErrEnvelope(cmd.ErrOrStderr(), err)
	return reportedError{err: err}
}

func writeErrEnvelope(w io.Writer, err error) {
	_ = format.WriteJSON(w, map[string]any{
		"error": map[string]any{
			"code":    errorCode(err),
			"message": err.Error(),
		},
	}, false)
}

// optionalFlag returns a pointer to the flag value when the flag was set.
func optionalFlag(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}
