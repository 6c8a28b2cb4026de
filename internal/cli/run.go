package cli

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/contacts/internal/config"
	"github.com/jask/contacts/internal/contact"
	"github.com/jask/contacts/internal/contacts"
	"github.com/jask/contacts/internal/fruits"
	"github.com/jask/contacts/internal/logging"
	"github.com/jask/contacts/internal/profile"
	"github.com/jask/contacts/internal/store"
	"github.com/jask/contacts/internal/tui"
)

// App is the wired UI model plus the stores behind it.
type App struct {
	Model    tui.Model
	Contacts *store.Store[contacts.State, contacts.Action]
	Profile  *store.Store[profile.State, profile.Action]
	Fruits   *store.Store[fruits.State, fruits.Action]
}

// Close stops every store and waits for running effects.
func (a *App) Close() {
	a.Contacts.Close()
	a.Profile.Close()
	a.Fruits.Close()
}

// Build wires stores and tabs from cfg.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	feature := contacts.New()
	feature.Logger = logger
	app := &App{
		Contacts: contacts.NewStore(feature, feature.Seed(cfg.Contacts.Seed),
			store.WithLogger[contacts.State, contacts.Action](logger)),
		Profile: profile.NewStore(profile.NewState(),
			store.WithLogger[profile.State, profile.Action](logger)),
		Fruits: fruits.NewStore(fruits.NewState(fruits.DefaultNames, contact.RandomIDs()),
			store.WithLogger[fruits.State, fruits.Action](logger)),
	}
	tabs := []tui.Tab{
		tui.NewContactsTab(ctx, app.Contacts, cfg.Contacts.SimilarityThreshold),
		tui.NewProfileTab(ctx, app.Profile),
		tui.NewFruitsTab(ctx, app.Fruits),
	}
	app.Model = tui.NewModel(tabs, tui.NewKeyRegistry(tui.DefaultKeyBindings()), logger)
	if !app.Model.SwitchTabByID(cfg.UI.StartTab) {
		app.Close()
		return nil, fmt.Errorf("unknown start tab %q", cfg.UI.StartTab)
	}
	return app, nil
}

// Run sets up logging and blocks until the UI exits.
func Run(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, closeLog, err := logging.Setup(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closeLog()
	// Anything still logging through the default logger must not write to
	// the terminal the program draws on.
	slog.SetDefault(logger)

	app, err := Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	logger.Info("starting", "contacts", len(cfg.Contacts.Seed), "start_tab", cfg.UI.StartTab, "version", Version)
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(app.Model, opts...).Run(); err != nil {
		logger.Error("ui exited", "err", err)
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("stopped")
	return nil
}
