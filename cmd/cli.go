package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Sanidhya49/binsavvy-cli/client"
	"github.com/Sanidhya49/binsavvy-cli/config"
	"github.com/Sanidhya49/binsavvy-cli/db"
	"github.com/Sanidhya49/binsavvy-cli/pkg/clierr"
	"github.com/Sanidhya49/binsavvy-cli/session"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// App bundles the dependencies every command works against. It is built once
// in Execute and handed to the command constructors, so tests can assemble
// one around fakes.
type App struct {
	Cfg     *config.Config
	DB      *gorm.DB
	Session *session.Manager
	API     *client.Client
	Users   db.UserRepository
	Uploads db.UploadRepository
}

func Execute() {
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	gdb, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize database")
		os.Exit(1)
	}
	defer closeDatabase(gdb)

	app := newApp(cfg, gdb)
	rootCmd := createRootCmd(app)

	rootCmd.PersistentFlags().BoolP("help", "h", false, "Show help for a command")

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command execution failed.")
		os.Exit(1)
	}
}

func newApp(cfg *config.Config, gdb *gorm.DB) *App {
	api := client.New(cfg)
	users := db.NewUserRepository(gdb)
	mgr := session.NewManager(
		db.NewTokenRepository(gdb),
		users,
		api,
		session.WithExpiryThreshold(time.Duration(cfg.ExpiryThresholdMinutes)*time.Minute),
		session.WithSessionEndedFunc(func() {
			fmt.Fprintln(os.Stderr, "Your session has ended. Please run 'binsavvy login' again.")
		}),
	)
	return &App{
		Cfg:     cfg,
		DB:      gdb,
		Session: mgr,
		API:     api,
		Users:   users,
		Uploads: db.NewUploadRepository(gdb),
	}
}

func createRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "binsavvy",
		Short: "A client for the BinSavvy waste reporting platform",
	}

	rootCmd.AddCommand(
		loginCmd(app),
		registerCmd(app),
		logoutCmd(app),
		statusCmd(app),
		uploadCmd(app),
		imagesCmd(app),
		adminCmd(app),
		healthCmd(app),
		versionCmd(),
	)

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:    "no-help",
		Hidden: true,
	})

	return rootCmd
}

func closeDatabase(gdb *gorm.DB) {
	if err := db.Close(gdb); err != nil {
		log.Error().Err(err).Msg("Failed to close the database.")
		os.Exit(1)
	}
}

// ensureSession refreshes a stale session when possible. It returns false,
// with a message on the command's error stream, when the user must log in.
func ensureSession(ctx context.Context, app *App, cmd *cobra.Command) bool {
	if app.Session.IsAuthenticated(ctx) {
		access, err := app.Session.AccessToken(ctx)
		if err == nil && !app.Session.IsTokenExpiringSoon(access, 0) {
			return true
		}
	}

	// Expired or expiring: one refresh attempt, fail-closed.
	tok, err := app.Session.Refresh(ctx)
	if err != nil {
		cmd.PrintErrln("Error: could not check the session:", err)
		return false
	}
	if tok == nil && !app.Session.IsAuthenticated(ctx) {
		cmd.PrintErrln("You are not logged in. Please run 'binsavvy login' first.")
		return false
	}
	return true
}

// categorize maps a transport failure onto the CLI error taxonomy, so every
// command reports the same messages for the same server responses.
func categorize(err error, fallback clierr.Type, msg string) *clierr.Error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized:
			return clierr.New(clierr.Auth, "the server rejected the session, please log in again", err)
		case http.StatusForbidden:
			return clierr.New(clierr.Permission, "the server denied access to this resource", err)
		case http.StatusNotFound:
			return clierr.New(clierr.NotFound, msg+": not found", err)
		}
	}
	return clierr.New(fallback, msg, err)
}

// ensureAdmin gates admin-only commands on the resolved role.
func ensureAdmin(ctx context.Context, app *App, cmd *cobra.Command) bool {
	if !ensureSession(ctx, app, cmd) {
		return false
	}
	if !app.Session.IsAdmin(ctx) {
		cmd.PrintErrln("Permission denied: this command requires an administrator account.")
		return false
	}
	return true
}
