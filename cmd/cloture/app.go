package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
	"github.com/SscSPs/farm_management_app/internal/utils"
	"github.com/SscSPs/farm_management_app/pkg/clotureclient"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/viper"
)

var (
	apiURL      = flag.String("api", "", "Base URL of the API (default $CLOTURE_API_URL or http://localhost:8080/api/v1)")
	sessionFile = flag.String("session", "", "Path of the session file (default $CLOTURE_SESSION_FILE or the user config dir)")
	verbose     = flag.Bool("v", false, "Log debug details to stderr.")
)

// newLogger writes text records to w; debug records only when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// app bundles what every command needs.
type app struct {
	client   *clotureclient.Client
	auth     *clotureclient.Auth
	registry *clotureclient.Registry
	format   utils.AmountFormatter
}

// settings are read from the environment, flags win.
func settings() (api, session, currency string, err error) {
	v := viper.New()
	v.SetEnvPrefix("CLOTURE")
	v.AutomaticEnv()
	v.SetDefault("API_URL", "http://localhost:8080/api/v1")
	v.SetDefault("CURRENCY", utils.DefaultCurrencyGrapheme)

	api = v.GetString("API_URL")
	if *apiURL != "" {
		api = *apiURL
	}
	session = v.GetString("SESSION_FILE")
	if *sessionFile != "" {
		session = *sessionFile
	}
	if session == "" {
		if session, err = clotureclient.DefaultSessionPath(); err != nil {
			return "", "", "", fmt.Errorf("cannot locate session file: %w", err)
		}
	}
	return api, session, v.GetString("CURRENCY"), nil
}

// newApp builds the client stack and restores the persisted session.
func newApp() (*app, error) {
	api, session, currency, err := settings()
	if err != nil {
		return nil, err
	}
	client := clotureclient.New(api)
	auth := clotureclient.NewAuth(client, clotureclient.FileStore{Path: session})
	if _, err := auth.Restore(); err != nil {
		return nil, err
	}
	return &app{
		client:   client,
		auth:     auth,
		registry: clotureclient.NewRegistry(client),
		format:   utils.NewAmountFormatter(currency),
	}, nil
}

// authed is newApp followed by a role check.
func authed(role domain.Role) (*app, error) {
	a, err := newApp()
	if err != nil {
		return nil, err
	}
	if _, err := a.auth.RequireAuth(role); err != nil {
		return nil, err
	}
	return a, nil
}

func printError(err error) {
	reportError(os.Stderr, slog.Default(), err)
}

// reportError logs the raw error, then prints the message meant for the user.
func reportError(out io.Writer, logger *slog.Logger, err error) {
	logger.Error("Command failed", slog.String("error", err.Error()))
	fmt.Fprintln(out, clotureclient.UserMessage(err))
}

// mutated reports err and tells whether the server applied the change.
// A record with an error means the change went through but the list is stale.
func mutated(c *clotureclient.Cloture, err error) bool {
	if err != nil {
		printError(err)
	}
	return c != nil
}

func printMarkdown(md string) {
	out, err := glamour.Render(md, "dark")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// confirm asks a yes/no question on in.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [o/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "o", "oui", "y", "yes":
		return true
	}
	return false
}

func currentYear() int {
	return time.Now().Year()
}
