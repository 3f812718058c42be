package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gauchoeats/gaucho/internal/config"
	"github.com/gauchoeats/gaucho/internal/gateway"
	"github.com/gauchoeats/gaucho/pkg/logger"
)

const usage = `usage: gaucho <command> [flags]

commands:
  halls     show current wait times for every dining hall
  watch     refresh wait times on an interval until interrupted
  menu      show a hall's menu filtered by your preferences
  chart     render historical average waits to a PNG or SVG file
  prefs     show or toggle dietary preferences
  chat      ask for food recommendations
  wrapped   show your year in dining

environment:
  GAUCHO_BACKEND_URL, GAUCHO_USER_ID, GAUCHO_REFRESH_INTERVAL,
  GAUCHO_REQUEST_TIMEOUT, GAUCHO_MENU_CACHE_TTL, LOG_LEVEL
`

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-h" || os.Args[1] == "--help" || os.Args[1] == "help" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// logs go to stderr so they never mix with command output
	log := logger.NewWithWriter(cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{
		cfg:    cfg,
		client: gateway.New(cfg.BackendURL, cfg.RequestTimeout, log),
		log:    log,
		in:     os.Stdin,
		out:    os.Stdout,
	}

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
