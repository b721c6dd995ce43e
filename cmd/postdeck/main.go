package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Villa717/sf241--react--restapi/internal/app"
	"github.com/Villa717/sf241--react--restapi/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override postdeck config path (optional)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	apiURL := flag.String("api", "", "posts service root, e.g. http://127.0.0.1:8089 (optional)")
	refreshSeconds := flag.Int("refresh", 0, "auto-reload interval in seconds (optional, disabled by default)")
	flag.Parse()

	if err := config.LoadDotEnv(""); err != nil {
		fmt.Fprintf(os.Stderr, "postdeck: %v\n", err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		APIURL:     *apiURL,
	}
	if refresh := *refreshSeconds; refresh > 0 {
		opts.RefreshEvery = refresh
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "postdeck: %v\n", err)
		return 1
	}
	return 0
}
