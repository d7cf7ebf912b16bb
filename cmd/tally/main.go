package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/dvila/tally/internal/app"
	"github.com/dvila/tally/internal/auth"
	"github.com/dvila/tally/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	pollSeconds := flag.Int("poll", 0, "refresh interval in seconds (optional, defaults to 5s)")
	user := flag.String("user", "", "user id override, skips the session file (optional)")
	demo := flag.Bool("demo", false, "run against seeded in-memory data, no database or login needed")
	flag.Parse()

	// Subcommands manage the session file and exit without starting the UI.
	switch flag.Arg(0) {
	case "login":
		return runLogin(*configPath, flag.Arg(1))
	case "logout":
		return runLogout(*configPath)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, User: *user, Demo: *demo}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "tally: %v\n", err)
		return 1
	}
	return 0
}

func runLogin(configPath, rawUser string) int {
	if rawUser == "" {
		fmt.Fprintln(os.Stderr, "usage: tally login <user-id>")
		return 2
	}
	userID, err := uuid.Parse(rawUser)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tally: invalid user id %q: %v\n", rawUser, err)
		return 2
	}

	sessionPath, code := resolveSessionPath(configPath)
	if code != 0 {
		return code
	}
	if err := auth.SignIn(sessionPath, userID); err != nil {
		fmt.Fprintf(os.Stderr, "tally: login: %v\n", err)
		return 1
	}
	fmt.Printf("signed in as %s\n", userID)
	return 0
}

func runLogout(configPath string) int {
	sessionPath, code := resolveSessionPath(configPath)
	if code != 0 {
		return code
	}
	if err := auth.SignOut(sessionPath); err != nil {
		fmt.Fprintf(os.Stderr, "tally: logout: %v\n", err)
		return 1
	}
	fmt.Println("signed out")
	return 0
}

func resolveSessionPath(configPath string) (string, int) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tally: %v\n", err)
		return "", 1
	}
	return cfg.SessionPath, 0
}
