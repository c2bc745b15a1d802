package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"mrcog-admin/internal/client"
	"mrcog-admin/internal/config"
	"mrcog-admin/internal/localstate"
	"mrcog-admin/internal/logger"
	"mrcog-admin/internal/service"
	"mrcog-admin/internal/session"
	"mrcog-admin/internal/validation"
)

const usageText = `mrcog-admin: administration client for the MRCOG question bot

Usage:
  admin <command> [subcommand] [flags]

Commands:
  login        Sign in and store the session token
  logout       End the session
  whoami       Show the logged-in admin
  stats        Show the dashboard counters
  questions    Manage the question bank (list, add, toggle, delete, daily)
  buckets      Manage question buckets (list, create, edit, delete, toggle,
               send, add-question, remove-question, bulk-update)
  schedule     Show the weekly, per-day or per-topic schedule
  bot          Bot operations (status, test, schedule)
  groups       Destination groups (list, discover, enable, disable)

Run "admin <command> -h" for the flags of a command.
`

// app bundles everything a command handler needs.
type app struct {
	cfg       *config.Config
	guard     *session.Guard
	api       *client.Client
	scheduler service.SchedulerService
	registry  service.RegistryService
	dashboard service.DashboardService
	out       *tabwriter.Writer
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Print(usageText)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return err
	}
	defer logger.Sync()

	store, err := localstate.Open(cfg.State.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	// The guard supplies the token to the client and the client's 401 hook
	// purges the guard's session, so the two reference each other through
	// closures.
	var guard *session.Guard
	api := client.New(cfg.API.BaseURL, cfg.API.Timeout,
		client.WithTokenSource(client.TokenSourceFunc(func() (string, bool) {
			return guard.Token()
		})),
		client.WithOnUnauthorized(func() {
			guard.PurgeToken()
		}),
	)
	guard = session.NewGuard(store, api, cfg.Session)

	validator := validation.NewValidator()
	a := &app{
		cfg:       cfg,
		guard:     guard,
		api:       api,
		scheduler: service.NewSchedulerService(api, validator),
		registry:  service.NewRegistryService(api, validator),
		dashboard: service.NewDashboardService(api),
		out:       tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0),
	}
	defer a.out.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	guard.StartWatcher(ctx)
	defer guard.StopWatcher()

	return a.dispatch(ctx, args[0], args[1:])
}

func (a *app) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		a.guard.Logout(ctx)
		fmt.Fprintln(a.out, "logged out")
		return nil
	}

	// Every other command needs a live session, and counts as activity for
	// the inactivity policy.
	if a.guard.CheckAuth() != session.StatusAuthenticated {
		return fmt.Errorf("not logged in; run \"admin login\" first")
	}
	a.guard.Touch()

	switch command {
	case "whoami":
		return a.cmdWhoami(ctx)
	case "stats":
		return a.cmdStats(ctx)
	case "questions":
		return a.dispatchQuestions(ctx, args)
	case "buckets":
		return a.dispatchBuckets(ctx, args)
	case "schedule":
		return a.dispatchSchedule(ctx, args)
	case "bot":
		return a.dispatchBot(ctx, args)
	case "groups":
		return a.dispatchGroups(ctx, args)
	default:
		fmt.Print(usageText)
		return fmt.Errorf("unknown command %q", command)
	}
}

// subcommand pops the leading subcommand name off the argument list.
func subcommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "", nil
	}
	return args[0], args[1:]
}

func boolWord(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func activeWord(b bool) string {
	if b {
		return "active"
	}
	return "inactive"
}
