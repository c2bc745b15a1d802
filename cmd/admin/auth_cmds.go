package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
)

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "admin email address")
	password := fs.String("password", "", "password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		return fmt.Errorf("-email is required")
	}
	pw := *password
	if pw == "" {
		fmt.Fprint(os.Stderr, "password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		pw = strings.TrimRight(line, "\r\n")
	}

	if err := a.guard.Login(ctx, *email, pw); err != nil {
		return err
	}
	user, _ := a.guard.Snapshot()
	fmt.Fprintf(a.out, "logged in as %s\n", user.Email)
	return nil
}

func (a *app) cmdWhoami(ctx context.Context) error {
	user, _ := a.guard.Snapshot()
	fmt.Fprintf(a.out, "email:\t%s\n", user.Email)
	if user.Name != "" {
		fmt.Fprintf(a.out, "name:\t%s\n", user.Name)
	}
	if user.Role != "" {
		fmt.Fprintf(a.out, "role:\t%s\n", user.Role)
	}

	// The server-side view may carry more than the token claims.
	profile, err := a.api.Profile(ctx)
	if err != nil {
		return nil
	}
	if profile.Name != "" && profile.Name != user.Name {
		fmt.Fprintf(a.out, "name (server):\t%s\n", profile.Name)
	}
	return nil
}

func (a *app) cmdStats(ctx context.Context) error {
	stats, err := a.dashboard.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "total questions:\t%d\n", stats.TotalQuestions)
	fmt.Fprintf(a.out, "total users:\t%d\n", stats.TotalUsers)
	fmt.Fprintf(a.out, "posted today:\t%d\n", stats.DailyQuestionsPosted)
	fmt.Fprintf(a.out, "total interactions:\t%d\n", stats.TotalInteractions)
	if stats.LastPostedDate != "" {
		fmt.Fprintf(a.out, "last posted:\t%s\n", stats.LastPostedDate)
	}
	if stats.NextScheduledPost != "" {
		fmt.Fprintf(a.out, "next scheduled:\t%s\n", stats.NextScheduledPost)
	}
	return nil
}

func (a *app) dispatchBot(ctx context.Context, args []string) error {
	sub, rest := subcommand(args)
	switch sub {
	case "status", "":
		status, err := a.dashboard.BotStatus(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "status:\t%s\n", status.Status)
		fmt.Fprintf(a.out, "connected groups:\t%d\n", status.ConnectedGroups)
		if status.Schedule != "" {
			fmt.Fprintf(a.out, "schedule:\t%s\n", status.Schedule)
		}
		if status.LastMessageAt != "" {
			fmt.Fprintf(a.out, "last message:\t%s\n", status.LastMessageAt)
		}
		return nil
	case "test":
		resp, err := a.dashboard.SendTestMessage(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "success:\t%s\n", boolWord(resp.Success))
		if resp.Message != "" {
			fmt.Fprintf(a.out, "message:\t%s\n", resp.Message)
		}
		return nil
	case "schedule":
		fs := flag.NewFlagSet("bot schedule", flag.ExitOnError)
		cron := fs.String("cron", "", "posting schedule expression")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if err := a.dashboard.UpdateBotSchedule(ctx, *cron); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "bot schedule updated")
		return nil
	default:
		return fmt.Errorf("unknown bot subcommand %q", sub)
	}
}

func (a *app) dispatchGroups(ctx context.Context, args []string) error {
	sub, rest := subcommand(args)
	switch sub {
	case "list", "":
		groups, err := a.dashboard.Groups(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, "ID\tTITLE\tMEMBERS\tENABLED")
		for _, g := range groups {
			fmt.Fprintf(a.out, "%s\t%s\t%d\t%s\n", g.ID, g.Title, g.MemberCount, boolWord(g.IsEnabled))
		}
		return nil
	case "discover":
		groups, err := a.dashboard.DiscoverGroups(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "discovered %d groups\n", len(groups))
		return nil
	case "enable", "disable":
		fs := flag.NewFlagSet("groups "+sub, flag.ExitOnError)
		id := fs.String("id", "", "group id")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *id == "" {
			return fmt.Errorf("-id is required")
		}
		if err := a.dashboard.SetGroupEnabled(ctx, *id, sub == "enable"); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "group %s %sd\n", *id, sub)
		return nil
	default:
		return fmt.Errorf("unknown groups subcommand %q", sub)
	}
}
