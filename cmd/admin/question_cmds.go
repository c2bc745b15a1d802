package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"mrcog-admin/internal/domain"
	"mrcog-admin/internal/dto"
)

func (a *app) dispatchQuestions(ctx context.Context, args []string) error {
	sub, rest := subcommand(args)
	switch sub {
	case "list", "":
		return a.cmdQuestionsList(ctx, rest)
	case "add":
		return a.cmdQuestionsAdd(ctx, rest)
	case "toggle":
		return a.cmdQuestionsToggle(ctx, rest)
	case "delete":
		return a.cmdQuestionsDelete(ctx, rest)
	case "daily":
		return a.cmdQuestionsDaily(ctx)
	default:
		return fmt.Errorf("unknown questions subcommand %q", sub)
	}
}

func (a *app) cmdQuestionsList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("questions list", flag.ExitOnError)
	topicFlag := fs.String("topic", "", "filter by topic")
	search := fs.String("search", "", "free-text filter over question text and topic")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var topic domain.Topic
	if *topicFlag != "" {
		parsed, err := domain.ParseTopic(*topicFlag)
		if err != nil {
			return err
		}
		topic = parsed
	}

	questions, err := a.registry.List(ctx, topic, *search)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "ID\tTOPIC\tSTATE\tQUESTION")
	for _, q := range questions {
		fmt.Fprintf(a.out, "%s\t%s\t%s\t%s\n", q.ID, q.Topic, activeWord(q.IsActive), truncate(q.Text, 60))
	}
	fmt.Fprintf(a.out, "%d questions\n", len(questions))
	return nil
}

func (a *app) cmdQuestionsAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("questions add", flag.ExitOnError)
	text := fs.String("text", "", "question text")
	options := fs.String("options", "", "four answer options separated by |")
	answer := fs.String("answer", "", "correct option label (A-D)")
	explanation := fs.String("explanation", "", "answer explanation")
	topic := fs.String("topic", "", "question topic")
	difficulty := fs.String("difficulty", "", "easy, medium or hard")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := dto.CreateQuestionRequest{
		Question:      *text,
		Options:       splitOptions(*options),
		CorrectAnswer: strings.ToUpper(strings.TrimSpace(*answer)),
		Explanation:   *explanation,
		Topic:         *topic,
		Difficulty:    *difficulty,
	}
	q, err := a.registry.Create(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "created question %s\n", q.ID)
	return nil
}

func (a *app) cmdQuestionsToggle(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("questions toggle", flag.ExitOnError)
	id := fs.String("id", "", "question id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}
	q, err := a.registry.ToggleActive(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "question %s is now %s\n", q.ID, activeWord(q.IsActive))
	return nil
}

func (a *app) cmdQuestionsDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("questions delete", flag.ExitOnError)
	id := fs.String("id", "", "question id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}
	if err := a.registry.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted question %s\n", *id)
	return nil
}

func (a *app) cmdQuestionsDaily(ctx context.Context) error {
	questions, err := a.registry.Daily(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "ID\tTOPIC\tQUESTION")
	for _, q := range questions {
		fmt.Fprintf(a.out, "%s\t%s\t%s\n", q.ID, q.Topic, truncate(q.Text, 60))
	}
	return nil
}

func splitOptions(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
