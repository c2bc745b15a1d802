package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"mrcog-admin/internal/domain"
	"mrcog-admin/internal/dto"
)

func (a *app) dispatchBuckets(ctx context.Context, args []string) error {
	sub, rest := subcommand(args)
	switch sub {
	case "list", "":
		return a.cmdBucketsList(ctx)
	case "create":
		return a.cmdBucketsCreate(ctx, rest)
	case "edit":
		return a.cmdBucketsEdit(ctx, rest)
	case "delete":
		return a.cmdBucketsDelete(ctx, rest)
	case "toggle":
		return a.cmdBucketsToggle(ctx, rest)
	case "send":
		return a.cmdBucketsSend(ctx, rest)
	case "add-question":
		return a.cmdBucketQuestion(ctx, rest, true)
	case "remove-question":
		return a.cmdBucketQuestion(ctx, rest, false)
	case "bulk-update":
		return a.cmdBucketsBulkUpdate(ctx, rest)
	default:
		return fmt.Errorf("unknown buckets subcommand %q", sub)
	}
}

func (a *app) cmdBucketsList(ctx context.Context) error {
	if err := a.scheduler.Refresh(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "ID\tNAME\tTOPIC\tDAY\tQUESTIONS\tFILL\tSTATE")
	for _, b := range a.scheduler.Buckets() {
		fmt.Fprintf(a.out, "%s\t%s\t%s\t%s\t%d/%d\t%.0f%%\t%s\n",
			b.ID, b.Name, b.Topic, b.DayOfWeek,
			b.LocalQuestionCount(), b.MaxQuestions, b.CompletionPercent,
			activeWord(b.IsActive))
	}
	return nil
}

type bucketFlags struct {
	name      *string
	topic     *string
	day       *string
	max       *int
	questions *string
}

func newBucketFlags(fs *flag.FlagSet) bucketFlags {
	return bucketFlags{
		name:      fs.String("name", "", "bucket name"),
		topic:     fs.String("topic", "", "bucket topic"),
		day:       fs.String("day", "", "day of week"),
		max:       fs.Int("max", 0, "capacity (5-10)"),
		questions: fs.String("questions", "", "comma-separated question ids"),
	}
}

func (a *app) cmdBucketsCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("buckets create", flag.ExitOnError)
	flags := newBucketFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.scheduler.Refresh(ctx); err != nil {
		return err
	}
	draft := a.scheduler.BeginDraft()
	if err := a.applyBucketFlags(draft, flags); err != nil {
		return err
	}

	bucket, err := a.scheduler.SubmitDraft(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "created bucket %s (%d/%d questions)\n",
		bucket.ID, bucket.QuestionCount, bucket.MaxQuestions)
	return nil
}

func (a *app) cmdBucketsEdit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("buckets edit", flag.ExitOnError)
	id := fs.String("id", "", "bucket id")
	flags := newBucketFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	if err := a.scheduler.Refresh(ctx); err != nil {
		return err
	}
	draft, err := a.scheduler.EditBucket(ctx, *id)
	if err != nil {
		return err
	}
	if err := a.applyBucketFlags(draft, flags); err != nil {
		return err
	}

	bucket, err := a.scheduler.SubmitDraft(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "updated bucket %s (%d/%d questions)\n",
		bucket.ID, bucket.QuestionCount, bucket.MaxQuestions)
	return nil
}

// applyBucketFlags folds the command-line overrides into the draft. The
// -questions flag replaces the selection wholesale.
func (a *app) applyBucketFlags(draft *domain.BucketDraft, flags bucketFlags) error {
	if *flags.name != "" {
		draft.Name = *flags.name
	}
	if *flags.topic != "" {
		topic, err := domain.ParseTopic(*flags.topic)
		if err != nil {
			return err
		}
		if err := draft.SetTopic(topic); err != nil {
			return err
		}
	}
	if *flags.day != "" {
		day, err := domain.ParseWeekday(*flags.day)
		if err != nil {
			return err
		}
		if err := draft.SetDay(day); err != nil {
			return err
		}
	}
	if *flags.max != 0 {
		if err := draft.SetCapacity(*flags.max); err != nil {
			return err
		}
	}
	if *flags.questions != "" {
		for _, id := range draft.Selected() {
			q := domain.Question{ID: id}
			if err := draft.ToggleQuestion(&q); err != nil {
				return err
			}
		}
		candidates := a.scheduler.CandidateQuestions(draft, "")
		byID := make(map[string]domain.Question, len(candidates))
		for _, q := range candidates {
			byID[q.ID] = q
		}
		for _, id := range splitIDs(*flags.questions) {
			q, ok := byID[id]
			if !ok {
				return fmt.Errorf("question %s is not selectable for this bucket", id)
			}
			if err := draft.ToggleQuestion(&q); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *app) cmdBucketsDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("buckets delete", flag.ExitOnError)
	id := fs.String("id", "", "bucket id")
	yes := fs.Bool("yes", false, "confirm the permanent deletion")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}
	if err := a.scheduler.DeleteBucket(ctx, *id, *yes); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted bucket %s\n", *id)
	return nil
}

func (a *app) cmdBucketsToggle(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("buckets toggle", flag.ExitOnError)
	id := fs.String("id", "", "bucket id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}
	bucket, err := a.scheduler.ToggleBucket(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "bucket %s is now %s\n", bucket.ID, activeWord(bucket.IsActive))
	return nil
}

func (a *app) cmdBucketsSend(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("buckets send", flag.ExitOnError)
	id := fs.String("id", "", "bucket id")
	group := fs.String("group", "", "target group id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}
	if err := a.scheduler.SendNow(ctx, *id, *group); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "bucket %s dispatched to group %s\n", *id, *group)
	return nil
}

func (a *app) cmdBucketQuestion(ctx context.Context, args []string, add bool) error {
	verb := "add-question"
	if !add {
		verb = "remove-question"
	}
	fs := flag.NewFlagSet("buckets "+verb, flag.ExitOnError)
	id := fs.String("id", "", "bucket id")
	question := fs.String("question", "", "question id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" || *question == "" {
		return fmt.Errorf("-id and -question are required")
	}

	if err := a.scheduler.Refresh(ctx); err != nil {
		return err
	}
	var (
		bucket *domain.Bucket
		err    error
	)
	if add {
		bucket, err = a.scheduler.AddQuestion(ctx, *id, *question)
	} else {
		bucket, err = a.scheduler.RemoveQuestion(ctx, *id, *question)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "bucket %s now holds %d/%d questions\n",
		bucket.ID, bucket.QuestionCount, bucket.MaxQuestions)
	return nil
}

// cmdBucketsBulkUpdate reads updates as positional arguments of the form
// id=Day or id=Day:active|inactive.
func (a *app) cmdBucketsBulkUpdate(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: buckets bulk-update <id>=<Day>[:active|inactive] ...")
	}
	updates := make([]dto.ScheduleUpdate, 0, len(args))
	for _, arg := range args {
		update, err := parseScheduleUpdate(arg)
		if err != nil {
			return err
		}
		updates = append(updates, update)
	}
	if err := a.scheduler.BulkUpdate(ctx, updates); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "updated %d bucket schedules\n", len(updates))
	return nil
}

func parseScheduleUpdate(arg string) (dto.ScheduleUpdate, error) {
	id, rest, ok := strings.Cut(arg, "=")
	if !ok || id == "" {
		return dto.ScheduleUpdate{}, fmt.Errorf("invalid schedule update %q", arg)
	}
	dayPart, statePart, hasState := strings.Cut(rest, ":")
	day, err := domain.ParseWeekday(dayPart)
	if err != nil {
		return dto.ScheduleUpdate{}, err
	}
	active := true
	if hasState {
		switch statePart {
		case "active":
		case "inactive":
			active = false
		default:
			return dto.ScheduleUpdate{}, fmt.Errorf("invalid state %q in %q", statePart, arg)
		}
	}
	return dto.ScheduleUpdate{ID: id, DayOfWeek: string(day), IsActive: active}, nil
}

func (a *app) dispatchSchedule(ctx context.Context, args []string) error {
	sub, rest := subcommand(args)
	switch sub {
	case "weekly", "":
		return a.cmdScheduleWeekly(ctx)
	case "day":
		return a.cmdScheduleDay(ctx, rest)
	case "topics":
		return a.cmdScheduleTopics(ctx)
	default:
		return fmt.Errorf("unknown schedule subcommand %q", sub)
	}
}

func (a *app) cmdScheduleWeekly(ctx context.Context) error {
	if err := a.scheduler.Refresh(ctx); err != nil {
		return err
	}
	for _, day := range a.scheduler.WeeklySchedule() {
		fmt.Fprintf(a.out, "%s\t(%d buckets)\n", day.Day, len(day.Buckets))
		for _, b := range day.Buckets {
			fmt.Fprintf(a.out, "  %s\t%s\t%s\t%d/%d\t%s\n",
				b.ID, b.Name, b.Topic, b.LocalQuestionCount(), b.MaxQuestions, activeWord(b.IsActive))
		}
	}
	return nil
}

func (a *app) cmdScheduleDay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("schedule day", flag.ExitOnError)
	dayFlag := fs.String("day", "", "day of week")
	activeOnly := fs.Bool("active-only", false, "only active buckets")
	if err := fs.Parse(args); err != nil {
		return err
	}
	day, err := domain.ParseWeekday(*dayFlag)
	if err != nil {
		return err
	}
	buckets, err := a.scheduler.DaySchedule(ctx, day, *activeOnly)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\t(%d buckets)\n", day, len(buckets))
	for _, b := range buckets {
		fmt.Fprintf(a.out, "  %s\t%s\t%s\t%d/%d\t%s\n",
			b.ID, b.Name, b.Topic, b.LocalQuestionCount(), b.MaxQuestions, activeWord(b.IsActive))
	}
	return nil
}

func (a *app) cmdScheduleTopics(ctx context.Context) error {
	if err := a.scheduler.Refresh(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "TOPIC\tBUCKETS\tACTIVE\tSCHEDULED\tIN BANK\tDAYS")
	for _, s := range a.scheduler.TopicSummaries() {
		days := make([]string, len(s.ScheduledDays))
		for i, d := range s.ScheduledDays {
			days[i] = string(d)
		}
		fmt.Fprintf(a.out, "%s\t%d\t%d\t%d\t%d\t%s\n",
			s.Topic, s.BucketCount, s.ActiveBucketCount, s.ScheduledQuestions,
			s.BankQuestionCount, strings.Join(days, ","))
	}
	return nil
}

func splitIDs(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
