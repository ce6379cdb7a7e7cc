package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/tenderfeed"
	"github.com/poiesic/tenderfeed/core"
	"github.com/poiesic/tenderfeed/expiry"
	"github.com/poiesic/tenderfeed/ingestion"
	"github.com/poiesic/tenderfeed/reembed"
	"github.com/urfave/cli/v2"
)

func seedCommand(c *cli.Context) error {
	ctx := c.Context
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one fixture file, got %d arguments", c.NArg())
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to open fixtures: %w", err)
	}
	defer f.Close()

	profiles, tenders, err := parseFixtures(f, time.Now().UTC())
	if err != nil {
		return err
	}

	var opts []tenderfeed.EngineOption
	if c.Bool("tag") {
		opts = append(opts, tenderfeed.WithPipelineOptions(ingestion.WithTagging(true)))
	}
	engine, err := openEngine(c, opts...)
	if err != nil {
		return err
	}
	defer engine.Close()

	if len(profiles) > 0 {
		if _, err := engine.IngestProfiles(ctx, profiles...); err != nil {
			return fmt.Errorf("failed to add profiles: %w", err)
		}
	}
	if len(tenders) > 0 {
		if _, err := engine.IngestTenders(ctx, tenders...); err != nil {
			return fmt.Errorf("failed to add tenders: %w", err)
		}
	}
	engine.WaitForEmbeddings()

	out := c.App.Writer
	for _, p := range profiles {
		fmt.Fprintf(out, "profile %d (user %d)\n", p.Id, p.UserId)
	}
	for _, t := range tenders {
		fmt.Fprintf(out, "tender %d %q\n", t.Id, t.Title)
	}
	fmt.Fprintf(out, "Seeded %d profiles and %d tenders\n", len(profiles), len(tenders))
	return nil
}

func recommendCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	var minScore *float64
	if c.IsSet("min-score") {
		v := c.Float64("min-score")
		minScore = &v
	}

	results, err := engine.GetRecommendations(c.Context, core.ID(c.Uint64("profile")), c.Int("limit"), minScore, c.Int("days-ahead"))
	if err != nil {
		return err
	}

	out := c.App.Writer
	if len(results) == 0 {
		fmt.Fprintln(out, "No recommendations")
		return nil
	}
	for i, r := range results {
		fmt.Fprintf(out, "%2d. [%6.2f] %s (tender %d, %s, %s, %d days left)\n",
			i+1, r.Score, r.Tender.Title, r.Tender.Id, r.Tender.Category, r.Tender.Region, r.DaysUntilDeadline)
		for _, reason := range r.Reasons {
			fmt.Fprintf(out, "      +%.2f %s\n", reason.Weight, reason.Message)
		}
	}
	return nil
}

func similarCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	id := core.ID(c.Uint64("tender"))
	results, err := engine.GetSimilarTenders(c.Context, id, c.Int("limit"))
	if err != nil {
		return err
	}

	out := c.App.Writer
	if len(results) == 0 {
		fmt.Fprintf(out, "No similar tenders for tender %d\n", id)
		return nil
	}
	for i, r := range results {
		fmt.Fprintf(out, "%2d. [%.3f] %s (tender %d, closes %s)\n",
			i+1, r.Similarity, r.Tender.Title, r.Tender.Id, r.Tender.Deadline.UTC().Format(time.DateOnly))
	}
	return nil
}

func feedbackCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	var score *float64
	if c.IsSet("score") {
		v := c.Float64("score")
		score = &v
	}

	user, tender := core.ID(c.Uint64("user")), core.ID(c.Uint64("tender"))
	if err := engine.RecordInteraction(c.Context, user, tender, c.String("type"), c.String("reason"), score); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Recorded %s for user %d on tender %d\n", c.String("type"), user, tender)
	return nil
}

func undismissCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	user, tender := core.ID(c.Uint64("user")), core.ID(c.Uint64("tender"))
	if err := engine.Undismiss(c.Context, user, tender); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Tender %d can be recommended to user %d again\n", tender, user)
	return nil
}

func reembedCommand(c *cli.Context) error {
	kind := core.EntityKind(strings.ToLower(c.String("kind")))
	if kind != core.EntityTender && kind != core.EntityProfile {
		return fmt.Errorf("kind must be %q or %q, got %q", core.EntityTender, core.EntityProfile, kind)
	}

	config := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		Concurrency:    c.Int("concurrency"),
	}
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be greater than 0")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	errOut := c.App.ErrWriter
	fmt.Fprintf(errOut, "Database: %s\n", c.String("db"))
	fmt.Fprintf(errOut, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(errOut, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(errOut)

	stats, err := engine.Reembed(c.Context, kind, config, errOut)
	if err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	if stats.Failed > 0 {
		return fmt.Errorf("%d of %d entities failed to reembed", stats.Failed, stats.Total)
	}
	return nil
}

func sweepCommand(c *cli.Context) error {
	hour, minute, err := parseTimeOfDay(c.String("at"))
	if err != nil {
		return err
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if !c.Bool("daemon") {
		report, err := engine.SweepExpired(c.Context)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "Expired %d tenders (%d saved)\n", report.Expired+report.ExpiredSaved, report.ExpiredSaved)
		return nil
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweeper, err := expiry.NewSweeper(engine.TenderRepository(), expiry.WithDailyTime(hour, minute))
	if err != nil {
		return err
	}
	if err := sweeper.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func catalogCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	cat := engine.Catalog()
	out := c.App.Writer
	fmt.Fprintln(out, "Sectors:")
	for _, s := range cat.Sectors {
		fmt.Fprintf(out, "  %-16s %s\n", s.Code, s.Label)
		if len(s.SubSectors) > 0 {
			fmt.Fprintf(out, "  %-16s %s\n", "", strings.Join(s.SubSectors, ", "))
		}
	}
	fmt.Fprintln(out, "Regions:")
	for _, r := range cat.Regions {
		fmt.Fprintf(out, "  %s\n", r)
	}
	return nil
}

func parseTimeOfDay(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q: expected HH:MM", s)
	}
	return t.Hour(), t.Minute(), nil
}
