package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/hexecon/internal/config"
	"github.com/talgya/hexecon/internal/economy"
	"github.com/talgya/hexecon/internal/engine"
	"github.com/talgya/hexecon/internal/observe"
	"github.com/talgya/hexecon/internal/persistence"
	"github.com/talgya/hexecon/internal/world"
)

var (
	turns    int    // overrides the configured number of turns
	journal  string // overrides the configured journal path
	interval time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate a world, settle a starter economy and play it",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("turns") {
			cfg.Turns = turns
		}
		if cmd.Flags().Changed("journal") {
			cfg.Journal = journal
		}
		if cmd.Flags().Changed("interval") {
			cfg.Interval = interval
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return play(ctx, cfg)
	},
}

func init() {
	runCmd.Flags().IntVar(&turns, "turns", 0, "Number of turns to play")
	runCmd.Flags().StringVar(&journal, "journal", "", "SQLite journal path")
	runCmd.Flags().DurationVar(&interval, "interval", 0, "Wall time between turns")
}

func play(ctx context.Context, cfg config.Config) error {
	started := time.Now()
	match, err := engine.Generate(cfg.World)
	if err != nil {
		return err
	}
	defer match.Close()
	if err := match.Tiles.SetSize(cfg.TileSize, cfg.TileSize); err != nil {
		return err
	}

	starter, err := match.Settle()
	if err != nil {
		return err
	}

	if cfg.Journal != "" {
		db, err := persistence.Open(cfg.Journal)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := record(db, match, cfg, starter); err != nil {
			return err
		}
	}

	err = match.Clock.Run(ctx, cfg.Turns, cfg.Interval)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	summarize(match, started)
	return nil
}

// record journals the match setup and the totals after every turn.
func record(db *persistence.DB, match *engine.Match, cfg config.Config, s engine.Starter) error {
	id := match.ID.String()
	for k, v := range map[string]string{
		"match_id": id,
		"seed":     strconv.FormatInt(cfg.World.Seed, 10),
		"map":      match.Map.String(),
	} {
		if err := db.SaveMeta(k, v); err != nil {
			return err
		}
	}
	err := db.RecordEvents([]persistence.Event{
		{MatchID: id, Description: fmt.Sprintf("Warehouse at %s", s.Warehouse), Category: "build"},
		{MatchID: id, Description: fmt.Sprintf("Lumberjack at %s", s.Lumberjack), Category: "build"},
		{MatchID: id, Description: fmt.Sprintf("Forest at %s", s.Forest), Category: "build"},
		{MatchID: id, Description: "track " + s.Track.String(), Category: "road"},
	})
	if err != nil {
		return err
	}

	match.Clock.Listen(func(e engine.TickEvent) {
		if err := db.RecordTurn(match.ID, e.Turn, match.Totals()); err != nil {
			slog.Error("journal failed", "turn", e.Turn, "error", err)
			return
		}
		if err := db.SaveMeta("last_turn", strconv.Itoa(e.Turn)); err != nil {
			slog.Error("journal failed", "turn", e.Turn, "error", err)
		}
	}, engine.KindTock)

	match.Map.Listen(func(e world.Event) {
		err := db.RecordEvents([]persistence.Event{{
			MatchID:     id,
			Turn:        match.Clock.Turn(),
			Description: fmt.Sprintf("%s %s at %s", e.Kind, e.Instance.Tile().Key(), e.Coord),
			Category:    "map",
		}})
		if err != nil {
			slog.Error("journal failed", "error", err)
		}
	}, observe.Update, observe.Delete)

	slog.Info("journal open", "path", cfg.Journal, "match", id)
	return nil
}

func summarize(match *engine.Match, started time.Time) {
	totals := match.Totals()
	goods := make([]economy.Good, 0, len(totals))
	for g, v := range totals {
		if v > 0 {
			goods = append(goods, g)
		}
	}
	sort.Slice(goods, func(i, j int) bool { return goods[i] < goods[j] })

	fmt.Fprintf(os.Stdout, "\nMatch %s: %s turns on %s, started %s.\n",
		match.ID, humanize.Comma(int64(match.Clock.Turn())), match.Map, humanize.Time(started))
	for _, g := range goods {
		fmt.Fprintf(os.Stdout, "  %-12s %s\n", g, humanize.CommafWithDigits(totals[g], 2))
	}
}
