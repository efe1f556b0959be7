package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	derrors "git.home.luguber.info/inful/docresolve/internal/errors"
	"git.home.luguber.info/inful/docresolve/internal/missstore"
)

// MissesCmd implements the 'misses' command.
type MissesCmd struct {
	Limit int  `short:"n" help:"Maximum number of misses to show (0 for all)" default:"20"`
	JSON  bool `help:"Print misses as JSON"`
	Prune bool `help:"Delete misses older than misses.retention before listing"`
}

func (m *MissesCmd) Run(g *Global, root *CLI) error {
	cfg, _, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if cfg.Misses.DBPath == "" {
		return derrors.ConfigInvalid("misses.db_path", "miss recording is disabled")
	}

	store, err := missstore.NewSQLiteStore(cfg.Misses.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	if m.Prune {
		n, err := store.Prune(ctx, time.Now().Add(-cfg.Misses.Retention))
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(g.out(), "pruned %d misses\n", n)
	}

	events, err := store.List(ctx, m.Limit)
	if err != nil {
		return err
	}

	if m.JSON {
		enc := json.NewEncoder(g.out())
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	}

	tw := tabwriter.NewWriter(g.out(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TIME\tLANG\tPATH\tFILENAME\tSTAGE\tCATEGORY")
	for _, ev := range events {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			ev.OccurredAt.Format(time.RFC3339), ev.Lang, ev.Path, ev.Filename, ev.Stage, ev.Category)
	}
	return tw.Flush()
}
