package main

import (
	"fmt"
	"strings"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/senseparse/query"
	"github.com/revelaction/senseparse/storage"
)

func lookupCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Usage:     "find the annotated words having a sense label (a trailing '*' matches a prefix)",
		ArgsUsage: "<label>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Usage: "maximum number of hits (default from config)"},
			&cli.BoolFlag{Name: "no-prefix", Usage: "do not prefix hits with the doc"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("lookup command needs exactly one label")
			}
			limit := e.cfg.Query.Limit
			if c.IsSet("limit") {
				limit = c.Int("limit")
			}
			return e.lookupCommand(c.Args().First(), limit, !c.Bool("no-prefix"))
		},
	}
}

func (e *env) lookupCommand(label string, limit int, hasPrefix bool) error {
	repo, err := e.repository()
	if err != nil {
		return err
	}

	hits, err := query.Collect(repo, label, limit, e.cfg.Query.BatchSize)
	if err != nil {
		return err
	}

	r := e.renderer()
	r.HasPrefix = hasPrefix
	for _, h := range hits {
		r.AddDocName(h.DocId, h.DocTitle)
	}
	r.Hits(hits, label)
	return nil
}

func labelsCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "labels",
		Usage:     "list the sense labels of the repository",
		ArgsUsage: "[pattern]",
		Action: func(c *cli.Context) error {
			repo, err := e.repository()
			if err != nil {
				return err
			}

			labels, err := repo.SenseLabels(c.Args().First())
			if err != nil {
				return err
			}

			if len(labels) > 0 {
				fmt.Fprintln(e.ui.Out, strings.Join(labels, "\n"))
			}
			return nil
		},
	}
}

func queryCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "interactive sense lookup",
		Action: func(c *cli.Context) error {
			repo, err := e.repository()
			if err != nil {
				return err
			}

			if err := e.preload(repo); err != nil {
				return err
			}

			h := query.NewHandler(repo, e.renderer())
			h.Limit = e.cfg.Query.Limit
			h.BatchSize = e.cfg.Query.BatchSize
			return h.Run()
		},
	}
}

// preload loads filesystem docs into memory before the REPL starts.
func (e *env) preload(repo storage.DocReader) error {
	pl, ok := repo.(storage.Preloader)
	if !ok {
		return nil
	}

	docs, err := repo.List("")
	if err != nil {
		return err
	}

	progress := uiprogress.New()
	progress.SetOut(e.ui.Err)
	bar := progress.AddBar(len(docs))
	bar.AppendCompleted()
	bar.PrependElapsed()

	progress.Start()
	err = pl.Preload(func(current, total int, name string) {
		bar.Set(current)
	})
	progress.Stop()
	return err
}
