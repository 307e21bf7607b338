package main

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/senseparse/stat"
)

func statCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "show sense statistics of a doc, or of all docs without argument",
		ArgsUsage: "[id|file_path]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "top", Value: 10, Usage: "number of most frequent labels to show"},
		},
		Action: func(c *cli.Context) error {
			return e.statCommand(c.Args().First(), c.Int("top"))
		},
	}
}

func (e *env) statCommand(arg string, top int) error {
	hdl := stat.NewHandler()

	if arg != "" {
		doc, err := e.readDoc(arg)
		if err != nil {
			return err
		}
		hdl.Aggregate(doc)
	} else {
		repo, err := e.repository()
		if err != nil {
			return err
		}
		docs, err := repo.List("")
		if err != nil {
			return err
		}
		for _, meta := range docs {
			doc, err := repo.Read(meta.Id)
			if err != nil {
				return err
			}
			hdl.Aggregate(doc)
		}
	}

	stats := hdl.Get()
	fmt.Fprintf(e.ui.Out, "Num tokens %d, num words %d, num annotated %d\n", stats.NumTokens, stats.NumWords, stats.NumSpans)
	fmt.Fprintf(e.ui.Out, "Num groups %d, num senses %d, senses per annotated word %.2f\n", stats.NumGroups, stats.NumSenses, stats.SensesPerSpanMean)

	for _, lf := range topLabels(stats.LabelFreq, top) {
		fmt.Fprintf(e.ui.Out, "[%5d] 🏷  %s\n", lf.count, lf.label)
	}

	return nil
}

type labelFreq struct {
	label string
	count int
}

// topLabels sorts by count, then label.
func topLabels(freq map[string]int, n int) []labelFreq {
	sl := make([]labelFreq, 0, len(freq))
	for label, count := range freq {
		sl = append(sl, labelFreq{label, count})
	}

	sort.Slice(sl, func(i, j int) bool {
		if sl[i].count != sl[j].count {
			return sl[i].count > sl[j].count
		}
		return sl[i].label < sl[j].label
	})

	if n >= 0 && n < len(sl) {
		sl = sl[:n]
	}
	return sl
}
