package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/senseparse/annotation"
	"github.com/revelaction/senseparse/sense"
	"github.com/revelaction/senseparse/storage"
)

type ImportDocOptions struct {
	From        string
	To          string
	Ext         string
	Labels      []string
	SkipInvalid bool
}

func importCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "parse annotator output files of a directory into a doc repository",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "directory with annotator output files", Required: true},
			&cli.StringFlag{Name: "to", Usage: "target docs directory or SQLite file (.db, .sqlite)", Required: true},
			&cli.StringFlag{Name: "ext", Usage: "extension of the files to import", Value: ".txt"},
			&cli.StringSliceFlag{Name: "label", Aliases: []string{"l"}, Usage: "label added to every imported doc"},
			&cli.BoolFlag{Name: "skip-invalid", Usage: "skip files that fail to parse instead of stopping"},
		},
		Action: func(c *cli.Context) error {
			return e.importDocCommand(ImportDocOptions{
				From:        c.String("from"),
				To:          c.String("to"),
				Ext:         c.String("ext"),
				Labels:      c.StringSlice("label"),
				SkipInvalid: c.Bool("skip-invalid"),
			})
		},
	}
}

func (e *env) importDocCommand(opts ImportDocOptions) error {
	files, err := os.ReadDir(opts.From)
	if err != nil {
		return fmt.Errorf("failed to read source directory: %w", err)
	}

	var names []string
	for _, file := range files {
		if !file.IsDir() && filepath.Ext(file.Name()) == opts.Ext {
			names = append(names, file.Name())
		}
	}
	sort.Strings(names)

	dst, err := CreateDocRepository(&e.pool, opts.To)
	if err != nil {
		return err
	}

	fmt.Fprintf(e.ui.Out, "Reading docs from %s...\n", opts.From)

	progress := uiprogress.New()
	progress.SetOut(e.ui.Err)
	bar := progress.AddBar(len(names))
	bar.AppendCompleted()
	bar.PrependElapsed()

	progress.Start()
	count, skipped, err := e.importDocs(dst, names, opts, bar)
	progress.Stop()
	if err != nil {
		return err
	}

	fmt.Fprintf(e.ui.Out, "Successfully imported %d docs from %s to %s\n", count, opts.From, opts.To)
	if skipped > 0 {
		fmt.Fprintf(e.ui.Out, "Skipped %d invalid docs\n", skipped)
	}
	return nil
}

func (e *env) importDocs(dst storage.DocWriter, names []string, opts ImportDocOptions, bar *uiprogress.Bar) (count, skipped int, err error) {
	for _, name := range names {
		bar.Incr()

		tokens, err := parseFile(filepath.Join(opts.From, name))
		if err != nil {
			if opts.SkipInvalid {
				e.log.Warn("skipping doc", "name", name, "error", err)
				skipped++
				continue
			}
			return count, skipped, fmt.Errorf("failed to parse doc %s: %w", name, err)
		}

		doc := sense.Doc{Title: name, Labels: opts.Labels, Tokens: tokens}
		id, err := dst.Write(doc)
		if err != nil {
			return count, skipped, fmt.Errorf("failed to write doc %s: %w", name, err)
		}
		e.log.Debug("imported doc", "name", name, "id", id, "tokens", len(tokens))
		count++
	}

	return count, skipped, nil
}

func parseFile(path string) ([]sense.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return annotation.ParseReader(f)
}
