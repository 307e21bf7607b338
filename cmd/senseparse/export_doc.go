package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/senseparse/sense"
	"github.com/revelaction/senseparse/storage"
	"github.com/revelaction/senseparse/storage/filesystem"
)

type ExportDocOptions struct {
	From string
	To   string
}

func exportCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write every doc of a repository as a JSON file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "source docs directory or SQLite file", Required: true},
			&cli.StringFlag{Name: "to", Usage: "target directory", Required: true},
		},
		Action: func(c *cli.Context) error {
			return e.exportDocCommand(ExportDocOptions{From: c.String("from"), To: c.String("to")})
		},
	}
}

func (e *env) exportDocCommand(opts ExportDocOptions) error {
	src, err := NewDocRepository(&e.pool, opts.From)
	if err != nil {
		return err
	}

	// Ensure target directory exists
	if err := os.MkdirAll(opts.To, 0755); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}

	docs, err := src.List("")
	if err != nil {
		return err
	}

	progress := uiprogress.New()
	progress.SetOut(e.ui.Err)
	bar := progress.AddBar(len(docs))
	bar.AppendCompleted()
	bar.PrependElapsed()

	progress.Start()
	count, err := exportDocs(src, docs, opts.To, bar)
	progress.Stop()
	if err != nil {
		return err
	}

	fmt.Fprintf(e.ui.Out, "Successfully exported %d docs from %s to %s\n", count, opts.From, opts.To)
	return nil
}

func exportDocs(src storage.DocReader, docs []sense.Doc, dir string, bar *uiprogress.Bar) (int, error) {
	count := 0
	for _, docMeta := range docs {
		doc, err := src.Read(docMeta.Id)
		if err != nil {
			return count, fmt.Errorf("failed to read doc %s (id %d): %w", docMeta.Title, docMeta.Id, err)
		}

		// Ensure title is set in the exported document
		doc.Title = docMeta.Title

		name := strings.TrimSuffix(filepath.Base(doc.Title), ".json") + ".json"
		if err := filesystem.WriteDoc(filepath.Join(dir, name), doc); err != nil {
			return count, err
		}
		count++
		bar.Incr()
	}

	return count, nil
}
