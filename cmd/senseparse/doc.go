package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/senseparse/render"
	"github.com/revelaction/senseparse/sense"
	"github.com/revelaction/senseparse/storage"
	"github.com/revelaction/senseparse/storage/filesystem"
)

type DocOptions struct {
	Start int
	Count int
	JSON  bool
}

func lsCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "ls",
		Usage: "list the docs of the repository",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "label", Aliases: []string{"l"}, Usage: "only docs with a label containing this string"},
		},
		Action: func(c *cli.Context) error {
			repo, err := e.repository()
			if err != nil {
				return err
			}
			return e.listDocs(repo, c.String("label"))
		},
	}
}

func docCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "doc",
		Usage:     "show the tokens of a doc, by repository id or JSON file path",
		ArgsUsage: "<id|file_path>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "start", Usage: "index of the first token to show"},
			&cli.IntFlag{Name: "n", Value: -1, Usage: "number of tokens to show (-1 for all)"},
			&cli.BoolFlag{Name: "json", Usage: "write the doc as JSON"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("doc command needs exactly one argument")
			}
			opts := DocOptions{Start: c.Int("start"), Count: c.Int("n"), JSON: c.Bool("json")}
			return e.docCommand(c.Args().First(), opts)
		},
	}
}

func (e *env) repository() (storage.DocRepository, error) {
	path, err := e.docPath()
	if err != nil {
		return nil, err
	}
	e.log.Debug("opening repository", "path", path)
	return NewDocRepository(&e.pool, path)
}

// readDoc resolves arg as a JSON file path if it is not a number.
func (e *env) readDoc(arg string) (sense.Doc, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		doc, err := filesystem.ReadDoc(arg)
		if err != nil {
			absPath, _ := filepath.Abs(arg)
			return sense.Doc{}, fmt.Errorf("filesystem document %q: %w", absPath, err)
		}
		return doc, nil
	}

	repo, err := e.repository()
	if err != nil {
		return sense.Doc{}, err
	}
	return repo.Read(id)
}

func (e *env) docCommand(arg string, opts DocOptions) error {
	doc, err := e.readDoc(arg)
	if err != nil {
		return err
	}

	if opts.JSON {
		jr := render.NewJSONRenderer(e.ui.Out)
		jr.Indent = true
		return jr.RenderDoc(doc)
	}

	e.renderDoc(doc, opts)
	return nil
}

func (e *env) renderDoc(doc sense.Doc, opts DocOptions) {
	start := opts.Start
	if start < 0 {
		start = 0
	}
	if start >= len(doc.Tokens) {
		return
	}

	tokens := doc.Tokens[start:]
	if opts.Count >= 0 && opts.Count < len(tokens) {
		tokens = tokens[:opts.Count]
	}

	prefix := fmt.Sprintf("✍  %d ", start)
	e.renderer().Tokens(tokens, prefix)
}

func (e *env) listDocs(repo storage.DocReader, labelMatch string) error {
	docs, err := repo.List(labelMatch)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		labels := ""
		if len(doc.Labels) > 0 {
			labels = " [" + strings.Join(doc.Labels, ", ") + "]"
		}
		fmt.Fprintf(e.ui.Out, "📖 %d %s%s\n", doc.Id, doc.Title, labels)
	}
	return nil
}
