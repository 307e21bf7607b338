package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/senseparse/annotation"
	"github.com/revelaction/senseparse/render"
)

func parseCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "parse annotator output from a file or stdin",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "write the tokens as JSON"},
			&cli.BoolFlag{Name: "indent", Usage: "indent JSON output"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() > 1 {
				return fmt.Errorf("parse command accepts at most one argument")
			}
			return e.parseCommand(c.Args().First(), c.Bool("json"), c.Bool("indent"))
		},
	}
}

func (e *env) parseCommand(path string, asJSON, indent bool) error {
	var r io.Reader = e.ui.In
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	tokens, err := annotation.ParseReader(r)
	if err != nil {
		return err
	}

	e.log.Debug("parsed annotator output", "path", path, "tokens", len(tokens))

	if asJSON {
		jr := render.NewJSONRenderer(e.ui.Out)
		jr.Indent = indent
		return jr.Render(tokens)
	}

	e.renderer().Tokens(tokens, "")
	return nil
}
