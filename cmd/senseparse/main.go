package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/senseparse/config"
	"github.com/revelaction/senseparse/render"
)

var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

// UI contains the input and output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// env is the state shared by all commands of one run.
type env struct {
	ui   UI
	cfg  *config.Config
	pool Pool
	log  *slog.Logger
}

func main() {
	ui := UI{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}

	if err := run(os.Args, ui); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "senseparse: %v\n", err)
}

func run(args []string, ui UI) error {
	e := &env{ui: ui}
	defer e.pool.Close()

	return newApp(e).Run(args)
}

func newApp(e *env) *cli.App {
	return &cli.App{
		Name:      "senseparse",
		Usage:     "parse, store and search word sense disambiguation output",
		Version:   BuildTag,
		Writer:    e.ui.Out,
		ErrWriter: e.ui.Err,
		Reader:    e.ui.In,

		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to the YAML config file (default $SENSEPARSE_CONFIG or " + config.DefaultPath + ")",
			},
			&cli.StringFlag{
				Name:    "doc-path",
				Aliases: []string{"d"},
				Usage:   "path to docs directory or SQLite file",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colored output",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "output format: " + strings.Join(render.SupportedFormats(), ", "),
			},
		},
		Before: e.setup,
		Commands: []*cli.Command{
			parseCmd(e),
			importCmd(e),
			exportCmd(e),
			lsCmd(e),
			docCmd(e),
			statCmd(e),
			lookupCmd(e),
			labelsCmd(e),
			queryCmd(e),
			versionCmd(e),
			bashCmd(e),
		},
	}
}

// setup loads the config, applies the global flags and creates the logger.
func (e *env) setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	if c.IsSet("doc-path") {
		cfg.Storage.DocPath = c.String("doc-path")
	}
	if c.Bool("no-color") {
		cfg.Render.NoColor = true
	}
	if c.IsSet("format") {
		cfg.Render.Format = c.String("format")
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	e.cfg = cfg
	e.log = NewLogger(cfg.Log, e.ui.Err)
	return nil
}

func (e *env) renderer() *render.Renderer {
	r := render.NewRenderer()
	r.W = e.ui.Out
	r.HasColor = !e.cfg.Render.NoColor
	r.HasPrefix = true
	r.Format = e.cfg.Render.Format
	return r
}

func (e *env) docPath() (string, error) {
	if e.cfg.Storage.DocPath == "" {
		return "", fmt.Errorf("no doc path: use --doc-path or set SENSEPARSE_DOC_PATH")
	}
	return e.cfg.Storage.DocPath, nil
}
