package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/natefinch/atomic"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hesusruiz/aml/aml"
	"github.com/hesusruiz/aml/dialect"
	"github.com/hesusruiz/aml/filter"
	"github.com/hesusruiz/aml/preview"
	"github.com/hesusruiz/aml/settings"
)

// run holds everything needed to convert the input once
type run struct {
	cfg     *aml.Config
	filter  *filter.Filter
	preview string
	style   string
	log     *zap.SugaredLogger
}

// once converts the input, writes the output and the preview if requested
func (r *run) once() error {
	var converted string
	convert := func(text string) (string, error) {
		out, err := r.cfg.Convert(text)
		converted = out
		return out, err
	}

	start := time.Now()
	res, err := r.filter.Run(convert)
	if err != nil {
		return err
	}

	r.log.Debugw("converted",
		"input", humanize.Bytes(uint64(res.InputSize)),
		"output", humanize.Bytes(uint64(res.OutputSize)),
		"elapsed", time.Since(start),
	)

	if len(r.preview) == 0 {
		return nil
	}

	page, err := preview.Render(converted, r.cfg.Dialect().Name, r.style)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(r.preview, bytes.NewReader(page)); err != nil {
		return fmt.Errorf("writing preview: %w", err)
	}
	r.log.Debugw("preview written", "file", r.preview, "size", humanize.Bytes(uint64(len(page))))

	return nil
}

// processWatch converts the input every time its modification time changes.
// Conversion errors are logged and watching goes on.
func processWatch(r *run, inputFileName string) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	var lastMod time.Time
	for ; ; <-ticker.C {
		info, err := os.Stat(inputFileName)
		if err != nil {
			return err
		}

		modTime := info.ModTime()
		if !modTime.After(lastMod) {
			continue
		}
		lastMod = modTime

		r.log.Infow("processing", "file", inputFileName)
		if err := r.once(); err != nil {
			r.log.Errorw("conversion failed", "file", inputFileName, "error", err)
		}
	}
}

// loadSettings reads the settings file and the environment, and applies the flags on top
func loadSettings(c *cli.Context) (*settings.Settings, error) {
	s, err := settings.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("dialect") {
		s.Dialect = c.String("dialect")
	}
	if c.IsSet("keep-whitespace") {
		s.KeepWhitespace = c.Bool("keep-whitespace")
	}
	if c.IsSet("generated-warning") {
		s.Generated = c.Bool("generated-warning")
	}
	if c.IsSet("comment-syntax") {
		s.CommentSyntax = c.String("comment-syntax")
	}
	if c.IsSet("code-style") {
		s.CodeStyle = c.String("code-style")
	}
	if c.Bool("debug") {
		s.Debug = true
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// process is the main entry point of the program
func process(c *cli.Context) error {

	if c.Args().Len() > 1 {
		return cli.Exit("only one input file can be converted", 2)
	}

	s, err := loadSettings(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	var z *zap.Logger

	// Setup the logging system
	if s.Debug {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	sugar := z.Sugar()
	defer sugar.Sync()

	d, err := dialect.Lookup(s.Dialect)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	cfg, err := aml.NewBuilder().
		WithDialect(d).
		WithElision(!s.KeepWhitespace).
		WithLogger(sugar).
		Build()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	inputFileName := c.Args().First()

	f := &filter.Filter{
		Input:         inputFileName,
		Output:        c.String("output"),
		Generated:     s.Generated,
		CommentSyntax: s.CommentSyntax,
	}

	// Do not write anything if flag dryrun was specified
	if c.Bool("dryrun") {
		f.Output = filter.StdStream
		f.Stdout = io.Discard
	}

	r := &run{
		cfg:     cfg,
		filter:  f,
		preview: c.String("preview"),
		style:   s.CodeStyle,
		log:     sugar,
	}

	// This is useful for development.
	// If the user specified to watch, loop forever processing the input file when modified
	if c.Bool("watch") {
		if filter.IsStd(inputFileName) {
			return cli.Exit("the standard input can not be watched", 2)
		}
		if filter.IsStd(f.Output) && !c.Bool("dryrun") {
			return cli.Exit("an output file is required to watch the input", 2)
		}
		return processWatch(r, inputFileName)
	}

	if err := r.once(); err != nil {
		var ie *dialect.IndentError
		if errors.As(err, &ie) && !filter.IsStd(inputFileName) {
			return cli.Exit(fmt.Sprintf("%s:%d: %s", inputFileName, ie.Line, dialect.ErrIndent), 1)
		}
		return cli.Exit(err.Error(), 1)
	}

	return nil
}

func main() {

	app := &cli.App{
		Name:     "aml",
		Version:  "v0.1.0",
		Compiled: time.Now(),
		Authors: []*cli.Author{
			{
				Name:  "Jesus Ruiz",
				Email: "hesus.ruiz@gmail.com",
			},
		},
		Usage:     "convert an indentation based template into an HTML template",
		UsageText: "aml [options] [INPUT_FILE] (default input is the standard input)",
		Action:    process,
		ArgsUsage: "[INPUT_FILE]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write output to `FILE` (default is the standard output)",
			},
			&cli.StringFlag{
				Name:    "dialect",
				Aliases: []string{"t"},
				Usage:   "template engine of the output: plain, jinja, erb or erubis",
				Value:   dialect.Plain.Name,
			},
			&cli.BoolFlag{
				Name:    "keep-whitespace",
				Aliases: []string{"k"},
				Usage:   "keep the line breaks and indentation between block tags",
			},
			&cli.BoolFlag{
				Name:    "generated-warning",
				Aliases: []string{"g"},
				Usage:   "add a generated file warning to the output",
			},
			&cli.StringFlag{
				Name:    "comment-syntax",
				Aliases: []string{"c"},
				Usage:   "comment `FORMAT` for the warning; %s is the comment text and literal percent signs are written %%",
				Value:   filter.DefaultCommentSyntax,
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "read settings from the YAML `FILE`",
			},
			&cli.StringFlag{
				Name:  "preview",
				Usage: "also write a syntax highlighted HTML page of the output to `FILE`",
			},
			&cli.StringFlag{
				Name:  "code-style",
				Usage: "highlighting style of the preview",
				Value: preview.DefaultStyle,
			},
			&cli.BoolFlag{
				Name:    "dryrun",
				Aliases: []string{"n"},
				Usage:   "do not generate output, just process the input",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "run in debug mode",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "watch the input file for changes",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

}
