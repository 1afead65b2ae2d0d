package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/edstrip/internal/config"
	"github.com/dusk-indust/edstrip/internal/hints"
	"github.com/dusk-indust/edstrip/internal/pipeline"
	"github.com/dusk-indust/edstrip/internal/report"
	"github.com/dusk-indust/edstrip/internal/strip"
)

type stripFlags struct {
	inputDir        string
	outputDir       string
	glob            string
	jobs            int
	inPlace         bool
	typeHints       string
	docstrings      string
	keepComments    bool
	noCollapse      bool
	preserveLicense bool
	exclude         []string
	language        string
	report          string
	progress        bool
	verbose         bool
}

func newStripCmd(gf *globalFlags) *cobra.Command {
	var f stripFlags

	cmd := &cobra.Command{
		Use:   "edstrip [paths...]",
		Short: "Remove comments and docstrings from source files",
		Long: `edstrip removes comments and docstrings from source files using
tree-sitter grammars, leaving the code itself byte-for-byte intact.

With no paths, every file below --input-dir matching --glob is stripped.
Results go to --output-dir (mirroring the input tree) or replace the
inputs with --in-place. A single path with neither flag is written to
stdout; "-" reads stdin and needs --language.

The exit status is the number of files that failed or produced warnings,
capped at 125.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, gf)
			if err != nil {
				return err
			}
			if err := f.apply(cmd, cfg); err != nil {
				return err
			}
			log := newLogger(cmd.ErrOrStderr(), cfg.Log)

			s, err := newStripper(cfg)
			if err != nil {
				return err
			}

			if len(args) == 1 && args[0] == "-" {
				return stripStdin(cmd, s, f.language, log)
			}
			return runPipeline(cmd, cfg, &f, s, args, log)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.inputDir, "input-dir", "i", ".", "directory searched for files when no paths are given")
	fl.StringVarP(&f.outputDir, "output-dir", "o", "", "write stripped files below this directory")
	fl.StringVarP(&f.glob, "glob", "g", pipeline.DefaultGlob, "doublestar pattern selecting files below the input directory")
	fl.IntVarP(&f.jobs, "jobs", "j", 0, "files stripped in parallel (default: one per CPU)")
	fl.BoolVar(&f.inPlace, "in-place", false, "overwrite the input files")
	fl.StringVar(&f.typeHints, "type-hints", "", "JSON or YAML file mapping glob patterns to languages")
	fl.StringVar(&f.docstrings, "docstrings", string(strip.DocstringsRemove), "docstring handling: remove, clear or keep")
	fl.BoolVar(&f.keepComments, "keep-comments", false, "keep regular comments and only process docstrings")
	fl.BoolVar(&f.noCollapse, "no-collapse", false, "keep lines left empty by a removed comment")
	fl.BoolVar(&f.preserveLicense, "preserve-license", false, "keep a leading license or copyright comment")
	fl.StringSliceVar(&f.exclude, "exclude", nil, "directory name or glob to skip (repeatable)")
	fl.StringVarP(&f.language, "language", "l", "", "language of stdin input")
	fl.StringVar(&f.report, "report", "text", "summary format: text, json or none")
	fl.BoolVar(&f.progress, "progress", false, "print a line per finished file")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "list every file in the text report")

	return cmd
}

// apply copies the flags the user set over the loaded config.
func (f *stripFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	fl := cmd.Flags()
	if fl.Changed("glob") {
		cfg.Glob = f.glob
	}
	if fl.Changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if fl.Changed("type-hints") {
		cfg.TypeHints = f.typeHints
	}
	if fl.Changed("docstrings") {
		cfg.Docstrings = f.docstrings
	}
	if fl.Changed("keep-comments") {
		cfg.KeepComments = f.keepComments
	}
	if fl.Changed("no-collapse") {
		cfg.NoCollapse = f.noCollapse
	}
	if fl.Changed("preserve-license") {
		cfg.PreserveLicense = f.preserveLicense
	}
	if fl.Changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, f.exclude...)
	}
	switch f.report {
	case "text", "json", "none":
	default:
		return fmt.Errorf("invalid report format: %s (must be text, json or none)", f.report)
	}
	return cfg.Validate()
}

func stripStdin(cmd *cobra.Command, s *strip.Stripper, language string, log *slog.Logger) error {
	if language == "" {
		return errors.New(`reading stdin ("-") requires --language`)
	}
	def, ok := s.Registry().Lookup(language)
	if !ok {
		return &strip.UnsupportedLanguageError{Language: strip.Language(language)}
	}
	src, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	res, err := s.StripWith(cmd.Context(), def, src)
	if err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(res.Output); err != nil {
		return err
	}
	for _, d := range res.Diagnostics {
		log.Warn(d.String(), "path", "-")
	}
	if res.HasWarnings() {
		return &exitError{code: 1}
	}
	return nil
}

func runPipeline(cmd *cobra.Command, cfg *config.Config, f *stripFlags, s *strip.Stripper, paths []string, log *slog.Logger) error {
	toStdout := f.outputDir == "" && !f.inPlace
	switch {
	case f.outputDir != "" && f.inPlace:
		return errors.New("--output-dir and --in-place are mutually exclusive")
	case toStdout && len(paths) != 1:
		return errors.New("nothing to write: pass --output-dir or --in-place, or a single file to print")
	}

	var typeHints hints.Hints
	if cfg.TypeHints != "" {
		h, err := hints.Load(cfg.TypeHints)
		if err != nil {
			return err
		}
		typeHints = h
	}

	var onProgress func(pipeline.Event)
	if f.progress {
		w := cmd.ErrOrStderr()
		onProgress = func(ev pipeline.Event) {
			fmt.Fprintln(w, pipeline.FormatEvent(ev))
		}
	}

	p := pipeline.New(s, pipeline.Options{
		InputDir:  f.inputDir,
		Paths:     paths,
		Glob:      cfg.Glob,
		Exclude:   cfg.Exclude,
		OutputDir: f.outputDir,
		InPlace:   f.inPlace,
		Jobs:      cfg.Jobs,
		Hints:     typeHints,
	}, log, onProgress)

	sum, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	// The report shares stdout only when stdout is not carrying a file.
	reportOut := cmd.OutOrStdout()
	if toStdout {
		reportOut = cmd.ErrOrStderr()
		if out := sum.Files[0].Output; out != nil {
			if _, err := cmd.OutOrStdout().Write(out); err != nil {
				return err
			}
		}
	}

	switch f.report {
	case "json":
		err = report.JSON(reportOut, sum)
	case "text":
		if !toStdout || sum.ExitCode() != 0 || f.verbose {
			err = report.Text(reportOut, sum, f.verbose)
		}
	}
	if err != nil {
		return err
	}

	if code := sum.ExitCode(); code != 0 {
		return &exitError{code: code}
	}
	return nil
}
