package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/revelaction/srlproj/annotation"
	"github.com/revelaction/srlproj/classify"
	"github.com/revelaction/srlproj/config"
	"github.com/revelaction/srlproj/render"
)

// Option structs for subcommands that have flags
type FilesOptions struct {
	DataDir  string
	DB       string
	NoPrefix bool
}

type SentencesOptions struct {
	DataDir  string
	DB       string
	NoColor  bool
	NoPrefix bool
}

type ShowOptions struct {
	DataDir string
	DB      string
	Format  string
	NoColor bool
	JSON    bool
}

type ProjectOptions struct {
	DataDir string
	JSON    bool
}

type AnnotateOptions struct {
	DataDir string
	DB      string
	Format  string
	NoColor bool
	Start   *int // nil = first sentence without annotation
}

type LabelOptions struct {
	DataDir string
	DB      string
}

type StatOptions struct {
	DataDir string
	Quiet   bool
}

type FeaturesOptions struct {
	DataDir string
	Quiet   bool
}

type TrainOptions struct {
	DataDir      string
	DB           string
	Output       string
	TestFraction float64
	Seed         uint64
	MaxIter      int
	C            float64
}

type ServeOptions struct {
	DataDir string
	DB      string
	Listen  string
}

// enumFlag implements flag.Value for restricted strings
type enumFlag struct {
	allowed []string
	value   *string
}

func (e *enumFlag) String() string {
	if e.value == nil {
		return ""
	}
	return *e.value
}

func (e *enumFlag) Set(value string) error {
	for _, a := range e.allowed {
		if a == value {
			*e.value = value
			return nil
		}
	}
	return fmt.Errorf("allowed values are %s", strings.Join(e.allowed, ", "))
}

// optionalInt implements flag.Value for optional integer flags
type optionalInt struct {
	value **int
}

func (o *optionalInt) String() string {
	if o.value == nil || *o.value == nil {
		return ""
	}
	return strconv.Itoa(**o.value)
}

func (o *optionalInt) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if v < 0 {
		return errors.New("must be non negative")
	}
	*o.value = &v
	return nil
}

func dataFlags(fs *flag.FlagSet, p *string, cfg *config.Config) {
	fs.StringVar(p, "data", cfg.DataDir, "Data root directory (or set SRLPROJ_DATA)")
	fs.StringVar(p, "d", cfg.DataDir, "alias for -data")
}

func dbFlag(fs *flag.FlagSet, p *string, cfg *config.Config) {
	fs.StringVar(p, "db", cfg.DB, "Annotation store: SQLite file, or JSON lines file ending in .json (or set SRLPROJ_DB)")
}

// parseFlags parses args, printing the usage to ui.Out for -h and to ui.Err
// for errors.
func parseFlags(fs *flag.FlagSet, args []string, ui UI) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return err
	}
	return nil
}

func usageError(fs *flag.FlagSet, ui UI, msg string) error {
	fs.SetOutput(ui.Err)
	fs.Usage()
	return errors.New(msg)
}

func parseSentenceId(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid sentenceId: %v", err)
	}
	if v < 0 {
		return 0, fmt.Errorf("invalid sentenceId: %d is negative", v)
	}
	return v, nil
}

func parseMainArgs(args []string, ui UI) (string, []string, error) {
	fs := flag.NewFlagSet("srlproj", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	setupUsage(fs)

	if err := parseFlags(fs, args, ui); err != nil {
		return "", nil, err
	}

	if fs.NArg() == 0 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return "", nil, errors.New("no command provided")
	}

	cmd := fs.Arg(0)
	cmdArgs := fs.Args()[1:]
	return cmd, cmdArgs, nil
}

func parseFilesArgs(args []string, cfg *config.Config, ui UI) (FilesOptions, string, error) {
	fs := flag.NewFlagSet("files", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts FilesOptions
	dataFlags(fs, &opts.DataDir, cfg)
	dbFlag(fs, &opts.DB, cfg)
	fs.BoolVar(&opts.NoPrefix, "no-prefix", false, "Do not show the number of annotations")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s files [options] [pattern]\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  List the data files, most annotated first. [pattern] is a glob (** supported).\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := parseFlags(fs, args, ui); err != nil {
		return opts, "", err
	}

	if fs.NArg() > 1 {
		return opts, "", usageError(fs, ui, "files command accepts at most one argument")
	}

	return opts, fs.Arg(0), nil
}

func parseSentencesArgs(args []string, cfg *config.Config, ui UI) (SentencesOptions, string, error) {
	fs := flag.NewFlagSet("sentences", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts SentencesOptions
	dataFlags(fs, &opts.DataDir, cfg)
	dbFlag(fs, &opts.DB, cfg)
	fs.BoolVar(&opts.NoColor, "no-color", false, "Disable color output")
	fs.BoolVar(&opts.NoPrefix, "no-prefix", false, "Do not show the sentence index")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s sentences [options] <file>\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  List the English sentences of a data file with their labels.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := parseFlags(fs, args, ui); err != nil {
		return opts, "", err
	}

	if fs.NArg() != 1 {
		return opts, "", usageError(fs, ui, "sentences command needs exactly one argument")
	}

	return opts, fs.Arg(0), nil
}

func parseShowArgs(args []string, cfg *config.Config, ui UI) (ShowOptions, string, int, error) {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	opts := ShowOptions{Format: render.Defaultformat}
	dataFlags(fs, &opts.DataDir, cfg)
	dbFlag(fs, &opts.DB, cfg)
	fs.Var(&enumFlag{allowed: render.SupportedFormats(), value: &opts.Format}, "format", "Output format: "+strings.Join(render.SupportedFormats(), ", "))
	fs.BoolVar(&opts.NoColor, "no-color", false, "Disable color output")
	fs.BoolVar(&opts.JSON, "json", false, "Print the sentence pair as JSON")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s show [options] <file> <sentenceId>\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Show a sentence pair: parses, frames, projected frames and alignment.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := parseFlags(fs, args, ui); err != nil {
		return opts, "", 0, err
	}

	if fs.NArg() != 2 {
		return opts, "", 0, usageError(fs, ui, "show command needs exactly two arguments")
	}

	sentId, err := parseSentenceId(fs.Arg(1))
	if err != nil {
		return opts, "", 0, err
	}

	return opts, fs.Arg(0), sentId, nil
}

func parseProjectArgs(args []string, cfg *config.Config, ui UI) (ProjectOptions, string, error) {
	fs := flag.NewFlagSet("project", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts ProjectOptions
	dataFlags(fs, &opts.DataDir, cfg)
	fs.BoolVar(&opts.JSON, "json", false, "Print all sentence pairs as JSON")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s project [options] <file>\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Project the English frames of a data file onto Hebrew and report dropped spans.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := parseFlags(fs, args, ui); err != nil {
		return opts, "", err
	}

	if fs.NArg() != 1 {
		return opts, "", usageError(fs, ui, "project command needs exactly one argument")
	}

	return opts, fs.Arg(0), nil
}

func parseAnnotateArgs(args []string, cfg *config.Config, ui UI) (AnnotateOptions, string, error) {
	fs := flag.NewFlagSet("annotate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	opts := AnnotateOptions{Format: "frames"}
	dataFlags(fs, &opts.DataDir, cfg)
	dbFlag(fs, &opts.DB, cfg)
	fs.Var(&enumFlag{allowed: render.SupportedFormats(), value: &opts.Format}, "format", "Output format: "+strings.Join(render.SupportedFormats(), ", "))
	fs.BoolVar(&opts.NoColor, "no-color", false, "Disable color output")
	fs.Var(&optionalInt{value: &opts.Start}, "start", "Index of the first sentence (default: first without annotation)")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s annotate [options] <file>\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Enter interactive annotation mode for a data file.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := parseFlags(fs, args, ui); err != nil {
		return opts, "", err
	}

	if fs.NArg() != 1 {
		return opts, "", usageError(fs, ui, "annotate command needs exactly one argument")
	}

	return opts, fs.Arg(0), nil
}

func parseLabelArgs(args []string, cfg *config.Config, ui UI) (LabelOptions, string, int, annotation.Label, error) {
	fs := flag.NewFlagSet("label", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts LabelOptions
	dataFlags(fs, &opts.DataDir, cfg)
	dbFlag(fs, &opts.DB, cfg)

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s label [options] <file> <sentenceId> <label>\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Store the label of a sentence pair, replacing any previous one.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nLabels:\n")
		for _, l := range annotation.Labels() {
			_, _ = fmt.Fprintf(fs.Output(), "  %-11s %s\n", l, l.Description())
		}
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := parseFlags(fs, args, ui); err != nil {
		return opts, "", 0, "", err
	}

	if fs.NArg() != 3 {
		return opts, "", 0, "", usageError(fs, ui, "label command needs exactly three arguments")
	}

	sentId, err := parseSentenceId(fs.Arg(1))
	if err != nil {
		return opts, "", 0, "", err
	}

	label, err := annotation.ParseLabel(fs.Arg(2))
	if err != nil {
		return opts, "", 0, "", err
	}

	return opts, fs.Arg(0), sentId, label, nil
}

func parseStatArgs(args []string, cfg *config.Config, ui UI) (StatOptions, string, error) {
	fs := flag.NewFlagSet("stat", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts StatOptions
	dataFlags(fs, &opts.DataDir, cfg)
	fs.BoolVar(&opts.Quiet, "q", false, "Do not show the progress bar")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s stat [options] [pattern]\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Show corpus and projection statistics of all (or the matching) data files.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := parseFlags(fs, args, ui); err != nil {
		return opts, "", err
	}

	if fs.NArg() > 1 {
		return opts, "", usageError(fs, ui, "stat command accepts at most one argument")
	}

	return opts, fs.Arg(0), nil
}

func parseFeaturesArgs(args []string, cfg *config.Config, ui UI) (FeaturesOptions, string, error) {
	fs := flag.NewFlagSet("features", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts FeaturesOptions
	dataFlags(fs, &opts.DataDir, cfg)
	fs.BoolVar(&opts.Quiet, "q", false, "Do not show the progress bar")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s features [options] [pattern]\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Print the classifier features of every sentence pair as tab separated values.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := parseFlags(fs, args, ui); err != nil {
		return opts, "", err
	}

	if fs.NArg() > 1 {
		return opts, "", usageError(fs, ui, "features command accepts at most one argument")
	}

	return opts, fs.Arg(0), nil
}

func parseTrainArgs(args []string, cfg *config.Config, ui UI) (TrainOptions, error) {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	defaults := classify.DefaultConfig()

	var opts TrainOptions
	dataFlags(fs, &opts.DataDir, cfg)
	dbFlag(fs, &opts.DB, cfg)
	fs.StringVar(&opts.Output, "o", "", "Write the trained model as JSON to this file")
	fs.Float64Var(&opts.TestFraction, "test", classify.DefaultTestFraction, "Fraction of the annotations held out for evaluation")
	fs.Uint64Var(&opts.Seed, "seed", defaults.Seed, "Seed of the split, the oversampling and the training order")
	fs.IntVar(&opts.MaxIter, "max-iter", defaults.MaxIter, "Passes over the training set")
	fs.Float64Var(&opts.C, "c", defaults.C, "Aggressiveness of the updates")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s train [options]\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Train the ok classifier on the annotated sentence pairs and print its evaluation.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := parseFlags(fs, args, ui); err != nil {
		return opts, err
	}

	if fs.NArg() > 0 {
		return opts, usageError(fs, ui, "train command accepts no arguments")
	}

	if opts.TestFraction <= 0 || opts.TestFraction >= 1 {
		return opts, fmt.Errorf("invalid test fraction %v: must be between 0 and 1", opts.TestFraction)
	}

	if opts.MaxIter < 1 || opts.C <= 0 {
		return opts, errors.New("max-iter and c must be positive")
	}

	return opts, nil
}

func parseServeArgs(args []string, cfg *config.Config, ui UI) (ServeOptions, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts ServeOptions
	dataFlags(fs, &opts.DataDir, cfg)
	dbFlag(fs, &opts.DB, cfg)
	fs.StringVar(&opts.Listen, "listen", cfg.Listen, "Address to listen on (or set SRLPROJ_LISTEN)")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s serve [options]\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Serve the annotation JSON API.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := parseFlags(fs, args, ui); err != nil {
		return opts, err
	}

	if fs.NArg() > 0 {
		return opts, usageError(fs, ui, "serve command accepts no arguments")
	}

	return opts, nil
}

func parseBashArgs(args []string, ui UI) error {
	fs := flag.NewFlagSet("bash", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s bash\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Output bash completion script.\n")
	}

	return parseFlags(fs, args, ui)
}

func parseCompleteArgs(args []string, ui UI) ([]string, error) {
	fs := flag.NewFlagSet("complete", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return fs.Args(), nil
}

func setupUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: %s command [command options] [arguments...]\n", os.Args[0])
		_, _ = fmt.Fprintf(output, "\nDescription:\n")
		_, _ = fmt.Fprintf(output, "  English to Hebrew semantic role projection and annotation\n")
		_, _ = fmt.Fprintf(output, "\nCommands:\n")
		_, _ = fmt.Fprintf(output, "  files      List the data files, most annotated first.\n")
		_, _ = fmt.Fprintf(output, "  sentences  List the sentences of a data file with their labels.\n")
		_, _ = fmt.Fprintf(output, "  show       Show a sentence pair with its projected frames.\n")
		_, _ = fmt.Fprintf(output, "  project    Project the frames of a data file and report dropped spans.\n")
		_, _ = fmt.Fprintf(output, "  annotate   Enter interactive annotation mode.\n")
		_, _ = fmt.Fprintf(output, "  label      Store the label of a sentence pair.\n")
		_, _ = fmt.Fprintf(output, "  stat       Show corpus and projection statistics.\n")
		_, _ = fmt.Fprintf(output, "  features   Print the classifier features of the sentence pairs.\n")
		_, _ = fmt.Fprintf(output, "  train      Train and evaluate the ok classifier.\n")
		_, _ = fmt.Fprintf(output, "  serve      Serve the annotation JSON API.\n")
		_, _ = fmt.Fprintf(output, "  version    Show the version.\n")
		_, _ = fmt.Fprintf(output, "  bash       Output bash completion script.\n")
		_, _ = fmt.Fprintf(output, "  help       Show help for a command.\n")
	}
}
