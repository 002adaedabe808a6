package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/revelaction/srlproj/config"
)

var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

// env is what every command needs besides its own options.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	cfg, err := config.Load()
	if err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}

	logger, err := cfg.Logger()
	if err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	cmd, args, err := parseMainArgs(os.Args[1:], ui)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if err := runCommand(cmd, args, env{cfg: cfg, logger: logger}, ui); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "srlproj: %v\n", err)
}

func runCommand(cmd string, args []string, e env, ui UI) error {
	switch cmd {
	case "help":
		if len(args) > 0 {
			return runCommand(args[0], []string{"--help"}, e, ui)
		}
		fs := flag.NewFlagSet("srlproj", flag.ContinueOnError)
		fs.SetOutput(ui.Out)
		setupUsage(fs)
		fs.Usage()
		return nil

	case "files":
		opts, pattern, err := parseFilesArgs(args, e.cfg, ui)
		if err != nil {
			return skipHelp(err)
		}
		return filesCommand(opts, pattern, e, ui)

	case "sentences":
		opts, file, err := parseSentencesArgs(args, e.cfg, ui)
		if err != nil {
			return skipHelp(err)
		}
		return sentencesCommand(opts, file, e, ui)

	case "show":
		opts, file, sentId, err := parseShowArgs(args, e.cfg, ui)
		if err != nil {
			return skipHelp(err)
		}
		return showCommand(opts, file, sentId, e, ui)

	case "project":
		opts, file, err := parseProjectArgs(args, e.cfg, ui)
		if err != nil {
			return skipHelp(err)
		}
		return projectCommand(opts, file, e, ui)

	case "annotate":
		opts, file, err := parseAnnotateArgs(args, e.cfg, ui)
		if err != nil {
			return skipHelp(err)
		}
		return annotateCommand(opts, file, e, ui)

	case "label":
		opts, file, sentId, label, err := parseLabelArgs(args, e.cfg, ui)
		if err != nil {
			return skipHelp(err)
		}
		return labelCommand(opts, file, sentId, label, e, ui)

	case "stat":
		opts, pattern, err := parseStatArgs(args, e.cfg, ui)
		if err != nil {
			return skipHelp(err)
		}
		return statCommand(opts, pattern, e, ui)

	case "features":
		opts, pattern, err := parseFeaturesArgs(args, e.cfg, ui)
		if err != nil {
			return skipHelp(err)
		}
		return featuresCommand(opts, pattern, e, ui)

	case "train":
		opts, err := parseTrainArgs(args, e.cfg, ui)
		if err != nil {
			return skipHelp(err)
		}
		return trainCommand(opts, e, ui)

	case "serve":
		opts, err := parseServeArgs(args, e.cfg, ui)
		if err != nil {
			return skipHelp(err)
		}
		return serveCommand(opts, e, ui)

	case "version":
		return versionCommand(ui)

	case "bash":
		if err := parseBashArgs(args, ui); err != nil {
			return skipHelp(err)
		}
		return bashCommand(ui)

	case "complete":
		completeArgs, err := parseCompleteArgs(args, ui)
		if err != nil {
			return err
		}
		return completeCommand(completeArgs, ui)
	}

	return fmt.Errorf("unknown command: %s", cmd)
}

func skipHelp(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}
