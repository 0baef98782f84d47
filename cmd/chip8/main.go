// Package main implements a CHIP-8 virtual machine emulator.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"

	"github.com/fekie/chip-8-emulator/pkg/chip8"
	"github.com/fekie/chip-8-emulator/pkg/rom"
	"github.com/fekie/chip-8-emulator/pkg/video"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	scale       int
	title       string
	state       string
	overlay     bool
	debug       bool
	quiet       bool
	showVersion bool
}

func main() {
	options, romPath := readArguments()

	if options.showVersion {
		fmt.Printf("chip8 version %s\n", buildinfo.Version(version, commit, date))
		return
	}

	logger := createLogger(options.debug, options.quiet)
	printBanner(logger, options)

	if err := run(logger, options, romPath); err != nil {
		logger.Fatal(err.Error())
	}
}

func readArguments() (optionFlags, string) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.IntVar(&options.scale, "scale", 10, "window scale factor for the 64x32 screen")
	flags.StringVar(&options.title, "title", "chip-8-emulator", "window title")
	flags.StringVar(&options.state, "state", "", "save state file (default: ROM path with .state appended)")
	flags.BoolVar(&options.overlay, "overlay", false, "start with the debug overlay visible")
	flags.BoolVar(&options.debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&options.quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&options.showVersion, "version", false, "print the version and exit")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || (len(args) == 0 && !options.showVersion) {
		fmt.Printf("usage: chip8 [options] <rom file>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}

	romPath := ""
	if len(args) > 0 {
		romPath = args[0]
	}
	return options, romPath
}

// createLogger creates a logger with appropriate settings.
func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func printBanner(logger *log.Logger, options optionFlags) {
	if options.quiet {
		return
	}
	logger.Info("chip-8-emulator", log.String("version", buildinfo.Version(version, commit, date)))
}

func run(logger *log.Logger, options optionFlags, romPath string) error {
	ctx, cancel := context.WithCancel(app.Context())
	defer cancel()

	image, fullPath, err := rom.Read(romPath)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}
	logger.Info("ROM loaded", log.String("file", fullPath), log.Int("bytes", len(image)))

	statePath := options.state
	if statePath == "" {
		statePath = fullPath + ".state"
	}

	runner, err := chip8.NewRunner(image, statePath, logger)
	if err != nil {
		return fmt.Errorf("creating runner: %w", err)
	}

	runnerDone := make(chan error, 1)
	go func() {
		runnerDone <- runner.Run(ctx)
	}()

	output := video.New(runner, video.Config{
		Title:       options.title,
		Scale:       options.scale,
		ShowOverlay: options.overlay,
	}, logger)

	// The presentation loop owns the main goroutine. Closing the window
	// cancels the context, which stops the runner.
	videoErr := output.Run(ctx)
	cancel()
	runnerErr := <-runnerDone

	if videoErr != nil && !errors.Is(videoErr, context.Canceled) {
		return fmt.Errorf("presentation: %w", videoErr)
	}
	if runnerErr != nil && !errors.Is(runnerErr, context.Canceled) {
		return fmt.Errorf("emulation: %w", runnerErr)
	}
	return nil
}
