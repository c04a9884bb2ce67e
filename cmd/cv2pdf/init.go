package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-cv2pdf/internal/assets"
	"github.com/alnah/go-cv2pdf/internal/hints"
)

// runInitCmd writes the starter kit and returns an exit code.
func runInitCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	var force bool
	fs.BoolVarP(&force, "force", "f", false, "overwrite existing files")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printInitUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v: %v\n", ErrInvalidArgs, err)
		return ExitUsage
	}

	dir := "."
	switch fs.NArg() {
	case 0:
	case 1:
		dir = fs.Arg(0)
	default:
		fmt.Fprintf(env.Stderr, "error: %v: init takes at most one directory\n", ErrInvalidArgs)
		return ExitUsage
	}

	written, err := assets.WriteStarter(dir, force)
	if err != nil {
		hint := ""
		if errors.Is(err, assets.ErrStarterExists) {
			hint = hints.ForStarterExists()
		}
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hint)
		return ExitGeneral
	}

	for _, path := range written {
		fmt.Fprintf(env.Stdout, "Created %s\n", path)
	}
	fmt.Fprintln(env.Stdout, "Run 'cv2pdf' in that directory to generate your CV.")
	return ExitSuccess
}
