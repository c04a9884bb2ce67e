package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// commands lists the subcommands; anything else is handed to generate.
var commands = map[string]bool{
	"generate":   true,
	"init":       true,
	"doctor":     true,
	"version":    true,
	"help":       true,
	"completion": true,
}

func main() {
	// A missing .env file is the common case.
	_ = godotenv.Load()

	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a command and returns the process exit code.
// With no command, or when the first argument is a flag, it generates the CV.
func runMain(args []string, env *Environment) int {
	cmd, rest := splitCommand(args)
	if !isCommand(cmd) {
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch cmd {
	case "generate":
		ctx, stop := notifyContext(context.Background())
		defer stop()
		return runGenerateCmd(ctx, rest, env)
	case "init":
		return runInitCmd(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "cv2pdf %s\n", Version)
		return ExitSuccess
	case "help":
		return runHelp(rest, env)
	default: // completion
		return runCompletionCmd(rest, env)
	}
}

// splitCommand returns the command named by args[1] and the remaining
// arguments. Flags or an empty argument list select generate.
func splitCommand(args []string) (string, []string) {
	if len(args) < 2 {
		return "generate", nil
	}
	if strings.HasPrefix(args[1], "-") {
		return "generate", args[1:]
	}
	return args[1], args[2:]
}

// isCommand reports whether name is a known subcommand.
func isCommand(name string) bool {
	return commands[name]
}

// hasVerboseFlag scans raw arguments for -v/--verbose before flag parsing.
func hasVerboseFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "-v" || arg == "--verbose" || arg == "--verbose=true" {
			return true
		}
	}
	return false
}
