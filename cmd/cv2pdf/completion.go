package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	cv2pdf "github.com/alnah/go-cv2pdf"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagFloat
	flagEnum // has predefined values
	flagFile // any file
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long   string   // --output
	Short  string   // -o (empty if none)
	Type   flagType // completion type
	Desc   string   // help text
	Values []string // for enum flags
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values []string // enum values
	IsFile bool     // file completion
	IsDir  bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"page-size":   {Values: []string{cv2pdf.PageSizeLetter, cv2pdf.PageSizeA4, cv2pdf.PageSizeLegal}},
	"orientation": {Values: []string{cv2pdf.OrientationPortrait, cv2pdf.OrientationLandscape}},
	"engine":      {Values: cv2pdf.Engines()},

	// File flags
	"input":    {IsFile: true},
	"template": {IsFile: true},
	"style":    {IsFile: true},
	"config":   {IsFile: true},

	// Directory flags
	"output-dir": {IsDir: true},
}

// commandDescriptions lists subcommands in display order.
var commandDescriptions = [][2]string{
	{"generate", "Render CV data to HTML and PDF"},
	{"init", "Write the starter files"},
	{"doctor", "Check PDF engines and input files"},
	{"version", "Show version information"},
	{"help", "Show help for a command"},
	{"completion", "Generate shell completion script"},
}

// generateFlagDefs extracts flag definitions from the generate FlagSet,
// enriched with completion metadata from flagCompletionMeta.
func generateFlagDefs() []flagDef {
	var flags []flagDef

	newGenerateFlagSet(&generateFlags{}).VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		// Determine base type from pflag type
		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "float32", "float64":
			fd.Type = flagFloat
		default:
			fd.Type = flagString
		}

		// Override type based on completion metadata
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.IsFile:
				fd.Type = flagFile
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = bashCompletion(generateFlagDefs())
	case ShellZsh:
		script = zshCompletion(generateFlagDefs())
	case ShellFish:
		script = fishCompletion(generateFlagDefs())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

// runCompletionCmd handles the completion command.
func runCompletionCmd(args []string, env *Environment) int {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return ExitSuccess
	}

	if err := GenerateCompletion(env.Stdout, Shell(args[0])); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}
	return ExitSuccess
}

func commandNames() string {
	names := make([]string, len(commandDescriptions))
	for i, c := range commandDescriptions {
		names[i] = c[0]
	}
	return strings.Join(names, " ")
}

func bashCompletion(flags []flagDef) string {
	var b strings.Builder
	var all []string
	var valueCases []string

	for _, f := range flags {
		names := "--" + f.Long
		all = append(all, "--"+f.Long)
		if f.Short != "" {
			names += "|-" + f.Short
			all = append(all, "-"+f.Short)
		}
		switch f.Type {
		case flagEnum:
			valueCases = append(valueCases, fmt.Sprintf("        %s) COMPREPLY=($(compgen -W %q -- \"$cur\")); return ;;", names, strings.Join(f.Values, " ")))
		case flagFile:
			valueCases = append(valueCases, fmt.Sprintf("        %s) COMPREPLY=($(compgen -f -- \"$cur\")); return ;;", names))
		case flagDir:
			valueCases = append(valueCases, fmt.Sprintf("        %s) COMPREPLY=($(compgen -d -- \"$cur\")); return ;;", names))
		case flagString, flagFloat:
			valueCases = append(valueCases, fmt.Sprintf("        %s) return ;;", names))
		}
	}

	b.WriteString("# bash completion for cv2pdf\n")
	b.WriteString("_cv2pdf_completions() {\n")
	b.WriteString("    local cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    local prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    case \"$prev\" in\n")
	b.WriteString(strings.Join(valueCases, "\n") + "\n")
	b.WriteString("    esac\n")
	fmt.Fprintf(&b, "    if [[ $COMP_CWORD -eq 1 && \"$cur\" != -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\")); return\n", commandNames())
	b.WriteString("    fi\n")
	b.WriteString("    case \"${COMP_WORDS[1]}\" in\n")
	b.WriteString("        init) COMPREPLY=($(compgen -W \"--force\" -- \"$cur\") $(compgen -d -- \"$cur\")) ;;\n")
	b.WriteString("        doctor) COMPREPLY=($(compgen -W \"--json\" -- \"$cur\")) ;;\n")
	fmt.Fprintf(&b, "        help) COMPREPLY=($(compgen -W %q -- \"$cur\")) ;;\n", commandNames())
	b.WriteString("        completion) COMPREPLY=($(compgen -W \"bash zsh fish\" -- \"$cur\")) ;;\n")
	b.WriteString("        version) ;;\n")
	fmt.Fprintf(&b, "        *) COMPREPLY=($(compgen -W %q -- \"$cur\")) ;;\n", strings.Join(all, " "))
	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _cv2pdf_completions cv2pdf\n")
	return b.String()
}

// zshQuote escapes a description for use inside a single-quoted _arguments spec.
func zshQuote(s string) string {
	r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`)
	return r.Replace(s)
}

func zshCompletion(flags []flagDef) string {
	var b strings.Builder

	b.WriteString("#compdef cv2pdf\n\n")
	b.WriteString("_cv2pdf() {\n")
	b.WriteString("    local -a commands generate_flags\n")
	b.WriteString("    commands=(\n")
	for _, c := range commandDescriptions {
		fmt.Fprintf(&b, "        '%s:%s'\n", c[0], zshQuote(c[1]))
	}
	b.WriteString("    )\n")
	b.WriteString("    generate_flags=(\n")
	for _, f := range flags {
		var action string
		switch f.Type {
		case flagEnum:
			action = ":value:(" + strings.Join(f.Values, " ") + ")"
		case flagFile:
			action = ":file:_files"
		case flagDir:
			action = ":directory:_files -/"
		case flagString, flagFloat:
			action = ":value: "
		}
		desc := "[" + zshQuote(f.Desc) + "]"
		if f.Short != "" {
			fmt.Fprintf(&b, "        '(-%s --%s)'{-%s,--%s}'%s%s'\n", f.Short, f.Long, f.Short, f.Long, desc, action)
		} else {
			fmt.Fprintf(&b, "        '--%s%s%s'\n", f.Long, desc, action)
		}
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )) && [[ $words[2] != -* ]]; then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case $words[2] in\n")
	b.WriteString("        init) _arguments '(-f --force)'{-f,--force}'[overwrite existing files]' '1:directory:_files -/' ;;\n")
	b.WriteString("        doctor) _arguments '--json[machine-readable output]' ;;\n")
	b.WriteString("        help) _describe 'command' commands ;;\n")
	b.WriteString("        completion) _values 'shell' bash zsh fish ;;\n")
	b.WriteString("        version) ;;\n")
	b.WriteString("        generate) shift words; (( CURRENT-- )); _arguments $generate_flags ;;\n")
	b.WriteString("        *) _arguments $generate_flags ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("_cv2pdf \"$@\"\n")
	return b.String()
}

func fishCompletion(flags []flagDef) string {
	var b strings.Builder
	others := "init doctor version help completion"

	b.WriteString("# fish completion for cv2pdf\n")
	b.WriteString("function __fish_cv2pdf_needs_command\n")
	b.WriteString("    test (count (commandline -opc)) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_cv2pdf_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c cv2pdf -f\n")
	for _, c := range commandDescriptions {
		fmt.Fprintf(&b, "complete -c cv2pdf -n __fish_cv2pdf_needs_command -a %s -d '%s'\n", c[0], fishQuote(c[1]))
	}
	b.WriteByte('\n')

	cond := fmt.Sprintf("'not __fish_seen_subcommand_from %s'", others)
	for _, f := range flags {
		line := "complete -c cv2pdf -n " + cond
		if f.Short != "" {
			line += " -s " + f.Short
		}
		line += " -l " + f.Long
		switch f.Type {
		case flagEnum:
			line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
		case flagFile:
			line += " -r -F"
		case flagDir:
			line += " -x -a '(__fish_complete_directories)'"
		case flagString, flagFloat:
			line += " -x"
		}
		line += fmt.Sprintf(" -d '%s'", fishQuote(f.Desc))
		b.WriteString(line + "\n")
	}
	b.WriteByte('\n')

	b.WriteString("complete -c cv2pdf -n '__fish_cv2pdf_using_command init' -s f -l force -d 'Overwrite existing files'\n")
	b.WriteString("complete -c cv2pdf -n '__fish_cv2pdf_using_command init' -x -a '(__fish_complete_directories)'\n")
	b.WriteString("complete -c cv2pdf -n '__fish_cv2pdf_using_command doctor' -l json -d 'Machine-readable output'\n")
	fmt.Fprintf(&b, "complete -c cv2pdf -n '__fish_cv2pdf_using_command help' -x -a '%s'\n", commandNames())
	b.WriteString("complete -c cv2pdf -n '__fish_cv2pdf_using_command completion' -x -a 'bash zsh fish'\n")
	return b.String()
}

func fishQuote(s string) string {
	return strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s)
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cv2pdf completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(cv2pdf completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(cv2pdf completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    cv2pdf completion fish > ~/.config/fish/completions/cv2pdf.fish")
}
