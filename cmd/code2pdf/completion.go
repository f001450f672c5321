package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-code2pdf/internal/highlight"
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
	flagNumber
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
func flagCompletionMeta() map[string]completionMeta {
	return map[string]completionMeta{
		// Enum flags
		"page-size":   {Values: []string{"a4", "letter", "legal"}},
		"orientation": {Values: []string{"portrait", "landscape"}},
		"style":       {Values: highlight.StyleNames()},

		// File flags with glob patterns
		"config": {FileGlob: "*.yaml,*.yml"},
		"output": {FileGlob: "*.pdf"},
		"font":   {FileGlob: "*.ttf"},

		// Directory flags
		"font-dir": {IsDir: true},
	}
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	meta := flagCompletionMeta()
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "float64":
			fd.Type = flagNumber
		default:
			fd.Type = flagString
		}

		if m, ok := meta[f.Name]; ok {
			switch {
			case len(m.Values) > 0:
				fd.Type = flagEnum
				fd.Values = m.Values
			case m.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = m.FileGlob
			case m.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSet.
func getCommands() []commandDef {
	return []commandDef{
		{Name: "convert", Desc: "Convert a source tree to PDF", Flags: extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{}))},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
		{Name: "completion", Desc: "Generate shell completion script"},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: code2pdf completion <shell>")
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
	fmt.Fprintln(w, "    eval \"$(code2pdf completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(code2pdf completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    code2pdf completion fish > ~/.config/fish/completions/code2pdf.fish")
}

// commandNames returns the space separated command names.
func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

// generateBash writes a bash completion function.
// Unknown first words complete as paths since convert is the default command.
func generateBash(w io.Writer) error {
	cmds := getCommands()
	convert := cmds[0]

	var b strings.Builder
	b.WriteString("# bash completion for code2pdf\n")
	b.WriteString("_code2pdf() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")

	b.WriteString("    case \"$prev\" in\n")
	for _, f := range convert.Flags {
		pattern := "--" + f.Long
		if f.Short != "" {
			pattern = "-" + f.Short + "|" + pattern
		}
		switch f.Type {
		case flagEnum:
			fmt.Fprintf(&b, "        %s)\n            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n            return ;;\n",
				pattern, strings.Join(f.Values, " "))
		case flagFile:
			fmt.Fprintf(&b, "        %s)\n            COMPREPLY=($(compgen -f -- \"$cur\"))\n            return ;;\n", pattern)
		case flagDir:
			fmt.Fprintf(&b, "        %s)\n            COMPREPLY=($(compgen -d -- \"$cur\"))\n            return ;;\n", pattern)
		case flagString, flagNumber:
			fmt.Fprintf(&b, "        %s)\n            return ;;\n", pattern)
		}
	}
	b.WriteString("    esac\n\n")

	var opts []string
	for _, f := range convert.Flags {
		opts = append(opts, "--"+f.Long)
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}
	fmt.Fprintf(&b, "    if [[ \"$cur\" == -* ]]; then\n        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n        return\n    fi\n\n",
		strings.Join(opts, " "))

	fmt.Fprintf(&b, "    if [[ $COMP_CWORD -eq 1 ]]; then\n        COMPREPLY=($(compgen -W %q -- \"$cur\") $(compgen -f -- \"$cur\"))\n        return\n    fi\n\n",
		commandNames(cmds))
	b.WriteString("    if [[ \"${COMP_WORDS[1]}\" == \"completion\" ]]; then\n")
	b.WriteString("        COMPREPLY=($(compgen -W \"bash zsh fish\" -- \"$cur\"))\n        return\n    fi\n")
	b.WriteString("    COMPREPLY=($(compgen -f -- \"$cur\"))\n")
	b.WriteString("}\n")
	b.WriteString("complete -o filenames -F _code2pdf code2pdf\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// generateZsh writes a zsh completion function.
func generateZsh(w io.Writer) error {
	cmds := getCommands()
	convert := cmds[0]

	var b strings.Builder
	b.WriteString("#compdef code2pdf\n\n")
	b.WriteString("_code2pdf() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")

	b.WriteString("    _arguments -s \\\n")
	for _, f := range convert.Flags {
		spec := "--" + f.Long
		if f.Short != "" {
			spec = "{-" + f.Short + ",--" + f.Long + "}"
		}
		desc := zshEscape(f.Desc)
		switch f.Type {
		case flagBool:
			fmt.Fprintf(&b, "        '%s[%s]' \\\n", quoteZshSpec(spec), desc)
		case flagEnum:
			fmt.Fprintf(&b, "        '%s[%s]:%s:(%s)' \\\n", quoteZshSpec(spec), desc, f.Long, strings.Join(f.Values, " "))
		case flagFile:
			globs := strings.ReplaceAll(f.FileGlob, ",", "|")
			fmt.Fprintf(&b, "        '%s[%s]:file:_files -g \"(%s)\"' \\\n", quoteZshSpec(spec), desc, globs)
		case flagDir:
			fmt.Fprintf(&b, "        '%s[%s]:directory:_files -/' \\\n", quoteZshSpec(spec), desc)
		case flagString, flagNumber:
			fmt.Fprintf(&b, "        '%s[%s]:%s:' \\\n", quoteZshSpec(spec), desc, f.Long)
		}
	}
	b.WriteString("        '1: :->first' \\\n")
	b.WriteString("        '*:input:_files'\n\n")
	b.WriteString("    case $state in\n")
	b.WriteString("        first)\n")
	b.WriteString("            _describe 'command' commands\n")
	b.WriteString("            _files\n")
	b.WriteString("            ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _code2pdf code2pdf\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// quoteZshSpec closes and reopens the single quotes around a brace
// expansion so zsh expands {-o,--output}.
func quoteZshSpec(spec string) string {
	if strings.HasPrefix(spec, "{") {
		return "'" + spec + "'"
	}
	return spec
}

// zshEscape escapes characters with meaning inside _arguments specs.
func zshEscape(s string) string {
	r := strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:")
	return r.Replace(s)
}

// generateFish writes fish completions.
func generateFish(w io.Writer) error {
	cmds := getCommands()
	convert := cmds[0]

	var b strings.Builder
	b.WriteString("# fish completion for code2pdf\n")
	b.WriteString("complete -c code2pdf -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c code2pdf -n '__fish_use_subcommand' -a %s -d %q\n", c.Name, c.Desc)
	}
	b.WriteString("complete -c code2pdf -n '__fish_use_subcommand' -F\n")
	b.WriteString("complete -c code2pdf -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish'\n")
	b.WriteString("complete -c code2pdf -n 'not __fish_seen_subcommand_from version help completion' -F\n")

	for _, f := range convert.Flags {
		line := "complete -c code2pdf -l " + f.Long
		if f.Short != "" {
			line += " -s " + f.Short
		}
		switch f.Type {
		case flagEnum:
			line += fmt.Sprintf(" -x -a %q", strings.Join(f.Values, " "))
		case flagFile, flagDir:
			line += " -r -F"
		case flagString, flagNumber:
			line += " -x"
		case flagBool:
		}
		line += fmt.Sprintf(" -d %q\n", f.Desc)
		b.WriteString(line)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
