package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: code2pdf [command] <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert      Convert a source tree to PDF (default)")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w, "  completion   Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'code2pdf help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: code2pdf [convert] <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a directory of source files (or a single file) to one PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Directory or file to convert")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>          Output PDF file (default: output.pdf)")
	fmt.Fprintln(w, "  -c, --config <name>          Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>            Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --include <globs>        Only convert matching files")
	fmt.Fprintln(w, "      --exclude <globs>        Skip matching files and directories")
	fmt.Fprintln(w, "                               (default: pnpm-lock.yaml,Cargo.lock)")
	fmt.Fprintln(w, "      --hidden                 Include dot-prefixed entries")
	fmt.Fprintln(w, "      --no-gitignore           Ignore .gitignore files")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --name <s>               Title metadata (default: Project Code)")
	fmt.Fprintln(w, "      --include-path           Show file paths in headers (default: true)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>          Page size: a4, letter, legal")
	fmt.Fprintln(w, "      --orientation <s>        Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin-top <mm>        Top margin (default: 20)")
	fmt.Fprintln(w, "      --margin-bottom <mm>     Bottom margin (default: 5)")
	fmt.Fprintln(w, "      --margin-left <mm>       Left margin (default: 10)")
	fmt.Fprintln(w, "      --margin-right <mm>      Right margin (default: 10)")
	fmt.Fprintln(w, "      --page-text <s>          Text in the top right corner, \\n for new lines")
	fmt.Fprintln(w, "      --page-date <s>          Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                               Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, hh, mm, ss")
	fmt.Fprintln(w, "                               Presets: iso, european, us, long, datetime, time")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Font:")
	fmt.Fprintln(w, "      --font <s>               Bundled name, system font name or .ttf path")
	fmt.Fprintln(w, "      --font-dir <dirs>        Directories searched for font names")
	fmt.Fprintln(w, "      --font-size <pt>         Font size (default: 12)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Highlighting:")
	fmt.Fprintln(w, "      --style <s>              Syntax style (default: github)")
	fmt.Fprintln(w, "      --max-line-length <n>    Longer lines are not highlighted")
	fmt.Fprintln(w, "      --tab-width <n>          Columns per tab stop (0 = keep tabs)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Images:")
	fmt.Fprintln(w, "      --image-quality <n>      JPEG quality (1-100, default: 85)")
	fmt.Fprintln(w, "      --max-image-dimension <n> Downscale larger images (0 = never)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                  Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                Show skipped files and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  CODE2PDF_CONFIG, CODE2PDF_OUTPUT, CODE2PDF_STYLE, CODE2PDF_FONT,")
	fmt.Fprintln(w, "  CODE2PDF_FONT_DIRS, CODE2PDF_FONT_SIZE, CODE2PDF_PAGE_SIZE,")
	fmt.Fprintln(w, "  CODE2PDF_ORIENTATION, CODE2PDF_PAGE_TEXT, CODE2PDF_PAGE_DATE,")
	fmt.Fprintln(w, "  CODE2PDF_NAME, CODE2PDF_WORKERS")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: code2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: code2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	case "completion":
		printCompletionUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
