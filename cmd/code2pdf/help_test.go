package main

// Notes:
// - printConvertUsage: we test every registered flag appears in the help
//   text, so the two cannot drift apart.
// These are acceptable gaps: we test observable behavior, not exact wording.

import (
	"bytes"
	"strings"
	"testing"

	flag "github.com/spf13/pflag"
)

func TestPrintConvertUsage_ListsEveryFlag(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printConvertUsage(&buf)
	help := buf.String()

	newConvertFlagSet(&convertFlags{}).VisitAll(func(f *flag.Flag) {
		if !strings.Contains(help, "--"+f.Name) {
			t.Errorf("help text is missing --%s", f.Name)
		}
		if f.Shorthand != "" && !strings.Contains(help, "-"+f.Shorthand+", --"+f.Name) {
			t.Errorf("help text is missing -%s for --%s", f.Shorthand, f.Name)
		}
	})
}

func TestPrintUsage_ListsEveryCommand(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)

	for _, cmd := range commands {
		if !strings.Contains(buf.String(), "  "+cmd+" ") {
			t.Errorf("usage is missing command %s", cmd)
		}
	}
}

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args     []string
		wantCode int
		want     string
	}{
		{nil, ExitSuccess, "Usage: code2pdf [command]"},
		{[]string{"convert"}, ExitSuccess, "Arguments:"},
		{[]string{"version"}, ExitSuccess, "Usage: code2pdf version"},
		{[]string{"help"}, ExitSuccess, "Usage: code2pdf help"},
		{[]string{"completion"}, ExitSuccess, "Usage: code2pdf completion"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			t.Parallel()

			env, stdout, _ := newTestEnv()
			if code := runHelp(tt.args, env); code != tt.wantCode {
				t.Errorf("runHelp(%v) = %d, want %d", tt.args, code, tt.wantCode)
			}
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("stdout = %q, want it to contain %q", stdout, tt.want)
			}
		})
	}
}
