package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devmarvs/csphead"
	"github.com/devmarvs/csphead/headers"
)

var (
	checkFile       string
	checkValue      bool
	checkReportOnly bool
)

// errCheckFailed is returned when validation fails. The returned error
// causes Cobra to exit with code 1.
var errCheckFailed = errors.New("policy check failed")

var checkCmd = &cobra.Command{
	Use:   "check [header-line]",
	Short: "Validate Content-Security-Policy header lines",
	Long: `Validate policy header lines from an argument, a file, or stdin.
Lines with other field names are ignored, so raw HTTP response headers can
be piped in directly. With --value the input is a bare policy value.

Examples:
  cspctl check "Content-Security-Policy: default-src 'self';"
  cspctl check --value "default-src 'self'; img-src *"
  curl -sI https://example.com | cspctl check`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkFile, "file", "", "read header lines from a file")
	checkCmd.Flags().BoolVar(&checkValue, "value", false, "treat input as a bare policy value without the field name")
	checkCmd.Flags().BoolVar(&checkReportOnly, "report-only", false, "with --value, validate as Content-Security-Policy-Report-Only")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	input, err := readInput(cmd, args, checkFile)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if checkValue {
		field := csphead.HeaderName
		parse := csphead.Parse
		if checkReportOnly {
			field = csphead.HeaderNameReportOnly
			parse = csphead.ParseReportOnly
		}
		header, err := parse(field + ": " + strings.TrimSpace(input))
		if err != nil {
			printFail(out, "%v", err)
			return errCheckFailed
		}
		printOK(out, "%s (%d directives)", field, header.Len())
		return nil
	}

	checked := 0
	failed := 0
	for i, line := range strings.Split(strings.ReplaceAll(input, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		name, _, found := strings.Cut(trimmed, ":")
		if !found || !isPolicyField(name) {
			continue
		}
		checked++
		h, err := headers.Parse(trimmed)
		if err != nil {
			failed++
			printFail(out, "line %d: %v", i+1, err)
			continue
		}
		if header, ok := h.(*csphead.Header); ok {
			printOK(out, "%s (%d directives)", header.FieldName(), header.Len())
		}
	}

	if checked == 0 {
		return errors.New("no Content-Security-Policy header lines in input")
	}
	if failed > 0 {
		return errCheckFailed
	}
	return nil
}

func isPolicyField(name string) bool {
	name = strings.TrimSpace(name)
	return strings.EqualFold(name, csphead.HeaderName) ||
		strings.EqualFold(name, csphead.HeaderNameReportOnly)
}
