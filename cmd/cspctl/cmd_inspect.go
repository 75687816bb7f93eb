package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/devmarvs/csphead"
	"github.com/devmarvs/csphead/headers"
)

var (
	inspectFile      string
	inspectDirective string
	inspectJSON      bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [header-line]",
	Short: "Show the directives of a policy header line",
	Long: `Parse a policy header line and list its directives. With --directive
the effective sources are shown instead, following the fetch directive
fallback chain down to default-src.

Examples:
  cspctl inspect "Content-Security-Policy: default-src 'self'; img-src *;"
  curl -sI https://example.com | cspctl inspect --directive worker-src`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFile, "file", "", "read the header line from a file")
	inspectCmd.Flags().StringVar(&inspectDirective, "directive", "", "show the effective sources for one directive")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "emit the parsed policy as JSON")
	rootCmd.AddCommand(inspectCmd)
}

type inspectedDirective struct {
	Name    string   `json:"name"`
	Sources []string `json:"sources"`
}

type inspectedPolicy struct {
	Field      string               `json:"field"`
	ReportOnly bool                 `json:"report_only"`
	Directives []inspectedDirective `json:"directives"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	input, err := readInput(cmd, args, inspectFile)
	if err != nil {
		return err
	}

	header, err := firstPolicyLine(input)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if inspectDirective != "" {
		if !csphead.ValidDirective(inspectDirective) {
			return fmt.Errorf("unknown directive %q", inspectDirective)
		}
		sources := header.EffectiveSources(inspectDirective)
		if sources == nil {
			fmt.Fprintf(out, "%s%s%s (no applicable sources)\n", cyan, strings.ToLower(inspectDirective), reset)
			return nil
		}
		fmt.Fprintf(out, "%s%s%s %s\n", cyan, strings.ToLower(inspectDirective), reset, strings.Join(sources, " "))
		return nil
	}

	if inspectJSON {
		policy := inspectedPolicy{
			Field:      header.FieldName(),
			ReportOnly: header.ReportOnly(),
			Directives: make([]inspectedDirective, 0, header.Len()),
		}
		for _, d := range header.Directives() {
			policy.Directives = append(policy.Directives, inspectedDirective{Name: d.Name, Sources: d.Sources})
		}
		data, err := sonic.MarshalIndent(policy, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintln(out, header.FieldName())
	width := 0
	for _, d := range header.Directives() {
		if len(d.Name) > width {
			width = len(d.Name)
		}
	}
	for _, d := range header.Directives() {
		fmt.Fprintf(out, "  %s%-*s%s %s\n", cyan, width, d.Name, reset, strings.Join(d.Sources, " "))
	}
	return nil
}

// firstPolicyLine parses the first policy header line in the input.
func firstPolicyLine(input string) (*csphead.Header, error) {
	for _, line := range strings.Split(strings.ReplaceAll(input, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		name, _, found := strings.Cut(trimmed, ":")
		if !found || !isPolicyField(name) {
			continue
		}
		h, err := headers.Parse(trimmed)
		if err != nil {
			return nil, err
		}
		if header, ok := h.(*csphead.Header); ok {
			return header, nil
		}
	}
	return nil, errors.New("no Content-Security-Policy header line in input")
}
