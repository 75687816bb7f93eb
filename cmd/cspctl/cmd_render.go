package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devmarvs/csphead/config"
	"github.com/devmarvs/csphead/headers"
)

var (
	renderConfig    string
	renderEnvPrefix string
	renderValueOnly bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the policy header line from a config file",
	Long: `Build the configured policy and print its header line. Environment
variables with the configured prefix override file values, so the same
config renders differently per deployment.

Examples:
  cspctl render --config csphead.yaml
  CSPHEAD_POLICY_REPORT_ONLY=true cspctl render --config csphead.yaml`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderConfig, "config", "", "path to a YAML config file")
	renderCmd.Flags().StringVar(&renderEnvPrefix, "env-prefix", "CSPHEAD_", "environment variable prefix for overrides")
	renderCmd.Flags().BoolVar(&renderValueOnly, "value-only", false, "print only the field value")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(renderConfig, renderEnvPrefix)
	if err != nil {
		return err
	}
	header, err := cfg.Policy.Header()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if renderValueOnly {
		fmt.Fprintln(out, header.FieldValue())
		return nil
	}
	var list headers.List
	list.Add(header)
	fmt.Fprint(out, list.String())
	return nil
}
