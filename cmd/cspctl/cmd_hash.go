package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devmarvs/csphead"
)

var hashAlg string

var hashCmd = &cobra.Command{
	Use:   "hash [file]",
	Short: "Compute the hash source token for inline content",
	Long: `Compute the hash source that allows an inline script or style. The
content is hashed byte for byte, so it must match the inline text exactly,
including whitespace.

Examples:
  cspctl hash inline.js
  printf 'doSomething();' | cspctl hash --alg sha384`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHash,
}

func init() {
	hashCmd.Flags().StringVar(&hashAlg, "alg", "sha256", "hash algorithm: sha256, sha384, or sha512")
	rootCmd.AddCommand(hashCmd)
}

func runHash(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if len(args) > 0 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return err
	}

	token := csphead.HashAlg(strings.ToLower(hashAlg)).HashFor(string(data))
	if token == "" {
		return fmt.Errorf("unknown hash algorithm %q", hashAlg)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
