package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mdclip/internal/markdown"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Report whether stdin looks like Markdown",
	Long: `Detect applies the same Markdown heuristic the converter uses to text read
from stdin. It prints "markdown" and exits 0, or prints "not markdown" and
exits 1.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoConfig: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDetect(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func runDetect(in io.Reader, out io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	if !markdown.IsMarkdownLike(string(data)) {
		fmt.Fprintln(out, "not markdown")
		return errReported
	}
	fmt.Fprintln(out, "markdown")
	return nil
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
