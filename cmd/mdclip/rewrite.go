package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mdclip/internal/markdown"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Rewrite ```math blocks from stdin into dollar math",
	Long: "Rewrite reads Markdown from stdin and writes it to stdout with every\n" +
		"```math fenced block replaced by $...$ (one line) or $$...$$ (several lines).",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoConfig: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRewrite(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func runRewrite(in io.Reader, out io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	_, err = io.WriteString(out, markdown.RewriteMathBlocks(string(data)))
	return err
}

func init() {
	rootCmd.AddCommand(rewriteCmd)
}
