package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pdiddy/mdclip/internal/pipeline"
	"github.com/pdiddy/mdclip/internal/render"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the clipboard Markdown in the terminal",
	Long: `Preview runs the clipboard through the same checks and math rewriting as a
conversion and renders the result in the terminal instead of producing a
document. Use --stdin to preview piped input.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cb, err := inputProvider(cmd)
		if err != nil {
			return err
		}

		progress := io.Discard
		if cfg.Verbose {
			progress = cmd.ErrOrStderr()
		}
		prep, err := pipeline.Prepare(cmd.Context(), cb, progress)
		if err != nil {
			return err
		}

		style, _ := cmd.Flags().GetString("style")
		return render.Markdown(cmd.OutOrStdout(), prep.Text, style, terminalWidth())
	},
}

// terminalWidth returns the stdout width, or 0 when stdout is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}

func init() {
	previewCmd.Flags().String("style", "", "glamour style (dark, light, dracula, notty); default picks from the terminal")

	rootCmd.AddCommand(previewCmd)
}
