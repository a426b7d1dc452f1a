// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mdclip CLI.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/pdiddy/mdclip/internal/clipboard"
	"github.com/pdiddy/mdclip/internal/config"
	"github.com/pdiddy/mdclip/internal/convert"
	"github.com/pdiddy/mdclip/internal/pipeline"
	"github.com/pdiddy/mdclip/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is resolved in PersistentPreRunE and read by every subcommand.
	cfg types.Config
	// configErr holds a failure from initConfig until a command can return it.
	configErr error
)

// errReported marks a failure that has already been explained to the user;
// main exits non-zero without printing it again.
var errReported = errors.New("failure already reported")

// rootCmd converts the clipboard when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "mdclip",
	Short: "Convert Markdown on the clipboard into a Word document",
	Long: `mdclip reads Markdown from the system clipboard, rewrites fenced math
blocks into $...$ / $$...$$ notation, converts the text to .docx with pandoc and
copies the path of the new document back to the clipboard.

Run without arguments to convert. Behaviour is controlled by mdclip.yaml
(./ or ~/.config/mdclip/) and MDCLIP_* environment variables.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupCommand,
	RunE:              runConvert,
}

// annotationNoConfig marks commands that are pure text filters. They run
// without loading configuration, so a broken config file or environment
// cannot stop them.
const annotationNoConfig = "mdclip/no-config"

// setupCommand resolves cfg and installs the logger on the command context.
func setupCommand(cmd *cobra.Command, _ []string) error {
	if _, ok := cmd.Annotations[annotationNoConfig]; ok {
		verbose, _ := cmd.Flags().GetBool("verbose")
		log := newLogger(cmd.ErrOrStderr(), verbose)
		cmd.SetContext(log.WithContext(cmd.Context()))
		return nil
	}

	if configErr != nil {
		return configErr
	}
	loaded, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	cfg = loaded

	log := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	cmd.SetContext(log.WithContext(cmd.Context()))
	log.Debug().Str("backend", string(cfg.Backend)).Str("output_dir", cfg.OutputDir).Msg("Loaded configuration")
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./mdclip.yaml or ~/.config/mdclip/mdclip.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("stdin", false, "read Markdown from stdin instead of the clipboard")

	rootCmd.Flags().String("output-dir", "", "directory for the generated document")
	rootCmd.Flags().Bool("dry-run", false, "print the rewritten Markdown instead of converting it")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("output_dir", rootCmd.Flags().Lookup("output-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	used, err := config.Init(viper.GetViper(), cfgFile)
	if err != nil {
		configErr = err
		return
	}
	if used != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", used)
	}
}

// newLogger writes human-readable diagnostics to w. Only warnings are shown
// unless verbose is set.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

func runConvert(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cb, err := inputProvider(cmd)
	if err != nil {
		return err
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		prep, err := pipeline.Prepare(ctx, cb, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, prep.Text)
		return err
	}

	fmt.Fprintln(out, "Markdown to Word Converter (Clipboard Version)")
	fmt.Fprintln(out, strings.Repeat("=", 50))

	err = convertClipboard(cmd, cb)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		fmt.Fprintln(out, "\nConversion failed!")
		err = errReported
	} else {
		fmt.Fprintln(out, "\nConversion completed successfully!")
	}
	pauseOnExit(cmd)
	return err
}

func convertClipboard(cmd *cobra.Command, cb clipboard.Provider) error {
	ctx := cmd.Context()

	conv, err := convert.New(ctx, cfg)
	if err != nil {
		return err
	}
	res, err := pipeline.Run(ctx, cfg, pipeline.Deps{Clipboard: cb, Converter: conv}, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	zerolog.Ctx(ctx).Debug().
		Str("output", res.OutputPath).
		Int("input_chars", res.InputChars).
		Int("math_blocks", res.MathBlocks).
		Msg("Conversion finished")
	return nil
}

// inputProvider returns the system clipboard, or stdin-backed input that still
// publishes the result on the system clipboard when --stdin is set.
func inputProvider(cmd *cobra.Command) (clipboard.Provider, error) {
	if useStdin, _ := cmd.Flags().GetBool("stdin"); !useStdin {
		return clipboard.System{}, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return clipboard.Split{From: clipboard.NewMemory(string(data)), To: clipboard.System{}}, nil
}

// pauseOnExit keeps a terminal window open until Enter is pressed.
func pauseOnExit(cmd *cobra.Command) {
	if !cfg.PauseOnExit || !term.IsTerminal(int(os.Stdin.Fd())) {
		return
	}
	fmt.Fprint(cmd.OutOrStdout(), "Press Enter to exit...")
	_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "mdclip:", err)
		}
		os.Exit(1)
	}
}
