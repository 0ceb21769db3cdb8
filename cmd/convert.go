// Package cmd — convert command.
// This is the main command that orchestrates the pipeline:
// read source → sanitize → convert → write.
//
// Conversion is all-or-nothing: on any failure nothing is written and
// the command exits with a single descriptive error.
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rahul-khatri/clipmark/core/convert"
	"github.com/rahul-khatri/clipmark/core/output"
	"github.com/rahul-khatri/clipmark/core/source"
)

// Flag variables.
var (
	flagImages bool
	flagOut    string
	flagConfig string
)

var convertCmd = &cobra.Command{
	Use:   "convert [source]",
	Short: "Convert HTML to Markdown",
	Long: `Convert reads HTML from stdin (default), a file, or a URL, sanitizes it,
and writes the Markdown conversion to stdout or --out.

Examples:
  pbpaste | clipmark convert
  clipmark convert clipboard.html --out note.md
  clipmark convert https://example.com/page --images=false`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().BoolVar(&flagImages, "images", true, "Keep images as ![alt](src) tokens")
	convertCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Output file (default: stdout)")
	convertCmd.Flags().StringVar(&flagConfig, "config", "", "Path to yaml config file")
}

func runConvert(cmd *cobra.Command, args []string) error {
	if flagConfig != "" {
		cfg, err := loadConfig(flagConfig)
		if err != nil {
			return err
		}
		applyConfig(cfg,
			cmd.Flags().Changed("images"),
			cmd.Flags().Changed("out"),
			cmd.Flags().Changed("verbose"))
	}

	arg := ""
	if len(args) == 1 {
		arg = args[0]
	}
	src := source.For(arg)

	ctx := context.Background()
	start := time.Now()

	rawHTML, err := src.Read(ctx)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	log.Debug().Str("source", src.Name()).Int("bytes", len(rawHTML)).Msg("input read")

	markdown, err := convert.New().Convert(rawHTML, flagImages)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	log.Debug().Int("bytes", len(markdown)).Dur("elapsed", time.Since(start)).Msg("converted")

	dest, err := output.New(flagOut).Write(markdown)
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}
	log.Info().Str("source", src.Name()).Str("dest", dest).Msg("done")
	return nil
}
