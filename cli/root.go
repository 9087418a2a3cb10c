// Package cli wires the command line surface: serving the web editor,
// one-shot rendering to SVG, and the terminal preview.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"classview/render"
	"classview/term"
	"classview/web"
)

var errColor = color.New(color.FgRed, color.Bold)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		errColor.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type options struct {
	cfg        Config
	configFile string
	verbose    bool
}

func (o *options) logger() *slog.Logger {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (o *options) theme() render.Theme {
	if o.cfg.Theme == "dark" {
		return render.ThemeDark
	}
	return render.ThemeLight
}

func newRootCmd() *cobra.Command {
	opts := &options{cfg: DefaultConfig()}

	root := &cobra.Command{
		Use:           "classview",
		Short:         "Class diagram viewer with live edge re-routing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(opts.configFile)
			if err != nil {
				return err
			}
			// Flags set explicitly win over the config file.
			if !cmd.Flags().Changed("theme") {
				opts.cfg.Theme = cfg.Theme
			}
			if !cmd.Flags().Changed("curved") {
				opts.cfg.Curved = cfg.Curved
			}
			if f := cmd.Flags().Lookup("addr"); f != nil && !f.Changed {
				opts.cfg.Addr = cfg.Addr
			}
			opts.cfg.Debounce = cfg.Debounce
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default ~/.classview.yaml)")
	root.PersistentFlags().StringVar(&opts.cfg.Theme, "theme", "light", "color theme (light or dark)")
	root.PersistentFlags().BoolVar(&opts.cfg.Curved, "curved", false, "draw edges as quadratic curves")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newServeCmd(opts), newRenderCmd(opts), newPreviewCmd(opts))
	return root
}

func newServeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web editor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return web.NewServer(opts.cfg.Addr, opts.logger()).Start(ctx)
		},
	}
	cmd.Flags().StringVar(&opts.cfg.Addr, "addr", DefaultConfig().Addr, "listen address")
	return cmd
}

func newRenderCmd(opts *options) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a diagram description to SVG",
		Long:  "Render a diagram description to SVG. Reads stdin when no file is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args)
			if err != nil {
				return err
			}

			r := render.NewClassRenderer(opts.theme(), opts.cfg.Curved, opts.logger())
			res, err := r.Render(context.Background(), string(source))
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				fmt.Fprintln(cmd.OutOrStdout(), res.SVG)
				return nil
			}
			if err := os.WriteFile(out, []byte(res.SVG), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			color.Green("wrote %s", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newPreviewCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "preview [file]",
		Short: "Interactive terminal preview",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			source, err := readSource(args)
			if err != nil {
				return err
			}
			return term.Run(string(source), opts.theme(), opts.cfg.Curved, opts.logger())
		},
	}
}

func readSource(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", args[0], err)
	}
	return data, nil
}
