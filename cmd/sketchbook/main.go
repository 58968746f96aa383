package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sketchbook/internal/config"
	"sketchbook/internal/logging"
	"sketchbook/internal/render"
	"sketchbook/internal/sketch"
	"sketchbook/internal/tui"
)

const defaultSketch = "gradient"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:           "sketchbook [sketch]",
		Short:         "Interactive visualization sketches in the terminal",
		Long:          "Sketches: " + strings.Join(sketch.Names(), ", "),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), cfgPath, args)
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "YAML config file")

	root.AddCommand(&cobra.Command{
		Use:   "view [sketch]",
		Short: "Open the terminal viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), cfgPath, args)
		},
	})

	var opts renderOpts
	renderCmd := &cobra.Command{
		Use:   "render <sketch>",
		Short: "Step a sketch headlessly and export the frame as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), cfgPath, args[0], opts)
		},
	}
	renderCmd.Flags().IntVar(&opts.frames, "frames", 60, "ticks to run before exporting")
	renderCmd.Flags().StringVarP(&opts.out, "out", "o", "", "output PNG (default <sketch>.png)")
	renderCmd.Flags().StringVar(&opts.engine, "engine", "gg", "export engine: gg or chart")
	root.AddCommand(renderCmd)
	return root
}

func setup(path string) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}

func runView(ctx context.Context, cfgPath string, args []string) error {
	cfg, log, err := setup(cfgPath)
	if err != nil {
		return err
	}
	defer log.Sync()
	name := defaultSketch
	if len(args) > 0 {
		name = args[0]
	}
	m, err := tui.New(ctx, cfg, log, name)
	if err != nil {
		return err
	}
	log.Info("viewer started", zap.String("sketch", name), zap.Int("fps", cfg.FPS))
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx)).Run()
	return err
}

type renderOpts struct {
	frames int
	out    string
	engine string
}

func runRender(ctx context.Context, cfgPath, name string, opts renderOpts) error {
	cfg, log, err := setup(cfgPath)
	if err != nil {
		return err
	}
	defer log.Sync()
	env := sketch.NewEnv(cfg, log)
	s, err := sketch.New(name, env)
	if err != nil {
		return err
	}
	now := sketch.Step(ctx, s, opts.frames, cfg.FPS, env.Now, log)
	out := opts.out
	if out == "" {
		out = name + ".png"
	}
	switch opts.engine {
	case "gg":
		if err := render.SavePNG(out, s.Frame(now)); err != nil {
			return err
		}
	case "chart":
		ch, ok := s.(sketch.Charter)
		if !ok {
			return fmt.Errorf("sketch %s has no chart view", name)
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := render.WriteChartPNG(f, ch.Chart()); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown engine %q (want gg or chart)", opts.engine)
	}
	log.Info("frame exported", zap.String("sketch", name), zap.Int("frames", opts.frames), zap.String("engine", opts.engine), zap.String("out", out))
	fmt.Println(out)
	return nil
}
