package main

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	boxannotator "github.com/menta2k/box-annotator"
	"github.com/menta2k/box-annotator/internal/config"
	"github.com/menta2k/box-annotator/internal/utils"
	"github.com/menta2k/box-annotator/pkg/loader"
	"github.com/menta2k/box-annotator/pkg/render"
	"github.com/menta2k/box-annotator/pkg/script"
)

type replayOptions struct {
	image      string
	scriptPath string
	configPath string
	width      int
	height     int
	outDir     string
	format     string
	label      string
	crops      bool
	timeout    time.Duration
}

func newReplayCmd(root *rootOptions) *cobra.Command {
	opts := &replayOptions{}
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a scripted annotation session and export the boxes",
		Example: `  box-annotator replay --image photo.jpg --script session.yaml --out out
  box-annotator replay --image https://example.com/a.webp --script s.yaml --width 400 --height 300 --crops`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, root, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.image, "image", "i", "", "input image path or URL (jpg/png/gif/webp)")
	f.StringVarP(&opts.scriptPath, "script", "s", "", "session script (YAML)")
	f.StringVarP(&opts.configPath, "config", "c", "", "config file (YAML or JSON)")
	f.IntVar(&opts.width, "width", 0, "surface width (defaults to config, then image width)")
	f.IntVar(&opts.height, "height", 0, "surface height (defaults to config, then image height)")
	f.StringVarP(&opts.outDir, "out", "o", "", "output directory (defaults to config output.dir)")
	f.StringVar(&opts.format, "format", "", "frame and crop format: png|jpg|webp (defaults to config)")
	f.StringVar(&opts.label, "label", "", "initial label, overrides config (script label steps still apply)")
	f.BoolVar(&opts.crops, "crops", false, "also write one image per committed box")
	f.DurationVar(&opts.timeout, "timeout", 30*time.Second, "image load timeout")
	_ = cmd.MarkFlagRequired("image")
	_ = cmd.MarkFlagRequired("script")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadImage fetches a URL or reads a local file after checking that it
// looks like an image
func loadImage(ctx context.Context, input string) (image.Image, error) {
	src := loader.FromString(input)
	if _, remote := src.(loader.URL); !remote {
		if err := utils.CheckImageFile(input); err != nil {
			return nil, err
		}
	}
	return src.Load(ctx)
}

func runReplay(cmd *cobra.Command, root *rootOptions, opts *replayOptions) error {
	logger := root.logger()

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.outDir != "" {
		cfg.Output.Dir = opts.outDir
	}
	if opts.label != "" {
		cfg.Label = opts.label
	}
	if opts.format != "" {
		cfg.Output.Format = strings.ToLower(opts.format)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	session, err := script.LoadFromFile(opts.scriptPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	img, err := loadImage(ctx, opts.image)
	if err != nil {
		return err
	}
	info := loader.Info(img)

	width, height := cfg.Surface.Width, cfg.Surface.Height
	if opts.width > 0 || opts.height > 0 {
		width, height = opts.width, opts.height
	}
	if width == 0 && height == 0 {
		width, height = info.Width, info.Height
	}

	surface := render.NewCanvas(width, height)
	player := script.NewPlayer(session)
	ann, err := boxannotator.New(surface, loader.Static{Image: img, Name: opts.image},
		boxannotator.WithConfig(cfg.Annotator()),
		boxannotator.WithInput(player),
		boxannotator.WithLogger(logger),
		boxannotator.WithContext(ctx))
	if err != nil {
		return err
	}
	defer ann.Close()
	if err := ann.Wait(ctx); err != nil {
		return err
	}

	n := player.Play()
	logger.Debug("script replayed", "events", n, "pointer_events", session.Pointers())

	if err := utils.EnsureDir(cfg.Output.Dir); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	written := []string{}
	frame, ok := ann.Frame()
	if ok {
		framePath := filepath.Join(cfg.Output.Dir, "frame."+cfg.Output.Format)
		if err := loader.SaveImage(frame, framePath, cfg.Output.Format, cfg.Output.Quality, cfg.Output.Lossless); err != nil {
			return fmt.Errorf("failed to save frame: %w", err)
		}
		written = append(written, framePath)
	}

	boxes := ann.Boxes()
	js, err := json.MarshalIndent(boxes, "", "  ")
	if err != nil {
		return err
	}
	boxesPath := filepath.Join(cfg.Output.Dir, "boxes.json")
	if err := os.WriteFile(boxesPath, js, 0o644); err != nil {
		return fmt.Errorf("failed to write boxes: %w", err)
	}
	written = append(written, boxesPath)

	if opts.crops {
		crops, err := ann.Crops()
		if err != nil {
			return err
		}
		for i, c := range crops {
			path := utils.CropFilename(cfg.Output.Dir, i, c.Box.Label, cfg.Output.Format)
			if err := loader.SaveImage(c.Image, path, cfg.Output.Format, cfg.Output.Quality, cfg.Output.Lossless); err != nil {
				logger.Error("crop save failed", "path", path, "error", err)
				continue
			}
			written = append(written, path)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(info, width, height, boxes, written))
	return nil
}
