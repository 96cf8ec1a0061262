package cmd

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/samblenny/webwavecam/pkg/stream"
	"github.com/samblenny/webwavecam/pkg/wavecam"
	"github.com/spf13/cobra"
)

// NewFilterCmd creates the single-image filter command
func NewFilterCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "filter a PNG/JPEG image through the wavelet pipeline",
		Long:  "Decodes an image, runs it through the wavecam pipeline with the configured scheme and shaping, and writes the filtered result as PNG.",
		RunE: func(cmd *cobra.Command, args []string) error {
			inPath, _ := cmd.Flags().GetString("file")
			if inPath == "" && len(args) > 0 {
				inPath = args[0]
			}
			if inPath == "" {
				return fmt.Errorf("image path is required. Use --file flag or provide as argument")
			}
			outPath, _ := cmd.Flags().GetString("out")
			if outPath == "" {
				outPath = strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".filtered.png"
			}
			fit, _ := cmd.Flags().GetBool("fit")
			cfg, err := configFromFlags(cmd)
			if err != nil {
				return err
			}
			return runFilter(ctx, inPath, outPath, fit, cfg)
		},
	}
	filterFlags(cmd)
	pf := cmd.PersistentFlags()
	pf.StringP("file", "f", "", "image path to filter")
	pf.StringP("out", "o", "", "output PNG path (default <file>.filtered.png)")
	pf.Bool("fit", false, "rescale inputs whose dimensions do not divide through the levels")
	return cmd
}

// runFilter decodes, filters, and re-encodes one image
func runFilter(ctx context.Context, inPath, outPath string, fit bool, cfg wavecam.Config) error {
	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	img, format, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	frame, w, h := stream.Bytes(img)
	if fit && cfg.Scheme != wavecam.SchemeNone {
		fw, fh, err := stream.FitDims(w, h, cfg.Levels)
		if err != nil {
			return err
		}
		if fw != w || fh != h {
			slog.InfoContext(ctx, "fitting image to the pyramid",
				"from", fmt.Sprintf("%dx%d", w, h),
				"to", fmt.Sprintf("%dx%d", fw, fh))
			frame, w, h = stream.Bytes(stream.Fit(img, fw, fh))
		}
	}

	if err := wavecam.Process(frame, w, h, cfg); err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer out.Close()
	if err := png.Encode(out, stream.ToImage(frame, w, h)); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	slog.InfoContext(ctx, "filtered",
		"in", inPath, "format", format, "out", outPath,
		"size", fmt.Sprintf("%dx%d", w, h))
	return nil
}
