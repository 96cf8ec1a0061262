package cmd

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/samblenny/webwavecam/pkg/lifting"
	"github.com/samblenny/webwavecam/pkg/stream"
	"github.com/samblenny/webwavecam/pkg/wavecam"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

// NewAnalyzeCmd creates the analyze cobra command
func NewAnalyzeCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "luma statistics and subband energy of an image",
		Long:  "Decodes an image to luma and reports intensity statistics, the tone mapper's cutoff, and the mean coefficient magnitude of every subband of a forward decomposition.",
		RunE: func(cmd *cobra.Command, args []string) error {
			filePath, _ := cmd.Flags().GetString("file")
			if filePath == "" && len(args) > 0 {
				filePath = args[0]
			}
			if filePath == "" {
				return fmt.Errorf("file path is required. Use --file flag or provide as argument")
			}
			schemeName, _ := cmd.Flags().GetString("scheme")
			scheme, err := lifting.ParseScheme(schemeName)
			if err != nil {
				return err
			}
			levels, _ := cmd.Flags().GetInt("levels")
			return runAnalyze(filePath, scheme, levels)
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("file", "f", "", "image path to analyze")
	pf.StringP("scheme", "s", "haar", "wavelet scheme for the subband report (haar|linear|none)")
	pf.IntP("levels", "n", 3, "decomposition levels for the subband report")
	return cmd
}

// runAnalyze reports luma statistics and the subband decomposition
func runAnalyze(filePath string, scheme lifting.Scheme, levels int) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	frame, w, h := stream.Bytes(img)
	if w*h == 0 {
		return fmt.Errorf("empty image")
	}
	luma := make([]byte, w*h)
	wavecam.RGBAToLuma(luma, frame)

	fmt.Println("=== Luma ===")
	fmt.Printf("Size: %dx%d\n", w, h)

	minVal, maxVal := luma[0], luma[0]
	vals := make([]float64, len(luma))
	for i, v := range luma {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
		vals[i] = float64(v)
	}
	fmt.Printf("Range: min=%d, max=%d\n", minVal, maxVal)
	fmt.Printf("Mean: %.2f\n", stat.Mean(vals, nil))
	fmt.Printf("StdDev: %.2f\n", stat.StdDev(vals, nil))

	cutoff, peaks := wavecam.ContrastCutoff(luma)
	fmt.Println("\n=== Tone ===")
	fmt.Printf("Histogram peaks found: %v\n", peaks)
	fmt.Printf("Contrast cutoff: %d\n", cutoff)

	if scheme == lifting.None || levels == 0 {
		return nil
	}
	if max := lifting.MaxLevels(w, h); levels > max {
		return fmt.Errorf("%dx%d supports at most %d levels", w, h, max)
	}

	tr := lifting.NewTransformer()
	if err := tr.Forward(luma, w, h, levels, scheme); err != nil {
		return err
	}

	fmt.Printf("\n=== Subbands (%s, %d levels) ===\n", scheme, levels)
	for level := 1; level <= levels; level++ {
		for _, band := range []lifting.Band{lifting.BandHL, lifting.BandLH, lifting.BandHH} {
			samples := lifting.ExtractBand(luma, w, lifting.BandBounds(w, h, level, band))
			fmt.Printf("L%d %s: mean |coeff| = %.2f\n", level, band, meanMagnitude(samples))
		}
	}
	ll := lifting.ExtractBand(luma, w, lifting.BandBounds(w, h, levels, lifting.BandLL))
	llVals := make([]float64, len(ll))
	for i, v := range ll {
		llVals[i] = float64(v)
	}
	fmt.Printf("L%d %s: mean = %.2f\n", levels, lifting.BandLL, stat.Mean(llVals, nil))
	return nil
}

// meanMagnitude averages the absolute values of packed signed samples
func meanMagnitude(samples []byte) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range samples {
		d := int(int8(s))
		if d < 0 {
			d = -d
		}
		sum += float64(d)
	}
	return sum / float64(len(samples))
}
