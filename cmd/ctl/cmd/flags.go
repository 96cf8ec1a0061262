package cmd

import (
	"github.com/samblenny/webwavecam/pkg/lifting"
	"github.com/samblenny/webwavecam/pkg/wavecam"
	"github.com/spf13/cobra"
)

// filterFlags binds the pipeline config flags shared by the filter and
// stream commands.
func filterFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringP("scheme", "s", "haar", "wavelet scheme (haar|linear|none)")
	pf.IntP("levels", "n", 3, "decomposition levels (1-6)")
	pf.Bool("reconstruct", true, "run the inverse transform; false shows the raw coefficient planes")
	pf.String("contrast", "histogram", "auto-contrast mode (histogram|none)")
	pf.Bool("invert", false, "invert output intensities")
	pf.Bool("one-bit", false, "threshold the output to black and white")
	pf.Int("one-bit-bias", 127, "one-bit threshold (0-255)")
	pf.Bool("squash", false, "flatten the top of the final average band")
	pf.Int("squash-bias", 0, "intensity for squashed samples (0-255)")
	pf.IntSlice("gate", nil, "per-level noise gates, level 1 first (0-255 each)")
	pf.IntSlice("gain", nil, "per-level gain shifts, level 1 first (0-7 each)")
	pf.IntSlice("bias", nil, "per-level bias boosts, level 1 first (0-7 each)")
}

// configFromFlags assembles the pipeline config bound by filterFlags.
// Range validation stays with Config.Validate.
func configFromFlags(cmd *cobra.Command) (wavecam.Config, error) {
	fl := cmd.Flags()
	cfg := wavecam.DefaultConfig()

	schemeName, _ := fl.GetString("scheme")
	scheme, err := lifting.ParseScheme(schemeName)
	if err != nil {
		return cfg, err
	}
	cfg.Scheme = scheme
	cfg.Levels, _ = fl.GetInt("levels")
	cfg.Reconstruct, _ = fl.GetBool("reconstruct")

	contrastName, _ := fl.GetString("contrast")
	contrast, err := wavecam.ParseContrast(contrastName)
	if err != nil {
		return cfg, err
	}
	cfg.Contrast = contrast
	cfg.Invert, _ = fl.GetBool("invert")
	cfg.OneBit, _ = fl.GetBool("one-bit")
	cfg.OneBitBias, _ = fl.GetInt("one-bit-bias")
	cfg.Squash, _ = fl.GetBool("squash")
	cfg.SquashBias, _ = fl.GetInt("squash-bias")

	gates, _ := fl.GetIntSlice("gate")
	gains, _ := fl.GetIntSlice("gain")
	biases, _ := fl.GetIntSlice("bias")
	n := len(gates)
	if len(gains) > n {
		n = len(gains)
	}
	if len(biases) > n {
		n = len(biases)
	}
	cfg.PerLevel = make([]lifting.LevelParams, n)
	for i := range cfg.PerLevel {
		if i < len(gates) {
			cfg.PerLevel[i].Gate = gates[i]
		}
		if i < len(gains) {
			cfg.PerLevel[i].Gain = gains[i]
		}
		if i < len(biases) {
			cfg.PerLevel[i].Bias = biases[i]
		}
	}
	return cfg, nil
}
