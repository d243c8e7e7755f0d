package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/labelscan/internal/config"
	"github.com/MeKo-Tech/labelscan/internal/overlay"
	"github.com/MeKo-Tech/labelscan/internal/preprocess"
	"github.com/MeKo-Tech/labelscan/internal/scanner"
	"github.com/MeKo-Tech/labelscan/internal/utils"
)

// scanCmd represents the scan command.
var scanCmd = &cobra.Command{
	Use:   "scan <image>",
	Short: "Decode barcodes from an image file",
	Long: `Decode 1D and 2D barcodes from a single image file.

Supported formats: JPEG, PNG, BMP

Examples:
  labelscan scan photo.jpg
  labelscan scan label.png --preset low-resolution
  labelscan scan dense.png --profile enhanced --output decoded.jpg`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(cmd, args[0])
	},
}

func runScan(cmd *cobra.Command, path string) error {
	cfg := GetConfig()

	if !utils.IsSupportedImage(path) {
		return fmt.Errorf("unsupported image format: %s (supported: %s)",
			path, strings.Join(utils.SupportedImageExtensions, ", "))
	}

	img, meta, err := utils.LoadImage(path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	slog.Info("image loaded", "path", path, "width", meta.Width, "height", meta.Height)

	settings, err := config.BuildSettings(cfg)
	if err != nil {
		return fmt.Errorf("invalid scan settings: %w", err)
	}

	profile, err := preprocess.ParseKind(cfg.Scan.Profile)
	if err != nil {
		return err
	}

	session := scanner.NewFrameSession()
	sc, err := scanner.New(session, settings, scanner.WithProfile(profile))
	if err != nil {
		return err
	}
	defer func() { _ = sc.Close() }()

	if err := session.StartNewFrameSequence(); err != nil {
		return err
	}
	defer session.EndFrameSequence()

	frame := scanner.NewRawImage(img)
	outcome := sc.ProcessFrame(cmd.Context(), frame)

	switch outcome.Status {
	case scanner.StatusSuccess, scanner.StatusNoCodesFound:
		reportResults(cmd, outcome.Results)
	case scanner.StatusInvalidImage:
		return errors.New("image produced an empty frame")
	default:
		return errors.New("scan failed with a processing error")
	}

	annotated := overlay.Render(img, outcome.Results)
	outPath := cfg.Output.File
	if outcome.Status != scanner.StatusSuccess {
		outPath = cfg.Output.DebugFile
	}
	if err := utils.SaveImage(outPath, annotated); err != nil {
		return fmt.Errorf("failed to save annotated image: %w", err)
	}
	slog.Info("annotated image written", "path", outPath, "codes", len(outcome.Results))

	return nil
}

func reportResults(cmd *cobra.Command, results []scanner.DecodeResult) {
	out := cmd.OutOrStdout()
	summary := overlay.Summarize(results)

	fmt.Fprintf(out, "Found %d code(s) (1D: %d, 2D: %d, inverted: %d)\n",
		summary.Total, summary.OneD, summary.TwoD, summary.Inverted)

	for i, r := range results {
		fmt.Fprintf(out, "\n[%d] %s\n", i+1, r.SymbologyName)
		fmt.Fprintf(out, "    Data: %s\n", r.Payload)
		fmt.Fprintf(out, "    Location: (%d, %d) %dx%d\n",
			r.Box.Min.X, r.Box.Min.Y, r.Box.Dx(), r.Box.Dy())
		fmt.Fprintf(out, "    Confidence: %.2f\n", r.Confidence)
		if r.ColorInverted {
			fmt.Fprintln(out, "    Color-inverted: yes")
		}
		if r.FormatDetails != "" {
			for _, line := range strings.Split(r.FormatDetails, "\n") {
				fmt.Fprintf(out, "    %s\n", line)
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().String("preset", config.PresetShippingLabel,
		"symbology preset (shipping-label, low-resolution)")
	scanCmd.Flags().String("profile", "enhanced",
		"preprocessing profile (baseline, enhanced)")
	scanCmd.Flags().StringP("output", "o", "labelscan_output.jpg",
		"annotated output image path")
	scanCmd.Flags().Int("max-codes", 10, "maximum codes to decode per frame")
	scanCmd.Flags().Bool("try-harder", true, "spend extra effort per decode attempt")
	scanCmd.Flags().Bool("whole-image", true, "search the whole image for multiple codes")

	_ = viper.BindPFlag("scan.preset", scanCmd.Flags().Lookup("preset"))
	_ = viper.BindPFlag("scan.profile", scanCmd.Flags().Lookup("profile"))
	_ = viper.BindPFlag("output.file", scanCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("scan.max_codes", scanCmd.Flags().Lookup("max-codes"))
	_ = viper.BindPFlag("scan.try_harder", scanCmd.Flags().Lookup("try-harder"))
	_ = viper.BindPFlag("scan.whole_image", scanCmd.Flags().Lookup("whole-image"))
}

// Fallback so "labelscan photo.jpg" behaves like "labelscan scan photo.jpg".
func init() {
	rootCmd.Args = cobra.ArbitraryArgs
	existing := rootCmd.RunE
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 && utils.IsSupportedImage(args[0]) {
			if _, err := os.Stat(args[0]); err == nil {
				return runScan(cmd, args[0])
			}
		}
		return existing(cmd, args)
	}
}
