package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/valivia/image-converter/internal/converter"
	"github.com/valivia/image-converter/internal/logging"
	"github.com/valivia/image-converter/internal/tui"
)

var (
	convertFormat   string
	convertQuality  int
	convertSpeed    int
	convertLossless bool
	convertResize   string
	convertSize     int
	convertWidth    int
	convertHeight   int
	convertSuffix   string
	convertKeepExif bool
	convertWorkers  int
	convertLogFile  string
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags]",
	Short: "Convert every image in input/ to the chosen codec",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := buildSettings()
		if err != nil {
			return err
		}

		files, err := converter.Discover(converter.InputDir, converter.OutputDir)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintf(os.Stdout, "No convertible files in %s/ (accepted: jpg, jpeg, png, avif).\n", converter.InputDir)
			return nil
		}

		log, err := logging.New(convertLogFile)
		if err != nil {
			return err
		}
		defer log.Sync()

		emitter := converter.NewEmitter(64)
		// Mark the consumer gone on every exit path, so a batch still
		// running when the TUI dies aborts instead of blocking on a full
		// event buffer.
		defer emitter.CloseConsumer()

		batch := converter.NewBatch(settings, emitter, log)

		model := tui.NewModel(emitter.Events(), len(files), batch.RequestStop)
		program := tea.NewProgram(model)

		go batch.Run(files)

		finalModel, err := program.Run()
		if err != nil {
			return err
		}
		final := finalModel.(tui.Model)

		failedTone := tui.ColorDim
		if final.Failed() > 0 {
			failedTone = tui.ColorWarn
		}
		rows := []tui.SummaryRow{
			{Label: "Converted", Value: fmt.Sprintf("%d", final.Succeeded()), Tone: tui.ColorSuccess},
			{Label: "Failed", Value: fmt.Sprintf("%d", final.Failed()), Tone: failedTone},
			{Label: "Total files", Value: fmt.Sprintf("%d", final.Total())},
			{Label: "Elapsed", Value: final.Elapsed().Round(time.Millisecond).String()},
		}
		fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))

		if final.Stopped() {
			fmt.Fprintln(os.Stdout, "Stopped early: files not yet started were skipped.")
		}

		outPath := converter.OutputDir
		if abs, absErr := filepath.Abs(outPath); absErr == nil {
			outPath = abs
		}
		fmt.Fprintf(os.Stdout, "Converted files written to: %s\n", outPath)

		return nil
	},
}

// buildSettings turns the flag values into the immutable snapshot a batch
// runs under.
func buildSettings() (converter.Settings, error) {
	settings := converter.DefaultSettings()

	if convertQuality < 5 || convertQuality > 100 {
		return settings, fmt.Errorf("--quality must be 5-100, got %d", convertQuality)
	}

	switch convertFormat {
	case "webp":
		settings.Encoding = converter.WebPOptions{Quality: convertQuality, Lossless: convertLossless}
	case "avif":
		if convertSpeed < 1 || convertSpeed > 10 {
			return settings, fmt.Errorf("--speed must be 1-10, got %d", convertSpeed)
		}
		settings.Encoding = converter.AvifOptions{Quality: convertQuality, Speed: convertSpeed, Lossless: convertLossless}
	case "jpg", "jpeg":
		settings.Encoding = converter.JpegOptions{Quality: convertQuality}
	default:
		return settings, fmt.Errorf("unknown --format %q (webp, avif, jpg)", convertFormat)
	}

	switch convertResize {
	case "none":
		settings.Resize = converter.ResizeNone{}
	case "largest":
		if convertSize <= 0 {
			return settings, fmt.Errorf("--resize largest requires --size")
		}
		settings.Resize = converter.ResizeLargest{Size: convertSize}
	case "smallest":
		if convertSize <= 0 {
			return settings, fmt.Errorf("--resize smallest requires --size")
		}
		settings.Resize = converter.ResizeSmallest{Size: convertSize}
	case "exact":
		if convertWidth <= 0 || convertHeight <= 0 {
			return settings, fmt.Errorf("--resize exact requires --width and --height")
		}
		settings.Resize = converter.ResizeExact{Width: convertWidth, Height: convertHeight}
	default:
		return settings, fmt.Errorf("unknown --resize %q (none, largest, smallest, exact)", convertResize)
	}

	settings.NameExtension = sanitizeSuffix(convertSuffix)
	settings.KeepExif = convertKeepExif
	settings.Workers = convertWorkers

	return settings, nil
}

// sanitizeSuffix strips filesystem-forbidden characters; the core expects a
// pre-stripped name extension.
func sanitizeSuffix(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(`/\:*?"<>|`, r) {
			return -1
		}
		return r
	}, s)
}

func init() {
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "webp", "output codec: webp, avif, or jpg")
	convertCmd.Flags().IntVarP(&convertQuality, "quality", "q", 90, "encode quality (5-100)")
	convertCmd.Flags().IntVar(&convertSpeed, "speed", 8, "AVIF encoder speed (1-10)")
	convertCmd.Flags().BoolVar(&convertLossless, "lossless", false, "lossless encode (webp only)")
	convertCmd.Flags().StringVar(&convertResize, "resize", "none", "resize mode: none, largest, smallest, or exact")
	convertCmd.Flags().IntVar(&convertSize, "size", 0, "target size in px for largest/smallest")
	convertCmd.Flags().IntVar(&convertWidth, "width", 0, "target width in px for exact")
	convertCmd.Flags().IntVar(&convertHeight, "height", 0, "target height in px for exact")
	convertCmd.Flags().StringVar(&convertSuffix, "suffix", "", "string appended to each output file stem")
	convertCmd.Flags().BoolVar(&convertKeepExif, "keep-exif", false, "keep EXIF metadata (not implemented yet)")
	convertCmd.Flags().IntVar(&convertWorkers, "workers", 0, "worker pool size (default: one per CPU)")
	convertCmd.Flags().StringVar(&convertLogFile, "log-file", "", "diagnostics log file (default imgconv.log)")

	rootCmd.AddCommand(convertCmd)
}
