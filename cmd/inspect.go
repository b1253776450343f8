package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/valivia/image-converter/internal/converter"
	"github.com/valivia/image-converter/internal/metadata"
	"github.com/valivia/image-converter/internal/tui"
	"github.com/valivia/image-converter/pkg/imgutil"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Report identifying EXIF metadata in the input folder",
	Long:  "inspect lists the convertible files in input/ and the identifying EXIF metadata each carries. Conversion currently drops this metadata; inspect shows what would be lost.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := converter.Discover(converter.InputDir, converter.OutputDir)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintf(os.Stdout, "No convertible files in %s/.\n", converter.InputDir)
			return nil
		}

		for i, path := range files {
			if i > 0 {
				fmt.Fprintln(os.Stdout)
			}
			fmt.Fprintf(os.Stdout, "%s\n", inspectFileStyle.Render(filepath.Base(path)))
			inspectFile(path)
		}

		return nil
	},
}

func inspectFile(path string) {
	file, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stdout, "  %s %s\n", inspectBulletStyle.Render("-"), inspectDimStyle.Render(err.Error()))
		return
	}
	defer file.Close()

	kind, err := imgutil.SniffReader(file)
	if err != nil || kind == imgutil.KindUnknown {
		fmt.Fprintf(os.Stdout, "  %s %s\n", inspectBulletStyle.Render("-"), inspectDimStyle.Render("not a recognized image"))
		return
	}

	report, err := metadata.Analyze(file)
	if err != nil {
		fmt.Fprintf(os.Stdout, "  %s %s\n", inspectBulletStyle.Render("-"), inspectDimStyle.Render(err.Error()))
		return
	}

	cats := report.Categories()
	if len(cats) == 0 {
		fmt.Fprintf(os.Stdout, "  %s %s\n", inspectBulletStyle.Render("-"), inspectDimStyle.Render("none"))
		return
	}
	for _, cat := range cats {
		fmt.Fprintf(os.Stdout, "  %s %s\n", inspectBulletStyle.Render("-"), inspectValueStyle.Render(cat))
	}
}

var (
	inspectFileStyle   = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	inspectValueStyle  = lipgloss.NewStyle().Foreground(tui.ColorAccentAlt)
	inspectDimStyle    = lipgloss.NewStyle().Foreground(tui.ColorDim)
	inspectBulletStyle = lipgloss.NewStyle().Foreground(tui.ColorDim)
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}
