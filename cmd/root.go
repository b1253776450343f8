package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "imgconv",
	Short: "imgconv - bulk image conversion to WebP, AVIF, or JPEG",
	Long:  "imgconv converts every image in the input folder to a chosen codec in parallel, with optional resizing and live progress.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}
