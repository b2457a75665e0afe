// Copyright Ogrodnik Labs, 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ogrodnik/pdf2md/internal/deps"
	"github.com/ogrodnik/pdf2md/internal/device"
	"github.com/ogrodnik/pdf2md/internal/tessdata"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the conversion engines and language data are available",
	Long: `Doctor verifies the environment: the MuPDF engine, the Tesseract OCR
engine, and the OCR language packs for the configured languages. It also
reports the detected accelerator. Exits non-zero and names what is
missing when the environment is incomplete.`,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().String("lang", "", "OCR languages to check, \"+\"-separated (default rus+eng)")
	doctorCmd.Flags().String("tessdata-dir", "", "Tesseract language data directory")

	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	lang, _ := cmd.Flags().GetString("lang")
	if lang == "" {
		lang = viper.GetString("language")
	}
	if lang == "" {
		lang = defaultLanguage
	}

	tessdataDir, _ := cmd.Flags().GetString("tessdata-dir")
	if tessdataDir == "" {
		tessdataDir = viper.GetString("tessdata_dir")
	}
	tessdataDir = tessdata.Resolve(tessdataDir)

	info := device.Detect()
	fmt.Fprintf(os.Stdout, "accelerator: %s (%s)\n\n", info.Kind, info.Label)

	report := deps.Check(lang, tessdataDir)
	report.Write(os.Stdout)

	if !report.AllInstalled() {
		return fmt.Errorf("missing dependencies: %s", strings.Join(report.MissingNames(), ", "))
	}

	fmt.Fprintln(os.Stdout, "\nAll dependencies are installed.")
	return nil
}
