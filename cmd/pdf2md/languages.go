// Copyright Ogrodnik Labs, 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ogrodnik/pdf2md/internal/tessdata"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List and fetch Tesseract OCR language packs",
	Long: `Languages manages the .traineddata packs Tesseract recognizes text
with. Without a subcommand it lists the installed packs; fetch downloads
packs from the upstream tessdata repository.`,
	RunE: runLanguagesList,
}

var languagesFetchCmd = &cobra.Command{
	Use:   "fetch <lang>...",
	Short: "Download language packs (e.g. rus, eng, deu)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLanguagesFetch,
}

func init() {
	languagesCmd.PersistentFlags().String("tessdata-dir", "", "Tesseract language data directory")
	languagesFetchCmd.Flags().String("base-url", tessdata.DefaultBaseURL, "language pack repository URL")

	languagesCmd.AddCommand(languagesFetchCmd)
	rootCmd.AddCommand(languagesCmd)
}

func tessdataDirFromFlags(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("tessdata-dir")
	if dir == "" {
		dir = viper.GetString("tessdata_dir")
	}
	return tessdata.Resolve(dir)
}

func runLanguagesList(cmd *cobra.Command, args []string) error {
	dir := tessdataDirFromFlags(cmd)

	langs, err := tessdata.Installed(dir)
	if err != nil {
		return err
	}

	if len(langs) == 0 {
		fmt.Printf("No language packs in %s.\nFetch one with: pdf2md languages fetch rus\n", dir)
		return nil
	}

	fmt.Printf("Installed language packs (%s):\n", dir)
	for _, lang := range langs {
		fmt.Printf("  %s\n", lang)
	}
	return nil
}

func runLanguagesFetch(cmd *cobra.Command, args []string) error {
	dir := tessdataDirFromFlags(cmd)
	baseURL, _ := cmd.Flags().GetString("base-url")

	client := &http.Client{Timeout: defaultFetchTimeout}
	var failed int
	for _, lang := range args {
		if err := tessdata.Fetch(cmd.Context(), client, baseURL, dir, lang, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "failed:  %s (%v)\n", lang, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d language pack(s) failed to fetch", failed)
	}
	return nil
}
