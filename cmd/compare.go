/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/valpere/tradcompare/internal/compare"
	"github.com/valpere/tradcompare/internal/detector"
	"github.com/valpere/tradcompare/internal/language"
	"github.com/valpere/tradcompare/internal/server"
	"github.com/valpere/tradcompare/internal/translator"
)

const sampleText = "Particular. Vendo Scooter comprada nueva en 2010, " +
	"solo un propietario, excelente estado, " +
	"con todas sus correspondientes revisiones y Libro de Revisiones, " +
	"ultima revisión el pasado 24 ABR 2023, con zapata freno trasero nuevo."

var (
	compareSource string
	compareTarget string
	compareText   string
	compareInput  string
	compareJSON   bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Translate text with every configured backend",
	Long: `Send the same text to every configured backend, in order, and print each
translation with its elapsed time.

Languages: Spanish, Italian, Portuguese, Catalan, Galician.
Use --source auto to detect the source language (Galician is never detected).
Backends without a code for either language print "Language not supported".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		text, err := readCompareText()
		if err != nil {
			return err
		}

		source, err := resolveSource(text)
		if err != nil {
			return err
		}
		target, err := resolveTarget(source)
		if err != nil {
			return err
		}

		ctx := cmd.Context()

		set, err := buildBackends(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer set.Close()

		driver := compare.New(set.backends, cfg.CompareConfig(), logger)

		report, runErr := driver.Compare(ctx, translator.Request{
			Text:   text,
			Source: source,
			Target: target,
		})

		out := cmd.OutOrStdout()
		if compareJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(server.NewCompareResponse(source, target, report, runErr)); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return runErr
		}

		if report != nil {
			printReport(out, report)
		}
		return runErr
	},
}

func readCompareText() (string, error) {
	switch {
	case compareInput == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	case compareInput != "":
		data, err := os.ReadFile(compareInput)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	case compareText != "":
		return compareText, nil
	default:
		return sampleText, nil
	}
}

func resolveSource(text string) (language.Language, error) {
	if compareSource != "auto" {
		return language.Parse(compareSource)
	}
	detected, ok := detector.New().Detect(text)
	if !ok {
		return 0, fmt.Errorf("could not detect source language, use --source")
	}
	fmt.Fprintf(os.Stderr, "Detected source language: %s\n", detected)
	return detected, nil
}

// resolveTarget parses --target, defaulting to the first registry language
// other than source.
func resolveTarget(source language.Language) (language.Language, error) {
	if compareTarget != "" {
		return language.Parse(compareTarget)
	}
	for _, l := range language.All() {
		if l != source {
			return l, nil
		}
	}
	return 0, fmt.Errorf("no target language available")
}

func printReport(w io.Writer, report *compare.Report) {
	for _, e := range report.Entries {
		fmt.Fprintf(w, "Model %s\n", e.Backend)
		if e.Err != nil {
			fmt.Fprintf(w, "Error: %v\n", e.Err)
		} else {
			fmt.Fprintln(w, e.Result.String())
		}
		fmt.Fprintf(w, "--- %.3f seconds ---\n\n", e.Elapsed.Seconds())
	}
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVarP(&compareSource, "source", "s", language.Spanish.String(), "Source language or \"auto\"")
	compareCmd.Flags().StringVarP(&compareTarget, "target", "t", "", "Target language (default: first language other than source)")
	compareCmd.Flags().StringVar(&compareText, "text", "", "Text to translate (default: a sample listing)")
	compareCmd.Flags().StringVarP(&compareInput, "input", "i", "", "Read text from file (- for stdin)")
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "Print the comparison as JSON")
}
