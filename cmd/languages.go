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
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/tradcompare/internal/language"
	"github.com/valpere/tradcompare/internal/translator"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "Show which languages each backend supports",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		set, err := buildBackends(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer set.Close()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprint(w, "LANGUAGE")
		for _, b := range set.backends {
			fmt.Fprintf(w, "\t%s", b.Name())
		}
		fmt.Fprintln(w)

		for _, l := range language.All() {
			fmt.Fprint(w, l.String())
			for _, b := range set.backends {
				fmt.Fprintf(w, "\t%s", languageCell(b, l))
			}
			fmt.Fprintln(w)
		}
		return w.Flush()
	},
}

func languageCell(b translator.Backend, l language.Language) string {
	if r, ok := b.(translator.CodeReporter); ok {
		if code, ok := r.LanguageCode(l); ok {
			return code
		}
		return "-"
	}
	for _, s := range b.SupportedLanguages() {
		if s == l {
			return "yes"
		}
	}
	return "-"
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
