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
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/valpere/tradcompare/internal/compare"
	"github.com/valpere/tradcompare/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve comparisons over a JSON HTTP API",
	Long: `Start an HTTP server exposing:

  POST /api/v1/compare     {"text", "source", "target"}
  GET  /api/v1/languages
  GET  /health
  GET  /metrics            Prometheus metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		set, err := buildBackends(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer set.Close()

		driver := compare.New(set.backends, cfg.CompareConfig(), logger)
		return server.NewHTTPServer(driver, logger, cfg.Server.Addr).Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Listen address")
}
