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

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/valpere/tradcompare/internal/config"
	"github.com/valpere/tradcompare/internal/logging"
)

var version = "0.1.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tradcompare",
	Short: "Compare machine translation backends side by side",
	Long: `A CLI application that sends the same text to several translation backends
and shows their translations and latencies side by side.

Supported backends: Helsinki-NLP opus-mt (opus-mt), mBART-50 (mbart),
Amazon Translate (aws-translate), Google Cloud Translation (google)

Use "tradcompare compare --help" for comparison options.`,
	Version:      version,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves configuration for cmd and builds its logger.
func loadConfig(cmd *cobra.Command) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.New(cfg.Log.Level, cfg.Log.Format), nil
}

func init() {
	pf := rootCmd.PersistentFlags()

	pf.StringVar(&cfgFile, "config", "", "Config file (yaml, json or toml)")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-format", "text", "Log format: text or json")

	pf.StringSlice("backends", config.DefaultBackends, "Backends to compare, in display order (opus-mt, mbart, aws-translate, google)")
	pf.String("policy", "abort", "Failure policy: abort stops at the first failing backend, isolate keeps going")
	pf.Bool("parallel", false, "Call backends concurrently (output order is unchanged)")
	pf.Duration("timeout", 0, "Per-backend timeout (0 = none)")

	pf.String("region", "", "AWS region")
	pf.String("profile", "", "AWS shared config profile")
	pf.String("transport", config.TransportSageMaker, "Inference endpoint transport: sagemaker or http")
	pf.String("endpoint-url", "", "Base URL of HTTP inference endpoints (http transport)")
	pf.String("credentials", "", "Path to Google Cloud credentials")
	pf.String("project", "", "Google Cloud quota project ID")
}
