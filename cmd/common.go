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
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/sirupsen/logrus"

	"github.com/valpere/tradcompare/internal/config"
	"github.com/valpere/tradcompare/internal/translator"
)

// backendSet is the ordered list of configured backends plus the clients
// that must be closed when the command ends.
type backendSet struct {
	backends []translator.Backend
	closers  []namedCloser
	logger   *logrus.Logger
}

type namedCloser struct {
	name  string
	close func() error
}

func (s *backendSet) Close() {
	for _, c := range s.closers {
		if err := c.close(); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"backend": c.name,
			}).Warn("Failed to close backend client")
		}
	}
}

// buildBackends constructs the configured backends in configuration order.
func buildBackends(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (_ *backendSet, err error) {
	set := &backendSet{logger: logger}
	defer func() {
		if err != nil {
			set.Close()
		}
	}()

	var awsCfg *aws.Config
	loadAWS := func() (aws.Config, error) {
		if awsCfg != nil {
			return *awsCfg, nil
		}
		var opts []func(*awsconfig.LoadOptions) error
		if cfg.AWS.Region != "" {
			opts = append(opts, awsconfig.WithRegion(cfg.AWS.Region))
		}
		if cfg.AWS.Profile != "" {
			opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.AWS.Profile))
		}
		loaded, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
		}
		awsCfg = &loaded
		return loaded, nil
	}

	var invoker translator.Invoker
	endpointInvoker := func() (translator.Invoker, error) {
		if invoker != nil {
			return invoker, nil
		}
		switch cfg.Endpoints.Transport {
		case config.TransportHTTP:
			invoker = translator.NewHTTPInvoker(cfg.Endpoints.BaseURL, cfg.Endpoints.Token, 0)
		default:
			awsConf, err := loadAWS()
			if err != nil {
				return nil, err
			}
			invoker = translator.NewSageMakerInvoker(awsConf)
		}
		return invoker, nil
	}

	for _, name := range cfg.Backends {
		var b translator.Backend

		switch name {
		case config.BackendOpusMT:
			inv, err := endpointInvoker()
			if err != nil {
				return nil, err
			}
			b = translator.NewOpusMTBackend(translator.NewEndpoint(cfg.Endpoints.OpusMT, inv))
		case config.BackendMBart:
			inv, err := endpointInvoker()
			if err != nil {
				return nil, err
			}
			b = translator.NewMBartBackend(translator.NewEndpoint(cfg.Endpoints.MBart, inv))
		case config.BackendAmazon:
			awsConf, err := loadAWS()
			if err != nil {
				return nil, err
			}
			b = translator.NewAmazonTranslateBackend(awsConf)
		case config.BackendGoogle:
			g, err := translator.NewGoogleBackend(ctx, cfg.Google.Credentials, cfg.Google.ProjectID)
			if err != nil {
				return nil, fmt.Errorf("google backend: %w", err)
			}
			set.closers = append(set.closers, namedCloser{name: g.Name(), close: g.Close})
			b = g
		default:
			return nil, fmt.Errorf("unknown backend: %s", name)
		}

		logger.WithFields(logrus.Fields{
			"id":        name,
			"backend":   b.Name(),
			"transport": cfg.Endpoints.Transport,
		}).Debug("Configured backend")
		set.backends = append(set.backends, b)
	}

	if len(set.backends) == 0 {
		return nil, fmt.Errorf("no valid backends configured")
	}
	return set, nil
}
