/*
Copyright 2026.

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

package pricefinder

import (
	"fmt"
	"strings"
	"time"

	"github.com/gojek/heimdall/v7"

	"github.com/pricecart/pricecart/pkg/config"
	"github.com/pricecart/pricecart/pkg/request/httpclient"
)

// Client talks to the pricefinder search backend, the service that crawls
// the retailers and answers free-text queries.
type Client struct {
	baseURL    string
	httpClient heimdall.Client
}

// NewClient creates a pricefinder client with a heimdall-backed HTTP client.
func NewClient(cfg config.SearchBackendConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("missing search backend URL")
	}

	heimdallClient, err := httpclient.InitializeClient(
		"pricefinder",
		cfg.ConnectionPool,
		cfg.Hystrix,
		heimdall.NewRetrier(heimdall.NewConstantBackoff(100*time.Millisecond, 50*time.Millisecond)), 3,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize http client: %w", err)
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		httpClient: heimdallClient,
	}, nil
}
