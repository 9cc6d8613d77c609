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
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pricecart/pricecart/pkg/logger"
	"github.com/pricecart/pricecart/pkg/request"
	"github.com/pricecart/pricecart/pkg/types"
)

// Search issues the query to the backend and decodes the result payload.
// The query goes out as given; normalization is the caller's concern.
func (c *Client) Search(ctx context.Context, query string) (*types.SearchResultPayload, error) {
	log := logger.Logger(ctx).WithField("service", "pricefinder")

	endpoint := fmt.Sprintf("%s/api/search?q=%s", c.baseURL, url.QueryEscape(query))
	req, err := request.NewRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	log.Info("querying search backend")
	body, status, err := req.MakeRequest(c.httpClient, "backend.pricefinder.Search", "pricefinder")
	if err != nil {
		log.WithError(err).Error("search request failed")
		return nil, err
	}
	if status != http.StatusOK {
		log.WithField("status", status).Error("search backend returned non-OK status")
		return nil, fmt.Errorf("search backend returned status %d", status)
	}

	var payload types.SearchResultPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.WithError(err).Error("failed to decode search response")
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return &payload, nil
}
