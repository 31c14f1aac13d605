// Copyright (c) 2020 Richard Youngkin. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// HTTPClient is the Client used by the harness. It sends JSON requests to
// BaseURL and forwards the outcome of every attempt over ResponseC.
type HTTPClient struct {
	// BaseURL is prepended to every request path
	BaseURL string
	// ResponseC receives one Response per attempted request
	ResponseC chan Response
	// Client executes the requests. Its Timeout bounds each request.
	Client http.Client
}

// NewHTTPClient returns an HTTPClient configured for up to maxConns
// simultaneously open connections to the target.
func NewHTTPClient(baseURL string, maxConns int, timeout time.Duration, responseC chan Response) *HTTPClient {
	t := &http.Transport{
		MaxIdleConnsPerHost: maxConns,
		DisableCompression:  false,
		DisableKeepAlives:   false,
	}
	return &HTTPClient{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		ResponseC: responseC,
		Client:    http.Client{Transport: t, Timeout: timeout},
	}
}

// Post sends body, encoded as JSON, to path. The returned error is only
// non-nil when no response was received; an unsuccessful status is reported
// through the Response.
func (c *HTTPClient) Post(ctx context.Context, path string, body interface{}) (Response, error) {
	resp := c.do(ctx, http.MethodPost, path, body)
	if c.ResponseC != nil {
		c.ResponseC <- resp
	}
	return resp, resp.Err
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body interface{}) Response {
	resp := Response{Scenario: ScenarioFrom(ctx), Method: method, Path: path}

	var rqstBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			resp.Err = fmt.Errorf("unable to marshal request body for %s %s: %w", method, path, err)
			return resp
		}
		rqstBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rqstBody)
	if err != nil {
		resp.Err = fmt.Errorf("unable to create http request for %s %s: %w", method, path, err)
		return resp
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	httpResp, err := c.Client.Do(req)
	resp.RequestDuration = time.Since(start)
	if err != nil {
		log.Debug().Err(err).Msgf("HTTPClient: error sending %s request to %s", method, path)
		resp.Err = err
		return resp
	}
	// Drain the body so the connection can be reused
	_, err = io.Copy(io.Discard, httpResp.Body)
	if err != nil {
		log.Debug().Err(err).Msgf("HTTPClient: error reading response body from %s %s", method, path)
	}
	httpResp.Body.Close()

	resp.HTTPStatus = httpResp.StatusCode
	return resp
}
