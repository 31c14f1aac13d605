// Copyright (c) 2020 Richard Youngkin. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package internal

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type srvHandler struct {
	HTTPStatus int
	delay      time.Duration

	mu          sync.Mutex
	method      string
	path        string
	contentType string
	body        []byte
}

func (s *srvHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.method = r.Method
	s.path = r.URL.Path
	s.contentType = r.Header.Get("Content-Type")
	s.body, _ = io.ReadAll(r.Body)
	s.mu.Unlock()
	time.Sleep(s.delay)
	w.WriteHeader(s.HTTPStatus)
	w.Write([]byte(`{"ok":true}`))
}

func TestHTTPClientPost(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "OK", status: http.StatusOK},
		{name: "Created", status: http.StatusCreated},
		{name: "NotFoundIsNotAnError", status: http.StatusNotFound},
		{name: "ServerErrorIsNotAnError", status: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := &srvHandler{HTTPStatus: tc.status}
			testSrv := httptest.NewServer(handler)
			defer testSrv.Close()

			respC := make(chan Response, 1)
			client := NewHTTPClient(testSrv.URL+"/", 1, time.Second, respC)

			resp, err := client.Post(context.Background(), "/cargo/vertiports",
				map[string]int{"latitude": 0, "longitude": 0})
			require.NoError(t, err)

			assert.Equal(t, tc.status, resp.HTTPStatus)
			assert.Equal(t, http.MethodPost, resp.Method)
			assert.Equal(t, "/cargo/vertiports", resp.Path)
			assert.Equal(t, tc.status >= 400, resp.Failed())

			handler.mu.Lock()
			defer handler.mu.Unlock()
			assert.Equal(t, http.MethodPost, handler.method)
			assert.Equal(t, "/cargo/vertiports", handler.path)
			assert.Equal(t, "application/json", handler.contentType)
			assert.JSONEq(t, `{"latitude":0,"longitude":0}`, string(handler.body))

			recorded := <-respC
			assert.Equal(t, resp, recorded)
		})
	}
}

func TestHTTPClientTimeout(t *testing.T) {
	handler := &srvHandler{HTTPStatus: http.StatusOK, delay: 200 * time.Millisecond}
	testSrv := httptest.NewServer(handler)
	defer testSrv.Close()

	respC := make(chan Response, 1)
	client := NewHTTPClient(testSrv.URL, 1, 10*time.Millisecond, respC)

	resp, err := client.Post(context.Background(), "/slow", nil)
	assert.Error(t, err)
	assert.Equal(t, 0, resp.HTTPStatus)
	assert.True(t, resp.Failed())

	recorded := <-respC
	assert.Error(t, recorded.Err)
}

func TestHTTPClientConnectionRefused(t *testing.T) {
	testSrv := httptest.NewServer(&srvHandler{HTTPStatus: http.StatusOK})
	url := testSrv.URL
	testSrv.Close()

	client := NewHTTPClient(url, 1, time.Second, nil)
	resp, err := client.Post(context.Background(), "/assets/aircraft", nil)
	assert.Error(t, err)
	assert.True(t, resp.Failed())
}

func TestHTTPClientUnmarshalableBody(t *testing.T) {
	respC := make(chan Response, 1)
	client := NewHTTPClient("http://localhost:0", 1, time.Second, respC)

	_, err := client.Post(context.Background(), "/x", map[string]interface{}{"bad": make(chan int)})
	assert.Error(t, err)

	var typeErr *json.UnsupportedTypeError
	assert.ErrorAs(t, (<-respC).Err, &typeErr)
}

func TestHTTPClientScenarioFromContext(t *testing.T) {
	testSrv := httptest.NewServer(&srvHandler{HTTPStatus: http.StatusOK})
	defer testSrv.Close()

	client := NewHTTPClient(testSrv.URL, 1, time.Second, nil)

	resp, err := client.Post(WithScenario(context.Background(), "Landlord"), "/cargo/vertiports", nil)
	require.NoError(t, err)
	assert.Equal(t, "Landlord", resp.Scenario)

	resp, err = client.Post(context.Background(), "/cargo/vertiports", nil)
	require.NoError(t, err)
	assert.Equal(t, "", resp.Scenario)
}
