// Copyright (c) 2020 Richard Youngkin. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package internal

import (
	"context"
	"sync"
)

type post struct {
	scenario string
	path     string
	body     interface{}
}

// fakeClient records every Post and answers with a fixed status.
type fakeClient struct {
	mu     sync.Mutex
	status int
	posts  []post
}

func (c *fakeClient) Post(ctx context.Context, path string, body interface{}) (Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts = append(c.posts, post{scenario: ScenarioFrom(ctx), path: path, body: body})
	return Response{HTTPStatus: c.status, Method: "POST", Path: path}, nil
}

func (c *fakeClient) numPosts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.posts)
}

func postTask(path string) TaskFunc {
	return func(ctx context.Context, c Client) {
		c.Post(ctx, path, nil)
	}
}
