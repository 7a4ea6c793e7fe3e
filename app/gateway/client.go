// Package gateway is the thin outer surface of the service. It
// re-validates incoming payloads and identity headers, then forwards
// each call to the main server over HTTP, relaying the response body
// unchanged.
package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"

	"shareit/app/echoServer/identity"
	"shareit/util/httpx"
	"shareit/util/token"
)

const serviceTokenTTL = 30 * time.Second

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client forwards requests to the main server.
type Client struct {
	BaseURL string
	// Secret, when set, signs a short-lived bearer token for every
	// forwarded call.
	Secret string
	HTTP   *http.Client
}

func NewClient(baseURL, secret string) *Client {
	return &Client{BaseURL: baseURL, Secret: secret, HTTP: httpx.Client()}
}

// Forward sends the request upstream and returns the upstream status
// and body. callerID 0 means the route carries no identity header.
func (cl *Client) Forward(ctx context.Context, method, path string, query url.Values, callerID int64, body any) (int, []byte, error) {
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		buf = bytes.NewReader(raw)
	}

	u := cl.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, buf)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if callerID > 0 {
		req.Header.Set(identity.Header, fmt.Sprintf("%d", callerID))
	}
	if cl.Secret != "" {
		tok, err := token.Issue(cl.Secret, callerID, serviceTokenTTL)
		if err != nil {
			return 0, nil, fmt.Errorf("sign service token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := cl.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, raw, nil
}
