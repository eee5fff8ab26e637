package testhelpers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/stretchr/testify/require"
)

// BuildRequest creates a request against the service under test.
func (h *TestHelper) BuildRequest(method, path string, body []byte) *http.Request {
	req, err := http.NewRequest(method, h.BaseURL+path, bytes.NewReader(body))
	require.NoError(h.T, err)
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// DoRequest performs an HTTP request and asserts that no network-level error occurred.
func (h *TestHelper) DoRequest(req *http.Request, client *http.Client) *http.Response {
	resp, err := client.Do(req)
	require.NoError(h.T, err, "HTTP request failed")
	return resp
}

// ReadBody reads the response body and returns it as bytes. The body is
// restored so it can be read again.
func (h *TestHelper) ReadBody(resp *http.Response) []byte {
	if resp == nil || resp.Body == nil {
		return nil
	}
	bodyBytes, err := io.ReadAll(resp.Body)
	resp.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	require.NoError(h.T, err, "Failed to read response body")
	return bodyBytes
}
