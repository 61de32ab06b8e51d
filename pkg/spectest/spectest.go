// Package spectest is the runtime behind generated API test modules.
// Generated code embeds Suite and calls its action methods: Do issues
// HTTP requests against the configured target, the assertion methods
// inspect the last response, and Set stashes response values for
// {$name} placeholders in later requests.
//
// One suite value is shared by every case in a module, so the stash
// and the last response persist from case to case in declaration
// order.
package spectest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/stretchr/testify/suite"
)

// TargetEnv names the environment variable holding the base URL the
// generated tests run against.
const TargetEnv = "SPECTEST_TARGET"

const defaultTarget = "http://localhost:8080"

// Request describes one HTTP call of a generated case. Path, header,
// query and body strings may carry {$name} stash placeholders.
type Request struct {
	Method  string
	Path    string
	Headers map[string]string
	Query   map[string]string
	Body    any
}

// Response is the decoded result of the last request. Document holds
// the parsed JSON body, or the raw text when the body is not JSON.
type Response struct {
	Status   int
	Document any
}

// Suite is the base type of every generated module.
type Suite struct {
	suite.Suite

	target string
	client *http.Client
	resp   *Response
	stash  map[string]any
}

// SetTarget overrides the base URL; without it the suite reads
// TargetEnv at first use.
func (s *Suite) SetTarget(target string) {
	s.target = target
}

// SetClient replaces the HTTP client, mainly for timeouts and test
// doubles.
func (s *Suite) SetClient(c *http.Client) {
	s.client = c
}

// Response exposes the last response, or nil before any request.
func (s *Suite) Response() *Response {
	return s.resp
}

// StashValue returns a stashed value by name.
func (s *Suite) StashValue(name string) (any, bool) {
	v, ok := s.stash[name]
	return v, ok
}

// ensure lazily initializes suite state. Generated modules may define
// their own lifecycle methods, so initialization cannot live in
// SetupSuite.
func (s *Suite) ensure() {
	if s.stash == nil {
		s.stash = make(map[string]any)
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: 30 * time.Second}
	}
	if s.target == "" {
		s.target = os.Getenv(TargetEnv)
	}
	if s.target == "" {
		s.target = defaultTarget
	}
}

// Do resolves stash placeholders, performs the request and decodes
// the response. Transport failures end the case immediately.
func (s *Suite) Do(req Request) {
	s.ensure()

	method := strings.ToUpper(req.Method)
	path := s.resolveString(req.Path)
	full := strings.TrimRight(s.target, "/") + "/" + strings.TrimLeft(path, "/")

	if len(req.Query) > 0 {
		q := url.Values{}
		for k, v := range req.Query {
			q.Set(k, s.resolveString(v))
		}
		sep := "?"
		if strings.Contains(full, "?") {
			sep = "&"
		}
		full += sep + q.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(s.resolveValue(req.Body))
		s.Require().NoError(err, "encode request body for %s %s", method, path)
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequest(method, full, body)
	s.Require().NoError(err, "build request %s %s", method, path)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, s.resolveString(v))
	}

	httpResp, err := s.client.Do(httpReq)
	s.Require().NoError(err, "request %s %s", method, path)
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	s.Require().NoError(err, "read response of %s %s", method, path)

	s.resp = &Response{Status: httpResp.StatusCode, Document: decodeBody(raw)}
}

// decodeBody parses JSON bodies into plain values and keeps anything
// else as raw text. An empty body decodes to nil.
func decodeBody(raw []byte) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return string(raw)
	}
	return doc
}
