package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"continents/continent"
	"continents/encoding"
)

var (
	ErrNotFound   = errors.New("continent not found")
	ErrBadRequest = errors.New("bad request")
	ErrNoServers  = errors.New("no servers")
)

// StatusError carries an unexpected response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// Clerk talks to a set of equivalent continent servers. It sticks to
// the last server that answered and moves on to the next one only when
// a request fails to get any response. A Clerk is not safe for
// concurrent use.
type Clerk struct {
	servers  []string
	prefix   string
	client   *http.Client
	serverId int
}

type Option func(*Clerk)

func WithHTTPClient(c *http.Client) Option {
	return func(ck *Clerk) { ck.client = c }
}

func WithPrefix(prefix string) Option {
	return func(ck *Clerk) {
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		ck.prefix = prefix
	}
}

func NewClerk(servers []string, opts ...Option) *Clerk {
	ck := &Clerk{
		servers:  servers,
		prefix:   "/continents/",
		client:   http.DefaultClient,
		serverId: 0,
	}
	for _, opt := range opts {
		opt(ck)
	}
	return ck
}

// Get fetches one continent by key. The key is path-escaped, and the
// server matches escaped paths verbatim, so a key with reserved
// characters such as '?' or '/' is reported as ErrNotFound.
func (ck *Clerk) Get(ctx context.Context, name string) (continent.Continent, error) {
	resp, err := ck.call(ctx, http.MethodGet, name, nil)
	if err != nil {
		return continent.Continent{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return decode(resp.Body)
	case http.StatusNotFound, http.StatusInternalServerError:
		body := readText(resp.Body)
		if strings.HasSuffix(body, "not found.") {
			return continent.Continent{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return continent.Continent{}, &StatusError{Code: resp.StatusCode, Body: body}
	default:
		return continent.Continent{}, &StatusError{Code: resp.StatusCode, Body: readText(resp.Body)}
	}
}

// Put creates c or replaces the continent with the same name, and
// returns the record as the server stored it.
func (ck *Clerk) Put(ctx context.Context, c continent.Continent) (continent.Continent, error) {
	data, err := encoding.Marshal(c)
	if err != nil {
		return continent.Continent{}, err
	}

	resp, err := ck.call(ctx, http.MethodPost, "", data)
	if err != nil {
		return continent.Continent{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		return decode(resp.Body)
	case http.StatusBadRequest, http.StatusInternalServerError:
		body := readText(resp.Body)
		if strings.HasPrefix(body, "malformed JSON") {
			return continent.Continent{}, fmt.Errorf("%w: %s", ErrBadRequest, body)
		}
		return continent.Continent{}, &StatusError{Code: resp.StatusCode, Body: body}
	default:
		return continent.Continent{}, &StatusError{Code: resp.StatusCode, Body: readText(resp.Body)}
	}
}

// call tries each server at most once, starting from the last one that
// worked. Only transport errors move it along; any HTTP response counts
// as an answer.
func (ck *Clerk) call(ctx context.Context, method, key string, body []byte) (*http.Response, error) {
	if len(ck.servers) == 0 {
		return nil, ErrNoServers
	}

	var lastErr error
	for i := 0; i < len(ck.servers); i++ {
		server := strings.TrimSuffix(ck.servers[ck.serverId], "/")

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, server+ck.prefix+url.PathEscape(key), reader)
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json; charset=UTF-8")
		}

		resp, err := ck.client.Do(req)
		if err == nil {
			return resp, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
		ck.serverId = (ck.serverId + 1) % len(ck.servers)
	}
	return nil, lastErr
}

func decode(r io.Reader) (continent.Continent, error) {
	var c continent.Continent
	if err := encoding.NewDecoder(r).Decode(&c); err != nil {
		return continent.Continent{}, err
	}
	return c, nil
}

func readText(r io.Reader) string {
	data, _ := io.ReadAll(r)
	return strings.TrimSpace(string(data))
}
