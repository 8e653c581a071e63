package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"continents/continent"
	"continents/encoding"
	"continents/store"

	uuid "github.com/satori/go.uuid"
)

const (
	ContentTypeJSON = "application/json; charset=UTF-8"
	ContentTypeText = "text/plain; charset=UTF-8"

	RequestIdHeader = "X-Request-Id"
)

var ErrEmptyName = errors.New("continent name is empty")

// Server exposes one Store over HTTP:
//
//	GET  <prefix>{name}  -> 200 + record, or NotFoundStatus + text
//	HEAD <prefix>{name}  -> same as GET without a body
//	POST <prefix>[...]   -> 201 + record, keyed by the body's name,
//	                        or MalformedStatus + text
//
// every other method is answered with 405.
type Server struct {
	mu    sync.Mutex
	st    *store.Store
	cfg   Config
	count int // incoming requests
}

func New(st *store.Store, cfg Config) *Server {
	return &Server{
		st:  st,
		cfg: cfg.withDefaults(),
	}
}

func (srv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	srv.mu.Lock()
	srv.count += 1
	srv.mu.Unlock()

	reqId := requestId(r)
	w.Header().Set(RequestIdHeader, reqId)

	path := r.URL.EscapedPath()
	if !strings.HasPrefix(path, srv.cfg.Prefix) {
		SysLog(reqId, DWarn, "%v %v: no such resource", r.Method, path)
		writeText(w, http.StatusNotFound, "404 - Not Found")
		return
	}
	key := path[len(srv.cfg.Prefix):]

	switch r.Method {
	case http.MethodGet:
		srv.retrieve(w, reqId, key)
	case http.MethodHead:
		srv.retrieve(headWriter{w}, reqId, key)
	case http.MethodPost:
		srv.createOrReplace(w, r, reqId)
	default:
		SysLog(reqId, DWarn, "%v %v: method not allowed", r.Method, path)
		w.Header().Set("Allow", "GET, HEAD, POST")
		writeText(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (srv *Server) RequestCount() int {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return srv.count
}

func (srv *Server) retrieve(w http.ResponseWriter, reqId string, key string) {
	c, ok := srv.st.Get(key)
	if !ok {
		SysLog(reqId, DRequest, "GET %q: not found", key)
		writeText(w, srv.cfg.NotFoundStatus, fmt.Sprintf("Continent %s not found.", key))
		return
	}
	SysLog(reqId, DRequest, "GET %q: %v", key, c)
	writeJSON(w, reqId, http.StatusOK, c)
}

func (srv *Server) createOrReplace(w http.ResponseWriter, r *http.Request, reqId string) {
	body := r.Body
	if srv.cfg.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, body, srv.cfg.MaxBodyBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			SysLog(reqId, DWarn, "POST: body over %d bytes", tooLarge.Limit)
			writeText(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Request body larger than %d bytes.", tooLarge.Limit))
			return
		}
		SysLog(reqId, DError, "POST: reading body: %v", err)
		writeText(w, http.StatusBadRequest, "Error reading request body.")
		return
	}

	c, err := decodeContinent(data)
	if err != nil {
		SysLog(reqId, DWarn, "POST: %v", err)
		writeText(w, srv.cfg.MalformedStatus, err.Error())
		return
	}

	srv.st.Put(c.Name, c)
	SysLog(reqId, DStore, "PUT %q: %v (%d records)", c.Name, c, srv.st.Len())
	writeJSON(w, reqId, http.StatusCreated, c)
}

// decodeContinent is the only way a request body becomes a record:
// either a usable Continent or an error saying what was wrong.
func decodeContinent(data []byte) (continent.Continent, error) {
	var c continent.Continent
	if err := encoding.Unmarshal(data, &c); err != nil {
		return continent.Continent{}, err
	}
	if c.Name == "" {
		return continent.Continent{}, &encoding.DecodeError{Err: ErrEmptyName}
	}
	return c, nil
}

// requestId echoes the caller's id as sent, or makes one up.
func requestId(r *http.Request) string {
	if id := r.Header.Get(RequestIdHeader); id != "" {
		return id
	}
	return uuid.NewV4().String()
}

// headWriter drops the body; headers and status go through.
type headWriter struct {
	http.ResponseWriter
}

func (w headWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

func writeJSON(w http.ResponseWriter, reqId string, status int, c continent.Continent) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	if err := encoding.NewEncoder(w).Encode(c); err != nil {
		SysLog(reqId, DError, "writing response: %v", err)
	}
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", ContentTypeText)
	w.WriteHeader(status)
	_, _ = io.WriteString(w, msg)
}
