// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sort"
	"sync"

	"github.com/blinklabs-io/nodeapi/apierror"
	"github.com/blinklabs-io/nodeapi/request"
)

// HostFilter decides whether a remote host may use the API
type HostFilter interface {
	AllowedHost(host string) bool
}

type DispatcherOptionFunc func(*Dispatcher)

// WithLogger specifies the logger. slog.Default() is used when not set
func WithLogger(logger *slog.Logger) DispatcherOptionFunc {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithHostFilter restricts HTTP requests to the hosts the filter allows
func WithHostFilter(filter HostFilter) DispatcherOptionFunc {
	return func(d *Dispatcher) {
		d.hostFilter = filter
	}
}

// WithHandler registers a handler for a request type
func WithHandler(requestType string, handler Handler) DispatcherOptionFunc {
	return func(d *Dispatcher) {
		d.handlers[requestType] = handler
	}
}

// Dispatcher routes requests to handlers by their "requestType" parameter
type Dispatcher struct {
	mutex      sync.RWMutex
	handlers   map[string]Handler
	logger     *slog.Logger
	hostFilter HostFilter
}

func NewDispatcher(opts ...DispatcherOptionFunc) *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[string]Handler),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// Register adds or replaces the handler for a request type
func (d *Dispatcher) Register(requestType string, handler Handler) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.handlers[requestType] = handler
}

func (d *Dispatcher) Handler(requestType string) (Handler, bool) {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	handler, ok := d.handlers[requestType]
	return handler, ok
}

// RequestTypes returns the registered request types in sorted order
func (d *Dispatcher) RequestTypes() []string {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	ret := make([]string, 0, len(d.handlers))
	for requestType := range d.handlers {
		ret = append(ret, requestType)
	}
	sort.Strings(ret)
	return ret
}

// Dispatch runs the handler for the request. Any failure is returned as an
// *apierror.Error.
func (d *Dispatcher) Dispatch(
	ctx context.Context,
	req request.Request,
) (any, error) {
	requestType := req.Get(request.ParamRequestType)
	if requestType == "" {
		return nil, apierror.IncorrectRequest
	}
	handler, ok := d.Handler(requestType)
	if !ok {
		return nil, apierror.UnknownRequestType
	}
	if handler.RequirePost() && !req.IsPost() {
		return nil, apierror.PostRequired
	}
	resp, err := handler.ProcessRequest(ctx, req)
	if err != nil {
		apiErr := apierror.FromError(err)
		d.logger.Debug(
			"request failed",
			"component", "api",
			"request_type", requestType,
			"error_code", apiErr.Code,
			"error", apiErr.Description,
		)
		return nil, apiErr
	}
	return resp, nil
}

// ServeHTTP answers API requests with a JSON body. API errors are reported in
// the body with a 200 status, as clients expect.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if d.hostFilter != nil {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !d.hostFilter.AllowedHost(host) {
			http.Error(w, "Not allowed", http.StatusForbidden)
			return
		}
	}
	if err := r.ParseForm(); err != nil {
		d.writeResponse(w, apierror.IncorrectRequest.WithCause(err))
		return
	}
	req := request.New(r.Form)
	if r.Method == http.MethodPost {
		req = req.AsPost()
	}
	resp, err := d.Dispatch(r.Context(), req)
	if err != nil {
		d.writeResponse(w, err)
		return
	}
	d.writeResponse(w, resp)
}

func (d *Dispatcher) writeResponse(w http.ResponseWriter, resp any) {
	body, err := Render(resp)
	if err != nil {
		d.logger.Error(
			"failed to render response",
			"component", "api",
			"error", err,
		)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	if _, err := w.Write(body); err != nil {
		d.logger.Debug(
			"failed to write response",
			"component", "api",
			"error", err,
		)
	}
}

// Render encodes a response or error as JSON. Errors that are not API errors
// render as an incorrect request.
func Render(resp any) ([]byte, error) {
	if err, ok := resp.(error); ok {
		var apiErr *apierror.Error
		if !errors.As(err, &apiErr) {
			apiErr = apierror.FromError(err)
		}
		return json.Marshal(apiErr.Result())
	}
	return json.Marshal(resp)
}
