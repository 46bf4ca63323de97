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

// Package request holds the read-only view of an API request's parameters.
package request

import (
	"net/url"
	"strings"
)

// Request is an immutable mapping from parameter name to one or more values
type Request struct {
	values url.Values
	post   bool
}

// New copies the values into a Request
func New(values url.Values) Request {
	tmpValues := make(url.Values, len(values))
	for name, vals := range values {
		tmpValues[name] = append([]string(nil), vals...)
	}
	return Request{values: tmpValues}
}

// FromMap builds a Request with one value per parameter
func FromMap(params map[string]string) Request {
	tmpValues := make(url.Values, len(params))
	for name, val := range params {
		tmpValues.Set(name, val)
	}
	return Request{values: tmpValues}
}

// AsPost returns a copy of the request flagged as submitted with POST
func (r Request) AsPost() Request {
	r.post = true
	return r
}

// IsPost reports whether the request was submitted with POST
func (r Request) IsPost() bool {
	return r.post
}

// Get returns the first value of the parameter exactly as supplied. Absent
// and empty parameters both yield "".
func (r Request) Get(name string) string {
	return r.values.Get(name)
}

// Has reports whether the parameter has a non-empty first value
func (r Request) Has(name string) bool {
	return r.Get(name) != ""
}

// Present reports whether the parameter was supplied at all, even if empty
func (r Request) Present(name string) bool {
	return len(r.values[name]) > 0
}

// Values returns a copy of every value supplied for the parameter
func (r Request) Values(name string) []string {
	vals := r.values[name]
	if len(vals) == 0 {
		return nil
	}
	return append([]string(nil), vals...)
}

// IsTrue reports whether the value is "true", ignoring case
func IsTrue(value string) bool {
	return strings.EqualFold(value, "true")
}

// IsFalse reports whether the value is "false", ignoring case. Absent values are not false.
func IsFalse(value string) bool {
	return strings.EqualFold(value, "false")
}
