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

package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Wire error codes
const (
	CodeIncorrectRequest   = 1
	CodeMissingParameter   = 3
	CodeIncorrectParameter = 4
	CodeUnknownReference   = 5
	CodeInsufficientFunds  = 6
	CodeNotAvailable       = 8
)

// Kind classifies why a request was rejected
type Kind uint8

const (
	KindIncorrectRequest Kind = iota
	KindMissingParameter
	KindIncorrectParameter
	KindOutOfRange
	KindUnknownReference
	KindInsufficientFunds
	KindInconsistent
	KindNotAvailable
)

func (k Kind) String() string {
	tmp := map[Kind]string{
		KindIncorrectRequest:   "IncorrectRequest",
		KindMissingParameter:   "MissingParameter",
		KindIncorrectParameter: "IncorrectParameter",
		KindOutOfRange:         "OutOfRange",
		KindUnknownReference:   "UnknownReference",
		KindInsufficientFunds:  "InsufficientFunds",
		KindInconsistent:       "Inconsistent",
		KindNotAvailable:       "NotAvailable",
	}
	ret, ok := tmp[k]
	if !ok {
		return "Unknown"
	}
	return ret
}

// Code returns the wire error code for the kind
func (k Kind) Code() int {
	switch k {
	case KindMissingParameter:
		return CodeMissingParameter
	case KindIncorrectParameter, KindOutOfRange, KindInconsistent:
		return CodeIncorrectParameter
	case KindUnknownReference:
		return CodeUnknownReference
	case KindInsufficientFunds:
		return CodeInsufficientFunds
	case KindNotAvailable:
		return CodeNotAvailable
	default:
		return CodeIncorrectRequest
	}
}

// ErrorResult is the wire representation of an Error
type ErrorResult struct {
	Code        int    `json:"errorCode"`
	Description string `json:"errorDescription"`
}

// Error is a request-scoped validation failure
type Error struct {
	Kind        Kind
	Code        int
	Description string
	Cause       error
}

// New creates an error of the given kind using the kind's wire code
func New(kind Kind, description string) *Error {
	return &Error{
		Kind:        kind,
		Code:        kind.Code(),
		Description: description,
	}
}

// Missing reports an absent parameter, or that none of several alternatives was given
func Missing(params ...string) *Error {
	if len(params) == 1 {
		return New(
			KindMissingParameter,
			fmt.Sprintf("%q not specified", params[0]),
		)
	}
	return New(
		KindMissingParameter,
		fmt.Sprintf(
			"At least one of [%s] must be specified",
			strings.Join(params, ", "),
		),
	)
}

// Incorrect reports a malformed parameter
func Incorrect(param string) *Error {
	return New(KindIncorrectParameter, fmt.Sprintf("Incorrect %q", param))
}

// IncorrectWithDetail reports a malformed parameter with an explanation
func IncorrectWithDetail(param string, detail string) *Error {
	return New(
		KindIncorrectParameter,
		fmt.Sprintf("Incorrect %q (%s)", param, detail),
	)
}

// Unknown reports a well-formed reference with no matching entity
func Unknown(name string) *Error {
	return New(KindUnknownReference, "Unknown "+name)
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf(
			"%s (%d): %s: %v",
			e.Kind,
			e.Code,
			e.Description,
			e.Cause,
		)
	}
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.Code, e.Description)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error with the same code and description, so the
// catalogue values work with errors.Is regardless of any cause
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && t.Description == e.Description
}

// WithCause returns a copy of the error carrying the underlying failure
func (e *Error) WithCause(cause error) *Error {
	ret := *e
	ret.Cause = cause
	return &ret
}

// Result returns the wire representation. The cause is never exposed.
func (e *Error) Result() ErrorResult {
	return ErrorResult{
		Code:        e.Code,
		Description: e.Description,
	}
}

func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Result())
}

// FromError returns the *Error in err's chain, or wraps err as an incorrect request
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return IncorrectRequest.WithCause(err)
}
