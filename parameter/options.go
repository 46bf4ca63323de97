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

package parameter

import (
	"io"
	"log/slog"
)

type ResolverOptionFunc func(*Resolver)

// WithLogger specifies the logger. slog.Default() is used when not set
func WithLogger(logger *slog.Logger) ResolverOptionFunc {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithEncryptionRand specifies the nonce source for on-the-fly message
// encryption. crypto/rand is used when not set
func WithEncryptionRand(rand io.Reader) ResolverOptionFunc {
	return func(r *Resolver) {
		r.rand = rand
	}
}

// WithAdmin disables the cap on the number of records a paged request may ask for
func WithAdmin(admin bool) ResolverOptionFunc {
	return func(r *Resolver) {
		r.admin = admin
	}
}

// WithMaxAPIRecords specifies the cap on the number of records in a paged request
func WithMaxAPIRecords(maxRecords int) ResolverOptionFunc {
	return func(r *Resolver) {
		r.maxAPIRecords = maxRecords
	}
}
