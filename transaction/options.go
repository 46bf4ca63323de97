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

package transaction

import (
	"log/slog"
)

type AssemblerOptionFunc func(*Assembler)

// WithLogger specifies the logger. slog.Default() is used when not set
func WithLogger(logger *slog.Logger) AssemblerOptionFunc {
	return func(a *Assembler) {
		a.logger = logger
	}
}

// WithProcessor specifies the processor that builds and broadcasts
// transactions. An in-memory Pool is used when not set
func WithProcessor(processor Processor) AssemblerOptionFunc {
	return func(a *Assembler) {
		a.processor = processor
	}
}

// WithParser specifies the parser for client-submitted transactions. Codec is used when not set
func WithParser(parser Parser) AssemblerOptionFunc {
	return func(a *Assembler) {
		a.parser = parser
	}
}
