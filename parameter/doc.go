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

// Package parameter resolves string request parameters into validated
// ledger references.
//
// Each Resolver method reads one parameter (or a small group of related
// parameters), validates it, performs at most a few read-only lookups and
// returns either the resolved value or exactly one *apierror.Error. The first
// failing check wins. A Resolver holds no per-request state and is safe for
// concurrent use as long as its LedgerState is.
package parameter
