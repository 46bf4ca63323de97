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

// Package apierror defines the fixed set of failures a request can end in
// and their wire form, {"errorCode": n, "errorDescription": "..."}.
//
// Every resolver, builder and assembler operation returns either its value
// or exactly one *Error. Failures from collaborators are wrapped into the
// nearest matching error with WithCause rather than returned raw.
package apierror
