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

package user

import (
	"sync"
	"time"
)

// User is a client session identified by an opaque ID
type User struct {
	id         string
	mutex      sync.Mutex
	inactive   bool
	lastActive time.Time
	pending    []any
	maxPending int
}

func (u *User) Id() string {
	return u.id
}

func (u *User) IsInactive() bool {
	u.mutex.Lock()
	defer u.mutex.Unlock()
	return u.inactive
}

func (u *User) SetInactive(inactive bool) {
	u.mutex.Lock()
	defer u.mutex.Unlock()
	u.inactive = inactive
}

func (u *User) LastActive() time.Time {
	u.mutex.Lock()
	defer u.mutex.Unlock()
	return u.lastActive
}

func (u *User) touch(now time.Time) {
	u.mutex.Lock()
	defer u.mutex.Unlock()
	u.inactive = false
	u.lastActive = now
}

// Send queues a response for the user. The oldest response is dropped once
// the queue is full.
func (u *User) Send(resp any) {
	u.mutex.Lock()
	defer u.mutex.Unlock()
	if u.maxPending > 0 && len(u.pending) >= u.maxPending {
		u.pending = u.pending[1:]
	}
	u.pending = append(u.pending, resp)
}

// PendingResponses returns and clears the queued responses
func (u *User) PendingResponses() []any {
	u.mutex.Lock()
	defer u.mutex.Unlock()
	ret := u.pending
	u.pending = nil
	return ret
}
