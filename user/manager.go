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
	"errors"
	"fmt"
	"log/slog"
	"net/netip"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	DefaultInactiveTimeout     = 15 * time.Minute
	DefaultSweepInterval       = time.Minute
	DefaultMaxPendingResponses = 100
)

var (
	ErrAlreadyStarted = errors.New("user manager already started")
	ErrNotStarted     = errors.New("user manager not started")
)

type Config struct {
	// Users idle for longer than this are removed by the sweeper
	InactiveTimeout time.Duration
	SweepInterval   time.Duration
	// AllowedHosts lists IP addresses, CIDR subnets or "localhost". "*" allows every host
	AllowedHosts        []string
	MaxPendingResponses int
	Logger              *slog.Logger
	// Now is the time source. time.Now is used when not set
	Now func() time.Time
}

// Manager is the registry of API users
type Manager struct {
	config          Config
	allowAll        bool
	allowedPrefixes []netip.Prefix

	users      map[string]*User
	usersMutex sync.Mutex

	indexMutex sync.Mutex
	txCounter  int
	txIndexes  map[uint64]int

	lifecycleMutex sync.Mutex
	doneChan       chan struct{}
	waitGroup      sync.WaitGroup
}

func NewManager(cfg Config) (*Manager, error) {
	if cfg.InactiveTimeout <= 0 {
		cfg.InactiveTimeout = DefaultInactiveTimeout
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = DefaultSweepInterval
	}
	if cfg.MaxPendingResponses <= 0 {
		cfg.MaxPendingResponses = DefaultMaxPendingResponses
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	m := &Manager{
		config:    cfg,
		users:     make(map[string]*User),
		txIndexes: make(map[uint64]int),
	}
	for _, host := range cfg.AllowedHosts {
		host = strings.TrimSpace(host)
		if host == "" {
			continue
		}
		if host == "*" {
			m.allowAll = true
			continue
		}
		prefixes, err := parseAllowedHost(host)
		if err != nil {
			return nil, err
		}
		m.allowedPrefixes = append(m.allowedPrefixes, prefixes...)
	}
	return m, nil
}

func parseAllowedHost(host string) ([]netip.Prefix, error) {
	if strings.EqualFold(host, "localhost") {
		return []netip.Prefix{
			netip.MustParsePrefix("127.0.0.0/8"),
			netip.MustParsePrefix("::1/128"),
		}, nil
	}
	host = strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
	if strings.Contains(host, "/") {
		prefix, err := netip.ParsePrefix(host)
		if err != nil {
			return nil, fmt.Errorf("invalid allowed host %q: %w", host, err)
		}
		return []netip.Prefix{prefix.Masked()}, nil
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return nil, fmt.Errorf("invalid allowed host %q: %w", host, err)
	}
	return []netip.Prefix{netip.PrefixFrom(addr, addr.BitLen())}, nil
}

// Start launches the background sweeper
func (m *Manager) Start() error {
	m.lifecycleMutex.Lock()
	defer m.lifecycleMutex.Unlock()
	if m.doneChan != nil {
		return ErrAlreadyStarted
	}
	m.doneChan = make(chan struct{})
	m.waitGroup.Add(1)
	go m.sweeper(m.doneChan)
	return nil
}

// Stop shuts down the sweeper and waits for it to exit
func (m *Manager) Stop() error {
	m.lifecycleMutex.Lock()
	defer m.lifecycleMutex.Unlock()
	if m.doneChan == nil {
		return ErrNotStarted
	}
	close(m.doneChan)
	m.waitGroup.Wait()
	m.doneChan = nil
	return nil
}

func (m *Manager) sweeper(doneChan <-chan struct{}) {
	defer m.waitGroup.Done()
	ticker := time.NewTicker(m.config.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-doneChan:
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// Sweep removes users idle for longer than the inactive timeout and returns how many were removed
func (m *Manager) Sweep() int {
	cutoff := m.config.Now().Add(-m.config.InactiveTimeout)
	m.usersMutex.Lock()
	defer m.usersMutex.Unlock()
	removed := 0
	for id, user := range m.users {
		if user.LastActive().Before(cutoff) {
			user.SetInactive(true)
			delete(m.users, id)
			removed++
		}
	}
	if removed > 0 {
		m.config.Logger.Debug(
			"removed inactive users",
			"component", "user",
			"count", removed,
		)
	}
	return removed
}

// GetUser returns the user with the given ID, creating it if needed. The user is marked active.
func (m *Manager) GetUser(id string) *User {
	m.usersMutex.Lock()
	defer m.usersMutex.Unlock()
	user, ok := m.users[id]
	if !ok {
		user = &User{
			id:         id,
			maxPending: m.config.MaxPendingResponses,
		}
		m.users[id] = user
	}
	user.touch(m.config.Now())
	return user
}

// Remove deletes the user and returns it, or nil if it was not registered
func (m *Manager) Remove(id string) *User {
	m.usersMutex.Lock()
	defer m.usersMutex.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil
	}
	delete(m.users, id)
	return user
}

// Users returns every registered user ordered by ID
func (m *Manager) Users() []*User {
	m.usersMutex.Lock()
	ret := make([]*User, 0, len(m.users))
	for _, user := range m.users {
		ret = append(ret, user)
	}
	m.usersMutex.Unlock()
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].id < ret[j].id
	})
	return ret
}

// SendToAll queues the response for every active user
func (m *Manager) SendToAll(resp any) {
	for _, user := range m.Users() {
		if user.IsInactive() {
			continue
		}
		user.Send(resp)
	}
}

// NotifyNewData queues a "processNewData" response for every registered user
func (m *Manager) NotifyNewData(data map[string]any) {
	resp := make(map[string]any, len(data)+1)
	for k, v := range data {
		resp[k] = v
	}
	resp["response"] = "processNewData"
	m.SendToAll(resp)
}

// AllowedHost reports whether the host address may use the API
func (m *Manager) AllowedHost(host string) bool {
	if m.allowAll {
		return true
	}
	host = strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
	addr, err := netip.ParseAddr(host)
	if err != nil {
		if strings.EqualFold(host, "localhost") {
			addr = netip.MustParseAddr("127.0.0.1")
		} else {
			return false
		}
	}
	addr = addr.Unmap()
	for _, prefix := range m.allowedPrefixes {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// TransactionIndex returns the display index of a transaction, assigning the next one if needed
func (m *Manager) TransactionIndex(txId uint64) int {
	m.indexMutex.Lock()
	defer m.indexMutex.Unlock()
	if idx, ok := m.txIndexes[txId]; ok {
		return idx
	}
	m.txCounter++
	m.txIndexes[txId] = m.txCounter
	return m.txCounter
}
