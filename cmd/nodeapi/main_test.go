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

package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func testFlags(t *testing.T) *globalFlags {
	t.Helper()
	f := newGlobalFlags()
	require.NoError(t, f.flagset.Parse(nil))
	return f
}

func TestRunGenesisErrors(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := testFlags(t)
	f.genesisFile = filepath.Join(t.TempDir(), "missing.json")
	err := run(f, slog.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read genesis")

	badGenesis := filepath.Join(t.TempDir(), "genesis.json")
	require.NoError(t, os.WriteFile(
		badGenesis,
		[]byte(`{"accounts":[{"balanceNQT":1}]}`),
		0o600,
	))
	f.genesisFile = badGenesis
	err = run(f, slog.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load genesis")
}

func TestRunStopsUsersOnListenFailure(t *testing.T) {
	// The user sweeper is started before the listener is opened and must not leak
	defer goleak.VerifyNone(t)
	f := testFlags(t)
	f.address = "invalid-address"
	err := run(f, slog.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create listener")
}

func TestRunRejectsAllowedHosts(t *testing.T) {
	f := testFlags(t)
	f.allowedHosts = "not-a-host"
	err := run(f, slog.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create user manager")
}
