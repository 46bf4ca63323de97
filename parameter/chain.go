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
	"fmt"
	"math"
	"strconv"

	"github.com/blinklabs-io/nodeapi/apierror"
	"github.com/blinklabs-io/nodeapi/ledger"
	"github.com/blinklabs-io/nodeapi/request"
)

// NumberOfConfirmations resolves "numberOfConfirmations", which defaults to 0
// and may not exceed the current chain height
func (r *Resolver) NumberOfConfirmations(req request.Request) (int, error) {
	value := req.Get(request.ParamNumberOfConfirmations)
	if value == "" {
		return 0, nil
	}
	confirmations, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, apierror.IncorrectNumberOfConfirmations.WithCause(err)
	}
	if confirmations < 0 || int(confirmations) > r.state.Height() {
		return 0, apierror.IncorrectNumberOfConfirmations
	}
	return int(confirmations), nil
}

// Height resolves "height". An absent height is reported as -1, meaning the
// current chain tip. Heights below the rollback horizon are not available.
func (r *Resolver) Height(req request.Request) (int, error) {
	value := req.Get(request.ParamHeight)
	if value == "" {
		return -1, nil
	}
	height, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, apierror.IncorrectHeight.WithCause(err)
	}
	if height < 0 || int(height) > r.state.Height() {
		return 0, apierror.IncorrectHeight
	}
	if int(height) < r.state.MinRollbackHeight() {
		return 0, apierror.HeightNotAvailable
	}
	return int(height), nil
}

// RecipientId resolves "recipient". The zero account is not a valid recipient.
func (r *Resolver) RecipientId(req request.Request) (ledger.AccountId, error) {
	value := req.Get(request.ParamRecipient)
	if value == "" || value == "0" {
		return 0, apierror.MissingRecipient
	}
	recipientId, err := ledger.ParseAccountId(value)
	if err != nil {
		return 0, apierror.IncorrectRecipient.WithCause(err)
	}
	if recipientId == 0 {
		return 0, apierror.IncorrectRecipient
	}
	return recipientId, nil
}

// Timestamp resolves "timestamp", which defaults to 0
func (r *Resolver) Timestamp(req request.Request) (int, error) {
	value := req.Get(request.ParamTimestamp)
	if value == "" {
		return 0, nil
	}
	timestamp, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, apierror.IncorrectTimestamp.WithCause(err)
	}
	if timestamp < 0 {
		return 0, apierror.IncorrectTimestamp.WithCause(
			fmt.Errorf("negative timestamp: %d", timestamp),
		)
	}
	return int(timestamp), nil
}

// FirstIndex resolves "firstIndex". Unparsable or negative values yield 0.
func (r *Resolver) FirstIndex(req request.Request) int {
	firstIndex, err := strconv.ParseInt(req.Get(request.ParamFirstIndex), 10, 32)
	if err != nil || firstIndex < 0 {
		return 0
	}
	return int(firstIndex)
}

// LastIndex resolves "lastIndex". Unparsable or negative values mean no upper
// bound. Unless the resolver runs with admin rights, the page is capped to
// the configured maximum number of records.
func (r *Resolver) LastIndex(req request.Request) int {
	lastIndex := math.MaxInt32
	if val, err := strconv.ParseInt(req.Get(request.ParamLastIndex), 10, 32); err == nil &&
		val >= 0 {
		lastIndex = int(val)
	}
	if r.admin {
		return lastIndex
	}
	firstIndex := min(r.FirstIndex(req), math.MaxInt32-r.maxAPIRecords+1)
	return min(lastIndex, firstIndex+r.maxAPIRecords-1)
}
