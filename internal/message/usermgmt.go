/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package message

import (
	"github.com/joaquinbejar/deribit-fix-go/internal/codec"
	"github.com/joaquinbejar/deribit-fix-go/internal/fixtag"
)

// BuildUserRequest builds a User Request (35=BE).
func BuildUserRequest(userRequestID string, requestType fixtag.UserRequestType, username, password string) Message {
	b := newFieldBuilder()
	b.str(fixtag.TagUserRequestID, userRequestID)
	b.str(fixtag.TagUserRequestType, requestType.String())
	b.str(fixtag.TagUsername, username)
	b.strIfNotEmpty(fixtag.TagPassword, password)
	return b.build(fixtag.MsgTypeUserRequest)
}

// UserResponseFields is what ParseUserResponse extracts from a User
// Response (35=BF).
type UserResponseFields struct {
	UserRequestID  string
	Username       string
	UserStatus     uint64
	UnparsedFields []codec.Field
}

// ParseUserResponse extracts fields from an inbound User Response frame.
func ParseUserResponse(f codec.Frame) (UserResponseFields, error) {
	r := newFieldReader(f)
	id, err := r.require(fixtag.TagUserRequestID)
	if err != nil {
		return UserResponseFields{}, err
	}
	username, _ := r.str(fixtag.TagUsername)
	status, err := r.uint(fixtag.TagUserStatus)
	if err != nil {
		return UserResponseFields{}, err
	}
	return UserResponseFields{UserRequestID: id, Username: username, UserStatus: status, UnparsedFields: r.unparsed()}, nil
}
