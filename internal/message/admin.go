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

// LogonParams carries every field the venue's Logon (35=A) requires.
type LogonParams struct {
	RawData            string // tag 96
	PasswordDigest     string // tag 554
	Username           string // tag 553
	HeartBtInt         uint64 // tag 108
	ResetSeqNumFlag    bool   // tag 141, Y on first logon
	CancelOnDisconnect bool   // custom tag, honored server-side; the client only transmits it
	ApplicationID      string // custom DeribitAppId, optional
	ApplicationSecret  string // custom DeribitAppSig, optional (caller-signed, sent as provided)
}

// BuildLogon builds a Logon (35=A) message.
func BuildLogon(p LogonParams) Message {
	b := newFieldBuilder()
	b.str(fixtag.TagEncryptMethod, "0")
	b.uint(fixtag.TagHeartBtInt, p.HeartBtInt)
	b.str(fixtag.TagRawData, p.RawData)
	if p.ResetSeqNumFlag {
		b.str(fixtag.TagResetSeqNumFlag, "Y")
	}
	if p.CancelOnDisconnect {
		b.str(fixtag.TagCancelOnDisconnect, "Y")
	}
	b.str(fixtag.TagUsername, p.Username)
	b.str(fixtag.TagPassword, p.PasswordDigest)
	b.strIfNotEmpty(fixtag.TagDeribitAppId, p.ApplicationID)
	b.strIfNotEmpty(fixtag.TagDeribitAppSig, p.ApplicationSecret)
	return b.build(fixtag.MsgTypeLogon)
}

// LogonFields is what ParseLogon extracts from an inbound Logon.
type LogonFields struct {
	HeartBtInt      uint64
	ResetSeqNumFlag bool
	Username        string
	UnparsedFields  []codec.Field
}

// ParseLogon extracts fields from an inbound Logon frame.
func ParseLogon(f codec.Frame) (LogonFields, error) {
	r := newFieldReader(f)
	hb, err := r.requireUint(fixtag.TagHeartBtInt)
	if err != nil {
		return LogonFields{}, err
	}
	reset, _ := r.str(fixtag.TagResetSeqNumFlag)
	username, _ := r.str(fixtag.TagUsername)
	r.str(fixtag.TagRawData)
	r.str(fixtag.TagPassword)
	r.str(fixtag.TagEncryptMethod)
	return LogonFields{
		HeartBtInt:      hb,
		ResetSeqNumFlag: reset == "Y",
		Username:        username,
		UnparsedFields:  r.unparsed(),
	}, nil
}

// BuildLogout builds a Logout (35=5) message, with an optional free-text
// reason.
func BuildLogout(text string) Message {
	b := newFieldBuilder()
	b.strIfNotEmpty(fixtag.TagText, text)
	return b.build(fixtag.MsgTypeLogout)
}

// LogoutFields is what ParseLogout extracts.
type LogoutFields struct {
	Text           string
	UnparsedFields []codec.Field
}

// ParseLogout extracts fields from an inbound Logout frame.
func ParseLogout(f codec.Frame) (LogoutFields, error) {
	r := newFieldReader(f)
	text, _ := r.str(fixtag.TagText)
	return LogoutFields{Text: text, UnparsedFields: r.unparsed()}, nil
}

// BuildHeartbeat builds a Heartbeat (35=0), echoing TestReqID when this
// Heartbeat answers a TestRequest.
func BuildHeartbeat(testReqID string) Message {
	b := newFieldBuilder()
	b.strIfNotEmpty(fixtag.TagTestReqID, testReqID)
	return b.build(fixtag.MsgTypeHeartbeat)
}

// HeartbeatFields is what ParseHeartbeat extracts.
type HeartbeatFields struct {
	TestReqID      string
	UnparsedFields []codec.Field
}

// ParseHeartbeat extracts fields from an inbound Heartbeat frame.
func ParseHeartbeat(f codec.Frame) (HeartbeatFields, error) {
	r := newFieldReader(f)
	id, _ := r.str(fixtag.TagTestReqID)
	return HeartbeatFields{TestReqID: id, UnparsedFields: r.unparsed()}, nil
}

// BuildTestRequest builds a TestRequest (35=1).
func BuildTestRequest(testReqID string) Message {
	b := newFieldBuilder()
	b.str(fixtag.TagTestReqID, testReqID)
	return b.build(fixtag.MsgTypeTestRequest)
}

// TestRequestFields is what ParseTestRequest extracts.
type TestRequestFields struct {
	TestReqID      string
	UnparsedFields []codec.Field
}

// ParseTestRequest extracts fields from an inbound TestRequest frame.
func ParseTestRequest(f codec.Frame) (TestRequestFields, error) {
	r := newFieldReader(f)
	id, err := r.require(fixtag.TagTestReqID)
	if err != nil {
		return TestRequestFields{}, err
	}
	return TestRequestFields{TestReqID: id, UnparsedFields: r.unparsed()}, nil
}

// BuildResendRequest builds a ResendRequest (35=2) covering [beginSeqNo,
// endSeqNo]; endSeqNo=0 means "through the current end of stream".
func BuildResendRequest(beginSeqNo, endSeqNo uint64) Message {
	b := newFieldBuilder()
	b.uint(fixtag.Tag(7), beginSeqNo) // BeginSeqNo, tag 7
	b.uint(fixtag.Tag(16), endSeqNo)  // EndSeqNo, tag 16
	return b.build(fixtag.MsgTypeResendRequest)
}

// ResendRequestFields is what ParseResendRequest extracts. The session
// engine surfaces this as EventResendRequested and does not auto-honor
// it.
type ResendRequestFields struct {
	BeginSeqNo     uint64
	EndSeqNo       uint64
	UnparsedFields []codec.Field
}

// ParseResendRequest extracts fields from an inbound ResendRequest frame.
func ParseResendRequest(f codec.Frame) (ResendRequestFields, error) {
	r := newFieldReader(f)
	begin, err := r.requireUint(fixtag.Tag(7))
	if err != nil {
		return ResendRequestFields{}, err
	}
	end, err := r.requireUint(fixtag.Tag(16))
	if err != nil {
		return ResendRequestFields{}, err
	}
	return ResendRequestFields{BeginSeqNo: begin, EndSeqNo: end, UnparsedFields: r.unparsed()}, nil
}

// BuildSequenceReset builds a SequenceReset (35=4) in either gap-fill or
// hard-reset mode. Gap-fill only ever moves the counter forward; reset
// mode may set any value.
func BuildSequenceReset(gapFill bool, newSeqNo uint64) Message {
	b := newFieldBuilder()
	if gapFill {
		b.str(fixtag.TagGapFillFlag, "Y")
	} else {
		b.str(fixtag.TagGapFillFlag, "N")
	}
	b.uint(fixtag.TagNewSeqNo, newSeqNo)
	return b.build(fixtag.MsgTypeSequenceReset)
}

// SequenceResetFields is what ParseSequenceReset extracts.
type SequenceResetFields struct {
	GapFillFlag    bool
	NewSeqNo       uint64
	UnparsedFields []codec.Field
}

// ParseSequenceReset extracts fields from an inbound SequenceReset frame.
func ParseSequenceReset(f codec.Frame) (SequenceResetFields, error) {
	r := newFieldReader(f)
	gapFill, _ := r.str(fixtag.TagGapFillFlag)
	newSeqNo, err := r.requireUint(fixtag.TagNewSeqNo)
	if err != nil {
		return SequenceResetFields{}, err
	}
	return SequenceResetFields{GapFillFlag: gapFill == "Y", NewSeqNo: newSeqNo, UnparsedFields: r.unparsed()}, nil
}

// RejectFields is what ParseReject extracts from a session-level Reject
// (35=3).
type RejectFields struct {
	RefSeqNum      uint64
	RefTagID       uint64
	RefMsgType     string
	Reason         fixtag.SessionRejectReason
	Text           string
	UnparsedFields []codec.Field
}

// ParseReject extracts fields from an inbound Reject frame.
func ParseReject(f codec.Frame) (RejectFields, error) {
	r := newFieldReader(f)
	refSeq, err := r.requireUint(fixtag.TagRefSeqNum)
	if err != nil {
		return RejectFields{}, err
	}
	refTag, _ := r.uint(fixtag.TagRefTagID)
	refMsgType, _ := r.str(fixtag.TagRefMsgType)
	reasonStr, _ := r.str(fixtag.TagSessionRejectReason)
	text, _ := r.str(fixtag.TagText)

	var reason fixtag.SessionRejectReason
	if reasonStr != "" {
		reason, err = fixtag.ParseSessionRejectReason(reasonStr)
		if err != nil {
			return RejectFields{}, err
		}
	}

	return RejectFields{
		RefSeqNum:      refSeq,
		RefTagID:       refTag,
		RefMsgType:     refMsgType,
		Reason:         reason,
		Text:           text,
		UnparsedFields: r.unparsed(),
	}, nil
}

// BusinessRejectFields is what ParseBusinessReject extracts from a
// BusinessMessageReject (35=j).
type BusinessRejectFields struct {
	RefMsgType     string
	BusinessRejectRefID string
	Reason         fixtag.BusinessRejectReason
	Text           string
	UnparsedFields []codec.Field
}

// ParseBusinessReject extracts fields from an inbound BusinessMessageReject frame.
func ParseBusinessReject(f codec.Frame) (BusinessRejectFields, error) {
	r := newFieldReader(f)
	refMsgType, err := r.require(fixtag.TagRefMsgType)
	if err != nil {
		return BusinessRejectFields{}, err
	}
	refID, _ := r.str(fixtag.TagBusinessRejectRefID)
	reasonStr, _ := r.str(fixtag.TagBusinessRejectReason)
	text, _ := r.str(fixtag.TagText)

	var reason fixtag.BusinessRejectReason
	if reasonStr != "" {
		reason, err = fixtag.ParseBusinessRejectReason(reasonStr)
		if err != nil {
			return BusinessRejectFields{}, err
		}
	}

	return BusinessRejectFields{
		RefMsgType:          refMsgType,
		BusinessRejectRefID: refID,
		Reason:              reason,
		Text:                text,
		UnparsedFields:      r.unparsed(),
	}, nil
}
