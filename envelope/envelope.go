// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"github.com/carabiner-dev/attestation"
	gointoto "github.com/in-toto/attestation/go/v1"
	sdsse "github.com/sigstore/protobuf-specs/gen/pb-go/dsse"

	"github.com/carabiner-dev/evidence/predicate/json"
)

// Envelope is the decoded content of a sigstore bundle's DSSE envelope. It
// only keeps what the evidence converter reads: the payload and whatever
// could be learned about the statement inside it.
type Envelope struct {
	PayloadType string
	Payload     []byte

	// Data is the payload decoded as a JSON object
	Data json.DataMap

	// Signatures holds the envelope signatures, unverified. It is empty
	// when the envelope has none or they could not be decoded.
	Signatures []*sdsse.Signature

	// Statement is the payload read as an in-toto statement. It is nil when
	// the payload does not look like one.
	Statement *gointoto.Statement

	// Origin describes the raw document the envelope was read from
	Origin *gointoto.ResourceDescriptor
}

// GetPredicate returns the payload's predicate object. If the payload has no
// predicate, or it is not an object, an empty map is returned.
func (env *Envelope) GetPredicate() json.DataMap {
	if env == nil {
		return json.DataMap{}
	}
	return env.Data.GetMap("predicate")
}

// GetPredicateType returns the predicate type declared in the statement
func (env *Envelope) GetPredicateType() attestation.PredicateType {
	if env == nil || env.Statement == nil {
		return ""
	}
	return attestation.PredicateType(env.Statement.GetPredicateType())
}

// GetSubjects returns the statement subjects, if any
func (env *Envelope) GetSubjects() []*gointoto.ResourceDescriptor {
	if env == nil || env.Statement == nil {
		return nil
	}
	return env.Statement.GetSubject()
}
