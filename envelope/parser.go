// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

// Package envelope reads the DSSE envelope out of a sigstore bundle and
// decodes its payload.
package envelope

import (
	"bytes"
	"encoding/base64"
	gojson "encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/carabiner-dev/hasher"
	gointoto "github.com/in-toto/attestation/go/v1"
	sdsse "github.com/sigstore/protobuf-specs/gen/pb-go/dsse"
	"github.com/sirupsen/logrus"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/carabiner-dev/evidence/predicate/json"
)

// ErrMalformedInput is returned when the document cannot be read as a bundle
// with a decodable DSSE payload.
var ErrMalformedInput = errors.New("malformed attestation input")

// BundleEnvelopeField is the bundle key holding the DSSE envelope
const BundleEnvelopeField = "dsseEnvelope"

func malformed(msg string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrMalformedInput, msg)
	}
	return fmt.Errorf("%w: %s: %w", ErrMalformedInput, msg, err)
}

// ParseFile reads an attestation bundle from a file
func ParseFile(path string) (*Envelope, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	env, err := ParseStream(f)
	if err != nil {
		return nil, err
	}

	if env.Origin != nil {
		env.Origin.Name = filepath.Base(path)
		env.Origin.Uri = fmt.Sprintf("file:%s", path)
	}
	return env, nil
}

// ParseStream reads all data from r and parses it
func ParseStream(r io.Reader) (*Envelope, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading attestation data: %w", err)
	}
	return Parse(data)
}

// Parse extracts the DSSE envelope from the bundle data, decodes its
// payload and parses it as a JSON object.
func Parse(data []byte) (*Envelope, error) {
	// We only care about one key in the bundle, so the rest of the
	// document is not validated.
	doc := map[string]gojson.RawMessage{}
	if err := gojson.Unmarshal(data, &doc); err != nil {
		return nil, malformed("parsing bundle json", err)
	}

	rawEnvelope, ok := doc[BundleEnvelopeField]
	if !ok || isNull(rawEnvelope) {
		return nil, malformed("no dsseEnvelope found in bundle", nil)
	}

	dsseData, err := json.Parse(rawEnvelope)
	if err != nil {
		return nil, malformed("parsing dsse envelope", err)
	}

	// Only the payload is required, the rest of the envelope is read
	// best effort.
	encoded, ok := dsseData["payload"].(string)
	if !ok {
		return nil, malformed("dsse envelope has no payload string", nil)
	}

	payload, err := decodePayload(encoded)
	if err != nil {
		return nil, malformed("decoding envelope payload", err)
	}

	pdata, err := json.Parse(payload)
	if err != nil {
		return nil, malformed("parsing envelope payload", err)
	}

	env := &Envelope{
		PayloadType: dsseData.GetString("payloadType", ""),
		Payload:     payload,
		Data:        pdata,
		Signatures:  parseSignatures(rawEnvelope),
		Statement:   parseStatement(payload),
	}

	digests, err := hasher.New().HashReaders([]io.Reader{bytes.NewReader(data)})
	if err != nil {
		return nil, fmt.Errorf("hashing envelope data: %w", err)
	}
	if len(*digests) == 0 {
		return nil, errors.New("hashing envelope data: no digests computed")
	}
	env.Origin = digests.ToResourceDescriptors()[0]
	logrus.Debugf("Read envelope with digests %v", env.Origin.GetDigest())

	return env, nil
}

// decodePayload decodes the payload in any of the base64 alphabets accepted
// in the JSON form of a DSSE envelope, padded or not.
func decodePayload(encoded string) ([]byte, error) {
	enc := base64.StdEncoding
	if strings.ContainsAny(encoded, "-_") {
		enc = base64.URLEncoding
	}
	if len(encoded)%4 != 0 {
		enc = enc.WithPadding(base64.NoPadding)
	}
	return enc.DecodeString(encoded)
}

// parseSignatures reads the envelope signatures. Signatures are not
// verified, so an envelope that does not decode is only logged.
func parseSignatures(rawEnvelope []byte) []*sdsse.Signature {
	dsseEnvelope := &sdsse.Envelope{}
	unmarshaler := protojson.UnmarshalOptions{
		DiscardUnknown: true,
	}
	if err := unmarshaler.Unmarshal(rawEnvelope, dsseEnvelope); err != nil {
		logrus.Debugf("Unable to read dsse envelope signatures: %v", err)
		return nil
	}
	return dsseEnvelope.GetSignatures()
}

// parseStatement reads the payload as an in-toto statement. Payloads that do
// not conform are not an error, the converter only needs the raw JSON.
func parseStatement(payload []byte) *gointoto.Statement {
	stmt := &gointoto.Statement{}
	unmarshaler := protojson.UnmarshalOptions{
		DiscardUnknown: true,
	}
	if err := unmarshaler.Unmarshal(payload, stmt); err != nil {
		logrus.Debugf("Payload is not an in-toto statement: %v", err)
		return nil
	}
	if stmt.GetType() == "" && stmt.GetPredicateType() == "" {
		logrus.Debug("Payload has no in-toto statement type")
		return nil
	}
	logrus.Debugf("Envelope statement predicate type: %s", stmt.GetPredicateType())
	return stmt
}

func isNull(raw gojson.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
