package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity. The version suffix allows
// the algorithm to change without colliding with old identities.
const (
	DomainDefinition = "curveforge/definition/v1"
	DomainBuild      = "curveforge/build/v1"
)

// hashWithDomain computes SHA256(domain || 0x00 || data) as lowercase hex.
// The null separator keeps the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DefinitionHash computes the identity of a curve definition from its
// canonical form. Equal definitions hash equally regardless of key order or
// source formatting.
func DefinitionHash(def Object) (string, error) {
	canonical, err := MarshalCanonical(def)
	if err != nil {
		return "", fmt.Errorf("DefinitionHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainDefinition, canonical), nil
}

// BuildID computes the identity of one build attempt. It is stable across
// replays given the same run, curve and sequence number.
func BuildID(runID, curveName, definitionHash string, seq int64) (string, error) {
	obj := Object{
		"run_id":          String(runID),
		"curve_name":      String(curveName),
		"definition_hash": String(definitionHash),
		"seq":             Int(seq),
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("BuildID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainBuild, canonical), nil
}

// MustBuildID is like BuildID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustBuildID(runID, curveName, definitionHash string, seq int64) string {
	id, err := BuildID(runID, curveName, definitionHash, seq)
	if err != nil {
		panic(err)
	}
	return id
}
