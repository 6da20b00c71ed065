// Package codec provides the encode/decode round trip dist uses to prove a
// value actually crossed a process boundary, built on
// encoding.BinaryMarshaler/BinaryUnmarshaler rather than a specific wire
// format — callers plug in whatever concrete type implements those two
// stdlib interfaces.
package codec

import (
	"encoding"

	"github.com/constellation-rs/amadeus-go/pkg/pipeline/errs"
)

// ProcessSend is the capability bound dist requires of anything crossing a
// simulated process boundary: the Go rendering of the original's
// Serialize + Deserialize bound.
type ProcessSend interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

// Roundtrip marshals v, then unmarshals the resulting bytes into a fresh
// value produced by blank, simulating the wire crossing a real process
// pool would impose.
func Roundtrip[T ProcessSend](v T, blank func() T) (T, error) {
	wire, err := v.MarshalBinary()
	if err != nil {
		return blank(), errs.Serialization("marshal", err)
	}
	out := blank()
	if err := out.UnmarshalBinary(wire); err != nil {
		return blank(), errs.Serialization("unmarshal", err)
	}
	return out, nil
}
