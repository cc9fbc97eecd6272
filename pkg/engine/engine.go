package engine

import (
	"errors"
	"io"

	"github.com/ideal-lab5/timelock/pkg/config"
)

// ErrDeserialization is returned when compressed point bytes are
// malformed, off the curve, or outside the prime-order subgroup.
var ErrDeserialization = errors.New("engine: point deserialization failed")

// PublicKey is an element of the public-key group of an engine
type PublicKey interface {
	// Marshal returns the canonical compressed encoding
	Marshal() []byte
	Equal(PublicKey) bool
	IsInfinity() bool
}

// Signature is an element of the signature group of an engine.
// Hash-to-curve images of identities and IBE extract outputs live here.
type Signature interface {
	Marshal() []byte
	Equal(Signature) bool
	IsInfinity() bool
}

// Scalar is an element of the engine's prime-order scalar field
type Scalar interface {
	// Bytes returns the 32-byte little-endian encoding
	Bytes() []byte
	// Zeroize clears the scalar in place
	Zeroize()
}

// GT is an element of the pairing target field
type GT interface {
	// Marshal returns the canonical encoding used as H2 preimage
	Marshal() []byte
	IsOne() bool
}

// EngineBLS abstracts a BLS-like pairing configuration: which group
// hosts public keys vs. signatures, how points serialize in compressed
// form, how messages hash to the signature group, and the domain
// separation tag. Concrete instantiations are distinct monomorphic
// types selected at the call site, one per curve.
type EngineBLS interface {
	// Curve returns the configured curve identifier
	Curve() config.CurveType

	// Serialized sizes of compressed group elements and scalars
	PublicKeySize() int
	SignatureSize() int
	SecretKeySize() int

	// DST returns the RFC 9380 domain separation tag for
	// hash-to-signature-curve
	DST() []byte

	// Generators
	PublicKeyGenerator() PublicKey
	SignatureGenerator() Signature

	// Compressed deserialization. Both fail with ErrDeserialization on
	// invalid subgroup or malformed bytes.
	UnmarshalPublicKey(compressed []byte) (PublicKey, error)
	UnmarshalSignature(compressed []byte) (Signature, error)

	// Group operations
	MulPublicKey(p PublicKey, s Scalar) PublicKey
	MulSignature(q Signature, s Scalar) Signature
	AddSignatures(a, b Signature) Signature

	// Scalars
	ScalarFromDigest(digest []byte) Scalar
	RandomScalar(rng io.Reader) (Scalar, error)

	// HashToSignatureCurve hashes a message to the signature group per
	// RFC 9380 under the engine's DST
	HashToSignatureCurve(message []byte) Signature

	// Pairing evaluates the Ate pairing e(p, q) with p in the
	// public-key group and q in the signature group
	Pairing(p PublicKey, q Signature) (GT, error)
}
