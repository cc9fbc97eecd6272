package engine

import (
	"fmt"
	"io"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/ideal-lab5/timelock/pkg/bls"
	"github.com/ideal-lab5/timelock/pkg/config"
)

const (
	// QuickNetPublicKeySize is the compressed size of a G2 public key
	QuickNetPublicKeySize = bls.G2SerializedSize
	// QuickNetSignatureSize is the compressed size of a G1 signature
	QuickNetSignatureSize = bls.G1SerializedSize
	// QuickNetSecretKeySize is the size of a serialized scalar
	QuickNetSecretKeySize = 32
)

// QuickNet is the BLS12-381 engine in drand's QuickNet orientation:
// public keys in G2, signatures in G1, hash-to-G1 under the
// BLS_SIG_BLS12381G1_XMD:SHA-256_SSWU_RO_NUL_ tag.
type QuickNet struct{}

// NewQuickNet constructs the QuickNet engine
func NewQuickNet() *QuickNet {
	return &QuickNet{}
}

func (e *QuickNet) Curve() config.CurveType {
	return config.CurveTypeQuickNetBLS12381
}

func (e *QuickNet) PublicKeySize() int {
	return QuickNetPublicKeySize
}

func (e *QuickNet) SignatureSize() int {
	return QuickNetSignatureSize
}

func (e *QuickNet) SecretKeySize() int {
	return QuickNetSecretKeySize
}

func (e *QuickNet) DST() []byte {
	return []byte(bls.DSTG1)
}

func (e *QuickNet) PublicKeyGenerator() PublicKey {
	return &quickNetPublicKey{point: bls.G2Generator}
}

func (e *QuickNet) SignatureGenerator() Signature {
	return &quickNetSignature{point: bls.G1Generator}
}

func (e *QuickNet) UnmarshalPublicKey(compressed []byte) (PublicKey, error) {
	if len(compressed) != QuickNetPublicKeySize {
		return nil, fmt.Errorf("%w: public key must be %d bytes, got %d",
			ErrDeserialization, QuickNetPublicKeySize, len(compressed))
	}
	point, err := bls.G2PointFromCompressedBytes(compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	return &quickNetPublicKey{point: point}, nil
}

func (e *QuickNet) UnmarshalSignature(compressed []byte) (Signature, error) {
	if len(compressed) != QuickNetSignatureSize {
		return nil, fmt.Errorf("%w: signature must be %d bytes, got %d",
			ErrDeserialization, QuickNetSignatureSize, len(compressed))
	}
	point, err := bls.G1PointFromCompressedBytes(compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	return &quickNetSignature{point: point}, nil
}

func (e *QuickNet) MulPublicKey(p PublicKey, s Scalar) PublicKey {
	pk := p.(*quickNetPublicKey)
	sc := s.(*quickNetScalar)
	return &quickNetPublicKey{point: bls.ScalarMulG2(pk.point, sc.element)}
}

func (e *QuickNet) MulSignature(q Signature, s Scalar) Signature {
	sig := q.(*quickNetSignature)
	sc := s.(*quickNetScalar)
	return &quickNetSignature{point: bls.ScalarMulG1(sig.point, sc.element)}
}

func (e *QuickNet) AddSignatures(a, b Signature) Signature {
	sigA := a.(*quickNetSignature)
	sigB := b.(*quickNetSignature)
	return &quickNetSignature{point: bls.AddG1(sigA.point, sigB.point)}
}

func (e *QuickNet) ScalarFromDigest(digest []byte) Scalar {
	return &quickNetScalar{element: bls.ScalarFromDigest(digest)}
}

// RandomScalar samples a uniform scalar from the supplied source. 48
// bytes are drawn so the reduction modulo the ~255-bit order carries no
// observable bias.
func (e *QuickNet) RandomScalar(rng io.Reader) (Scalar, error) {
	wide := make([]byte, 48)
	if _, err := io.ReadFull(rng, wide); err != nil {
		return nil, fmt.Errorf("failed to sample scalar: %w", err)
	}
	scalar := bls.ScalarFromDigest(wide)
	return &quickNetScalar{element: scalar}, nil
}

func (e *QuickNet) HashToSignatureCurve(message []byte) Signature {
	return &quickNetSignature{point: bls.HashToG1(message)}
}

func (e *QuickNet) Pairing(p PublicKey, q Signature) (GT, error) {
	pk := p.(*quickNetPublicKey)
	sig := q.(*quickNetSignature)
	gt, err := bls.Pair(sig.point, pk.point)
	if err != nil {
		return nil, fmt.Errorf("pairing failed: %w", err)
	}
	return &quickNetGT{value: &gt}, nil
}

type quickNetPublicKey struct {
	point *bls.G2Point
}

func (p *quickNetPublicKey) Marshal() []byte {
	return p.point.Marshal()
}

func (p *quickNetPublicKey) Equal(other PublicKey) bool {
	o, ok := other.(*quickNetPublicKey)
	if !ok {
		return false
	}
	return p.point.Equal(o.point)
}

func (p *quickNetPublicKey) IsInfinity() bool {
	return p.point.IsZero()
}

type quickNetSignature struct {
	point *bls.G1Point
}

func (q *quickNetSignature) Marshal() []byte {
	return q.point.Marshal()
}

func (q *quickNetSignature) Equal(other Signature) bool {
	o, ok := other.(*quickNetSignature)
	if !ok {
		return false
	}
	return q.point.Equal(o.point)
}

func (q *quickNetSignature) IsInfinity() bool {
	return q.point.IsZero()
}

type quickNetScalar struct {
	element *fr.Element
}

// Bytes returns the 32-byte little-endian encoding of the scalar
func (s *quickNetScalar) Bytes() []byte {
	be := s.element.Bytes() // big-endian [32]byte
	out := make([]byte, len(be))
	for i := range be {
		out[i] = be[len(be)-1-i]
	}
	return out
}

func (s *quickNetScalar) Zeroize() {
	s.element.SetZero()
}

type quickNetGT struct {
	value *bls12381.GT
}

func (g *quickNetGT) Marshal() []byte {
	b := g.value.Bytes() // [576]byte canonical encoding
	return b[:]
}

func (g *quickNetGT) IsOne() bool {
	return g.value.IsOne()
}
