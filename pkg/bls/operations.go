package bls

import (
	"fmt"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

const (
	// G1SerializedSize is the compressed size of a G1 point in bytes
	G1SerializedSize = 48
	// G2SerializedSize is the compressed size of a G2 point in bytes
	G2SerializedSize = 96
	// GTSerializedSize is the canonical size of a GT element in bytes
	GTSerializedSize = 576

	// DSTG1 is the RFC 9380 domain separation tag for hashing to G1,
	// matching the drand QuickNet "bls-unchained-g1-rfc9380" scheme
	DSTG1 = "BLS_SIG_BLS12381G1_XMD:SHA-256_SSWU_RO_NUL_"
	// DSTG2 is the RFC 9380 domain separation tag for hashing to G2
	DSTG2 = "BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_NUL_"
)

var (
	// G1Generator is the generator point for G1
	G1Generator *G1Point
	// G2Generator is the generator point for G2
	G2Generator *G2Point
)

func init() {
	// Initialize generators
	_, _, g1Gen, g2Gen := bls12381.Generators()
	G1Generator = NewG1Point(&g1Gen)
	G2Generator = NewG2Point(&g2Gen)

	// Fail fast if the underlying library changes its compressed encodings
	if len(G1Generator.Marshal()) != G1SerializedSize {
		panic("bls: G1 compressed size diverged from library")
	}
	if len(G2Generator.Marshal()) != G2SerializedSize {
		panic("bls: G2 compressed size diverged from library")
	}
}

// ScalarMulG1 performs scalar multiplication on G1
func ScalarMulG1(point *G1Point, scalar *fr.Element) *G1Point {
	if point == nil || point.point == nil || scalar == nil {
		return ZeroG1Point()
	}

	scalarBig := new(big.Int)
	scalar.BigInt(scalarBig)

	result := new(bls12381.G1Affine).ScalarMultiplication(point.point, scalarBig)
	return NewG1Point(result)
}

// ScalarMulG2 performs scalar multiplication on G2
func ScalarMulG2(point *G2Point, scalar *fr.Element) *G2Point {
	if point == nil || point.point == nil || scalar == nil {
		return ZeroG2Point()
	}

	scalarBig := new(big.Int)
	scalar.BigInt(scalarBig)

	result := new(bls12381.G2Affine).ScalarMultiplication(point.point, scalarBig)
	return NewG2Point(result)
}

// AddG1 adds two G1 points
func AddG1(a, b *G1Point) *G1Point {
	if a == nil || a.point == nil {
		if b == nil || b.point == nil {
			return ZeroG1Point()
		}
		return b
	}
	if b == nil || b.point == nil {
		return a
	}

	result := new(bls12381.G1Affine).Add(a.point, b.point)
	return NewG1Point(result)
}

// AddG2 adds two G2 points
func AddG2(a, b *G2Point) *G2Point {
	if a == nil || a.point == nil {
		if b == nil || b.point == nil {
			return ZeroG2Point()
		}
		return b
	}
	if b == nil || b.point == nil {
		return a
	}

	result := new(bls12381.G2Affine).Add(a.point, b.point)
	return NewG2Point(result)
}

// HashToG1 hashes a message to a G1 point using proper hash-to-curve
func HashToG1(msg []byte) *G1Point {
	g1Point, _ := bls12381.HashToG1(msg, []byte(DSTG1))
	return NewG1Point(&g1Point)
}

// HashToG2 hashes a message to a G2 point using proper hash-to-curve
func HashToG2(msg []byte) *G2Point {
	g2Point, _ := bls12381.HashToG2(msg, []byte(DSTG2))
	return NewG2Point(&g2Point)
}

// Pair computes the Ate pairing e(p, q) for a single pair of points
func Pair(p *G1Point, q *G2Point) (bls12381.GT, error) {
	if p == nil || p.point == nil || q == nil || q.point == nil {
		return bls12381.GT{}, fmt.Errorf("pairing requires non-nil points")
	}
	return bls12381.Pair(
		[]bls12381.G1Affine{*p.point},
		[]bls12381.G2Affine{*q.point},
	)
}

// ScalarFromDigest interprets a digest as a big-endian integer and
// reduces it modulo the scalar field order
func ScalarFromDigest(digest []byte) *fr.Element {
	scalar := new(fr.Element)
	scalar.SetBytes(digest)
	return scalar
}

// PrivateKey represents a BLS private key (a beacon master secret in
// the timelock setting; held only by tests and beacon emulators)
type PrivateKey struct {
	scalar *fr.Element
}

// GeneratePrivateKey generates a random private key
func GeneratePrivateKey() (*PrivateKey, error) {
	scalar := new(fr.Element)
	if _, err := scalar.SetRandom(); err != nil {
		return nil, fmt.Errorf("failed to generate random scalar: %w", err)
	}
	return &PrivateKey{scalar: scalar}, nil
}

// GeneratePrivateKeyFromSeed generates a deterministic private key from seed
func GeneratePrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) < 32 {
		return nil, fmt.Errorf("seed must be at least 32 bytes")
	}

	// Use the seed to generate a scalar in the field
	frOrder := fr.Modulus()
	sk := new(big.Int).SetBytes(seed[:32])
	sk.Mod(sk, frOrder)

	scalar := new(fr.Element)
	scalar.SetBigInt(sk)

	return &PrivateKey{scalar: scalar}, nil
}

// GetPublicKeyG2 derives the G2 public key from private key
func (sk *PrivateKey) GetPublicKeyG2() *G2Point {
	return ScalarMulG2(G2Generator, sk.scalar)
}

// SignG1 signs a message by hashing to G1 and multiplying by the
// private key. For a beacon round message this is exactly the IBE
// extract output for the round identity.
func (sk *PrivateKey) SignG1(msg []byte) *G1Point {
	msgPoint := HashToG1(msg)
	return ScalarMulG1(msgPoint, sk.scalar)
}

// VerifyG1 verifies a G1 signature using pairing check
// e(sig, G2Generator) == e(H(msg), pubkey)
func VerifyG1(pubkey *G2Point, msg []byte, sig *G1Point) bool {
	if pubkey == nil || pubkey.point == nil || sig == nil || sig.point == nil {
		return false
	}

	msgPoint := HashToG1(msg)

	var left, right bls12381.GT
	left, _ = bls12381.Pair([]bls12381.G1Affine{*sig.point}, []bls12381.G2Affine{*G2Generator.point})
	right, _ = bls12381.Pair([]bls12381.G1Affine{*msgPoint.point}, []bls12381.G2Affine{*pubkey.point})

	return left.Equal(&right)
}

// GetScalar returns the private key scalar
func (sk *PrivateKey) GetScalar() *fr.Element {
	return sk.scalar
}
