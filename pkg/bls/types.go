package bls

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// G1Point represents a point on the G1 curve with proper serialization.
// For the QuickNet configuration G1 hosts signatures and identity hashes.
type G1Point struct {
	point *bls12381.G1Affine
}

// G2Point represents a point on the G2 curve with proper serialization.
// For the QuickNet configuration G2 hosts beacon public keys.
type G2Point struct {
	point *bls12381.G2Affine
}

// NewG1Point creates a new G1Point from a gnark G1Affine point
func NewG1Point(p *bls12381.G1Affine) *G1Point {
	return &G1Point{point: p}
}

// NewG2Point creates a new G2Point from a gnark G2Affine point
func NewG2Point(p *bls12381.G2Affine) *G2Point {
	return &G2Point{point: p}
}

// ZeroG1Point returns the identity point on G1
func ZeroG1Point() *G1Point {
	return NewG1Point(new(bls12381.G1Affine).SetInfinity())
}

// ZeroG2Point returns the identity point on G2
func ZeroG2Point() *G2Point {
	return NewG2Point(new(bls12381.G2Affine).SetInfinity())
}

// Marshal serializes the G1Point to bytes (compressed format)
func (p *G1Point) Marshal() []byte {
	if p.point == nil {
		return make([]byte, G1SerializedSize)
	}
	bytes := p.point.Bytes() // Returns [48]byte
	return bytes[:]          // Convert to slice
}

// Unmarshal deserializes bytes to G1Point
// This is in the compressed format.
func (p *G1Point) Unmarshal(data []byte) error {
	if p.point == nil {
		p.point = new(bls12381.G1Affine)
	}
	_, err := p.point.SetBytes(data) // Use SetBytes for compressed format
	return err
}

// Marshal serializes the G2Point to bytes (compressed format)
func (p *G2Point) Marshal() []byte {
	if p.point == nil {
		return make([]byte, G2SerializedSize)
	}
	bytes := p.point.Bytes() // Returns [96]byte
	return bytes[:]          // Convert to slice
}

// Unmarshal deserializes bytes to G2Point
// This is in the compressed format.
func (p *G2Point) Unmarshal(data []byte) error {
	if p.point == nil {
		p.point = new(bls12381.G2Affine)
	}
	_, err := p.point.SetBytes(data) // Use SetBytes for compressed format
	return err
}

// IsZero checks if the G1Point is the identity/zero point
func (p *G1Point) IsZero() bool {
	if p.point == nil {
		return true
	}
	return p.point.IsInfinity()
}

// IsZero checks if the G2Point is the identity/zero point
func (p *G2Point) IsZero() bool {
	if p.point == nil {
		return true
	}
	return p.point.IsInfinity()
}

// Equal checks if two G1Points are equal
func (p *G1Point) Equal(other *G1Point) bool {
	if p.point == nil || other == nil || other.point == nil {
		return false
	}
	return p.point.Equal(other.point)
}

// Equal checks if two G2Points are equal
func (p *G2Point) Equal(other *G2Point) bool {
	if p.point == nil || other == nil || other.point == nil {
		return false
	}
	return p.point.Equal(other.point)
}

// ToAffine converts G1Point to a G1Affine point
func (p *G1Point) ToAffine() *bls12381.G1Affine {
	return p.point
}

// ToAffine converts G2Point to a G2Affine point
func (p *G2Point) ToAffine() *bls12381.G2Affine {
	return p.point
}

// G1PointFromCompressedBytes creates a G1Point from compressed bytes.
// SetBytes rejects malformed encodings, points off the curve and points
// outside the prime-order subgroup.
func G1PointFromCompressedBytes(compressedBytes []byte) (*G1Point, error) {
	point := new(bls12381.G1Affine)
	_, err := point.SetBytes(compressedBytes)
	if err != nil {
		return nil, err
	}
	return NewG1Point(point), nil
}

// G2PointFromCompressedBytes creates a G2Point from compressed bytes
func G2PointFromCompressedBytes(compressedBytes []byte) (*G2Point, error) {
	point := new(bls12381.G2Affine)
	_, err := point.SetBytes(compressedBytes)
	if err != nil {
		return nil, err
	}
	return NewG2Point(point), nil
}
