package config

import "fmt"

// CurveType identifies a pairing engine configuration
type CurveType string

func (c CurveType) String() string {
	return string(c)
}
func (c CurveType) Uint8() (uint8, error) {
	return ConvertCurveTypeToWrapperEnum(c)
}

const (
	CurveTypeUnknown CurveType = "unknown"
	// CurveTypeQuickNetBLS12381 is drand's QuickNet configuration of
	// BLS12-381: public keys in G2, signatures in G1, scheme
	// "bls-unchained-g1-rfc9380". The only supported curve for now.
	CurveTypeQuickNetBLS12381 CurveType = "quicknet-bls12-381"
)

// ConvertCurveTypeToWrapperEnum maps a curve type to the stable integer
// used by foreign wrappers to select a monomorphization
func ConvertCurveTypeToWrapperEnum(curveType CurveType) (uint8, error) {
	switch curveType {
	case CurveTypeUnknown:
		return 0, nil
	case CurveTypeQuickNetBLS12381:
		return 1, nil
	default:
		return 0, fmt.Errorf("unsupported curve type: %s", curveType)
	}
}

// ConvertWrapperEnumToCurveType is the inverse of
// ConvertCurveTypeToWrapperEnum
func ConvertWrapperEnumToCurveType(enumValue uint8) (CurveType, error) {
	switch enumValue {
	case 0:
		return CurveTypeUnknown, nil
	case 1:
		return CurveTypeQuickNetBLS12381, nil
	default:
		return "", fmt.Errorf("unsupported curve type enum value: %d", enumValue)
	}
}

// CipherSuite identifies the block cipher bound to a timelock
// ciphertext
type CipherSuite string

func (c CipherSuite) String() string {
	return string(c)
}

const (
	// CipherSuiteAESGCM256 is the only cipher suite currently defined
	CipherSuiteAESGCM256 CipherSuite = "AES_GCM_256"
)

// ValidateCipherSuite rejects suites this build does not implement
func ValidateCipherSuite(suite CipherSuite) error {
	switch suite {
	case CipherSuiteAESGCM256:
		return nil
	default:
		return fmt.Errorf("unsupported cipher suite: %s", suite)
	}
}
