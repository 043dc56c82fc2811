// Package token wraps golang-jwt with the three operations the API exposes:
// encode (sign), decode (inspect without trust), and verify (the trust-bearing
// check). Decode and verify stay separate on purpose: decode must never be
// mistaken for a signature check.
package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAlgorithm is used when a request omits the algorithm field.
const DefaultAlgorithm = "HS256"

// allowedAlgs is the HMAC allow-list for encode and verify.
var allowedAlgs = map[string]bool{
	"HS256": true,
	"HS384": true,
	"HS512": true,
}

// Encode signs claims with the given shared secret. An empty algorithm
// selects DefaultAlgorithm; anything outside the HMAC allow-list is refused.
func Encode(claims map[string]any, secret, algorithm string) (string, error) {
	if claims == nil {
		return "", fmt.Errorf("%w: claims must be a JSON object", ErrInvalidClaims)
	}
	if _, err := json.Marshal(claims); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidClaims, err)
	}
	if algorithm == "" {
		algorithm = DefaultAlgorithm
	}
	if !allowedAlgs[algorithm] {
		return "", fmt.Errorf("%w: algorithm %q not allowed", ErrEncoding, algorithm)
	}

	tok := jwt.NewWithClaims(jwt.GetSigningMethod(algorithm), jwt.MapClaims(claims))
	ss, err := tok.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return ss, nil
}

// Decoded is the untrusted view of a token: both JSON parts plus the raw
// signature segment, with no signature check performed.
type Decoded struct {
	Header    map[string]any
	Claims    map[string]any
	Signature string
}

// Decode splits and base64url-decodes a token WITHOUT verifying its
// signature. Callers use it for inspection only.
func Decode(raw string) (*Decoded, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedToken, len(parts))
	}

	header, err := decodeJSONSegment(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedToken, err)
	}
	claims, err := decodeJSONSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrMalformedToken, err)
	}

	return &Decoded{Header: header, Claims: claims, Signature: parts[2]}, nil
}

// Verify checks the signature against the shared secret and validates the
// registered temporal claims (exp, nbf) with zero leeway. It returns the
// claims only when the token can be trusted.
func Verify(raw, secret, algorithm string) (map[string]any, error) {
	if algorithm == "" {
		algorithm = DefaultAlgorithm
	}
	if !allowedAlgs[algorithm] {
		return nil, fmt.Errorf("%w: algorithm %q not allowed", ErrSignatureInvalid, algorithm)
	}

	keyFunc := func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}

	tok, err := jwt.Parse(raw, keyFunc, jwt.WithValidMethods([]string{algorithm}))
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
	default:
		// Signature mismatch, disallowed alg in the header, nbf in the
		// future: all refuse trust the same way.
		return nil, fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}
	if !tok.Valid {
		return nil, ErrSignatureInvalid
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: claims are not a JSON object", ErrMalformedToken)
	}
	return map[string]any(claims), nil
}

// decodeJSONSegment tolerates padded input even though RFC 7515 mandates
// unpadded base64url.
func decodeJSONSegment(seg string) (map[string]any, error) {
	b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(seg, "="))
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
