package token

import "errors"

var (
	// ErrInvalidClaims means the claims payload is missing or cannot be
	// serialized as a JSON object.
	ErrInvalidClaims = errors.New("invalid claims")

	// ErrEncoding means the signing operation itself failed, e.g. the
	// requested algorithm is not in the allow-list.
	ErrEncoding = errors.New("encoding failed")

	// ErrMalformedToken covers structural problems: wrong segment count,
	// invalid base64url, or non-JSON header/payload.
	ErrMalformedToken = errors.New("malformed token")

	// ErrSignatureInvalid means the signature does not match the secret.
	ErrSignatureInvalid = errors.New("signature invalid")

	// ErrTokenExpired means the token carries an exp claim in the past.
	ErrTokenExpired = errors.New("token expired")
)
