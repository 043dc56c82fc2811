package token

import (
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Inspect produces a structural report over a raw token string in three
// phases: lexical (Base64URL alphabet per segment), structural (the fixed
// HEADER '.' PAYLOAD '.' SIGNATURE shape with decodable JSON parts) and
// semantic (RFC 7519 registered-claim and temporal checks). Later phases
// run only when the earlier ones pass; the report itself is the result, so
// an invalid token is not an error.
func Inspect(raw string) *Report {
	rep := &Report{
		Errors:   []string{},
		Warnings: []string{},
	}

	rep.Lexical = scanSegments(raw)
	rep.Errors = append(rep.Errors, rep.Lexical.Errors...)
	if !rep.Lexical.Valid {
		return rep
	}

	rep.Structural = parseStructure(rep.Lexical.Segments)
	rep.Errors = append(rep.Errors, rep.Structural.Errors...)
	if !rep.Structural.Valid {
		return rep
	}

	rep.Semantic = analyzeSemantics(rep.Structural.Header, rep.Structural.Payload)
	rep.Errors = append(rep.Errors, rep.Semantic.Errors...)
	rep.Warnings = append(rep.Warnings, rep.Semantic.Warnings...)

	rep.Valid = len(rep.Errors) == 0
	return rep
}

type Report struct {
	Valid      bool              `json:"valid"`
	Lexical    *LexicalReport    `json:"lexical"`
	Structural *StructuralReport `json:"structural,omitempty"`
	Semantic   *SemanticReport   `json:"semantic,omitempty"`
	Errors     []string          `json:"errors"`
	Warnings   []string          `json:"warnings"`
}

type Segment struct {
	Kind         string `json:"kind"` // header, payload or signature
	Position     int    `json:"position"`
	Length       int    `json:"length"`
	Valid        bool   `json:"valid"`
	InvalidChars string `json:"invalid_chars,omitempty"`

	value string
}

type LexicalReport struct {
	Valid        bool      `json:"valid"`
	SegmentCount int       `json:"segment_count"`
	Segments     []Segment `json:"segments"`
	TotalLength  int       `json:"total_length"`
	Errors       []string  `json:"-"`
}

type StructuralReport struct {
	Valid   bool           `json:"valid"`
	Header  map[string]any `json:"header,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
	Errors  []string       `json:"-"`
}

type SemanticReport struct {
	Valid    bool        `json:"valid"`
	Claims   []ClaimInfo `json:"claims"`
	Errors   []string    `json:"-"`
	Warnings []string    `json:"-"`
}

// ClaimInfo is one row of the claim table: every header field and payload
// claim, classified as registered (RFC 7519 / JOSE header) or private.
type ClaimInfo struct {
	Name       string `json:"name"`
	Scope      string `json:"scope"` // header or payload
	Type       string `json:"type"`
	Registered bool   `json:"registered"`
	Value      any    `json:"value"`
}

var segmentKinds = [3]string{"header", "payload", "signature"}

func scanSegments(raw string) *LexicalReport {
	rep := &LexicalReport{TotalLength: len(raw)}
	parts := strings.Split(raw, ".")
	rep.SegmentCount = len(parts)
	if len(parts) != 3 {
		rep.Errors = append(rep.Errors,
			fmt.Sprintf("lexical: expected 3 '.'-separated segments, got %d", len(parts)))
		return rep
	}

	pos := 0
	ok := true
	for i, part := range parts {
		seg := Segment{
			Kind:     segmentKinds[i],
			Position: pos,
			Length:   len(part),
			Valid:    true,
			value:    part,
		}
		if bad := invalidBase64URLChars(part); part == "" || bad != "" {
			seg.Valid = false
			seg.InvalidChars = bad
			ok = false
			if part == "" {
				rep.Errors = append(rep.Errors,
					fmt.Sprintf("lexical: %s segment is empty", seg.Kind))
			} else {
				rep.Errors = append(rep.Errors,
					fmt.Sprintf("lexical: %s segment at offset %d contains characters outside the Base64URL alphabet: %s", seg.Kind, pos, bad))
			}
		}
		rep.Segments = append(rep.Segments, seg)
		pos += len(part) + 1
	}
	rep.Valid = ok
	return rep
}

// invalidBase64URLChars returns the distinct characters of s that fall
// outside [A-Za-z0-9_-], sorted for stable output.
func invalidBase64URLChars(s string) string {
	seen := map[rune]bool{}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			seen[r] = true
		}
	}
	if len(seen) == 0 {
		return ""
	}
	out := make([]string, 0, len(seen))
	for r := range seen {
		out = append(out, fmt.Sprintf("%q", r))
	}
	sort.Strings(out)
	return strings.Join(out, " ")
}

func parseStructure(segs []Segment) *StructuralReport {
	rep := &StructuralReport{}

	header, err := decodeJSONSegment(segs[0].value)
	if err != nil {
		rep.Errors = append(rep.Errors, fmt.Sprintf("structural: header is not a Base64URL-encoded JSON object: %v", err))
	}
	payload, err := decodeJSONSegment(segs[1].value)
	if err != nil {
		rep.Errors = append(rep.Errors, fmt.Sprintf("structural: payload is not a Base64URL-encoded JSON object: %v", err))
	}
	if _, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(segs[2].value, "=")); err != nil {
		rep.Errors = append(rep.Errors, fmt.Sprintf("structural: signature is not valid Base64URL: %v", err))
	}

	rep.Header = header
	rep.Payload = payload
	rep.Valid = len(rep.Errors) == 0
	return rep
}

// recognizedAlgs is what the semantic phase accepts in the JOSE header.
// Broader than the codec's HMAC allow-list: inspection reports on tokens
// this service could never have minted.
var recognizedAlgs = map[string]bool{
	"HS256": true, "HS384": true, "HS512": true,
	"RS256": true, "RS384": true, "RS512": true,
	"ES256": true, "ES384": true, "ES512": true,
	"none": true,
}

var registeredHeaderFields = map[string]bool{"typ": true, "alg": true, "kid": true}

// registeredClaims maps RFC 7519 claim names to a type check.
var registeredClaims = map[string]func(any) bool{
	"iss": isString,
	"sub": isString,
	"aud": func(v any) bool {
		if isString(v) {
			return true
		}
		_, ok := v.([]any)
		return ok
	},
	"exp": isNumber,
	"nbf": isNumber,
	"iat": isNumber,
	"jti": isString,
}

func isString(v any) bool { _, ok := v.(string); return ok }
func isNumber(v any) bool { _, ok := v.(float64); return ok }

func analyzeSemantics(header, payload map[string]any) *SemanticReport {
	rep := &SemanticReport{Claims: claimTable(header, payload)}

	// JOSE header: alg is mandatory, typ is only recommended.
	if alg, ok := header["alg"]; !ok {
		rep.Errors = append(rep.Errors, "semantic: header is missing the required 'alg' field")
	} else if s, isStr := alg.(string); !isStr || !recognizedAlgs[s] {
		rep.Errors = append(rep.Errors, fmt.Sprintf("semantic: unrecognized algorithm %v", alg))
	}
	if typ, ok := header["typ"]; !ok {
		rep.Warnings = append(rep.Warnings, "semantic: header is missing the recommended 'typ' field")
	} else if typ != "JWT" {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("semantic: header 'typ' is %v, expected \"JWT\"", typ))
	}

	if len(payload) == 0 {
		rep.Warnings = append(rep.Warnings, "semantic: payload carries no claims")
	}
	for name, check := range registeredClaims {
		if v, ok := payload[name]; ok && !check(v) {
			rep.Errors = append(rep.Errors,
				fmt.Sprintf("semantic: registered claim %q has the wrong type (%T)", name, v))
		}
	}

	rep.Errors = append(rep.Errors, temporalErrors(payload, &rep.Warnings)...)
	rep.Valid = len(rep.Errors) == 0
	return rep
}

func temporalErrors(payload map[string]any, warnings *[]string) []string {
	var errs []string
	now := float64(time.Now().Unix())

	exp, hasExp := payload["exp"].(float64)
	nbf, hasNbf := payload["nbf"].(float64)
	iat, hasIat := payload["iat"].(float64)

	if hasExp && exp < now {
		errs = append(errs, fmt.Sprintf("semantic: token expired at %d", int64(exp)))
	}
	if !hasExp {
		if _, present := payload["exp"]; !present {
			*warnings = append(*warnings, "semantic: no 'exp' claim, expiry cannot be checked")
		}
	}
	if hasNbf && nbf > now {
		errs = append(errs, fmt.Sprintf("semantic: token not valid before %d", int64(nbf)))
	}
	if hasIat && iat > now {
		*warnings = append(*warnings, fmt.Sprintf("semantic: 'iat' %d is in the future", int64(iat)))
	}
	if hasExp && hasNbf && hasIat && !(iat <= nbf && nbf <= exp) {
		errs = append(errs, fmt.Sprintf("semantic: temporal order violated, expected iat <= nbf <= exp, got iat=%d nbf=%d exp=%d",
			int64(iat), int64(nbf), int64(exp)))
	}
	return errs
}

func claimTable(header, payload map[string]any) []ClaimInfo {
	out := make([]ClaimInfo, 0, len(header)+len(payload))
	for _, scope := range []struct {
		name   string
		fields map[string]any
	}{{"header", header}, {"payload", payload}} {
		names := make([]string, 0, len(scope.fields))
		for k := range scope.fields {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			v := scope.fields[k]
			registered := registeredHeaderFields[k]
			if scope.name == "payload" {
				_, registered = registeredClaims[k]
			}
			out = append(out, ClaimInfo{
				Name:       k,
				Scope:      scope.name,
				Type:       jsonTypeName(v),
				Registered: registered,
				Value:      v,
			})
		}
	}
	return out
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
