package token

import (
	"strings"
	"testing"
	"time"
)

func TestInspectValidToken(t *testing.T) {
	tok, err := Encode(map[string]any{
		"sub": "user1",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}, "s", "")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	rep := Inspect(tok)
	if !rep.Valid {
		t.Fatalf("expected valid report, errors: %v", rep.Errors)
	}
	if rep.Lexical.SegmentCount != 3 {
		t.Fatalf("segment count = %d", rep.Lexical.SegmentCount)
	}
	if rep.Structural == nil || rep.Structural.Header["alg"] != "HS256" {
		t.Fatalf("structural header not decoded: %+v", rep.Structural)
	}
	if rep.Semantic == nil || !rep.Semantic.Valid {
		t.Fatalf("semantic phase failed: %+v", rep.Semantic)
	}
	for _, c := range rep.Semantic.Claims {
		if c.Name == "sub" && (!c.Registered || c.Scope != "payload" || c.Type != "string") {
			t.Fatalf("bad claim table row: %+v", c)
		}
	}
}

func TestInspectWrongSegmentCount(t *testing.T) {
	rep := Inspect("only-one-part")
	if rep.Valid {
		t.Fatal("expected invalid report")
	}
	if rep.Structural != nil {
		t.Fatal("structural phase should not run after a lexical failure")
	}
	if len(rep.Errors) == 0 {
		t.Fatal("expected at least one error")
	}
}

func TestInspectBadAlphabet(t *testing.T) {
	rep := Inspect("ab$cd.efgh.ijkl")
	if rep.Valid {
		t.Fatal("expected invalid report")
	}
	seg := rep.Lexical.Segments[0]
	if seg.Valid || !strings.Contains(seg.InvalidChars, "'$'") {
		t.Fatalf("expected '$' flagged in header segment, got %+v", seg)
	}
}

func TestInspectExpiredToken(t *testing.T) {
	tok, err := Encode(map[string]any{
		"sub": "user1",
		"exp": time.Now().Add(-time.Minute).Unix(),
	}, "s", "")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	rep := Inspect(tok)
	if rep.Valid {
		t.Fatal("expected expired token to be reported invalid")
	}
	found := false
	for _, e := range rep.Errors {
		if strings.Contains(e, "expired") {
			found = true
		}
	}
	if !found {
		t.Fatalf("no expiry error in %v", rep.Errors)
	}
}

func TestInspectTemporalOrder(t *testing.T) {
	now := time.Now().Unix()
	tok, err := Encode(map[string]any{
		"iat": now,
		"nbf": now - 100, // violates iat <= nbf
		"exp": now + 3600,
	}, "s", "")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	rep := Inspect(tok)
	if rep.Valid {
		t.Fatal("expected temporal-order violation")
	}
	found := false
	for _, e := range rep.Errors {
		if strings.Contains(e, "temporal order") {
			found = true
		}
	}
	if !found {
		t.Fatalf("no temporal-order error in %v", rep.Errors)
	}
}

func TestInspectWrongClaimType(t *testing.T) {
	tok, err := Encode(map[string]any{"iss": 42}, "s", "")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	rep := Inspect(tok)
	if rep.Valid {
		t.Fatal("expected type error for numeric iss")
	}
}

func TestInspectMissingExpWarns(t *testing.T) {
	tok, err := Encode(map[string]any{"sub": "user1"}, "s", "")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	rep := Inspect(tok)
	if !rep.Valid {
		t.Fatalf("missing exp is only a warning, errors: %v", rep.Errors)
	}
	if len(rep.Warnings) == 0 {
		t.Fatal("expected a warning about the missing exp claim")
	}
}
