package store

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryInsertAssignsIdentity(t *testing.T) {
	s := NewMemoryTestCaseStore()
	saved, err := s.Insert(context.Background(), &TestCase{Token: "a.b.c", Description: "first"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("insert did not assign an id")
	}
	if saved.CreatedAt.IsZero() {
		t.Fatal("insert did not assign created_at")
	}

	all, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 || all[0].ID != saved.ID || all[0].Token != "a.b.c" {
		t.Fatalf("unexpected list: %+v", all)
	}
}

func TestMemoryListNewestFirst(t *testing.T) {
	s := NewMemoryTestCaseStore()
	first, _ := s.Insert(context.Background(), &TestCase{Token: "t1"})
	second, _ := s.Insert(context.Background(), &TestCase{Token: "t2"})

	all, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != second.ID || all[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", all)
	}
}

func TestMemoryDeleteIdempotence(t *testing.T) {
	s := NewMemoryTestCaseStore()
	saved, _ := s.Insert(context.Background(), &TestCase{Token: "t"})

	deleted, err := s.DeleteByID(context.Background(), saved.ID)
	if err != nil || !deleted {
		t.Fatalf("first delete: deleted=%v err=%v", deleted, err)
	}
	deleted, err = s.DeleteByID(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("second delete errored: %v", err)
	}
	if deleted {
		t.Fatal("second delete reported a removal")
	}
}

func TestMemoryDeleteInvalidID(t *testing.T) {
	s := NewMemoryTestCaseStore()
	if _, err := s.DeleteByID(context.Background(), "not-an-object-id"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}
