package store

import (
	"context"
	"testing"
)

func TestCheckpoint_MissingKey(t *testing.T) {
	s := createTestStore(t)

	value, ok, err := s.GetCheckpoint(context.Background(), CheckpointLastRunAt)
	if err != nil {
		t.Fatalf("GetCheckpoint() failed: %v", err)
	}
	if ok {
		t.Errorf("unset key reported present with value %q", value)
	}
}

func TestCheckpoint_SetGetOverwrite(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	key := CheckpointDayFingerprint + "2026-08-30"

	if err := s.SetCheckpoint(ctx, key, "abc123"); err != nil {
		t.Fatalf("SetCheckpoint() failed: %v", err)
	}
	value, ok, err := s.GetCheckpoint(ctx, key)
	if err != nil {
		t.Fatalf("GetCheckpoint() failed: %v", err)
	}
	if !ok || value != "abc123" {
		t.Errorf("GetCheckpoint() = (%q, %v), want (abc123, true)", value, ok)
	}

	if err := s.SetCheckpoint(ctx, key, "def456"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	value, ok, err = s.GetCheckpoint(ctx, key)
	if err != nil {
		t.Fatalf("GetCheckpoint() failed: %v", err)
	}
	if !ok || value != "def456" {
		t.Errorf("GetCheckpoint() after overwrite = (%q, %v), want (def456, true)", value, ok)
	}
}
