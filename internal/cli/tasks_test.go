package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"

	"taskdeck/internal/model"
)

func TestDraftFromFlagsOnlyChangedFlagsTransmit(t *testing.T) {
	t.Parallel()

	var title, description, status, due, tags string
	var userID int

	cmd := &cobra.Command{Use: "probe", RunE: func(*cobra.Command, []string) error { return nil }}
	addDraftFlags(cmd, &title, &description, &status, &due, &tags, &userID)
	cmd.SetArgs([]string{"--title", "Buy milk", "--due", "", "--assignee", "3"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: expected no error, got %v", err)
	}

	d := draftFromFlags(cmd, title, description, status, due, tags, userID)

	if d.Title == nil || *d.Title != "Buy milk" {
		t.Fatalf("title: expected %q, got %v", "Buy milk", d.Title)
	}
	// Explicitly set to empty is a clear, not an omission.
	if d.DueDate == nil || *d.DueDate != "" {
		t.Fatalf("due: expected explicit empty, got %v", d.DueDate)
	}
	if d.UserID == nil || *d.UserID != 3 {
		t.Fatalf("assignee: expected 3, got %v", d.UserID)
	}
	// Untouched flags stay out of the payload, status default included.
	if d.Description != nil || d.Status != nil || d.Tags != nil {
		t.Fatalf("unset flags: expected nil, got desc=%v status=%v tags=%v", d.Description, d.Status, d.Tags)
	}
}

func TestDraftFromFlagsStatusOnlyWhenSet(t *testing.T) {
	t.Parallel()

	var title, description, status, due, tags string
	var userID int

	cmd := &cobra.Command{Use: "probe", RunE: func(*cobra.Command, []string) error { return nil }}
	addDraftFlags(cmd, &title, &description, &status, &due, &tags, &userID)
	cmd.SetArgs([]string{"--status", "Completed"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: expected no error, got %v", err)
	}

	d := draftFromFlags(cmd, title, description, status, due, tags, userID)
	if d.Status == nil || *d.Status != model.StatusCompleted {
		t.Fatalf("status: expected Completed, got %v", d.Status)
	}
	if d.Title != nil {
		t.Fatalf("title: expected nil, got %v", d.Title)
	}
}

func TestTasksDeleteRefusesWithoutConfirmation(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"tasks", "delete", "9"})

	err := root.Execute()
	var notConfirmed deleteNotConfirmedError
	if !errors.As(err, &notConfirmed) {
		t.Fatalf("delete without --yes: expected refusal, got %v", err)
	}
	if notConfirmed.id != 9 {
		t.Fatalf("refusal: expected task 9, got %d", notConfirmed.id)
	}
}

func TestScriptableCommandsRequireCredentials(t *testing.T) {
	t.Setenv("TASKDECK_EMAIL", "")
	t.Setenv("TASKDECK_PASSWORD", "")

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"tasks", "list"})

	if err := root.Execute(); !errors.Is(err, errMissingCredentials) {
		t.Fatalf("tasks list: expected missing-credentials error, got %v", err)
	}
}
