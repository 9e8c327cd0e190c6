package api

import (
	"reflect"
	"testing"

	"taskdeck/internal/model"
)

func TestStatusWireRoundTrip(t *testing.T) {
	for _, s := range model.Statuses() {
		if got := statusFromWire(statusToWire(s)); got != s {
			t.Fatalf("status %q: expected round-trip, got %q", s, got)
		}
	}
}

func TestStatusFromWire_UnrecognizedDefaultsToToDo(t *testing.T) {
	cases := []string{"", "archived", "done", "   ", "In Progress"}
	for _, tok := range cases {
		if got := statusFromWire(tok); got != model.StatusToDo {
			t.Fatalf("statusFromWire(%q): expected default %q, got %q", tok, model.StatusToDo, got)
		}
	}
	// Matching is case-insensitive for known tokens.
	if got := statusFromWire(" PENDING "); got != model.StatusToDo {
		t.Fatalf("statusFromWire(\" PENDING \"): expected %q, got %q", model.StatusToDo, got)
	}
	if got := statusFromWire("COMPLETED"); got != model.StatusCompleted {
		t.Fatalf("statusFromWire(\"COMPLETED\"): expected %q, got %q", model.StatusCompleted, got)
	}
}

func TestTagRoundTrip(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"home, urgent", "home, urgent"},
		{"  home ,urgent,  ", "home, urgent"},
		{",,,", ""},
		{"", ""},
		{"solo", "solo"},
	}
	for _, tc := range cases {
		got := model.JoinTags(model.SplitTags(tc.in))
		if got != tc.want {
			t.Fatalf("tag round-trip %q: expected %q, got %q", tc.in, tc.want, got)
		}
		// Idempotence: a second pass must not change the result.
		if again := model.JoinTags(model.SplitTags(got)); again != got {
			t.Fatalf("tag round-trip %q: not idempotent (%q -> %q)", tc.in, got, again)
		}
	}
}

func TestTaskDraft_PayloadDropsAbsentFields(t *testing.T) {
	p := TaskDraft{Title: Ptr("Buy milk")}.payload()
	if len(p) != 1 {
		t.Fatalf("expected 1 field, got %d: %v", len(p), p)
	}
	if p["title"] != "Buy milk" {
		t.Fatalf("expected title in payload, got %v", p)
	}
	for _, k := range []string{"status", "tags", "due_date", "user_id", "user"} {
		if _, ok := p[k]; ok {
			t.Fatalf("expected %q to be absent from payload, got %v", k, p)
		}
	}
}

func TestTaskDraft_PayloadTransforms(t *testing.T) {
	st := model.StatusInProgress
	p := TaskDraft{
		Status:  &st,
		Tags:    Ptr(" home , urgent ,"),
		DueDate: Ptr("2024-05-01"),
		UserID:  Ptr(7),
	}.payload()

	if p["status"] != "in-progress" {
		t.Fatalf("expected wire status in-progress, got %v", p["status"])
	}
	if !reflect.DeepEqual(p["tags"], []string{"home", "urgent"}) {
		t.Fatalf("expected trimmed tag list, got %v", p["tags"])
	}
	if p["due_date"] != "2024-05-01" {
		t.Fatalf("expected due_date passthrough, got %v", p["due_date"])
	}
	if p["user_id"] != 7 {
		t.Fatalf("expected user_id 7, got %v", p["user_id"])
	}
}

func TestTaskDraft_ExplicitClears(t *testing.T) {
	p := TaskDraft{Tags: Ptr(""), DueDate: Ptr("")}.payload()
	tags, ok := p["tags"].([]string)
	if !ok || len(tags) != 0 {
		t.Fatalf("expected empty tag list to clear tags, got %v", p["tags"])
	}
	if v, ok := p["due_date"]; !ok || v != nil {
		t.Fatalf("expected explicit null due_date, got %v", v)
	}
}

func TestTaskQuery(t *testing.T) {
	cases := []struct {
		name string
		in   model.TaskFilters
		want string
	}{
		{"empty", model.TaskFilters{}, ""},
		{"all sentinel omits status", model.TaskFilters{Status: model.StatusAll}, ""},
		{"status maps to wire token", model.TaskFilters{Status: string(model.StatusToDo)}, "status=pending"},
		{
			"full",
			model.TaskFilters{Search: "urgent", Status: string(model.StatusCompleted), SortBy: "due_date", SortDir: model.SortAsc, PerPage: 50},
			"per_page=50&search=urgent&sort_by=due_date&sort_dir=asc&status=completed",
		},
		{"blank fields skipped", model.TaskFilters{Search: "  ", Tags: "", DueFrom: "2024-01-01"}, "due_from=2024-01-01"},
	}
	for _, tc := range cases {
		if got := taskQuery(tc.in).Encode(); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestWireTaskNormalization(t *testing.T) {
	wt := wireTask{
		ID:      3,
		Title:   "Ship it",
		Status:  "In-Progress",
		Tags:    []wireTag{{ID: 1, Name: "home"}, {ID: 2, Name: "urgent"}},
		UserID:  9,
		User:    &model.OwnerSummary{ID: 9, Name: "Ada"},
		DueDate: "2024-05-01 00:00:00",
	}
	task := wt.task()
	if task.Status != model.StatusInProgress {
		t.Fatalf("expected status %q, got %q", model.StatusInProgress, task.Status)
	}
	if task.Tags != "home, urgent" {
		t.Fatalf("expected joined tags, got %q", task.Tags)
	}
	if task.Owner == nil || task.Owner.Name != "Ada" {
		t.Fatalf("expected owner summary preserved inbound, got %v", task.Owner)
	}
	if task.DueDateOnly() != "2024-05-01" {
		t.Fatalf("expected date-only due date, got %q", task.DueDateOnly())
	}
}

func TestWireUserRolePrecedence(t *testing.T) {
	cases := []struct {
		roles []string
		want  model.Role
	}{
		{nil, model.RoleUser},
		{[]string{}, model.RoleUser},
		{[]string{"user"}, model.RoleUser},
		{[]string{"admin"}, model.RoleAdmin},
		// Admin wins regardless of position.
		{[]string{"user", "admin"}, model.RoleAdmin},
		{[]string{"Admin"}, model.RoleAdmin},
		{[]string{"moderator"}, model.RoleUser},
	}
	for _, tc := range cases {
		got := wireUser{Roles: tc.roles}.identity().Role
		if got != tc.want {
			t.Fatalf("roles %v: expected %q, got %q", tc.roles, tc.want, got)
		}
	}
}
