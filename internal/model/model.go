package model

import "strings"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Status is the display label shown in the UI. The wire tokens exchanged
// with the backend ("pending", "in-progress", "completed") live in the api
// package; everything above the adapter speaks display labels only.
type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// StatusAll is the filter sentinel meaning "do not filter by status".
const StatusAll = "All"

func Statuses() []Status {
	return []Status{StatusToDo, StatusInProgress, StatusCompleted}
}

// Identity is the normalized profile of an authenticated user.
type Identity struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        Role     `json:"role"`
	Roles       []string `json:"roles,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
}

// OwnerSummary is the id/name pair the task list endpoint embeds per task.
// It is server-derived and read-only; the adapter strips it from every
// outbound payload.
type OwnerSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`
	// DueDate is a date or datetime string as the server reports it.
	DueDate string `json:"due_date,omitempty"`
	// Tags is the comma-joined display string ("home, urgent").
	Tags      string        `json:"tags,omitempty"`
	UserID    int           `json:"user_id"`
	CreatedAt string        `json:"created_at"`
	Owner     *OwnerSummary `json:"user,omitempty"`
}

// DueDateOnly truncates a server due date to its date portion for form
// prefill ("2024-05-01 00:00:00" => "2024-05-01").
func (t Task) DueDateOnly() string {
	d := strings.TrimSpace(t.DueDate)
	if i := strings.IndexAny(d, " T"); i >= 0 {
		return d[:i]
	}
	return d
}

type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// TaskFilters is transient list-view state; zero fields are omitted from
// the query string. Status is a display label or StatusAll.
type TaskFilters struct {
	Search  string
	Status  string
	Tags    string
	DueFrom string
	DueTo   string
	SortBy  string
	SortDir SortDir
	PerPage int
}

// SplitTags turns a comma-joined display string into trimmed, non-empty
// tokens. The inverse of JoinTags up to whitespace.
func SplitTags(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func JoinTags(tags []string) string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ", ")
}
