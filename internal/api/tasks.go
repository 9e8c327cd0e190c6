package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"taskdeck/internal/model"
)

// Status wire tokens. Display labels never cross the wire.
var statusToWireMap = map[model.Status]string{
	model.StatusToDo:       "pending",
	model.StatusInProgress: "in-progress",
	model.StatusCompleted:  "completed",
}

var statusFromWireMap = map[string]model.Status{
	"pending":     model.StatusToDo,
	"in-progress": model.StatusInProgress,
	"completed":   model.StatusCompleted,
}

func statusToWire(s model.Status) string {
	if tok, ok := statusToWireMap[s]; ok {
		return tok
	}
	return "pending"
}

// statusFromWire maps a wire token back to a display label. Unrecognized
// tokens render as To Do rather than leaking raw tokens into the UI.
func statusFromWire(tok string) model.Status {
	if s, ok := statusFromWireMap[strings.ToLower(strings.TrimSpace(tok))]; ok {
		return s
	}
	return model.StatusToDo
}

type wireTag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type wireTask struct {
	ID          int                 `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      string              `json:"status"`
	DueDate     string              `json:"due_date"`
	Tags        []wireTag           `json:"tags"`
	UserID      int                 `json:"user_id"`
	CreatedAt   string              `json:"created_at"`
	User        *model.OwnerSummary `json:"user"`
}

func (t wireTask) task() model.Task {
	names := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		names = append(names, tag.Name)
	}
	return model.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      statusFromWire(t.Status),
		DueDate:     t.DueDate,
		Tags:        model.JoinTags(names),
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
		Owner:       t.User,
	}
}

// TaskDraft is a partial outbound task. Nil fields are dropped from the
// payload entirely so partial updates do not clobber unspecified fields; a
// non-nil empty Tags or DueDate clears the value on the server. The
// embedded owner summary has no slot here: it is read-only and never
// transmitted.
type TaskDraft struct {
	Title       *string
	Description *string
	Status      *model.Status
	DueDate     *string
	Tags        *string
	UserID      *int
}

func (d TaskDraft) payload() map[string]any {
	p := map[string]any{}
	if d.Title != nil {
		p["title"] = *d.Title
	}
	if d.Description != nil {
		p["description"] = *d.Description
	}
	if d.Status != nil {
		p["status"] = statusToWire(*d.Status)
	}
	if d.DueDate != nil {
		if s := strings.TrimSpace(*d.DueDate); s != "" {
			p["due_date"] = s
		} else {
			p["due_date"] = nil
		}
	}
	if d.Tags != nil {
		// Splitting an empty string yields an empty list, which clears tags.
		p["tags"] = model.SplitTags(*d.Tags)
	}
	if d.UserID != nil {
		p["user_id"] = *d.UserID
	}
	return p
}

// taskQuery builds the list query string from non-empty filter fields. The
// status parameter is omitted entirely for the "All" sentinel.
func taskQuery(f model.TaskFilters) url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v = strings.TrimSpace(v); v != "" {
			q.Set(k, v)
		}
	}
	set("search", f.Search)
	set("tags", f.Tags)
	set("due_from", f.DueFrom)
	set("due_to", f.DueTo)
	set("sort_by", f.SortBy)
	set("sort_dir", string(f.SortDir))
	if f.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(f.PerPage))
	}
	if s := strings.TrimSpace(f.Status); s != "" && s != model.StatusAll {
		q.Set("status", statusToWire(model.Status(s)))
	}
	return q
}

// ListTasks returns the caller's visible tasks: own tasks for users, all
// tasks for admins. Scoping is the server's decision; the client sends the
// same request either way.
func (c *Client) ListTasks(ctx context.Context, f model.TaskFilters) ([]model.Task, error) {
	var resp struct {
		Data []wireTask `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/tasks", taskQuery(f), nil, &resp); err != nil {
		return nil, err
	}
	tasks := make([]model.Task, 0, len(resp.Data))
	for _, wt := range resp.Data {
		tasks = append(tasks, wt.task())
	}
	return tasks, nil
}

func (c *Client) FetchTask(ctx context.Context, id int) (model.Task, error) {
	var wt wireTask
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil, nil, &wt); err != nil {
		return model.Task{}, err
	}
	return wt.task(), nil
}

func (c *Client) CreateTask(ctx context.Context, draft TaskDraft) (model.Task, error) {
	var wt wireTask
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, draft.payload(), &wt); err != nil {
		return model.Task{}, err
	}
	return wt.task(), nil
}

func (c *Client) UpdateTask(ctx context.Context, id int, draft TaskDraft) (model.Task, error) {
	var wt wireTask
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), nil, draft.payload(), &wt); err != nil {
		return model.Task{}, err
	}
	return wt.task(), nil
}

// DeleteTask returns nothing on success. Confirmation is the caller's job;
// the adapter fires exactly once.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil, nil)
}
