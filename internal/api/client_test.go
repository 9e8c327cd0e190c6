package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskdeck/internal/model"
)

func newTestClient(t *testing.T, h http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	c, err := New(ts.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	return c, ts
}

func TestLogin_EchoesCSRFTokenFromCookie(t *testing.T) {
	var loginHeader string
	mux := http.NewServeMux()
	mux.HandleFunc("/sanctum/csrf-cookie", func(w http.ResponseWriter, r *http.Request) {
		// The server URL-encodes the cookie value; the client must decode it
		// before echoing.
		http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: "abc%3D%3D", Path: "/"})
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		loginHeader = r.Header.Get("X-XSRF-TOKEN")
		json.NewEncoder(w).Encode(wireUser{ID: 1, Name: "Ada", Email: "a@b.com", Roles: []string{"user"}})
	})

	c, _ := newTestClient(t, mux)
	id, err := c.Login(context.Background(), Credentials{Email: "a@b.com", Password: "x"})
	if err != nil {
		t.Fatalf("Login: unexpected error: %v", err)
	}
	if loginHeader != "abc==" {
		t.Fatalf("expected decoded CSRF header %q, got %q", "abc==", loginHeader)
	}
	if id.Role != model.RoleUser || id.Email != "a@b.com" {
		t.Fatalf("expected normalized identity, got %+v", id)
	}
}

func TestDo_NoCSRFHeaderWithoutCookie(t *testing.T) {
	var sawHeader bool
	mux := http.NewServeMux()
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["X-Xsrf-Token"]
		json.NewEncoder(w).Encode(map[string]any{"data": []wireTask{}})
	})
	c, _ := newTestClient(t, mux)
	if _, err := c.ListTasks(context.Background(), model.TaskFilters{}); err != nil {
		t.Fatalf("ListTasks: unexpected error: %v", err)
	}
	if sawHeader {
		t.Fatalf("expected no CSRF header before the cookie exists")
	}
}

func TestDo_UnauthorizedNormalization(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Unauthenticated."})
	})
	c, _ := newTestClient(t, mux)

	hookFired := 0
	c.OnUnauthorized(func() { hookFired++ })

	_, err := c.ListTasks(context.Background(), model.TaskFilters{})
	if err == nil {
		t.Fatalf("expected error on 401")
	}
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	// The fixed message supersedes the server's detail.
	if err.Error() != SessionExpiredMessage {
		t.Fatalf("expected %q, got %q", SessionExpiredMessage, err.Error())
	}
	if hookFired != 1 {
		t.Fatalf("expected unauthorized hook to fire once, got %d", hookFired)
	}
}

func TestDo_ServerMessageSurfacedVerbatim(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "The email field is required."})
	})
	mux.HandleFunc("/sanctum/csrf-cookie", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	c, _ := newTestClient(t, mux)

	_, err := c.Login(context.Background(), Credentials{})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if err.Error() != "The email field is required." {
		t.Fatalf("expected server message verbatim, got %q", err.Error())
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnprocessableEntity {
		t.Fatalf("expected typed *Error with status 422, got %v", err)
	}
}

func TestDo_FallbackMessageWithoutBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	c, _ := newTestClient(t, mux)

	_, err := c.ListTasks(context.Background(), model.TaskFilters{})
	if err == nil {
		t.Fatalf("expected error on 500")
	}
	if err.Error() == "" {
		t.Fatalf("expected a non-empty fallback message")
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Fatalf("500 must not normalize to unauthorized")
	}
}

func TestListTasks_QueryAndNormalization(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("search") != "urgent" || q.Get("status") != "pending" || q.Get("sort_dir") != "desc" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if q.Has("tags") || q.Has("due_from") {
			t.Errorf("expected empty filter fields to be omitted: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(map[string]any{"data": []wireTask{
			{ID: 1, Title: "A", Status: "completed", Tags: []wireTag{{Name: "x"}, {Name: "y"}}},
			{ID: 2, Title: "B", Status: "whatever"},
		}})
	})
	c, _ := newTestClient(t, mux)

	tasks, err := c.ListTasks(context.Background(), model.TaskFilters{
		Search:  "urgent",
		Status:  string(model.StatusToDo),
		SortBy:  "created_at",
		SortDir: model.SortDesc,
	})
	if err != nil {
		t.Fatalf("ListTasks: unexpected error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Status != model.StatusCompleted || tasks[0].Tags != "x, y" {
		t.Fatalf("expected normalized task, got %+v", tasks[0])
	}
	if tasks[1].Status != model.StatusToDo {
		t.Fatalf("expected unknown wire status to default to To Do, got %q", tasks[1].Status)
	}
}

func TestUpdateTask_StripsOwnerAndDropsUnsetFields(t *testing.T) {
	var payload map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/tasks/5", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		json.NewEncoder(w).Encode(wireTask{ID: 5, Title: "New title", Status: "pending"})
	})
	c, _ := newTestClient(t, mux)

	_, err := c.UpdateTask(context.Background(), 5, TaskDraft{Title: Ptr("New title")})
	if err != nil {
		t.Fatalf("UpdateTask: unexpected error: %v", err)
	}
	if len(payload) != 1 || payload["title"] != "New title" {
		t.Fatalf("expected only the title field outbound, got %v", payload)
	}
	if _, ok := payload["user"]; ok {
		t.Fatalf("expected owner summary never transmitted, got %v", payload)
	}
}

func TestDeleteTask_NoPayload(t *testing.T) {
	deleted := false
	mux := http.NewServeMux()
	mux.HandleFunc("/tasks/9", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	})
	c, _ := newTestClient(t, mux)

	if err := c.DeleteTask(context.Background(), 9); err != nil {
		t.Fatalf("DeleteTask: unexpected error: %v", err)
	}
	if !deleted {
		t.Fatalf("expected delete request to be issued")
	}
}

func TestFetchIdentity_TransportFailureNormalized(t *testing.T) {
	c, ts := newTestClient(t, http.NewServeMux())
	ts.Close()

	_, err := c.FetchIdentity(context.Background())
	if err == nil {
		t.Fatalf("expected transport error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected normalized *Error, got %T: %v", err, err)
	}
	if apiErr.Status != 0 {
		t.Fatalf("expected status 0 for transport failure, got %d", apiErr.Status)
	}
}
