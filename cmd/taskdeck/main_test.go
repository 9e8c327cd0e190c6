package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectTaskLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"taskdeck"},
			want: []string{"taskdeck"},
		},
		{
			name: "direct task id first token",
			in:   []string{"taskdeck", "42"},
			want: []string{"taskdeck", "tasks", "show", "42"},
		},
		{
			name: "direct task id after value flag",
			in:   []string{"taskdeck", "--base-url", "http://localhost:8085/api", "42"},
			want: []string{"taskdeck", "--base-url", "http://localhost:8085/api", "tasks", "show", "42"},
		},
		{
			name: "direct task id after flag=value form",
			in:   []string{"taskdeck", "--format=json", "42"},
			want: []string{"taskdeck", "--format=json", "tasks", "show", "42"},
		},
		{
			name: "direct task id after bool flag",
			in:   []string{"taskdeck", "--pretty", "7"},
			want: []string{"taskdeck", "--pretty", "tasks", "show", "7"},
		},
		{
			name: "subcommand untouched",
			in:   []string{"taskdeck", "tasks", "list"},
			want: []string{"taskdeck", "tasks", "list"},
		},
		{
			name: "non-numeric token untouched",
			in:   []string{"taskdeck", "whoami"},
			want: []string{"taskdeck", "whoami"},
		},
		{
			name: "task id after double dash",
			in:   []string{"taskdeck", "--", "42"},
			want: []string{"taskdeck", "--", "tasks", "show", "42"},
		},
		{
			name: "double dash then subcommand untouched",
			in:   []string{"taskdeck", "--", "tasks"},
			want: []string{"taskdeck", "--", "tasks"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectTaskLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewrite: expected %v, got %v", tt.want, got)
			}
		})
	}
}
