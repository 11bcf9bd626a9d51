package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"taskflow-client/internal/apperror"
	"taskflow-client/internal/collection"
	"taskflow-client/internal/entity"

	"github.com/fatih/color"
)

var (
	headColor = color.New(color.FgCyan, color.Bold)
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed)
	dimColor  = color.New(color.Faint)
)

func statusColor(status entity.TaskStatus) *color.Color {
	switch status {
	case entity.TaskStatusCompleted:
		return okColor
	case entity.TaskStatusInProgress:
		return warnColor
	}
	return dimColor
}

func renderError(w io.Writer, err error) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		errColor.Fprintf(w, "✗ %s\n", appErr.UserMessage())
		for _, f := range appErr.Fields {
			errColor.Fprintf(w, "  %s %s\n", f.Field, f.Message)
		}
		return
	}
	errColor.Fprintf(w, "✗ %v\n", err)
}

func renderProjects(w io.Writer, projects []entity.Project, capacity collection.Capacity, pendingDelete func(string) bool) {
	headColor.Fprintf(w, "Projects (%d/%d, %d%% used)\n", capacity.Used, capacity.Limit, capacity.Percent)
	if len(projects) == 0 {
		dimColor.Fprintln(w, "  No projects yet. Use `new` to create one.")
		return
	}
	for _, p := range projects {
		marker := " "
		if pendingDelete(p.Id) {
			marker = "!"
		}
		fmt.Fprintf(w, " %s %s  %s\n", marker, p.Id, p.Title)
		if p.Description != "" {
			dimColor.Fprintf(w, "      %s\n", p.Description)
		}
	}
	if capacity.Available == 0 {
		warnColor.Fprintf(w, "  Limit reached (%d/%d)\n", capacity.Used, capacity.Limit)
	}
}

func renderTasks(w io.Writer, title string, tasks []entity.Task, stats entity.TaskStats, pendingDelete func(string) bool) {
	headColor.Fprintf(w, "%s\n", title)
	fmt.Fprintf(w, "  %d total, %d completed, %d in progress, %d pending\n",
		stats.Total, stats.Completed, stats.InProgress, stats.Pending)
	if len(tasks) == 0 {
		dimColor.Fprintln(w, "  No tasks yet. Use `create <title> | <description>` to add one.")
		return
	}
	for _, t := range tasks {
		marker := " "
		if pendingDelete(t.Id) {
			marker = "!"
		}
		fmt.Fprintf(w, " %s %s  %-40s ", marker, t.Id, t.Title)
		statusColor(t.Status).Fprintf(w, "[%s]\n", t.Status)
	}
}

func renderProfile(w io.Writer, user *entity.UserProfile) {
	headColor.Fprintln(w, "Profile")
	fmt.Fprintf(w, "  Name:   %s\n", user.Name)
	fmt.Fprintf(w, "  Email:  %s\n", user.Email)
	fmt.Fprintf(w, "  Role:   %s\n", user.DisplayRole())
	if !user.CreatedAt.IsZero() {
		fmt.Fprintf(w, "  Joined: %s\n", user.CreatedAt.Format("2006-01-02"))
	}
}

func renderDraft(w io.Writer, fields map[string]string) {
	keys := []string{"title", "description", "status"}
	for _, k := range keys {
		if v, ok := fields[k]; ok {
			fmt.Fprintf(w, "  %-12s %s\n", k+":", v)
		}
	}
	dimColor.Fprintln(w, "  set <field> <value> | save | discard")
}

// splitSegments splits "a b | c d" into ["a b", "c d"].
func splitSegments(args []string) []string {
	joined := strings.Join(args, " ")
	parts := strings.Split(joined, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func levelColor(level string) *color.Color {
	switch level {
	case "ERROR", "DPANIC", "PANIC", "FATAL":
		return errColor
	case "WARN":
		return warnColor
	case "INFO":
		return okColor
	}
	return dimColor
}
