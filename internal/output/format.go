// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskboard/internal/service"
)

// NoTasks is printed when a listing has nothing to show.
const NoTasks = "no tasks"

// statusWidth fits the longest status literal.
const statusWidth = len(service.StatusInProgress)

// FormatTask formats a numbered task line.
// Format: "{N:>4}  {STATUS:<11}  {TITLE}\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %-*s  %s\n", num, statusWidth, task.Status, normalizeLine(task.Title))
}

// FormatTasks formats a listing, or NoTasks when list is empty.
func FormatTasks(w io.Writer, list []service.Task) {
	if len(list) == 0 {
		fmt.Fprintln(w, NoTasks)
		return
	}
	for i, task := range list {
		FormatTask(w, i+1, task)
	}
}

// FormatTaskDetail prints every field of a task, one per line.
func FormatTaskDetail(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "ID:          %s\n", task.ID)
	fmt.Fprintf(w, "Title:       %s\n", normalizeLine(task.Title))
	fmt.Fprintf(w, "Status:      %s\n", task.Status)
	fmt.Fprintf(w, "Description: %s\n", normalizeBlock(task.Description))
}

// FormatUser formats a signed-in identity as "name <email>".
// A missing user prints as "(unknown user)".
func FormatUser(w io.Writer, user *service.User) {
	fmt.Fprintln(w, userLabel(user))
}

// FormatSummary prints the signed-in user followed by per-status counts.
func FormatSummary(w io.Writer, user *service.User, counts map[service.Status]int) {
	fmt.Fprintf(w, "Signed in as %s\n", userLabel(user))
	total := 0
	for _, s := range service.Statuses {
		fmt.Fprintf(w, "  %-*s  %d\n", statusWidth, s, counts[s])
		total += counts[s]
	}
	fmt.Fprintf(w, "  %-*s  %d\n", statusWidth, "Total", total)
}

func userLabel(user *service.User) string {
	if user == nil {
		return "(unknown user)"
	}
	name := strings.TrimSpace(user.Name)
	if name == "" {
		name = user.ID
	}
	if user.Email == "" {
		return name
	}
	return fmt.Sprintf("%s <%s>", name, user.Email)
}

// normalizeLine makes a value printable on one line.
// - Empty or whitespace-only values become "(untitled)"
// - Newlines are replaced with spaces
func normalizeLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	if strings.TrimSpace(s) == "" {
		return "(untitled)"
	}
	return s
}

// normalizeBlock indents continuation lines under the detail column.
func normalizeBlock(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", "\n             ")
}
