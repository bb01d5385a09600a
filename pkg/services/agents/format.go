package agents

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

const (
	NotAssessed  = "Not assessed"
	NoneReported = "None reported"
)

var leakedPlaceholder = regexp.MustCompile(`(?i:\b(?:undefined|null)\b)|<nil>|\bNaN\b`)

// Sanitize replaces any leaked empty-value marker with the explicit placeholder
func Sanitize(content string) string {
	return leakedPlaceholder.ReplaceAllString(content, NotAssessed)
}

// sanitizeAll returns a sanitized copy of messages, nil when there are none
func sanitizeAll(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, len(messages))
	for i, m := range messages {
		out[i] = Sanitize(m)
	}
	return out
}

func valueOr(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return strings.TrimSpace(s)
}

func listOr(items []string, placeholder string) string {
	var kept []string
	for _, item := range items {
		if hasText(item) {
			kept = append(kept, strings.TrimSpace(item))
		}
	}
	if len(kept) == 0 {
		return placeholder
	}
	return strings.Join(kept, ", ")
}

// dedupeStrings keeps the first occurrence of each item, compared case-insensitively
func dedupeStrings(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

func containsFold(items []string, target string) bool {
	for _, item := range items {
		if strings.EqualFold(strings.TrimSpace(item), strings.TrimSpace(target)) {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func degrees(v *float64) string {
	if v == nil {
		return NotAssessed
	}
	return number(*v) + "°"
}

func score(v *float64) string {
	if v == nil {
		return NotAssessed
	}
	return number(*v) + "/10"
}

func number(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

// writer accumulates section content line by line
type writer struct {
	b strings.Builder
}

func (w *writer) line(format string, args ...any) {
	if len(args) == 0 {
		w.b.WriteString(format)
	} else {
		fmt.Fprintf(&w.b, format, args...)
	}
	w.b.WriteByte('\n')
}

func (w *writer) heading(title string) {
	if w.b.Len() > 0 {
		w.b.WriteByte('\n')
	}
	w.line("%s:", title)
}

func (w *writer) bullets(items []string, placeholder string) {
	written := 0
	for _, item := range items {
		if !hasText(item) {
			continue
		}
		w.line("- %s", strings.TrimSpace(item))
		written++
	}
	if written == 0 && placeholder != "" {
		w.line("- %s", placeholder)
	}
}

func (w *writer) field(label, value string) {
	w.line("%s: %s", label, valueOr(value, NotAssessed))
}

func (w *writer) String() string {
	return strings.TrimRight(w.b.String(), "\n")
}
