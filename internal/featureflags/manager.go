// Package featureflags evaluates the FEATURE_FLAGS configuration string.
package featureflags

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
)

// Flags known to the service.
const (
	MediaUploads = "media_uploads"
	BlogEvents   = "blog_events"
)

type rule struct {
	raw     string
	on      bool
	percent int // -1 when the rule is a plain on/off switch
}

// Manager holds parsed flag rules, e.g. "media_uploads=on,blog_events=25%".
// Unknown values evaluate to off.
type Manager struct {
	rules map[string]rule
}

// NewManager parses a comma-separated name=value list. Malformed pairs are skipped.
func NewManager(raw string) *Manager {
	rules := make(map[string]rule)
	for _, pair := range strings.Split(raw, ",") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		name, value = normalize(name), normalize(value)
		if name == "" || value == "" {
			continue
		}
		rules[name] = parseRule(value)
	}
	return &Manager{rules: rules}
}

func parseRule(value string) rule {
	r := rule{raw: value, percent: -1}
	switch value {
	case "on", "true", "1":
		r.on = true
		return r
	case "off", "false", "0":
		return r
	}
	if pct, ok := strings.CutSuffix(value, "%"); ok {
		if n, err := strconv.Atoi(pct); err == nil {
			r.percent = min(max(n, 0), 100)
		}
	}
	return r
}

// Enabled reports whether name is on for userID. Percentage rollouts are
// deterministic per user and never include the anonymous user unless at 100%.
func (m *Manager) Enabled(name string, userID uint) bool {
	if m == nil {
		return false
	}
	r, ok := m.rules[normalize(name)]
	if !ok {
		return false
	}
	switch {
	case r.percent < 0:
		return r.on
	case r.percent == 0:
		return false
	case r.percent == 100:
		return true
	case userID == 0:
		return false
	default:
		return bucket(name, userID) < r.percent
	}
}

// Names lists the configured flags in order.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.rules))
	for name := range m.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Raw returns the configured values as written.
func (m *Manager) Raw() map[string]string {
	out := make(map[string]string, len(m.rules))
	for name, r := range m.rules {
		out[name] = r.raw
	}
	return out
}

// Snapshot evaluates every flag for one user.
func (m *Manager) Snapshot(userID uint) map[string]bool {
	out := make(map[string]bool, len(m.rules))
	for name := range m.rules {
		out[name] = m.Enabled(name, userID)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func bucket(name string, userID uint) int {
	h := fnv.New32a()
	_, _ = fmt.Fprintf(h, "%s:%d", normalize(name), userID)
	return int(h.Sum32() % 100)
}
