package catalog

import (
	"fmt"
	"strings"
)

// CollisionPolicy decides which id survives when two ID-file lines
// normalize to the same title.
type CollisionPolicy string

const (
	// LastWins keeps the id read last, in manifest then line order.
	LastWins CollisionPolicy = "last_wins"
	// FirstWins keeps the id read first.
	FirstWins CollisionPolicy = "first_wins"
)

// ParseCollisionPolicy maps a configuration value to a policy.
func ParseCollisionPolicy(value string) (CollisionPolicy, error) {
	switch CollisionPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", LastWins:
		return LastWins, nil
	case FirstWins:
		return FirstWins, nil
	default:
		return "", fmt.Errorf("unknown id collision policy %q", value)
	}
}

// Collision records two different ids claiming the same normalized title.
type Collision struct {
	Key      string `json:"key"`
	Kept     string `json:"kept"`
	Dropped  string `json:"dropped"`
	Source   string `json:"source,omitempty"`
	Previous string `json:"previous_source,omitempty"`
}

// IDMap maps normalized titles to external player ids.
type IDMap struct {
	policy     CollisionPolicy
	ids        map[string]string
	sources    map[string]string
	collisions []Collision
}

// NewIDMap returns an empty map applying policy on collisions.
func NewIDMap(policy CollisionPolicy) *IDMap {
	if policy == "" {
		policy = LastWins
	}
	return &IDMap{
		policy:  policy,
		ids:     map[string]string{},
		sources: map[string]string{},
	}
}

// Policy returns the collision policy in effect.
func (m *IDMap) Policy() CollisionPolicy { return m.policy }

// Len returns the number of distinct keys.
func (m *IDMap) Len() int { return len(m.ids) }

// Add stores id under the normalized form of title. It returns false when
// the line carries no usable key or id.
func (m *IDMap) Add(title, id, source string) bool {
	key := NormalizeTitle(title)
	id = strings.TrimSpace(id)
	if key == "" || id == "" {
		return false
	}
	existing, ok := m.ids[key]
	if !ok {
		m.ids[key] = id
		m.sources[key] = source
		return true
	}
	if existing == id {
		return true
	}
	collision := Collision{Key: key, Source: source, Previous: m.sources[key]}
	switch m.policy {
	case FirstWins:
		collision.Kept, collision.Dropped = existing, id
	default:
		collision.Kept, collision.Dropped = id, existing
		m.ids[key] = id
		m.sources[key] = source
	}
	m.collisions = append(m.collisions, collision)
	return true
}

// AddFile parses tab-separated "<id>\t<title>" lines. Lines with fewer than
// two fields, an empty id, or an empty normalized title are skipped.
func (m *IDMap) AddFile(text, source string) (added, skipped int) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, 0
	}
	for _, line := range strings.Split(text, "\n") {
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			skipped++
			continue
		}
		if m.Add(parts[1], parts[0], source) {
			added++
		} else {
			skipped++
		}
	}
	return added, skipped
}

// Lookup resolves a track title to its id.
func (m *IDMap) Lookup(title string) (string, bool) {
	key := NormalizeTitle(title)
	if key == "" {
		return "", false
	}
	id, ok := m.ids[key]
	return id, ok
}

// Collisions returns every recorded collision in the order encountered.
func (m *IDMap) Collisions() []Collision {
	out := make([]Collision, len(m.collisions))
	copy(out, m.collisions)
	return out
}
