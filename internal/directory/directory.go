// Package directory filters, searches and orders the episode catalogue.
//
// The package is pure: callers hand it an immutable slice of episodes and a
// query, and get back a freshly allocated result. Engine wraps the same
// functions with the per-session query state used by listing pages and the CLI.
package directory

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AllTopics is the topic sentinel that disables topic filtering.
const AllTopics = "all"

// SortOrder selects the ordering applied to filtered episodes.
type SortOrder string

const (
	SortNewest                  SortOrder = "newest"
	SortOldest                  SortOrder = "oldest"
	SortEpisodeNumberDescending SortOrder = "episode_number_desc"
)

// sortAliases maps accepted spellings onto a SortOrder. "views" is what the
// listing page historically sent for the episode-number ordering.
var sortAliases = map[string]SortOrder{
	"":                    SortNewest,
	"newest":              SortNewest,
	"oldest":              SortOldest,
	"episode_number_desc": SortEpisodeNumberDescending,
	"episode_number":      SortEpisodeNumberDescending,
	"views":               SortEpisodeNumberDescending,
}

// ParseSortOrder resolves a user supplied sort value. An empty value yields
// SortNewest.
func ParseSortOrder(s string) (SortOrder, bool) {
	order, ok := sortAliases[strings.ToLower(strings.TrimSpace(s))]
	return order, ok
}

// Episode is the read-only view of an episode the directory works with.
type Episode struct {
	ID            string
	Title         string
	Description   string
	EpisodeNumber int
	PublishedAt   time.Time
	Topics        []string
	GuestName     string
	GuestCompany  string
}

// HasTopic reports whether the episode carries topic exactly.
func (e Episode) HasTopic(topic string) bool {
	return slices.Contains(e.Topics, topic)
}

// Query holds the user controlled parameters of a directory listing.
// The zero value matches every episode, newest first.
type Query struct {
	SearchText string
	// SelectedTopic "" behaves like AllTopics
	SelectedTopic string
	// SortOrder "" behaves like SortNewest
	SortOrder SortOrder
}

// DefaultQuery returns a query that matches everything, newest first.
func DefaultQuery() Query {
	return Query{
		SelectedTopic: AllTopics,
		SortOrder:     SortNewest,
	}
}

// ComputeTopics returns the distinct topics across episodes in ascending
// byte order.
func ComputeTopics(episodes []Episode) []string {
	seen := make(map[string]struct{})
	topics := make([]string, 0)
	for _, ep := range episodes {
		for _, topic := range ep.Topics {
			if _, ok := seen[topic]; ok {
				continue
			}
			seen[topic] = struct{}{}
			topics = append(topics, topic)
		}
	}
	slices.Sort(topics)
	return topics
}

// FilterAndSort returns the episodes matching q in the order q asks for.
// The input slice is never reordered; an empty match yields an empty slice.
func FilterAndSort(episodes []Episode, q Query) []Episode {
	lower := cases.Lower(language.Und)
	needle := lower.String(q.SearchText)
	topic := q.SelectedTopic
	if topic == "" {
		topic = AllTopics
	}

	matched := make([]Episode, 0, len(episodes))
	for _, ep := range episodes {
		if !matchesText(lower, ep, needle) {
			continue
		}
		if topic != AllTopics && !ep.HasTopic(topic) {
			continue
		}
		matched = append(matched, ep)
	}

	switch q.SortOrder {
	case SortNewest, "":
		slices.SortStableFunc(matched, func(a, b Episode) int {
			return b.PublishedAt.Compare(a.PublishedAt)
		})
	case SortOldest:
		slices.SortStableFunc(matched, func(a, b Episode) int {
			return a.PublishedAt.Compare(b.PublishedAt)
		})
	case SortEpisodeNumberDescending:
		slices.SortStableFunc(matched, func(a, b Episode) int {
			return b.EpisodeNumber - a.EpisodeNumber
		})
	}
	// Unknown orders keep input order.
	return matched
}

func matchesText(lower cases.Caser, ep Episode, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(lower.String(ep.Title), needle) ||
		strings.Contains(lower.String(ep.Description), needle) ||
		strings.Contains(lower.String(ep.GuestName), needle)
}

// Related returns up to limit episodes other than current that share at
// least one topic with it, newest first.
func Related(episodes []Episode, current Episode, limit int) []Episode {
	related := make([]Episode, 0, max(limit, 0))
	if limit <= 0 || len(current.Topics) == 0 {
		return related
	}

	candidates := FilterAndSort(episodes, DefaultQuery())
	for _, ep := range candidates {
		if ep.ID == current.ID {
			continue
		}
		if !slices.ContainsFunc(current.Topics, ep.HasTopic) {
			continue
		}
		related = append(related, ep)
		if len(related) == limit {
			break
		}
	}
	return related
}
