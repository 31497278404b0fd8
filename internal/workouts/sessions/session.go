package sessions

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	DefaultActivityType = "lifting"
	DefaultTitleSuffix  = "Session"
)

// WorkoutSession is a single workout of a user. A session with no
// EndedAt is active, i.e. still in progress. DurationMin is set by
// the backend when the session gets completed, never by clients.
type WorkoutSession struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	Title        string     `json:"title,omitempty"`
	ActivityType string     `json:"activityType"`
	StartedAt    time.Time  `json:"startedAt"`
	EndedAt      *time.Time `json:"endedAt,omitempty"`
	DurationMin  *int       `json:"durationMin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (s *WorkoutSession) IsActive() bool {
	return s.EndedAt == nil
}

var titleCaser = cases.Title(language.English)

// TitleFromActivityType makes the default session title, e.g. "Lifting Session".
func TitleFromActivityType(activityType string) string {
	raw := strings.TrimSpace(activityType)
	if raw == "" {
		raw = DefaultActivityType
	}
	return titleCaser.String(strings.ToLower(raw)) + " " + DefaultTitleSuffix
}
