package stats

import (
	"sort"
	"time"

	"github.com/2beens/fitrack/internal/workouts/sessions"
	"github.com/2beens/fitrack/pkg"
)

// DefaultStreakRiskHour is the local hour after which a workout-free
// day starts counting as a streak at risk.
const DefaultStreakRiskHour = 18

// Calendar derives the planning view data from a session list: sessions
// grouped per day, the currently active session, and the streak-at-risk
// nudge. It holds no state of its own besides configuration.
type Calendar struct {
	riskHour int

	// nowFunc is here to be replaceable in tests
	nowFunc func() time.Time
}

func NewCalendar(riskHour int) *Calendar {
	if riskHour <= 0 || riskHour > 23 {
		riskHour = DefaultStreakRiskHour
	}
	return &Calendar{
		riskHour: riskHour,
		nowFunc:  time.Now,
	}
}

// GroupByDay groups completed sessions by the local calendar day of
// their endedAt, most recent first within each day.
func GroupByDay(list []sessions.WorkoutSession) map[string][]sessions.WorkoutSession {
	byDay := make(map[string][]sessions.WorkoutSession)
	for i := range list {
		s := list[i]
		if s.EndedAt == nil || s.EndedAt.IsZero() {
			continue
		}
		dayKey := pkg.DayKey(*s.EndedAt)
		byDay[dayKey] = append(byDay[dayKey], s)
	}

	for dayKey := range byDay {
		daySessions := byDay[dayKey]
		sort.Slice(daySessions, func(i, j int) bool {
			return daySessions[i].EndedAt.After(*daySessions[j].EndedAt)
		})
		byDay[dayKey] = daySessions
	}

	return byDay
}

// ActiveSession returns the most recently started session with no
// endedAt, or nil when all sessions are completed.
func ActiveSession(list []sessions.WorkoutSession) *sessions.WorkoutSession {
	var active *sessions.WorkoutSession
	for i := range list {
		s := &list[i]
		if !s.IsActive() {
			continue
		}
		if active == nil || s.StartedAt.After(active.StartedAt) {
			active = s
		}
	}
	return active
}

// StreakAtRisk reports whether the user should be nudged to work out:
// it is late in the day, nothing was completed today, and no session
// is currently running.
func (c *Calendar) StreakAtRisk(list []sessions.WorkoutSession) bool {
	now := c.nowFunc()
	if now.Hour() < c.riskHour {
		return false
	}
	if ActiveSession(list) != nil {
		return false
	}

	todayKey := pkg.DayKey(now)
	for i := range list {
		s := &list[i]
		if s.EndedAt == nil || s.EndedAt.IsZero() {
			continue
		}
		if pkg.DayKey(*s.EndedAt) == todayKey {
			return false
		}
	}
	return true
}
