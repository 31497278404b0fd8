package stats

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/fitrack/internal/telemetry/tracing"
	"github.com/2beens/fitrack/internal/workouts/sessions"
	"github.com/2beens/fitrack/pkg"
)

// DashboardMetrics is what the dashboard shows on top: the current
// streak and this week's totals, all derived from completed sessions.
type DashboardMetrics struct {
	StreakDays         int `json:"streakDays"`
	WeeklyWorkoutCount int `json:"weeklyWorkoutCount"`
	WeeklyMinutes      int `json:"weeklyMinutes"`
}

// DashboardResponse is the full payload of the dashboard endpoint:
// the metrics plus the streak-at-risk nudge and the session currently
// in progress, if any.
type DashboardResponse struct {
	DashboardMetrics
	StreakAtRisk  bool                     `json:"streakAtRisk"`
	ActiveSession *sessions.WorkoutSession `json:"activeSession,omitempty"`
}

type sessionsLister interface {
	List(ctx context.Context, userID string) ([]sessions.WorkoutSession, error)
}

type Analyzer struct {
	repo     sessionsLister
	calendar *Calendar

	// nowFunc is here to be replaceable in tests
	nowFunc func() time.Time
}

func NewAnalyzer(repo sessionsLister, calendar *Calendar) *Analyzer {
	return &Analyzer{
		repo:     repo,
		calendar: calendar,
		nowFunc:  time.Now,
	}
}

func (a *Analyzer) Dashboard(ctx context.Context, userID string) (*DashboardResponse, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.dashboard")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	list, err := a.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		DashboardMetrics: ComputeMetrics(list, a.nowFunc()),
		StreakAtRisk:     a.calendar.StreakAtRisk(list),
		ActiveSession:    ActiveSession(list),
	}, nil
}

// ComputeMetrics derives the dashboard metrics from the given sessions.
// Pure function of the session list and "now", so recomputing with the
// same inputs always yields the same result.
//
// The streak counts consecutive calendar days with at least one
// completed session, walking backward from today. A workout-free today
// does not break the streak as long as yesterday had one (one day of
// grace), but any older gap resets the streak to 0.
func ComputeMetrics(list []sessions.WorkoutSession, now time.Time) DashboardMetrics {
	var metrics DashboardMetrics

	weekStart := pkg.StartOfWeek(now)
	completedDays := make(map[string]struct{})
	for i := range list {
		s := &list[i]
		if s.EndedAt == nil {
			continue
		}
		endedAt := *s.EndedAt
		if endedAt.IsZero() {
			continue
		}

		// week boundary is inclusive
		if !endedAt.Before(weekStart) {
			metrics.WeeklyWorkoutCount++
			if s.DurationMin != nil {
				metrics.WeeklyMinutes += *s.DurationMin
			}
		}

		completedDays[pkg.DayKey(endedAt)] = struct{}{}
	}

	day := now
	if _, ok := completedDays[pkg.DayKey(day)]; !ok {
		day = pkg.AddDays(day, -1)
		if _, ok := completedDays[pkg.DayKey(day)]; !ok {
			return metrics
		}
	}

	for {
		if _, ok := completedDays[pkg.DayKey(day)]; !ok {
			break
		}
		metrics.StreakDays++
		day = pkg.AddDays(day, -1)
	}

	return metrics
}
