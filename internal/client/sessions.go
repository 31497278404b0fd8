package client

import (
	"context"
	"net/http"
	"time"

	"github.com/2beens/fitrack/internal/workouts/sessions"
	"github.com/2beens/fitrack/internal/workouts/stats"
)

func (c *Client) ListSessions(ctx context.Context) ([]sessions.WorkoutSession, error) {
	var resp sessions.ListResponse
	if _, err := c.do(ctx, http.MethodGet, "/api/workout-sessions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sessions, nil
}

// GetActiveSession returns nil without an error when no session is
// currently active.
func (c *Client) GetActiveSession(ctx context.Context) (*sessions.WorkoutSession, error) {
	var session sessions.WorkoutSession
	statusCode, err := c.do(ctx, http.MethodGet, "/api/workout-sessions/active", nil, &session)
	if err != nil {
		return nil, err
	}
	if statusCode == http.StatusNoContent {
		return nil, nil
	}
	return &session, nil
}

// StartSession starts a new workout session. Callers wanting to honor
// the single-active-session rule check GetActiveSession first - the
// check is advisory only, a concurrent start from another device can
// still slip through.
func (c *Client) StartSession(ctx context.Context, title, activityType string) (*sessions.WorkoutSession, error) {
	var session sessions.WorkoutSession
	_, err := c.do(ctx, http.MethodPost, "/api/workout-sessions", sessions.StartRequest{
		Title:        title,
		ActivityType: activityType,
	}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// CompleteSession ends a session. A zero endedAt leaves the end
// timestamp to the backend.
func (c *Client) CompleteSession(ctx context.Context, id string, endedAt time.Time) (*sessions.WorkoutSession, error) {
	completeReq := sessions.CompleteRequest{}
	if !endedAt.IsZero() {
		completeReq.EndedAt = &endedAt
	}

	var session sessions.WorkoutSession
	_, err := c.do(ctx, http.MethodPost, "/api/workout-sessions/"+id+"/complete", completeReq, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) GetSession(ctx context.Context, id string) (*sessions.WorkoutSession, error) {
	var session sessions.WorkoutSession
	if _, err := c.do(ctx, http.MethodGet, "/api/workout-sessions/"+id, nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) Dashboard(ctx context.Context) (*stats.DashboardResponse, error) {
	var dashboard stats.DashboardResponse
	if _, err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}
