package client

import (
	"context"
	"net/http"

	"github.com/2beens/fitrack/internal/workouts/plans"
)

// GetPlan returns nil without an error when the day has no plan.
func (c *Client) GetPlan(ctx context.Context, planDate string) (*plans.PlannedWorkout, error) {
	var plan plans.PlannedWorkout
	statusCode, err := c.do(ctx, http.MethodGet, "/api/planned-workouts/"+planDate, nil, &plan)
	if err != nil {
		return nil, err
	}
	if statusCode == http.StatusNoContent {
		return nil, nil
	}
	return &plan, nil
}

// UpsertPlan saves the plan of the day, overwriting whatever was
// planned there before.
func (c *Client) UpsertPlan(ctx context.Context, planDate string, params plans.UpsertRequest) (*plans.PlannedWorkout, error) {
	var plan plans.PlannedWorkout
	_, err := c.do(ctx, http.MethodPut, "/api/planned-workouts/"+planDate, params, &plan)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (c *Client) DeletePlan(ctx context.Context, planDate string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/planned-workouts/"+planDate, nil, nil)
	return err
}

// ListPlans returns the plans between fromDate and toDate inclusive,
// oldest first. Dates are "YYYY-MM-DD" strings.
func (c *Client) ListPlans(ctx context.Context, fromDate, toDate string) ([]plans.PlannedWorkout, error) {
	var resp plans.ListResponse
	path := "/api/planned-workouts?from=" + fromDate + "&to=" + toDate
	if _, err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Plans, nil
}
