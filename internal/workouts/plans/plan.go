package plans

import "time"

const PlanDateFormat = "2006-01-02"

// PlannedWorkout is a workout the user intends to do, at most one per
// user and calendar day. PlanDate is the local "YYYY-MM-DD" day,
// ScheduledTime an optional "HH:MM" wall-clock time on that day.
// TemplateID optionally points at a workout template, Title overrides
// the template name when set.
type PlannedWorkout struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	PlanDate      string    `json:"planDate"`
	TemplateID    string    `json:"templateId,omitempty"`
	Title         string    `json:"title,omitempty"`
	ScheduledTime string    `json:"scheduledTime,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func ValidPlanDate(planDate string) bool {
	_, err := time.Parse(PlanDateFormat, planDate)
	return err == nil
}

// ValidScheduledTime accepts "HH:MM" and "HH:MM:SS"; an empty value
// means the plan has no fixed time of day.
func ValidScheduledTime(scheduledTime string) bool {
	if scheduledTime == "" {
		return true
	}
	if _, err := time.Parse("15:04:05", scheduledTime); err == nil {
		return true
	}
	_, err := time.Parse("15:04", scheduledTime)
	return err == nil
}
