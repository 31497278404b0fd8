package users

import "time"

// User is a registered account. The onboarding fields get filled in
// during the first-run flow; until OnboardingCompletedAt is stamped,
// clients keep routing to onboarding.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username,omitempty"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	PasswordHash string `json:"-"`

	Goal                  string     `json:"goal,omitempty"`
	TrainingDaysPerWeek   *int       `json:"trainingDaysPerWeek,omitempty"`
	StrengthTrackingMode  string     `json:"strengthTrackingMode,omitempty"`
	ExperienceLevel       string     `json:"experienceLevel,omitempty"`
	BaselineWeight        *float64   `json:"baselineWeight,omitempty"`
	OnboardingCompletedAt *time.Time `json:"onboardingCompletedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) Onboarded() bool {
	return u.OnboardingCompletedAt != nil
}
