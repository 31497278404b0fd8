package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/fitrack/internal/telemetry/tracing"
	"github.com/2beens/fitrack/pkg"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username taken")
	ErrEmailTaken    = errors.New("email taken")
)

type CreateParams struct {
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
}

type UpdateProfileParams struct {
	ID        string
	Username  string
	FirstName string
	LastName  string
}

type OnboardingParams struct {
	Goal                 string
	TrainingDaysPerWeek  int
	StrengthTrackingMode string
	ExperienceLevel      string
	BaselineWeight       float64
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const userColumns = `
	id, email, username, first_name, last_name, password_hash,
	goal, training_days_per_week, strength_tracking_mode,
	experience_level, baseline_weight, onboarding_completed_at,
	created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	var username, firstName, lastName *string
	var goal, strengthMode, experienceLevel *string
	err := row.Scan(
		&u.ID, &u.Email, &username, &firstName, &lastName, &u.PasswordHash,
		&goal, &u.TrainingDaysPerWeek, &strengthMode,
		&experienceLevel, &u.BaselineWeight, &u.OnboardingCompletedAt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if username != nil {
		u.Username = *username
	}
	if firstName != nil {
		u.FirstName = *firstName
	}
	if lastName != nil {
		u.LastName = *lastName
	}
	if goal != nil {
		u.Goal = *goal
	}
	if strengthMode != nil {
		u.StrengthTrackingMode = *strengthMode
	}
	if experienceLevel != nil {
		u.ExperienceLevel = *experienceLevel
	}
	return &u, nil
}

// uniqueViolationToErr maps a postgres unique violation to the taken
// username / taken email error based on the violated constraint.
func uniqueViolationToErr(err error) error {
	if !pkg.IsUniqueViolationError(err) {
		return err
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return ErrEmailTaken
	case strings.Contains(pgErr.ConstraintName, "username"):
		return ErrUsernameTaken
	}
	return err
}

func (r *Repo) Create(ctx context.Context, params CreateParams) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.email", params.Email))

	id := uuid.New().String()
	// optional text fields are stored as NULL, not "", so the partial
	// unique index on username only bites actual values
	row := r.db.QueryRow(ctx, `
		INSERT INTO fitrack_user
			(id, email, username, first_name, last_name, password_hash, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, now(), now())
		RETURNING `+userColumns+`;`,
		id, params.Email, params.Username, params.FirstName, params.LastName, params.PasswordHash,
	)

	u, err := scanUser(row)
	if err != nil {
		return nil, uniqueViolationToErr(err)
	}
	return u, nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getByEmail")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM fitrack_user
		WHERE email = $1;`,
		email,
	)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getByID")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id))

	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM fitrack_user
		WHERE id = $1;`,
		id,
	)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateProfile updates the given fields of a user, empty values mean
// "leave unchanged".
func (r *Repo) UpdateProfile(ctx context.Context, params UpdateProfileParams) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.updateProfile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", params.ID))

	row := r.db.QueryRow(ctx, `
		UPDATE fitrack_user
		SET
			username = COALESCE(NULLIF($2, ''), username),
			first_name = COALESCE(NULLIF($3, ''), first_name),
			last_name = COALESCE(NULLIF($4, ''), last_name),
			updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns+`;`,
		params.ID, params.Username, params.FirstName, params.LastName,
	)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, uniqueViolationToErr(err)
	}
	return u, nil
}

// SetOnboarding stores the choices made during the first-run flow and
// stamps onboarding_completed_at.
func (r *Repo) SetOnboarding(ctx context.Context, id string, params OnboardingParams) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.setOnboarding")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id))

	row := r.db.QueryRow(ctx, `
		UPDATE fitrack_user
		SET
			goal = $2,
			training_days_per_week = $3,
			strength_tracking_mode = $4,
			experience_level = $5,
			baseline_weight = $6,
			onboarding_completed_at = now(),
			updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns+`;`,
		id, params.Goal, params.TrainingDaysPerWeek, params.StrengthTrackingMode,
		params.ExperienceLevel, params.BaselineWeight,
	)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("set onboarding: %w", err)
	}
	return u, nil
}
