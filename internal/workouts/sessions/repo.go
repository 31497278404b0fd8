package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitrack/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrSessionNotFound  = errors.New("workout session not found")
	ErrAlreadyCompleted = errors.New("workout session already completed")
)

type StartParams struct {
	UserID       string
	Title        string
	ActivityType string
	StartedAt    time.Time
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const sessionColumns = `
	id, user_id, title, activity_type,
	started_at, ended_at, duration_min,
	created_at, updated_at`

func scanSession(row pgx.Row) (*WorkoutSession, error) {
	var s WorkoutSession
	err := row.Scan(
		&s.ID, &s.UserID, &s.Title, &s.ActivityType,
		&s.StartedAt, &s.EndedAt, &s.DurationMin,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns all sessions of the user, newest first.
func (r *Repo) List(ctx context.Context, userID string) (_ []WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := r.db.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM workout_session
		WHERE user_id = $1
		ORDER BY created_at DESC;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []WorkoutSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		list = append(list, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// GetActive returns the most recently started session with no ended_at,
// or nil when the user has no active session.
func (r *Repo) GetActive(ctx context.Context, userID string) (_ *WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.getactive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	row := r.db.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM workout_session
		WHERE user_id = $1 AND ended_at IS NULL
		ORDER BY started_at DESC
		LIMIT 1;`,
		userID,
	)

	s, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Start inserts a new active session. The single-active-session rule is
// enforced by callers checking GetActive first, not here.
func (r *Repo) Start(ctx context.Context, params StartParams) (_ *WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.start")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", params.UserID))

	if params.ActivityType == "" {
		params.ActivityType = DefaultActivityType
	}
	if params.Title == "" {
		params.Title = TitleFromActivityType(params.ActivityType)
	}
	if params.StartedAt.IsZero() {
		params.StartedAt = time.Now()
	}

	id := uuid.New().String()
	row := r.db.QueryRow(ctx, `
		INSERT INTO workout_session
			(id, user_id, title, activity_type, started_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING `+sessionColumns+`;`,
		id, params.UserID, params.Title, params.ActivityType, params.StartedAt,
	)

	s, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("insert workout session: %w", err)
	}

	span.SetAttributes(attribute.String("session.id", s.ID))
	return s, nil
}

// Complete stamps ended_at and the server-computed duration_min on an
// active session. A second complete of the same session yields
// ErrAlreadyCompleted, an unknown id yields ErrSessionNotFound.
func (r *Repo) Complete(ctx context.Context, id string, endedAt time.Time) (_ *WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", id))

	if endedAt.IsZero() {
		endedAt = time.Now()
	}

	row := r.db.QueryRow(ctx, `
		UPDATE workout_session
		SET
			ended_at = $2,
			duration_min = GREATEST(0, ROUND(EXTRACT(EPOCH FROM ($2 - started_at)) / 60))::int,
			updated_at = now()
		WHERE id = $1 AND ended_at IS NULL
		RETURNING `+sessionColumns+`;`,
		id, endedAt,
	)

	s, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		// either unknown or already completed, check which
		existing, getErr := r.Get(ctx, id)
		if getErr != nil {
			return nil, ErrSessionNotFound
		}
		if !existing.IsActive() {
			return nil, ErrAlreadyCompleted
		}
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (r *Repo) Get(ctx context.Context, id string) (_ *WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", id))

	row := r.db.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM workout_session
		WHERE id = $1;`,
		id,
	)

	s, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
