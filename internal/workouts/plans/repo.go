package plans

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitrack/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrPlanNotFound = errors.New("planned workout not found")

type UpsertParams struct {
	UserID        string
	PlanDate      string
	TemplateID    string
	Title         string
	ScheduledTime string
	Notes         string
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const planColumns = `
	id, user_id, plan_date, template_id, title,
	scheduled_time, notes, created_at, updated_at`

func scanPlan(row pgx.Row) (*PlannedWorkout, error) {
	var p PlannedWorkout
	var templateID, title, scheduledTime, notes *string
	err := row.Scan(
		&p.ID, &p.UserID, &p.PlanDate, &templateID, &title,
		&scheduledTime, &notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if templateID != nil {
		p.TemplateID = *templateID
	}
	if title != nil {
		p.Title = *title
	}
	if scheduledTime != nil {
		p.ScheduledTime = *scheduledTime
	}
	if notes != nil {
		p.Notes = *notes
	}
	return &p, nil
}

// GetForDate returns the plan of the user for the given day, or nil
// when the day has no plan.
func (r *Repo) GetForDate(ctx context.Context, userID, planDate string) (_ *PlannedWorkout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.getfordate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))
	span.SetAttributes(attribute.String("plan.date", planDate))

	row := r.db.QueryRow(ctx, `
		SELECT `+planColumns+`
		FROM planned_workout
		WHERE user_id = $1 AND plan_date = $2;`,
		userID, planDate,
	)

	p, err := scanPlan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Upsert inserts the plan of the day, or overwrites it when the day is
// already planned. One plan per user and day, the later write wins.
func (r *Repo) Upsert(ctx context.Context, params UpsertParams) (_ *PlannedWorkout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", params.UserID))
	span.SetAttributes(attribute.String("plan.date", params.PlanDate))

	id := uuid.New().String()
	row := r.db.QueryRow(ctx, `
		INSERT INTO planned_workout
			(id, user_id, plan_date, template_id, title, scheduled_time, notes, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), now(), now())
		ON CONFLICT (user_id, plan_date) DO UPDATE SET
			template_id = EXCLUDED.template_id,
			title = EXCLUDED.title,
			scheduled_time = EXCLUDED.scheduled_time,
			notes = EXCLUDED.notes,
			updated_at = now()
		RETURNING `+planColumns+`;`,
		id, params.UserID, params.PlanDate,
		params.TemplateID, params.Title, params.ScheduledTime, params.Notes,
	)

	p, err := scanPlan(row)
	if err != nil {
		return nil, fmt.Errorf("upsert planned workout: %w", err)
	}

	span.SetAttributes(attribute.String("plan.id", p.ID))
	return p, nil
}

// DeleteForDate removes the plan of the day. Deleting a day with no
// plan yields ErrPlanNotFound.
func (r *Repo) DeleteForDate(ctx context.Context, userID, planDate string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.deletefordate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))
	span.SetAttributes(attribute.String("plan.date", planDate))

	tag, err := r.db.Exec(ctx, `
		DELETE FROM planned_workout
		WHERE user_id = $1 AND plan_date = $2;`,
		userID, planDate,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

// ListRange returns the plans of the user between fromDate and toDate
// inclusive, oldest first. Dates are "YYYY-MM-DD" strings, so range
// comparison is plain lexicographic ordering.
func (r *Repo) ListRange(ctx context.Context, userID, fromDate, toDate string) (_ []PlannedWorkout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.listrange")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := r.db.Query(ctx, `
		SELECT `+planColumns+`
		FROM planned_workout
		WHERE user_id = $1 AND plan_date >= $2 AND plan_date <= $3
		ORDER BY plan_date ASC;`,
		userID, fromDate, toDate,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []PlannedWorkout
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		list = append(list, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
