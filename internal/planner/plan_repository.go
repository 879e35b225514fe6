package planner

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Result reports the outcome of a write operation.
type Result struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

const (
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusError   = "error"
)

// PlanStore is the persistence surface components depend on, so tests can
// substitute fakes.
type PlanStore interface {
	Load(ctx context.Context) Plan
	ReplaceAll(ctx context.Context, entries []MealEntry) Result
}

// PlanRepository is a Postgres-backed store for the generated meal plan.
type PlanRepository struct {
	db *pgxpool.Pool
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(db *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{db: db}
}

// Load fetches every stored row and assembles the Plan. Any failure is logged
// and degrades to an empty Plan; callers never see an error.
func (r *PlanRepository) Load(ctx context.Context) Plan {
	rows, err := r.db.Query(ctx, `
		SELECT date, meal_type, item, method, prep, quantity
		FROM meal_plans
		ORDER BY date, meal_type
	`)
	if err != nil {
		log.Printf("Error loading meal plan: %v", err)
		return Plan{}
	}
	defer rows.Close()

	var entries []MealEntry
	for rows.Next() {
		var e MealEntry
		if err := rows.Scan(&e.Date, &e.MealType, &e.Item, &e.Method, &e.Prep, &e.Quantity); err != nil {
			log.Printf("Warning: skipping unreadable meal plan row: %v", err)
			continue
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error reading meal plan rows: %v", err)
		return Plan{}
	}

	return AssemblePlan(entries)
}

// ReplaceAll swaps the table's entire contents for the given entries. Delete
// and insert run in one transaction so a failure leaves the previous plan
// intact instead of losing it.
func (r *PlanRepository) ReplaceAll(ctx context.Context, entries []MealEntry) Result {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM meal_plans`); err != nil {
			return fmt.Errorf("failed to clear meal plans: %w", err)
		}
		for _, e := range entries {
			_, err := tx.Exec(ctx, `
				INSERT INTO meal_plans (id, date, meal_type, item, method, prep, quantity)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, uuid.NewString(), e.Date, e.MealType, e.Item, e.Method, e.Prep, e.Quantity)
			if err != nil {
				return fmt.Errorf("failed to insert meal plan row for %s/%s: %w", e.Date, e.MealType, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error replacing meal plan: %v", err)
		return Result{Status: StatusError, Message: err.Error()}
	}

	return Result{Status: StatusSuccess, Message: fmt.Sprintf("saved %d entries", len(entries))}
}
