package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/alphadate/repository"
)

const StoreName = "postgres"

// NewStore wires the Postgres repositories over one pool.
func NewStore(pool *pgxpool.Pool) repository.Store {
	return repository.Store{
		Name:       StoreName,
		Activities: NewActivityRepository(pool),
		Feedbacks:  NewFeedbackRepository(pool),
	}
}
