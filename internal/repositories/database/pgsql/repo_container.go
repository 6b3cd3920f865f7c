package pgsql

import (
	portsrepo "github.com/buildsuite/site_ops_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the pgsql-backed repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RequestRepo:    newPgxRequestRepository(dbPool),
		AttendanceRepo: newPgxAttendanceRepository(dbPool),
		InventoryRepo:  newPgxInventoryRepository(dbPool),
		UserRepo:       newPgxUserRepository(dbPool),
	}
}
