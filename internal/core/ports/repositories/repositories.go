package repositories

// RepositoryProvider bundles every repository facade for service wiring.
// Both the pgsql and the in-memory adapters produce one.
type RepositoryProvider struct {
	RequestRepo    RequestRepositoryFacade
	AttendanceRepo AttendanceRepositoryFacade
	InventoryRepo  InventoryRepositoryFacade
	UserRepo       UserRepositoryFacade
}
