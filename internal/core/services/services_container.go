package services

import (
	portsrepo "github.com/buildsuite/site_ops_app/internal/core/ports/repositories"
	portssvc "github.com/buildsuite/site_ops_app/internal/core/ports/services"
)

// NewServiceContainer creates a service container with properly initialized
// dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Inventory first: the request workflow dispatches its approval effect
	// through it.
	container.Inventory = NewInventoryService(repos.InventoryRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Request = NewRequestService(repos.RequestRepo, container.Inventory)
	container.Attendance = NewAttendanceService(repos.AttendanceRepo, container.User)

	return container
}

// Compile-time interface checks for the service implementations.
var (
	_ portssvc.RequestSvcFacade    = (*requestService)(nil)
	_ portssvc.AttendanceSvcFacade = (*attendanceService)(nil)
	_ portssvc.InventorySvcFacade  = (*inventoryService)(nil)
	_ portssvc.UserSvcFacade       = (*userService)(nil)
)
