package services

// ServiceContainer bundles every service facade for handler wiring.
type ServiceContainer struct {
	Request    RequestSvcFacade
	Attendance AttendanceSvcFacade
	Inventory  InventorySvcFacade
	User       UserSvcFacade
}
