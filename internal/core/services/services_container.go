package services

import (
	portsrepo "github.com/faroukh/office_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/faroukh/office_mgmt_app/internal/core/ports/services"
	"github.com/faroukh/office_mgmt_app/internal/platform/config"
	"github.com/faroukh/office_mgmt_app/pkg/filestore"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher portssvc.RealtimePublisher, files filestore.Store) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// User service first: most other services consult it for actor
	// capability checks.
	container.User = NewUserService(repos.UserRepo, repos.RoleRepo)
	container.Auth = NewAuthService(cfg, repos.UserRepo)

	// Notification service next, since the workflow services publish
	// through it.
	container.Notification = NewNotificationService(repos.NotificationRepo, publisher)

	container.Client = NewClientService(repos.ClientRepo)
	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.TaskRepo,
		repos.ClientRepo,
		container.User,
		container.Notification,
	)
	container.Task = NewTaskService(repos.TaskRepo, container.Notification)
	container.Ledger = NewLedgerService(repos.LedgerRepo, container.User)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, container.User, cfg)
	container.Chat = NewChatService(repos.ChatRepo, container.Notification, publisher)
	container.HR = NewHRService(repos.HRRepo, container.User, container.Notification)
	container.Project = NewProjectService(repos.ProjectRepo)
	container.Report = NewReportService(repos.ReportRepo, repos.TransactionRepo, container.User, files)

	return container
}
