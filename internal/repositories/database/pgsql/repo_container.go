package pgsql

import (
	portsrepo "github.com/faroukh/office_mgmt_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	roleRepo := newPgxRoleRepository(dbPool)
	clientRepo := newPgxClientRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)
	taskRepo := newPgxTaskRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	chatRepo := newPgxChatRepository(dbPool)
	notificationRepo := newPgxNotificationRepository(dbPool)
	hrRepo := newPgxHRRepository(dbPool)
	projectRepo := newPgxProjectRepository(dbPool)
	reportRepo := newPgxReportRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:         userRepo,
		RoleRepo:         roleRepo,
		ClientRepo:       clientRepo,
		TransactionRepo:  transactionRepo,
		TaskRepo:         taskRepo,
		LedgerRepo:       ledgerRepo,
		InvoiceRepo:      invoiceRepo,
		ChatRepo:         chatRepo,
		NotificationRepo: notificationRepo,
		HRRepo:           hrRepo,
		ProjectRepo:      projectRepo,
		ReportRepo:       reportRepo,
	}
}
