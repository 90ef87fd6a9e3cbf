package postgres

import (
	repo "github.com/edumarket/edumarket-backend/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Users         repo.Users
	Balances      repo.Balances
	Notes         repo.Notes
	Purchases     repo.Purchases
	Sales         repo.Sales
	Withdrawals   repo.Withdrawals
	Reviews       repo.Reviews
	Ratings       repo.Ratings
	Courses       repo.Courses
	Announcements repo.Announcements
	Notifications repo.Notifications
	Outbox        repo.Outbox
	AuditLogs     repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:         &usersRepo{pool},
		Balances:      &balancesRepo{pool},
		Notes:         &notesRepo{pool},
		Purchases:     &purchasesRepo{pool},
		Sales:         &salesRepo{pool},
		Withdrawals:   &withdrawalsRepo{pool},
		Reviews:       &reviewsRepo{pool},
		Ratings:       &ratingsRepo{pool},
		Courses:       &coursesRepo{pool},
		Announcements: &announcementsRepo{pool},
		Notifications: &notificationsRepo{pool},
		Outbox:        &outboxRepo{pool},
		AuditLogs:     &auditLogsRepo{pool},
	}
}
