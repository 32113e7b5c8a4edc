package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/halvard/teamstore/internal/model"
)

const defaultNotificationLimit = 50

// NotificationService reads persisted notifications. Records are written only
// by the workflow's dispatch activity; this service never mutates them.
type NotificationService struct {
	db DB
}

func NewNotificationService(db DB) *NotificationService {
	return &NotificationService{db: db}
}

// ListForUser returns the most recent notifications addressed to a user.
func (s *NotificationService) ListForUser(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	return s.list(ctx,
		`SELECT id, user_id, team_id, message, created_at FROM notifications
		 WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
}

// ListForTeam returns the most recent notifications addressed to a team.
func (s *NotificationService) ListForTeam(ctx context.Context, teamID int64, limit int) ([]model.Notification, error) {
	return s.list(ctx,
		`SELECT id, user_id, team_id, message, created_at FROM notifications
		 WHERE team_id = $1 ORDER BY created_at DESC LIMIT $2`,
		teamID, limit)
}

func (s *NotificationService) list(ctx context.Context, query string, target int64, limit int) ([]model.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}

	rows, err := s.db.Query(ctx, query, target, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	return scanNotifications(rows)
}

func scanNotifications(rows pgx.Rows) ([]model.Notification, error) {
	notifications := []model.Notification{}
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.TeamID, &n.Message, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
