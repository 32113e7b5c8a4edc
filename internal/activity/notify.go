package activity

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/halvard/teamstore/internal/push"
)

// DB defines the database operations used by activity structs.
// *pgxpool.Pool satisfies this interface.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Publisher is the best-effort push channel. *push.Redis satisfies this
// interface.
type Publisher interface {
	Publish(ctx context.Context, topic, message string) error
}

// Notify contains the notification dispatch activity.
type Notify struct {
	db  DB
	pub Publisher
}

// NewNotify creates a new Notify activity struct.
func NewNotify(db DB, pub Publisher) *Notify {
	return &Notify{db: db, pub: pub}
}

// NotificationTarget identifies one fan-out target. Exactly one field must
// be set.
type NotificationTarget struct {
	UserID *int64 `json:"user_id,omitempty"`
	TeamID *int64 `json:"team_id,omitempty"`
}

// DispatchNotificationParams holds the parameters for DispatchNotification.
type DispatchNotificationParams struct {
	Targets []NotificationTarget `json:"targets"`
	Message string               `json:"message"`
}

// DispatchNotification persists one notification record per target and
// attempts real-time delivery to any connected listener on the target's
// topic. Persistence failures fail the whole call, which is safe to retry;
// push delivery is fire-and-forget since the durable record is the source of
// truth.
func (a *Notify) DispatchNotification(ctx context.Context, params DispatchNotificationParams) error {
	logger := activity.GetLogger(ctx)

	if params.Message == "" {
		return temporal.NewNonRetryableApplicationError("empty notification message", "INVALID_DISPATCH", nil)
	}
	if len(params.Targets) == 0 {
		return temporal.NewNonRetryableApplicationError("no notification targets", "INVALID_DISPATCH", nil)
	}
	for _, t := range params.Targets {
		if (t.UserID == nil) == (t.TeamID == nil) {
			return temporal.NewNonRetryableApplicationError(
				"notification target must set exactly one of user_id, team_id",
				"INVALID_DISPATCH", nil)
		}
	}

	for _, t := range params.Targets {
		_, err := a.db.Exec(ctx,
			`INSERT INTO notifications (user_id, team_id, message, created_at) VALUES ($1, $2, $3, now())`,
			t.UserID, t.TeamID, params.Message,
		)
		if err != nil {
			return err
		}

		topic := topicFor(t)
		if err := a.pub.Publish(ctx, topic, params.Message); err != nil {
			logger.Warn("push delivery failed", "topic", topic, "error", err)
		}
	}

	return nil
}

func topicFor(t NotificationTarget) string {
	if t.UserID != nil {
		return push.UserTopic(*t.UserID)
	}
	return push.TeamTopic(*t.TeamID)
}
