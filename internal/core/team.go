package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/halvard/teamstore/internal/model"
)

// TeamService manages the team registry.
type TeamService struct {
	db DB
}

func NewTeamService(db DB) *TeamService {
	return &TeamService{db: db}
}

func (s *TeamService) Create(ctx context.Context, name string) (*model.Team, error) {
	var t model.Team
	err := s.db.QueryRow(ctx,
		`INSERT INTO teams (name) VALUES ($1) RETURNING id, name, created_at`, name,
	).Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert team: %w", err)
	}
	return &t, nil
}

func (s *TeamService) GetByID(ctx context.Context, id int64) (*model.Team, error) {
	var t model.Team
	err := s.db.QueryRow(ctx,
		`SELECT id, name, created_at FROM teams WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get team %d: %w", id, err)
	}
	return &t, nil
}

func (s *TeamService) List(ctx context.Context) ([]model.Team, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name, created_at FROM teams ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := []model.Team{}
	for rows.Next() {
		var t model.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}
