package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/khaldoun36/GritSeason/internal/model"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sqlite: %w", err)
	}
	return nil
}

func (s *SQLite) Put(ctx context.Context, e model.FoodEntry) error {
	if e.ID == "" {
		return fmt.Errorf("food entry id is required")
	}
	names := e.Names
	if names == nil {
		names = []string{}
	}
	namesJSON, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("marshal names for entry %s: %w", e.ID, err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO food_entries(id, names_json, calories, protein_g, carbs_g, fats_g, timestamp_ms)
VALUES(?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  names_json=excluded.names_json,
  calories=excluded.calories,
  protein_g=excluded.protein_g,
  carbs_g=excluded.carbs_g,
  fats_g=excluded.fats_g,
  timestamp_ms=excluded.timestamp_ms
`, e.ID, string(namesJSON), e.Calories, e.Protein, e.Carbs, e.Fats, e.Timestamp)
	if err != nil {
		return fmt.Errorf("put food entry %s: %w", e.ID, err)
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, id string) (model.FoodEntry, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, names_json, calories, protein_g, carbs_g, fats_g, timestamp_ms
FROM food_entries
WHERE id = ?
`, id)
	e, err := scanFoodEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.FoodEntry{}, fmt.Errorf("food entry %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.FoodEntry{}, fmt.Errorf("get food entry %s: %w", id, err)
	}
	return e, nil
}

func (s *SQLite) AllByTimestamp(ctx context.Context) ([]model.FoodEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, names_json, calories, protein_g, carbs_g, fats_g, timestamp_ms
FROM food_entries
ORDER BY timestamp_ms ASC, rowid ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list food entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.FoodEntry, 0)
	for rows.Next() {
		e, err := scanFoodEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan food entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate food entries: %w", err)
	}
	return entries, nil
}

func (s *SQLite) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM food_entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete food entry %s: %w", id, err)
	}
	return nil
}

func (s *SQLite) GetProfile(ctx context.Context) (*model.UserProfile, error) {
	var (
		current, goal, height sql.NullFloat64
		age                   sql.NullInt64
		gender, activity      string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT current_weight_kg, goal_weight_kg, height_cm, gender, activity_level, age
FROM user_profile
WHERE id = ?
`, ProfileKey).Scan(&current, &goal, &height, &gender, &activity, &age)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user profile: %w", err)
	}

	p := &model.UserProfile{Gender: model.ParseGender(gender)}
	if current.Valid {
		p.CurrentWeight = model.Float(current.Float64)
	}
	if goal.Valid {
		p.GoalWeight = model.Float(goal.Float64)
	}
	if height.Valid {
		p.Height = model.Float(height.Float64)
	}
	if age.Valid {
		p.Age = model.Int(int(age.Int64))
	}
	p.ActivityLevel = model.LookupActivityLevel(activity)
	return p, nil
}

func (s *SQLite) PutProfile(ctx context.Context, p model.UserProfile) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO user_profile(id, current_weight_kg, goal_weight_kg, height_cm, gender, activity_level, age, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET
  current_weight_kg=excluded.current_weight_kg,
  goal_weight_kg=excluded.goal_weight_kg,
  height_cm=excluded.height_cm,
  gender=excluded.gender,
  activity_level=excluded.activity_level,
  age=excluded.age,
  updated_at=excluded.updated_at
`, ProfileKey, p.CurrentWeight, p.GoalWeight, p.Height, p.Gender.String(), p.ActivityLevel.Key(), p.Age)
	if err != nil {
		return fmt.Errorf("put user profile: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFoodEntry(r rowScanner) (model.FoodEntry, error) {
	var e model.FoodEntry
	var namesJSON string
	if err := r.Scan(&e.ID, &namesJSON, &e.Calories, &e.Protein, &e.Carbs, &e.Fats, &e.Timestamp); err != nil {
		return model.FoodEntry{}, err
	}
	if err := json.Unmarshal([]byte(namesJSON), &e.Names); err != nil {
		return model.FoodEntry{}, fmt.Errorf("decode names for entry %s: %w", e.ID, err)
	}
	return e, nil
}
