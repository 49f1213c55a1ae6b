package database

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/franckalain/nourishbloom/internal/models"
)

//go:embed schema.sql
var schemaFS embed.FS

// timeLayout is fixed width so stored UTC timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// DB interface defines the methods our meal journal should implement
type DB interface {
	SaveMeal(ctx context.Context, meal *models.MealRecord) error
	GetMeal(ctx context.Context, id string) (*models.MealRecord, error)
	UpdateMealAnalysis(ctx context.Context, id string, analysis *models.MealAnalysis, analysisErr string) error
	ListMealsForDay(ctx context.Context, day string) ([]models.MealRecord, error)
	GetRecentMeals(ctx context.Context, limit int) ([]models.MealRecord, error)
	DeleteMeal(ctx context.Context, id string) (bool, error)
	GetFlowerDay(ctx context.Context, day string) (*models.FlowerDay, error)
	SaveFlowerDay(ctx context.Context, fd *models.FlowerDay) error
	Close() error
}

// SQLiteDB implements the DB interface
type SQLiteDB struct {
	db *sql.DB
}

// sqlitePragmas are applied by the driver to every pooled connection, so
// concurrent writers wait on the lock instead of failing with SQLITE_BUSY.
const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"

func dataSourceName(dbPath string) string {
	if strings.Contains(dbPath, "?") {
		return dbPath + "&" + sqlitePragmas
	}
	return dbPath + "?" + sqlitePragmas
}

// NewSQLiteDB opens (creating if needed) the journal at dbPath
func NewSQLiteDB(dbPath string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", dataSourceName(dbPath))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("error initializing schema: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

func initializeSchema(db *sql.DB) error {
	schemaBytes, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("error reading schema file: %w", err)
	}

	if _, err := db.Exec(string(schemaBytes)); err != nil {
		return fmt.Errorf("error executing schema: %w", err)
	}

	zap.L().Named("database").Debug("database schema initialized")
	return nil
}

// SaveMeal inserts or replaces a meal record
func (s *SQLiteDB) SaveMeal(ctx context.Context, meal *models.MealRecord) error {
	query := `
		INSERT INTO meals (
			id, meal_type, description, image_ref, logged_at, day,
			quality_score, analysis_json, analysis_error, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			meal_type = excluded.meal_type,
			description = excluded.description,
			image_ref = excluded.image_ref,
			logged_at = excluded.logged_at,
			day = excluded.day,
			quality_score = excluded.quality_score,
			analysis_json = excluded.analysis_json,
			analysis_error = excluded.analysis_error,
			updated_at = excluded.updated_at
	`

	now := time.Now()
	if meal.CreatedAt.IsZero() {
		meal.CreatedAt = now
	}
	meal.UpdatedAt = now

	analysisJSON, err := encodeAnalysis(meal.Analysis)
	if err != nil {
		return err
	}

	var quality sql.NullFloat64
	if meal.QualityScore != nil {
		quality = sql.NullFloat64{Float64: *meal.QualityScore, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, query,
		meal.ID, string(meal.MealType), meal.Description, meal.ImageRef,
		formatTime(meal.Timestamp), meal.Day(),
		quality, analysisJSON, meal.AnalysisError,
		formatTime(meal.CreatedAt), formatTime(meal.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("error saving meal %s: %w", meal.ID, err)
	}
	return nil
}

const mealColumns = `id, meal_type, description, image_ref, logged_at,
	quality_score, analysis_json, analysis_error, created_at, updated_at`

// GetMeal returns the meal with the given id, or nil if there is none
func (s *SQLiteDB) GetMeal(ctx context.Context, id string) (*models.MealRecord, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE id = ?`

	meal, err := scanMeal(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return meal, nil
}

// UpdateMealAnalysis stores the analysis result for a meal. A successful
// analysis also sets the meal's quality score.
func (s *SQLiteDB) UpdateMealAnalysis(ctx context.Context, id string, analysis *models.MealAnalysis, analysisErr string) error {
	analysisJSON, err := encodeAnalysis(analysis)
	if err != nil {
		return err
	}

	var quality sql.NullFloat64
	if analysis != nil {
		quality = sql.NullFloat64{Float64: float64(analysis.OverallScore), Valid: true}
	}

	query := `
		UPDATE meals
		SET analysis_json = ?, analysis_error = ?,
			quality_score = COALESCE(?, quality_score), updated_at = ?
		WHERE id = ?
	`
	res, err := s.db.ExecContext(ctx, query, analysisJSON, analysisErr, quality, formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("error updating analysis for meal %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("meal %s not found", id)
	}
	return nil
}

// ListMealsForDay returns the meals logged on day (YYYY-MM-DD), oldest first
func (s *SQLiteDB) ListMealsForDay(ctx context.Context, day string) ([]models.MealRecord, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE day = ? ORDER BY logged_at ASC`
	return s.queryMeals(ctx, query, day)
}

// GetRecentMeals retrieves the most recent meals, newest first
func (s *SQLiteDB) GetRecentMeals(ctx context.Context, limit int) ([]models.MealRecord, error) {
	query := `SELECT ` + mealColumns + ` FROM meals ORDER BY logged_at DESC LIMIT ?`
	return s.queryMeals(ctx, query, limit)
}

// DeleteMeal removes a meal and reports whether it existed
func (s *SQLiteDB) DeleteMeal(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM meals WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("error deleting meal %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetFlowerDay returns the stored flower state for day, or nil
func (s *SQLiteDB) GetFlowerDay(ctx context.Context, day string) (*models.FlowerDay, error) {
	query := `SELECT day, flower_id, last_stage, updated_at FROM flower_days WHERE day = ?`

	var fd models.FlowerDay
	var updatedAt string
	err := s.db.QueryRowContext(ctx, query, day).Scan(&fd.Day, &fd.FlowerID, &fd.LastStage, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	fd.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
	return &fd, nil
}

// SaveFlowerDay upserts the flower state for a day
func (s *SQLiteDB) SaveFlowerDay(ctx context.Context, fd *models.FlowerDay) error {
	query := `
		INSERT INTO flower_days (day, flower_id, last_stage, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET
			flower_id = excluded.flower_id,
			last_stage = excluded.last_stage,
			updated_at = excluded.updated_at
	`
	fd.UpdatedAt = time.Now()
	_, err := s.db.ExecContext(ctx, query, fd.Day, fd.FlowerID, fd.LastStage, formatTime(fd.UpdatedAt))
	if err != nil {
		return fmt.Errorf("error saving flower day %s: %w", fd.Day, err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

func (s *SQLiteDB) queryMeals(ctx context.Context, query string, args ...any) ([]models.MealRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []models.MealRecord{}
	for rows.Next() {
		meal, err := scanMeal(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *meal)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMeal(row scanner) (*models.MealRecord, error) {
	var (
		meal                 models.MealRecord
		mealType, loggedAt   string
		createdAt, updatedAt string
		quality              sql.NullFloat64
		analysisJSON         sql.NullString
	)

	err := row.Scan(
		&meal.ID, &mealType, &meal.Description, &meal.ImageRef, &loggedAt,
		&quality, &analysisJSON, &meal.AnalysisError, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	meal.MealType = models.MealType(mealType)
	if quality.Valid {
		q := quality.Float64
		meal.QualityScore = &q
	}
	if analysisJSON.Valid && analysisJSON.String != "" {
		var a models.MealAnalysis
		if err := json.Unmarshal([]byte(analysisJSON.String), &a); err != nil {
			return nil, fmt.Errorf("error decoding analysis for meal %s: %w", meal.ID, err)
		}
		meal.Analysis = &a
	}

	// Parse time strings
	meal.Timestamp, _ = time.Parse(timeLayout, loggedAt)
	meal.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	meal.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)

	return &meal, nil
}

func encodeAnalysis(a *models.MealAnalysis) (sql.NullString, error) {
	if a == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("error encoding analysis: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
