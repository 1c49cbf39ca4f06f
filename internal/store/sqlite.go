package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/nayeemhs/uniassist/internal/domain"
	"github.com/nayeemhs/uniassist/internal/shared"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS students (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT,
		academic_group TEXT,
		gpa REAL,
		interested_department TEXT,
		preferred_university_type TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_students_created ON students(created_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateStudent inserts a new profile row and returns its assigned id.
// Retries with exponential backoff on SQLite concurrency errors.
func (s *SQLiteStore) CreateStudent(ctx context.Context, profile *domain.StudentProfile) (int64, error) {
	maxRetries := 3
	baseDelay := 100 * time.Millisecond

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		id, err := s.createStudentOnce(ctx, profile)
		if err == nil {
			return id, nil
		}
		lastErr = err

		if shared.IsSQLiteConflictError(err) && i < maxRetries-1 {
			delay := baseDelay * time.Duration(1<<i)
			slog.Debug("CreateStudent hit SQLITE_BUSY, retrying",
				"attempt", i+1,
				"delay", delay)
			time.Sleep(delay)
			continue
		}
		break
	}

	return 0, fmt.Errorf("create student: %w", lastErr)
}

func (s *SQLiteStore) createStudentOnce(ctx context.Context, profile *domain.StudentProfile) (int64, error) {
	query := `
	INSERT INTO students (name, academic_group, gpa, interested_department, preferred_university_type, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().Unix()
	result, err := s.db.ExecContext(ctx, query,
		nullString(profile.Name), nullString(profile.AcademicGroup), nullFloat(profile.GPA),
		nullString(profile.InterestedDepartment), nullString(profile.PreferredUniversityType),
		now, now,
	)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// GetStudent retrieves a profile by id.
func (s *SQLiteStore) GetStudent(ctx context.Context, id int64) (*domain.StudentProfile, error) {
	query := `
		SELECT id, name, academic_group, gpa, interested_department,
		       preferred_university_type, created_at, updated_at
		FROM students WHERE id = ?`

	row := s.db.QueryRowContext(ctx, query, id)
	profile, err := scanStudent(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan student row: %w", err)
	}
	return profile, nil
}

// ListStudents retrieves all stored profiles.
func (s *SQLiteStore) ListStudents(ctx context.Context) ([]*domain.StudentProfile, error) {
	query := `
		SELECT id, name, academic_group, gpa, interested_department,
		       preferred_university_type, created_at, updated_at
		FROM students ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close students rows", "error", closeErr)
		}
	}()

	var profiles []*domain.StudentProfile
	for rows.Next() {
		profile, err := scanStudent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan student row: %w", err)
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}

	return profiles, nil
}

// UpdateStudent merges the non-nil fields of partial into an existing row.
func (s *SQLiteStore) UpdateStudent(ctx context.Context, id int64, partial *domain.StudentProfile) error {
	query := `
	UPDATE students SET
		name = COALESCE(?, name),
		academic_group = COALESCE(?, academic_group),
		gpa = COALESCE(?, gpa),
		interested_department = COALESCE(?, interested_department),
		preferred_university_type = COALESCE(?, preferred_university_type),
		updated_at = ?
	WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		nullString(partial.Name), nullString(partial.AcademicGroup), nullFloat(partial.GPA),
		nullString(partial.InterestedDepartment), nullString(partial.PreferredUniversityType),
		time.Now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("student %d not found", id)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

func scanStudent(scan func(dest ...any) error) (*domain.StudentProfile, error) {
	var profile domain.StudentProfile
	var name, group, dept, utype sql.NullString
	var gpa sql.NullFloat64
	var createdAt, updatedAt int64

	if err := scan(
		&profile.ID, &name, &group, &gpa, &dept, &utype,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	if name.Valid {
		profile.Name = &name.String
	}
	if group.Valid {
		profile.AcademicGroup = &group.String
	}
	if gpa.Valid {
		profile.GPA = &gpa.Float64
	}
	if dept.Valid {
		profile.InterestedDepartment = &dept.String
	}
	if utype.Valid {
		profile.PreferredUniversityType = &utype.String
	}
	profile.CreatedAt = time.Unix(createdAt, 0)
	profile.UpdatedAt = time.Unix(updatedAt, 0)

	return &profile, nil
}

func nullString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func nullFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}
