package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"skill-match/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrSessionNotFound = errors.New("session not found")

// ApplicationStatuses lists the accepted job application states; the first
// one is the default.
var ApplicationStatuses = []string{"interested", "applied", "interviewing", "offered", "rejected"}

type MatchSummary struct {
	JobID      string  `json:"job_id"`
	Title      string  `json:"title"`
	Score      float64 `json:"score"`
	Similarity float64 `json:"similarity"`
}

type CourseRef struct {
	Title    string `json:"title"`
	Provider string `json:"provider"`
	URL      string `json:"url"`
}

type CourseRecommendation struct {
	JobID     string
	Courses   []CourseRef
	CreatedAt time.Time
}

type NewJobApplication struct {
	JobID      string
	JobTitle   string
	MatchScore float64
	Status     string
}

type JobApplication struct {
	ID         int64
	JobID      string
	JobTitle   string
	MatchScore float64
	Status     string
	AppliedAt  time.Time
}

// SessionStats counts what a session has accumulated. CourseRecommendations
// counts individual courses, not recommendation batches.
type SessionStats struct {
	TotalSkills           int
	JobMatches            int
	JobApplications       int
	CourseRecommendations int
}

type NewSession struct {
	Skills        []string
	JobPreference string
	Matches       []MatchSummary
}

type Session struct {
	ID              uuid.UUID
	Skills          []string
	JobPreference   string
	Matches         []MatchSummary
	Recommendations []CourseRecommendation
	Applications    []JobApplication
	CreatedAt       time.Time
}

// SessionRepository records match requests and the courses later suggested for them.
type SessionRepository interface {
	Create(ctx context.Context, s NewSession) (Session, error)
	Get(ctx context.Context, id uuid.UUID) (Session, error)
	AddCourseRecommendations(ctx context.Context, sessionID uuid.UUID, jobID string, courses []CourseRef) error
	AddJobApplication(ctx context.Context, sessionID uuid.UUID, a NewJobApplication) (JobApplication, error)
	Stats(ctx context.Context, id uuid.UUID) (SessionStats, error)
	DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error)
}

type PostgresSessionRepository struct {
	db  database.DB
	now func() time.Time
}

func NewPostgresSessionRepository(db database.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *PostgresSessionRepository) Create(ctx context.Context, s NewSession) (Session, error) {
	skills, err := json.Marshal(nonNilStrings(s.Skills))
	if err != nil {
		return Session{}, err
	}
	matches, err := json.Marshal(nonNilMatches(s.Matches))
	if err != nil {
		return Session{}, err
	}

	out := Session{
		ID:            uuid.New(),
		Skills:        nonNilStrings(s.Skills),
		JobPreference: s.JobPreference,
		Matches:       nonNilMatches(s.Matches),
		CreatedAt:     r.now(),
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO match_sessions (id, skills, job_preference, matches, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		out.ID,
		skills,
		out.JobPreference,
		matches,
		out.CreatedAt,
	)
	if err != nil {
		return Session{}, fmt.Errorf("insert match session: %w", err)
	}
	return out, nil
}

// Get reads the session with its recommendations and applications in one
// transaction so a concurrent cleanup cannot split them.
func (r *PostgresSessionRepository) Get(ctx context.Context, id uuid.UUID) (Session, error) {
	var out Session
	err := database.WithTx(ctx, r.db, func(q database.Querier) error {
		s, err := getSession(ctx, q, id)
		if err != nil {
			return err
		}
		s.Recommendations, err = listRecommendations(ctx, q, id)
		if err != nil {
			return err
		}
		s.Applications, err = listApplications(ctx, q, id)
		if err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return Session{}, err
	}
	return out, nil
}

func getSession(ctx context.Context, q database.Querier, id uuid.UUID) (Session, error) {
	var (
		out     Session
		skills  []byte
		matches []byte
	)
	err := q.QueryRow(ctx,
		`SELECT id, skills, job_preference, matches, created_at
		 FROM match_sessions WHERE id = $1`,
		id,
	).Scan(&out.ID, &skills, &out.JobPreference, &matches, &out.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Session{}, ErrSessionNotFound
		}
		return Session{}, err
	}
	if err := json.Unmarshal(skills, &out.Skills); err != nil {
		return Session{}, fmt.Errorf("decode session skills: %w", err)
	}
	if err := json.Unmarshal(matches, &out.Matches); err != nil {
		return Session{}, fmt.Errorf("decode session matches: %w", err)
	}
	return out, nil
}

func listRecommendations(ctx context.Context, q database.Querier, sessionID uuid.UUID) ([]CourseRecommendation, error) {
	rows, err := q.Query(ctx,
		`SELECT job_id, courses, created_at
		 FROM course_recommendations WHERE session_id = $1
		 ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CourseRecommendation{}
	for rows.Next() {
		var (
			rec     CourseRecommendation
			courses []byte
		)
		if err := rows.Scan(&rec.JobID, &courses, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(courses, &rec.Courses); err != nil {
			return nil, fmt.Errorf("decode recommended courses: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func listApplications(ctx context.Context, q database.Querier, sessionID uuid.UUID) ([]JobApplication, error) {
	rows, err := q.Query(ctx,
		`SELECT id, job_id, job_title, match_score, status, applied_at
		 FROM job_applications WHERE session_id = $1
		 ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []JobApplication{}
	for rows.Next() {
		var a JobApplication
		if err := rows.Scan(&a.ID, &a.JobID, &a.JobTitle, &a.MatchScore, &a.Status, &a.AppliedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSessionRepository) AddCourseRecommendations(ctx context.Context, sessionID uuid.UUID, jobID string, courses []CourseRef) error {
	if courses == nil {
		courses = []CourseRef{}
	}
	b, err := json.Marshal(courses)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO course_recommendations (session_id, job_id, courses, created_at)
		 VALUES ($1,$2,$3,$4)`,
		sessionID,
		jobID,
		b,
		r.now(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrSessionNotFound
		}
		return fmt.Errorf("insert course recommendations: %w", err)
	}
	return nil
}

func (r *PostgresSessionRepository) AddJobApplication(ctx context.Context, sessionID uuid.UUID, a NewJobApplication) (JobApplication, error) {
	out := JobApplication{
		JobID:      a.JobID,
		JobTitle:   a.JobTitle,
		MatchScore: a.MatchScore,
		Status:     applicationStatus(a.Status),
		AppliedAt:  r.now(),
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO job_applications (session_id, job_id, job_title, match_score, status, applied_at)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING id`,
		sessionID,
		out.JobID,
		out.JobTitle,
		out.MatchScore,
		out.Status,
		out.AppliedAt,
	).Scan(&out.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return JobApplication{}, ErrSessionNotFound
		}
		return JobApplication{}, fmt.Errorf("insert job application: %w", err)
	}
	return out, nil
}

func (r *PostgresSessionRepository) Stats(ctx context.Context, id uuid.UUID) (SessionStats, error) {
	var out SessionStats
	err := database.WithTx(ctx, r.db, func(q database.Querier) error {
		s, err := getSession(ctx, q, id)
		if err != nil {
			return err
		}
		out.TotalSkills = len(s.Skills)
		out.JobMatches = len(s.Matches)

		if err := q.QueryRow(ctx,
			`SELECT COUNT(*) FROM job_applications WHERE session_id = $1`,
			id,
		).Scan(&out.JobApplications); err != nil {
			return fmt.Errorf("count job applications: %w", err)
		}
		if err := q.QueryRow(ctx,
			`SELECT COALESCE(SUM(jsonb_array_length(courses)), 0)
			 FROM course_recommendations WHERE session_id = $1`,
			id,
		).Scan(&out.CourseRecommendations); err != nil {
			return fmt.Errorf("count course recommendations: %w", err)
		}
		return nil
	})
	if err != nil {
		return SessionStats{}, err
	}
	return out, nil
}

func (r *PostgresSessionRepository) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := r.now().Add(-age)
	return r.db.Exec(ctx, `DELETE FROM match_sessions WHERE created_at < $1`, cutoff)
}

// ValidApplicationStatus reports whether status is blank or one of
// ApplicationStatuses.
func ValidApplicationStatus(status string) bool {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return true
	}
	for _, s := range ApplicationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func applicationStatus(status string) string {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return ApplicationStatuses[0]
	}
	return status
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func nonNilMatches(in []MatchSummary) []MatchSummary {
	if in == nil {
		return []MatchSummary{}
	}
	return in
}
