package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goccy/go-json"
)

// SQLStore keeps the catalog in the quiz_questions, interests and colleges
// tables created by db.Open. Row order is carried by explicit position
// columns so the interest tie-break order survives a round trip.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore works with either driver; the $N placeholders are accepted by
// both pgx and modernc sqlite.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Empty reports whether no colleges and no interests are stored yet.
func (s *SQLStore) Empty(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM interests) + (SELECT COUNT(*) FROM colleges)`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}

// Replace validates ds and swaps the stored catalog for it in one transaction.
func (s *SQLStore) Replace(ctx context.Context, ds Dataset) error {
	if err := Validate(ds); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"quiz_questions", "interests", "colleges"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	for ci, q := range ds.Quiz {
		for qi, text := range q.Questions {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO quiz_questions (category,category_pos,question_pos,text) VALUES ($1,$2,$3,$4)`,
				q.Name, ci, qi, text); err != nil {
				return fmt.Errorf("insert question %s/%d: %w", q.Name, qi, err)
			}
		}
	}
	for ti, t := range ds.Tracks {
		for pos, in := range t.Interests {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO interests (stream,stream_pos,position,key,prompt,subject,career) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
				string(t.Stream), ti, pos, in.Key, in.Prompt, in.Subject, in.Career); err != nil {
				return fmt.Errorf("insert interest %s/%s: %w", t.Stream, in.Key, err)
			}
		}
	}
	for pos, c := range ds.Colleges {
		subjects, err := json.Marshal(c.Subjects)
		if err != nil {
			return err
		}
		facilities, err := json.Marshal(nonNil(c.Facilities))
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO colleges
			(id,position,name,city,stream,subjects_json,distance_km,rating,tuition_fees,facilities_json,
			 accreditation,faculty_count,average_package,placement_opportunities,hostel,transport_available,
			 scholarship,scholarship_eligibility)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
			c.ID, pos, c.Name, c.City, string(c.Stream), string(subjects), c.DistanceKM, c.Rating, c.TuitionFees,
			string(facilities), c.Accreditation, c.FacultyCount, c.AveragePackage, c.PlacementOpportunities,
			c.Hostel, c.TransportAvailable, c.Scholarship, c.ScholarshipEligibility); err != nil {
			return fmt.Errorf("insert college %d: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

// Seed stores ds only when the store is empty. It reports whether it wrote.
func (s *SQLStore) Seed(ctx context.Context, ds Dataset) (bool, error) {
	empty, err := s.Empty(ctx)
	if err != nil {
		return false, err
	}
	if !empty {
		return false, nil
	}
	return true, s.Replace(ctx, ds)
}

// Load implements Source.
func (s *SQLStore) Load(ctx context.Context) (Dataset, error) {
	var ds Dataset
	var err error
	if ds.Quiz, err = s.loadQuiz(ctx); err != nil {
		return Dataset{}, fmt.Errorf("load quiz: %w", err)
	}
	if ds.Tracks, err = s.loadTracks(ctx); err != nil {
		return Dataset{}, fmt.Errorf("load interests: %w", err)
	}
	if ds.Colleges, err = s.loadColleges(ctx); err != nil {
		return Dataset{}, fmt.Errorf("load colleges: %w", err)
	}
	return ds, nil
}

func (s *SQLStore) loadQuiz(ctx context.Context) ([]QuizCategory, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, text FROM quiz_questions ORDER BY category_pos, question_pos`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []QuizCategory
	for rows.Next() {
		var cat, text string
		if err := rows.Scan(&cat, &text); err != nil {
			return nil, err
		}
		if n := len(out); n == 0 || out[n-1].Name != cat {
			out = append(out, QuizCategory{Name: cat})
		}
		last := &out[len(out)-1]
		last.Questions = append(last.Questions, text)
	}
	return out, rows.Err()
}

func (s *SQLStore) loadTracks(ctx context.Context) ([]Track, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT stream, key, prompt, subject, career FROM interests ORDER BY stream_pos, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Track
	for rows.Next() {
		var stream string
		var in Interest
		if err := rows.Scan(&stream, &in.Key, &in.Prompt, &in.Subject, &in.Career); err != nil {
			return nil, err
		}
		if n := len(out); n == 0 || out[n-1].Stream != Stream(stream) {
			out = append(out, Track{Stream: Stream(stream)})
		}
		last := &out[len(out)-1]
		last.Interests = append(last.Interests, in)
	}
	return out, rows.Err()
}

func (s *SQLStore) loadColleges(ctx context.Context) ([]College, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,name,city,stream,subjects_json,distance_km,rating,tuition_fees,
		facilities_json,accreditation,faculty_count,average_package,placement_opportunities,hostel,
		transport_available,scholarship,scholarship_eligibility
		FROM colleges ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []College
	for rows.Next() {
		var c College
		var stream, subjects, facilities string
		if err := rows.Scan(&c.ID, &c.Name, &c.City, &stream, &subjects, &c.DistanceKM, &c.Rating, &c.TuitionFees,
			&facilities, &c.Accreditation, &c.FacultyCount, &c.AveragePackage, &c.PlacementOpportunities,
			&c.Hostel, &c.TransportAvailable, &c.Scholarship, &c.ScholarshipEligibility); err != nil {
			return nil, err
		}
		c.Stream = Stream(stream)
		if err := json.Unmarshal([]byte(subjects), &c.Subjects); err != nil {
			return nil, fmt.Errorf("college %d subjects: %w", c.ID, err)
		}
		if err := json.Unmarshal([]byte(facilities), &c.Facilities); err != nil {
			return nil, fmt.Errorf("college %d facilities: %w", c.ID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
