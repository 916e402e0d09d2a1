package recommend

import "github.com/mind-engage/mindengage-guidance/internal/catalog"

// Fixed confidence figures reported by the legacy stage endpoints. They are
// placeholders, not computed.
const (
	StreamConfidencePercent  = 85.0
	SubjectConfidencePercent = 88.0
	CareerConfidencePercent  = 90.0
)

// Engine runs the decision rules against one catalog.
type Engine struct {
	cat *catalog.Catalog
}

func NewEngine(c *catalog.Catalog) *Engine {
	return &Engine{cat: c}
}

func (e *Engine) Catalog() *catalog.Catalog { return e.cat }

// StreamResult is the output of the first step.
type StreamResult struct {
	Stream catalog.Stream
	Scores CategoryScore
}

// PredictStream aggregates quiz answers and classifies the resulting profile.
func (e *Engine) PredictStream(resp QuizResponse, m Marks) StreamResult {
	scores := Aggregate(resp)
	return StreamResult{Stream: ClassifyStream(NewProfile(scores, m)), Scores: scores}
}

// RecommendCareer selects a subject and career within stream.
func (e *Engine) RecommendCareer(stream catalog.Stream, ratings InterestRatings) (SubjectCareer, bool) {
	return SelectSubjectCareer(e.cat, stream, ratings)
}

// RecommendColleges ranks the catalog's colleges for stream and subject.
func (e *Engine) RecommendColleges(stream catalog.Stream, subject string, limit int) []catalog.College {
	return RankColleges(e.cat.Colleges(), stream, subject, limit)
}

// LegacyQuizResponse picks the "Q<n>" answers out of a flat stage-one form and
// rekeys them as quiz responses. Other keys (marks, gender, location) are
// ignored.
func (e *Engine) LegacyQuizResponse(form map[string]int) QuizResponse {
	out := QuizResponse{}
	for k, v := range form {
		if qk, ok := e.cat.LegacyQuizKey(k); ok {
			out[qk] = v
		}
	}
	return out
}

// Session is the state one guidance step hands to the next. Each step returns
// a new Session; nothing is kept between calls.
type Session struct {
	Stream  catalog.Stream
	Scores  CategoryScore
	Subject string
	Career  string
}

// HasStream reports whether the stream step has run.
func (s Session) HasStream() bool { return s.Stream != "" }

// HasSubject reports whether the subject step produced a decision.
func (s Session) HasSubject() bool { return s.Subject != "" }

// StartSession runs the stream step.
func (e *Engine) StartSession(resp QuizResponse, m Marks) Session {
	r := e.PredictStream(resp, m)
	return Session{Stream: r.Stream, Scores: r.Scores}
}

// ChooseSubject runs the subject step on top of s. When no decision can be
// made the returned session has no subject and ok is false.
func (e *Engine) ChooseSubject(s Session, ratings InterestRatings) (Session, bool) {
	sc, ok := e.RecommendCareer(s.Stream, ratings)
	next := Session{Stream: s.Stream, Scores: s.Scores}
	if !ok {
		return next, false
	}
	next.Subject, next.Career = sc.Subject, sc.Career
	return next, true
}

// Colleges runs the college step for s.
func (e *Engine) Colleges(s Session, limit int) []catalog.College {
	return e.RecommendColleges(s.Stream, s.Subject, limit)
}
