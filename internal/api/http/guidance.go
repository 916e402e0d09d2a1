// internal/api/http/guidance.go
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/mindengage-guidance/internal/catalog"
	"github.com/mind-engage/mindengage-guidance/internal/logging"
	"github.com/mind-engage/mindengage-guidance/internal/metrics"
	"github.com/mind-engage/mindengage-guidance/internal/recommend"
)

const noCareerDetail = "Could not determine a career path with given data."

type predictStreamRequest struct {
	QuizResponses      ratings  `json:"quiz_responses" validate:"required"`
	MathsMarks         *float64 `json:"maths_marks_percent" validate:"required"`
	SocialScienceMarks *float64 `json:"social_science_marks_percent" validate:"required"`
	CommerceMarks      float64  `json:"commerce_marks_percent"`
}

type streamResponse struct {
	RecommendedStream catalog.Stream     `json:"recommended_stream"`
	CalculatedScores  map[string]float64 `json:"calculated_scores"`
}

type careerRequest struct {
	Stream    string  `json:"stream" validate:"required"`
	Interests ratings `json:"interests" validate:"required"`
}

type careerResponse struct {
	RecommendedSubject string `json:"recommended_subject"`
	RecommendedCareer  string `json:"recommended_career"`
}

type collegesRequest struct {
	Stream      string `json:"stream" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	MaxColleges int    `json:"max_colleges" validate:"gte=0"`
}

// CollegeResponse is the short college record of /recommend-colleges.
type CollegeResponse struct {
	ID          int      `json:"college_id"`
	Name        string   `json:"college_name"`
	City        string   `json:"city"`
	Rating      float64  `json:"rating"`
	DistanceKM  float64  `json:"distance_km"`
	TuitionFees int      `json:"tuition_fees"`
	Facilities  []string `json:"facilities"`
}

func WelcomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the Career Guidance API"})
	}
}

// QuizQuestionsHandler returns category -> ordered question texts.
func QuizQuestionsHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := map[string][]string{}
		for _, q := range cat.Quiz() {
			out[q.Name] = q.Questions
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func PredictStreamHandler(eng *recommend.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req predictStreamRequest
		if !decodeBody(w, r, &req) {
			return
		}
		res := eng.PredictStream(recommend.QuizResponse(req.QuizResponses), recommend.Marks{
			Maths:         *req.MathsMarks,
			SocialScience: *req.SocialScienceMarks,
			Commerce:      req.CommerceMarks,
		})
		metrics.RecordStream(string(res.Stream))
		logging.Ctx(r.Context()).Debug().
			Str("stream", string(res.Stream)).
			Int("answers", len(req.QuizResponses)).
			Msg("stream predicted")
		writeJSON(w, http.StatusOK, streamResponse{
			RecommendedStream: res.Stream,
			CalculatedScores:  res.Scores,
		})
	}
}

func InterestsHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stream := catalog.Stream(chi.URLParam(r, "stream"))
		keys, ok := cat.InterestKeys(stream)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid stream")
			return
		}
		writeJSON(w, http.StatusOK, keys)
	}
}

func RecommendCareerHandler(eng *recommend.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req careerRequest
		if !decodeBody(w, r, &req) {
			return
		}
		stream := catalog.Stream(req.Stream)
		sc, ok := eng.RecommendCareer(stream, recommend.InterestRatings(req.Interests))
		if !ok {
			metrics.RecordRecommendation(metrics.StageCareer, metrics.ResultNoDecision)
			logging.Ctx(r.Context()).Debug().Str("stream", string(stream)).Msg("no career decision")
			writeError(w, http.StatusNotFound, noCareerDetail)
			return
		}
		metrics.RecordRecommendation(metrics.StageCareer, metrics.ResultOK)
		logging.Ctx(r.Context()).Debug().
			Str("stream", string(stream)).
			Str("subject", sc.Subject).
			Str("career", sc.Career).
			Msg("career recommended")
		writeJSON(w, http.StatusOK, careerResponse{
			RecommendedSubject: sc.Subject,
			RecommendedCareer:  sc.Career,
		})
	}
}

// RecommendCollegesHandler ranks colleges. max_colleges of 0 or absent means
// defaultMax.
func RecommendCollegesHandler(eng *recommend.Engine, defaultMax int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req collegesRequest
		if !decodeBody(w, r, &req) {
			return
		}
		limit := req.MaxColleges
		if limit == 0 {
			limit = defaultMax
		}
		ranked := eng.RecommendColleges(catalog.Stream(req.Stream), req.Subject, limit)
		recordColleges(len(ranked))
		out := make([]CollegeResponse, 0, len(ranked))
		for _, c := range ranked {
			out = append(out, CollegeResponse{
				ID:          c.ID,
				Name:        c.Name,
				City:        c.City,
				Rating:      c.Rating,
				DistanceKM:  c.DistanceKM,
				TuitionFees: c.TuitionFees,
				Facilities:  nonNil(c.Facilities),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func recordColleges(n int) {
	if n == 0 {
		metrics.RecordRecommendation(metrics.StageColleges, metrics.ResultEmpty)
		return
	}
	metrics.RecordRecommendation(metrics.StageColleges, metrics.ResultOK)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
