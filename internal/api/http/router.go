// internal/api/http/router.go
package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/mindengage-guidance/internal/recommend"
)

// Limits caps the number of colleges each college endpoint returns.
type Limits struct {
	DefaultMaxColleges int
	LegacyMaxColleges  int
}

// Mount registers the guidance API on r.
func Mount(r chi.Router, eng *recommend.Engine, lim Limits) {
	if lim.DefaultMaxColleges <= 0 {
		lim.DefaultMaxColleges = recommend.DefaultMaxColleges
	}
	if lim.LegacyMaxColleges <= 0 {
		lim.LegacyMaxColleges = recommend.LegacyMaxColleges
	}
	cat := eng.Catalog()

	r.Get("/", WelcomeHandler())
	r.Get("/quiz-questions", QuizQuestionsHandler(cat))
	r.Post("/predict-stream", PredictStreamHandler(eng))
	r.Get("/interests/{stream}", InterestsHandler(cat))
	r.Post("/recommend-career", RecommendCareerHandler(eng))
	r.Post("/recommend-colleges", RecommendCollegesHandler(eng, lim.DefaultMaxColleges))

	r.Post("/stage1", Stage1Handler(eng))
	r.Post("/stage2", Stage2Handler(eng))
	r.Post("/stage3", Stage3Handler(eng, lim.LegacyMaxColleges))
}
