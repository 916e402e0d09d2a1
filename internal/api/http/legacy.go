// internal/api/http/legacy.go
package http

import (
	"math"
	"net/http"
	"strings"

	"github.com/mind-engage/mindengage-guidance/internal/catalog"
	"github.com/mind-engage/mindengage-guidance/internal/logging"
	"github.com/mind-engage/mindengage-guidance/internal/metrics"
	"github.com/mind-engage/mindengage-guidance/internal/recommend"
)

// Handlers for the stage-by-stage web form. Bodies are flat JSON objects.

type stage1Response struct {
	PredictedStream   catalog.Stream     `json:"predicted_stream"`
	ConfidencePercent float64            `json:"confidence_percent"`
	CalculatedScores  map[string]float64 `json:"calculated_scores"`
}

type stage2Response struct {
	PredictedSubject         string  `json:"predicted_subject"`
	SubjectConfidencePercent float64 `json:"subject_confidence_percent"`
	PredictedCareer          string  `json:"predicted_career"`
	CareerConfidencePercent  float64 `json:"career_confidence_percent"`
}

type stage3Response struct {
	RecommendedColleges []catalog.College `json:"recommended_colleges"`
}

// Stage1Handler reads Q1..Qn answers and the three marks. gender_encoded and
// location_encoded are accepted and ignored.
func Stage1Handler(eng *recommend.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := decodeFlat(w, r)
		if !ok {
			return
		}
		form := map[string]int{}
		for k, v := range body {
			if n, ok := v.(float64); ok {
				form[k] = int(math.Round(n))
			}
		}
		res := eng.PredictStream(eng.LegacyQuizResponse(form), recommend.Marks{
			Maths:         number(body, recommend.KeyMathsMarks),
			SocialScience: number(body, recommend.KeySocialScienceMarks),
			Commerce:      number(body, recommend.KeyCommerceMarks),
		})
		metrics.RecordStream(string(res.Stream))
		logging.Ctx(r.Context()).Debug().Str("stream", string(res.Stream)).Msg("stage1 stream predicted")
		writeJSON(w, http.StatusOK, stage1Response{
			PredictedStream:   res.Stream,
			ConfidencePercent: recommend.StreamConfidencePercent,
			CalculatedScores:  res.Scores,
		})
	}
}

// Stage2Handler reads predicted_stream plus one rating per interest key.
func Stage2Handler(eng *recommend.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := decodeFlat(w, r)
		if !ok {
			return
		}
		stream, _ := body["predicted_stream"].(string)
		stream = strings.TrimSpace(stream)
		if stream == "" {
			writeError(w, http.StatusBadRequest, "predicted_stream is required")
			return
		}
		ratings := recommend.InterestRatings{}
		for k, v := range body {
			if n, ok := v.(float64); ok {
				ratings[k] = int(math.Round(n))
			}
		}
		sc, ok := eng.RecommendCareer(catalog.Stream(stream), ratings)
		if !ok {
			metrics.RecordRecommendation(metrics.StageCareer, metrics.ResultNoDecision)
			writeError(w, http.StatusNotFound, noCareerDetail)
			return
		}
		metrics.RecordRecommendation(metrics.StageCareer, metrics.ResultOK)
		logging.Ctx(r.Context()).Debug().Str("subject", sc.Subject).Msg("stage2 career recommended")
		writeJSON(w, http.StatusOK, stage2Response{
			PredictedSubject:         sc.Subject,
			SubjectConfidencePercent: recommend.SubjectConfidencePercent,
			PredictedCareer:          sc.Career,
			CareerConfidencePercent:  recommend.CareerConfidencePercent,
		})
	}
}

// Stage3Handler returns full college records for predicted_stream and
// predicted_subject.
func Stage3Handler(eng *recommend.Engine, limit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := decodeFlat(w, r)
		if !ok {
			return
		}
		stream, _ := body["predicted_stream"].(string)
		subject, _ := body["predicted_subject"].(string)
		if strings.TrimSpace(stream) == "" {
			writeError(w, http.StatusBadRequest, "predicted_stream is required")
			return
		}
		ranked := eng.RecommendColleges(catalog.Stream(strings.TrimSpace(stream)), subject, limit)
		recordColleges(len(ranked))
		writeJSON(w, http.StatusOK, stage3Response{RecommendedColleges: ranked})
	}
}

func number(body map[string]any, key string) float64 {
	n, _ := body[key].(float64)
	return n
}
