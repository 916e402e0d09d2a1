package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/mind-engage/mindengage-guidance/internal/catalog"
	"github.com/mind-engage/mindengage-guidance/internal/recommend"
	"github.com/mind-engage/mindengage-guidance/internal/server"
	"github.com/mind-engage/mindengage-guidance/internal/validation"
)

type recommendInput struct {
	QuizResponses      map[string]int `json:"quiz_responses" validate:"required"`
	MathsMarks         float64        `json:"maths_marks_percent"`
	SocialScienceMarks float64        `json:"social_science_marks_percent"`
	CommerceMarks      float64        `json:"commerce_marks_percent"`
	Interests          map[string]int `json:"interests"`
	MaxColleges        int            `json:"max_colleges" validate:"gte=0"`
}

type recommendOutput struct {
	Stream   catalog.Stream     `json:"recommended_stream"`
	Scores   map[string]float64 `json:"calculated_scores"`
	Subject  string             `json:"recommended_subject,omitempty"`
	Career   string             `json:"recommended_career,omitempty"`
	Colleges []catalog.College  `json:"recommended_colleges"`
}

func newRecommendCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Run all three steps on a JSON answer sheet",
		Long: "Reads quiz answers, marks and interest ratings as JSON (from --input or stdin)\n" +
			"and prints the stream, subject, career and colleges as JSON.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cat, dbh, err := server.LoadCatalog(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if dbh != nil {
				defer dbh.Close()
			}

			var r io.Reader = cmd.InOrStdin()
			if input != "" && input != "-" {
				f, err := os.Open(input)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			limit := cfg.Recommend.DefaultMaxColleges
			return runRecommend(recommend.NewEngine(cat), r, cmd.OutOrStdout(), limit)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "answer sheet JSON file (default stdin)")
	return cmd
}

func runRecommend(eng *recommend.Engine, r io.Reader, w io.Writer, defaultLimit int) error {
	var in recommendInput
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	if err := validation.Struct(&in); err != nil {
		return err
	}

	s := eng.StartSession(recommend.QuizResponse(in.QuizResponses), recommend.Marks{
		Maths:         in.MathsMarks,
		SocialScience: in.SocialScienceMarks,
		Commerce:      in.CommerceMarks,
	})
	out := recommendOutput{Stream: s.Stream, Scores: s.Scores, Colleges: []catalog.College{}}
	if next, ok := eng.ChooseSubject(s, recommend.InterestRatings(in.Interests)); ok {
		limit := in.MaxColleges
		if limit == 0 {
			limit = defaultLimit
		}
		out.Subject, out.Career = next.Subject, next.Career
		out.Colleges = eng.Colleges(next, limit)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
