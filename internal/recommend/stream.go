package recommend

import "github.com/mind-engage/mindengage-guidance/internal/catalog"

// Profile keys read by the classifier.
const (
	KeyScientificInterest = "scientific_interest_score"
	KeyCreativity         = "creativity_score"
	KeyBusinessInterest   = "business_interest_score"
	KeyMathsMarks         = "maths_marks_percent"
	KeySocialScienceMarks = "social_science_marks_percent"
	KeyCommerceMarks      = "commerce_marks_percent"
)

// Profile is a student's category scores plus marks percentages. Absent keys
// read as 0.
type Profile map[string]float64

// Marks are the three percentages that join the quiz scores in a Profile.
type Marks struct {
	Maths         float64
	SocialScience float64
	Commerce      float64
}

// NewProfile merges category scores with marks. Marks win on a key clash.
func NewProfile(scores CategoryScore, m Marks) Profile {
	p := make(Profile, len(scores)+3)
	for k, v := range scores {
		p[k] = v
	}
	p[KeyMathsMarks] = m.Maths
	p[KeySocialScienceMarks] = m.SocialScience
	p[KeyCommerceMarks] = m.Commerce
	return p
}

// streamRule fires when both the interest score and the marks are strictly
// above their thresholds.
type streamRule struct {
	stream        catalog.Stream
	interestKey   string
	interestAbove float64
	marksKey      string
	marksAbove    float64
}

// streamRules are evaluated in order; the first match wins, so Science beats
// Arts beats Commerce when a profile satisfies several.
var streamRules = []streamRule{
	{catalog.StreamScience, KeyScientificInterest, 3.5, KeyMathsMarks, 70},
	{catalog.StreamArts, KeyCreativity, 3.5, KeySocialScienceMarks, 60},
	{catalog.StreamCommerce, KeyBusinessInterest, 3.5, KeyCommerceMarks, 65},
}

// ClassifyStream picks exactly one stream for p. Vocational is returned when
// no rule matches.
func ClassifyStream(p Profile) catalog.Stream {
	for _, r := range streamRules {
		if p[r.interestKey] > r.interestAbove && p[r.marksKey] > r.marksAbove {
			return r.stream
		}
	}
	return catalog.StreamVocational
}
