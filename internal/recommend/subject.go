package recommend

import "github.com/mind-engage/mindengage-guidance/internal/catalog"

// InterestRatings maps a stream-specific interest key to a 1-5 rating.
type InterestRatings map[string]int

// SubjectCareer is the outcome of the subject selection step.
type SubjectCareer struct {
	Interest string
	Subject  string
	Career   string
}

// InterestTable yields a stream's interests in tie-break order.
type InterestTable interface {
	Interests(s catalog.Stream) ([]catalog.Interest, bool)
}

// SelectSubjectCareer picks the stream interest with the highest rating and
// returns its subject and career. Unrated interests count as 0. On a tie the
// interest listed first in the table wins. ok is false when the stream is
// unknown or has no interests.
func SelectSubjectCareer(table InterestTable, stream catalog.Stream, ratings InterestRatings) (SubjectCareer, bool) {
	interests, known := table.Interests(stream)
	if !known || len(interests) == 0 {
		return SubjectCareer{}, false
	}
	best := 0
	for i := 1; i < len(interests); i++ {
		if ratings[interests[i].Key] > ratings[interests[best].Key] {
			best = i
		}
	}
	in := interests[best]
	return SubjectCareer{Interest: in.Key, Subject: in.Subject, Career: in.Career}, true
}
