package catalog

// Stream is a top-level academic track.
type Stream string

const (
	StreamScience    Stream = "Science"
	StreamArts       Stream = "Arts"
	StreamCommerce   Stream = "Commerce"
	StreamVocational Stream = "Vocational"
)

// Streams lists the closed set of streams in classifier priority order.
var Streams = []Stream{StreamScience, StreamArts, StreamCommerce, StreamVocational}

// Valid reports whether s is one of the four known streams.
func (s Stream) Valid() bool {
	for _, known := range Streams {
		if s == known {
			return true
		}
	}
	return false
}

// QuizCategory is one broad interest category of the stage-one quiz. Its
// questions are answered under the keys "<name>_0", "<name>_1", ...
type QuizCategory struct {
	Name      string   `json:"name" validate:"required"`
	Questions []string `json:"questions" validate:"min=1,dive,required"`
}

// Interest is a fine-grained rating key used when picking a subject inside a
// stream, with the subject and career it leads to.
type Interest struct {
	Key     string `json:"key" validate:"required"`
	Prompt  string `json:"prompt"`
	Subject string `json:"subject" validate:"required"`
	Career  string `json:"career" validate:"required"`
}

// Track holds a stream's interests. The order of Interests is significant:
// on a rating tie the earlier interest wins.
type Track struct {
	Stream    Stream     `json:"stream" validate:"required,oneof=Science Arts Commerce Vocational"`
	Interests []Interest `json:"interests" validate:"min=1,dive"`
}

// College is a read-only college record.
type College struct {
	ID                     int      `json:"college_id" validate:"gt=0"`
	Name                   string   `json:"college_name" validate:"required"`
	City                   string   `json:"city" validate:"required"`
	Stream                 Stream   `json:"stream" validate:"required,oneof=Science Arts Commerce Vocational"`
	Subjects               []string `json:"subjects" validate:"min=1,unique,dive,required"`
	DistanceKM             float64  `json:"distance_km" validate:"gte=0"`
	Rating                 float64  `json:"rating" validate:"gte=0,lte=5"`
	TuitionFees            int      `json:"tuition_fees" validate:"gte=0"`
	Facilities             []string `json:"facilities"`
	Accreditation          string   `json:"accreditation"`
	FacultyCount           int      `json:"faculty_count" validate:"gte=0"`
	AveragePackage         float64  `json:"average_package" validate:"gte=0"`
	PlacementOpportunities string   `json:"placement_opportunities"`
	Hostel                 bool     `json:"hostel"`
	TransportAvailable     bool     `json:"transport_available"`
	Scholarship            bool     `json:"scholarship"`
	ScholarshipEligibility string   `json:"scholarship_eligibility"`
}

// Offers reports whether the college teaches subject.
func (c College) Offers(subject string) bool {
	for _, s := range c.Subjects {
		if s == subject {
			return true
		}
	}
	return false
}

// Dataset is the serialized form of a catalog, as embedded, written to a file
// or seeded into SQL.
type Dataset struct {
	Quiz     []QuizCategory `json:"quiz" validate:"min=1,dive"`
	Tracks   []Track        `json:"tracks" validate:"min=1,dive"`
	Colleges []College      `json:"colleges" validate:"dive"`
}
