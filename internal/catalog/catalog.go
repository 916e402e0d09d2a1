// Package catalog owns the static reference data behind the guidance flow:
// quiz questions, the per-stream interest → subject/career table and the
// college list. A Catalog is immutable once built and safe to share between
// goroutines.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/mind-engage/mindengage-guidance/internal/validation"
)

// ErrInvalidCatalog wraps every problem found while validating a dataset.
var ErrInvalidCatalog = errors.New("invalid catalog")

type Catalog struct {
	quiz     []QuizCategory
	tracks   map[Stream][]Interest
	order    []Stream
	colleges []College
	legacy   map[string]string // "Q7" -> "communication_skill_score_0"
}

// New validates ds and builds a Catalog from a private copy of it.
func New(ds Dataset) (*Catalog, error) {
	if err := Validate(ds); err != nil {
		return nil, err
	}
	c := &Catalog{
		quiz:     make([]QuizCategory, 0, len(ds.Quiz)),
		tracks:   make(map[Stream][]Interest, len(ds.Tracks)),
		colleges: make([]College, 0, len(ds.Colleges)),
		legacy:   map[string]string{},
	}
	n := 0
	for _, q := range ds.Quiz {
		c.quiz = append(c.quiz, QuizCategory{Name: q.Name, Questions: slices.Clone(q.Questions)})
		for i := range q.Questions {
			n++
			c.legacy["Q"+strconv.Itoa(n)] = QuizKey(q.Name, i)
		}
	}
	for _, t := range ds.Tracks {
		c.tracks[t.Stream] = slices.Clone(t.Interests)
		c.order = append(c.order, t.Stream)
	}
	for _, col := range ds.Colleges {
		col.Subjects = slices.Clone(col.Subjects)
		col.Facilities = slices.Clone(col.Facilities)
		c.colleges = append(c.colleges, col)
	}
	return c, nil
}

// Validate checks struct rules plus the cross-record ones struct tags cannot
// express: unique category names, one track per stream, unique interest keys
// and unique college ids.
func Validate(ds Dataset) error {
	if err := validation.Struct(&ds); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	cats := map[string]bool{}
	for _, q := range ds.Quiz {
		if cats[q.Name] {
			return fmt.Errorf("%w: duplicate quiz category %q", ErrInvalidCatalog, q.Name)
		}
		cats[q.Name] = true
	}
	streams := map[Stream]bool{}
	for _, t := range ds.Tracks {
		if streams[t.Stream] {
			return fmt.Errorf("%w: duplicate track for stream %q", ErrInvalidCatalog, t.Stream)
		}
		streams[t.Stream] = true
		keys := map[string]bool{}
		for _, in := range t.Interests {
			if keys[in.Key] {
				return fmt.Errorf("%w: duplicate interest %q in stream %q", ErrInvalidCatalog, in.Key, t.Stream)
			}
			keys[in.Key] = true
		}
	}
	ids := map[int]bool{}
	for _, col := range ds.Colleges {
		if ids[col.ID] {
			return fmt.Errorf("%w: duplicate college_id %d", ErrInvalidCatalog, col.ID)
		}
		ids[col.ID] = true
	}
	return nil
}

// QuizKey builds the response key for the index-th question of a category.
func QuizKey(category string, index int) string {
	return category + "_" + strconv.Itoa(index)
}

// Quiz returns the quiz categories in presentation order.
func (c *Catalog) Quiz() []QuizCategory {
	out := make([]QuizCategory, len(c.quiz))
	for i, q := range c.quiz {
		out[i] = QuizCategory{Name: q.Name, Questions: slices.Clone(q.Questions)}
	}
	return out
}

// Interests returns the ordered interests of a stream. ok is false for a
// stream the catalog has no track for.
func (c *Catalog) Interests(s Stream) ([]Interest, bool) {
	in, ok := c.tracks[s]
	if !ok {
		return nil, false
	}
	return slices.Clone(in), true
}

// InterestKeys returns only the keys of Interests(s), in order.
func (c *Catalog) InterestKeys(s Stream) ([]string, bool) {
	in, ok := c.tracks[s]
	if !ok {
		return nil, false
	}
	keys := make([]string, len(in))
	for i, x := range in {
		keys[i] = x.Key
	}
	return keys, true
}

// Streams returns the streams that have a track, in dataset order.
func (c *Catalog) Streams() []Stream { return slices.Clone(c.order) }

// Colleges returns the college list in table order.
func (c *Catalog) Colleges() []College { return slices.Clone(c.colleges) }

// LegacyQuizKey maps a flat "Q<n>" key from the old web form onto a quiz
// response key. Questions are numbered from 1 across categories in order.
func (c *Catalog) LegacyQuizKey(q string) (string, bool) {
	k, ok := c.legacy[q]
	return k, ok
}

// Dataset returns the catalog in serializable form.
func (c *Catalog) Dataset() Dataset {
	ds := Dataset{Quiz: c.Quiz(), Colleges: c.Colleges()}
	for _, s := range c.order {
		ds.Tracks = append(ds.Tracks, Track{Stream: s, Interests: slices.Clone(c.tracks[s])})
	}
	return ds
}
