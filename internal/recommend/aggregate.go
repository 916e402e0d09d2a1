package recommend

import "strings"

// QuizResponse maps "<category>_<index>" to a 1-5 rating.
type QuizResponse map[string]int

// CategoryScore maps a quiz category to the mean of its ratings.
type CategoryScore map[string]float64

// CategoryFromKey strips the trailing "_<index>" segment of a quiz key by
// splitting on the last underscore. A key without an underscore is its own
// category.
func CategoryFromKey(key string) string {
	i := strings.LastIndexByte(key, '_')
	if i < 0 {
		return key
	}
	return key[:i]
}

// Aggregate averages ratings per category. The segment after the last
// underscore is dropped whatever it contains, so a malformed key such as
// "creativity_score" groups under "creativity".
func Aggregate(resp QuizResponse) CategoryScore {
	type acc struct {
		sum   float64
		count int
	}
	sums := map[string]*acc{}
	for key, rating := range resp {
		cat := CategoryFromKey(key)
		a, ok := sums[cat]
		if !ok {
			a = &acc{}
			sums[cat] = a
		}
		a.sum += float64(rating)
		a.count++
	}
	out := make(CategoryScore, len(sums))
	for cat, a := range sums {
		out[cat] = a.sum / float64(a.count)
	}
	return out
}
