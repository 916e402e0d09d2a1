package tui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-guidance/internal/catalog"
	"github.com/mind-engage/mindengage-guidance/internal/recommend"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = send(t, m, keyPress(r))
	}
	return m
}

func newWizard() Model {
	return New(recommend.NewEngine(catalog.Default()), recommend.DefaultMaxColleges)
}

// answerQuiz rates the scientific interest questions 5 and everything else 1.
func answerQuiz(t *testing.T, m Model) Model {
	t.Helper()
	for m.phase == phaseQuiz {
		q := m.questions[m.qi]
		if recommend.CategoryFromKey(q.key) == recommend.KeyScientificInterest {
			m = send(t, m, keyPress('5'))
		} else {
			m = send(t, m, keyPress('1'))
		}
	}
	return m
}

func TestWizard_FullFlow(t *testing.T) {
	m := newWizard()
	require.Len(t, m.questions, 24)

	m = answerQuiz(t, m)
	require.Equal(t, phaseMarks, m.phase)
	assert.Len(t, m.answers, 24)

	m = typeText(t, m, "85")
	m = send(t, m, specialKey(tea.KeyEnter))
	m = typeText(t, m, "40")
	m = send(t, m, specialKey(tea.KeyEnter))
	m = send(t, m, specialKey(tea.KeyEnter)) // commerce left empty

	require.Equal(t, phaseInterests, m.phase)
	assert.Equal(t, catalog.StreamScience, m.Session().Stream)
	assert.Contains(t, m.render(), "Science")

	// math, chemistry, biology, cs, physics
	m = send(t, m, keyPress('2'), keyPress('2'), keyPress('5'), keyPress('3'), keyPress('1'))

	require.Equal(t, phaseResults, m.phase)
	s := m.Session()
	assert.Equal(t, "Biology", s.Subject)
	assert.Equal(t, "Doctor", s.Career)

	ids := []int{}
	for _, c := range m.Colleges() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []int{4, 3}, ids)
	assert.Contains(t, m.render(), "Doctor")
}

func TestWizard_IgnoresOutOfRangeRatings(t *testing.T) {
	m := newWizard()
	m = send(t, m, keyPress('0'), keyPress('9'), keyPress('x'))
	assert.Equal(t, 0, m.qi)
	assert.Empty(t, m.answers)

	m = send(t, m, keyPress('4'))
	assert.Equal(t, 1, m.qi)
}

func TestWizard_BackspaceRevisitsQuestion(t *testing.T) {
	m := newWizard()
	m = send(t, m, keyPress('4'), keyPress('2'), specialKey(tea.KeyBackspace))
	assert.Equal(t, 1, m.qi)

	m = send(t, m, keyPress('5'))
	assert.Equal(t, 5, m.answers[m.questions[1].key])
}

func TestWizard_RejectsBadMarks(t *testing.T) {
	m := answerQuiz(t, newWizard())

	m = send(t, m, specialKey(tea.KeyEnter))
	assert.Equal(t, 0, m.mi)
	assert.NotEmpty(t, m.err)

	m = typeText(t, m, "150")
	m = send(t, m, specialKey(tea.KeyEnter))
	assert.Equal(t, 0, m.mi)
	assert.Contains(t, m.err, "between 0 and 100")
}

func TestWizard_NoMarksFallsBackToVocational(t *testing.T) {
	m := answerQuiz(t, newWizard())
	m = typeText(t, m, "0")
	m = send(t, m, specialKey(tea.KeyEnter))
	m = typeText(t, m, "0")
	m = send(t, m, specialKey(tea.KeyEnter), specialKey(tea.KeyEnter))
	assert.Equal(t, catalog.StreamVocational, m.Session().Stream)
}

func TestWizard_RestartAndQuit(t *testing.T) {
	m := answerQuiz(t, newWizard())
	m = typeText(t, m, "90")
	m = send(t, m, specialKey(tea.KeyEnter))
	m = typeText(t, m, "10")
	m = send(t, m, specialKey(tea.KeyEnter), specialKey(tea.KeyEnter))
	for m.phase == phaseInterests {
		m = send(t, m, keyPress('3'))
	}
	require.Equal(t, phaseResults, m.phase)

	m = send(t, m, keyPress('r'))
	assert.Equal(t, phaseQuiz, m.phase)
	assert.False(t, m.Session().HasStream())
	assert.Empty(t, m.answers)

	_, cmd := m.Update(specialKey(tea.KeyEscape))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestParseMark(t *testing.T) {
	tests := []struct {
		in       string
		optional bool
		want     float64
		wantErr  bool
	}{
		{"72.5", false, 72.5, false},
		{" 100 ", false, 100, false},
		{"", true, 0, false},
		{"", false, 0, true},
		{"-1", false, 0, true},
		{"abc", false, 0, true},
	}
	for _, tt := range tests {
		got, err := parseMark(tt.in, tt.optional)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}
