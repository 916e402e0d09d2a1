// Package tui is a terminal front end that walks a student through the three
// guidance steps: quiz and marks, stream interests, then nearby colleges.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/mind-engage/mindengage-guidance/internal/catalog"
	"github.com/mind-engage/mindengage-guidance/internal/recommend"
)

type phase int

const (
	phaseQuiz phase = iota
	phaseMarks
	phaseInterests
	phaseResults
)

type question struct {
	key  string
	text string
}

// Labels for the three marks inputs, in entry order.
var markLabels = [3]string{
	"Maths marks (%)",
	"Social science marks (%)",
	"Commerce marks (%, optional)",
}

// Model is the wizard state. The guidance state carried between steps lives
// in session; the rest is input bookkeeping.
type Model struct {
	eng   *recommend.Engine
	limit int

	phase     phase
	questions []question
	qi        int
	answers   recommend.QuizResponse

	marks [3]textinput.Model
	mi    int

	session   recommend.Session
	interests []catalog.Interest
	ii        int
	ratings   recommend.InterestRatings

	colleges []catalog.College
	err      string
	quitting bool
}

// New returns a wizard at the first quiz question. limit caps the colleges
// shown in the last step.
func New(eng *recommend.Engine, limit int) Model {
	m := Model{eng: eng, limit: limit}
	for _, cat := range eng.Catalog().Quiz() {
		for i, q := range cat.Questions {
			m.questions = append(m.questions, question{key: catalog.QuizKey(cat.Name, i), text: q})
		}
	}
	m.reset()
	return m
}

func (m *Model) reset() {
	m.phase = phaseQuiz
	m.qi = 0
	m.answers = recommend.QuizResponse{}
	for i := range m.marks {
		ti := textinput.New()
		ti.Placeholder = "0-100"
		ti.CharLimit = 6
		m.marks[i] = ti
	}
	m.mi = 0
	m.session = recommend.Session{}
	m.interests = nil
	m.ii = 0
	m.ratings = recommend.InterestRatings{}
	m.colleges = nil
	m.err = ""
}

// Session returns the guidance state reached so far.
func (m Model) Session() recommend.Session { return m.session }

// Colleges returns the ranked colleges once the last step is reached.
func (m Model) Colleges() []catalog.College { return m.colleges }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if m.phase == phaseMarks {
			var cmd tea.Cmd
			m.marks[m.mi], cmd = m.marks[m.mi].Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	}

	switch m.phase {
	case phaseQuiz:
		return m.updateQuiz(key)
	case phaseMarks:
		return m.updateMarks(key)
	case phaseInterests:
		return m.updateInterests(key)
	case phaseResults:
		switch key.String() {
		case "q":
			m.quitting = true
			return m, tea.Quit
		case "r":
			m.reset()
		}
	}
	return m, nil
}

// rating maps the keys "1".."5" to a rating.
func rating(key tea.KeyPressMsg) (int, bool) {
	s := key.String()
	if len(s) != 1 || s[0] < '1' || s[0] > '5' {
		return 0, false
	}
	return int(s[0] - '0'), true
}

func (m Model) updateQuiz(key tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.String() == "backspace" {
		if m.qi > 0 {
			m.qi--
		}
		return m, nil
	}
	r, ok := rating(key)
	if !ok {
		return m, nil
	}
	m.answers[m.questions[m.qi].key] = r
	m.qi++
	if m.qi < len(m.questions) {
		return m, nil
	}
	m.phase = phaseMarks
	return m, m.marks[0].Focus()
}

func (m Model) updateMarks(key tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.String() != "enter" {
		var cmd tea.Cmd
		m.marks[m.mi], cmd = m.marks[m.mi].Update(key)
		return m, cmd
	}

	optional := m.mi == len(m.marks)-1
	if _, err := parseMark(m.marks[m.mi].Value(), optional); err != nil {
		m.err = err.Error()
		return m, nil
	}
	m.err = ""
	m.marks[m.mi].Blur()
	if m.mi < len(m.marks)-1 {
		m.mi++
		return m, m.marks[m.mi].Focus()
	}

	maths, _ := parseMark(m.marks[0].Value(), false)
	social, _ := parseMark(m.marks[1].Value(), false)
	commerce, _ := parseMark(m.marks[2].Value(), true)
	m.session = m.eng.StartSession(m.answers, recommend.Marks{
		Maths:         maths,
		SocialScience: social,
		Commerce:      commerce,
	})
	m.interests, _ = m.eng.Catalog().Interests(m.session.Stream)
	m.phase = phaseInterests
	if len(m.interests) == 0 {
		return m.finish()
	}
	return m, nil
}

func (m Model) updateInterests(key tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.String() == "backspace" {
		if m.ii > 0 {
			m.ii--
		}
		return m, nil
	}
	r, ok := rating(key)
	if !ok {
		return m, nil
	}
	m.ratings[m.interests[m.ii].Key] = r
	m.ii++
	if m.ii < len(m.interests) {
		return m, nil
	}
	return m.finish()
}

func (m Model) finish() (tea.Model, tea.Cmd) {
	next, ok := m.eng.ChooseSubject(m.session, m.ratings)
	m.session = next
	m.phase = phaseResults
	if !ok {
		m.err = "Could not determine a career path with given data."
		return m, nil
	}
	m.colleges = m.eng.Colleges(m.session, m.limit)
	return m, nil
}

// parseMark reads a percentage. An empty optional field reads as 0.
func parseMark(s string, optional bool) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		if optional {
			return 0, nil
		}
		return 0, fmt.Errorf("a value is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if v < 0 || v > 100 {
		return 0, fmt.Errorf("marks must be between 0 and 100")
	}
	return v, nil
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	if !m.quitting {
		v.SetContent(m.render())
	}
	return v
}

func (m Model) render() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Career Guidance"))
	b.WriteString("\n\n")

	switch m.phase {
	case phaseQuiz:
		q := m.questions[m.qi]
		b.WriteString(stepStyle.Render(fmt.Sprintf("Step 1 of 3 · question %d of %d", m.qi+1, len(m.questions))))
		b.WriteString("\n\n")
		b.WriteString(promptStyle.Render(q.text))
		b.WriteString("\n\n")
		b.WriteString(hintStyle.Render("1 strongly disagree … 5 strongly agree · backspace to go back"))

	case phaseMarks:
		b.WriteString(stepStyle.Render("Step 1 of 3 · marks"))
		b.WriteString("\n\n")
		for i, label := range markLabels {
			b.WriteString(promptStyle.Render(label))
			b.WriteString("\n")
			b.WriteString(m.marks[i].View())
			b.WriteString("\n")
		}
		b.WriteString(hintStyle.Render("enter to confirm"))

	case phaseInterests:
		b.WriteString(stepStyle.Render(fmt.Sprintf("Step 2 of 3 · %s interest %d of %d", m.session.Stream, m.ii+1, len(m.interests))))
		b.WriteString("\n\n")
		b.WriteString("Recommended stream: ")
		b.WriteString(resultStyle.Render(string(m.session.Stream)))
		b.WriteString("\n\n")
		in := m.interests[m.ii]
		prompt := in.Prompt
		if prompt == "" {
			prompt = in.Key
		}
		b.WriteString(promptStyle.Render(prompt))
		b.WriteString("\n\n")
		b.WriteString(hintStyle.Render("rate 1-5"))

	case phaseResults:
		b.WriteString(stepStyle.Render("Step 3 of 3 · colleges"))
		b.WriteString("\n\n")
		b.WriteString("Stream:  " + resultStyle.Render(string(m.session.Stream)) + "\n")
		if m.session.HasSubject() {
			b.WriteString("Subject: " + resultStyle.Render(m.session.Subject) + "\n")
			b.WriteString("Career:  " + resultStyle.Render(m.session.Career) + "\n\n")
			if len(m.colleges) == 0 {
				b.WriteString("No matching colleges found.\n")
			}
			for i, c := range m.colleges {
				b.WriteString(collegeStyle.Render(fmt.Sprintf("%d. %s, %s · %.1f km · rating %.1f · fees %d",
					i+1, c.Name, c.City, c.DistanceKM, c.Rating, c.TuitionFees)))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("r to restart · q to quit"))
	}

	if m.err != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.err))
	}
	return b.String()
}

// Run starts the wizard on the terminal.
func Run(eng *recommend.Engine, limit int) error {
	_, err := tea.NewProgram(New(eng, limit)).Run()
	return err
}
