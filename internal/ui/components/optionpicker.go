package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abonetti/vetprep/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D", "E"}

// OptionPicker is a five-option answer selector. Unlike a submit-and-reveal
// widget it keeps the chosen index editable: quizzes and exams allow free
// navigation and answer changes until the paper is turned in.
type OptionPicker struct {
	Question string
	Options  []string

	// Cursor is the highlighted row.
	Cursor int

	// Chosen is the recorded answer, -1 when blank.
	Chosen int

	// Reveal switches to review rendering against CorrectIndex.
	Reveal       bool
	CorrectIndex int
}

// NewOptionPicker creates a picker with no recorded answer.
func NewOptionPicker(question string, options []string, chosen int) OptionPicker {
	return OptionPicker{
		Question: question,
		Options:  options,
		Chosen:   chosen,
	}
}

func (p OptionPicker) Init() tea.Cmd {
	return nil
}

// Update moves the cursor and records a choice on enter.
func (p OptionPicker) Update(msg tea.Msg) (OptionPicker, tea.Cmd) {
	if p.Reveal {
		return p, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if p.Cursor > 0 {
			p.Cursor--
		}
	case "down", "j":
		if p.Cursor < len(p.Options)-1 {
			p.Cursor++
		}
	case "enter", " ", "space":
		p.Chosen = p.Cursor
	}

	return p, nil
}

// View renders the picker.
func (p OptionPicker) View() string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(p.Question) + "\n\n"

	for i, opt := range p.Options {
		label := optionLabels[i%len(optionLabels)]
		marker := " "
		if i == p.Chosen {
			marker = "●"
		}
		cursor := "  "
		if i == p.Cursor && !p.Reveal {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%s %s)  %s", cursor, marker, label, opt)

		switch {
		case p.Reveal && i == p.CorrectIndex:
			s += theme.Correct.Render(line) + "\n"
		case p.Reveal && i == p.Chosen:
			s += theme.Incorrect.Render(line) + "\n"
		case p.Reveal:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == p.Cursor:
			s += theme.Selected.Render(line) + "\n"
		case i == p.Chosen:
			s += lipgloss.NewStyle().Foreground(theme.Secondary).Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}

	return s
}
