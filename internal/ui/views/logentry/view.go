package logentry

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	dashdto "endure/internal/modules/dashboard/dto"
	"endure/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type LogPort interface {
	LogWorkout(ctx context.Context, input dashdto.WorkoutInput) (dashdto.WorkoutOutput, error)
	LogSleep(ctx context.Context, input dashdto.SleepInput) (dashdto.SleepOutput, error)
	LogNutrition(ctx context.Context, input dashdto.NutritionInput) (dashdto.NutritionOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// SavedMsg reports a successful save; the root model returns to the
// dashboard, which the usecase has already refreshed.
type SavedMsg struct{ Kind Kind }

type saveFailedMsg struct{ err error }

// CancelledMsg asks the root model to leave the form without saving.
type CancelledMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

// Kind selects which entry form is shown.
type Kind int

const (
	KindWorkout Kind = iota
	KindSleep
	KindNutrition
)

func (k Kind) String() string {
	switch k {
	case KindSleep:
		return "sleep"
	case KindNutrition:
		return "nutrition"
	}
	return "workout"
}

type Model struct {
	port LogPort
	kind Kind
	form *huh.Form

	date        string
	workoutType string
	duration    string
	distance    string
	avgHR       string
	hours       string
	quality     string
	calories    string
	protein     string
	carbs       string
	fats        string

	errText string
	busy    bool
}

func New(port LogPort, kind Kind) Model {
	m := Model{port: port, kind: kind}
	m.form = m.newForm()
	return m
}

func requiredNumber(s string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return fmt.Errorf("must be a number")
	}
	return nil
}

func optionalNumber(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return requiredNumber(s)
}

func wholeNumberInRange(lo, hi int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("must be a whole number")
		}
		if v < lo || v > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

func optionalWholeNumber(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("must be a whole number")
	}
	return nil
}

func validDate(s string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func (m *Model) newForm() *huh.Form {
	m.date = time.Now().Format("2006-01-02")
	dateField := huh.NewInput().Key("date").Title("Date").
		Value(&m.date).Validate(validDate)

	var group *huh.Group
	switch m.kind {
	case KindSleep:
		group = huh.NewGroup(
			dateField,
			huh.NewInput().Key("hours").Title("Hours slept").
				Value(&m.hours).Validate(requiredNumber),
			huh.NewInput().Key("quality").Title("Quality (1-10)").
				Value(&m.quality).Validate(wholeNumberInRange(1, 10)),
		)
	case KindNutrition:
		group = huh.NewGroup(
			dateField,
			huh.NewInput().Key("calories").Title("Calories").
				Value(&m.calories).Validate(requiredNumber),
			huh.NewInput().Key("protein").Title("Protein, g").
				Value(&m.protein).Validate(optionalNumber),
			huh.NewInput().Key("carbs").Title("Carbs, g").
				Value(&m.carbs).Validate(optionalNumber),
			huh.NewInput().Key("fats").Title("Fats, g").
				Value(&m.fats).Validate(optionalNumber),
		)
	default:
		group = huh.NewGroup(
			dateField,
			huh.NewSelect[string]().Key("type").Title("Workout type").
				Options(huh.NewOptions("easy", "tempo", "interval", "long", "race", "rest")...).
				Value(&m.workoutType),
			huh.NewInput().Key("duration").Title("Duration, min").
				Value(&m.duration).Validate(requiredNumber),
			huh.NewInput().Key("distance").Title("Distance, km (optional)").
				Value(&m.distance).Validate(optionalNumber),
			huh.NewInput().Key("avg_hr").Title("Avg HR (optional)").
				Value(&m.avgHR).Validate(optionalWholeNumber),
		)
	}
	return huh.NewForm(group).WithTheme(huh.ThemeCatppuccin()).WithShowHelp(false)
}

func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case saveFailedMsg:
		m.busy = false
		m.errText = msg.err.Error()
		m.form = m.newForm()
		return m, m.form.Init()
	case tea.KeyMsg:
		if msg.String() == "esc" && !m.busy {
			return m, func() tea.Msg { return CancelledMsg{} }
		}
	}
	if m.busy {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		m.busy = true
		m.errText = ""
		return m, m.saveCmd()
	}
	return m, cmd
}

// saveCmd reads the completed form by key (model copies make the Value
// pointers seed-only) and converts the text to a typed input exactly
// once. Field validators have already vetted the numerics.
func (m Model) saveCmd() tea.Cmd {
	kind := m.kind
	date, _ := time.Parse("2006-01-02", strings.TrimSpace(m.form.GetString("date")))

	switch kind {
	case KindSleep:
		hours, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("hours")), 64)
		quality, _ := strconv.Atoi(strings.TrimSpace(m.form.GetString("quality")))
		input := dashdto.SleepInput{Date: date, Hours: hours, QualityScore: quality}
		return func() tea.Msg {
			if _, err := m.port.LogSleep(context.Background(), input); err != nil {
				return saveFailedMsg{err: err}
			}
			return SavedMsg{Kind: kind}
		}
	case KindNutrition:
		calories, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("calories")), 64)
		protein, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("protein")), 64)
		carbs, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("carbs")), 64)
		fats, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("fats")), 64)
		input := dashdto.NutritionInput{Date: date, Calories: calories, Protein: protein, Carbs: carbs, Fats: fats}
		return func() tea.Msg {
			if _, err := m.port.LogNutrition(context.Background(), input); err != nil {
				return saveFailedMsg{err: err}
			}
			return SavedMsg{Kind: kind}
		}
	default:
		duration, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("duration")), 64)
		input := dashdto.WorkoutInput{Date: date, WorkoutType: m.form.GetString("type"), Duration: duration}
		if v, err := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("distance")), 64); err == nil {
			input.Distance = &v
		}
		if v, err := strconv.Atoi(strings.TrimSpace(m.form.GetString("avg_hr"))); err == nil {
			input.AvgHR = &v
		}
		return func() tea.Msg {
			if _, err := m.port.LogWorkout(context.Background(), input); err != nil {
				return saveFailedMsg{err: err}
			}
			return SavedMsg{Kind: kind}
		}
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Log "+m.kind.String()) + "\n\n")
	if m.busy {
		b.WriteString(theme.Muted.Render("saving…"))
	} else {
		b.WriteString(m.form.View())
	}
	if m.errText != "" {
		b.WriteString("\n" + theme.Danger.Render(m.errText))
	}
	b.WriteString("\n\n" + theme.Muted.Render("esc: back to dashboard"))
	return theme.Pane.Render(b.String())
}
