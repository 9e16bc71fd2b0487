package views

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TaskRow struct {
	Title     string
	Completed bool
	IsMicro   bool
	Selected  bool
}

type HabitRow struct {
	Title     string
	Icon      string
	Completed bool
	Selected  bool
}

type PulseBar struct {
	Label string
	Count int
	Bar   string
}

type HomeData struct {
	Points      int
	Premium     bool
	EnergyLabel string
	EnergyHint  string
	Completion  int
	Habits      []HabitRow
	Tasks       []TaskRow
	Hidden      int
	AddView     string
	Adding      bool
	Pulse       []PulseBar
}

type ChatMessage struct {
	FromUser bool
	Content  string
	Steps    []string
}

type ChatData struct {
	Messages    []ChatMessage
	InputView   string
	Loading     bool
	SpinnerView string
}

type DiaryEntry struct {
	Date    string
	Summary string
}

type DiaryData struct {
	EditorView  string
	Loading     bool
	SpinnerView string
	ResultView  string
	History     []DiaryEntry
}

type LearnData struct {
	Titles   []string
	Active   int
	BodyView string
}

type RegulatorData struct {
	Active   bool
	Kind     string
	Clock    string
	Prompt   string
	Step     int
	Steps    int
	Paused   bool
	Progress string
}

type TimerData struct {
	Mode         string
	Clock        string
	Running      bool
	ProgressView string
	ProgressPct  int
	Quick        []int
}

type GamesData struct {
	Bubbles      []bool
	BubbleCursor int
	BubbleScore  int
	TargetActive bool
	TargetDone   bool
	TargetScore  int
	HighScore    int
	TimeLeft     string
	TargetTop    int
	TargetLeft   int
	SpinAngle    float64
	SpinBar      string
}

type ThemeRow struct {
	Field    string
	Color    string
	Selected bool
}

type SettingsData struct {
	Rows      []ThemeRow
	Editing   bool
	EditView  string
	Premium   bool
	Backend   string
	Notify    bool
	GatewayOn bool
}

type CheckoutData struct {
	Step        string
	Plan        string
	PlanPrice   string
	Plans       []string
	PlanIndex   int
	Method      string
	Processing  bool
	SpinnerView string
}

func RenderHome(s *Styles, d HomeData) string {
	var b strings.Builder
	premium := ""
	if d.Premium {
		premium = " | PRO"
	}
	b.WriteString(s.Accent.Render(fmt.Sprintf("dopamine points: %d%s", d.Points, premium)) + "\n")
	b.WriteString(fmt.Sprintf("energy: %s (%s)\n", d.EnergyLabel, d.EnergyHint))
	b.WriteString(fmt.Sprintf("today: %d%% done\n", d.Completion))

	b.WriteString("\nhabits:\n")
	for _, h := range d.Habits {
		b.WriteString(fmt.Sprintf("%s %s %s (%s)\n", cursor(h.Selected), check(h.Completed), h.Title, h.Icon))
	}

	b.WriteString("\ntasks:\n")
	if d.Adding {
		b.WriteString(d.AddView + "\n")
	}
	if len(d.Tasks) == 0 {
		b.WriteString("  (nothing yet, press a to add)\n")
	}
	for _, t := range d.Tasks {
		micro := ""
		if t.IsMicro {
			micro = s.Muted.Render(" micro")
		}
		b.WriteString(fmt.Sprintf("%s %s %s%s\n", cursor(t.Selected), check(t.Completed), t.Title, micro))
	}
	if d.Hidden > 0 {
		b.WriteString(s.Muted.Render(fmt.Sprintf("  +%d more", d.Hidden)) + "\n")
	}

	if len(d.Pulse) > 0 {
		b.WriteString("\ndaily pulse:\n")
		for _, p := range d.Pulse {
			b.WriteString(fmt.Sprintf("%-9s %s %d\n", p.Label, p.Bar, p.Count))
		}
	}
	b.WriteString("\nactions: [j/k]move [space]toggle [a]add [e]energy [s]survival [p]pro")
	return strings.TrimSpace(b.String())
}

func RenderChat(s *Styles, d ChatData) string {
	var b strings.Builder
	b.WriteString("assistant: break a goal into micro-steps\n\n")
	for _, m := range d.Messages {
		if m.FromUser {
			b.WriteString(s.Accent.Render("you: ") + m.Content + "\n")
			continue
		}
		b.WriteString("neuroflow: " + m.Content + "\n")
		for i, step := range m.Steps {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, step))
		}
	}
	if d.Loading {
		b.WriteString(d.SpinnerView + " thinking...\n")
	}
	b.WriteString("\n" + d.InputView + "\n")
	b.WriteString(s.Muted.Render("[enter]send  [1-5 on empty prompt]add step as task"))
	return strings.TrimSpace(b.String())
}

func RenderDiary(s *Styles, d DiaryData) string {
	var b strings.Builder
	b.WriteString("thought diary: pour it out, it gets organized for you\n\n")
	b.WriteString(d.EditorView + "\n")
	if d.Loading {
		b.WriteString(d.SpinnerView + " organizing...\n")
	}
	if strings.TrimSpace(d.ResultView) != "" {
		b.WriteString("\n" + d.ResultView + "\n")
	}
	if len(d.History) > 0 {
		b.WriteString("\nhistory:\n")
		for _, h := range d.History {
			b.WriteString(fmt.Sprintf("- %s %s\n", s.Muted.Render(h.Date), h.Summary))
		}
	}
	b.WriteString(s.Muted.Render("[ctrl+s]organize"))
	return strings.TrimSpace(b.String())
}

func RenderLearn(s *Styles, d LearnData) string {
	var b strings.Builder
	for i, title := range d.Titles {
		if i == d.Active {
			b.WriteString(s.ActiveTab.Render(title))
		} else {
			b.WriteString(s.Tab.Render(title))
		}
	}
	b.WriteString("\n\n" + d.BodyView + "\n")
	b.WriteString(s.Muted.Render("[h/l]article [j/k]scroll"))
	return strings.TrimSpace(b.String())
}

func RenderRegulator(s *Styles, d RegulatorData) string {
	var b strings.Builder
	b.WriteString("mindful pause\n\n")
	if !d.Active {
		b.WriteString("[b] circular breathing  60 seconds to lower anxiety\n")
		b.WriteString("[g] grounding 5-4-3-2-1  reconnect through the senses\n")
		return strings.TrimSpace(b.String())
	}
	b.WriteString(s.Accent.Render(strings.ToUpper(d.Prompt)) + "\n")
	b.WriteString(fmt.Sprintf("%s %s\n", d.Clock, d.Progress))
	if d.Steps > 0 {
		b.WriteString(fmt.Sprintf("step %d/%d\n", d.Step+1, d.Steps))
	}
	if d.Paused {
		b.WriteString(s.Muted.Render("paused") + "\n")
	}
	b.WriteString(s.Muted.Render("[space]pause/resume [x]stop"))
	return strings.TrimSpace(b.String())
}

func RenderTimer(s *Styles, d TimerData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("mode: %s\n\n", strings.ToUpper(d.Mode)))
	b.WriteString(s.Accent.Render(d.Clock) + "\n")
	b.WriteString(fmt.Sprintf("%s %d%%\n", d.ProgressView, d.ProgressPct))
	state := "paused"
	if d.Running {
		state = "running"
	}
	b.WriteString(state + "\n\n")
	quick := make([]string, 0, len(d.Quick))
	for i, q := range d.Quick {
		quick = append(quick, fmt.Sprintf("[%d]%dm", i+1, q))
	}
	b.WriteString(s.Muted.Render("[space]start/pause [r]reset [+/-]1 min " + strings.Join(quick, " ")))
	return strings.TrimSpace(b.String())
}

func RenderGames(s *Styles, d GamesData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("bubble wrap  popped: %d\n", d.BubbleScore))
	for i, popped := range d.Bubbles {
		cell := "( )"
		if popped {
			cell = " . "
		}
		if i == d.BubbleCursor {
			cell = s.Accent.Render(cell)
		}
		b.WriteString(cell)
		if (i+1)%6 == 0 {
			b.WriteString("\n")
		}
	}

	b.WriteString(fmt.Sprintf("\ntarget reflex  score: %d  best: %d\n", d.TargetScore, d.HighScore))
	switch {
	case d.TargetActive:
		b.WriteString(fmt.Sprintf("time %s  target at %d%%,%d%%\n", d.TimeLeft, d.TargetLeft, d.TargetTop))
		b.WriteString(targetGrid(d.TargetTop, d.TargetLeft))
	case d.TargetDone:
		b.WriteString("round over, [t] to play again\n")
	default:
		b.WriteString("[t] start a 30 second round\n")
	}

	b.WriteString(fmt.Sprintf("\nkinetic spinner  %s %s\n", spinnerGlyph(d.SpinAngle), d.SpinBar))
	b.WriteString(s.Muted.Render("[h/l]move [space]pop [t]target [enter]hit [f]flick spinner"))
	return strings.TrimSpace(b.String())
}

func RenderSettings(s *Styles, d SettingsData) string {
	var b strings.Builder
	b.WriteString("theme:\n")
	for _, r := range d.Rows {
		swatch := s.Accent.Foreground(lipgloss.Color(r.Color)).Render("##")
		b.WriteString(fmt.Sprintf("%s %-10s %s %s\n", cursor(r.Selected), r.Field, r.Color, swatch))
	}
	if d.Editing {
		b.WriteString(d.EditView + "\n")
	}
	plan := "free"
	if d.Premium {
		plan = "pro"
	}
	b.WriteString(fmt.Sprintf("\nplan: %s\nstorage: %s\ndesktop notifications: %t\nassistant: %s\n",
		plan, d.Backend, d.Notify, onOff(d.GatewayOn)))
	b.WriteString(s.Muted.Render("[j/k]field [enter]edit [r]reset theme [p]pro"))
	return strings.TrimSpace(b.String())
}

func RenderCheckout(s *Styles, d CheckoutData) string {
	var b strings.Builder
	b.WriteString(s.Header.Render("NeuroFlow Pro") + "\n")
	b.WriteString("less mental noise, more real flow\n\n")
	switch d.Step {
	case "plan":
		for i, p := range d.Plans {
			b.WriteString(fmt.Sprintf("%s %s\n", cursor(i == d.PlanIndex), p))
		}
		b.WriteString(s.Muted.Render("\n[j/k]plan [enter]continue [esc]close"))
	case "payment", "processing":
		b.WriteString(fmt.Sprintf("plan: %s (%s)\n", d.Plan, d.PlanPrice))
		method := d.Method
		if method == "" {
			method = "(choose one)"
		}
		b.WriteString(fmt.Sprintf("method: %s\n", method))
		if d.Processing {
			b.WriteString(d.SpinnerView + " processing payment...\n")
		} else {
			b.WriteString(s.Muted.Render("\n[c]card [x]pix [enter]pay [backspace]back [esc]close"))
		}
	case "success":
		b.WriteString(s.Accent.Render("welcome to Pro! +500 dopamine points") + "\n")
		b.WriteString(s.Muted.Render("[enter]done"))
	}
	return strings.TrimSpace(b.String())
}

func RenderSurvival(s *Styles) string {
	var b strings.Builder
	b.WriteString(s.Accent.Render("survival mode") + "\n\n")
	b.WriteString("full pause. focus only on existing right now.\n\n")
	b.WriteString(s.Muted.Render("[enter] come back slowly"))
	return b.String()
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command: " + inputView
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(tab string, bindings []string, helpView string) string {
	return fmt.Sprintf("help:\n%s tab:\n%s\n%s", strings.ToLower(tab), strings.Join(bindings, "\n"), helpView)
}

func cursor(selected bool) string {
	if selected {
		return ">"
	}
	return " "
}

func check(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func onOff(on bool) string {
	if on {
		return "connected"
	}
	return "offline (set GEMINI_API_KEY)"
}

var spinnerFrames = []string{"|", "/", "-", "\\"}

func spinnerGlyph(angle float64) string {
	idx := int(math.Mod(angle, 360)/90) % len(spinnerFrames)
	if idx < 0 {
		idx += len(spinnerFrames)
	}
	return spinnerFrames[idx]
}

func targetGrid(top, left int) string {
	const rows, cols = 5, 20
	r := top * rows / 100
	c := left * cols / 100
	var b strings.Builder
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if i == r && j == c {
				b.WriteString("o")
			} else {
				b.WriteString(".")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
