package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/the-thread-must-fit/internal/model"
	"github.com/Veraticus/the-thread-must-fit/internal/tui/themes"
	"github.com/Veraticus/the-thread-must-fit/internal/units"
	"github.com/Veraticus/the-thread-must-fit/internal/wizard"
	"github.com/charmbracelet/lipgloss"
)

// renderCompactView renders the single column layout.
func (m Model) renderCompactView() string {
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderStep(),
	)
	if m.showHistory {
		content = lipgloss.JoinVertical(lipgloss.Left, content, "", m.renderHistory(m.width-6))
	}
	return m.wrapWithFooter(content)
}

// renderFullView renders the step and the history side by side.
func (m Model) renderFullView() string {
	// Account for borders and padding (6) and separator (3).
	usable := m.width - 9
	leftWidth := int(float64(usable) * 0.6)
	rightWidth := usable - leftWidth

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.renderStep()))

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		left,
		m.theme.Normal.Render(" │ "),
		m.renderHistory(rightWidth),
	)
	return m.wrapWithFooter(content)
}

// renderHeader renders the title, step counter and progress bar.
func (m Model) renderHeader() string {
	title := m.theme.Title.Render("The Thread Must Fit")
	step := fmt.Sprintf("Step %d of %d · %s", m.state.Step, wizard.TotalSteps, m.state.Step.Title())

	progress := fmt.Sprintf("%s %d%%",
		m.renderMiniProgressBar(20, float64(m.state.Progress())/100),
		m.state.Progress(),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		m.theme.Subtitle.Render(step),
		progress,
		"",
	)
}

// renderStep renders the body of the current step.
func (m Model) renderStep() string {
	var body string
	switch m.state.Step {
	case wizard.StepDiameter:
		body = m.renderDiameterStep()
	case wizard.StepThread:
		body = m.renderThreadStep()
	case wizard.StepLength:
		body = m.renderLengthStep()
	case wizard.StepHead:
		body = m.renderHeadStep()
	case wizard.StepResult:
		body = m.renderResultStep()
	}

	lines := []string{body}
	if msg := m.state.Error(wizard.FieldStep); msg != "" {
		lines = append(lines, "", m.theme.StatusError.Render(msg))
	}
	if m.lastError != nil {
		lines = append(lines, "", m.theme.StatusError.Render("Error: "+m.lastError.Error()))
	}
	if m.status != "" {
		lines = append(lines, "", m.theme.StatusSuccess.Render(m.status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderDiameterStep() string {
	lines := []string{
		m.theme.Bold.Render(fmt.Sprintf("Measure the outside diameter of the thread (%s)", m.state.Unit.Symbol())),
		m.muted("Measure across the crests with calipers. Worn threads read a little small."),
		"",
		m.diameterInput.View(),
	}
	return m.withFieldError(lines, wizard.FieldDiameter)
}

func (m Model) renderThreadStep() string {
	var options []string
	for i, opt := range systemOptions {
		label := " " + opt.label + " "
		if i == m.systemIndex {
			options = append(options, m.theme.Selected.Render(label))
		} else {
			options = append(options, m.theme.Normal.Render(label))
		}
	}

	prompt := "Thread pitch"
	switch m.state.System {
	case model.SystemWhitworth:
		prompt = "Threads per inch"
	case model.SystemMetric:
		prompt = "Thread pitch (mm)"
	}

	lines := []string{
		m.theme.Bold.Render("Which standard and what pitch?"),
		"System: " + strings.Join(options, " ") + m.muted("  (Tab to switch)"),
		"",
		m.theme.Bold.Render(prompt),
		m.muted("Hold the thread gauge against the bolt until no light shows."),
		m.pitchInput.View(),
	}

	if m.state.Result != nil && m.state.HasDiameter() {
		lines = append(lines, "", m.renderLiveCandidates())
	}
	return m.withFieldError(lines, wizard.FieldPitch)
}

func (m Model) renderLengthStep() string {
	lines := []string{
		m.theme.Bold.Render(fmt.Sprintf("Measure the length under the head (%s)", m.state.Unit.Symbol())),
		m.muted("Leave empty and press Enter to skip straight to the result."),
		"",
		m.lengthInput.View(),
	}
	return m.withFieldError(lines, wizard.FieldLength)
}

func (m Model) renderHeadStep() string {
	lines := []string{m.theme.Bold.Render("Select the head type"), ""}
	for i, info := range m.headTypes {
		icon := m.theme.Icon.Render(themes.GetHeadTypeIcon(info.Type))
		line := fmt.Sprintf("%s %-20s", icon, info.Name)
		if i == m.headIndex {
			lines = append(lines, m.theme.Selected.Render(line))
			lines = append(lines, m.muted("      "+info.Description+". Tool: "+info.Tool))
		} else {
			lines = append(lines, m.theme.Normal.Render(line))
		}
	}
	return m.withFieldError(lines, wizard.FieldHeadType)
}

// renderLiveCandidates shows diameter-only candidates while the pitch is
// still being measured.
func (m Model) renderLiveCandidates() string {
	ranked := m.state.Result.Ranked()
	if len(ranked) == 0 {
		return m.theme.StatusWarning.Render("No standard matches this diameter yet.")
	}
	lines := []string{m.theme.Subtitle.Render("Candidates so far")}
	for _, c := range ranked {
		lines = append(lines, m.renderCandidateLine(c))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderResultStep() string {
	result := m.state.Result
	if result == nil || !result.Identified() {
		lines := []string{m.theme.StatusError.Render("No matching thread standard")}
		if result != nil {
			lines = append(lines, "", m.renderRecommendations(result.Recommendations))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	best := result.BestMatch
	badge := m.theme.Icon.Render(themes.GetSystemIcon(best.Standard.System))
	headline := lipgloss.JoinHorizontal(
		lipgloss.Top,
		badge,
		" ",
		m.theme.Title.Render(m.state.Specification),
	)

	lines := []string{
		headline,
		fmt.Sprintf("%s  %s",
			m.theme.Normal.Render(best.Standard.System.DisplayName()),
			m.theme.ConfidenceStyle(best.CombinedConfidence).Render(fmt.Sprintf("%.0f%% confidence", best.CombinedConfidence*100)),
		),
		m.muted(fmt.Sprintf("Measured %s, nominal %s",
			units.Format(m.state.DiameterMm, m.state.Unit),
			units.Format(best.Standard.NominalDiameterMm, m.state.Unit),
		)),
	}

	if best.PitchValidation != nil && best.PitchValidation.Note != "" {
		lines = append(lines, m.muted(best.PitchValidation.Note))
	}
	if check := m.state.LengthCheck; check != nil {
		lines = append(lines, m.renderLengthCheck(*check))
	}
	if m.state.HeadType != "" {
		head := string(m.state.HeadType)
		for _, info := range m.headTypes {
			if info.Type == m.state.HeadType {
				head = info.Name
			}
		}
		if best.Standard.SupportsHeadType(m.state.HeadType) {
			lines = append(lines, m.theme.StatusSuccess.Render("Head: "+head+" is stocked in this size"))
		} else {
			lines = append(lines, m.theme.StatusWarning.Render("Head: "+head+" is not stocked in this size"))
		}
	}

	if len(result.Alternatives) > 0 {
		lines = append(lines, "", m.theme.Subtitle.Render("Alternatives"))
		for _, alt := range result.Alternatives {
			lines = append(lines, m.renderCandidateLine(alt))
		}
	}

	if len(result.Recommendations) > 0 {
		lines = append(lines, "", m.renderRecommendations(result.Recommendations))
	}

	lines = append(lines, "", m.muted("n: new bolt · h: history · q: quit"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderLengthCheck(check model.LengthValidation) string {
	switch {
	case check.IsStandard && check.Confidence >= 1:
		return m.theme.StatusSuccess.Render(fmt.Sprintf("Length: %gmm is a stocked length", check.ClosestStandardMm))
	case check.HasSuggestion:
		return m.theme.StatusWarning.Render(fmt.Sprintf("Length: closest stocked length is %gmm", check.ClosestStandardMm))
	default:
		return m.muted(fmt.Sprintf("Length: rounds to %gmm", check.NormalizedMm))
	}
}

func (m Model) renderCandidateLine(c model.MatchCandidate) string {
	badge := m.theme.Icon.Render(themes.GetSystemIcon(c.Standard.System))
	confidence := m.theme.ConfidenceStyle(c.CombinedConfidence).
		Render(fmt.Sprintf("%3.0f%%", c.CombinedConfidence*100))

	name := c.Standard.DisplayName()
	if c.IsFineVariant() && c.Standard.Metric != nil {
		name += " fine"
	}
	return fmt.Sprintf("%s %-22s %s", badge, name, confidence)
}

func (m Model) renderRecommendations(recs []model.Recommendation) string {
	var lines []string
	for _, rec := range recs {
		style := m.theme.RecommendationStyle(rec.Type)
		line := style.Render(themes.GetRecommendationIcon(rec.Type)+" ") + m.theme.Normal.Render(rec.Message)
		lines = append(lines, line)
		if rec.Action != "" {
			lines = append(lines, m.muted("  → "+rec.Action))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderHistory renders the session history panel.
func (m Model) renderHistory(width int) string {
	title := m.theme.Subtitle.Render("History")
	if m.history == nil {
		return lipgloss.JoinVertical(lipgloss.Left, title, m.muted("History is off"))
	}
	if len(m.entries) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, m.muted("Nothing identified yet"))
	}

	lines := []string{title}
	for _, entry := range m.entries {
		badge := m.theme.Icon.Render(themes.GetSystemIcon(entry.System))
		line := fmt.Sprintf("%s %s %s",
			m.muted(entry.CreatedAt.Local().Format("15:04")),
			badge,
			m.theme.Normal.Render(entry.Specification),
		)
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(width).
		MaxWidth(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// wrapWithFooter adds the help footer and border around content.
func (m Model) wrapWithFooter(content string) string {
	parts := []string{content}
	if m.config.ShowHelp {
		parts = append(parts, "", m.help.View(m.keymap))
	}

	return m.theme.RoundedBox.
		MaxWidth(m.width).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// renderMiniProgressBar renders a small progress bar.
func (m Model) renderMiniProgressBar(width int, progress float64) string {
	filled := int(float64(width) * progress)
	if filled > width {
		filled = width
	}
	empty := width - filled

	return m.theme.ProgressFull.Render(strings.Repeat("█", filled)) +
		m.theme.ProgressEmpty.Render(strings.Repeat("░", empty))
}

func (m Model) withFieldError(lines []string, field wizard.Field) string {
	if msg := m.state.Error(field); msg != "" {
		lines = append(lines, m.theme.StatusError.Render("✗ "+msg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) muted(s string) string {
	return lipgloss.NewStyle().Foreground(m.theme.Muted).Render(s)
}
