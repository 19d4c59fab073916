package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/the-thread-must-fit/internal/model"
	"github.com/Veraticus/the-thread-must-fit/internal/units"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCase capitalizes a tag for display. Casers keep state, so each call
// gets its own.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// IdentificationView is everything the identify command prints.
type IdentificationView struct {
	LengthCheck   *model.LengthValidation
	HeadInfo      *model.HeadTypeInfo
	Specification string
	Unit          units.Unit
	Measurements  model.Measurements
	Result        model.IdentificationResult
}

// RenderIdentification renders the best match card, the alternatives and
// the recommendations.
func RenderIdentification(v IdentificationView) string {
	if !v.Result.Identified() {
		lines := []string{FormatError("No matching thread standard")}
		for _, rec := range v.Result.Recommendations {
			lines = append(lines, FormatRecommendation(rec))
		}
		return strings.Join(lines, "\n")
	}

	best := v.Result.BestMatch
	card := []string{
		BoldStyle.Render(v.Specification),
		fmt.Sprintf("%s · %s confidence",
			best.Standard.System.DisplayName(),
			FormatConfidence(best.CombinedConfidence),
		),
		SubtleStyle.Render(fmt.Sprintf("Measured %s, nominal %s",
			units.Format(v.Measurements.DiameterMm, v.Unit),
			units.Format(best.Standard.NominalDiameterMm, v.Unit),
		)),
	}
	if best.PitchValidation != nil && best.PitchValidation.Note != "" {
		card = append(card, SubtleStyle.Render(best.PitchValidation.Note))
	}
	if v.LengthCheck != nil {
		card = append(card, renderLengthLine(*v.LengthCheck))
	}
	if v.HeadInfo != nil {
		head := fmt.Sprintf("Head: %s (%s)", v.HeadInfo.Name, v.HeadInfo.Tool)
		if best.Standard.SupportsHeadType(v.HeadInfo.Type) {
			card = append(card, SuccessStyle.Render(head))
		} else {
			card = append(card, WarningStyle.Render(head+" is not stocked in this size"))
		}
	}

	out := []string{RenderBox(BoltIcon+" Best match", strings.Join(card, "\n"))}

	if len(v.Result.Alternatives) > 0 {
		out = append(out, SubtitleStyle.Render("Alternatives"), RenderCandidates(v.Result.Alternatives, v.Unit))
	}
	if len(v.Result.Recommendations) > 0 {
		recs := make([]string, 0, len(v.Result.Recommendations))
		for _, rec := range v.Result.Recommendations {
			recs = append(recs, FormatRecommendation(rec))
		}
		out = append(out, strings.Join(recs, "\n"))
	}
	return strings.Join(out, "\n")
}

// RenderCandidates renders candidates as a table.
func RenderCandidates(candidates []model.MatchCandidate, unit units.Unit) string {
	if len(candidates) == 0 {
		return SubtleStyle.Render("No candidates.")
	}

	rows := make([][]string, 0, len(candidates))
	for _, c := range candidates {
		pitch := "-"
		if pt := c.PitchType(); pt != "" {
			pitch = pt.DisplayName()
		}
		rows = append(rows, []string{
			c.Standard.DisplayName(),
			c.Standard.System.DisplayName(),
			units.Format(c.Standard.NominalDiameterMm, unit),
			fmt.Sprintf("%+.2f", c.DiameterDifferenceMm),
			pitch,
			FormatConfidence(c.CombinedConfidence),
		})
	}
	return renderTable([]string{"Standard", "System", "Nominal", "Diff mm", "Pitch", "Confidence"}, rows)
}

// RenderAllMatches renders diameter-only matches grouped by system.
func RenderAllMatches(matches model.AllMatches, unit units.Unit) string {
	sections := []string{
		SubtitleStyle.Render(model.SystemMetric.DisplayName()),
		RenderCandidates(matches.Metric, unit),
		"",
		SubtitleStyle.Render(model.SystemWhitworth.DisplayName()),
		RenderCandidates(matches.Whitworth, unit),
	}
	return strings.Join(sections, "\n")
}

// RenderPitchValidation renders the outcome of a pitch check.
func RenderPitchValidation(measuredMm float64, std model.ThreadStandard, v model.PitchValidation) string {
	header := fmt.Sprintf("%s measured against %s", formatPitch(measuredMm), std.DisplayName())
	if !v.Matches {
		return strings.Join([]string{
			FormatError(header),
			SubtleStyle.Render(v.Note),
		}, "\n")
	}
	return strings.Join([]string{
		FormatSuccess(header),
		fmt.Sprintf("%s · %s confidence", v.Type.DisplayName(), FormatConfidence(v.Confidence)),
		SubtleStyle.Render(v.Note),
	}, "\n")
}

// RenderLength renders a normalized length and, when a standard is known,
// the stocked-length check.
func RenderLength(norm model.NormalizedLength, check *model.LengthValidation, designation string) string {
	lines := []string{
		fmt.Sprintf("%s %gmm rounds to %s",
			RulerIcon, norm.OriginalMm, BoldStyle.Render(fmt.Sprintf("%gmm", norm.NormalizedMm))),
	}
	if check != nil {
		lines = append(lines, fmt.Sprintf("%s: %s", designation, renderLengthLine(*check)))
	}
	return strings.Join(lines, "\n")
}

func renderLengthLine(check model.LengthValidation) string {
	switch {
	case check.IsStandard && check.Confidence >= 1:
		return SuccessStyle.Render(fmt.Sprintf("%gmm is a stocked length", check.ClosestStandardMm))
	case check.HasSuggestion:
		return WarningStyle.Render(fmt.Sprintf("closest stocked length is %gmm (%s)",
			check.ClosestStandardMm, FormatConfidence(check.Confidence)))
	default:
		return SubtleStyle.Render(fmt.Sprintf("rounds to %gmm", check.NormalizedMm))
	}
}

// RenderWashers renders washers as a table.
func RenderWashers(washers []model.Washer, unit units.Unit) string {
	if len(washers) == 0 {
		return SubtleStyle.Render("No washers fit this diameter.")
	}
	rows := make([][]string, 0, len(washers))
	for _, w := range washers {
		rows = append(rows, []string{
			w.Designation,
			w.System.DisplayName(),
			units.Format(w.InnerDiameterMm, unit),
			units.Format(w.OuterDiameterMm, unit),
			units.Format(w.ThicknessMm, unit),
		})
	}
	return renderTable([]string{"Washer", "System", "Inner", "Outer", "Thickness"}, rows)
}

// RenderStandards renders one system's reference table.
func RenderStandards(system model.System, standards []model.ThreadStandard) string {
	rows := make([][]string, 0, len(standards))
	for _, std := range standards {
		pitch := formatPitch(std.CoarsePitchMm())
		switch {
		case std.Whitworth != nil:
			pitch = fmt.Sprintf("%d TPI", std.Whitworth.ThreadsPerInch)
		case std.HasFinePitch():
			fine := make([]string, 0, len(std.Metric.FinePitchesMm))
			for _, p := range std.Metric.FinePitchesMm {
				fine = append(fine, fmt.Sprintf("%g", p))
			}
			pitch += " (fine " + strings.Join(fine, ", ") + ")"
		}

		heads := make([]string, 0, len(std.HeadTypes))
		for _, h := range std.HeadTypes {
			heads = append(heads, titleCase(string(h)))
		}

		rows = append(rows, []string{
			std.Designation,
			fmt.Sprintf("%.3f", std.NominalDiameterMm),
			pitch,
			strings.Join(heads, ", "),
		})
	}

	title := TitleStyle.Render(titleCase(string(system)) + " threads")
	return title + "\n" + renderTable([]string{"Designation", "Diameter mm", "Pitch", "Heads"}, rows)
}

// renderTable lays out rows under a header with padded columns.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}

	renderRow := func(cells []string, style lipgloss.Style) string {
		rendered := make([]string, len(cells))
		for i, cell := range cells {
			rendered[i] = TableCellStyle.Width(widths[i] + 2).Render(cell)
		}
		return style.Render(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}

	lines := []string{renderRow(headers, TableHeaderStyle)}
	for _, row := range rows {
		lines = append(lines, renderRow(row, lipgloss.NewStyle()))
	}
	return strings.Join(lines, "\n")
}

func formatPitch(mm float64) string {
	return fmt.Sprintf("%.3gmm", mm)
}

// RenderHistory renders saved identifications, newest first.
func RenderHistory(entries []model.HistoryEntry) string {
	if len(entries) == 0 {
		return SubtleStyle.Render("No identifications saved yet.")
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.Specification,
			e.System.DisplayName(),
			FormatConfidence(e.Confidence),
		})
	}
	return renderTable([]string{"When", "Identification", "System", "Confidence"}, rows)
}
