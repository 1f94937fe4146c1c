package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/salary-oracle/internal/model"
	"github.com/Veraticus/salary-oracle/internal/predict"
	"github.com/Veraticus/salary-oracle/internal/training"
	"github.com/charmbracelet/lipgloss"
)

// RenderPrediction shows a successful prediction with its range chart.
func RenderPrediction(raw model.RawRecord, mode model.Mode, salary float64, width int) string {
	icon := LocalIcon
	if mode == model.ModeRemote {
		icon = CloudIcon
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		SuccessStyle.Bold(true).Render(predict.FormatSalary(salary)),
		SubtleStyle.Render(fmt.Sprintf("%s %s model · %s, %s, %s", icon, mode, raw.Position, raw.Department, raw.Country)),
		"",
		RenderSalaryChart(raw.Position, salary, width),
	)
	return RenderBox(MoneyIcon+" Salary Prediction", content)
}

// RenderPredictionError shows a failed prediction as one line.
func RenderPredictionError(err error) string {
	return ErrorStyle.Render(predict.FormatError(err))
}

// RenderHistory lists recorded predictions as a table.
func RenderHistory(predictions []model.Prediction) string {
	if len(predictions) == 0 {
		return FormatInfo("No predictions recorded yet")
	}

	header := []string{"When", "Mode", "Position", "Department", "Country", "Age", "Exp", "Result"}
	rows := make([][]string, 0, len(predictions))
	for _, p := range predictions {
		result := ErrorStyle.Render(p.Error)
		if p.Succeeded() {
			result = SuccessStyle.Render(FormatAmount(*p.Salary))
		}
		rows = append(rows, []string{
			p.CreatedAt.Local().Format("2006-01-02 15:04"),
			string(p.Mode),
			p.Input.Position,
			p.Input.Department,
			p.Input.Country,
			fmt.Sprintf("%d", p.Input.Age),
			fmt.Sprintf("%d", p.Input.YearsExperience),
			result,
		})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var sb strings.Builder
	sb.WriteString(renderRow(header, widths, TableHeaderStyle))
	sb.WriteString("\n")
	for _, row := range rows {
		sb.WriteString(renderRow(row, widths, lipgloss.NewStyle()))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderRow(cells []string, widths []int, style lipgloss.Style) string {
	rendered := make([]string, len(cells))
	for i, cell := range cells {
		rendered[i] = TableCellStyle.Width(widths[i] + 2).Render(cell)
	}
	return style.Render(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
}

// RenderTrainingSummary reports the outcome of a training run.
func RenderTrainingSummary(result *training.Result, modelDir string) string {
	lines := []string{
		fmt.Sprintf("Rows used:     %d train / %d test (%d dropped)", result.TrainRows, result.TestRows, result.Dropped),
	}
	if result.TestRows > 0 {
		lines = append(lines,
			fmt.Sprintf("R² score:      %.4f", result.R2),
			fmt.Sprintf("RMSE:          %s", FormatAmount(result.RMSE)),
		)
	} else {
		lines = append(lines, FormatWarning("No rows held out, metrics skipped"))
	}
	lines = append(lines,
		fmt.Sprintf("Trees:         %d", len(result.Bundle.Model.Trees)),
		"",
		FormatSuccess("Saved to "+modelDir),
	)
	return RenderBox("Model Trained", strings.Join(lines, "\n"))
}
