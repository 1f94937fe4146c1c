package predict

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatSalary renders a prediction as rupees with thousands separators.
func FormatSalary(v float64) string {
	return printer.Sprintf("Predicted Salary: ₹%.2f", v)
}

// FormatError renders any prediction failure as one line.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return "❌ " + err.Error()
}
