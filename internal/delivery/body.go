package delivery

import (
	"fmt"
	"strings"

	"leak-diagnostic/internal/report"
)

func subjectLine(input *Input) string {
	company := strings.TrimSpace(input.CompanyName)
	if company == "" {
		return fmt.Sprintf("Your Profit Leak Report: %s at stake annually", report.FormatCurrency(input.TotalLoss))
	}
	return fmt.Sprintf("%s's Profit Leak Report: %s at stake annually", company, report.FormatCurrency(input.TotalLoss))
}

// htmlBody renders the short summary that accompanies the attached report.
func htmlBody(input *Input) string {
	name := strings.TrimSpace(input.UserName)
	if name == "" {
		name = "there"
	}

	var b strings.Builder
	b.WriteString("<html><body style=\"font-family: Arial, sans-serif; color: #222;\">")
	fmt.Fprintf(&b, "<p>Hi %s,</p>", name)
	fmt.Fprintf(&b,
		"<p>Your full profit leak report is attached. Based on your assessment, your business is leaking <strong>%s per year</strong> (%s of revenue) across the categories we measured",
		report.FormatCurrency(input.TotalLoss), report.FormatPercent(input.LeakagePercent))
	if input.Industry != "" {
		fmt.Fprintf(&b, " for the %s industry", input.Industry)
	}
	b.WriteString(".</p>")
	b.WriteString("<p>The attached PDF breaks down your three largest leaks, what fixing each is worth, and the cost of waiting.</p>")
	b.WriteString("<p>Reply to this email to book a working session on your numbers.</p>")
	b.WriteString("</body></html>")
	return b.String()
}
