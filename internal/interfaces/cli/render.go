package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"
)

var (
	accent  = lipgloss.Color("#2563EB")
	dim     = lipgloss.Color("#6B7280")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)
	labelStyle = lipgloss.NewStyle().Foreground(dim).Width(26)
	passStyle  = lipgloss.NewStyle().Foreground(success).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(warning)
	dimStyle   = lipgloss.NewStyle().Foreground(dim)
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// humanize splits catalog identifiers for display: "Limited100" becomes
// "Limited 100".
func humanize(name string) string {
	return strings.Join(camelcase.Split(name), " ")
}

func row(b *strings.Builder, label, value string) {
	b.WriteString("  " + labelStyle.Render(label) + value + "\n")
}

func status(ok bool, yes, no string) string {
	if ok {
		return passStyle.Render(yes)
	}
	return failStyle.Render(no)
}

func issues(b *strings.Builder, list []string) {
	for _, issue := range list {
		b.WriteString("    " + warnStyle.Render("! ") + issue + "\n")
	}
}

func renderQuote(req domain.QuoteRequest, r domain.QuoteResult) string {
	var b strings.Builder

	header := titleStyle.Render(fmt.Sprintf("%s · %s · %d days", req.Category.Code, req.Policy.Name(), r.Days))
	total := fmt.Sprintf("%s net  %s gross",
		r.TotalPrice.Net().StringFixed(2), r.TotalPrice.Gross().StringFixed(2))
	b.WriteString(boxStyle.Render(header + "\n" + total + " " + r.TotalPrice.Currency()))
	b.WriteString("\n\n")

	row(&b, "Base rental", r.BaseRentalCost.String())
	row(&b, "Cross-border surcharge", r.CrossBorderSurcharge.String())
	row(&b, "Insurance ("+humanize(req.Insurance.Type.String())+")", r.InsuranceCost.String())
	row(&b, "Kilometers ("+humanize(req.KilometerPackage.Type.String())+")", r.KilometerPackageCost.String())
	row(&b, "Kilometer overage", r.KilometerOverageCharge.String())
	row(&b, "VAT", r.TotalPrice.VAT().StringFixed(2)+" "+r.TotalPrice.Currency())
	row(&b, "Payment due", r.PaymentDueDate.Format(domain.DateLayout))
	b.WriteString("\n")

	row(&b, "Route", status(r.CrossBorderValidation.IsValid, "allowed", "not allowed"))
	issues(&b, r.CrossBorderValidation.Issues)
	row(&b, "License", status(r.LicenseValidation.IsValid, "valid", "invalid"))
	issues(&b, r.LicenseValidation.Issues)
	row(&b, "Bookable", status(r.Bookable, "yes", "no"))

	return b.String()
}

func renderRoute(policy string, countries []string, days int, r domain.CrossBorderValidationResult, surcharge domain.Money) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s: %s", policy, strings.ToUpper(strings.Join(countries, " → ")))))
	b.WriteString("\n\n")
	row(&b, "Status", status(r.IsValid, "allowed", "not allowed"))
	if r.RequiresPermit {
		row(&b, "Permit", warnStyle.Render("required"))
	}
	if r.RequiresAdditionalInsurance {
		row(&b, "Insurance", warnStyle.Render("Vollkasko or better required"))
	}
	row(&b, fmt.Sprintf("Surcharge (%d days)", days), surcharge.String())
	issues(&b, r.Issues)

	return b.String()
}

func renderPolicy(p *domain.CrossBorderPolicy) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Policy " + p.Name()))
	b.WriteString("\n")
	for _, rule := range p.Rules() {
		detail := rule.Restriction().String()
		if fee, ok := rule.DailySurcharge(); ok {
			detail += dimStyle.Render("  " + fee.String() + "/day")
		}
		if rule.RequiresAdditionalInsurance() {
			detail += warnStyle.Render("  +insurance")
		}
		if reason := rule.RestrictionReason(); reason != "" {
			detail += dimStyle.Render("  " + reason)
		}
		row(&b, rule.Country().String()+" "+rule.Country().Name(), detail)
	}
	b.WriteString("\n")

	return b.String()
}

func renderInsurance(pkgs []domain.InsurancePackage) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Insurance packages"))
	b.WriteString("\n")
	for _, p := range pkgs {
		row(&b, humanize(p.Type.String()), fmt.Sprintf("%s/day  deductible %s", p.DailySurcharge, p.Deductible))
	}
	b.WriteString("\n")

	return b.String()
}

func renderKilometers(pkgs []domain.KilometerPackage) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Kilometer packages"))
	b.WriteString("\n")
	for _, p := range pkgs {
		detail := "unlimited"
		if limit, ok := p.DailyLimitKm(); ok {
			rate, _ := p.AdditionalKmRate()
			detail = fmt.Sprintf("%d km/day, %s per extra km", limit, rate)
		}
		row(&b, humanize(p.Type.String()), fmt.Sprintf("%s/day  %s", p.DailyPrice, detail))
	}
	b.WriteString("\n")

	return b.String()
}

func renderCategories(cats []domain.VehicleCategory) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Vehicle categories"))
	b.WriteString("\n")
	for _, c := range cats {
		row(&b, c.Code+" "+c.Name, fmt.Sprintf("%s/day  license held %d+ years", c.DailyRate, c.MinYearsHeld))
	}
	b.WriteString("\n")

	return b.String()
}
