package notification

import (
	"bytes"
	"fmt"
	"html/template"
)

type mailData struct {
	RecipientName  string
	Heading        string
	Intro          string
	Status         string
	PreviousStatus string
	ReviewerName   string
	Comment        string
	RequiresAction bool

	Employee    EmployeeInfo
	Project     ProjectInfo
	Totals      totalsView
	ClaimAmount float64
}

type totalsView struct {
	Travel    float64
	Allowance float64
	Lodging   float64
	Meals     float64
}

var mailTmpl = template.Must(template.New("mail").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>{{.Heading}}</h2>
  <p>Dear {{.RecipientName}},</p>
  <p>{{.Intro}}</p>
  {{if .Status}}
  <p>
    Status: <strong>{{.Status}}</strong>{{if .PreviousStatus}} (was {{.PreviousStatus}}){{end}}<br>
    {{if .ReviewerName}}Reviewed by: {{.ReviewerName}}<br>{{end}}
    {{if .Comment}}Comment: {{.Comment}}{{end}}
  </p>
  {{end}}
  <table cellpadding="6" cellspacing="0" border="1" style="border-collapse: collapse;">
    <tr><td>Employee</td><td>{{.Employee.Name}} ({{.Employee.Code}})</td></tr>
    <tr><td>Department</td><td>{{.Employee.Department}}</td></tr>
    <tr><td>Designation</td><td>{{.Employee.Designation}}</td></tr>
    <tr><td>Project</td><td>{{.Project.Code}} - {{.Project.Name}}</td></tr>
    {{if .Project.SiteLocation}}<tr><td>Site</td><td>{{.Project.SiteLocation}}</td></tr>{{end}}
    {{if .Totals.Travel}}<tr><td>Travel fare</td><td>{{printf "%.2f" .Totals.Travel}}</td></tr>{{end}}
    {{if .Totals.Allowance}}<tr><td>Daily allowance</td><td>{{printf "%.2f" .Totals.Allowance}}</td></tr>{{end}}
    {{if .Totals.Lodging}}<tr><td>Hotel</td><td>{{printf "%.2f" .Totals.Lodging}}</td></tr>{{end}}
    {{if .Totals.Meals}}<tr><td>Food</td><td>{{printf "%.2f" .Totals.Meals}}</td></tr>{{end}}
    <tr><td><strong>Claim amount</strong></td><td><strong>{{printf "%.2f" .ClaimAmount}}</strong></td></tr>
  </table>
  {{if .RequiresAction}}<p>Please log in to review this expense claim.</p>{{end}}
  <p>Regards,<br>Expense Management System</p>
</body>
</html>`))

func render(d mailData) (string, error) {
	var buf bytes.Buffer
	if err := mailTmpl.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func baseData(ev Event, recipient string) mailData {
	return mailData{
		RecipientName: recipient,
		Employee:      ev.Employee,
		Project:       ev.Project,
		Totals: totalsView{
			Travel:    ev.Totals.Travel,
			Allowance: ev.Totals.Allowance,
			Lodging:   ev.Totals.Lodging,
			Meals:     ev.Totals.Meals,
		},
		ClaimAmount: ev.ClaimAmount,
	}
}

func submissionMail(ev Event, recipient string) (string, string, error) {
	d := baseData(ev, recipient)
	d.Heading = "New Expense Submission"
	d.Intro = fmt.Sprintf("%s has submitted a new expense claim that requires your review.", ev.Employee.Name)
	d.RequiresAction = true
	body, err := render(d)
	return "New Expense Submission", body, err
}

func resubmissionMail(ev Event, recipient string) (string, string, error) {
	d := baseData(ev, recipient)
	d.Heading = "Expense Resubmission"
	d.Intro = fmt.Sprintf("%s has edited and resubmitted an expense claim for review.", ev.Employee.Name)
	d.Comment = ev.Comment
	d.RequiresAction = true
	body, err := render(d)
	return "Expense Resubmission", body, err
}

func statusMail(ev Event, recipient string, requiresAction bool) (string, string, error) {
	d := baseData(ev, recipient)
	d.Heading = "Expense Status Update"
	d.Intro = "An expense claim you are involved with has changed status."
	d.Status = string(ev.NewStatus)
	d.PreviousStatus = string(ev.PreviousStatus)
	d.ReviewerName = ev.ReviewerName
	d.Comment = ev.Comment
	d.RequiresAction = requiresAction
	subject := fmt.Sprintf("Expense Status Update: %s", ev.NewStatus)
	if requiresAction {
		subject = "Action Required: New Expense Review"
	}
	body, err := render(d)
	return subject, body, err
}
