package notifications

import (
	"fmt"
	"strings"
	"text/template"
)

type templateData struct {
	CustomerName  string
	ShopName      string
	AppointmentID string
	Status        string
	Amount        float64
	Reason        string
}

type mailTemplate struct {
	subject *template.Template
	body    *template.Template
}

var templates = map[Kind]mailTemplate{
	KindStatusChanged: mustTemplate(
		"Your booking at {{.ShopName}} is {{lower .Status}}",
		`Hi {{.CustomerName}},

Your booking {{.AppointmentID}} at {{.ShopName}} has been {{lower .Status}}.
{{- if .Reason}}
Reason: {{.Reason}}
{{- end}}
`,
	),
	KindPaymentRecorded: mustTemplate(
		"Payment received by {{.ShopName}}",
		`Hi {{.CustomerName}},

{{.ShopName}} received your payment of {{printf "%.2f" .Amount}} for booking {{.AppointmentID}}.
Payment status: {{.Status}}.
`,
	),
	KindRefundDecided: mustTemplate(
		"Your refund request was {{lower .Status}}",
		`Hi {{.CustomerName}},

Your refund request of {{printf "%.2f" .Amount}} for booking {{.AppointmentID}} at {{.ShopName}} was {{lower .Status}}.
{{- if eq .Status "Approved"}}
The booking has been cancelled.
{{- end}}
`,
	),
}

var funcs = template.FuncMap{"lower": strings.ToLower}

func mustTemplate(subject, body string) mailTemplate {
	return mailTemplate{
		subject: template.Must(template.New("subject").Funcs(funcs).Parse(subject)),
		body:    template.Must(template.New("body").Funcs(funcs).Parse(body)),
	}
}

// render подставляет данные события в шаблон письма
func render(kind Kind, data templateData) (subject, body string, err error) {
	tmpl, ok := templates[kind]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	var sb, bb strings.Builder
	if err := tmpl.subject.Execute(&sb, data); err != nil {
		return "", "", fmt.Errorf("%w: subject: %v", ErrRender, err)
	}
	if err := tmpl.body.Execute(&bb, data); err != nil {
		return "", "", fmt.Errorf("%w: body: %v", ErrRender, err)
	}

	return sb.String(), bb.String(), nil
}
