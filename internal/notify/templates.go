package notify

import (
	"bytes"
	"fmt"
	"html/template"
)

const styles = `
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #14b8a6, #3b82f6); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
    .content { background: #f9fafb; padding: 30px; border-radius: 0 0 10px 10px; }
    .info-row { margin: 15px 0; padding: 10px; background: white; border-radius: 5px; }
    .label { font-weight: bold; color: #14b8a6; }
    .appointment-box { background: #14b8a6; color: white; padding: 20px; border-radius: 8px; margin: 20px 0; text-align: center; }
    .contact-info { background: white; padding: 20px; border-radius: 8px; margin: 20px 0; }
    .footer { text-align: center; color: #666; margin-top: 30px; font-size: 14px; }
`

var operatorTmpl = template.Must(template.New("operator").Parse(`<!DOCTYPE html>
<html>
<head><style>{{.Styles}}</style></head>
<body>
  <div class="container">
    <div class="header"><h1>Naujas Susitikimo Užsakymas</h1></div>
    <div class="content">
      <div class="info-row"><span class="label">Vardas:</span> {{.Req.FirstName}} {{.Req.LastName}}</div>
      <div class="info-row"><span class="label">El. paštas:</span> {{.Req.Email}}</div>
      <div class="info-row"><span class="label">Telefonas:</span> {{if .Req.Phone}}{{.Req.Phone}}{{else}}Nenurodytas{{end}}</div>
      {{- if .Req.AppointmentDate}}
      <div class="appointment-box">
        <h2 style="margin: 0 0 10px 0;">📅 Susitikimo Laikas</h2>
        <p style="margin: 0; font-size: 18px;">{{.Req.AppointmentDate}}</p>
      </div>
      {{- end}}
      <div class="info-row"><span class="label">Žinutė:</span><br/>{{.Req.Message}}</div>
      <div class="info-row"><span class="label">Užsakymo laikas:</span> {{.Req.SubmittedAt}}</div>
    </div>
  </div>
</body>
</html>
`))

var customerTmpl = template.Must(template.New("customer").Parse(`<!DOCTYPE html>
<html>
<head><style>{{.Styles}}</style></head>
<body>
  <div class="container">
    <div class="header"><h1>Ačiū už Jūsų Užklausą!</h1></div>
    <div class="content">
      <p class="greeting">Sveiki, {{.Req.FirstName}}!</p>
      <p>Gavome Jūsų užklausą ir netrukus su jumis susisieksime.</p>
      {{- if .Req.AppointmentDate}}
      <div class="appointment-box">
        <h2 style="margin: 0 0 10px 0;">📅 Jūsų Susitikimas</h2>
        <p style="margin: 0; font-size: 18px;">{{.Req.AppointmentDate}}</p>
        <p style="margin: 10px 0 0 0; font-size: 14px;">Prašome atvykti laiku. Jei negalite atvykti, prašome informuoti iš anksto.</p>
      </div>
      {{- else}}
      <p>Susisieksime su jumis artimiausiu metu dėl galimo susitikimo laiko.</p>
      {{- end}}
      <div class="contact-info">
        <h3 style="color: #14b8a6; margin-top: 0;">Mūsų Kontaktai:</h3>
        <p><strong>📞 Telefonas:</strong> {{.Contact.Phone}}</p>
        <p><strong>✉️ El. paštas:</strong> {{.Contact.Email}}</p>
        <p><strong>📍 Adresas:</strong> {{.Contact.Address}}</p>
      </div>
      <p>Jūsų žinutė:</p>
      <div style="background: white; padding: 15px; border-radius: 8px; border-left: 4px solid #14b8a6;">{{.Req.Message}}</div>
      <div class="footer"><p>Su pagarba,<br/>Interjero ir Fasado Dekoratoriai Komanda</p></div>
    </div>
  </div>
</body>
</html>
`))

// Contact is printed in the customer confirmation.
type Contact struct {
	Phone   string
	Email   string
	Address string
}

var DefaultContact = Contact{
	Phone:   "+370 600 12345",
	Email:   "dekoratoriailt@gmail.com",
	Address: "Gedimino pr. 1, Vilnius, LT-01103",
}

type templateData struct {
	Styles  template.CSS
	Req     AppointmentRequest
	Contact Contact
}

func operatorSubject(r AppointmentRequest) string {
	return fmt.Sprintf("Naujas susitikimo užsakymas - %s %s", r.FirstName, r.LastName)
}

func customerSubject(r AppointmentRequest) string {
	if r.AppointmentDate != "" {
		return "Susitikimo patvirtinimas - " + r.AppointmentDate
	}
	return "Jūsų užklausa gauta"
}

func render(t *template.Template, r AppointmentRequest, c Contact) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, templateData{Styles: template.CSS(styles), Req: r, Contact: c}); err != nil {
		return "", fmt.Errorf("notify: render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
