package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

const logoURL = "https://i.imgur.com/yqLwbgN.png"

const contactAddress = "contact@ranazonai.in"

const layoutTemplate = `{{define "logo"}}<img src="` + logoURL + `" alt="Ranazonai Logo" style="height: 50px; margin-bottom: 20px;" />{{end}}
{{define "footer"}}
<hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;" />
<p style="margin-bottom: 6px;">Connect with us:</p>
<p>
  <a href="https://facebook.com/yourpage" style="margin-right: 10px;"><img src="https://cdn-icons-png.flaticon.com/24/733/733547.png" alt="Facebook" /></a>
  <a href="https://instagram.com/yourprofile" style="margin-right: 10px;"><img src="https://cdn-icons-png.flaticon.com/24/2111/2111463.png" alt="Instagram" /></a>
  <a href="https://x.com/ranazonai" style="margin-right: 10px;"><img src="https://cdn-icons-png.flaticon.com/24/3670/3670151.png" alt="Twitter" /></a>
  <a href="https://github.com/ranazonai" style="margin-right: 10px;"><img src="https://cdn-icons-png.flaticon.com/24/733/733553.png" alt="GitHub" /></a>
  <a href="https://www.linkedin.com/in/ranazonai/"><img src="https://cdn-icons-png.flaticon.com/24/174/174857.png" alt="LinkedIn" /></a>
</p>
{{end}}`

const internalTemplate = `<div style="font-family: Arial, sans-serif; color: #333; padding: 20px;">
  {{template "logo"}}
  <h2 style="color: #444;">New Enquiry Received</h2>
  <table cellpadding="6" cellspacing="0" style="border-collapse: collapse;">
    <tr><td><strong>Name:</strong></td><td>{{.Name}}</td></tr>
    <tr><td><strong>Email:</strong></td><td>{{.Email}}</td></tr>
    <tr><td><strong>Phone:</strong></td><td>{{.Phone}}</td></tr>
    <tr><td><strong>City:</strong></td><td>{{.City}}</td></tr>
    <tr><td><strong>Company:</strong></td><td>{{.Company}}</td></tr>
    <tr><td><strong>Services:</strong></td><td>{{.Services}}</td></tr>
    <tr><td><strong>Message:</strong></td><td>{{.Message}}</td></tr>
  </table>
  <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;" />
  <p style="font-size: 12px; color: #888;">Ranazonai Internal Notification - {{.ReceivedAt}}</p>
</div>`

const newContactTemplate = `<div style="font-family: Arial, sans-serif; color: #333; padding: 20px;">
  {{template "logo"}}
  <p>Hi {{.Name}},</p>
  <p>Thank you for reaching out to <strong>Ranazonai</strong>. We’re delighted to connect with you and appreciate your interest in our services.</p>
  <p>Your enquiry has been received, and one of our senior consultants will be in touch shortly to better understand your goals and explore how we can support your business growth.</p>
  <p>If your request is time-sensitive, feel free to contact us directly at <a href="mailto:{{.Contact}}">{{.Contact}}</a>.</p>
  <br>
  <p>Warm regards,<br><strong>The Ranazonai Team</strong></p>
  <p style="font-size: 12px; color: #888;">Igniting ideas. Driving results.</p>
</div>
<br>
{{template "footer"}}`

const returningContactTemplate = `<div style="font-family: Arial, sans-serif; color: #333; padding: 20px;">
  {{template "logo"}}
  <p>Hi {{.Name}},</p>
  <p>Welcome back, and thank you once again for choosing <strong>Ranazonai</strong>.</p>
  <p>Your continued trust means a lot to us. We’ve received your latest enquiry and will get in touch with you shortly to assist further.</p>
  <p>Should you need anything urgently, our team is available at <a href="mailto:{{.Contact}}">{{.Contact}}</a>.</p>
  <br>
  <p>Best regards,<br><strong>The Ranazonai Team</strong></p>
  <p style="font-size: 12px; color: #888;">Your growth partners in digital excellence.</p>
</div>
<br>
{{template "footer"}}`

var templates = template.Must(template.Must(template.Must(template.Must(
	template.New("layout").Parse(layoutTemplate)).
	New("internal").Parse(internalTemplate)).
	New("confirm_new").Parse(newContactTemplate)).
	New("confirm_returning").Parse(returningContactTemplate))

// internalData feeds the internal notification template.
type internalData struct {
	Name       string
	Email      string
	Phone      string
	City       string
	Company    string
	Services   string
	Message    string
	ReceivedAt string
}

// confirmationData feeds both confirmation templates.
type confirmationData struct {
	Name    string
	Contact string
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", name, err)
	}
	return buf.String(), nil
}
