package email

import (
	"html"
	"strings"
)

// ContactNotification is the content of a contact form email
type ContactNotification struct {
	Reference string `json:"reference"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Message   string `json:"message"`
}

func buildContactHTML(siteName string, msg ContactNotification) string {
	var rows strings.Builder
	row := func(label, value string) {
		if value == "" {
			return
		}
		rows.WriteString(`<tr><td style="padding:4px 12px 4px 0;color:#666;">` + label + `</td><td style="padding:4px 0;">` +
			html.EscapeString(value) + "</td></tr>\n")
	}
	row("Name", msg.Name)
	row("Email", msg.Email)
	row("Phone", msg.Phone)
	row("Subject", msg.Subject)
	row("Reference", msg.Reference)

	body := html.EscapeString(msg.Message)
	body = strings.ReplaceAll(body, "\n", "<br>")

	return `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #1f3a5f; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .footer { padding: 10px; text-align: center; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New contact message</h1>
        </div>
        <div class="content">
            <table>
` + rows.String() + `            </table>
            <p>` + body + `</p>
        </div>
        <div class="footer">
            <p>Sent from the ` + html.EscapeString(siteName) + ` website</p>
        </div>
    </div>
</body>
</html>`
}
