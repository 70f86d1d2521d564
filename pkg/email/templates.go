package email

import (
	"bytes"
	"html/template"
)

// TemplateManager holds the parsed email templates.
type TemplateManager struct {
	CredentialsTmpl *template.Template
}

// NewTemplateManager parses all email templates at startup.
func NewTemplateManager() (*TemplateManager, error) {
	credentialsTmpl, err := template.New("credentials").Parse(credentialsTemplate)
	if err != nil {
		return nil, err
	}

	return &TemplateManager{
		CredentialsTmpl: credentialsTmpl,
	}, nil
}

// TemplateData holds the dynamic data for an email template.
type TemplateData struct {
	Name     string
	Password string
}

// GenerateCredentialsEmailHTML renders the account-credentials email body.
func (tm *TemplateManager) GenerateCredentialsEmailHTML(data TemplateData) (string, error) {
	var body bytes.Buffer
	if err := tm.CredentialsTmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

const credentialsTemplate = `
<!DOCTYPE html>
<html>
<head>
	<title>Your Back-Office Account</title>
</head>
<body style="font-family: Arial, sans-serif;">
	<h2>Welcome aboard, {{.Name}}!</h2>
	<p>An administrator has created a travel-agency back-office account for you.</p>
	<p>Username: <strong>{{.Name}}</strong></p>
	<p>Temporary password: <strong>{{.Password}}</strong></p>
	<p>Please sign in and change this password as soon as possible.</p>
	<p>If you were not expecting this account, contact your administrator.</p>
</body>
</html>
`
