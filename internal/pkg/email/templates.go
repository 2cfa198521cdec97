package email

import (
	"bytes"
	"fmt"
	"html/template"
)

const verificationTemplate = `
<html>
<body>
    <h2>Welcome to Snapdi, {{.UserName}}!</h2>
    <p>Thank you for registering with Snapdi. To complete your registration, please verify your email address by clicking the link below:</p>
    <p><a href="{{.ActionURL}}" style="background-color: #4CAF50; color: white; padding: 10px 20px; text-decoration: none; border-radius: 4px;">Verify Email Address</a></p>
    <p>Or copy and paste this link into your browser:</p>
    <p>{{.ActionURL}}</p>
    <p>This verification link will expire in 24 hours.</p>
    <p>If you didn't create an account with Snapdi, please ignore this email.</p>
    <br>
    <p>Best regards,<br>The Snapdi Team</p>
</body>
</html>`

const welcomeTemplate = `
<html>
<body>
    <h2>Welcome to Snapdi, {{.UserName}}!</h2>
    <p>Your email has been successfully verified and your account is now active.</p>
    <p>You can now:</p>
    <ul>
        <li>Browse and book photographers</li>
        <li>Create your photographer profile</li>
        <li>Connect with the photography community</li>
    </ul>
    <p>Thank you for joining Snapdi!</p>
    <br>
    <p>Best regards,<br>The Snapdi Team</p>
</body>
</html>`

const passwordResetTemplate = `
<html>
<body>
    <h2>Password Reset Request</h2>
    <p>Hello {{.UserName}},</p>
    <p>We received a request to reset your password for your Snapdi account. Click the link below to create a new password:</p>
    <p><a href="{{.ActionURL}}" style="background-color: #2196F3; color: white; padding: 10px 20px; text-decoration: none; border-radius: 4px;">Reset Password</a></p>
    <p>Or copy and paste this link into your browser:</p>
    <p>{{.ActionURL}}</p>
    <p>This reset link will expire in 1 hour.</p>
    <p>If you didn't request a password reset, please ignore this email.</p>
    <br>
    <p>Best regards,<br>The Snapdi Team</p>
</body>
</html>`

// TemplateManager renders the HTML bodies of outbound messages.
type TemplateManager struct {
	templates *template.Template
}

// NewTemplateManager parses the built-in templates.
func NewTemplateManager() (*TemplateManager, error) {
	root := template.New("email")

	for name, text := range map[string]string{
		"verification":   verificationTemplate,
		"welcome":        welcomeTemplate,
		"password_reset": passwordResetTemplate,
	} {
		if _, err := root.New(name).Parse(text); err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
	}

	return &TemplateManager{templates: root}, nil
}

// Render executes the named template with the given data.
func (tm *TemplateManager) Render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tm.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}
