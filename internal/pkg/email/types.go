package email

// Provider is the outbound email contract the services depend on. A
// send either succeeds or returns an error; the core never retries.
type Provider interface {
	SendVerification(toEmail, name, token string) error
	SendWelcome(toEmail, name string) error
	SendPasswordReset(toEmail, name, token string) error
}

// Message is a rendered email ready for dispatch.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// templateData feeds the HTML body templates.
type templateData struct {
	UserName  string
	ActionURL string
}
