package email

import "sync"

// MockProvider records sends instead of dispatching them. Used in tests
// and local development without an SMTP server.
type MockProvider struct {
	mu sync.Mutex

	// FailSends makes every send return this error when non-nil.
	FailSends error

	Verifications  []MockSend
	Welcomes       []MockSend
	PasswordResets []MockSend
}

// NewMockProvider builds an empty recording provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// MockSend is one recorded dispatch.
type MockSend struct {
	To    string
	Name  string
	Token string
}

func (m *MockProvider) SendVerification(toEmail, name, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSends != nil {
		return m.FailSends
	}
	m.Verifications = append(m.Verifications, MockSend{To: toEmail, Name: name, Token: token})
	return nil
}

func (m *MockProvider) SendWelcome(toEmail, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSends != nil {
		return m.FailSends
	}
	m.Welcomes = append(m.Welcomes, MockSend{To: toEmail, Name: name})
	return nil
}

func (m *MockProvider) SendPasswordReset(toEmail, name, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSends != nil {
		return m.FailSends
	}
	m.PasswordResets = append(m.PasswordResets, MockSend{To: toEmail, Name: name, Token: token})
	return nil
}
