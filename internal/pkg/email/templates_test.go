package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateManager_RendersAllTemplates(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	data := templateData{
		UserName:  "Linh Tran",
		ActionURL: "https://snapdi.vn/verify?token=abc123",
	}

	for _, name := range []string{"verification", "welcome", "password_reset"} {
		body, err := tm.Render(name, data)
		require.NoError(t, err, "template %s", name)
		assert.Contains(t, body, "Linh Tran", "template %s", name)
	}
}

func TestTemplateManager_ActionLinkEmbedded(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	data := templateData{
		UserName:  "Linh",
		ActionURL: "https://snapdi.vn/verify?token=abc123",
	}

	body, err := tm.Render("verification", data)
	require.NoError(t, err)
	assert.Contains(t, body, "https://snapdi.vn/verify?token=abc123")
}

func TestTemplateManager_UnknownTemplate(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	_, err = tm.Render("no-such-template", templateData{})
	assert.Error(t, err)
}

func TestMockProvider_RecordsSends(t *testing.T) {
	m := NewMockProvider()

	require.NoError(t, m.SendVerification("a@b.com", "A", "tok-1"))
	require.NoError(t, m.SendWelcome("a@b.com", "A"))
	require.NoError(t, m.SendPasswordReset("a@b.com", "A", "tok-2"))

	require.Len(t, m.Verifications, 1)
	assert.Equal(t, "tok-1", m.Verifications[0].Token)
	assert.Len(t, m.Welcomes, 1)
	require.Len(t, m.PasswordResets, 1)
	assert.Equal(t, "tok-2", m.PasswordResets[0].Token)
}

func TestMockProvider_FailSends(t *testing.T) {
	m := NewMockProvider()
	m.FailSends = assert.AnError

	assert.Error(t, m.SendVerification("a@b.com", "A", "tok"))
	assert.Empty(t, m.Verifications)
}
