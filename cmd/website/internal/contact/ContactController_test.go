package contact

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/adampresley/adamgokit/email"
	"github.com/danehillard/dhp/cmd/website/internal/viewmodels"
	"github.com/danehillard/dhp/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	sent []email.Mail
	err  error
}

func (m *recordingMailer) Send(mail email.Mail) error {
	if m.err != nil {
		return m.err
	}

	m.sent = append(m.sent, mail)
	return nil
}

type contactFixture struct {
	mailer *recordingMailer
	pages  []viewmodels.ContactPage
	mux    *http.ServeMux
}

func newContactFixture() *contactFixture {
	f := &contactFixture{
		mailer: &recordingMailer{},
		mux:    http.NewServeMux(),
	}

	controller := NewContactController(ContactControllerConfig{
		ContactService: services.NewContactService(services.ContactServiceConfig{
			FromEmail: "noreply@example.com",
			FromName:  "Website",
			Mailer:    f.mailer,
			ToEmail:   "owner@example.com",
			ToName:    "Owner",
		}),
	})

	controller.render = func(name string, data any, w http.ResponseWriter) {
		f.pages = append(f.pages, data.(viewmodels.ContactPage))
		_, _ = w.Write([]byte(name))
	}

	f.mux.HandleFunc("GET /contact", controller.ContactPage)
	f.mux.HandleFunc("POST /contact", controller.ContactAction)
	return f
}

func (f *contactFixture) post(form url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	f.mux.ServeHTTP(w, r)
	return w
}

func TestContactPageRendersEmptyForm(t *testing.T) {
	f := newContactFixture()

	w := httptest.NewRecorder()
	f.mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contact", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, f.pages, 1)
	assert.False(t, f.pages[0].Sent)
	assert.Empty(t, f.pages[0].FieldErrors)
}

func TestContactActionRerendersValidationErrors(t *testing.T) {
	f := newContactFixture()

	f.post(url.Values{
		"name":    {"Sam"},
		"email":   {"not-an-address"},
		"subject": {"Prints"},
		"message": {"hi"},
	})

	require.Len(t, f.pages, 1)
	page := f.pages[0]

	assert.True(t, page.IsWarning)
	assert.False(t, page.Sent)
	assert.Contains(t, page.FieldErrors, "Email")
	assert.Contains(t, page.FieldErrors, "Message")
	assert.NotContains(t, page.FieldErrors, "Name")

	assert.Equal(t, "Sam", page.Name)
	assert.Equal(t, "not-an-address", page.Email)
	assert.Equal(t, "Prints", page.Subject)
	assert.Equal(t, "hi", page.Body)
	assert.Empty(t, f.mailer.sent)
}

func TestContactActionSendsValidMessage(t *testing.T) {
	f := newContactFixture()

	f.post(url.Values{
		"name":    {"Sam"},
		"email":   {"sam@example.com"},
		"message": {"I'd like to book a portrait session."},
	})

	require.Len(t, f.pages, 1)
	assert.True(t, f.pages[0].Sent)
	assert.Empty(t, f.pages[0].Name)
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "owner@example.com", f.mailer.sent[0].To[0].Email)
}

func TestContactActionReportsMailFailure(t *testing.T) {
	f := newContactFixture()
	f.mailer.err = errors.New("provider down")

	f.post(url.Values{
		"name":    {"Sam"},
		"email":   {"sam@example.com"},
		"message": {"I'd like to book a portrait session."},
	})

	require.Len(t, f.pages, 1)
	assert.True(t, f.pages[0].IsError)
	assert.False(t, f.pages[0].Sent)
	assert.Equal(t, "sam@example.com", f.pages[0].Email)
}
