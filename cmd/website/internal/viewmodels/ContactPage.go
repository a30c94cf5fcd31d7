package viewmodels

type ContactPage struct {
	BaseViewModel
	Name        string
	Email       string
	Subject     string
	Body        string
	FieldErrors map[string]string
	Sent        bool
}
