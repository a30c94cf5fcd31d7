package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/adampresley/adamgokit/email"
	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidContactMessage = errors.New("invalid contact message")
)

type ContactMessage struct {
	Name    string `validate:"required,max=100"`
	Email   string `validate:"required,email"`
	Subject string `validate:"max=200"`
	Message string `validate:"required,min=10,max=5000"`
}

type ContactServicer interface {
	Send(message ContactMessage) error
	Validate(message ContactMessage) map[string]string
}

type ContactServiceConfig struct {
	FromEmail string
	FromName  string
	Mailer    Mailer
	ToEmail   string
	ToName    string
}

type ContactService struct {
	fromEmail string
	fromName  string
	mailer    Mailer
	toEmail   string
	toName    string
	validate  *validator.Validate
}

func NewContactService(config ContactServiceConfig) ContactService {
	return ContactService{
		fromEmail: config.FromEmail,
		fromName:  config.FromName,
		mailer:    config.Mailer,
		toEmail:   config.ToEmail,
		toName:    config.ToName,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

/*
Validate returns a message per invalid field, keyed by field name. An empty
map means the message can be sent.
*/
func (s ContactService) Validate(message ContactMessage) map[string]string {
	result := map[string]string{}
	err := s.validate.Struct(trimContactMessage(message))

	if err == nil {
		return result
	}

	var validationErrors validator.ValidationErrors

	if !errors.As(err, &validationErrors) {
		result["Message"] = "could not be validated"
		return result
	}

	for _, fieldErr := range validationErrors {
		switch fieldErr.Tag() {
		case "required":
			result[fieldErr.Field()] = "is required"
		case "email":
			result[fieldErr.Field()] = "must be a valid email address"
		case "min":
			result[fieldErr.Field()] = fmt.Sprintf("must be at least %s characters", fieldErr.Param())
		case "max":
			result[fieldErr.Field()] = fmt.Sprintf("must be at most %s characters", fieldErr.Param())
		default:
			result[fieldErr.Field()] = "is invalid"
		}
	}

	return result
}

func (s ContactService) Send(message ContactMessage) error {
	message = trimContactMessage(message)

	if problems := s.Validate(message); len(problems) > 0 {
		return fmt.Errorf("%w: %d fields", ErrInvalidContactMessage, len(problems))
	}

	subject := "Website contact"

	if message.Subject != "" {
		subject += ": " + message.Subject
	}

	err := s.mailer.Send(email.Mail{
		Body:       renderContactEmail(message),
		BodyIsHtml: true,
		From: email.EmailAddress{
			Email: s.fromEmail,
			Name:  s.fromName,
		},
		Subject: subject,
		To: []email.EmailAddress{
			{Name: s.toName, Email: s.toEmail},
		},
	})

	if err != nil {
		return fmt.Errorf("error sending contact email from %s: %w", message.Email, err)
	}

	slog.Info("contact message sent", "from", message.Email)
	return nil
}

func trimContactMessage(message ContactMessage) ContactMessage {
	return ContactMessage{
		Name:    strings.TrimSpace(message.Name),
		Email:   strings.TrimSpace(message.Email),
		Subject: strings.TrimSpace(message.Subject),
		Message: strings.TrimSpace(message.Message),
	}
}
