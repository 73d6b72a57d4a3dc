package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/platform/sendgrid"
	"github.com/coralab/coralab-backend/internal/repos"
	"github.com/coralab/coralab-backend/internal/types"
)

type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type ContactService interface {
	Submit(ctx context.Context, input ContactInput) (*types.Contact, error)
	List(ctx context.Context) ([]*types.Contact, error)
}

type contactService struct {
	db          *gorm.DB
	log         *logger.Logger
	contactRepo repos.ContactRepo
	aboutRepo   repos.AboutRepo
	mail        sendgrid.Client
}

// NewContactService accepts a nil mail client; submissions are then
// stored without the notification email.
func NewContactService(
	db *gorm.DB,
	log *logger.Logger,
	contactRepo repos.ContactRepo,
	aboutRepo repos.AboutRepo,
	mail sendgrid.Client,
) ContactService {
	return &contactService{
		db:          db,
		log:         log.With("service", "ContactService"),
		contactRepo: contactRepo,
		aboutRepo:   aboutRepo,
		mail:        mail,
	}
}

func (s *contactService) Submit(ctx context.Context, input ContactInput) (*types.Contact, error) {
	contact := &types.Contact{
		ID:      uuid.New(),
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
	}
	created, err := s.contactRepo.Create(ctx, nil, contact)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, created)
	return created, nil
}

func (s *contactService) List(ctx context.Context) ([]*types.Contact, error) {
	return s.contactRepo.List(ctx, nil)
}

// notify forwards the submission to the group inbox. Failures are
// logged, never surfaced: the message is already persisted.
func (s *contactService) notify(ctx context.Context, contact *types.Contact) {
	if s.mail == nil {
		return
	}
	about, err := s.aboutRepo.Get(ctx, nil)
	if err != nil || about == nil || about.Email == "" {
		return
	}

	body := fmt.Sprintf(
		"Pesan baru dari formulir kontak.\n\nNama: %s\nEmail: %s\nSubjek: %s\n\n%s\n",
		contact.Name, contact.Email, contact.Subject, contact.Message,
	)
	_, err = s.mail.Send(ctx, sendgrid.SendEmailRequest{
		To:      []sendgrid.EmailAddress{{Email: about.Email}},
		ReplyTo: &sendgrid.EmailAddress{Email: contact.Email, Name: contact.Name},
		Subject: "[Kontak] " + contact.Subject,
		Text:    body,
	})
	if err != nil {
		s.log.Warn("contact notification email failed", "contact_id", contact.ID, "error", err)
	}
}
