package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"wifiportal/internal/ids"
	"wifiportal/internal/models"
)

type ContactService struct {
	messages contactStore
	events   eventPublisher
	log      zerolog.Logger
}

func NewContactService(messages contactStore, events eventPublisher, log zerolog.Logger) *ContactService {
	return &ContactService{
		messages: messages,
		events:   events,
		log:      log,
	}
}

type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func (s *ContactService) Submit(ctx context.Context, input ContactInput) (models.ContactMessage, error) {
	msg := models.ContactMessage{
		ID:      ids.New(),
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(strings.ToLower(input.Email)),
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		return models.ContactMessage{}, err
	}

	if err := s.events.PublishContactNotify(ctx, msg.ID, msg.Name, msg.Email); err != nil {
		s.log.Warn().Err(err).Str("message_id", msg.ID).Msg("contact notify enqueue failed")
	}
	return msg, nil
}
