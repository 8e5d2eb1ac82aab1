package service

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/nyumbahomes/nyumba/internal/errs"
	"github.com/nyumbahomes/nyumba/internal/lib/job"
	"github.com/nyumbahomes/nyumba/internal/model"
	"github.com/nyumbahomes/nyumba/internal/repository"
	"github.com/nyumbahomes/nyumba/internal/validation"
)

// TaskEnqueuer pushes background tasks. Satisfied by asynq.Client; faked
// in tests. A nil enqueuer disables notifications without breaking the
// inquiry flow.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// InquiryService implements the visitor contact flow and its back-office
// pipeline.
type InquiryService struct {
	inquiries  repository.InquiryRepository
	properties repository.PropertyRepository
	enqueuer   TaskEnqueuer
	logger     *zerolog.Logger
}

// CreateInquiryInput is a visitor's contact submission.
type CreateInquiryInput struct {
	PropertyID       string
	Name             string
	Email            string
	Phone            string
	Message          string
	PreferredContact model.ContactChannel
}

// InquiryList is a page of inquiries together with the total match count.
type InquiryList struct {
	Data  []model.Inquiry `json:"data"`
	Total int64           `json:"total"`
	Page  int64           `json:"page"`
	Limit int64           `json:"limit"`
}

// NewInquiryService creates an InquiryService.
func NewInquiryService(inquiries repository.InquiryRepository, properties repository.PropertyRepository, enqueuer TaskEnqueuer, logger *zerolog.Logger) *InquiryService {
	return &InquiryService{
		inquiries:  inquiries,
		properties: properties,
		enqueuer:   enqueuer,
		logger:     logger,
	}
}

// Create records an inquiry against an existing listing. New inquiries
// start pending and unverified; acknowledgement and back-office
// notification run as background tasks and never block the submission.
func (s *InquiryService) Create(ctx context.Context, input CreateInquiryInput) (model.Inquiry, error) {
	if !validation.IsValidUUID(input.PropertyID) {
		return model.Inquiry{}, errs.NewNotFoundError("Property not found", true, nil)
	}

	property, err := s.properties.FindByID(ctx, input.PropertyID)
	if err != nil {
		return model.Inquiry{}, err
	}

	inquiry, err := s.inquiries.Create(ctx, repository.CreateInquiryParams{
		PropertyID:       input.PropertyID,
		Name:             input.Name,
		Email:            input.Email,
		Phone:            input.Phone,
		Message:          input.Message,
		PreferredContact: input.PreferredContact,
		Status:           model.InquiryStatusPending,
		Verified:         false,
	})
	if err != nil {
		return model.Inquiry{}, err
	}

	s.notify(inquiry, property.Title)

	return inquiry, nil
}

// notify enqueues the acknowledgement and back-office notification tasks.
// Failures are logged and swallowed: the inquiry is already stored.
func (s *InquiryService) notify(inquiry model.Inquiry, propertyTitle string) {
	if s.enqueuer == nil {
		return
	}

	ack, err := job.NewInquiryAckTask(job.InquiryAckPayload{
		InquiryID:     inquiry.ID,
		Name:          inquiry.Name,
		Email:         inquiry.Email,
		Phone:         inquiry.Phone,
		Channel:       string(inquiry.PreferredContact),
		PropertyTitle: propertyTitle,
	})
	if err == nil {
		_, err = s.enqueuer.Enqueue(ack)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("inquiry_id", inquiry.ID).Msg("failed to enqueue inquiry acknowledgement")
	}

	notify, err := job.NewInquiryNotifyTask(job.InquiryNotifyPayload{
		InquiryID:     inquiry.ID,
		VisitorName:   inquiry.Name,
		VisitorEmail:  inquiry.Email,
		PropertyTitle: propertyTitle,
		Message:       inquiry.Message,
	})
	if err == nil {
		_, err = s.enqueuer.Enqueue(notify)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("inquiry_id", inquiry.ID).Msg("failed to enqueue inquiry notification")
	}
}

// List returns a page of inquiries matching the filter plus the total
// count of matches.
func (s *InquiryService) List(ctx context.Context, filter repository.InquiryFilter, opts ListOptions) (InquiryList, error) {
	find, page, limit := opts.findOptions()

	items, err := s.inquiries.Find(ctx, filter, find)
	if err != nil {
		return InquiryList{}, err
	}

	total, err := s.inquiries.Count(ctx, filter)
	if err != nil {
		return InquiryList{}, err
	}

	if items == nil {
		items = []model.Inquiry{}
	}

	return InquiryList{
		Data:  items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// Get returns one inquiry by id.
func (s *InquiryService) Get(ctx context.Context, id string) (model.Inquiry, error) {
	if !validation.IsValidUUID(id) {
		return model.Inquiry{}, errs.NewNotFoundError("Inquiry not found", true, nil)
	}
	return s.inquiries.FindByID(ctx, id)
}

// UpdateInquiryInput is a sparse back-office update. Nil fields leave the
// stored value untouched.
type UpdateInquiryInput struct {
	Status   *model.InquiryStatus
	Verified *bool
}

// Update moves an inquiry through the back-office pipeline and records
// whether its contact details have been verified.
func (s *InquiryService) Update(ctx context.Context, id string, input UpdateInquiryInput) (model.Inquiry, error) {
	if !validation.IsValidUUID(id) {
		return model.Inquiry{}, errs.NewNotFoundError("Inquiry not found", true, nil)
	}
	if input.Status != nil && !model.IsValidInquiryStatus(*input.Status) {
		return model.Inquiry{}, errs.NewBadRequestError("Invalid inquiry status", true, nil, nil, nil)
	}

	return s.inquiries.Update(ctx, id, repository.InquiryPatch{
		Status:   input.Status,
		Verified: input.Verified,
	})
}

// Delete removes an inquiry. Deleting an id that does not exist is not an
// error.
func (s *InquiryService) Delete(ctx context.Context, id string) error {
	if !validation.IsValidUUID(id) {
		return nil
	}

	_, err := s.inquiries.Delete(ctx, id)
	return err
}
