package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyumbahomes/nyumba/internal/lib/job"
	"github.com/nyumbahomes/nyumba/internal/model"
	"github.com/nyumbahomes/nyumba/internal/repository"
)

func TestInquiryCreateStartsPendingAndUnverified(t *testing.T) {
	properties := &fakePropertyRepository{}
	seeded := seedProperties(t, properties, 1, "Nairobi", 45000)
	inquiries := &fakeInquiryRepository{}
	enqueuer := &fakeEnqueuer{}

	svc := NewInquiryService(inquiries, properties, enqueuer, &testLogger)

	iq, err := svc.Create(context.Background(), CreateInquiryInput{
		PropertyID:       seeded[0].ID,
		Name:             "Wanjiku",
		Email:            "wanjiku@example.com",
		Phone:            "+254700000000",
		Message:          "Is this still available?",
		PreferredContact: model.ContactChannelWhatsApp,
	})
	require.NoError(t, err)

	assert.Equal(t, model.InquiryStatusPending, iq.Status)
	assert.False(t, iq.Verified)
	assert.NotEmpty(t, iq.ID)
}

func TestInquiryCreateEnqueuesAckAndNotification(t *testing.T) {
	properties := &fakePropertyRepository{}
	seeded := seedProperties(t, properties, 1, "Nairobi", 45000)
	inquiries := &fakeInquiryRepository{}
	enqueuer := &fakeEnqueuer{}

	svc := NewInquiryService(inquiries, properties, enqueuer, &testLogger)

	_, err := svc.Create(context.Background(), CreateInquiryInput{
		PropertyID:       seeded[0].ID,
		Name:             "Wanjiku",
		Email:            "wanjiku@example.com",
		Phone:            "+254700000000",
		Message:          "Is this still available?",
		PreferredContact: model.ContactChannelEmail,
	})
	require.NoError(t, err)

	require.Len(t, enqueuer.tasks, 2)
	assert.Equal(t, job.TaskInquiryAck, enqueuer.tasks[0].Type())
	assert.Equal(t, job.TaskInquiryNotify, enqueuer.tasks[1].Type())
}

func TestInquiryCreateRejectsUnknownProperty(t *testing.T) {
	svc := NewInquiryService(&fakeInquiryRepository{}, &fakePropertyRepository{}, &fakeEnqueuer{}, &testLogger)

	_, err := svc.Create(context.Background(), CreateInquiryInput{
		PropertyID:       "3f1f8a5e-0000-4000-8000-000000000000",
		Name:             "Wanjiku",
		Email:            "wanjiku@example.com",
		PreferredContact: model.ContactChannelEmail,
	})
	require.Error(t, err)

	_, err = svc.Create(context.Background(), CreateInquiryInput{
		PropertyID:       "not-a-uuid",
		Name:             "Wanjiku",
		Email:            "wanjiku@example.com",
		PreferredContact: model.ContactChannelEmail,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestInquiryCreateSurvivesEnqueueFailure(t *testing.T) {
	properties := &fakePropertyRepository{}
	seeded := seedProperties(t, properties, 1, "Nairobi", 45000)
	inquiries := &fakeInquiryRepository{}
	enqueuer := &fakeEnqueuer{failWith: errors.New("redis down")}

	svc := NewInquiryService(inquiries, properties, enqueuer, &testLogger)

	iq, err := svc.Create(context.Background(), CreateInquiryInput{
		PropertyID:       seeded[0].ID,
		Name:             "Wanjiku",
		Email:            "wanjiku@example.com",
		PreferredContact: model.ContactChannelEmail,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, iq.ID)
}

func TestInquiryListFiltersByStatus(t *testing.T) {
	properties := &fakePropertyRepository{}
	seeded := seedProperties(t, properties, 1, "Nairobi", 45000)
	inquiries := &fakeInquiryRepository{}

	svc := NewInquiryService(inquiries, properties, &fakeEnqueuer{}, &testLogger)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), CreateInquiryInput{
			PropertyID:       seeded[0].ID,
			Name:             "Visitor",
			Email:            "visitor@example.com",
			PreferredContact: model.ContactChannelEmail,
		})
		require.NoError(t, err)
	}

	first, err := svc.List(context.Background(), repository.InquiryFilter{}, ListOptions{Limit: 1})
	require.NoError(t, err)
	require.Len(t, first.Data, 1)

	contacted := model.InquiryStatusContacted
	_, err = svc.Update(context.Background(), first.Data[0].ID, UpdateInquiryInput{Status: &contacted})
	require.NoError(t, err)

	pending, err := svc.List(context.Background(), repository.InquiryFilter{Status: model.InquiryStatusPending}, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), pending.Total)
}

func TestInquiryUpdateRejectsUnknownStatus(t *testing.T) {
	svc := NewInquiryService(&fakeInquiryRepository{}, &fakePropertyRepository{}, &fakeEnqueuer{}, &testLogger)

	archived := model.InquiryStatus("archived")
	_, err := svc.Update(context.Background(), "3f1f8a5e-0000-4000-8000-000000000000", UpdateInquiryInput{Status: &archived})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid inquiry status")
}

func TestInquiryUpdateFlipsVerified(t *testing.T) {
	properties := &fakePropertyRepository{}
	seeded := seedProperties(t, properties, 1, "Nairobi", 45000)
	inquiries := &fakeInquiryRepository{}

	svc := NewInquiryService(inquiries, properties, &fakeEnqueuer{}, &testLogger)

	iq, err := svc.Create(context.Background(), CreateInquiryInput{
		PropertyID:       seeded[0].ID,
		Name:             "Wanjiku",
		Email:            "wanjiku@example.com",
		PreferredContact: model.ContactChannelEmail,
	})
	require.NoError(t, err)
	require.False(t, iq.Verified)

	verified := true
	updated, err := svc.Update(context.Background(), iq.ID, UpdateInquiryInput{Verified: &verified})
	require.NoError(t, err)

	// The verified flag flips independently of the pipeline status.
	assert.True(t, updated.Verified)
	assert.Equal(t, model.InquiryStatusPending, updated.Status)

	contacted := model.InquiryStatusContacted
	updated, err = svc.Update(context.Background(), iq.ID, UpdateInquiryInput{Status: &contacted})
	require.NoError(t, err)
	assert.True(t, updated.Verified)
	assert.Equal(t, model.InquiryStatusContacted, updated.Status)
}

func TestInquiryDeleteIsIdempotent(t *testing.T) {
	properties := &fakePropertyRepository{}
	seeded := seedProperties(t, properties, 1, "Nairobi", 45000)
	inquiries := &fakeInquiryRepository{}

	svc := NewInquiryService(inquiries, properties, &fakeEnqueuer{}, &testLogger)

	iq, err := svc.Create(context.Background(), CreateInquiryInput{
		PropertyID:       seeded[0].ID,
		Name:             "Visitor",
		Email:            "visitor@example.com",
		PreferredContact: model.ContactChannelEmail,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), iq.ID))
	require.NoError(t, svc.Delete(context.Background(), iq.ID))
}
