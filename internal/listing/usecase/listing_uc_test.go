package usecase

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tharun69CS/EcoFinds/internal/adapter/repository/memory"
	"github.com/tharun69CS/EcoFinds/internal/auth"
	"github.com/tharun69CS/EcoFinds/internal/listing/domain"
	"github.com/tharun69CS/EcoFinds/internal/platform/logger"
	userdomain "github.com/tharun69CS/EcoFinds/internal/user/domain"
)

type recordingPublisher struct {
	subjects []string
}

func (p *recordingPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	p.subjects = append(p.subjects, subject)
	return nil
}

type recordingMailer struct {
	recipients []string
}

func (m *recordingMailer) SendListingCreated(toEmail, listingTitle string) error {
	m.recipients = append(m.recipients, toEmail)
	return nil
}

func testLogger() *logger.Logger {
	return logger.NewWithOutput(io.Discard, &logger.Config{Level: "error", Format: "json"})
}

func identity(id, username, email string) *auth.Identity {
	return &auth.Identity{UserID: userdomain.ID(id), Username: username, Email: email}
}

func newTestUsecase() (*ListingUsecase, *recordingPublisher, *recordingMailer) {
	publisher := &recordingPublisher{}
	mail := &recordingMailer{}
	uc := NewListingUsecase(memory.NewListingRepository(), nil, publisher, mail, testLogger())
	return uc, publisher, mail
}

func validInput() domain.CreateInput {
	return domain.CreateInput{
		Title:       "Oak Chair",
		Description: "Solid oak dining chair",
		Category:    domain.CategoryFurniture,
		Price:       45.00,
	}
}

func TestListingUsecase_CreateStampsOwnerAndIsRetrievable(t *testing.T) {
	uc, publisher, mail := newTestUsecase()
	ctx := context.Background()
	caller := identity("u1", "alice", "alice@example.com")

	created, err := uc.Create(ctx, caller, validInput())
	require.NoError(t, err)

	assert.Equal(t, caller.UserID, created.OwnerID)
	assert.Equal(t, 45.00, created.Price)
	assert.Equal(t, domain.DefaultImageRef, created.ImageURL)
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, caller.UserID, fetched.OwnerID)

	assert.Equal(t, []string{SubjectListingCreated}, publisher.subjects)
	assert.Equal(t, []string{"alice@example.com"}, mail.recipients)
}

func TestListingUsecase_CreateValidationRejectsBadInput(t *testing.T) {
	uc, publisher, _ := newTestUsecase()

	_, err := uc.Create(context.Background(), identity("u1", "alice", ""), domain.CreateInput{
		Title:    "",
		Category: domain.Category("Vehicles"),
		Price:    -1,
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "description")
	assert.Contains(t, verr.Fields, "category")
	assert.Contains(t, verr.Fields, "price")
	assert.Empty(t, publisher.subjects, "nothing published for rejected input")
}

func TestListingUsecase_TitleIsStoredTrimmed(t *testing.T) {
	uc, _, _ := newTestUsecase()
	ctx := context.Background()
	owner := identity("u1", "alice", "alice@example.com")

	input := validInput()
	input.Title = "  Oak Chair  "
	created, err := uc.Create(ctx, owner, input)
	require.NoError(t, err)
	assert.Equal(t, "Oak Chair", created.Title)

	padded := "  Walnut Chair  "
	updated, err := uc.Update(ctx, owner, created.ID, domain.UpdateInput{Title: &padded})
	require.NoError(t, err)
	assert.Equal(t, "Walnut Chair", updated.Title)

	fetched, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Walnut Chair", fetched.Title)
}

func TestListingUsecase_GetUnknownID(t *testing.T) {
	uc, _, _ := newTestUsecase()
	_, err := uc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestListingUsecase_UpdatePartial(t *testing.T) {
	uc, publisher, _ := newTestUsecase()
	ctx := context.Background()
	owner := identity("u1", "alice", "alice@example.com")

	created, err := uc.Create(ctx, owner, validInput())
	require.NoError(t, err)

	newPrice := 9.99
	updated, err := uc.Update(ctx, owner, created.ID, domain.UpdateInput{Price: &newPrice})
	require.NoError(t, err)

	// Only price changes, everything else keeps its prior value.
	assert.Equal(t, 9.99, updated.Price)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.Category, updated.Category)
	assert.Equal(t, created.OwnerID, updated.OwnerID)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))

	assert.Contains(t, publisher.subjects, SubjectListingUpdated)
}

func TestListingUsecase_UpdateValidatesProvidedFields(t *testing.T) {
	uc, _, _ := newTestUsecase()
	ctx := context.Background()
	owner := identity("u1", "alice", "alice@example.com")

	created, err := uc.Create(ctx, owner, validInput())
	require.NoError(t, err)

	badPrice := -10.0
	_, err = uc.Update(ctx, owner, created.ID, domain.UpdateInput{Price: &badPrice})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "price")

	unchanged, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 45.00, unchanged.Price)
}

func TestListingUsecase_NonOwnerIsForbidden(t *testing.T) {
	uc, _, _ := newTestUsecase()
	ctx := context.Background()
	owner := identity("u1", "alice", "alice@example.com")
	stranger := identity("u2", "bob", "bob@example.com")

	created, err := uc.Create(ctx, owner, validInput())
	require.NoError(t, err)

	title := "Hijacked"
	_, err = uc.Update(ctx, stranger, created.ID, domain.UpdateInput{Title: &title})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.ErrorIs(t, uc.Delete(ctx, stranger, created.ID), domain.ErrForbidden)

	// The listing is untouched.
	fetched, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oak Chair", fetched.Title)
}

func TestListingUsecase_UpdateUnknownIDBeforeOwnershipCheck(t *testing.T) {
	uc, _, _ := newTestUsecase()
	title := "anything"
	_, err := uc.Update(context.Background(), identity("u1", "alice", ""), "missing", domain.UpdateInput{Title: &title})
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestListingUsecase_DeleteIsPermanent(t *testing.T) {
	uc, publisher, _ := newTestUsecase()
	ctx := context.Background()
	owner := identity("u1", "alice", "alice@example.com")

	created, err := uc.Create(ctx, owner, validInput())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, owner, created.ID))
	assert.Contains(t, publisher.subjects, SubjectListingDeleted)

	_, err = uc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)

	// A second delete reports not found, not success.
	assert.ErrorIs(t, uc.Delete(ctx, owner, created.ID), domain.ErrListingNotFound)
}

func TestListingUsecase_ListValidatesQuery(t *testing.T) {
	uc, _, _ := newTestUsecase()

	_, err := uc.List(context.Background(), "", "Vehicles", "")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "category")

	_, err = uc.List(context.Background(), "", "", "owner")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "sort")
}

func TestListingUsecase_ListFilters(t *testing.T) {
	uc, _, _ := newTestUsecase()
	ctx := context.Background()
	owner := identity("u1", "alice", "alice@example.com")

	_, err := uc.Create(ctx, owner, validInput())
	require.NoError(t, err)
	_, err = uc.Create(ctx, owner, domain.CreateInput{
		Title:       "Go Programming",
		Description: "Hardly used textbook",
		Category:    domain.CategoryBooks,
		Price:       20,
	})
	require.NoError(t, err)

	books, err := uc.List(ctx, "", "Books", "")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, domain.CategoryBooks, books[0].Category)

	chairs, err := uc.List(ctx, "chair", "", "")
	require.NoError(t, err)
	require.Len(t, chairs, 1)
	assert.Equal(t, "Oak Chair", chairs[0].Title)
}

// Full lifecycle: create as one user, fail to update as another, delete as
// the owner, then observe the gap.
func TestListingUsecase_OwnershipLifecycle(t *testing.T) {
	uc, _, _ := newTestUsecase()
	ctx := context.Background()
	u1 := identity("u1", "alice", "alice@example.com")
	u2 := identity("u2", "bob", "bob@example.com")

	created, err := uc.Create(ctx, u1, validInput())
	require.NoError(t, err)
	assert.Equal(t, u1.UserID, created.OwnerID)
	assert.Equal(t, 45.00, created.Price)

	price := 50.0
	_, err = uc.Update(ctx, u2, created.ID, domain.UpdateInput{Price: &price})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, uc.Delete(ctx, u1, created.ID))

	_, err = uc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}
