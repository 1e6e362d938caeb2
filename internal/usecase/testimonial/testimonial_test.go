package testimonial

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/BruksfildServices01/site-backend/internal/domain"
	tdomain "github.com/BruksfildServices01/site-backend/internal/domain/testimonial"
	"github.com/BruksfildServices01/site-backend/internal/httperr"
	"github.com/BruksfildServices01/site-backend/internal/logging"
	"github.com/BruksfildServices01/site-backend/internal/models"
	"github.com/BruksfildServices01/site-backend/internal/testutil"
	"github.com/BruksfildServices01/site-backend/internal/validators"
)

type fakePhotos struct {
	stored  map[string]string
	removed []string
	err     error
}

func (f *fakePhotos) Upload(ctx context.Context, prefix, field string, r io.Reader) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	b, _ := io.ReadAll(r)
	key := prefix + "/photo.webp"
	f.stored[key] = string(b)
	return "https://cdn.example.com/" + key, key, nil
}

func (f *fakePhotos) Remove(ctx context.Context, key string) error {
	f.removed = append(f.removed, key)
	delete(f.stored, key)
	return nil
}

var (
	admin   = &models.User{ID: 1, Role: models.RoleAdmin}
	visitor = &models.User{ID: 2, Role: models.RoleUser}
	other   = &models.User{ID: 3, Role: models.RoleUser}
)

func newService() (*Service, *testutil.MemRepo[models.Testimonial], *fakePhotos) {
	repo := testutil.NewMemRepo[models.Testimonial]()
	photos := &fakePhotos{stored: map[string]string{}}
	return NewService(repo, photos, &testutil.Audit{}, logging.Discard()), repo, photos
}

func input() validators.TestimonialInput {
	return validators.TestimonialInput{
		Name:    "Claire Martin",
		Role:    "CEO",
		Company: "Acme",
		Rating:  5,
		Comment: "Great assistance every single week",
	}
}

func TestCreateStartsPendingAndHidden(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, input(), nil, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != "pending" || created.Published {
		t.Fatalf("unexpected initial state %+v", created)
	}

	if _, err := svc.Get(ctx, nil, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("anonymous viewer should not see pending testimonial, got %v", err)
	}
	if _, err := svc.Get(ctx, admin, created.ID); err != nil {
		t.Fatalf("admin should see pending testimonial: %v", err)
	}
}

func TestCreateWithPhoto(t *testing.T) {
	svc, _, photos := newService()

	created, err := svc.Create(context.Background(), input(), &visitor.ID, strings.NewReader("img"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Photo != "https://cdn.example.com/testimonials/photo.webp" || created.PhotoKey != "testimonials/photo.webp" {
		t.Fatalf("photo not attached: %+v", created)
	}
	if *created.UserID != visitor.ID {
		t.Fatalf("owner not recorded")
	}
	if len(photos.stored) != 1 {
		t.Fatalf("photo not stored")
	}
}

func TestCreateRemovesPhotoWhenInsertFails(t *testing.T) {
	svc, repo, photos := newService()
	repo.CreateErr = domain.ErrConstraintViolation

	if _, err := svc.Create(context.Background(), input(), nil, strings.NewReader("img")); !errors.Is(err, domain.ErrConstraintViolation) {
		t.Fatalf("expected constraint violation, got %v", err)
	}
	if len(photos.stored) != 0 || len(photos.removed) != 1 {
		t.Fatalf("orphan photo left behind: %+v", photos)
	}
}

func TestModerationVisibility(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	created, _ := svc.Create(ctx, input(), nil, nil)

	for i := 0; i < 2; i++ {
		got, err := svc.Approve(ctx, admin.ID, created.ID, true)
		if err != nil {
			t.Fatalf("approve #%d: %v", i+1, err)
		}
		if got.Status != "approved" {
			t.Fatalf("expected approved, got %s", got.Status)
		}
	}

	page, _ := svc.List(ctx, nil, domain.ListFilter{})
	if page.Total != 0 {
		t.Fatalf("approved but unpublished must stay hidden, got %d", page.Total)
	}

	if _, err := svc.Publish(ctx, admin.ID, created.ID, true); err != nil {
		t.Fatalf("publish: %v", err)
	}
	page, _ = svc.List(ctx, nil, domain.ListFilter{Status: "pending"})
	if page.Total != 1 {
		t.Fatalf("public list should ignore the status filter and show 1, got %d", page.Total)
	}

	if _, err := svc.Approve(ctx, admin.ID, created.ID, false); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if _, err := svc.Get(ctx, visitor, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("rejected testimonial must be hidden, got %v", err)
	}

	page, _ = svc.List(ctx, admin, domain.ListFilter{Status: "rejected"})
	if page.Total != 1 {
		t.Fatalf("admin should see the rejected testimonial")
	}
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	created, _ := svc.Create(ctx, input(), nil, nil)

	if _, err := svc.UpdateStatus(ctx, admin.ID, created.ID, "archived"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	got, err := svc.UpdateStatus(ctx, admin.ID, created.ID, tdomain.StatusApproved)
	if err != nil || got.Status != "approved" {
		t.Fatalf("update: %v %+v", err, got)
	}
}

func TestDeleteOwnership(t *testing.T) {
	svc, repo, photos := newService()
	ctx := context.Background()
	created, _ := svc.Create(ctx, input(), &visitor.ID, strings.NewReader("img"))

	err := svc.Delete(ctx, other, created.ID)
	if !errors.Is(err, domain.ErrForbidden) || !httperr.IsBusiness(err, "not_owner") {
		t.Fatalf("expected not_owner, got %v", err)
	}
	if repo.Len() != 1 {
		t.Fatalf("foreign delete must not remove the row")
	}

	if err := svc.Delete(ctx, visitor, created.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if len(photos.removed) != 1 {
		t.Fatalf("photo should be removed with the testimonial")
	}
	if err := svc.Delete(ctx, admin, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
