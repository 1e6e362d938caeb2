package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/BruksfildServices01/site-backend/internal/domain"
	"github.com/BruksfildServices01/site-backend/internal/logging"
	"github.com/BruksfildServices01/site-backend/internal/models"
	"github.com/BruksfildServices01/site-backend/internal/testutil"
	"github.com/BruksfildServices01/site-backend/internal/validators"
)

type fakeAvatars struct {
	n       int
	stored  map[string]bool
	removed []string
}

func (f *fakeAvatars) Upload(ctx context.Context, prefix, field string, r io.Reader) (string, string, error) {
	b, _ := io.ReadAll(r)
	if string(b) == "not-an-image" {
		return "", "", domain.NewValidationError(field, "only jpeg, png and gif images are accepted")
	}
	f.n++
	key := fmt.Sprintf("%s/%d.webp", prefix, f.n)
	f.stored[key] = true
	return "https://cdn.example.com/" + key, key, nil
}

func (f *fakeAvatars) Remove(ctx context.Context, key string) error {
	f.removed = append(f.removed, key)
	delete(f.stored, key)
	return nil
}

func setup(t *testing.T) (*Service, *fakeAvatars, uint) {
	t.Helper()
	users := testutil.NewMemUserRepo()
	u := &models.User{FirstName: "Nadia", LastName: "Benali", Email: "nadia@example.com", Phone: "0612345678", IsActive: true}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed: %v", err)
	}
	avatars := &fakeAvatars{stored: map[string]bool{}}
	return NewService(users, avatars, logging.Discard()), avatars, u.ID
}

func strPtr(s string) *string { return &s }

func TestUpdateProfilePartial(t *testing.T) {
	svc, _, id := setup(t)
	ctx := context.Background()

	u, err := svc.UpdateProfile(ctx, id, validators.ProfileInput{LastName: strPtr("Haddad")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u.FirstName != "Nadia" || u.LastName != "Haddad" || u.Phone != "0612345678" {
		t.Fatalf("unexpected profile %+v", u)
	}

	u, _ = svc.UpdateProfile(ctx, id, validators.ProfileInput{Phone: strPtr("")})
	if u.Phone != "" {
		t.Fatalf("empty phone should clear it, got %q", u.Phone)
	}

	if _, err := svc.UpdateProfile(ctx, 404, validators.ProfileInput{LastName: strPtr("X")}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAvatarLifecycle(t *testing.T) {
	svc, avatars, id := setup(t)
	ctx := context.Background()

	first, err := svc.SetAvatar(ctx, id, strings.NewReader("png"))
	if err != nil {
		t.Fatalf("set avatar: %v", err)
	}
	if first.Avatar != "https://cdn.example.com/avatars/1.webp" {
		t.Fatalf("unexpected avatar %q", first.Avatar)
	}

	second, _ := svc.SetAvatar(ctx, id, strings.NewReader("png"))
	if second.AvatarKey != "avatars/2.webp" {
		t.Fatalf("unexpected key %q", second.AvatarKey)
	}
	if len(avatars.removed) != 1 || avatars.removed[0] != "avatars/1.webp" {
		t.Fatalf("previous avatar not removed: %v", avatars.removed)
	}

	cleared, err := svc.RemoveAvatar(ctx, id)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if cleared.Avatar != "" || len(avatars.stored) != 0 {
		t.Fatalf("avatar not cleared: %+v %v", cleared, avatars.stored)
	}
}

func TestSetAvatarRejectsNonImage(t *testing.T) {
	svc, avatars, id := setup(t)

	_, err := svc.SetAvatar(context.Background(), id, strings.NewReader("not-an-image"))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(avatars.stored) != 0 {
		t.Fatalf("nothing should be stored")
	}
}
