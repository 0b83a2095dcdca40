package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/polkiloo/cleanorder/internal/adapter/api"
	domainErrors "github.com/polkiloo/cleanorder/internal/domain/errors"
	"github.com/polkiloo/cleanorder/internal/domain/model"
)

// ProfileUseCase reads and edits the customer profile.
type ProfileUseCase struct {
	client api.Client
}

// NewProfileUseCase constructs ProfileUseCase.
func NewProfileUseCase(client api.Client) *ProfileUseCase {
	return &ProfileUseCase{client: client}
}

// Get fetches the signed-in profile.
func (u *ProfileUseCase) Get(ctx context.Context) (*model.Profile, error) {
	return u.client.Profile(ctx)
}

// Update changes name and phone.
func (u *ProfileUseCase) Update(ctx context.Context, upd model.ProfileUpdate) (*model.Profile, error) {
	upd.Name = strings.TrimSpace(upd.Name)
	upd.Phone = strings.TrimSpace(upd.Phone)
	if upd.Name == "" || upd.Phone == "" {
		return nil, fmt.Errorf("%w: name and phone are required", domainErrors.ErrValidation)
	}
	return u.client.UpdateProfile(ctx, upd)
}
