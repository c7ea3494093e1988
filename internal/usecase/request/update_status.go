package request

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/timbermagic/timbermagic-api/internal/audit"
	domain "github.com/timbermagic/timbermagic-api/internal/domain/request"
	"github.com/timbermagic/timbermagic-api/internal/httperr"
	"github.com/timbermagic/timbermagic-api/internal/models"
)

type UpdateRequestStatus struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewUpdateRequestStatus(repo domain.Repository, audit audit.Recorder) *UpdateRequestStatus {
	return &UpdateRequestStatus{repo: repo, audit: audit}
}

func (uc *UpdateRequestStatus) Execute(
	ctx context.Context,
	id uuid.UUID,
	status string,
	actor string,
) (*models.ServiceRequest, error) {

	next, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	current, err := uc.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("request_not_found")
		}
		return nil, err
	}

	if err := domain.CanTransition(domain.Status(current.Status), next); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateStatus(ctx, id, next); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("request_not_found")
		}
		return nil, err
	}

	updated, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "request_status_changed",
		Entity:   "request",
		EntityID: id.String(),
		Metadata: map[string]any{"from": current.Status, "to": string(next)},
	})

	return updated, nil
}
