package request

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/timbermagic/timbermagic-api/internal/audit"
	domain "github.com/timbermagic/timbermagic-api/internal/domain/request"
	"github.com/timbermagic/timbermagic-api/internal/httperr"
	"github.com/timbermagic/timbermagic-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateRequestInput struct {
	Name        string
	Email       string
	Phone       string
	ServiceID   *uuid.UUID
	Description string

	// Images are base64 data URLs from the quote form.
	Images []string
}

// EmailDomainChecker is satisfied by validators.DomainChecker.
type EmailDomainChecker interface {
	Valid(ctx context.Context, email string) bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateRequest struct {
	repo     domain.Repository
	notifier *Notifier
	audit    audit.Recorder
	domains  EmailDomainChecker
}

// NewCreateRequest wires the intake flow. domains may be nil to skip the DNS
// check on the submitter's address.
func NewCreateRequest(
	repo domain.Repository,
	notifier *Notifier,
	audit audit.Recorder,
	domains EmailDomainChecker,
) *CreateRequest {
	return &CreateRequest{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		domains:  domains,
	}
}

type CreateRequestResult struct {
	Request         *models.ServiceRequest
	CustomerCreated bool
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateRequest) Execute(
	ctx context.Context,
	in CreateRequestInput,
) (*CreateRequestResult, error) {

	// --------------------------------------------------
	// Validation
	// --------------------------------------------------
	if uc.domains != nil && !uc.domains.Valid(ctx, in.Email) {
		return nil, httperr.ErrBusinessf("invalid_email_domain", "the email domain does not appear to exist")
	}

	if in.ServiceID != nil {
		ok, err := uc.repo.ServiceExists(ctx, *in.ServiceID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, httperr.ErrBusinessf("unknown_service", "service_id does not reference a service")
		}
	}

	// --------------------------------------------------
	// Customer (find by exact email or create) + request
	// --------------------------------------------------
	customer := &models.Customer{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
	}
	req := &models.ServiceRequest{
		ServiceID:   in.ServiceID,
		Description: in.Description,
		Status:      string(domain.InitialStatus()),
	}

	created, err := uc.repo.CreateWithCustomer(ctx, customer, req)
	if err != nil {
		return nil, err
	}

	full, err := uc.repo.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"request_id":       full.ID,
		"customer_id":      full.CustomerID,
		"customer_created": created,
		"images":           len(in.Images),
	}).Info("quote request received")

	// --------------------------------------------------
	// Notifications (best effort)
	// --------------------------------------------------
	uc.notifier.RequestReceived(ctx, full, in)

	uc.audit.Dispatch(audit.Event{
		Actor:    "public",
		Action:   "request_created",
		Entity:   "request",
		EntityID: full.ID.String(),
		Metadata: map[string]any{
			"customer_id":      full.CustomerID.String(),
			"customer_created": created,
		},
	})

	return &CreateRequestResult{Request: full, CustomerCreated: created}, nil
}
