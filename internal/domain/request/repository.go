package request

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/timbermagic/timbermagic-api/internal/models"
)

var ErrNotFound = errors.New("request not found")

type Repository interface {
	// CreateWithCustomer finds the customer by exact email or creates it, then
	// inserts req for that customer, in one transaction. created reports
	// whether a new customer row was written.
	CreateWithCustomer(ctx context.Context, customer *models.Customer, req *models.ServiceRequest) (created bool, err error)

	ServiceExists(ctx context.Context, id uuid.UUID) (bool, error)

	Get(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error)
	List(ctx context.Context) ([]models.ServiceRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}
