package request

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/timbermagic/timbermagic-api/internal/audit"
	domain "github.com/timbermagic/timbermagic-api/internal/domain/request"
	"github.com/timbermagic/timbermagic-api/internal/infra/mailer"
	"github.com/timbermagic/timbermagic-api/internal/models"
)

type fakeRepo struct {
	customers []models.Customer
	services  map[uuid.UUID]models.Service
	requests  map[uuid.UUID]*models.ServiceRequest
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services: map[uuid.UUID]models.Service{},
		requests: map[uuid.UUID]*models.ServiceRequest{},
	}
}

func (r *fakeRepo) CreateWithCustomer(_ context.Context, c *models.Customer, req *models.ServiceRequest) (bool, error) {
	created := true
	for _, existing := range r.customers {
		if existing.Email == c.Email {
			*c = existing
			created = false
			break
		}
	}
	if created {
		c.ID = uuid.New()
		r.customers = append(r.customers, *c)
	}

	req.ID = uuid.New()
	req.CustomerID = c.ID
	cp := *req
	r.requests[req.ID] = &cp
	return created, nil
}

func (r *fakeRepo) ServiceExists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.services[id]
	return ok, nil
}

func (r *fakeRepo) Get(_ context.Context, id uuid.UUID) (*models.ServiceRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *req
	for _, c := range r.customers {
		if c.ID == req.CustomerID {
			c := c
			cp.Customer = &c
		}
	}
	if req.ServiceID != nil {
		if s, ok := r.services[*req.ServiceID]; ok {
			cp.Service = &s
		}
	}
	return &cp, nil
}

func (r *fakeRepo) List(context.Context) ([]models.ServiceRequest, error) {
	out := make([]models.ServiceRequest, 0, len(r.requests))
	for _, req := range r.requests {
		out = append(out, *req)
	}
	return out, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, st domain.Status) error {
	req, ok := r.requests[id]
	if !ok {
		return domain.ErrNotFound
	}
	req.Status = string(st)
	return nil
}

type fakeAudit struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *fakeAudit) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

type fakeMailer struct {
	sent []mailer.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	m.sent = append(m.sent, msg)
	return m.err
}

type fakeSMS struct {
	to, body string
	err      error
}

func (s *fakeSMS) Send(_ context.Context, to, body string) error {
	s.to, s.body = to, body
	return s.err
}

type fakeDomains struct{ ok bool }

func (f fakeDomains) Valid(context.Context, string) bool { return f.ok }
