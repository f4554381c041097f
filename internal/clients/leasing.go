package clients

import (
	"context"
	"net/url"
	"time"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/config"
)

const leasingServiceName = "leasing"

// Lease is the subset of a lease record the loan workflow needs.
type Lease struct {
	LeaseID          string     `json:"leaseId"`
	RentalObjectCode string     `json:"rentalObjectCode"`
	Status           string     `json:"status"`
	StartDate        time.Time  `json:"startDate"`
	EndDate          *time.Time `json:"endDate"`
}

// Active reports whether the lease is currently in force.
func (l Lease) Active(now time.Time) bool {
	if l.StartDate.After(now) {
		return false
	}

	return l.EndDate == nil || l.EndDate.After(now)
}

// LeasingClient looks up lease contracts for a borrower.
type LeasingClient struct {
	rest *restClient
}

func NewLeasingClient(cfg config.RESTService) (*LeasingClient, error) {
	rest, err := newRESTClient(leasingServiceName, cfg)
	if err != nil {
		return nil, err
	}

	return &LeasingClient{rest: rest}, nil
}

// GetLeasesByContact lists the leases registered for a contact code.
func (c *LeasingClient) GetLeasesByContact(ctx context.Context, contactCode string) ([]Lease, error) {
	var envelope struct {
		Content []Lease `json:"content"`
	}

	path := "/leases/by-contact-code/" + url.PathEscape(contactCode)

	err := c.rest.getJSON(ctx, path, nil, &envelope)
	if err != nil {
		return nil, err
	}

	return envelope.Content, nil
}
