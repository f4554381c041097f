package clients

import (
	"context"
	"net/url"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/config"
)

const contactsServiceName = "contacts"

// Contact is the borrower record the contacts service keeps.
type Contact struct {
	ContactCode  string `json:"contactCode"`
	FullName     string `json:"fullName"`
	PhoneNumber  string `json:"phoneNumber"`
	EmailAddress string `json:"emailAddress"`
}

// ContactsClient resolves borrower identities against the contacts service.
type ContactsClient struct {
	rest *restClient
}

func NewContactsClient(cfg config.RESTService) (*ContactsClient, error) {
	rest, err := newRESTClient(contactsServiceName, cfg)
	if err != nil {
		return nil, err
	}

	return &ContactsClient{rest: rest}, nil
}

// GetContact fetches a single contact by contact code. A missing contact
// surfaces as a not-found AdapterError.
func (c *ContactsClient) GetContact(ctx context.Context, contactCode string) (*Contact, error) {
	var envelope struct {
		Content Contact `json:"content"`
	}

	path := "/contacts/" + url.PathEscape(contactCode)

	err := c.rest.getJSON(ctx, path, nil, &envelope)
	if err != nil {
		return nil, err
	}

	return &envelope.Content, nil
}
