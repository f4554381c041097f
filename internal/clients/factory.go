package clients

import (
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/config"
)

// Factory wires the configured downstream adapters. Accessors return nil
// for adapters that are disabled, and callers skip the consultation.
type Factory struct {
	contacts *ContactsClient
	leasing  *LeasingClient

	cfg *config.Services
}

func NewFactory(svs config.Services) (*Factory, error) {
	factory := &Factory{
		cfg: &svs,
	}

	if svs.Contacts.Enabled {
		contacts, err := NewContactsClient(svs.Contacts)
		if err != nil {
			return nil, err
		}

		factory.contacts = contacts
	}

	if svs.Leasing.Enabled {
		leasing, err := NewLeasingClient(svs.Leasing)
		if err != nil {
			return nil, err
		}

		factory.leasing = leasing
	}

	return factory, nil
}

func (f *Factory) Contacts() *ContactsClient {
	return f.contacts
}

func (f *Factory) Leasing() *LeasingClient {
	return f.leasing
}
