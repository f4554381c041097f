package dsn

import (
	"fmt"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/config"
)

// FromDBConfig converts `config.Database` data to a DSN and returns it.
func FromDBConfig(conf config.Database) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s",
		conf.Host, conf.User, conf.Secret, conf.Name, conf.Port)
}
