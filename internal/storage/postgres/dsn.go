package postgres

import (
	"fmt"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/config"
)

// DSN returns cfg.DSN when set, otherwise a keyword/value string built from
// the discrete fields. Both drivers accept this form.
func DSN(cfg *config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslmode,
	)
}
