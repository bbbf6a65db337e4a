package postgres

import (
	"fmt"
	"net/url"

	"github.com/GoSim-25-26J-441/sitebuilder-backend/config"
)

// DSN returns DB_DSN when set, otherwise a postgres:// URL built from the
// individual DB_* settings.
func DSN(cfg *config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     "/" + cfg.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
