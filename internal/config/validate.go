package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Economy.validate(); err != nil {
		return fmt.Errorf("economy: %w", err)
	}

	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if c.Metadata.Timeout <= 0 {
		return fmt.Errorf("metadata.timeout must be > 0 (got %s)", c.Metadata.Timeout)
	}

	return nil
}

func (e *EconomyConfig) validate() error {
	if e.MinOffer <= 0 {
		return fmt.Errorf("min_offer must be > 0 (got %d)", e.MinOffer)
	}
	if e.MaxOffer < e.MinOffer {
		return fmt.Errorf("max_offer must be >= min_offer (got %d < %d)", e.MaxOffer, e.MinOffer)
	}
	if e.OfferStep <= 0 {
		return fmt.Errorf("offer_step must be > 0 (got %d)", e.OfferStep)
	}
	if !e.Domain().IsValidOffer(e.DefaultOffer) {
		return fmt.Errorf("default_offer %d is not a valid offer", e.DefaultOffer)
	}
	if e.DailyRequestQuota <= 0 {
		return fmt.Errorf("daily_request_quota must be > 0 (got %d)", e.DailyRequestQuota)
	}
	if e.InitialBalance < 0 {
		return fmt.Errorf("initial_balance must be >= 0 (got %d)", e.InitialBalance)
	}
	if e.CheckInReward <= 0 {
		return fmt.Errorf("checkin_reward must be > 0 (got %d)", e.CheckInReward)
	}
	if e.CheckInCooldown <= 0 || e.RequestValidity <= 0 || e.ResponseValidity <= 0 || e.DecisionRetention <= 0 {
		return fmt.Errorf("durations must be > 0")
	}
	return nil
}

func (s *StorageConfig) validate() error {
	switch strings.ToLower(s.Backend) {
	case "local":
		if s.LocalDir == "" {
			return fmt.Errorf("local_dir is required for the local backend")
		}
	case "ftp":
		if s.FTPHost == "" || s.FTPUser == "" {
			return fmt.Errorf("ftp_host and ftp_user are required for the ftp backend")
		}
	default:
		return fmt.Errorf("unknown backend %q (want local or ftp)", s.Backend)
	}
	if s.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be > 0 (got %d)", s.MaxUploadBytes)
	}
	if s.SignedURLTTL <= 0 {
		return fmt.Errorf("signed_url_ttl must be > 0 (got %s)", s.SignedURLTTL)
	}
	return nil
}
