package templates

import (
	"time"

	"github.com/oksasatya/catalog-favorites/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithUsername(username string) Option { return func(d *EmailData) { d.Username = username } }

// NewBaseEmailData fills the common fields from config, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ string, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           typ,

		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		AppName:        cfg.AppName,

		LogoURL:    cfg.LogoURL,
		SupportURL: cfg.SupportURL,
		CatalogURL: cfg.CatalogURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(cfg *config.Config, name, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, Welcome, name, email, opts...))
}
