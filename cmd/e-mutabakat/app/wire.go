package app

import (
	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/config"
	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/model"
	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/surface"
	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/utils"
)

// SurfaceProvider picks the report surface configured in cfg.
func SurfaceProvider(cfg *config.AppConfig) surface.Provider {
	if cfg.Surface == config.SurfaceChrome {
		return &surface.Chrome{ExecPath: cfg.ChromePath, ProfileDir: cfg.ChromeProfile}
	}
	return surface.Unavailable{}
}

// FromConfig assembles an App talking to the configured backend.
func FromConfig(cfg *config.AppConfig, view View, surfaces surface.Provider) (*App, error) {
	limiter := utils.NewLimiter(cfg.RateLimit, cfg.RateBurst)
	client, err := model.NewClient(cfg.BaseURL, utils.NewRateLimitedClient(limiter, cfg.RequestTimeout))
	if err != nil {
		return nil, err
	}
	return New(client, view, NewLogPanel(cfg.LogCapacity), surfaces, surface.SystemBrowser{}, Options{
		DownloadDir:    cfg.DownloadDir,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}), nil
}
