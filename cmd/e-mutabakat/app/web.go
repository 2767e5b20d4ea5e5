package app

import (
	"context"

	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/model"
	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/surface"
	log "github.com/sirupsen/logrus"
)

type webReport struct {
	name             string
	placeholderTitle string
	placeholderText  string
	openingMessage   string
	generate         func(ctx context.Context, vkn string) (*model.WebResponse, error)
}

func (a *App) kdvWebReport() webReport {
	return webReport{
		name:             "kdv-web",
		placeholderTitle: "KDV Listesi Yükleniyor...",
		placeholderText:  "Lütfen bekleyin, faturalar yükleniyor...",
		openingMessage:   "\n🌐 Web düzenleyici açılıyor...",
		generate:         a.backend.GenerateKdvWeb,
	}
}

func (a *App) satisWebReport() webReport {
	return webReport{
		name:             "satis-web",
		placeholderTitle: "Satış Listesi Yükleniyor...",
		placeholderText:  "Lütfen bekleyin, satış faturaları yükleniyor...",
		openingMessage:   "\n💰 Satış listesi açılıyor...",
		generate:         a.backend.GenerateSatisWeb,
	}
}

// GenerateKdvWeb opens the VAT list editor. vkn may be empty.
func (a *App) GenerateKdvWeb(ctx context.Context, vkn string) error {
	return a.generateWeb(ctx, a.kdvWebReport(), vkn)
}

// GenerateSatisWeb opens the sales list editor for vkn.
func (a *App) GenerateSatisWeb(ctx context.Context, vkn string) error {
	return a.generateWeb(ctx, a.satisWebReport(), vkn)
}

// generateWeb acquires the surface before the request so the page is on
// screen while the backend works, then points it at the generated report.
func (a *App) generateWeb(ctx context.Context, report webReport, vkn string) error {
	if err := a.begin(report.name); err != nil {
		return err
	}
	defer a.end()
	logger := log.WithField("report", report.name)

	a.view.SetLoading(true)
	tab, acquired := a.surfaces.Acquire(ctx)
	if acquired {
		if err := tab.Write(surface.Placeholder(report.placeholderTitle, report.placeholderText)); err != nil {
			logger.WithError(err).Warn("Could not write placeholder")
		}
	}

	res, err := report.generate(ctx, vkn)
	a.view.SetLoading(false)

	if err != nil {
		a.failErr(err)
		a.release(tab, acquired)
		return err
	}
	a.appendBackendLogs(res.Logs)
	if !res.Success {
		a.fail("❌ Hata: " + backendMessage(res.Error))
		a.release(tab, acquired)
		return &BackendError{Message: backendMessage(res.Error)}
	}

	a.info(report.openingMessage)
	target, err := a.backend.Resolve(res.URL)
	if err != nil {
		a.failErr(err)
		a.release(tab, acquired)
		return err
	}
	if acquired {
		err := tab.Navigate(target)
		if err == nil {
			return nil
		}
		logger.WithError(err).Warn("Could not navigate surface, using fallback")
		a.release(tab, acquired)
	}
	if err := a.fallback.Navigate(target); err != nil {
		a.failErr(err)
		return err
	}
	return nil
}

func (a *App) release(tab surface.Surface, acquired bool) {
	if !acquired {
		return
	}
	if err := tab.Close(); err != nil {
		log.WithError(err).Debug("Could not close surface")
	}
}
