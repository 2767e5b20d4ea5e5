package surface

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"
)

// Chrome opens report tabs in one Chrome/Chromium instance driven over the
// DevTools protocol. The browser is started on first use, runs on a profile
// directory the client owns and outlives the tabs handed to the user.
type Chrome struct {
	ExecPath   string
	Headless   bool
	ProfileDir string

	mu      sync.Mutex
	browser context.Context
	cancel  context.CancelFunc
}

// DefaultProfileDir is used when ProfileDir is empty.
func DefaultProfileDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "e-mutabakat", "chrome-profile")
}

func (c *Chrome) profileDir() string {
	if c.ProfileDir != "" {
		return c.ProfileDir
	}
	return DefaultProfileDir()
}

func (c *Chrome) options() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("headless", c.Headless),
		chromedp.UserDataDir(c.profileDir()),
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}
	return opts
}

// Acquire opens a new tab, starting the browser when none is running. The
// tab outlives ctx; it is released by Close or handed to the user by Navigate.
func (c *Chrome) Acquire(ctx context.Context) (Surface, bool) {
	if ctx.Err() != nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// A browser the user closed fails the first tab; start a fresh one once.
	for attempt := 0; attempt < 2; attempt++ {
		browser, err := c.browserContext()
		if err != nil {
			log.WithError(err).Warn("Could not start browser")
			return nil, false
		}
		tabCtx, cancelTab := chromedp.NewContext(browser)
		if err := chromedp.Run(tabCtx); err != nil {
			cancelTab()
			log.WithError(err).Debug("Browser is gone, restarting")
			c.shutdown()
			continue
		}
		return &chromeTab{ctx: tabCtx, cancel: cancelTab}, true
	}
	return nil, false
}

func (c *Chrome) browserContext() (context.Context, error) {
	if c.browser != nil && c.browser.Err() == nil {
		return c.browser, nil
	}
	if err := os.MkdirAll(c.profileDir(), 0o700); err != nil {
		return nil, err
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), c.options()...)
	browser, cancelBrowser := chromedp.NewContext(allocCtx)
	// An empty Run launches the browser and attaches to its first tab.
	if err := chromedp.Run(browser); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, err
	}
	c.browser = browser
	c.cancel = func() { cancelBrowser(); cancelAlloc() }
	return browser, nil
}

func (c *Chrome) shutdown() {
	if c.cancel != nil {
		c.cancel()
	}
	c.browser, c.cancel = nil, nil
}

type chromeTab struct {
	mu        sync.Mutex
	ctx       context.Context
	cancel    context.CancelFunc
	handedOff bool
}

func (t *chromeTab) Write(page string) error {
	return chromedp.Run(t.ctx, chromedp.Navigate("data:text/html;charset=utf-8,"+url.PathEscape(page)))
}

func (t *chromeTab) Navigate(target string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := chromedp.Run(t.ctx, chromedp.Navigate(target)); err != nil {
		return err
	}
	t.handedOff = true
	return nil
}

// Close shuts the tab unless it was handed to the user. The browser keeps
// running for later reports.
func (t *chromeTab) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.handedOff {
		return nil
	}
	t.cancel()
	return nil
}
