package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/app"
	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/config"
	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/surface"
	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/utils"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// cliState carries what Before resolved into the command actions.
type cliState struct {
	in     io.Reader
	out    io.Writer
	cfg    *config.AppConfig
	newApp func(view app.View) (*app.App, error)
}

func newApp(in io.Reader, out io.Writer) *cli.App {
	state := &cliState{in: in, out: out}
	state.newApp = func(view app.View) (*app.App, error) {
		// The process exits right after a command, so reports always go to the
		// system browser rather than a tab this process would own.
		return app.FromConfig(state.cfg, view, surface.Unavailable{})
	}

	vknFlag := &cli.StringFlag{Name: "vkn", Usage: "tax identification number of the counterparty"}

	return &cli.App{
		Name:      "e-mutabakat",
		Usage:     "e-Mutabakat desktop and command line client",
		Version:   utils.Version(),
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: ".", Usage: "directory containing config.yaml"},
			&cli.StringFlag{Name: "base-url", Usage: "backend address, overrides the configuration"},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
		},
		Before:         state.load,
		ExitErrHandler: handleExit,
		Action: func(c *cli.Context) error {
			if guiAvailable {
				return runGUI(state.cfg)
			}
			return cli.ShowAppHelp(c)
		},
		Commands: []*cli.Command{
			{
				Name:  "gui",
				Usage: "Open the desktop window",
				Action: func(c *cli.Context) error {
					return runGUI(state.cfg)
				},
			},
			{
				Name:      "upload",
				Aliases:   []string{"u"},
				Usage:     "Upload documents and directories",
				ArgsUsage: "<path>...",
				Action: func(c *cli.Context) error {
					paths := c.Args().Slice()
					if len(paths) == 0 {
						return cli.Exit("en az bir dosya ya da klasör gerekli", 1)
					}
					return state.run(c, false, func(ctx context.Context, a *app.App) error {
						return a.UploadFiles(ctx, paths)
					})
				},
			},
			{
				Name:    "files",
				Aliases: []string{"ls"},
				Usage:   "List the uploaded files",
				Action: func(c *cli.Context) error {
					return state.run(c, false, func(ctx context.Context, a *app.App) error {
						return a.RefreshFileList(ctx)
					})
				},
			},
			{
				Name:  "clear",
				Usage: "Delete every uploaded file",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "do not ask for confirmation"},
				},
				Action: func(c *cli.Context) error {
					return state.run(c, c.Bool("yes"), func(ctx context.Context, a *app.App) error {
						return a.ClearFiles(ctx)
					})
				},
			},
			{
				Name:  "kdv-excel",
				Usage: "Generate the VAT list workbook and download it",
				Action: func(c *cli.Context) error {
					return state.run(c, false, func(ctx context.Context, a *app.App) error {
						return a.GenerateKdvExcel(ctx)
					})
				},
			},
			{
				Name:  "kdv-web",
				Usage: "Open the VAT list web editor",
				Flags: []cli.Flag{vknFlag},
				Action: func(c *cli.Context) error {
					return state.report(c, app.ActionKdv)
				},
			},
			{
				Name:  "satis-web",
				Usage: "Open the sales invoice list",
				Flags: []cli.Flag{vknFlag},
				Action: func(c *cli.Context) error {
					return state.report(c, app.ActionSatis)
				},
			},
			{
				Name:  "version",
				Usage: "Print the client version",
				Action: func(c *cli.Context) error {
					fmt.Fprintln(out, utils.Version())
					return nil
				},
			},
			{
				Name:  "update",
				Usage: "Update to the latest release",
				Action: func(c *cli.Context) error {
					latest, upToDate := utils.CheckUpdate()
					if upToDate || latest == nil {
						fmt.Fprintln(out, "Güncel sürüm kullanılıyor:", utils.Version())
						return nil
					}
					if err := utils.DoUpdate(latest); err != nil {
						return cli.Exit(err, 1)
					}
					fmt.Fprintf(out, "v%s sürümüne güncellendi\n", latest.Version)
					return nil
				},
			},
		},
	}
}

func (s *cliState) load(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	if c.IsSet("base-url") {
		cfg.BaseURL = c.String("base-url")
	}
	if c.Bool("debug") {
		cfg.LogLevel = log.DebugLevel.String()
	}
	if err := cfg.Validate(); err != nil {
		return cli.Exit(err, 1)
	}
	utils.SetupLogging(c.App.ErrWriter, cfg.LogLevel)
	s.cfg = cfg
	return nil
}

// run executes op against a freshly wired App. Failures were already printed
// through the log panel, so only the exit code is reported.
func (s *cliState) run(c *cli.Context, assumeYes bool, op func(ctx context.Context, a *app.App) error) error {
	view := newTerminalView(s.in, s.out, assumeYes)
	a, err := s.newApp(view)
	if err != nil {
		return cli.Exit(err, 1)
	}
	a.Logs().Subscribe(view.PrintLog)

	if err := op(c.Context, a); err != nil {
		log.WithError(err).Debug("Command failed")
		return cli.Exit("", 1)
	}
	return nil
}

func (s *cliState) report(c *cli.Context, action app.Action) error {
	return s.run(c, false, func(ctx context.Context, a *app.App) error {
		if _, err := a.OpenVknModal(action); err != nil {
			return err
		}
		submission, ok := a.SubmitVkn(c.String("vkn"))
		if !ok {
			return app.ErrVknRequired
		}
		return a.Dispatch(ctx, submission)
	})
}

// handleExit prints exit messages to the app's writer instead of stderr.
func handleExit(c *cli.Context, err error) {
	var coder cli.ExitCoder
	if !errors.As(err, &coder) {
		return
	}
	if message := err.Error(); message != "" {
		fmt.Fprintln(c.App.ErrWriter, message)
	}
	cli.OsExiter(coder.ExitCode())
}
