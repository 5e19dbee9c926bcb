package main

import (
	"context"
	"fmt"
	"net/netip"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/jbarratt/oddeven/client"
	"github.com/jbarratt/oddeven/config"
	"github.com/jbarratt/oddeven/log"
	"github.com/jbarratt/oddeven/notify"
	"github.com/jbarratt/oddeven/service"
	"github.com/jbarratt/oddeven/transport"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "oddeven"
	app.Usage = "two player odd or even over UDP"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "log-level",
			Value:  config.DefaultLogLevel,
			EnvVar: "ODDEVEN_LOG_LEVEL",
			Usage:  "trace, debug, info, warn or error",
		},
	}
	app.Before = func(c *cli.Context) error {
		log.SetLogger(c.String("log-level"))
		return nil
	}
	app.Action = func(c *cli.Context) error {
		if c.NArg() > 0 {
			return cli.NewExitError(fmt.Sprintf("'%s' is not a valid run mode.", c.Args().First()), 1)
		}
		return cli.NewExitError("You did not provide a run mode. modes available are 'client' and 'server'.", 1)
	}
	app.Commands = []cli.Command{
		{
			Name:  "server",
			Usage: "run the game server",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   "addr",
					Value:  config.DefaultAddress,
					EnvVar: "ODDEVEN_ADDR",
					Usage:  "UDP address to listen on",
				},
				cli.StringFlag{
					Name:   "spectator-endpoint",
					EnvVar: "ODDEVEN_SPECTATOR_ENDPOINT",
					Usage:  "API Gateway websocket management endpoint that receives round reports",
				},
				cli.StringSliceFlag{
					Name:   "spectator-connection",
					EnvVar: "ODDEVEN_SPECTATOR_CONNECTIONS",
					Usage:  "websocket connection id to report rounds to (repeatable)",
				},
				cli.StringFlag{
					Name:   "aws-region",
					EnvVar: "AWS_REGION",
					Usage:  "region of the spectator endpoint",
				},
			},
			Action: runServer,
		},
		{
			Name:      "client",
			Usage:     "play from this terminal",
			ArgsUsage: "[server_address]",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   "server",
					Value:  config.DefaultAddress,
					EnvVar: "ODDEVEN_SERVER",
					Usage:  "UDP address of the server",
				},
			},
			Action: runClient,
		},
	}
	return app
}

func runServer(c *cli.Context) error {
	cfg := config.Server{
		Addr:                 c.String("addr"),
		SpectatorEndpoint:    c.String("spectator-endpoint"),
		SpectatorConnections: c.StringSlice("spectator-connection"),
		AWSRegion:            c.String("aws-region"),
	}
	if err := cfg.Check(); err != nil {
		return err
	}

	udp, err := transport.ListenUDP(cfg.Addr)
	if err != nil {
		return errors.Wrap(err, "listen failed")
	}
	defer udp.Close()

	var cfgs []service.Cfg[netip.AddrPort]
	if cfg.Spectating() {
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(cfg.AWSRegion),
		})
		if err != nil {
			return errors.Wrap(err, "create aws session failed")
		}
		spectators := notify.NewSpectators(
			notify.NewAPIGWNotifier(cfg.SpectatorEndpoint, sess),
			cfg.SpectatorConnections...,
		)
		cfgs = append(cfgs, service.WithAnnouncer[netip.AddrPort](spectators))
		logger.WithField("spectators", len(cfg.SpectatorConnections)).Info("round reports enabled")
	}

	srv, err := service.NewServer[netip.AddrPort](udp, cfgs...)
	if err != nil {
		return errors.Wrap(err, "new server failed")
	}
	logger.WithField("addr", udp.LocalAddr().String()).Debug("socket bound")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return errors.Wrap(srv.Run(ctx), "run server failed")
}

func runClient(c *cli.Context) error {
	cfg := config.Client{
		Server: c.String("server"),
	}
	if c.NArg() > 0 {
		cfg.Server = c.Args().First()
	}
	if err := cfg.Check(); err != nil {
		return err
	}

	cl, err := client.NewClient(
		client.WithServerAddress(cfg.Server),
		client.WithIO(os.Stdin, os.Stdout),
	)
	if err != nil {
		return errors.Wrap(err, "new client failed")
	}
	if err := cl.Connect(); err != nil {
		return errors.Wrap(err, "connect client failed")
	}
	defer cl.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return errors.Wrap(cl.Run(ctx), "run client failed")
}

func main() {
	if err := config.LoadEnv(); err != nil {
		logger.Fatal(err)
	}
	if err := newApp().Run(os.Args); err != nil {
		logger.Fatal(errors.Wrap(err, "An error happened"))
	}
}
