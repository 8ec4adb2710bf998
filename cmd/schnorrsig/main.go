package main

import (
	"os"
	"path"

	logging "github.com/ipfs/go-log/v2"
	"github.com/urfave/cli/v2"
)

var logger = logging.Logger("schnorrsig-cli")

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  path.Base(os.Args[0]),
		Usage: "Schnorr-style secp256k1 signatures with Ethereum-style addresses",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "full path to the configuration file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug, info, warn, error); overrides the config file",
			},
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			KeygenCommand,
			AddressCommand,
			SignCommand,
			SignFileCommand,
			VerifyCommand,
			AuditCommand,
		},
	}
}
