package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/mahdiidarabi/secp256k1-schnorr/internal/config"
	"github.com/mahdiidarabi/secp256k1-schnorr/pkg/schnorrsig"
)

var keyFlag = &cli.StringFlag{
	Name:    "key",
	Aliases: []string{"k"},
	Usage:   "hex encoded secret key; overrides the config file",
}

// loadConfig reads the file given by the global config flag or returns the
// defaults when none is given.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	if configPath == "" {
		return config.Default(), nil
	}
	return config.ReadConfig(configPath)
}

func setupLogging(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	if level := c.String("log-level"); level != "" {
		cfg.Log.Level = level
	}

	return cfg.Log.ApplyLogLevel()
}

// loadSigner builds a signer from the key flag or, failing that, from the
// key section of the config file.
func loadSigner(c *cli.Context, cfg *config.Config) (*schnorrsig.Signer, error) {
	keyConfig := cfg.Key
	if key := c.String(keyFlag.Name); key != "" {
		keyConfig = config.KeyConfig{SecretKey: key}
	}

	secretKey, err := keyConfig.LoadSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to load secret key: [%w]", err)
	}

	return schnorrsig.NewSigner(secretKey)
}

// messageArg returns the first argument as message bytes, hex decoded when
// the hex flag is set.
func messageArg(c *cli.Context) ([]byte, error) {
	if c.NArg() != 1 {
		return nil, fmt.Errorf("expected exactly one message argument, got [%d]", c.NArg())
	}

	arg := c.Args().First()
	if !c.Bool("hex") {
		return []byte(arg), nil
	}

	message, err := decodeHex(arg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode hex message: [%w]", err)
	}
	return message, nil
}

func newParser(format string) (schnorrsig.MessageParser, error) {
	switch format {
	case "json":
		return &schnorrsig.JSONParser{}, nil
	case "csv":
		return &schnorrsig.CSVParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported format [%s]", format)
	}
}

// writeOutput writes records to path, or to the app writer when path is
// empty.
func writeOutput(c *cli.Context, path string, records []*schnorrsig.SignatureRecord) error {
	if path == "" {
		return schnorrsig.WriteSignatureRecords(c.App.Writer, records)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file [%s]: [%w]", path, err)
	}
	defer file.Close()

	if err := schnorrsig.WriteSignatureRecords(file, records); err != nil {
		return err
	}
	return file.Close()
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	return hex.DecodeString(s)
}
