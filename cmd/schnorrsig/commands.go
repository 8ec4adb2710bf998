package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/mahdiidarabi/secp256k1-schnorr/internal/config"
	"github.com/mahdiidarabi/secp256k1-schnorr/pkg/schnorrsig"
)

// KeygenCommand generates a new keypair.
var KeygenCommand = &cli.Command{
	Name:  "keygen",
	Usage: "Generates a new secret key",
	Description: `The keygen command generates a secp256k1 keypair and prints the
   secret key, the compressed public key and the address. With --keystore the
   secret key is written to an encrypted key file instead of being printed.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "keystore",
			Usage: "write the key to this encrypted key file",
		},
		&cli.BoolFlag{
			Name:  "light-kdf",
			Usage: "use less memory and CPU to encrypt the key file, at the expense of security",
		},
	},
	Action: Keygen,
}

// AddressCommand prints the address of a key.
var AddressCommand = &cli.Command{
	Name:  "address",
	Usage: "Prints the address of a secret or public key",
	Flags: []cli.Flag{
		keyFlag,
		&cli.StringFlag{
			Name:  "public-key",
			Usage: "hex encoded public key (compressed or uncompressed)",
		},
	},
	Action: Address,
}

// SignCommand signs a single message.
var SignCommand = &cli.Command{
	Name:      "sign",
	Usage:     "Calculates a signature over a message",
	ArgsUsage: "<message>",
	Flags: []cli.Flag{
		keyFlag,
		&cli.BoolFlag{
			Name:  "hex",
			Usage: "treat the message argument as hex",
		},
	},
	Action: Sign,
}

// SignFileCommand signs every message in a file.
var SignFileCommand = &cli.Command{
	Name:  "sign-file",
	Usage: "Signs every message in a JSON or CSV file",
	Flags: []cli.Flag{
		keyFlag,
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Usage:    "path to the message file",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "format",
			Value: "json",
			Usage: "message file format (json or csv)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "path of the signature record file (default: stdout)",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "number of parallel workers (0 = auto-detect); overrides the config file",
		},
	},
	Action: SignFile,
}

// VerifyCommand verifies a signature record file.
var VerifyCommand = &cli.Command{
	Name:  "verify",
	Usage: "Verifies a signature record file against a public key",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Usage:    "path to the signature record file",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "public-key",
			Usage:    "hex encoded public key of the signer",
			Required: true,
		},
	},
	Action: Verify,
}

// AuditCommand checks a signature record file for nonce reuse.
var AuditCommand = &cli.Command{
	Name:  "audit",
	Usage: "Checks a signature record file for nonce reuse",
	Description: `The audit command looks for signatures sharing a nonce commitment.
   Two such signatures over different messages reveal the secret key, which is
   printed when found.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Usage:    "path to the signature record file",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "public-key",
			Usage: "hex encoded public key to verify a recovered key against",
		},
	},
	Action: Audit,
}

// Keygen generates a keypair and prints it or stores it in a key file.
func Keygen(c *cli.Context) error {
	secretKey, publicKey, err := schnorrsig.GenerateKey(rand.Reader)
	if err != nil {
		return fmt.Errorf("failed to generate key: [%w]", err)
	}
	defer secretKey.Zero()

	address := schnorrsig.AddressOf(publicKey)
	out := c.App.Writer

	if keystorePath := c.String("keystore"); keystorePath != "" {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		if err := writeKeyFile(keystorePath, secretKey, cfg.Key.KeyFilePasswordEnv, c.Bool("light-kdf")); err != nil {
			return err
		}
		fmt.Fprintf(out, "Key file:    %s\n", keystorePath)
	} else {
		fmt.Fprintf(out, "Secret key:  0x%s\n", hex.EncodeToString(secretKey.Serialize()))
	}

	fmt.Fprintf(out, "Public key:  0x%s\n", hex.EncodeToString(publicKey.SerializeCompressed()))
	fmt.Fprintf(out, "Address:     %s\n", address)

	return nil
}

func writeKeyFile(
	path string,
	secretKey *schnorrsig.SecretKey,
	passwordEnv string,
	lightKDF bool,
) error {
	if passwordEnv == "" {
		passwordEnv = config.DefaultPasswordEnv
	}
	password, ok := os.LookupEnv(passwordEnv)
	if !ok {
		return fmt.Errorf("key file password not set in [%s]", passwordEnv)
	}

	ecdsaKey, err := ethcrypto.ToECDSA(secretKey.Serialize())
	if err != nil {
		return fmt.Errorf("failed to convert key: [%w]", err)
	}

	key := &keystore.Key{
		Id:         uuid.New(),
		Address:    ethcrypto.PubkeyToAddress(ecdsaKey.PublicKey),
		PrivateKey: ecdsaKey,
	}

	scryptN, scryptP := keystore.StandardScryptN, keystore.StandardScryptP
	if lightKDF {
		scryptN, scryptP = keystore.LightScryptN, keystore.LightScryptP
	}

	keyJSON, err := keystore.EncryptKey(key, password, scryptN, scryptP)
	if err != nil {
		return fmt.Errorf("failed to encrypt key: [%w]", err)
	}

	if err := os.WriteFile(path, keyJSON, 0600); err != nil {
		return fmt.Errorf("failed to write key file [%s]: [%w]", path, err)
	}

	logger.Infof("wrote key file for address [%s]", key.Address.Hex())
	return nil
}

// Address prints the address of the public key, or of the configured secret
// key when no public key is given.
func Address(c *cli.Context) error {
	var publicKey *schnorrsig.PublicKey

	if publicKeyHex := c.String("public-key"); publicKeyHex != "" {
		pub, err := schnorrsig.ParsePublicKeyHex(publicKeyHex)
		if err != nil {
			return err
		}
		publicKey = pub
	} else {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		signer, err := loadSigner(c, cfg)
		if err != nil {
			return err
		}
		defer signer.Zero()
		publicKey = signer.PublicKey()
	}

	fmt.Fprintln(c.App.Writer, schnorrsig.AddressOf(publicKey))
	return nil
}

// Sign calculates a signature over the message argument.
func Sign(c *cli.Context) error {
	message, err := messageArg(c)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	signer, err := loadSigner(c, cfg)
	if err != nil {
		return err
	}
	defer signer.Zero()

	signature, err := signer.Sign(message)
	if err != nil {
		return fmt.Errorf("failed to calculate signature: [%w]", err)
	}

	logger.Debugf("calculated signature for address [%s]", signer.Address())

	out := c.App.Writer
	fmt.Fprintf(out, "Address: %s\n", signer.Address())
	fmt.Fprintf(out, "R: 0x%x\n", signature.R)
	fmt.Fprintf(out, "S: 0x%x\n", signature.S)
	fmt.Fprintf(out, "E: 0x%x\n", signature.E)

	return nil
}

// SignFile signs every message of the input file and writes signature
// records.
func SignFile(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	parser, err := newParser(c.String("format"))
	if err != nil {
		return err
	}

	signer, err := loadSigner(c, cfg)
	if err != nil {
		return err
	}
	defer signer.Zero()

	batchConfig := cfg.Signing.BatchConfig()
	if c.IsSet("workers") {
		batchConfig.NumWorkers = c.Int("workers")
	}

	client := schnorrsig.NewClient().
		WithParser(parser).
		WithBatchConfig(batchConfig)

	records, err := client.SignFile(context.Background(), signer, c.String("input"))
	if err != nil {
		return err
	}

	logger.Infof("signed [%d] messages from [%s]", len(records), c.String("input"))

	return writeOutput(c, c.String("output"), records)
}

// Verify checks every record of the input file against the public key.
func Verify(c *cli.Context) error {
	publicKey, err := schnorrsig.ParsePublicKeyHex(c.String("public-key"))
	if err != nil {
		return err
	}

	records, err := schnorrsig.ReadSignatureRecords(c.String("input"))
	if err != nil {
		return err
	}

	if err := schnorrsig.NewClient().VerifyRecords(publicKey, records); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "[+] All %d signatures verified\n", len(records))
	return nil
}

// Audit checks the input file for nonce reuse and prints any recovered key.
func Audit(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	client := schnorrsig.NewClient().WithAuditConfig(cfg.Signing.AuditConfig())

	result, err := client.AuditFile(context.Background(), c.String("input"), c.String("public-key"))
	if err != nil {
		return err
	}

	out := c.App.Writer
	if result == nil {
		fmt.Fprintln(out, "[-] No nonce reuse found")
		return nil
	}
	defer result.SecretKey.Zero()

	fmt.Fprintf(out, "[+] Recovered secret key from signatures %d and %d:\n", result.SignaturePair[0], result.SignaturePair[1])
	fmt.Fprintf(out, "    Secret key: 0x%s\n", hex.EncodeToString(result.SecretKey.Serialize()))
	fmt.Fprintf(out, "    Address:    %s\n", result.Address)
	if result.Verified {
		fmt.Fprintln(out, "    ✓ Verified against public key!")
	}

	return nil
}
