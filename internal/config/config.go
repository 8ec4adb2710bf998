// Package config contains the configuration read by the schnorrsig command
// line client.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	logging "github.com/ipfs/go-log/v2"

	"github.com/mahdiidarabi/secp256k1-schnorr/pkg/schnorrsig"
)

// DefaultPasswordEnv is the environment variable holding the key file
// password when KeyConfig.KeyFilePasswordEnv is not set.
const DefaultPasswordEnv = "SCHNORRSIG_KEY_PASSWORD"

// Config is the top level config structure.
type Config struct {
	Key     KeyConfig
	Signing SigningConfig
	Log     LogConfig
}

// KeyConfig points at the secret key used for signing. Exactly one of
// SecretKey and KeyFile should be set.
type KeyConfig struct {
	// SecretKey is a hex encoded 32-byte secret key.
	SecretKey string
	// KeyFile is the path to an encrypted Ethereum key file.
	KeyFile string
	// KeyFilePasswordEnv names the environment variable with the key file
	// password.
	KeyFilePasswordEnv string
}

// SigningConfig configures batch signing and audits.
type SigningConfig struct {
	Workers  int
	MaxPairs int
}

// LogConfig configures logging.
type LogConfig struct {
	Level string
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Key: KeyConfig{
			KeyFilePasswordEnv: DefaultPasswordEnv,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ReadConfig reads in the configuration file in .toml format. Values absent
// from the file keep their defaults.
func ReadConfig(filePath string) (*Config, error) {
	config := Default()
	if _, err := toml.DecodeFile(filePath, config); err != nil {
		return nil, fmt.Errorf("unable to decode .toml file [%s] error [%s]", filePath, err)
	}

	if config.Signing.Workers < 0 {
		return nil, fmt.Errorf("invalid number of workers [%d]", config.Signing.Workers)
	}
	if config.Signing.MaxPairs < 0 {
		return nil, fmt.Errorf("invalid max pairs [%d]", config.Signing.MaxPairs)
	}
	if _, err := logging.LevelFromString(config.Log.Level); err != nil {
		return nil, fmt.Errorf("invalid log level [%s]: [%v]", config.Log.Level, err)
	}

	return config, nil
}

// BatchConfig converts the signing section to a batch configuration.
func (sc SigningConfig) BatchConfig() schnorrsig.BatchConfig {
	config := schnorrsig.DefaultBatchConfig()
	config.NumWorkers = sc.Workers
	return config
}

// AuditConfig converts the signing section to an audit configuration.
func (sc SigningConfig) AuditConfig() schnorrsig.AuditConfig {
	config := schnorrsig.DefaultAuditConfig()
	config.NumWorkers = sc.Workers
	config.MaxPairs = sc.MaxPairs
	return config
}

// ApplyLogLevel sets the level of every logger.
func (lc LogConfig) ApplyLogLevel() error {
	level, err := logging.LevelFromString(lc.Level)
	if err != nil {
		return fmt.Errorf("invalid log level [%s]: [%v]", lc.Level, err)
	}

	logging.SetupLogging(logging.Config{
		Level:  level,
		Stderr: true,
	})
	return nil
}

// LoadSecretKey reads the configured secret key. A key file is decrypted with
// the password from the configured environment variable.
func (kc KeyConfig) LoadSecretKey() (*schnorrsig.SecretKey, error) {
	switch {
	case kc.SecretKey != "" && kc.KeyFile != "":
		return nil, fmt.Errorf("both a secret key and a key file are configured")
	case kc.SecretKey != "":
		return schnorrsig.ParseSecretKeyHex(kc.SecretKey)
	case kc.KeyFile != "":
		return kc.decryptKeyFile()
	default:
		return nil, fmt.Errorf("no secret key configured")
	}
}

func (kc KeyConfig) decryptKeyFile() (*schnorrsig.SecretKey, error) {
	passwordEnv := kc.KeyFilePasswordEnv
	if passwordEnv == "" {
		passwordEnv = DefaultPasswordEnv
	}

	keyJSON, err := os.ReadFile(kc.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file [%s]: [%v]", kc.KeyFile, err)
	}

	key, err := keystore.DecryptKey(keyJSON, os.Getenv(passwordEnv))
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt key file [%s]: [%v]", kc.KeyFile, err)
	}

	keyBytes := ethcrypto.FromECDSA(key.PrivateKey)
	defer func() {
		for i := range keyBytes {
			keyBytes[i] = 0
		}
	}()

	secretKey, err := schnorrsig.ParseSecretKey(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("key file [%s]: %w", kc.KeyFile, err)
	}

	if schnorrsig.AddressOf(secretKey.PubKey()).Common() != key.Address {
		secretKey.Zero()
		return nil, fmt.Errorf("key file [%s]: address does not match key", kc.KeyFile)
	}

	return secretKey, nil
}
