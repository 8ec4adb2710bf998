package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/secp256k1-schnorr/pkg/schnorrsig"
)

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig("testdata/config.toml")
	if err != nil {
		t.Fatalf("failed to read test config: [%v]", err)
	}

	var configReadTests = map[string]struct {
		readValueFunc func(*Config) interface{}
		expectedValue interface{}
	}{
		"Key.SecretKey": {
			readValueFunc: func(c *Config) interface{} { return c.Key.SecretKey },
			expectedValue: "0x0000000000000000000000000000000000000000000000000000000000000001",
		},
		"Key.KeyFilePasswordEnv": {
			readValueFunc: func(c *Config) interface{} { return c.Key.KeyFilePasswordEnv },
			expectedValue: DefaultPasswordEnv,
		},
		"Signing.Workers": {
			readValueFunc: func(c *Config) interface{} { return c.Signing.Workers },
			expectedValue: 4,
		},
		"Signing.MaxPairs": {
			readValueFunc: func(c *Config) interface{} { return c.Signing.MaxPairs },
			expectedValue: 1000,
		},
		"Log.Level": {
			readValueFunc: func(c *Config) interface{} { return c.Log.Level },
			expectedValue: "debug",
		},
	}

	for testName, test := range configReadTests {
		t.Run(testName, func(t *testing.T) {
			actualValue := test.readValueFunc(cfg)
			if !reflect.DeepEqual(test.expectedValue, actualValue) {
				t.Errorf(
					"unexpected value\nexpected: [%+v]\nactual:   [%+v]",
					test.expectedValue,
					actualValue,
				)
			}
		})
	}
}

func TestReadConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"negative workers": "[Signing]\nWorkers = -1\n",
		"negative pairs":   "[Signing]\nMaxPairs = -1\n",
		"bad log level":    "[Log]\nLevel = \"loud\"\n",
		"malformed toml":   "[Signing\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0600))

			_, err := ReadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestReadConfig_MissingFile(t *testing.T) {
	_, err := ReadConfig("testdata/missing.toml")
	assert.Error(t, err)
}

func TestSigningConfig(t *testing.T) {
	sc := SigningConfig{Workers: 3, MaxPairs: 10}

	assert.Equal(t, 3, sc.BatchConfig().NumWorkers)
	assert.Nil(t, sc.BatchConfig().Rand)
	assert.Equal(t, schnorrsig.AuditConfig{NumWorkers: 3, MaxPairs: 10}, sc.AuditConfig())
}

func TestLoadSecretKey_Hex(t *testing.T) {
	kc := KeyConfig{SecretKey: "0x0000000000000000000000000000000000000000000000000000000000000001"}

	secretKey, err := kc.LoadSecretKey()
	require.NoError(t, err)

	assert.Equal(
		t,
		"0x7e5f4552091a69125d5dfcb7b8c2659029395bdf",
		schnorrsig.AddressOf(secretKey.PubKey()).Hex(),
	)
}

func TestLoadSecretKey_KeyFile(t *testing.T) {
	ecdsaKey, err := ethcrypto.GenerateKey()
	require.NoError(t, err)

	key := &keystore.Key{
		Id:         uuid.New(),
		Address:    ethcrypto.PubkeyToAddress(ecdsaKey.PublicKey),
		PrivateKey: ecdsaKey,
	}

	keyJSON, err := keystore.EncryptKey(key, "password", keystore.LightScryptN, keystore.LightScryptP)
	require.NoError(t, err)

	keyFile := filepath.Join(t.TempDir(), "key.json")
	require.NoError(t, os.WriteFile(keyFile, keyJSON, 0600))

	t.Setenv("TEST_SCHNORRSIG_PASSWORD", "password")

	kc := KeyConfig{KeyFile: keyFile, KeyFilePasswordEnv: "TEST_SCHNORRSIG_PASSWORD"}
	secretKey, err := kc.LoadSecretKey()
	require.NoError(t, err)

	assert.Equal(t, ethcrypto.FromECDSA(ecdsaKey), secretKey.Serialize())
	assert.Equal(t, key.Address, schnorrsig.AddressOf(secretKey.PubKey()).Common())

	t.Setenv("TEST_SCHNORRSIG_PASSWORD", "wrong")
	_, err = kc.LoadSecretKey()
	assert.Error(t, err)
}

func TestLoadSecretKey_Misconfigured(t *testing.T) {
	_, err := KeyConfig{}.LoadSecretKey()
	assert.Error(t, err)

	_, err = KeyConfig{SecretKey: "0x01", KeyFile: "key.json"}.LoadSecretKey()
	assert.Error(t, err)

	_, err = KeyConfig{SecretKey: "0x00"}.LoadSecretKey()
	assert.ErrorIs(t, err, schnorrsig.ErrInvalidSecretKey)
}
