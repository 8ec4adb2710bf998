package schnorrsig

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
)

// Client provides a high-level API for signing, verifying and auditing
// message files.
type Client struct {
	parser MessageParser
	batch  BatchConfig
	audit  AuditConfig
}

// NewClient creates a new client with default settings.
func NewClient() *Client {
	return &Client{
		parser: &JSONParser{},
		batch:  DefaultBatchConfig(),
		audit:  DefaultAuditConfig(),
	}
}

// WithParser sets a custom message parser.
func (c *Client) WithParser(parser MessageParser) *Client {
	c.parser = parser
	return c
}

// WithRand sets the nonce source used for batch signing. It must be safe for
// concurrent use.
func (c *Client) WithRand(random io.Reader) *Client {
	c.batch.Rand = random
	return c
}

// WithBatchConfig sets the batch signing configuration.
func (c *Client) WithBatchConfig(config BatchConfig) *Client {
	random := c.batch.Rand
	c.batch = config
	if c.batch.Rand == nil {
		c.batch.Rand = random
	}
	return c
}

// WithAuditConfig sets the nonce-reuse audit configuration.
func (c *Client) WithAuditConfig(config AuditConfig) *Client {
	c.audit = config
	return c
}

// SignFile signs every message in a file.
//
// Args:
//   - ctx: Context for cancellation.
//   - signer: Signer holding the secret key.
//   - source: Path to the message file (JSON or CSV, per the parser).
//
// Returns:
//   - One record per message, in file order.
func (c *Client) SignFile(ctx context.Context, signer *Signer, source string) ([]*SignatureRecord, error) {
	messages, err := c.parser.ParseMessages(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}
	return c.SignMessages(ctx, signer, messages)
}

// SignMessages signs in-memory messages. Use this when messages come from
// your own parser or API.
func (c *Client) SignMessages(ctx context.Context, signer *Signer, messages [][]byte) ([]*SignatureRecord, error) {
	config := c.batch
	if config.Rand == nil {
		config.Rand = rand.Reader
	}

	signatures, err := signer.SignBatch(ctx, messages, config)
	if err != nil {
		return nil, err
	}

	records := make([]*SignatureRecord, len(signatures))
	for i, signature := range signatures {
		records[i] = &SignatureRecord{
			Message:   messages[i],
			Signature: signature,
			Address:   signer.Address(),
		}
	}

	return records, nil
}

// VerifyRecords verifies every record against pub. It also checks that the
// address stored in each record matches pub.
func (c *Client) VerifyRecords(pub *PublicKey, records []*SignatureRecord) error {
	address := AddressOf(pub)
	for i, record := range records {
		if record.Address != address {
			return fmt.Errorf(
				"record [%d]: address [%s] does not match public key address [%s]",
				i,
				record.Address,
				address,
			)
		}
		if err := Verify(pub, record.Message, record.Signature); err != nil {
			return fmt.Errorf("record [%d]: %w", i, err)
		}
	}
	return nil
}

// AuditFile checks a signature record file for nonce reuse.
//
// Args:
//   - ctx: Context for cancellation.
//   - source: Path to a JSON signature record file.
//   - publicKeyHex: Optional public key in hex format for verification.
//
// Returns:
//   - AuditResult if a key leaked, nil if no reuse was found.
func (c *Client) AuditFile(ctx context.Context, source string, publicKeyHex string) (*AuditResult, error) {
	records, err := ReadSignatureRecords(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signatures: %w", err)
	}

	var pub *PublicKey
	if publicKeyHex != "" {
		pub, err = ParsePublicKeyHex(publicKeyHex)
		if err != nil {
			return nil, fmt.Errorf("failed to parse public key: %w", err)
		}
	}

	signatures := make([]*Signature, len(records))
	for i, record := range records {
		signatures[i] = record.Signature
	}

	return AuditNonceReuse(ctx, signatures, pub, c.audit)
}
