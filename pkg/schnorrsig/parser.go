package schnorrsig

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// MessageParser defines the interface for reading messages to sign from
// various sources.
type MessageParser interface {
	// ParseMessages parses messages from a source and returns them.
	ParseMessages(source string) ([][]byte, error)
}

// JSONParser parses messages from JSON files.
type JSONParser struct {
	MessageField    string // Field name for a UTF-8 message (default: "message")
	MessageHexField string // Field name for a hex message (default: "message_hex")
}

// ParseMessages parses messages from a JSON file.
//
// Expected format:
// [
//
//	{"message": "hello world"},
//	{"message_hex": "0x68656c6c6f"}
//
// ]
func (p *JSONParser) ParseMessages(jsonFile string) ([][]byte, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	var items []map[string]interface{}
	if err := json.NewDecoder(file).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	messageField := p.MessageField
	if messageField == "" {
		messageField = "message"
	}
	messageHexField := p.MessageHexField
	if messageHexField == "" {
		messageHexField = "message_hex"
	}

	messages := make([][]byte, 0, len(items))
	for i, item := range items {
		if val, ok := item[messageHexField]; ok {
			str, ok := val.(string)
			if !ok {
				return nil, fmt.Errorf("item [%d]: %s must be a string", i, messageHexField)
			}
			message, err := decodeMessageHex(str)
			if err != nil {
				return nil, fmt.Errorf("item [%d]: %w", i, err)
			}
			messages = append(messages, message)
			continue
		}

		if val, ok := item[messageField]; ok {
			str, ok := val.(string)
			if !ok {
				return nil, fmt.Errorf("item [%d]: %s must be a string", i, messageField)
			}
			messages = append(messages, []byte(str))
			continue
		}

		return nil, fmt.Errorf("item [%d]: missing %s or %s field", i, messageField, messageHexField)
	}

	return messages, nil
}

// CSVParser parses messages from CSV files.
type CSVParser struct {
	MessageCol    string // Column name for a UTF-8 message (default: "message")
	MessageHexCol string // Column name for a hex message (default: "message_hex")
}

// ParseMessages parses messages from a CSV file with a header row.
func (p *CSVParser) ParseMessages(csvFile string) ([][]byte, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	// Read header
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	messageCol := p.MessageCol
	if messageCol == "" {
		messageCol = "message"
	}
	messageHexCol := p.MessageHexCol
	if messageHexCol == "" {
		messageHexCol = "message_hex"
	}

	messageIdx := -1
	messageHexIdx := -1
	for i, col := range header {
		if col == messageCol {
			messageIdx = i
		}
		if col == messageHexCol {
			messageHexIdx = i
		}
	}

	if messageIdx == -1 && messageHexIdx == -1 {
		return nil, fmt.Errorf("missing required column: %s or %s", messageCol, messageHexCol)
	}

	messages := make([][]byte, 0)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if messageHexIdx >= 0 && messageHexIdx < len(record) && record[messageHexIdx] != "" {
			message, err := decodeMessageHex(record[messageHexIdx])
			if err != nil {
				return nil, fmt.Errorf("line [%d]: %w", line, err)
			}
			messages = append(messages, message)
			continue
		}

		if messageIdx >= 0 && messageIdx < len(record) {
			messages = append(messages, []byte(record[messageIdx]))
			continue
		}

		return nil, fmt.Errorf("line [%d]: message column index out of range", line)
	}

	return messages, nil
}

func decodeMessageHex(s string) ([]byte, error) {
	message, err := hexDecode(s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode hex message: %w", err)
	}
	return message, nil
}

// SignatureRecord ties a signature to the message it covers and the address
// of the signer.
type SignatureRecord struct {
	Message   hexutil.Bytes `json:"message_hex"`
	Signature *Signature    `json:"signature"`
	Address   Address       `json:"address"`
}

// WriteSignatureRecords writes records as an indented JSON array.
func WriteSignatureRecords(w io.Writer, records []*SignatureRecord) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode signature records: %w", err)
	}
	return nil
}

// ReadSignatureRecords reads a JSON array written by WriteSignatureRecords.
func ReadSignatureRecords(jsonFile string) ([]*SignatureRecord, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	var records []*SignatureRecord
	if err := json.NewDecoder(file).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	for i, record := range records {
		if record == nil || record.Signature == nil {
			return nil, fmt.Errorf("record [%d]: missing signature", i)
		}
	}

	return records, nil
}
