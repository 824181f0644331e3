package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matsen/citecore/internal/reference"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// readJSONL reads one flat JSON object per line. Columns are the union of
// keys in first-seen order. Arrays become list literals, null becomes "".
func readJSONL(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening table: %w", err)
	}
	defer f.Close()

	t := &Table{}
	index := make(map[string]int)
	scanner := bufio.NewScanner(f)

	// Increase buffer size for long lines
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue // Skip empty lines
		}

		keys, values, err := decodeObject(line)
		if err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}

		row := make([]string, len(t.Columns))
		for i, k := range keys {
			j, ok := index[k]
			if !ok {
				j = len(t.Columns)
				index[k] = j
				t.Columns = append(t.Columns, k)
			}
			for len(row) <= j {
				row = append(row, "")
			}
			row[j] = values[i]
		}
		t.Rows = append(t.Rows, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	return t, nil
}

// decodeObject decodes a flat JSON object, keeping key order.
func decodeObject(data []byte) ([]string, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("expected JSON object")
	}

	var keys, values []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected object key")
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("decoding %q: %w", key, err)
		}
		text, err := cellText(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("decoding %q: %w", key, err)
		}
		keys = append(keys, key)
		values = append(values, text)
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return keys, values, nil
}

func cellText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", nil
	}
	switch raw[0] {
	case 'n':
		return "", nil
	case '"':
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	case '[':
		var items []interface{}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&items); err != nil {
			return "", err
		}
		strs := make([]string, len(items))
		for i, item := range items {
			switch v := item.(type) {
			case string:
				strs[i] = v
			case json.Number:
				strs[i] = v.String()
			default:
				return "", fmt.Errorf("list items must be strings or numbers")
			}
		}
		return reference.FormatList(strs), nil
	case '{':
		return "", fmt.Errorf("nested objects are not supported")
	default:
		// numbers and booleans keep their literal text
		return string(raw), nil
	}
}

// writeJSONL writes one JSON object per row with keys in column order.
func writeJSONL(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	for i, row := range t.Rows {
		bw.WriteByte('{')
		for j, col := range t.Columns {
			if j > 0 {
				bw.WriteByte(',')
			}
			cell := ""
			if j < len(row) {
				cell = row[j]
			}
			key, err := json.Marshal(col)
			if err != nil {
				return fmt.Errorf("encoding row %d: %w", i, err)
			}
			val, err := json.Marshal(cell)
			if err != nil {
				return fmt.Errorf("encoding row %d: %w", i, err)
			}
			bw.Write(key)
			bw.WriteByte(':')
			bw.Write(val)
		}
		bw.WriteString("}\n")
	}
	return bw.Flush()
}
