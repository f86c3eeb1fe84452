// Package directory defines the employee record served by the directory
// endpoint and decodes the endpoint's JSON payload.
package directory

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrInvalidPayload is returned when the body is not a JSON array of records.
var ErrInvalidPayload = errors.New("invalid directory payload")

// Record is one employee entry.
type Record struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ID is an integer identifier that accepts both JSON numbers and
// numeric strings ("42"). The public members endpoint serves the latter.
type ID int64

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
	}

	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("id %q is not an integer", string(data))
	}
	*id = ID(n)
	return nil
}

// wireRecord detects missing fields; a zero value is not the same as absent.
type wireRecord struct {
	ID    *ID     `json:"id"`
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

func (w wireRecord) record(index int) (Record, error) {
	missing := ""
	switch {
	case w.ID == nil:
		missing = "id"
	case w.Name == nil:
		missing = "name"
	case w.Email == nil:
		missing = "email"
	case w.Role == nil:
		missing = "role"
	}
	if missing != "" {
		return Record{}, fmt.Errorf("%w: record %d: missing field %q", ErrInvalidPayload, index, missing)
	}

	return Record{
		ID:    int64(*w.ID),
		Name:  *w.Name,
		Email: *w.Email,
		Role:  *w.Role,
	}, nil
}

// Decode reads a JSON array of records. The body must hold exactly one
// array; null and trailing data are rejected. Extra fields are ignored; each
// element must carry id, name, email and role.
func Decode(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)

	var wire []wireRecord
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if wire == nil {
		return nil, fmt.Errorf("%w: body is null", ErrInvalidPayload)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after array", ErrInvalidPayload)
	}

	records := make([]Record, 0, len(wire))
	for i, w := range wire {
		rec, err := w.record(i)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
