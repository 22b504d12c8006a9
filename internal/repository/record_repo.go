package repository

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ameen01/Bad-Trade/internal/model"
)

// RecordRepository loads and saves the records table
type RecordRepository interface {
	Load(ctx context.Context) (model.Table, error)
	Save(ctx context.Context, table model.Table) error
}

type recordRepository struct {
	doc Document
}

// NewRecordRepository creates a new RecordRepository
func NewRecordRepository(doc Document) RecordRepository {
	return &recordRepository{doc: doc}
}

// Load returns the persisted table, or an empty one if nothing was saved yet.
// Nothing is written in the latter case.
func (r *recordRepository) Load(ctx context.Context) (model.Table, error) {
	data, err := r.doc.Read(ctx)
	if errors.Is(err, ErrDocumentNotFound) {
		return model.NewTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	table, err := DecodeTable(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode records from %s: %w", r.doc.Name(), err)
	}
	return table, nil
}

// Save overwrites the whole records document, header included
func (r *recordRepository) Save(ctx context.Context, table model.Table) error {
	var buf bytes.Buffer
	if err := EncodeTable(&buf, table); err != nil {
		return err
	}
	if err := r.doc.Write(ctx, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}
	return nil
}

// EncodeTable writes the header and one line per record. Exports use the same format.
func EncodeTable(w io.Writer, table model.Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(model.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range table {
		row := []string{
			rec.FullName,
			rec.Email,
			rec.Phone,
			rec.Device,
			FormatPrice(rec.Price),
			rec.Note,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("error flushing CSV writer: %w", err)
	}
	return nil
}

// DecodeTable parses a records document. An empty document is an empty table.
func DecodeTable(rd io.Reader) (model.Table, error) {
	reader := csv.NewReader(rd)
	reader.FieldsPerRecord = len(model.Columns)

	// Header captions are positional; only their count is checked.
	_, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return model.NewTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	table := model.NewTable()
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		price, err := ParsePrice(row[4])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		table = append(table, model.Record{
			FullName: row[0],
			Email:    row[1],
			Phone:    row[2],
			Device:   row[3],
			Price:    price,
			Note:     row[5],
		})
	}
	return table, nil
}

// FormatPrice renders a price with the shortest exact decimal representation
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// ParsePrice parses a stored price; an empty cell reads as 0
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return p, nil
}
