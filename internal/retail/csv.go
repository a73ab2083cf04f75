//-------------------------------------------------------------------------
//
// pgEdge Retail Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package retail

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/jszwec/csvutil"
)

// ErrDataUnavailable is returned when the snapshot file cannot be found.
var ErrDataUnavailable = errors.New("retail data unavailable")

// Reader streams transactions from a snapshot CSV file.
type Reader struct {
	f    *os.File
	dec  *csvutil.Decoder
	line int
}

// OpenCSV opens a snapshot for reading. The header row is read immediately.
func OpenCSV(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDataUnavailable, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	dec, err := csvutil.NewDecoder(csv.NewReader(bufio.NewReader(f)))
	if err != nil {
		f.Close()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s is empty", ErrDataUnavailable, path)
		}
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	return &Reader{f: f, dec: dec, line: 1}, nil
}

// Next returns the next transaction, or io.EOF after the last one.
func (r *Reader) Next() (Transaction, error) {
	var t Transaction
	if err := r.dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return t, io.EOF
		}
		return t, fmt.Errorf("line %d: %w", r.line+1, err)
	}
	r.line++
	return t, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.f.Close()
}

// ReadCSV reads every transaction of a snapshot into memory.
func ReadCSV(path string) ([]Transaction, error) {
	r, err := OpenCSV(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var txns []Transaction
	for {
		t, err := r.Next()
		if errors.Is(err, io.EOF) {
			return txns, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		txns = append(txns, t)
	}
}

// CSVWriter writes transactions in the snapshot layout.
type CSVWriter struct {
	w   *csv.Writer
	enc *csvutil.Encoder
}

// NewCSVWriter creates a writer; the header is written with the first row.
func NewCSVWriter(w io.Writer) *CSVWriter {
	cw := csv.NewWriter(w)
	return &CSVWriter{w: cw, enc: csvutil.NewEncoder(cw)}
}

// Write encodes one transaction.
func (w *CSVWriter) Write(t Transaction) error {
	return w.enc.Encode(t)
}

// Flush writes any buffered rows to the underlying writer.
func (w *CSVWriter) Flush() error {
	w.w.Flush()
	return w.w.Error()
}

// WriteCSV writes txns in the snapshot layout.
func WriteCSV(w io.Writer, txns []Transaction) error {
	cw := NewCSVWriter(w)
	for _, t := range txns {
		if err := cw.Write(t); err != nil {
			return fmt.Errorf("failed to encode transaction %d: %w", t.TransactionID, err)
		}
	}
	return cw.Flush()
}
