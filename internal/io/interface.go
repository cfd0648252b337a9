// Package io reads dataset sources into arrow-backed tables.
//
// CSV and Parquet sources are supported. CSV columns are typed by inference
// (int64, float64 or string) unless overridden per column, and the configured
// null tokens become null slots so the cleaning step can fill them.
//
// Memory management: every table returned here owns Arrow buffers and must
// be released by the caller.
package io

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"

	daraerrors "github.com/dara-analytics/dara/internal/errors"
	"github.com/dara-analytics/dara/internal/table"
)

// DataReader defines the interface for reading a table from a source
type DataReader interface {
	// Read reads data from the source and returns a Table
	Read() (*table.Table, error)
}

// DataWriter defines the interface for writing a table to a destination
type DataWriter interface {
	// Write writes the Table to the destination
	Write(t *table.Table) error
}

// Kind is the physical type a column is decoded into.
type Kind int

const (
	// KindInfer lets the reader pick the narrowest type that fits every value
	KindInfer Kind = iota
	// KindString keeps the column as text
	KindString
	// KindInt parses the column as int64
	KindInt
	// KindFloat parses the column as float64
	KindFloat
)

// DefaultNullValues are the tokens read as missing values.
var DefaultNullValues = []string{"", "NA", "NaN", "nan", "null", "None"}

// CSVOptions contains configuration options for CSV operations
type CSVOptions struct {
	// Delimiter is the field delimiter (default: comma)
	Delimiter rune
	// Comment is the comment character (default: 0 = disabled)
	Comment rune
	// Header indicates whether the first row contains headers
	Header bool
	// SkipInitialSpace indicates whether to skip initial whitespace
	SkipInitialSpace bool
	// NullValues are cell values read as null after trimming
	NullValues []string
	// Kinds overrides type inference per column
	Kinds map[string]Kind
}

// DefaultCSVOptions returns default CSV options
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		Delimiter:  ',',
		Header:     true,
		NullValues: DefaultNullValues,
	}
}

// CSVReader reads CSV data and converts it to Tables
type CSVReader struct {
	reader  io.Reader
	options CSVOptions
	mem     memory.Allocator
}

// NewCSVReader creates a new CSV reader with the specified options
func NewCSVReader(reader io.Reader, options CSVOptions, mem memory.Allocator) *CSVReader {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	return &CSVReader{
		reader:  reader,
		options: options,
		mem:     mem,
	}
}

// ParquetOptions contains configuration options for Parquet operations
type ParquetOptions struct {
	// Compression type for Parquet files
	Compression string
	// BatchSize for writing operations
	BatchSize int
}

// DefaultParquetOptions returns default Parquet options
func DefaultParquetOptions() ParquetOptions {
	return ParquetOptions{
		Compression: "snappy",
		BatchSize:   1000,
	}
}

// ParquetReader reads Parquet data and converts it to Tables
type ParquetReader struct {
	ctx     context.Context
	reader  io.Reader
	options ParquetOptions
	mem     memory.Allocator
}

// NewParquetReader creates a new Parquet reader with the specified options
func NewParquetReader(ctx context.Context, reader io.Reader, options ParquetOptions, mem memory.Allocator) *ParquetReader {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	return &ParquetReader{
		ctx:     ctx,
		reader:  reader,
		options: options,
		mem:     mem,
	}
}

// ParquetWriter writes Tables to Parquet format
type ParquetWriter struct {
	writer  io.Writer
	options ParquetOptions
}

// NewParquetWriter creates a new Parquet writer with the specified options
func NewParquetWriter(writer io.Writer, options ParquetOptions) *ParquetWriter {
	return &ParquetWriter{
		writer:  writer,
		options: options,
	}
}

// ReadFile opens path and reads it with the reader matching its extension.
// Any failure is reported as a data load error for dataset.
func ReadFile(ctx context.Context, dataset, path string, csvOptions CSVOptions, mem memory.Allocator) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, daraerrors.NewDataLoadError("ReadFile", dataset, err)
	}
	defer f.Close()

	var reader DataReader
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		reader = NewCSVReader(f, csvOptions, mem)
	case ".parquet":
		reader = NewParquetReader(ctx, f, DefaultParquetOptions(), mem)
	default:
		return nil, daraerrors.NewDataLoadError("ReadFile", dataset, fmt.Errorf("unsupported file extension %q", ext))
	}

	t, err := reader.Read()
	if err != nil {
		return nil, daraerrors.NewDataLoadError("ReadFile", dataset, err)
	}
	return t, nil
}
