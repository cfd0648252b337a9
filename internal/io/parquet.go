package io

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/dara-analytics/dara/internal/series"
	"github.com/dara-analytics/dara/internal/table"
)

// Read reads Parquet data and returns a Table.
func (r *ParquetReader) Read() (*table.Table, error) {
	data, err := io.ReadAll(r.reader)
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}

	pqReader, err := file.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating parquet file reader: %w", err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, r.mem)
	if err != nil {
		return nil, fmt.Errorf("creating arrow file reader: %w", err)
	}

	ctx := r.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	arrowTable, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	defer arrowTable.Release()

	return r.fromArrowTable(arrowTable)
}

// fromArrowTable converts every column, flattening chunks and widening
// 32-bit numerics so the rest of the pipeline sees int64, float64 and utf8 only.
func (r *ParquetReader) fromArrowTable(t arrow.Table) (*table.Table, error) {
	schema := t.Schema()
	cols := make([]table.Column, 0, t.NumCols())

	for i := 0; i < int(t.NumCols()); i++ {
		field := schema.Field(i)
		col, err := r.convertColumn(field.Name, field.Type, t.Column(i).Data())
		if err != nil {
			return nil, fmt.Errorf("converting column %s: %w", field.Name, err)
		}
		cols = append(cols, col)
	}

	return table.New(cols...), nil
}

func (r *ParquetReader) convertColumn(name string, dataType arrow.DataType, chunked *arrow.Chunked) (table.Column, error) {
	n := chunked.Len()
	valid := make([]bool, 0, n)

	//nolint:exhaustive // Only handling the types datasets are stored in
	switch dataType.ID() {
	case arrow.INT64, arrow.INT32:
		values := make([]int64, 0, n)
		for _, chunk := range chunked.Chunks() {
			for j := 0; j < chunk.Len(); j++ {
				valid = append(valid, chunk.IsValid(j))
				switch c := chunk.(type) {
				case *array.Int64:
					values = append(values, c.Value(j))
				case *array.Int32:
					values = append(values, int64(c.Value(j)))
				}
			}
		}
		return series.NewNullable(name, values, valid, r.mem), nil
	case arrow.FLOAT64, arrow.FLOAT32:
		values := make([]float64, 0, n)
		for _, chunk := range chunked.Chunks() {
			for j := 0; j < chunk.Len(); j++ {
				valid = append(valid, chunk.IsValid(j))
				switch c := chunk.(type) {
				case *array.Float64:
					values = append(values, c.Value(j))
				case *array.Float32:
					values = append(values, float64(c.Value(j)))
				}
			}
		}
		return series.NewNullable(name, values, valid, r.mem), nil
	case arrow.STRING, arrow.LARGE_STRING:
		values := make([]string, 0, n)
		for _, chunk := range chunked.Chunks() {
			for j := 0; j < chunk.Len(); j++ {
				valid = append(valid, chunk.IsValid(j))
				switch c := chunk.(type) {
				case *array.String:
					values = append(values, c.Value(j))
				case *array.LargeString:
					values = append(values, c.Value(j))
				}
			}
		}
		return series.NewNullable(name, values, valid, r.mem), nil
	default:
		return nil, fmt.Errorf("unsupported Arrow type: %s", dataType)
	}
}

// Write writes the Table to Parquet format.
func (w *ParquetWriter) Write(t *table.Table) error {
	arrowTable := toArrowTable(t)
	defer arrowTable.Release()

	var compression compress.Compression
	switch w.options.Compression {
	case "gzip":
		compression = compress.Codecs.Gzip
	case "zstd":
		compression = compress.Codecs.Zstd
	case "uncompressed":
		compression = compress.Codecs.Uncompressed
	default:
		compression = compress.Codecs.Snappy
	}

	batchSize := w.options.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultParquetOptions().BatchSize
	}

	props := parquet.NewWriterProperties(
		parquet.WithCompression(compression),
		parquet.WithBatchSize(int64(batchSize)),
	)
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithAllocator(memory.NewGoAllocator()))

	writer, err := pqarrow.NewFileWriter(arrowTable.Schema(), w.writer, props, arrowProps)
	if err != nil {
		return fmt.Errorf("creating file writer: %w", err)
	}

	chunkSize := int64(t.Len())
	if chunkSize == 0 {
		chunkSize = 1
	}
	if err := writer.WriteTable(arrowTable, chunkSize); err != nil {
		_ = writer.Close()
		return fmt.Errorf("writing table: %w", err)
	}
	return writer.Close()
}

// toArrowTable shares each column's array with a new arrow table.
func toArrowTable(t *table.Table) arrow.Table {
	names := t.Columns()
	fields := make([]arrow.Field, len(names))
	cols := make([]arrow.Column, len(names))

	for i, name := range names {
		col, _ := t.Column(name)
		arr := col.Array()
		fields[i] = arrow.Field{Name: name, Type: arr.DataType(), Nullable: true}

		chunked := arrow.NewChunked(arr.DataType(), []arrow.Array{arr})
		cols[i] = *arrow.NewColumn(fields[i], chunked)
		chunked.Release()
		arr.Release()
	}

	out := array.NewTable(arrow.NewSchema(fields, nil), cols, int64(t.Len()))
	for i := range cols {
		cols[i].Release()
	}
	return out
}
