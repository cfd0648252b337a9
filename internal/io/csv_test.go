package io_test

import (
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dara-analytics/dara/internal/io"
)

func TestCSVReader_Read(t *testing.T) {
	mem := memory.NewGoAllocator()

	t.Run("type inference and nulls", func(t *testing.T) {
		data := "ID,Name,Age,Height,Medal\n" +
			"1,A Dijiang,24,180.0,NA\n" +
			"2,A Lamusi,,170.5,Gold\n" +
			"3, Gunnar ,23,NaN,\n"

		reader := io.NewCSVReader(strings.NewReader(data), io.DefaultCSVOptions(), mem)
		tbl, err := reader.Read()
		require.NoError(t, err)
		defer tbl.Release()

		assert.Equal(t, 3, tbl.Len())
		assert.Equal(t, []string{"ID", "Name", "Age", "Height", "Medal"}, tbl.Columns())

		id, _ := tbl.Column("ID")
		assert.Equal(t, arrow.PrimitiveTypes.Int64, id.DataType())
		height, _ := tbl.Column("Height")
		assert.Equal(t, arrow.PrimitiveTypes.Float64, height.DataType())

		ages, valid, err := tbl.Ints("Age")
		require.NoError(t, err)
		assert.Equal(t, []int64{24, 0, 23}, ages)
		assert.Equal(t, []bool{true, false, true}, valid)

		medals, valid, err := tbl.Strings("Medal")
		require.NoError(t, err)
		assert.Equal(t, "Gold", medals[1])
		assert.Equal(t, []bool{false, true, false}, valid)
	})

	t.Run("header names are trimmed", func(t *testing.T) {
		data := " Country , Score \nNorway,7.5\n"
		tbl, err := io.NewCSVReader(strings.NewReader(data), io.DefaultCSVOptions(), mem).Read()
		require.NoError(t, err)
		defer tbl.Release()
		assert.Equal(t, []string{"Country", "Score"}, tbl.Columns())
	})

	t.Run("kind override", func(t *testing.T) {
		opts := io.DefaultCSVOptions()
		opts.Kinds = map[string]io.Kind{"release_year": io.KindInt, "code": io.KindString}
		data := "release_year,code\n2019.0,001\n2020,002\n"
		tbl, err := io.NewCSVReader(strings.NewReader(data), opts, mem).Read()
		require.NoError(t, err)
		defer tbl.Release()

		years, _, err := tbl.Ints("release_year")
		require.NoError(t, err)
		assert.Equal(t, []int64{2019, 2020}, years)

		codes, _, err := tbl.Strings("code")
		require.NoError(t, err)
		assert.Equal(t, []string{"001", "002"}, codes)
	})

	t.Run("kind override rejects bad values", func(t *testing.T) {
		opts := io.DefaultCSVOptions()
		opts.Kinds = map[string]io.Kind{"Year": io.KindInt}
		_, err := io.NewCSVReader(strings.NewReader("Year\nabc\n"), opts, mem).Read()
		assert.Error(t, err)
	})

	t.Run("no header", func(t *testing.T) {
		opts := io.DefaultCSVOptions()
		opts.Header = false
		tbl, err := io.NewCSVReader(strings.NewReader("a,1\nb,2\n"), opts, mem).Read()
		require.NoError(t, err)
		defer tbl.Release()
		assert.Equal(t, []string{"column_0", "column_1"}, tbl.Columns())
	})

	t.Run("empty input", func(t *testing.T) {
		tbl, err := io.NewCSVReader(strings.NewReader(""), io.DefaultCSVOptions(), mem).Read()
		require.NoError(t, err)
		assert.Equal(t, 0, tbl.Width())
	})

	t.Run("all null column is string", func(t *testing.T) {
		tbl, err := io.NewCSVReader(strings.NewReader("x,y\n1,\n2,NA\n"), io.DefaultCSVOptions(), mem).Read()
		require.NoError(t, err)
		defer tbl.Release()
		y, _ := tbl.Column("y")
		assert.Equal(t, arrow.BinaryTypes.String, y.DataType())
		assert.Equal(t, 2, y.NullN())
	})
}
