package main

import (
	"io"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/pkg/errors"
)

// ReadArrow reads every batch of an Arrow IPC file or stream and
// concatenates them into a single record.
func ReadArrow(path string) (arrow.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "read arrow")
	}
	defer f.Close()

	mem := memory.NewGoAllocator()
	var schema *arrow.Schema
	var batches []arrow.Record
	defer func() {
		for _, b := range batches {
			b.Release()
		}
	}()

	if fr, err := ipc.NewFileReader(f, ipc.WithAllocator(mem)); err == nil {
		defer fr.Close()
		schema = fr.Schema()
		for i := 0; i < fr.NumRecords(); i++ {
			rec, err := fr.Record(i)
			if err != nil {
				return nil, errors.Wrap(err, "read arrow")
			}
			rec.Retain()
			batches = append(batches, rec)
		}
	} else {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, errors.Wrap(err, "read arrow")
		}
		sr, err := ipc.NewReader(f, ipc.WithAllocator(mem))
		if err != nil {
			return nil, errors.Wrap(err, "read arrow")
		}
		defer sr.Release()
		schema = sr.Schema()
		for sr.Next() {
			rec := sr.Record()
			rec.Retain()
			batches = append(batches, rec)
		}
		if err := sr.Err(); err != nil {
			return nil, errors.Wrap(err, "read arrow")
		}
	}

	return concatBatches(mem, schema, batches)
}

func concatBatches(mem memory.Allocator, schema *arrow.Schema, batches []arrow.Record) (arrow.Record, error) {
	var numRows int64
	for _, b := range batches {
		numRows += b.NumRows()
	}
	columns := make([]arrow.Array, len(schema.Fields()))
	defer func() {
		for _, c := range columns {
			if c != nil {
				c.Release()
			}
		}
	}()
	for i := range columns {
		if len(batches) == 0 {
			columns[i] = array.MakeArrayOfNull(mem, schema.Field(i).Type, 0)
			continue
		}
		chunks := make([]arrow.Array, len(batches))
		for j, b := range batches {
			chunks[j] = b.Column(i)
		}
		col, err := array.Concatenate(chunks, mem)
		if err != nil {
			return nil, errors.Wrapf(err, "concatenate field %s", schema.Field(i).Name)
		}
		columns[i] = col
	}
	return array.NewRecord(schema, columns, numRows), nil
}
