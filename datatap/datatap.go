// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package datatap records the observables of a set of columns into an
etable.Table, one row per recorded time step, for CSV export and plotting.

The table has a "Time" column (in seconds) followed by one FLOAT64 column per
observable of each population, named "<pop>.<observable>", e.g. "Cortex.V".
Record only reads the populations, so it may be called after any Finalize.
*/
package datatap

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/c2h5oh/datasize"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/etable/minmax"
)

// LogPrec is the precision for saving float values in the csv
var LogPrec = 8

// Observer is a population whose observables are recorded
type Observer interface {
	// Name returns the name of the population, used as column prefix
	Name() string

	// ObservableNames returns the names of the observables
	ObservableNames() []string

	// Observables returns the current observables, in ObservableNames order
	Observables() []float64
}

// Tap records the observables of its populations into Table
type Tap struct {
	Pops  []Observer    `desc:"recorded populations, in column order"`
	Table *etable.Table `view:"no-inline" desc:"recorded data, one row per recorded step"`
	Cols  [][]string    `view:"-" desc:"column names of the observables of each population"`
	N     int           `inactive:"+" desc:"number of rows recorded so far"`
}

// New returns a tap with room for rows steps of the given populations
func New(rows int, pops ...Observer) (*Tap, error) {
	if rows < 0 {
		return nil, fmt.Errorf("datatap.New: negative number of rows: %d", rows)
	}
	tp := &Tap{Pops: pops, Table: &etable.Table{}}
	sch := etable.Schema{
		{"Time", etensor.FLOAT64, nil, nil},
	}
	seen := map[string]bool{"Time": true}
	tp.Cols = make([][]string, len(pops))
	for pi, p := range pops {
		for _, on := range p.ObservableNames() {
			cn := p.Name() + "." + on
			if seen[cn] {
				return nil, fmt.Errorf("datatap.New: duplicate column: %s", cn)
			}
			seen[cn] = true
			tp.Cols[pi] = append(tp.Cols[pi], cn)
			sch = append(sch, etable.Column{cn, etensor.FLOAT64, nil, nil})
		}
	}
	dt := tp.Table
	dt.SetMetaData("name", "DataTap")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))
	dt.SetFromSchema(sch, rows)
	return tp, nil
}

// Rows returns the capacity of the table in rows
func (tp *Tap) Rows() int {
	return tp.Table.Rows
}

// Record copies the current observables of all populations into given row,
// with the time t in seconds.
func (tp *Tap) Record(row int, t float64) error {
	dt := tp.Table
	if row < 0 || row >= dt.Rows {
		return fmt.Errorf("datatap.Record: row %d out of range [0, %d)", row, dt.Rows)
	}
	dt.SetCellFloat("Time", row, t)
	for pi, p := range tp.Pops {
		obs := p.Observables()
		for oi, cn := range tp.Cols[pi] {
			dt.SetCellFloat(cn, row, obs[oi])
		}
	}
	if row >= tp.N {
		tp.N = row + 1
	}
	return nil
}

// Append records into the next free row, growing the table if it is full
func (tp *Tap) Append(t float64) error {
	if tp.N >= tp.Table.Rows {
		tp.Table.SetNumRows(tp.N + 1)
	}
	return tp.Record(tp.N, t)
}

// Trim drops the rows that were never recorded
func (tp *Tap) Trim() {
	if tp.N < tp.Table.Rows {
		tp.Table.SetNumRows(tp.N)
	}
}

// Val returns the value of named column at given row
func (tp *Tap) Val(col string, row int) (float64, error) {
	if _, err := tp.Table.ColByNameTry(col); err != nil {
		return math.NaN(), err
	}
	if row < 0 || row >= tp.Table.Rows {
		return math.NaN(), fmt.Errorf("datatap.Val: row %d out of range [0, %d)", row, tp.Table.Rows)
	}
	return tp.Table.CellFloat(col, row), nil
}

// Range returns the range of the recorded values of named column
func (tp *Tap) Range(col string) (minmax.F64, error) {
	var rng minmax.F64
	if _, err := tp.Table.ColByNameTry(col); err != nil {
		return rng, err
	}
	if tp.N == 0 {
		return rng, fmt.Errorf("datatap.Range: column %s: no rows recorded", col)
	}
	mn, mx := math.Inf(1), math.Inf(-1)
	for row := 0; row < tp.N; row++ {
		v := tp.Table.CellFloat(col, row)
		mn = math.Min(mn, v)
		mx = math.Max(mx, v)
	}
	rng.Set(mn, mx)
	return rng, nil
}

//////////////////////////////////////////////////////////////////////////////////////
//  Output

// WriteCSV writes the recorded rows with headers, comma separated
func (tp *Tap) WriteCSV(w io.Writer) error {
	tp.Trim()
	return tp.Table.WriteCSV(w, etable.Comma, etable.Headers)
}

// SaveCSV writes the recorded rows to the named file
func (tp *Tap) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := tp.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("datatap.SaveCSV: %s: %w", path, err)
	}
	return f.Close()
}

// MemBytes returns the size of the table data in bytes
func (tp *Tap) MemBytes() int {
	return 8 * tp.Table.Rows * len(tp.Table.Cols)
}

// SizeReport returns a string reporting the size of the table
func (tp *Tap) SizeReport() string {
	return fmt.Sprintf("DataTap:\t Pops: %d\t Cols: %d\t Rows: %d (%d recorded)\t Mem: %v\n",
		len(tp.Pops), len(tp.Table.Cols), tp.Table.Rows, tp.N, (datasize.ByteSize)(tp.MemBytes()).HumanReadable())
}
