// internal/writers/dense.go
package writers

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"introsim/internal/dense"
)

// Dense output formats.
const (
	FormatTSV    = "tsv"
	FormatSQLite = "sqlite"
)

// DenseHeader is the column layout of the TSV dense format. Matrix columns
// hold comma-joined integers.
const DenseHeader = "Replicate\tChromosome\tStart\tEnd\tSample\tLabel\tPositions\tGenotypes\tMask"

// DenseSink persists window-matrix items. Write is called from a single
// goroutine; Close flushes and releases the container.
type DenseSink interface {
	Write(dense.Item) error
	Close() error
}

// OpenDense opens a sink of the requested format at path.
func OpenDense(format, path string) (DenseSink, error) {
	switch format {
	case FormatTSV:
		return openDenseTSV(path)
	case FormatSQLite:
		return openDenseSQLite(path)
	default:
		return nil, fmt.Errorf("unsupported dense format %q", format)
	}
}

type denseTSV struct {
	f  *os.File
	bw *bufio.Writer
}

func openDenseTSV(path string) (*denseTSV, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	bw := bufio.NewWriter(f)
	if _, err := fmt.Fprintln(bw, DenseHeader); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &denseTSV{f: f, bw: bw}, nil
}

func (s *denseTSV) Write(it dense.Item) error {
	_, err := fmt.Fprintf(s.bw, "%d\t%s\t%d\t%d\t%s\t%d\t%s\t%s\t%s\n",
		it.Replicate, it.Chromosome, it.Start, it.End, it.Sample, it.Label,
		intsCSV(it.Positions), bytesCSV(it.Genotypes), bytesCSV(it.Mask))
	return err
}

func (s *denseTSV) Close() error {
	if err := s.bw.Flush(); err != nil {
		_ = s.f.Close()
		return err
	}
	return s.f.Close()
}

// matrixPayload is the stable on-disk encoding of one matrix inside the
// sqlite container.
type matrixPayload struct {
	Positions []int   `json:"positions"`
	Genotypes []uint8 `json:"genotypes"`
	Mask      []uint8 `json:"mask"`
}

type denseSQLite struct {
	db  *sql.DB
	ins *sql.Stmt
}

func openDenseSQLite(path string) (*denseSQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS matrices (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			replicate INTEGER NOT NULL,
			chromosome TEXT NOT NULL,
			start INTEGER NOT NULL,
			stop INTEGER NOT NULL,
			sample TEXT NOT NULL,
			label INTEGER NOT NULL,
			payload BLOB NOT NULL
		)
	`); err != nil {
		_ = db.Close()
		return nil, err
	}
	ins, err := db.Prepare(`
		INSERT INTO matrices (replicate, chromosome, start, stop, sample, label, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &denseSQLite{db: db, ins: ins}, nil
}

func (s *denseSQLite) Write(it dense.Item) error {
	payload, err := json.Marshal(matrixPayload{
		Positions: it.Positions,
		Genotypes: it.Genotypes,
		Mask:      it.Mask,
	})
	if err != nil {
		return err
	}
	_, err = s.ins.Exec(it.Replicate, it.Chromosome, it.Start, it.End, it.Sample, it.Label, payload)
	return err
}

func (s *denseSQLite) Close() error {
	serr := s.ins.Close()
	if err := s.db.Close(); err != nil {
		return err
	}
	return serr
}

func intsCSV(xs []int) string {
	var sb strings.Builder
	for i, x := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(x))
	}
	return sb.String()
}

func bytesCSV(xs []uint8) string {
	var sb strings.Builder
	for i, x := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(x)))
	}
	return sb.String()
}
