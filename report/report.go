// Package report renders a bench.Result for people (Text) and for tools (JSON).
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/matvecbench/bench"
)

// Output formats accepted by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	// ErrUnknownFormat indicates a format name Write does not know.
	ErrUnknownFormat = errors.New("report: unknown format")

	// ErrNilResult indicates a nil Result.
	ErrNilResult = errors.New("report: nil result")
)

// Write renders r to w in the named format.
func Write(w io.Writer, format string, r *bench.Result) error {
	switch format {
	case FormatText:
		return Text(w, r)
	case FormatJSON:
		return JSON(w, r, DetectHardware())
	default:
		return fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

// Text writes the five summary lines, in fixed order, followed by a blank line.
func Text(w io.Writer, r *bench.Result) error {
	if r == nil {
		return ErrNilResult
	}
	_, err := fmt.Fprintf(w,
		"Serial computation time: %f seconds\n"+
			"Parallel computation time (%d processes): %f seconds\n"+
			"Speedup: %f\n"+
			"Efficiency: %f%%\n"+
			"Maximum difference between Parallel and serial result: %e\n\n",
		r.SerialTime.Seconds(),
		r.GroupSize, r.ParallelTime.Seconds(),
		r.Speedup,
		r.Efficiency,
		r.MaxError,
	)

	return err
}

// Document is the JSON shape of a run.
type Document struct {
	N               int      `json:"n"`
	Processes       int      `json:"processes"`
	Samples         int      `json:"samples"`
	SerialSeconds   float64  `json:"serial_seconds"`
	ParallelSeconds float64  `json:"parallel_seconds"`
	Speedup         float64  `json:"speedup"`
	EfficiencyPct   float64  `json:"efficiency_pct"`
	MaxError        float64  `json:"max_error"`
	Hardware        Hardware `json:"hardware"`
}

// NewDocument flattens r and hw into a Document.
func NewDocument(r *bench.Result, hw Hardware) Document {
	return Document{
		N:               r.N,
		Processes:       r.GroupSize,
		Samples:         r.Samples,
		SerialSeconds:   r.SerialTime.Seconds(),
		ParallelSeconds: r.ParallelTime.Seconds(),
		Speedup:         r.Speedup,
		EfficiencyPct:   r.Efficiency,
		MaxError:        r.MaxError,
		Hardware:        hw,
	}
}

// JSON writes r and hw as one indented JSON object.
// A NaN MaxError cannot be encoded and is reported as an error.
func JSON(w io.Writer, r *bench.Result, hw Hardware) error {
	if r == nil {
		return ErrNilResult
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(r, hw)); err != nil {
		return fmt.Errorf("report: json: %w", err)
	}

	return nil
}
