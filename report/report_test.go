package report_test

import (
	"bytes"
	"encoding/json"
	"math"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matvecbench/bench"
	"github.com/katalvlaran/matvecbench/report"
)

func sample() *bench.Result {
	return &bench.Result{
		N:            1000,
		GroupSize:    4,
		SerialTime:   2 * time.Second,
		ParallelTime: 500 * time.Millisecond,
		Speedup:      4,
		Efficiency:   100,
		MaxError:     1.5e-16,
		Samples:      3,
	}
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Text(&buf, sample()))
	require.Equal(t,
		"Serial computation time: 2.000000 seconds\n"+
			"Parallel computation time (4 processes): 0.500000 seconds\n"+
			"Speedup: 4.000000\n"+
			"Efficiency: 100.000000%\n"+
			"Maximum difference between Parallel and serial result: 1.500000e-16\n\n",
		buf.String())
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	hw := report.Hardware{GOOS: "linux", GOARCH: "amd64", NumCPU: 8, Features: []string{"avx2"}}
	require.NoError(t, report.JSON(&buf, sample(), hw))

	var doc report.Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, report.NewDocument(sample(), hw), doc)
	require.Equal(t, 0.5, doc.ParallelSeconds)
	require.Contains(t, buf.String(), `"efficiency_pct": 100`)
}

func TestJSONRejectsNaN(t *testing.T) {
	r := sample()
	r.MaxError = math.NaN()
	require.Error(t, report.JSON(&bytes.Buffer{}, r, report.Hardware{}))
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.FormatText, sample()))
	require.Contains(t, buf.String(), "Speedup: 4.000000")

	buf.Reset()
	require.NoError(t, report.Write(&buf, report.FormatJSON, sample()))
	require.True(t, json.Valid(buf.Bytes()))

	require.ErrorIs(t, report.Write(&buf, "yaml", sample()), report.ErrUnknownFormat)
	require.ErrorIs(t, report.Text(&buf, nil), report.ErrNilResult)
	require.ErrorIs(t, report.JSON(&buf, nil, report.Hardware{}), report.ErrNilResult)
}

func TestDetectHardware(t *testing.T) {
	hw := report.DetectHardware()
	require.Equal(t, runtime.GOOS, hw.GOOS)
	require.Equal(t, runtime.GOARCH, hw.GOARCH)
	require.Equal(t, runtime.NumCPU(), hw.NumCPU)
	require.NotNil(t, hw.Features)

	var buf bytes.Buffer
	require.NoError(t, report.WriteHardware(&buf, hw))
	require.Contains(t, buf.String(), "arch: "+runtime.GOARCH)
}
