package report

import (
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sys/cpu"
)

// Hardware describes the machine a run was measured on.
type Hardware struct {
	GOOS     string   `json:"goos"`
	GOARCH   string   `json:"goarch"`
	NumCPU   int      `json:"num_cpu"`
	Features []string `json:"features"` // SIMD features relevant to a dot-product kernel
}

type feature struct {
	name string
	has  bool
}

// DetectHardware reports the running machine.
func DetectHardware() Hardware {
	var fs []feature
	switch runtime.GOARCH {
	case "amd64", "386":
		fs = []feature{
			{"sse2", cpu.X86.HasSSE2},
			{"sse4.1", cpu.X86.HasSSE41},
			{"avx", cpu.X86.HasAVX},
			{"avx2", cpu.X86.HasAVX2},
			{"fma", cpu.X86.HasFMA},
			{"avx512f", cpu.X86.HasAVX512F},
		}
	case "arm64":
		fs = []feature{
			{"asimd", cpu.ARM64.HasASIMD},
			{"fp", cpu.ARM64.HasFP},
			{"sve", cpu.ARM64.HasSVE},
			{"sve2", cpu.ARM64.HasSVE2},
		}
	}
	hw := Hardware{
		GOOS:     runtime.GOOS,
		GOARCH:   runtime.GOARCH,
		NumCPU:   runtime.NumCPU(),
		Features: []string{},
	}
	for _, f := range fs {
		if f.has {
			hw.Features = append(hw.Features, f.name)
		}
	}

	return hw
}

// WriteHardware prints hw as one "key: value" line per field.
func WriteHardware(w io.Writer, hw Hardware) error {
	_, err := fmt.Fprintf(w, "os: %s\narch: %s\ncpus: %d\nfeatures: %v\n",
		hw.GOOS, hw.GOARCH, hw.NumCPU, hw.Features)

	return err
}
