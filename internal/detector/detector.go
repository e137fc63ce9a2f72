// Package detector checks ROM files for content the emulator can not run.
package detector

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// SUPER-CHIP instruction names reported by the detector.
const (
	ScrollDown  = "scd"
	ScrollRight = "scr"
	ScrollLeft  = "scl"
	Exit        = "exit"
	LowRes      = "low"
	HighRes     = "high"
	BigSprite   = "drw16"
	BigFont     = "ldhf"
	StoreFlags  = "strflags"
	LoadFlags   = "ldflags"
)

// Report contains the detection results of a ROM.
type Report struct {
	KnownExtension bool
	Extensions     set.Set[string] // detected SUPER-CHIP instructions
}

// ExtensionNames returns the sorted names of the detected extension
// instructions.
func (r Report) ExtensionNames() []string {
	names := make([]string, 0, len(r.Extensions))
	for name := range r.Extensions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Detector handles ROM file checks.
type Detector struct {
	logger *log.Logger
}

// New creates a new ROM detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect checks the file extension and scans the ROM for SUPER-CHIP
// opcodes. Findings are logged as warnings, the ROM is run regardless.
// The scan is a heuristic, data embedded in the ROM can produce false
// positives.
func (d *Detector) Detect(filename string, rom []byte) Report {
	report := Report{
		KnownExtension: d.detectFromFile(filename),
		Extensions:     scanExtensions(rom),
	}

	if !report.KnownExtension {
		d.logger.Warn("Unexpected file extension for a CHIP-8 ROM",
			log.String("file", filename))
	}
	if len(report.Extensions) > 0 {
		d.logger.Warn("ROM appears to use SUPER-CHIP instructions which are not supported",
			log.String("file", filename),
			log.String("instructions", strings.Join(report.ExtensionNames(), ", ")))
	}
	return report
}

// detectFromFile returns whether the file extension is used for CHIP-8 ROMs.
func (d *Detector) detectFromFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".ch8", ".rom", ".c8":
		return true
	default:
		return false
	}
}

// scanExtensions decodes every opcode word aligned to the program start.
func scanExtensions(rom []byte) set.Set[string] {
	found := set.New[string]()
	for i := 0; i+1 < len(rom); i += 2 {
		word := uint16(rom[i])<<8 | uint16(rom[i+1])
		if name := extensionName(word); name != "" {
			found.Add(name)
		}
	}
	return found
}

func extensionName(word uint16) string {
	switch {
	case word&0xFFF0 == 0x00C0:
		return ScrollDown
	case word&0xF00F == 0xD000:
		return BigSprite
	}

	switch word {
	case 0x00FB:
		return ScrollRight
	case 0x00FC:
		return ScrollLeft
	case 0x00FD:
		return Exit
	case 0x00FE:
		return LowRes
	case 0x00FF:
		return HighRes
	}

	switch word & 0xF0FF {
	case 0xF030:
		return BigFont
	case 0xF075:
		return StoreFlags
	case 0xF085:
		return LoadFlags
	}
	return ""
}
