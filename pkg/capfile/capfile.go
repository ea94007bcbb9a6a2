// Package capfile packs and unpacks the legacy CAP season file: a 292-byte
// header followed by 216-byte player records. The header is itself a 76-byte
// prefix plus one embedded record-shaped block holding the season's combined
// opponent stats (76 + 216 = 292). All integers are little-endian uint16,
// all text fields fixed-width space-padded ASCII with 0x00 separators.
package capfile

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/go-restruct/restruct"

	"github.com/beaumcc/cap-generator/pkg/ascii"
)

const (
	// HeaderSize is the fixed byte length of the file header.
	HeaderSize = 292
	// RecordSize is the fixed byte length of one player record.
	RecordSize = 216
)

// Role byte values at record offset 23. Aggregate-mode files store the team
// games-played count there instead.
const (
	RolePitcher byte = 1
	RoleHitter  byte = 3
)

// Class-year bits in the high nibble of the class/handedness byte.
const (
	ClassFR byte = 0x08
	ClassSO byte = 0x10
	ClassJR byte = 0x20
	ClassSR byte = 0x40

	// ClassDefault is written when the source carries no class year.
	ClassDefault = ClassJR

	// OpponentClassMarker sits at the class position of the embedded
	// opponent block: all four class bits at once.
	OpponentClassMarker byte = 0x78
)

// Handedness bits in the low three bits of the class/handedness byte.
const (
	BatsLeft   byte = 0x01
	BatsSwitch byte = 0x02
	ThrowsLeft byte = 0x04
)

// ErrTruncated reports decode input shorter than the fixed header.
var ErrTruncated = errors.New("cap: input shorter than the 292-byte header")

// StatVector is the 96-slot counter block carried by every record.
type StatVector [96]uint16

// Record is one 216-byte player record. Field order is the wire layout.
type Record struct {
	TeamID [8]byte
	Sep0   byte
	Name   [12]byte
	Sep1   byte
	Class  byte
	Role   byte
	Stats  StatVector
}

// Header is the 292-byte file header. Field order is the wire layout; the
// Unknown and Reserved fields carry bytes the legacy tooling never assigned.
type Header struct {
	TeamName    [20]byte
	Sep0        byte
	TeamID      [8]byte
	Sep1        byte
	Date        [8]byte
	Pad         [2]byte
	PlayerCount uint16
	RecordSize  uint16
	Wins        uint16
	Losses      uint16
	Unknown1    uint16
	ConfWins    uint16
	ConfLosses  uint16
	Unknown2    uint16
	FieldINDP   uint16
	Unknown3    uint16
	FieldSBA    uint16
	FieldCSB    uint16
	PitchSHO    uint16
	PitchCBO    uint16
	Reserved    [8]byte
	Opponent    Record
}

// File is a fully decoded or about-to-be-encoded CAP file.
type File struct {
	Header  Header
	Records []Record
}

// NewHeader builds a header with the text fields padded and the constant
// opponent block in place. date must already be in MM/DD/YY form.
func NewHeader(teamName, teamID, date string) Header {
	var h Header
	putPadded(h.TeamName[:], teamName)
	putPadded(h.TeamID[:], teamID)
	putPadded(h.Date[:], date)
	h.RecordSize = RecordSize
	putPadded(h.Opponent.TeamID[:], "")
	putPadded(h.Opponent.Name[:], "Opponents")
	h.Opponent.Class = OpponentClassMarker
	return h
}

// NewRecord builds one player record.
func NewRecord(teamID, displayName string, class, role byte, stats StatVector) Record {
	var r Record
	putPadded(r.TeamID[:], teamID)
	putPadded(r.Name[:], displayName)
	r.Class = class
	r.Role = role
	r.Stats = stats
	return r
}

// Pack serializes the file: header first, then every record in order. The
// stored player count always reflects len(Records); the receiver is not
// mutated.
func (f *File) Pack() ([]byte, error) {
	h := f.Header
	h.PlayerCount = ClampU16(len(f.Records))

	out := make([]byte, 0, HeaderSize+RecordSize*len(f.Records))

	b, err := restruct.Pack(binary.LittleEndian, &h)
	if err != nil {
		return nil, fmt.Errorf("cap: pack header: %w", err)
	}
	if len(b) != HeaderSize {
		return nil, fmt.Errorf("cap: header packed to %d bytes, want %d", len(b), HeaderSize)
	}
	out = append(out, b...)

	for i := range f.Records {
		b, err := restruct.Pack(binary.LittleEndian, &f.Records[i])
		if err != nil {
			return nil, fmt.Errorf("cap: pack record %d: %w", i, err)
		}
		if len(b) != RecordSize {
			return nil, fmt.Errorf("cap: record %d packed to %d bytes, want %d", i, len(b), RecordSize)
		}
		out = append(out, b...)
	}
	return out, nil
}

// Unpack decodes raw CAP bytes. Input shorter than the header fails with
// ErrTruncated; beyond the header the decode is structural and best-effort:
// the record count is floor((len-292)/216) and trailing partial bytes are
// ignored.
func Unpack(data []byte) (*File, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrTruncated, len(data))
	}

	var f File
	if err := restruct.Unpack(data[:HeaderSize], binary.LittleEndian, &f.Header); err != nil {
		return nil, fmt.Errorf("cap: unpack header: %w", err)
	}

	n := (len(data) - HeaderSize) / RecordSize
	f.Records = make([]Record, n)
	for i := 0; i < n; i++ {
		off := HeaderSize + i*RecordSize
		if err := restruct.Unpack(data[off:off+RecordSize], binary.LittleEndian, &f.Records[i]); err != nil {
			return nil, fmt.Errorf("cap: unpack record %d: %w", i, err)
		}
	}
	return &f, nil
}

// ClampU16 clamps a count into the uint16 range. Negative values clamp to 0,
// never wrap.
func ClampU16(v int) uint16 {
	if v < 0 {
		return 0
	}
	if v > 65535 {
		return 65535
	}
	return uint16(v)
}

// ClassByte packs a normalized class year ("FR", "SO", "JR", "SR", or empty
// for the default) and handedness letters (bats R/L/S or B, throws R/L) into
// the record's class/handedness byte.
func ClassByte(class string, bats, throws byte) byte {
	b := ClassDefault
	switch class {
	case "FR":
		b = ClassFR
	case "SO":
		b = ClassSO
	case "JR":
		b = ClassJR
	case "SR":
		b = ClassSR
	}
	switch bats {
	case 'L':
		b |= BatsLeft
	case 'S', 'B':
		b |= BatsSwitch
	}
	if throws == 'L' {
		b |= ThrowsLeft
	}
	return b
}

// ClassName reverses an exact class byte back to its year label. Bytes with
// handedness bits set have no exact label and report ok=false.
func ClassName(b byte) (string, bool) {
	switch b {
	case ClassFR:
		return "FR", true
	case ClassSO:
		return "SO", true
	case ClassJR:
		return "JR", true
	case ClassSR:
		return "SR", true
	}
	return "", false
}

// RoleName names the two standard role bytes. Aggregate-mode counts report
// ok=false.
func RoleName(b byte) (string, bool) {
	switch b {
	case RolePitcher:
		return "PITCHER", true
	case RoleHitter:
		return "HITTER", true
	}
	return "", false
}

// Text converts a fixed-width field back to a string, dropping the trailing
// space/NUL padding.
func Text(b []byte) string {
	end := len(b)
	for end > 0 && (b[end-1] == ' ' || b[end-1] == 0) {
		end--
	}
	return string(b[:end])
}

// putPadded folds s to the legacy charset, truncates it to the field width,
// and right-pads with spaces. The separator bytes around each field stay 0.
func putPadded(dst []byte, s string) {
	s = ascii.Fold(s)
	if len(s) > len(dst) {
		s = s[:len(dst)]
	}
	n := copy(dst, s)
	for i := n; i < len(dst); i++ {
		dst[i] = ' '
	}
}
