// Package report renders a decoded CAP file as the legacy byte-annotated
// text dump: a file banner, the header fields with their offsets, the
// embedded opponent stat vector, then one block per player record. Every
// u16 slot prints with its registry label and a trailing marker on nonzero
// values, so a populated slot is never silently hidden.
package report

import (
	"fmt"
	"strings"

	"github.com/beaumcc/cap-generator/pkg/capfile"
	"github.com/beaumcc/cap-generator/pkg/statmap"
)

var banner = strings.Repeat("=", 80)

// Render produces the full text report for one decoded file. path and size
// describe the input the bytes came from; the returned text ends with a
// newline and is ready to write as the .txt output.
func Render(f *capfile.File, path string, size int) string {
	var b strings.Builder
	h := &f.Header

	fmt.Fprintf(&b, "\n%s\n", banner)
	fmt.Fprintf(&b, "FILE: %s\n", path)
	fmt.Fprintf(&b, "Total size: %d bytes\n", size)
	fmt.Fprintf(&b, "%s\n", banner)

	b.WriteString("\n--- HEADER (bytes 0-291) ---\n")
	fmt.Fprintf(&b, "  [0:20]   Team Name     : \"%s\"\n", capfile.Text(h.TeamName[:]))
	fmt.Fprintf(&b, "  [20]     Separator     : 0x%02X\n", h.Sep0)
	fmt.Fprintf(&b, "  [21:29]  Team ID       : \"%s\"\n", capfile.Text(h.TeamID[:]))
	fmt.Fprintf(&b, "  [29]     Separator     : 0x%02X\n", h.Sep1)
	fmt.Fprintf(&b, "  [30:38]  Date          : \"%s\"\n", capfile.Text(h.Date[:]))
	fmt.Fprintf(&b, "  [38:40]  Padding       : %x\n", h.Pad[:])
	fmt.Fprintf(&b, "  [40:42]  Player Count  : %d\n", h.PlayerCount)
	fmt.Fprintf(&b, "  [42:44]  Record Size   : %d\n", h.RecordSize)
	fmt.Fprintf(&b, "  [44:46]  Wins          : %d\n", h.Wins)
	fmt.Fprintf(&b, "  [46:48]  Losses        : %d\n", h.Losses)
	fmt.Fprintf(&b, "  [48:50]  Unknown       : %d\n", h.Unknown1)
	fmt.Fprintf(&b, "  [50:52]  Conf Wins     : %d\n", h.ConfWins)
	fmt.Fprintf(&b, "  [52:54]  Conf Losses   : %d\n", h.ConfLosses)
	fmt.Fprintf(&b, "  [54:56]  Unknown       : %d\n", h.Unknown2)
	fmt.Fprintf(&b, "  [56:58]  Field INDP    : %d\n", h.FieldINDP)
	fmt.Fprintf(&b, "  [58:60]  Unknown       : %d\n", h.Unknown3)
	fmt.Fprintf(&b, "  [60:62]  Field SBA     : %d\n", h.FieldSBA)
	fmt.Fprintf(&b, "  [62:64]  Field CSB     : %d\n", h.FieldCSB)
	fmt.Fprintf(&b, "  [64:66]  Pitch SHO     : %d\n", h.PitchSHO)
	fmt.Fprintf(&b, "  [66:68]  Pitch CBO     : %d\n", h.PitchCBO)
	fmt.Fprintf(&b, "  [68:76]  Remaining     : %x\n", h.Reserved[:])

	b.WriteString("\n  --- Opponent Record [76:292] ---\n")
	fmt.Fprintf(&b, "  [76:84]  Opp Team ID   : \"%s\"\n", capfile.Text(h.Opponent.TeamID[:]))
	fmt.Fprintf(&b, "  [85:97]  Opp Name      : \"%s\"\n", capfile.Text(h.Opponent.Name[:]))
	fmt.Fprintf(&b, "  [98]     Type Flag     : 0x%02X\n", h.Opponent.Class)

	b.WriteString("\n  Opponent u16 stats:\n")
	writeVector(&b, "    ", &h.Opponent.Stats)

	fmt.Fprintf(&b, "\n--- PLAYER RECORDS (%d players) ---\n", len(f.Records))
	for i := range f.Records {
		r := &f.Records[i]
		fmt.Fprintf(&b, "\n  #%2d \"%s\"  %s  class=%s\n",
			i+1, capfile.Text(r.Name[:]), roleString(r.Role), classString(r.Class))
		writeVector(&b, "      ", &r.Stats)
	}

	return b.String()
}

// writeVector renders one slot per line: index, value, the merged labels
// from both field tables, and a marker flagging nonzero values.
func writeVector(b *strings.Builder, indent string, v *capfile.StatVector) {
	for i, val := range v {
		marker := ""
		if val != 0 {
			marker = " <--"
		}
		fmt.Fprintf(b, "%su16[%2d] = %5d  %s%s\n", indent, i, val, statmap.Label(i), marker)
	}
}

func roleString(role byte) string {
	if name, ok := capfile.RoleName(role); ok {
		return name
	}
	// Aggregate-mode files carry a games-played count here.
	return fmt.Sprintf("type=%d", role)
}

func classString(class byte) string {
	if name, ok := capfile.ClassName(class); ok {
		return name
	}
	// No exact class match: handedness bits or the opponent marker.
	return fmt.Sprintf("0x%02X", class)
}
