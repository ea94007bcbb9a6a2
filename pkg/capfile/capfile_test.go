package capfile

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestPackedSizes(t *testing.T) {
	f := &File{Header: NewHeader("Wildcats", "WILDCATS", "02/15/26")}
	out, err := f.Pack()
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	if len(out) != HeaderSize {
		t.Errorf("header-only file packed to %d bytes, want %d", len(out), HeaderSize)
	}

	f.Records = append(f.Records, NewRecord("WILDCATS", "T. Bissetta", ClassDefault, RoleHitter, StatVector{}))
	out, err = f.Pack()
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	if len(out) != HeaderSize+RecordSize {
		t.Errorf("one-record file packed to %d bytes, want %d", len(out), HeaderSize+RecordSize)
	}
}

func TestPackLayout(t *testing.T) {
	var stats StatVector
	stats[0] = 1 // gp
	stats[2] = 4 // ab
	stats[3] = 1 // r
	stats[4] = 2 // h

	h := NewHeader("Wildcats", "WILDCATS", "02/15/26")
	h.Wins = 24
	h.Losses = 13
	h.Opponent.Stats[0] = 3

	f := &File{
		Header:  h,
		Records: []Record{NewRecord("WILDCATS", "T. Bissetta", ClassDefault, RoleHitter, stats)},
	}
	out, err := f.Pack()
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}

	if got := string(out[0:20]); got != "Wildcats            " {
		t.Errorf("team name bytes = %q", got)
	}
	if out[20] != 0 {
		t.Errorf("separator [20] = 0x%02X, want 0x00", out[20])
	}
	if got := string(out[21:29]); got != "WILDCATS" {
		t.Errorf("team id bytes = %q", got)
	}
	if out[29] != 0 {
		t.Errorf("separator [29] = 0x%02X, want 0x00", out[29])
	}
	if got := string(out[30:38]); got != "02/15/26" {
		t.Errorf("date bytes = %q", got)
	}
	if got := binary.LittleEndian.Uint16(out[40:]); got != 1 {
		t.Errorf("player count = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint16(out[42:]); got != RecordSize {
		t.Errorf("record size = %d, want %d", got, RecordSize)
	}
	if got := binary.LittleEndian.Uint16(out[44:]); got != 24 {
		t.Errorf("wins = %d, want 24", got)
	}
	if got := binary.LittleEndian.Uint16(out[46:]); got != 13 {
		t.Errorf("losses = %d, want 13", got)
	}
	if got := string(out[76:84]); got != "        " {
		t.Errorf("opponent id bytes = %q, want blanks", got)
	}
	if got := string(out[85:97]); got != "Opponents   " {
		t.Errorf("opponent name bytes = %q", got)
	}
	if out[98] != OpponentClassMarker {
		t.Errorf("marker [98] = 0x%02X, want 0x%02X", out[98], OpponentClassMarker)
	}
	if got := binary.LittleEndian.Uint16(out[100:]); got != 3 {
		t.Errorf("opponent gp slot = %d, want 3", got)
	}

	rec := out[HeaderSize:]
	if got := string(rec[0:8]); got != "WILDCATS" {
		t.Errorf("record team id = %q", got)
	}
	if got := string(rec[9:21]); got != "T. Bissetta " {
		t.Errorf("record name bytes = %q", got)
	}
	if rec[22] != ClassDefault {
		t.Errorf("class byte = 0x%02X, want 0x%02X", rec[22], ClassDefault)
	}
	if rec[23] != RoleHitter {
		t.Errorf("role byte = %d, want %d", rec[23], RoleHitter)
	}
	if got := binary.LittleEndian.Uint16(rec[24:]); got != 1 {
		t.Errorf("gp slot = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint16(rec[24+2*2:]); got != 4 {
		t.Errorf("ab slot = %d, want 4", got)
	}
	if got := binary.LittleEndian.Uint16(rec[24+3*2:]); got != 1 {
		t.Errorf("r slot = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint16(rec[24+4*2:]); got != 2 {
		t.Errorf("h slot = %d, want 2", got)
	}
	for i := 5; i < 96; i++ {
		if got := binary.LittleEndian.Uint16(rec[24+i*2:]); got != 0 {
			t.Errorf("slot %d = %d, want 0", i, got)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	var stats StatVector
	for i := range stats {
		stats[i] = uint16(i * 683)
	}

	h := NewHeader("Wildcats", "WILDCATS", "02/15/26")
	h.Wins = 24
	h.ConfLosses = 8
	for i := range h.Opponent.Stats {
		h.Opponent.Stats[i] = uint16(65535 - i)
	}

	f := &File{
		Header: h,
		Records: []Record{
			NewRecord("WILDCATS", "T. Bissetta", ClassByte("SR", 'L', 'R'), RoleHitter, stats),
			NewRecord("WILDCATS", "J. Smith", ClassByte("FR", 'R', 'L'), RolePitcher, StatVector{36: 12, 47: 66}),
		},
	}

	out, err := f.Pack()
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}

	got, err := Unpack(out)
	if err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}

	if got.Header.PlayerCount != 2 {
		t.Errorf("player count = %d, want 2", got.Header.PlayerCount)
	}
	if got.Header.Wins != 24 || got.Header.ConfLosses != 8 {
		t.Errorf("header aggregates = %d/%d, want 24/8", got.Header.Wins, got.Header.ConfLosses)
	}
	if got.Header.Opponent.Stats != h.Opponent.Stats {
		t.Error("opponent vector did not survive the round trip")
	}
	if len(got.Records) != 2 {
		t.Fatalf("record count = %d, want 2", len(got.Records))
	}
	if got.Records[0].Stats != stats {
		t.Error("player vector did not survive the round trip")
	}
	if Text(got.Records[0].Name[:]) != "T. Bissetta" {
		t.Errorf("record name = %q", Text(got.Records[0].Name[:]))
	}
	if got.Records[1].Role != RolePitcher {
		t.Errorf("record role = %d, want %d", got.Records[1].Role, RolePitcher)
	}
	if got.Records[1].Stats[47] != 66 {
		t.Errorf("innings-outs slot = %d, want 66", got.Records[1].Stats[47])
	}
}

func TestUnpackTruncated(t *testing.T) {
	_, err := Unpack(make([]byte, 100))
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("Unpack(100 bytes) error = %v, want ErrTruncated", err)
	}
	if _, err := Unpack(nil); !errors.Is(err, ErrTruncated) {
		t.Fatalf("Unpack(nil) error = %v, want ErrTruncated", err)
	}
}

func TestUnpackIgnoresTrailingBytes(t *testing.T) {
	f := &File{
		Header:  NewHeader("Wildcats", "WILDCATS", "02/15/26"),
		Records: []Record{NewRecord("WILDCATS", "T. Bissetta", ClassDefault, RoleHitter, StatVector{})},
	}
	out, err := f.Pack()
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}

	tests := []struct {
		name  string
		data  []byte
		nRecs int
	}{
		{"exact", out, 1},
		{"five trailing bytes", append(append([]byte{}, out...), 1, 2, 3, 4, 5), 1},
		{"header plus partial record", out[:HeaderSize+RecordSize-1], 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unpack(tt.data)
			if err != nil {
				t.Fatalf("Unpack() error = %v", err)
			}
			if len(got.Records) != tt.nRecs {
				t.Errorf("record count = %d, want %d", len(got.Records), tt.nRecs)
			}
		})
	}
}

func TestClampU16(t *testing.T) {
	tests := []struct {
		in   int
		want uint16
	}{
		{-5, 0},
		{0, 0},
		{42, 42},
		{65535, 65535},
		{70000, 65535},
	}
	for _, tt := range tests {
		if got := ClampU16(tt.in); got != tt.want {
			t.Errorf("ClampU16(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestClassByte(t *testing.T) {
	tests := []struct {
		name   string
		class  string
		bats   byte
		throws byte
		want   byte
	}{
		{"default is junior right-right", "", 0, 0, 0x20},
		{"freshman", "FR", 'R', 'R', 0x08},
		{"sophomore lefty", "SO", 'L', 'L', 0x15},
		{"junior switch", "JR", 'S', 'R', 0x22},
		{"switch spelled B", "JR", 'B', 'R', 0x22},
		{"senior left thrower", "SR", 'R', 'L', 0x44},
		{"unknown class keeps default", "GR", 'R', 'R', 0x20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassByte(tt.class, tt.bats, tt.throws); got != tt.want {
				t.Errorf("ClassByte(%q, %q, %q) = 0x%02X, want 0x%02X", tt.class, tt.bats, tt.throws, got, tt.want)
			}
		})
	}
}

func TestClassName(t *testing.T) {
	if name, ok := ClassName(0x20); !ok || name != "JR" {
		t.Errorf("ClassName(0x20) = %q, %v", name, ok)
	}
	if _, ok := ClassName(0x21); ok {
		t.Error("ClassName(0x21) matched; handedness bits must not have an exact label")
	}
	if _, ok := ClassName(OpponentClassMarker); ok {
		t.Error("ClassName(marker) matched")
	}
}

func TestRoleName(t *testing.T) {
	if name, ok := RoleName(3); !ok || name != "HITTER" {
		t.Errorf("RoleName(3) = %q, %v", name, ok)
	}
	if name, ok := RoleName(1); !ok || name != "PITCHER" {
		t.Errorf("RoleName(1) = %q, %v", name, ok)
	}
	if _, ok := RoleName(37); ok {
		t.Error("RoleName(37) matched; aggregate counts have no label")
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte("Wildcats            "), "Wildcats"},
		{[]byte("T. Bissetta "), "T. Bissetta"},
		{[]byte{'a', 'b', 0, 0}, "ab"},
		{[]byte("        "), ""},
		{[]byte{}, ""},
	}
	for _, tt := range tests {
		if got := Text(tt.in); got != tt.want {
			t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewHeaderFoldsAndTruncates(t *testing.T) {
	h := NewHeader("Los Pumas de José con un nombre larguísimo", "LOSPUMASDEJOSE", "02/15/26")
	if got := Text(h.TeamName[:]); got != "Los Pumas de Jose co" {
		t.Errorf("folded team name = %q", got)
	}
	if got := Text(h.TeamID[:]); got != "LOSPUMAS" {
		t.Errorf("truncated team id = %q", got)
	}
}
