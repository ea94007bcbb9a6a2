package season

import "strings"

// Adapter supplies the provider-specific rules the extractor cannot infer
// from the tree alone. Exactly two variants exist; the set is closed.
type Adapter interface {
	Name() string

	// IsPitcher decides the record's role byte.
	IsPitcher(player *Node) bool

	// GamesFinished reads or derives the pitcher's games-finished count
	// from a pitching element.
	GamesFinished(pitching *Node) int

	// OpponentAppearances supplies the appearances slot of the combined
	// opponents pseudo-record.
	OpponentAppearances(pitching, totals *Node) int

	// Appeared is the roster-inclusion filter.
	Appeared(player *Node) bool

	// Class returns the normalized class year (FR, SO, JR, SR) or "" when
	// the source has none.
	Class(player *Node) string

	// Hands returns the bats/throws letters (R, L, S), 0 when unknown.
	Hands(player *Node) (bats, throws byte)
}

// The two provider adapters.
var (
	TAS          Adapter = tasAdapter{}
	PrestoSports Adapter = prestoAdapter{}
)

// Detect selects the adapter from the document's source marker. Anything
// that does not declare PrestoSports is treated as TAS, including documents
// with no marker at all.
func Detect(d *Document) Adapter {
	if strings.Contains(d.Source(), "PrestoSports") {
		return PrestoSports
	}
	return TAS
}

// ByName resolves a configured adapter override.
func ByName(name string) (Adapter, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tas":
		return TAS, true
	case "presto", "prestosports":
		return PrestoSports, true
	}
	return nil, false
}

type tasAdapter struct{}

func (tasAdapter) Name() string { return "TAS" }

func (tasAdapter) IsPitcher(player *Node) bool {
	pos := player.Attr("pos")
	if pos == "" {
		pos = player.Attr("position")
	}
	switch strings.ToUpper(strings.TrimSpace(pos)) {
	case "P", "RHP", "LHP":
		return true
	}
	return false
}

func (tasAdapter) GamesFinished(pitching *Node) int {
	return pitching.AttrInt("gf")
}

func (tasAdapter) OpponentAppearances(pitching, totals *Node) int {
	return pitching.AttrInt("appear")
}

func (tasAdapter) Appeared(player *Node) bool {
	return player.AttrInt("gp") > 0
}

func (tasAdapter) Class(player *Node) string {
	return normalizeClass(player.Attr("class"))
}

func (tasAdapter) Hands(player *Node) (byte, byte) {
	return handLetter(player.Attr("bats")), handLetter(player.Attr("throws"))
}

type prestoAdapter struct{}

func (prestoAdapter) Name() string { return "PrestoSports" }

func (prestoAdapter) IsPitcher(player *Node) bool {
	return player.Child("pitching").AttrInt("appear") > 0
}

func (prestoAdapter) GamesFinished(pitching *Node) int {
	gf := pitching.AttrInt("appear") - pitching.AttrInt("gs")
	if gf < 0 {
		return 0
	}
	return gf
}

func (prestoAdapter) OpponentAppearances(pitching, totals *Node) int {
	return totals.AttrInt("gp")
}

func (prestoAdapter) Appeared(player *Node) bool {
	return player.AttrInt("gp") > 0 || player.Child("pitching").AttrInt("appear") > 0
}

func (prestoAdapter) Class(player *Node) string {
	return normalizeClass(player.Attr("year"))
}

// Hands always reports the default; PrestoSports exports carry no
// handedness data.
func (prestoAdapter) Hands(player *Node) (byte, byte) {
	return 0, 0
}

// normalizeClass maps provider class spellings ("FR", "Fr.", "freshman"
// abbreviations vary) onto the four canonical year codes.
func normalizeClass(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimRight(s, ".")
	if len(s) > 2 {
		s = s[:2]
	}
	switch s {
	case "FR", "SO", "JR", "SR":
		return s
	}
	return ""
}

// handLetter reduces a bats/throws attribute to its first letter.
func handLetter(s string) byte {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	return s[0]
}
