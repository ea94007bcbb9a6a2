// Package extract walks season-export elements into the 96-slot stat vector
// of a CAP record. The self-context pass covers batting, fielding, and
// hitting-situation fields; the pitching pass routes a pitching line and its
// situational pairs through the opponent-context table. Missing or
// malformed source values read as 0, and everything written is clamped to
// the uint16 range.
package extract

import (
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/beaumcc/cap-generator/pkg/capfile"
	"github.com/beaumcc/cap-generator/pkg/season"
	"github.com/beaumcc/cap-generator/pkg/statmap"
)

// Simple counting attributes copied straight through the self-context table,
// keyed by the child element that carries them.
var (
	hittingFields  = []string{"ab", "r", "h", "rbi", "double", "triple", "hr", "bb", "sb", "cs", "hbp", "sh", "sf", "so", "kl", "gdp", "hitdp", "ibb", "picked"}
	fieldingFields = []string{"po", "a", "e", "pb", "indp", "csb", "sba", "ci"}
	hsitFields     = []string{"rcherr", "rchfc", "ground", "fly", "adv", "lob"}

	// Pair fields: "<made>,<opportunities>" attributes.
	hsitPairs = []string{"w2outs", "wrunners", "wrbiops", "vsleft", "rbi3rd", "advops", "leadoff", "wloaded"}
	psitPairs = []string{"leadoff", "wrunners", "vsleft", "w2outs"}
)

// Player extracts one player element. isPitcher is the adapter's role
// decision: pitcher records keep 0 in the gp/gs slots, the legacy display
// behavior. The pitching pass itself runs whenever a pitching child exists,
// so a position player who pitched an inning keeps that line.
func Player(p *season.Node, adapter season.Adapter, isPitcher bool) capfile.StatVector {
	var b builder
	b.selfPass(p, !isPitcher, false)
	b.pitchingPass(p, adapter)
	return b.v
}

// Opponent extracts the combined-opponents totals into the header's
// pseudo-record vector: a self-context pass over the totals (with its gp/gs,
// with sh mirrored to the reused slot 26, and with picked skipped because of
// that reuse), the pitching pass, and the appearances slot overridden by the
// adapter's rule.
func Opponent(totals *season.Node, adapter season.Adapter) capfile.StatVector {
	var b builder
	b.selfPass(totals, true, true)
	b.pitchingPass(totals, adapter)
	b.set(statmap.Opponent, "p_appear", adapter.OpponentAppearances(totals.Child("pitching"), totals))
	return b.v
}

type builder struct {
	v capfile.StatVector
}

func (b *builder) set(ctx statmap.Context, name string, value int) {
	idx, ok := statmap.Slot(ctx, name)
	if !ok {
		glog.V(2).Infof("extract: no %s slot for %q, dropping %d", ctx, name, value)
		return
	}
	b.v[idx] = capfile.ClampU16(value)
}

func (b *builder) selfPass(n *season.Node, withGames, opponentTotals bool) {
	if withGames {
		b.set(statmap.Self, "gp", n.AttrInt("gp"))
		b.set(statmap.Self, "gs", n.AttrInt("gs"))
	}

	hitting := n.Child("hitting")
	for _, name := range hittingFields {
		if opponentTotals && name == "picked" {
			// Slot 26 carries the opponents' sacrifice hits instead.
			continue
		}
		b.set(statmap.Self, name, hitting.AttrInt(name))
	}
	if opponentTotals {
		b.set(statmap.Opponent, "h_sh(opp)", hitting.AttrInt("sh"))
	}

	fielding := n.Child("fielding")
	for _, name := range fieldingFields {
		b.set(statmap.Self, name, fielding.AttrInt(name))
	}

	hs := n.Child("hsitsummary")
	for _, name := range hsitFields {
		b.set(statmap.Self, name, hs.AttrInt(name))
	}
	b.set(statmap.Self, "rbi_2out", hs.AttrInt("rbi-2out"))
	for _, name := range hsitPairs {
		made, opp := ParsePair(hs.Attr(name))
		b.set(statmap.Self, name+"_made", int(made))
		b.set(statmap.Self, name+"_opp", int(opp))
	}
}

func (b *builder) pitchingPass(parent *season.Node, adapter season.Adapter) {
	pitching := parent.Child("pitching")
	if pitching == nil {
		return
	}

	b.set(statmap.Opponent, "p_appear", pitching.AttrInt("appear"))
	b.set(statmap.Opponent, "p_win/gs", pitching.AttrInt("gs"))
	b.set(statmap.Opponent, "p_loss/gf", adapter.GamesFinished(pitching))
	b.set(statmap.Opponent, "p_cg", pitching.AttrInt("cg"))
	b.set(statmap.Opponent, "p_sho_raw", pitching.AttrInt("sho"))
	b.set(statmap.Opponent, "p_sho/cbo", pitching.AttrInt("cbo"))
	b.set(statmap.Opponent, "p_bf", pitching.AttrInt("bf"))
	b.set(statmap.Opponent, "p_ab", pitching.AttrInt("ab"))
	b.set(statmap.Opponent, "p_ip_outs", int(InningsOuts(pitching.Attr("ip"))))
	b.set(statmap.Opponent, "p_h", pitching.AttrInt("h"))
	b.set(statmap.Opponent, "p_r", pitching.AttrInt("r"))
	b.set(statmap.Opponent, "p_er", pitching.AttrInt("er"))
	b.set(statmap.Opponent, "p_bb", pitching.AttrInt("bb"))
	b.set(statmap.Opponent, "p_k", pitching.AttrInt("so"))
	b.set(statmap.Opponent, "p_kl", pitching.AttrInt("kl"))

	// Wild pitches land twice: the plain count, plus the legacy high-byte
	// packing at slot 57, clamped after the shift.
	wp := pitching.AttrInt("wp")
	b.set(statmap.Opponent, "p_wp", wp)
	b.set(statmap.Opponent, "p_wp_shifted", wp*256)

	b.set(statmap.Opponent, "p_bk", pitching.AttrInt("bk"))
	b.set(statmap.Opponent, "p_hbp", pitching.AttrInt("hbp"))
	b.set(statmap.Opponent, "p_double", pitching.AttrInt("double"))
	b.set(statmap.Opponent, "p_triple", pitching.AttrInt("triple"))
	b.set(statmap.Opponent, "p_hr", pitching.AttrInt("hr"))
	b.set(statmap.Opponent, "ps_ground", pitching.AttrInt("ground"))
	b.set(statmap.Opponent, "ps_fly", pitching.AttrInt("fly"))
	b.set(statmap.Opponent, "p_pickoff", pitching.AttrInt("pickoff"))
	b.set(statmap.Opponent, "p_sha", pitching.AttrInt("sha"))
	b.set(statmap.Opponent, "p_sfa", pitching.AttrInt("sfa"))

	ps := parent.Child("psitsummary")
	for _, name := range psitPairs {
		made, opp := ParsePair(ps.Attr(name))
		b.set(statmap.Opponent, "ps_"+name+"_made", int(made))
		b.set(statmap.Opponent, "ps_"+name+"_opp", int(opp))
	}
}

// ParsePair splits a "<made>,<opportunities>" attribute. Each side parses
// and clamps independently, so one bad token never poisons the other; a
// bare value carries zero opportunities.
func ParsePair(s string) (made, opp uint16) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0
	}
	parts := strings.Split(s, ",")
	made = clampAtoi(parts[0])
	if len(parts) > 1 {
		opp = clampAtoi(parts[1])
	}
	return made, opp
}

// InningsOuts converts an innings-pitched string "<innings>.<thirds>" to
// total outs (innings*3 + thirds). A bare integer is whole innings;
// malformed strings convert to 0.
func InningsOuts(s string) uint16 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	innings, err := strconv.Atoi(whole)
	if err != nil || innings < 0 {
		return 0
	}
	thirds := 0
	if hasFrac {
		thirds, err = strconv.Atoi(frac)
		if err != nil || thirds < 0 {
			return 0
		}
	}
	return capfile.ClampU16(innings*3 + thirds)
}

func clampAtoi(s string) uint16 {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return capfile.ClampU16(v)
}
