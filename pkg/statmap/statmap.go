// Package statmap defines the mapping between semantic stat names and the
// 96 uint16 slots of a CAP record. The legacy format reuses slot numbers for
// unrelated fields depending on record context, so two disjoint tables exist:
// the self-context table (players, team totals) and the opponent-context
// table (the season opponents pseudo-record and per-pitcher pitching lines).
package statmap

import "fmt"

// SlotCount is the number of uint16 stat slots in every record.
const SlotCount = 96

// Context selects which of the two field tables a name resolves against.
type Context int

const (
	Self Context = iota
	Opponent
)

func (c Context) String() string {
	switch c {
	case Self:
		return "self"
	case Opponent:
		return "opponent"
	default:
		return "unknown"
	}
}

// Field binds one semantic stat name to a slot index.
type Field struct {
	Name string
	Slot int
}

// SelfFields is the self-context table in canonical order. The order is
// significant: decode labels are emitted in table order.
var SelfFields = []Field{
	{"gp", 0}, {"gs", 1},
	{"ab", 2}, {"r", 3}, {"h", 4}, {"rbi", 5},
	{"double", 6}, {"triple", 7}, {"hr", 8},
	{"bb", 9}, {"sb", 10}, {"cs", 11},
	{"hbp", 12}, {"sh", 13}, {"sf", 14},
	{"so", 16}, {"kl", 17}, {"gdp", 18}, {"hitdp", 19},
	{"ibb", 21},

	// hitting situation summary
	{"rcherr", 22}, {"rchfc", 23}, {"ground", 24}, {"fly", 25},
	{"picked", 26},

	// fielding
	{"po", 27}, {"a", 28}, {"e", 29}, {"pb", 30}, {"indp", 31},
	{"csb", 33}, {"sba", 34}, {"ci", 35},

	// pair fields (opportunities slot, then made slot)
	{"w2outs_opp", 67}, {"w2outs_made", 68},
	{"wrunners_opp", 69}, {"wrunners_made", 70},
	{"wrbiops_opp", 71}, {"wrbiops_made", 72},
	{"vsleft_opp", 73}, {"vsleft_made", 74},
	{"rbi3rd_opp", 75}, {"rbi3rd_made", 76},
	{"advops_opp", 77}, {"advops_made", 78},

	{"adv", 79}, {"lob", 80},

	{"leadoff_opp", 81}, {"leadoff_made", 82},
	{"pinchhit_opp", 83}, {"pinchhit_made", 84},

	{"rbi_2out", 85},

	{"wloaded_opp", 92}, {"wloaded_made", 93},
}

// OpponentFields is the opponent-context table in canonical order. Names
// with slashes mark slots the legacy tooling reused for two fields across
// its lifetime; both meanings survive here as one label.
var OpponentFields = []Field{
	{"h_sh(opp)", 26},

	{"p_appear", 36}, {"p_win/gs", 37}, {"p_loss/gf", 38}, {"p_cg", 39},
	{"p_sho_raw", 40}, {"p_sho/cbo", 41}, {"p_bf", 42}, {"p_ab", 43},
	{"p_2b/win", 44}, {"p_loss2", 45}, {"p_save", 46}, {"p_ip_outs", 47},
	{"p_h", 48}, {"p_r", 49}, {"p_er", 50}, {"p_bb", 51},
	{"p_k", 52}, {"p_kl", 53},
	{"p_wp", 54}, {"p_bk", 55}, {"p_hbp", 56}, {"p_wp_shifted", 57},
	{"p_double", 58}, {"p_triple", 59}, {"p_hr", 60},
	{"ps_ground", 61}, {"ps_fly", 62}, {"p_pickoff", 63},
	{"p_sha", 65}, {"p_sfa", 66},

	// situational pitching pairs (opportunities slot, then made slot)
	{"ps_leadoff_opp", 86}, {"ps_leadoff_made", 87},
	{"ps_wrunners_opp", 88}, {"ps_wrunners_made", 89},
	{"ps_vsleft_opp", 90}, {"ps_vsleft_made", 91},
	{"ps_w2outs_opp", 94}, {"ps_w2outs_made", 95},
}

var (
	selfSlots     map[string]int
	opponentSlots map[string]int
	slotLabels    [SlotCount][]string
)

func init() {
	selfSlots = make(map[string]int, len(SelfFields))
	opponentSlots = make(map[string]int, len(OpponentFields))
	for _, f := range SelfFields {
		selfSlots[f.Name] = f.Slot
		slotLabels[f.Slot] = append(slotLabels[f.Slot], f.Name)
	}
	for _, f := range OpponentFields {
		opponentSlots[f.Name] = f.Slot
		slotLabels[f.Slot] = append(slotLabels[f.Slot], f.Name)
	}
}

// Slot resolves a stat name in the given context. The second return is false
// when the name is not part of that context's table.
func Slot(ctx Context, name string) (int, bool) {
	var idx int
	var ok bool
	switch ctx {
	case Self:
		idx, ok = selfSlots[name]
	case Opponent:
		idx, ok = opponentSlots[name]
	}
	return idx, ok
}

// Label returns every name bound to a slot, self-context names first,
// comma-joined. Slots with no binding report an explicit unmapped marker so
// decode output never hides a populated slot.
func Label(slot int) string {
	if slot < 0 || slot >= SlotCount || len(slotLabels[slot]) == 0 {
		return fmt.Sprintf("(unmapped:%d)", slot)
	}
	s := slotLabels[slot][0]
	for _, name := range slotLabels[slot][1:] {
		s += ", " + name
	}
	return s
}
