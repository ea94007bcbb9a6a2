// Package season models provider season-export XML as an attribute tree and
// supplies the two provider adapters (TAS, PrestoSports) that abstract their
// schema differences. Lookup is by path search, so wrapper elements and
// unknown attributes in real exports are ignored.
package season

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/golang/glog"
)

// Node is one element of a season document. The nil Node is valid and reads
// as an element with no attributes and no children, which keeps extraction
// code free of presence checks.
type Node struct {
	el *etree.Element
}

// Tag returns the element name, or "" for the nil Node.
func (n *Node) Tag() string {
	if n == nil || n.el == nil {
		return ""
	}
	return n.el.Tag
}

// Attr returns the attribute value, or "" when absent.
func (n *Node) Attr(name string) string {
	if n == nil || n.el == nil {
		return ""
	}
	return n.el.SelectAttrValue(name, "")
}

// HasAttr reports whether the attribute is present at all.
func (n *Node) HasAttr(name string) bool {
	if n == nil || n.el == nil {
		return false
	}
	return n.el.SelectAttr(name) != nil
}

// AttrInt returns the attribute parsed as an integer. Absent or malformed
// values read as 0; malformed ones are only worth a debug line.
func (n *Node) AttrInt(name string) int {
	s := strings.TrimSpace(n.Attr(name))
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		glog.V(2).Infof("season: <%s %s=%q>: not a number, using 0", n.Tag(), name, s)
		return 0
	}
	return v
}

// Child returns the first direct child with the given tag, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil || n.el == nil {
		return nil
	}
	el := n.el.SelectElement(name)
	if el == nil {
		return nil
	}
	return &Node{el: el}
}

// Find returns the first element matching an etree path below this node.
func (n *Node) Find(path string) *Node {
	if n == nil || n.el == nil {
		return nil
	}
	el := n.el.FindElement(path)
	if el == nil {
		return nil
	}
	return &Node{el: el}
}

// FindAll returns every element matching an etree path below this node.
func (n *Node) FindAll(path string) []*Node {
	if n == nil || n.el == nil {
		return nil
	}
	els := n.el.FindElements(path)
	nodes := make([]*Node, 0, len(els))
	for _, el := range els {
		nodes = append(nodes, &Node{el: el})
	}
	return nodes
}

// Document is a parsed season export.
type Document struct {
	root *Node
}

// ParseBytes parses a season export from raw XML bytes.
func ParseBytes(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("season: parse xml: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("season: document has no root element")
	}
	return &Document{root: &Node{el: root}}, nil
}

// ParseFile parses a season export from disk.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("season: read %s: %w", path, err)
	}
	return ParseBytes(data)
}

// Root returns the document's root node.
func (d *Document) Root() *Node { return d.root }

// Source returns the document-level source marker used for adapter
// detection.
func (d *Document) Source() string { return d.root.Attr("source") }

// Date returns the document-level effective date, as written.
func (d *Document) Date() string { return d.root.Attr("date") }

// Team returns the team element, wherever it sits.
func (d *Document) Team() *Node { return d.root.Find("//team") }

// Opponent returns the combined-opponents element, or nil when the export
// has none.
func (d *Document) Opponent() *Node { return d.root.Find("//opponent") }

// Players returns every player element in document order.
func (d *Document) Players() []*Node { return d.root.FindAll(".//player") }

// TeamRecord is the season win/loss line from the team's record element.
type TeamRecord struct {
	Wins       int
	Losses     int
	ConfWins   int
	ConfLosses int
}

// ParseTeamRecord reads the record element under a team. Explicit wins/losses
// attributes win; otherwise "W-L" strings ("record", "confrecord") are
// parsed; anything unreadable is 0.
func ParseTeamRecord(team *Node) TeamRecord {
	rec := team.Child("record")
	var tr TeamRecord
	if rec.HasAttr("wins") || rec.HasAttr("losses") {
		tr.Wins = rec.AttrInt("wins")
		tr.Losses = rec.AttrInt("losses")
	} else {
		tr.Wins, tr.Losses = parseDashPair(rec.Attr("record"))
	}
	if rec.HasAttr("confwins") || rec.HasAttr("conflosses") {
		tr.ConfWins = rec.AttrInt("confwins")
		tr.ConfLosses = rec.AttrInt("conflosses")
	} else {
		tr.ConfWins, tr.ConfLosses = parseDashPair(rec.Attr("confrecord"))
	}
	return tr
}

// parseDashPair splits a "24-13" style record string.
func parseDashPair(s string) (int, int) {
	left, right, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return 0, 0
	}
	w, err := strconv.Atoi(strings.TrimSpace(left))
	if err != nil {
		return 0, 0
	}
	l, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return 0, 0
	}
	return w, l
}

// uniformSortLast is the sort key for players with no usable uniform number.
const uniformSortLast = 999

// UniformKey returns the roster sort key: the uniform number, or 999 when
// missing or unparsable so those players sort last.
func UniformKey(p *Node) int {
	s := strings.TrimSpace(p.Attr("uni"))
	if s == "" {
		return uniformSortLast
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return uniformSortLast
	}
	return v
}

// SortPlayers orders players by ascending uniform number, keeping document
// order for ties.
func SortPlayers(players []*Node) {
	sort.SliceStable(players, func(i, j int) bool {
		return UniformKey(players[i]) < UniformKey(players[j])
	})
}
