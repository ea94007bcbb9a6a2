// Package convert turns season-export XML files into CAP files and CAP
// files into text reports, one file at a time or as an ordered batch. Each
// conversion is a pure transform of its input; output is written through a
// temp file and renamed into place so no partial file is ever observable.
package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/beaumcc/cap-generator/pkg/capfile"
	"github.com/beaumcc/cap-generator/pkg/extract"
	"github.com/beaumcc/cap-generator/pkg/names"
	"github.com/beaumcc/cap-generator/pkg/report"
	"github.com/beaumcc/cap-generator/pkg/season"
)

// Options controls conversion behavior for a whole run.
type Options struct {
	// OutDir receives converted files; empty means alongside each input.
	OutDir string

	// Adapter forces a provider adapter; nil detects per document.
	Adapter season.Adapter

	// AggregateRoles stores the team games-played count in each record's
	// role byte instead of the hitter/pitcher flag.
	AggregateRoles bool
}

// MissingFieldError reports a season-document field the CAP format cannot
// do without. It fails that one file's conversion; the batch keeps going.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing required " + e.Field
}

// EncodeFile converts one season-export XML file to its CAP form and
// returns the output path and byte count.
func EncodeFile(path string, opts Options) (string, int, error) {
	doc, err := season.ParseFile(path)
	if err != nil {
		return "", 0, err
	}

	adapter := opts.Adapter
	if adapter == nil {
		adapter = season.Detect(doc)
	}

	file, err := Build(doc, adapter, opts.AggregateRoles)
	if err != nil {
		return "", 0, err
	}

	data, err := file.Pack()
	if err != nil {
		return "", 0, err
	}

	out := outputPath(path, opts.OutDir, ".cap")
	if err := writeFileAtomic(out, data); err != nil {
		return "", 0, err
	}
	glog.V(1).Infof("convert: %s -> %s (%d records, adapter %s)", path, out, len(file.Records), adapter.Name())
	return out, len(data), nil
}

// DecodeFile renders one CAP file as its labeled text report and returns
// the output path and byte count.
func DecodeFile(path string, opts Options) (string, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("convert: read %s: %w", path, err)
	}

	file, err := capfile.Unpack(data)
	if err != nil {
		return "", 0, err
	}
	if int(file.Header.PlayerCount) != len(file.Records) {
		glog.Warningf("convert: %s: header says %d players, found %d records", path, file.Header.PlayerCount, len(file.Records))
	}

	text := report.Render(file, path, len(data))
	out := outputPath(path, opts.OutDir, ".txt")
	if err := writeFileAtomic(out, []byte(text)); err != nil {
		return "", 0, err
	}
	return out, len(text), nil
}

// Build assembles the CAP file for one parsed season document: header
// aggregates from the team record and totals, the embedded opponent vector,
// and one record per appearing player in uniform-number order.
func Build(doc *season.Document, adapter season.Adapter, aggregateRoles bool) (*capfile.File, error) {
	team := doc.Team()
	if team == nil {
		return nil, &MissingFieldError{Field: "team element"}
	}
	teamName := strings.TrimSpace(team.Attr("name"))
	teamID := strings.TrimSpace(team.Attr("id"))
	if teamName == "" || teamID == "" {
		return nil, &MissingFieldError{Field: "team name/id"}
	}

	header := capfile.NewHeader(teamName, teamID, capDate(doc.Date()))

	rec := season.ParseTeamRecord(team)
	header.Wins = capfile.ClampU16(rec.Wins)
	header.Losses = capfile.ClampU16(rec.Losses)
	header.ConfWins = capfile.ClampU16(rec.ConfWins)
	header.ConfLosses = capfile.ClampU16(rec.ConfLosses)

	totals := team.Child("totals")
	fielding := totals.Child("fielding")
	header.FieldINDP = capfile.ClampU16(fielding.AttrInt("indp"))
	header.FieldSBA = capfile.ClampU16(fielding.AttrInt("sba"))
	header.FieldCSB = capfile.ClampU16(fielding.AttrInt("csb"))
	pitching := totals.Child("pitching")
	header.PitchSHO = capfile.ClampU16(pitching.AttrInt("sho"))
	header.PitchCBO = capfile.ClampU16(pitching.AttrInt("cbo"))

	// A document without an opponent section keeps the all-zero vector.
	header.Opponent.Stats = extract.Opponent(doc.Opponent().Child("totals"), adapter)

	all := doc.Players()
	players := make([]*season.Node, 0, len(all))
	for _, p := range all {
		if adapter.Appeared(p) {
			players = append(players, p)
		}
	}
	season.SortPlayers(players)

	teamGP := team.AttrInt("gp")
	if teamGP == 0 {
		teamGP = totals.AttrInt("gp")
	}

	file := &capfile.File{Header: header}
	for _, p := range players {
		name := strings.TrimSpace(p.Attr("name"))
		if name == "" {
			return nil, &MissingFieldError{Field: "player name"}
		}
		pitcher := adapter.IsPitcher(p)

		role := capfile.RoleHitter
		if pitcher {
			role = capfile.RolePitcher
		}
		if aggregateRoles {
			role = clampByte(teamGP)
		}

		bats, throws := adapter.Hands(p)
		file.Records = append(file.Records, capfile.NewRecord(
			teamID,
			names.Abbreviate(name, p.Attr("checkname")),
			capfile.ClassByte(adapter.Class(p), bats, throws),
			role,
			extract.Player(p, adapter, pitcher),
		))
	}
	glog.V(1).Infof("convert: %q keeps %d of %d players (adapter %s)", teamName, len(file.Records), len(all), adapter.Name())
	return file, nil
}

// capDate converts the document date attribute ("M/D/YYYY" and friends) to
// the header's MM/DD/YY form. Anything unreadable becomes 01/01/00.
func capDate(s string) string {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return "01/01/00"
	}
	nums := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return "01/01/00"
		}
		nums[i] = v
	}
	return fmt.Sprintf("%02d/%02d/%02d", nums[0], nums[1], nums[2]%100)
}

func clampByte(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

// outputPath derives the converted file's path: the input's base name with
// the new extension, next to the input unless an output directory is set.
func outputPath(in, outDir, ext string) string {
	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + ext
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(in)
	}
	return filepath.Join(dir, base)
}

// writeFileAtomic writes data through a temp file in the destination
// directory and renames it into place, so a failed conversion never leaves
// a partial output behind.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("convert: create output directory: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("convert: create %s: %w", tmp, err)
	}
	defer func() {
		f.Close()
		os.Remove(tmp)
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("convert: write %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("convert: close %s: %w", tmp, err)
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("convert: replace %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("convert: rename %s: %w", tmp, err)
	}
	return nil
}
