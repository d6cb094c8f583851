package domain

import (
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// SplitSectorHex parses "<Sector Name> <XX><YY>" into the sector name and
// the two hex offsets.
func SplitSectorHex(text string) (name string, x, y int, err error) {
	s := strings.TrimSpace(text)
	if len(s) < 6 || s[len(s)-5] != ' ' {
		return "", 0, 0, sectorHexError(text, "expected \"<sector> <XXYY>\"")
	}
	digits := s[len(s)-4:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return "", 0, 0, sectorHexError(text, "hex must be four digits")
		}
	}
	name = strings.TrimSpace(s[:len(s)-5])
	if name == "" {
		return "", 0, 0, sectorHexError(text, "missing sector name")
	}
	x = int(digits[0]-'0')*10 + int(digits[1]-'0')
	y = int(digits[2]-'0')*10 + int(digits[3]-'0')
	return name, x, y, nil
}

// FormatSectorHex renders the canonical "<Sector Name> <XX><YY>" form.
func FormatSectorHex(name string, x, y int) string {
	return fmt.Sprintf("%s %02d%02d", name, x, y)
}

func sectorHexError(text, reason string) error {
	err := zerr.Wrap(ErrParse, "invalid sector hex")
	err = zerr.With(err, "input", text)
	return zerr.With(err, "reason", reason)
}

// Sector is a named sector and its position in the sector grid.
type Sector struct {
	Name InternedString
	X    int
	Y    int
}

// SectorIndex resolves sector names to sector coordinates and back.
// Name lookups ignore case.
type SectorIndex struct {
	byName map[string]Sector
	byPos  map[[2]int]Sector
}

// NewSectorIndex builds an index. Later entries replace earlier ones with the
// same name or position.
func NewSectorIndex(sectors []Sector) *SectorIndex {
	idx := &SectorIndex{
		byName: make(map[string]Sector, len(sectors)),
		byPos:  make(map[[2]int]Sector, len(sectors)),
	}
	for _, s := range sectors {
		idx.byName[strings.ToLower(s.Name.String())] = s
		idx.byPos[[2]int{s.X, s.Y}] = s
	}
	return idx
}

// Len returns the number of named sectors.
func (idx *SectorIndex) Len() int {
	return len(idx.byName)
}

// Lookup returns the sector with the given name.
func (idx *SectorIndex) Lookup(name string) (Sector, bool) {
	s, ok := idx.byName[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// At returns the sector at the given sector coordinates.
func (idx *SectorIndex) At(sectorX, sectorY int) (Sector, bool) {
	s, ok := idx.byPos[[2]int{sectorX, sectorY}]
	return s, ok
}

// Names returns every sector name in sorted order.
func (idx *SectorIndex) Names() []string {
	names := make([]string, 0, len(idx.byName))
	for _, s := range idx.byName {
		names = append(names, s.Name.String())
	}
	slices.Sort(names)
	return names
}

// Resolve converts "<Sector Name> <XX><YY>" to an absolute hex.
func (idx *SectorIndex) Resolve(text string) (Hex, error) {
	name, x, y, err := SplitSectorHex(text)
	if err != nil {
		return Hex{}, err
	}
	sector, ok := idx.Lookup(name)
	if !ok {
		return Hex{}, zerr.With(zerr.Wrap(ErrUnknownSector, "cannot resolve sector hex"), "sector", name)
	}
	rel := SectorHex{SectorX: sector.X, SectorY: sector.Y, HexX: x, HexY: y}
	if !rel.Valid() {
		return Hex{}, sectorHexError(text, "hex outside sector bounds")
	}
	return RelativeToAbsolute(rel), nil
}

// Format renders an absolute hex as "<Sector Name> <XX><YY>". Hexes in
// sectors missing from the index use "<sx>,<sy>" as the sector name.
func (idx *SectorIndex) Format(h Hex) string {
	rel := AbsoluteToRelative(h)
	name := fmt.Sprintf("%d,%d", rel.SectorX, rel.SectorY)
	if s, ok := idx.At(rel.SectorX, rel.SectorY); ok {
		name = s.Name.String()
	}
	return FormatSectorHex(name, rel.HexX, rel.HexY)
}
