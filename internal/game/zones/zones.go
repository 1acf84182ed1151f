// Package zones defines the canonical zone model: an ordered path of one or
// two segments identifying where a card resides. Central areas form a closed
// set; numbered locale areas are created by players as the game goes on.
package zones

import (
	"sort"
	"strconv"
	"strings"
)

// Zone is an ordered path of 1-2 segments. Examples:
//
//	Zone{"hq"}              central hand area
//	Zone{"locale", "3"}     numbered locale area
//	Zone{"rig", "program"}  rig area, subdivided by card type
type Zone []string

// Area path heads.
const (
	AreaHQ       = "hq"       // hand area
	AreaRD       = "rd"       // deck area
	AreaArchives = "archives" // discard area
	AreaSites    = "sites"    // location area
	AreaLocale   = "locale"   // numbered player-created area
	AreaRig      = "rig"      // permanent play area, keyed by card type
)

// centralNames maps the closed set of central areas to display names.
var centralNames = map[string]string{
	AreaHQ:       "HQ",
	AreaRD:       "R&D",
	AreaArchives: "Archives",
	AreaSites:    "Sites",
}

// centralSortKeys orders central zones ahead of every locale zone.
var centralSortKeys = map[string]int{
	AreaSites:    -4,
	AreaArchives: -3,
	AreaRD:       -2,
	AreaHQ:       -1,
}

// Locale builds the zone path for the locale with the given index.
func Locale(n int) Zone {
	return Zone{AreaLocale, strconv.Itoa(n)}
}

// IsCentral reports whether z is one of the fixed central areas.
func (z Zone) IsCentral() bool {
	if len(z) != 1 {
		return false
	}
	_, ok := centralNames[z[0]]
	return ok
}

// IsParty reports whether z is a numbered locale zone.
func (z Zone) IsParty() bool {
	if len(z) != 2 || z[0] != AreaLocale {
		return false
	}
	n, err := strconv.Atoi(z[1])
	return err == nil && n > 0
}

// Index returns the numeric index of a locale zone.
func (z Zone) Index() (int, bool) {
	if !z.IsParty() {
		return 0, false
	}
	n, _ := strconv.Atoi(z[1])
	return n, true
}

// Name returns the display name of the zone. Unrecognized encodings yield
// ok=false rather than an error; callers treat absence as "not a zone of
// this kind".
func (z Zone) Name() (string, bool) {
	if z.IsCentral() {
		return centralNames[z[0]], true
	}
	if n, ok := z.Index(); ok {
		return "Locale " + strconv.Itoa(n), true
	}
	return "", false
}

// SortKey returns the ordering key for the zone: central zones carry fixed
// negative keys (Sites < Archives < R&D < HQ), locale zones sort by ascending
// index and always rank after every central zone.
func (z Zone) SortKey() (int, bool) {
	if z.IsCentral() {
		return centralSortKeys[z[0]], true
	}
	if n, ok := z.Index(); ok {
		return n, true
	}
	return 0, false
}

// Equal reports whether two zone paths are identical.
func (z Zone) Equal(other Zone) bool {
	if len(z) != len(other) {
		return false
	}
	for i := range z {
		if z[i] != other[i] {
			return false
		}
	}
	return true
}

// Key returns a stable string form of the path, usable as a map key.
func (z Zone) Key() string {
	return strings.Join(z, ":")
}

func (z Zone) String() string {
	if name, ok := z.Name(); ok {
		return name
	}
	return z.Key()
}

// Copy returns an independent copy of the path.
func (z Zone) Copy() Zone {
	if z == nil {
		return nil
	}
	cpy := make(Zone, len(z))
	copy(cpy, z)
	return cpy
}

// CentralToZone maps a semantic placement intent to its canonical zone path.
// Unrecognized intents yield ok=false, never an error.
func CentralToZone(intent string) (Zone, bool) {
	switch intent {
	case "location":
		return Zone{AreaSites}, true
	case "discard":
		return Zone{AreaArchives}, true
	case "hand":
		return Zone{AreaHQ}, true
	case "deck":
		return Zone{AreaRD}, true
	}
	return nil, false
}

// TypeToRigZone builds the two-segment rig zone for a card type placed into
// a side's permanent play area.
func TypeToRigZone(cardType string) Zone {
	return Zone{AreaRig, strings.ToLower(cardType)}
}

// LocaleType classifies a zone as "central" or "locale". Anything else is
// absent.
func LocaleType(z Zone) (string, bool) {
	switch {
	case z.IsCentral():
		return "central", true
	case z.IsParty():
		return "locale", true
	}
	return "", false
}

// SortedZoneNames returns the display names of the recognized zones, ordered
// by sort key. Zones without a sort key are dropped.
func SortedZoneNames(zs []Zone) []string {
	type keyed struct {
		key  int
		name string
	}
	recognized := make([]keyed, 0, len(zs))
	for _, z := range zs {
		key, ok := z.SortKey()
		if !ok {
			continue
		}
		name, ok := z.Name()
		if !ok {
			continue
		}
		recognized = append(recognized, keyed{key: key, name: name})
	}
	sort.SliceStable(recognized, func(i, j int) bool {
		return recognized[i].key < recognized[j].key
	})
	names := make([]string, len(recognized))
	for i, k := range recognized {
		names[i] = k.name
	}
	return names
}
