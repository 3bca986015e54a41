// Package era classifies simulated years into named historical periods
// and supplies per-era genre heat tables.
//
// The script engine consumes these lookups through the Table interface
// so tests can substitute fixed tables; DefaultTable covers the full
// 1933-2010 timeline.
package era

// Key names a multi-year historical period.
type Key string

const (
	KeyGoldenAge    Key = "golden_age"    // 1933-1948
	KeyTelevision   Key = "television"    // 1949-1962
	KeyNewHollywood Key = "new_hollywood" // 1963-1979
	KeyBlockbuster  Key = "blockbuster"   // 1980-1994
	KeyModern       Key = "modern"        // 1995-2010
)

// Table resolves era classification and genre heat for a year.
type Table interface {
	// KeyForYear classifies a calendar year into an era.
	KeyForYear(year int) Key
	// GenreModifier returns the box-office heat multiplier for a genre
	// in the given year. Unknown genres return 1.0.
	GenreModifier(genre string, year int) float64
	// CensorAdjustment returns the additive censor-risk offset applied
	// to script variations generated in the given year.
	CensorAdjustment(year int) float64
}

// DefaultTable is the built-in era classification covering 1933-2010.
type DefaultTable struct{}

// KeyForYear implements Table.
func (DefaultTable) KeyForYear(year int) Key {
	switch {
	case year <= 1948:
		return KeyGoldenAge
	case year <= 1962:
		return KeyTelevision
	case year <= 1979:
		return KeyNewHollywood
	case year <= 1994:
		return KeyBlockbuster
	default:
		return KeyModern
	}
}

// genreHeat holds per-era genre multipliers. Genres missing from an era
// default to 1.0.
var genreHeat = map[Key]map[string]float64{
	KeyGoldenAge: {
		"drama":   1.1,
		"musical": 1.3,
		"comedy":  1.2,
		"western": 1.1,
		"war":     0.9,
		"horror":  0.8,
	},
	KeyTelevision: {
		"drama":   1.1,
		"musical": 1.1,
		"western": 1.3,
		"noir":    1.2,
		"epic":    1.2,
		"war":     1.0,
	},
	KeyNewHollywood: {
		"drama":    1.3,
		"thriller": 1.2,
		"western":  0.8,
		"musical":  0.7,
		"crime":    1.2,
	},
	KeyBlockbuster: {
		"action":  1.4,
		"sci-fi":  1.3,
		"comedy":  1.1,
		"drama":   1.0,
		"musical": 0.6,
	},
	KeyModern: {
		"action":   1.2,
		"fantasy":  1.3,
		"animated": 1.3,
		"drama":    1.0,
		"comedy":   1.0,
		"western":  0.7,
	},
}

// GenreModifier implements Table.
func (t DefaultTable) GenreModifier(genre string, year int) float64 {
	heat, ok := genreHeat[t.KeyForYear(year)]
	if !ok {
		return 1.0
	}
	modifier, ok := heat[genre]
	if !ok {
		return 1.0
	}
	return modifier
}

// CensorAdjustment implements Table. The Production Code years push
// risk up; the adjustment fades once the ratings system replaces the
// code.
func (t DefaultTable) CensorAdjustment(year int) float64 {
	switch t.KeyForYear(year) {
	case KeyGoldenAge:
		if year >= 1934 {
			return 15
		}
		return 0
	case KeyTelevision:
		return 10
	case KeyNewHollywood:
		if year >= 1968 {
			return -10
		}
		return 0
	default:
		return -20
	}
}
