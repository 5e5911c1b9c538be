package models

import "time"

// Unit represents a top-level organizational unit of the company.
type Unit string

const (
	UnitParamos Unit = "Paramos burys"
	UnitRIS     Unit = "Rysiu ir informaciniu sistemu burys"
	UnitValdymo Unit = "Valdymo grupe"
)

// Valid returns true when the unit is a supported value.
func (u Unit) Valid() bool {
	switch u {
	case UnitParamos, UnitRIS, UnitValdymo:
		return true
	default:
		return false
	}
}

// RequiresSubUnit reports whether soldiers assigned to the unit must carry a sub-unit.
func (u Unit) RequiresSubUnit() bool {
	return u == UnitRIS
}

// SubUnits maps each primary unit to its allowed sub-units.
var SubUnits = map[Unit][]string{
	UnitRIS: {
		"RIS burys",
		"LAN/WAN skyrius",
		"Videotelekonferencijos skyrius",
		"Laidinio rysio skyrius",
		"Kompiuteriniui tinklu skyrius",
		"1 rysiu skyrius",
		"2 rysiu skyrius",
		"Vartotoju aptarnavimo skyrius",
	},
	UnitParamos: {
		"Generatoriu technikas",
		"Elektros technikas",
		"Automobiliu technikas",
		"Materialiniu daiktu technikas",
		"Burio vadas",
	},
	UnitValdymo: {
		"Administratorius(-e)",
		"Kuopininkas",
		"Kuopos vadas",
		"Kuopos vado pavaduotojas",
	},
}

// ValidSubUnit reports whether the sub-unit belongs to the given primary unit.
func ValidSubUnit(unit Unit, subUnit string) bool {
	for _, s := range SubUnits[unit] {
		if s == subUnit {
			return true
		}
	}
	return false
}

// Soldier represents a member of the company roster.
type Soldier struct {
	ID           string    `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"firstName"`
	LastName     string    `db:"last_name" json:"lastName"`
	MilitaryRank string    `db:"military_rank" json:"militaryRank"`
	JoinDate     time.Time `db:"join_date" json:"joinDate"`
	PrimaryUnit  Unit      `db:"primary_unit" json:"primaryUnit"`
	SubUnit      *string   `db:"sub_unit" json:"subUnit,omitempty"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// SoldierFilter defines listing filters for the roster.
type SoldierFilter struct {
	PrimaryUnit string
	SubUnit     string
}
