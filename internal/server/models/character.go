package models

// Relationship values a character may have towards the Doctor.
const (
	RelationshipDoctor    = "doctor"
	RelationshipCompanion = "companion"
	RelationshipEnemy     = "enemy"
	RelationshipOther     = "other"
)

// StateAlive is the state every new character starts with.
const StateAlive = "alive"

// ValidRelationship reports whether r is one of the known relationships.
func ValidRelationship(r string) bool {
	switch r {
	case RelationshipDoctor, RelationshipCompanion, RelationshipEnemy, RelationshipOther:
		return true
	}
	return false
}

type Race struct {
	ID   int64
	Name string
}

type Character struct {
	ID           int64
	Name         string
	Age          int
	State        string
	Relationship string
	RaceID       int64
	PortraitKey  string
}

// Doctor holds the extra attributes of a character whose relationship is "doctor".
type Doctor struct {
	CharacterID int64
	Appearance  string
	Personality string
}

// Enemy holds the extra attributes of a character whose relationship is "enemy".
type Enemy struct {
	CharacterID int64
	Reason      string
}

// CharacterDetails is a character joined with its race, owner and
// relationship-specific row. Doctor and Enemy are nil unless applicable;
// UserID is nil for characters not bound to an account.
type CharacterDetails struct {
	Character
	Race   string
	UserID *int64
	Doctor *Doctor
	Enemy  *Enemy
}
