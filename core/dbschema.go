package core

// Character is the sheet owned by a user (or the DM) on one guild.
// Owner is nil while unclaimed.
type Character struct {
	ID     uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name   string  `json:"name" gorm:"type:text;not null"`
	Server string  `json:"server" gorm:"type:text;not null;uniqueIndex:uniq_character_owner,where:owner <> 'DM'"`
	Owner  *string `json:"user" gorm:"type:text;uniqueIndex:uniq_character_owner"`
	Own    bool    `json:"own" gorm:"-"`

	Information []Information `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Variables   []Variable    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Rolls       []Roll        `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Resources   []Resource    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Spells      []Spell       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Items       []Item        `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (c Character) IsDM() bool {
	return c.Owner != nil && *c.Owner == OwnerDM
}

func (c Character) IsUnowned() bool {
	return c.Owner == nil
}

func (c Character) IsOwnedBy(userID string) bool {
	return c.Owner != nil && *c.Owner == userID
}

type Information struct {
	ID          uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	CharacterID uint    `json:"characterID" gorm:"not null;index"`
	Name        string  `json:"name" gorm:"type:text;not null"`
	Description *string `json:"description" gorm:"type:text"`
	Group       *string `json:"group" gorm:"type:text"`
}

func (Information) TableName() string {
	return "information"
}

type Variable struct {
	ID          uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	CharacterID uint   `json:"characterID" gorm:"not null;uniqueIndex:uniq_variable_name"`
	Name        string `json:"name" gorm:"type:text;not null;uniqueIndex:uniq_variable_name"`
	Value       int    `json:"value" gorm:"type:integer;not null;default:0"`
}

type Roll struct {
	ID          uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	CharacterID uint    `json:"characterID" gorm:"not null;uniqueIndex:uniq_roll_name"`
	Name        string  `json:"name" gorm:"type:text;not null;uniqueIndex:uniq_roll_name"`
	Expression  string  `json:"expression" gorm:"type:text;not null"`
	Group       *string `json:"group" gorm:"type:text"`
}

type Resource struct {
	ID          uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	CharacterID uint   `json:"characterID" gorm:"not null;uniqueIndex:uniq_resource_name"`
	Name        string `json:"name" gorm:"type:text;not null;uniqueIndex:uniq_resource_name"`
	Current     int    `json:"current" gorm:"type:integer;not null;default:0"`
	Max         int    `json:"max" gorm:"type:integer;not null;default:0"`
	Recover     Rest   `json:"recover" gorm:"type:text;not null;default:'long'"`
}

type Spell struct {
	ID          uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	CharacterID uint    `json:"characterID" gorm:"not null;index"`
	Name        string  `json:"name" gorm:"type:text;not null"`
	Level       int     `json:"level" gorm:"type:integer;not null;default:0"`
	Description *string `json:"description" gorm:"type:text"`
	Prepared    bool    `json:"prepared" gorm:"type:boolean;not null;default:false"`
}

type Item struct {
	ID          uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	CharacterID uint    `json:"characterID" gorm:"not null;index"`
	Name        string  `json:"name" gorm:"type:text;not null"`
	Number      int     `json:"number" gorm:"type:integer;not null;default:1"`
	Description *string `json:"description" gorm:"type:text"`
}

func (i Information) RecordID() uint { return i.ID }
func (v Variable) RecordID() uint    { return v.ID }
func (r Roll) RecordID() uint        { return r.ID }
func (r Resource) RecordID() uint    { return r.ID }
func (s Spell) RecordID() uint       { return s.ID }
func (i Item) RecordID() uint        { return i.ID }

// Models lists every table, parents first, for AutoMigrate
func Models() []any {
	return []any{
		&Character{},
		&Information{},
		&Variable{},
		&Roll{},
		&Resource{},
		&Spell{},
		&Item{},
	}
}
