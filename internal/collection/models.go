// Package collection is the local destination store: note types with
// ordered field lists, hierarchical decks, notes, and a media directory.
// It stands in for the host application's collection database.
package collection

import (
	"encoding/json"
	"time"
)

// NoteType is a destination schema: a named, ordered sequence of field
// names that notes bind to.
type NoteType struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"uniqueIndex;not null"`
	FieldsJSON string `gorm:"not null"`
	CreatedAt  time.Time
}

// Fields returns the ordered field names.
func (nt *NoteType) Fields() []string {
	var fields []string
	json.Unmarshal([]byte(nt.FieldsJSON), &fields)
	return fields
}

// SetFields replaces the ordered field names.
func (nt *NoteType) SetFields(fields []string) {
	data, _ := json.Marshal(fields)
	nt.FieldsJSON = string(data)
}

// Deck is one node of the deck hierarchy. Name is the full "::"-separated
// path; parents are stored as their own rows.
type Deck struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

// Note is one created card record bound to a note type and a deck.
type Note struct {
	ID         uint   `gorm:"primaryKey"`
	GUID       string `gorm:"uniqueIndex;not null"`
	NoteTypeID uint   `gorm:"not null;index"`
	DeckID     uint   `gorm:"not null;index"`
	FieldsJSON string `gorm:"not null"`
	CreatedAt  time.Time
}

// FieldValues returns the note's field values in schema order.
func (n *Note) FieldValues() []string {
	var values []string
	json.Unmarshal([]byte(n.FieldsJSON), &values)
	return values
}
