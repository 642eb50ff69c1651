package collection

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultNoteTypeName is seeded into an empty collection so a fresh
// install can import without any manual schema setup.
const DefaultNoteTypeName = "Multiple Choice (AI)"

var defaultNoteTypeFields = []string{"Question", "Multiple Choice", "Correct Answers", "Extra"}

// ErrNoteTypeNotFound is returned when a note type name does not resolve.
var ErrNoteTypeNotFound = errors.New("note type not found")

// Store wraps the collection database and its media directory.
type Store struct {
	db       *gorm.DB
	mediaDir string
}

// Open opens (or creates) the collection at path. The media directory
// lives next to the database as "<name>.media".
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open collection %s: %w", path, err)
	}
	if err := db.AutoMigrate(&NoteType{}, &Deck{}, &Note{}); err != nil {
		return nil, fmt.Errorf("failed to migrate collection schema: %w", err)
	}

	mediaDir := strings.TrimSuffix(path, filepath.Ext(path)) + ".media"
	s := &Store{db: db, mediaDir: mediaDir}
	if err := s.ensureMediaDir(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NoteTypes enumerates all note types in creation order.
func (s *Store) NoteTypes() ([]NoteType, error) {
	var types []NoteType
	if err := s.db.Order("id").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// NoteTypeByName looks up one note type.
func (s *Store) NoteTypeByName(name string) (*NoteType, error) {
	var nt NoteType
	err := s.db.Where("name = ?", name).First(&nt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrNoteTypeNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return &nt, nil
}

// CreateNoteType adds a new schema with the given ordered fields.
func (s *Store) CreateNoteType(name string, fields []string) (*NoteType, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	nt := &NoteType{Name: name, FieldsJSON: string(data)}
	if err := s.db.Create(nt).Error; err != nil {
		return nil, fmt.Errorf("failed to create note type %q: %w", name, err)
	}
	return nt, nil
}

// EnsureDefaultNoteType seeds the default MCQ note type when the
// collection has none, and returns it either way.
func (s *Store) EnsureDefaultNoteType() (*NoteType, error) {
	nt, err := s.NoteTypeByName(DefaultNoteTypeName)
	if err == nil {
		return nt, nil
	}
	if !errors.Is(err, ErrNoteTypeNotFound) {
		return nil, err
	}
	return s.CreateNoteType(DefaultNoteTypeName, defaultNoteTypeFields)
}

// DeckID locates or creates a deck by its hierarchical "::" name, creating
// every missing ancestor on the way down like the host application does.
func (s *Store) DeckID(name string) (uint, error) {
	segments := strings.Split(name, "::")
	var path []string
	var leaf Deck
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		path = append(path, seg)
		full := strings.Join(path, "::")
		deck := Deck{Name: full}
		if err := s.db.Where("name = ?", full).FirstOrCreate(&deck).Error; err != nil {
			return 0, fmt.Errorf("failed to create deck %q: %w", full, err)
		}
		leaf = deck
	}
	if leaf.ID == 0 {
		return 0, fmt.Errorf("deck name %q has no usable segments", name)
	}
	return leaf.ID, nil
}

// AddNote creates and persists one note bound to a note type and deck,
// with field values in schema order.
func (s *Store) AddNote(noteTypeID, deckID uint, fields []string) (*Note, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	note := &Note{
		GUID:       uuid.NewString(),
		NoteTypeID: noteTypeID,
		DeckID:     deckID,
		FieldsJSON: string(data),
	}
	if err := s.db.Create(note).Error; err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

// NoteCount reports the number of notes in the collection.
func (s *Store) NoteCount() (int64, error) {
	var n int64
	err := s.db.Model(&Note{}).Count(&n).Error
	return n, err
}
