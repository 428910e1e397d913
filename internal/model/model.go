// Package model defines domain entities used by services and storage.
package model

import "time"

// User is an account in the local user directory. Passwords are stored as
// Argon2id hashes with a per-user salt, never in plaintext.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"` // unique, case-insensitive
	Email     string    `json:"email"`    // unique, case-insensitive
	PwdHash   []byte    `json:"pwdHash"`
	SaltAuth  []byte    `json:"saltAuth"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProfileUpdate carries a partial user-profile merge. Nil fields are left unchanged.
type ProfileUpdate struct {
	Username *string
	Email    *string
	Password *string
}

// Pet is a single animal owned by exactly one user. Ownership is expressed by
// the storage partition, not by a field on the record.
type Pet struct {
	ID              string  `json:"id"`
	Nombre          string  `json:"nombre"` // required at creation
	Especie         string  `json:"especie"`
	Raza            string  `json:"raza"`
	Edad            string  `json:"edad"`
	FechaNacimiento string  `json:"fechaNacimiento"`
	Peso            string  `json:"peso"`
	Altura          string  `json:"altura"`
	Veterinario     string  `json:"veterinario"`
	Clinica         string  `json:"clinica"`
	Telefono        string  `json:"telefono"`
	Microchip       string  `json:"microchip"`
	Placa           string  `json:"placa"`
	Notas           string  `json:"notas"`
	Photo           *string `json:"photo"` // nil when no photo is set
}

// PetUpdate carries a partial pet merge. Nil fields are left unchanged.
type PetUpdate struct {
	Nombre          *string
	Especie         *string
	Raza            *string
	Edad            *string
	FechaNacimiento *string
	Peso            *string
	Altura          *string
	Veterinario     *string
	Clinica         *string
	Telefono        *string
	Microchip       *string
	Placa           *string
	Notas           *string
}

// Calendar event categories.
const (
	CategoryVaccine   = "vaccine"
	CategoryBath      = "bath"
	CategoryWalk      = "walk"
	CategoryVet       = "vet"
	CategoryTreatment = "treatment"
)

// CalendarEvent is a scheduled care event for one pet. IDs are assigned at
// creation and are monotonic in creation order.
type CalendarEvent struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Time     string `json:"time"`
	Category string `json:"category"`
	Date     int    `json:"date"`  // day of month
	Month    int    `json:"month"` // 0-11
	Year     int    `json:"year"`
}

// EventUpdate carries a partial calendar-event merge.
type EventUpdate struct {
	Title    *string
	Time     *string
	Category *string
	Date     *int
	Month    *int
	Year     *int
}

// MoodSnapshot is the current five-metric emotional state of a pet.
// Each metric ranges 0-100.
type MoodSnapshot struct {
	Happiness   int `json:"happiness"`
	Energy      int `json:"energy"`
	Calmness    int `json:"calmness"`
	Playfulness int `json:"playfulness"`
	Appetite    int `json:"appetite"`
}

// DefaultMood is the snapshot presented for a pet that has never been rated.
func DefaultMood() MoodSnapshot {
	return MoodSnapshot{Happiness: 80, Energy: 65, Calmness: 50, Playfulness: 75, Appetite: 90}
}

// Average returns the mean of the five metrics.
func (m MoodSnapshot) Average() float64 {
	return float64(m.Happiness+m.Energy+m.Calmness+m.Playfulness+m.Appetite) / 5
}

// MoodUpdate carries a partial mood merge. Nil metrics are left unchanged.
type MoodUpdate struct {
	Happiness   *int
	Energy      *int
	Calmness    *int
	Playfulness *int
	Appetite    *int
}

// MoodHistoryEntry is one classified mood sample, recorded as a side effect
// of every mood update. Newest-first, capped at the ten most recent.
type MoodHistoryEntry struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"` // short label "D Mon"
	Mood      string `json:"mood"`
	Color     string `json:"color"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}

// Health record categories.
const (
	HealthVaccine      = "vaccine"
	HealthCheckup      = "checkup"
	HealthTreatment    = "treatment"
	HealthConsultation = "consultation"
)

// HealthRecord is one entry in a pet's medical history, stored newest-first.
type HealthRecord struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Doctor    string `json:"doctor"`
	Notes     string `json:"notes"`
	Date      string `json:"date"`      // formatted label "D Mon YYYY"
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}

// HealthRecordInput is the caller-supplied part of a new health record.
// Title and Doctor are required. When CustomDate is nil the record is dated "now".
type HealthRecordInput struct {
	Title      string
	Category   string
	Doctor     string
	Notes      string
	CustomDate *time.Time
}

// GeoPoint is an optional capture location attached to a gallery photo.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// GalleryPhoto is one photo in a pet's gallery, stored newest-first.
type GalleryPhoto struct {
	ID         string    `json:"id"`
	URI        string    `json:"uri"`
	Date       string    `json:"date"`
	Location   *GeoPoint `json:"location,omitempty"`
	IsFavorite bool      `json:"isFavorite"`
	Albums     []string  `json:"albums"` // album ids, always contains "all"
}

// InAlbum reports whether the photo belongs to the given album.
func (p GalleryPhoto) InAlbum(albumID string) bool {
	for _, id := range p.Albums {
		if id == albumID {
			return true
		}
	}
	return false
}

// The synthetic album every photo belongs to. It is never stored and never deletable.
const (
	AlbumAllID   = "all"
	AlbumAllName = "Todas las Fotos"
)

// Album is a user-created photo grouping.
type Album struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AllAlbum returns the implicit album that lists every photo.
func AllAlbum() Album { return Album{ID: AlbumAllID, Name: AlbumAllName} }
