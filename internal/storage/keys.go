package storage

import "fmt"

// Directory-wide keys, not partitioned per user.
const (
	// KeySessionUser holds the id of the logged-in user, absent when logged out.
	KeySessionUser = "currentUserId"
	// KeyUsers holds the JSON array of all registered users.
	KeyUsers = "users"
)

const namespace = "petpal"

// Per-user data kinds. Each lives under its own key inside the user's partition.
const (
	KindPets          = "pets"
	KindActivePetID   = "activePetId"
	KindCalendar      = "calendarEvents"
	KindMoodData      = "moodData"
	KindMoodHistory   = "moodHistory"
	KindHealthHistory = "healthHistory"
	KindGalleryPhotos = "galleryPhotos"
	KindAlbums        = "albums"
)

// UserKey returns the storage key for one data kind in a user's partition.
func UserKey(userID, kind string) string {
	return fmt.Sprintf("%s:user_%s:%s", namespace, userID, kind)
}

// UserKeys returns every key belonging to the user's partition.
func UserKeys(userID string) []string {
	kinds := []string{
		KindPets, KindActivePetID, KindCalendar, KindMoodData,
		KindMoodHistory, KindHealthHistory, KindGalleryPhotos, KindAlbums,
	}
	keys := make([]string, 0, len(kinds))
	for _, k := range kinds {
		keys = append(keys, UserKey(userID, k))
	}
	return keys
}
