package derive

import "github.com/petpalapp/petpal/internal/model"

// Gallery selectors beyond a concrete album id.
const (
	SelectorAll       = model.AlbumAllID
	SelectorFavorites = "favorites"
)

// FilterPhotos returns the photos matching a gallery selector: every photo
// for "all", favorites only for "favorites", album membership otherwise.
func FilterPhotos(photos []model.GalleryPhoto, selector string) []model.GalleryPhoto {
	switch selector {
	case SelectorAll:
		return photos
	case SelectorFavorites:
		var out []model.GalleryPhoto
		for _, p := range photos {
			if p.IsFavorite {
				out = append(out, p)
			}
		}
		return out
	default:
		var out []model.GalleryPhoto
		for _, p := range photos {
			if p.InAlbum(selector) {
				out = append(out, p)
			}
		}
		return out
	}
}

// FavoriteCount counts favorited photos.
func FavoriteCount(photos []model.GalleryPhoto) int {
	n := 0
	for _, p := range photos {
		if p.IsFavorite {
			n++
		}
	}
	return n
}
