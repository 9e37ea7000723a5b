package domain

import "time"

// MediaKind is the upload slot a file goes into.
type MediaKind string

const (
	MediaAvatar MediaKind = "avatar"
	MediaPhoto  MediaKind = "photos"
	MediaVideo  MediaKind = "videos"
)

// ValidMediaKind reports whether k names a known upload slot.
func ValidMediaKind(k MediaKind) bool {
	switch k {
	case MediaAvatar, MediaPhoto, MediaVideo:
		return true
	}
	return false
}

// MediaItem is a stored photo, video, or avatar belonging to an actor.
type MediaItem struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"actor_id"`
	Kind       MediaKind `json:"type"`
	URL        string    `json:"url,omitempty"`
	FileName   string    `json:"file_name,omitempty"`
	UploadedAt time.Time `json:"uploaded_at,omitempty"`
}
