package episodes

import (
	"github.com/killallgit/practitioners-pod/internal/directory"
	"github.com/killallgit/practitioners-pod/internal/models"
	"github.com/killallgit/practitioners-pod/internal/services/youtube"
)

// ToDirectoryEpisode projects a stored episode into the directory engine's
// read-only view. The YouTube ID is the directory identifier.
func ToDirectoryEpisode(e models.Episode) directory.Episode {
	out := directory.Episode{
		ID:            e.YouTubeID,
		Title:         e.Title,
		Description:   e.Description,
		EpisodeNumber: e.EpisodeNumber,
		PublishedAt:   e.PublishedAt,
		Topics:        []string(e.Topics),
	}
	if e.Guest != nil {
		out.GuestName = e.Guest.Name
		out.GuestCompany = e.Guest.Company
	}
	return out
}

// ToDirectoryEpisodes converts a slice, keeping order
func ToDirectoryEpisodes(list []models.Episode) []directory.Episode {
	out := make([]directory.Episode, len(list))
	for i, e := range list {
		out[i] = ToDirectoryEpisode(e)
	}
	return out
}

// fromDirectory maps engine results back onto the stored episodes, preserving
// the engine's order
func fromDirectory(results []directory.Episode, byID map[string]models.Episode) []models.Episode {
	out := make([]models.Episode, 0, len(results))
	for _, r := range results {
		if e, ok := byID[r.ID]; ok {
			out = append(out, e)
		}
	}
	return out
}

func indexByYouTubeID(list []models.Episode) map[string]models.Episode {
	m := make(map[string]models.Episode, len(list))
	for _, e := range list {
		m[e.YouTubeID] = e
	}
	return m
}

// newEpisodeFromVideo builds a new episode row from a channel upload
func newEpisodeFromVideo(v youtube.Video, number int) *models.Episode {
	return &models.Episode{
		YouTubeID:     v.ID,
		Title:         v.Title,
		Description:   v.Description,
		EpisodeNumber: number,
		PublishedAt:   v.PublishedAt.UTC(),
		Duration:      v.Duration,
		ThumbnailURL:  v.ThumbnailURL,
		ViewCount:     v.ViewCount,
		Topics:        []string{},
	}
}

// applyVideo refreshes the fields owned by YouTube and reports whether anything changed.
// Topics, guest, show notes and the episode number are curated locally and left alone.
func applyVideo(e *models.Episode, v youtube.Video) bool {
	changed := e.Title != v.Title ||
		e.Description != v.Description ||
		e.ThumbnailURL != v.ThumbnailURL ||
		e.Duration != v.Duration ||
		e.ViewCount != v.ViewCount
	e.Title = v.Title
	e.Description = v.Description
	e.ThumbnailURL = v.ThumbnailURL
	e.Duration = v.Duration
	e.ViewCount = v.ViewCount
	return changed
}
