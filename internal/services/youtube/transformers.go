package youtube

import (
	"strconv"

	"github.com/killallgit/practitioners-pod/pkg/duration"
)

func transformVideo(v videoResource) Video {
	views, _ := strconv.ParseInt(v.Statistics.ViewCount, 10, 64)
	return Video{
		ID:           v.ID,
		Title:        v.Snippet.Title,
		Description:  v.Snippet.Description,
		ThumbnailURL: bestThumbnail(v),
		PublishedAt:  v.Snippet.PublishedAt,
		Duration:     duration.Format(v.ContentDetails.Duration),
		ViewCount:    views,
	}
}

// bestThumbnail prefers maxres, then high, then default
func bestThumbnail(v videoResource) string {
	t := v.Snippet.Thumbnails
	for _, th := range []*thumbnail{t.Maxres, t.High, t.Default} {
		if th != nil && th.URL != "" {
			return th.URL
		}
	}
	return ""
}
