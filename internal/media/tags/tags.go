package tags

import (
	"context"
	"strings"

	"github.com/simonhull/audiometa"

	"chaptersplit/internal/services"
)

// Chapter is an embedded chapter marker in milliseconds.
type Chapter struct {
	Title   string
	StartMs int64
	EndMs   int64
}

// Info is the subset of embedded metadata chaptersplit uses.
type Info struct {
	Format     string
	Title      string
	Album      string
	Artist     string
	DurationMs int64
	Chapters   []Chapter
}

// BookTitle prefers the album tag, which audiobook encoders use for the book
// name, over the per-file title.
func (i Info) BookTitle() string {
	if album := strings.TrimSpace(i.Album); album != "" {
		return album
	}
	return strings.TrimSpace(i.Title)
}

// Reader opens recordings with audiometa.
type Reader struct{}

// NewReader returns a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read parses the tags of the file at path.
func (r *Reader) Read(ctx context.Context, path string) (Info, error) {
	if strings.TrimSpace(path) == "" {
		return Info{}, services.Wrap(services.ErrInput, "tags", "validate", "path required", nil)
	}
	file, err := audiometa.OpenContext(ctx, path)
	if err != nil {
		return Info{}, services.Wrap(services.ErrInput, "tags", "open", path, err)
	}
	defer file.Close()
	return fromFile(file), nil
}

func fromFile(file *audiometa.File) Info {
	info := Info{
		Format:     file.Format.String(),
		Title:      strings.TrimSpace(file.Tags.Title),
		Album:      strings.TrimSpace(file.Tags.Album),
		Artist:     strings.TrimSpace(file.Tags.Artist),
		DurationMs: file.Audio.Duration.Milliseconds(),
	}
	for _, ch := range file.Chapters {
		info.Chapters = append(info.Chapters, Chapter{
			Title:   strings.TrimSpace(ch.Title),
			StartMs: ch.StartTime.Milliseconds(),
			EndMs:   ch.EndTime.Milliseconds(),
		})
	}
	return info
}
