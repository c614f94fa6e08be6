package media

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

// Kind classifies a media source by its path's file extension.
type Kind string

// Media kinds. Anything not recognized as an image or video is Other and is
// rendered as an openable link card.
const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindOther Kind = "other"
)

// PageSentinel sorts media without a page number after every page-numbered
// item. Larger than any real page number.
const PageSentinel = 1 << 30

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".avif": true, ".bmp": true, ".svg": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".webm": true, ".m4v": true,
	".mpeg": true, ".mpg": true, ".avi": true,
}

// Source is one image, video or document artifact tied to a voyage, e.g. a
// scanned logbook page. PageNum is nil for unpaginated media.
type Source struct {
	ID          int64  `json:"source_id"`
	Path        string `json:"source_path"`
	Description string `json:"source_description"`
	Type        string `json:"source_type"`
	Origin      string `json:"source_origin"`
	PageNum     *int   `json:"page_num"`
}

// KindOf classifies an asset path, case-insensitively, ignoring any URL
// query or fragment suffix.
func KindOf(assetPath string) Kind {
	p := assetPath
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	ext := strings.ToLower(path.Ext(p))
	switch {
	case imageExtensions[ext]:
		return KindImage
	case videoExtensions[ext]:
		return KindVideo
	default:
		return KindOther
	}
}

// Kind classifies this source.
func (s Source) Kind() Kind {
	return KindOf(s.Path)
}

// SortKey returns the page number, or PageSentinel when unpaginated.
func (s Source) SortKey() int {
	if s.PageNum == nil {
		return PageSentinel
	}
	return *s.PageNum
}

// Caption assembles the display caption: type, origin, page, description.
// POST: returns "" when every part is empty
func (s Source) Caption() string {
	var b strings.Builder
	b.WriteString(s.Type)
	if s.Origin != "" {
		b.WriteString(" — " + s.Origin)
	}
	if s.PageNum != nil {
		fmt.Fprintf(&b, " (p. %d)", *s.PageNum)
	}
	if s.Description != "" {
		b.WriteString(": " + s.Description)
	}
	return strings.TrimSpace(b.String())
}

// SortForDisplay orders sources in place: ascending by page number, with
// unpaginated items after all paginated ones in their original fetch order.
func SortForDisplay(sources []Source) {
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].SortKey() < sources[j].SortKey()
	})
}
