package plex

import "time"

// Section types as reported by /library/sections.
const (
	SectionShow  = "show"
	SectionMovie = "movie"
)

// MediaType is the Plex metadata type used to filter section listings.
type MediaType int

const (
	TypeMovie   MediaType = 1
	TypeShow    MediaType = 2
	TypeSeason  MediaType = 3
	TypeEpisode MediaType = 4
)

// Identity holds Plex server identity information.
type Identity struct {
	Name       string `json:"friendlyName"`
	Version    string `json:"version"`
	Identifier string `json:"machineIdentifier"`
}

// Section is a Plex library section.
type Section struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// Item is one movie or episode from a section listing.
type Item struct {
	RatingKey        string  `json:"ratingKey"`
	Type             string  `json:"type"`
	Title            string  `json:"title"`
	GrandparentTitle string  `json:"grandparentTitle"`
	ParentIndex      *int    `json:"parentIndex"`
	Index            *int    `json:"index"`
	ViewCount        int     `json:"viewCount"`
	LastViewedAt     int64   `json:"lastViewedAt"`
	GUIDs            []GUID  `json:"Guid"`
	Media            []Media `json:"Media"`
}

// GUID is an external identifier such as "tvdb://70991".
type GUID struct {
	ID string `json:"id"`
}

// Media is one version of an item.
type Media struct {
	Parts []Part `json:"Part"`
}

// Part is one file of a media version.
type Part struct {
	File string `json:"file"`
}

// Watched reports whether the item has been played at least once.
func (i Item) Watched() bool {
	return i.ViewCount > 0
}

// LastViewed returns the last play time, zero when unknown.
func (i Item) LastViewed() time.Time {
	if i.LastViewedAt <= 0 {
		return time.Time{}
	}
	return time.Unix(i.LastViewedAt, 0)
}

// Files returns every part file of every media version.
func (i Item) Files() []string {
	var files []string
	for _, m := range i.Media {
		for _, p := range m.Parts {
			if p.File != "" {
				files = append(files, p.File)
			}
		}
	}
	return files
}

// ExternalIDs returns the non-empty GUIDs.
func (i Item) ExternalIDs() []string {
	ids := make([]string, 0, len(i.GUIDs))
	for _, g := range i.GUIDs {
		if g.ID != "" {
			ids = append(ids, g.ID)
		}
	}
	return ids
}

type mediaContainer struct {
	MediaContainer struct {
		Size      int       `json:"size"`
		TotalSize int       `json:"totalSize"`
		Directory []Section `json:"Directory"`
		Metadata  []Item    `json:"Metadata"`
	} `json:"MediaContainer"`
}

type identityContainer struct {
	MediaContainer Identity `json:"MediaContainer"`
}
