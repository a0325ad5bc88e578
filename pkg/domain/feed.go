package domain

import "time"

// FeedSource is a section with its ordered feed URLs
type FeedSource struct {
	Section string
	URLs    []string
}

// RawFeed is a fetched feed before normalization, independent of the endpoint strategy used
type RawFeed struct {
	Title    string
	Endpoint string // name of the endpoint strategy that produced it
	Items    []RawItem
}

// RawItem is a single entry as delivered by a feed
type RawItem struct {
	GUID         string
	Title        string
	Link         string
	Published    string // publish date as found in the payload
	Description  string
	Content      string
	Author       string
	Enclosure    string // enclosure url, only for image types
	Thumbnail    string // media:thumbnail url
	MediaContent string // media:content url
}

// FeedStatus is the recorded health of a single feed url
type FeedStatus struct {
	Section     string     `json:"section"`
	URL         string     `json:"url"`
	Endpoint    string     `json:"endpoint"`
	ItemCount   int        `json:"item_count"`
	LastFetched *time.Time `json:"last_fetched,omitempty"`
	ErrorCount  int        `json:"error_count"`
	LastError   string     `json:"last_error"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
