// Package media models the uploaded files attached to content records.
//
// A record holds either nothing, one file, or an ordered list of files. The
// persisted form is JSON; Decode accepts every shape that has been written to
// the column over time (object, array, double-encoded string) and degrades to
// an empty descriptor instead of failing.
package media

import (
	"bytes"
	"encoding/json"
	"net/url"
	"path"
	"strings"
)

type Kind int

const (
	None Kind = iota
	Single
	List
)

func (k Kind) String() string {
	switch k {
	case Single:
		return "single"
	case List:
		return "list"
	default:
		return "none"
	}
}

// Item is one stored file. PublicID is the key used to address a single item
// inside a list (the last path segment of its URL).
type Item struct {
	Image    string `json:"image"`
	PublicID string `json:"imagePublicId"`
}

type Descriptor struct {
	kind  Kind
	items []Item
}

func NoMedia() Descriptor {
	return Descriptor{kind: None}
}

func SingleMedia(item Item) Descriptor {
	if item.Image == "" {
		return NoMedia()
	}
	return Descriptor{kind: Single, items: []Item{item}}
}

// MediaList keeps list shape even when empty so galleries round-trip as [].
func MediaList(items ...Item) Descriptor {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Image != "" {
			out = append(out, it)
		}
	}
	return Descriptor{kind: List, items: out}
}

// FromURL builds an item whose public id is derived from the URL.
func FromURL(u string) Item {
	return Item{Image: u, PublicID: PublicID(u)}
}

// PublicID returns the last path segment of a file URL.
func PublicID(u string) string {
	if u == "" {
		return ""
	}
	if parsed, err := url.Parse(u); err == nil && parsed.Path != "" {
		return path.Base(parsed.Path)
	}
	if i := strings.LastIndex(u, "/"); i >= 0 {
		return u[i+1:]
	}
	return u
}

func (d Descriptor) Kind() Kind { return d.kind }

func (d Descriptor) Len() int { return len(d.items) }

func (d Descriptor) IsEmpty() bool { return len(d.items) == 0 }

func (d Descriptor) Items() []Item {
	out := make([]Item, len(d.items))
	copy(out, d.items)
	return out
}

func (d Descriptor) First() (Item, bool) {
	if len(d.items) == 0 {
		return Item{}, false
	}
	return d.items[0], true
}

// URLs lists the stored file URLs, used when the files must be removed.
func (d Descriptor) URLs() []string {
	urls := make([]string, 0, len(d.items))
	for _, it := range d.items {
		if it.Image != "" {
			urls = append(urls, it.Image)
		}
	}
	return urls
}

func (d Descriptor) Contains(u string) bool {
	for _, it := range d.items {
		if it.Image == u {
			return true
		}
	}
	return false
}

// Append adds items not already present (by URL) and returns a list descriptor.
func (d Descriptor) Append(items ...Item) Descriptor {
	merged := d.Items()
	for _, it := range items {
		if it.Image == "" || d.Contains(it.Image) {
			continue
		}
		dup := false
		for _, m := range merged {
			if m.Image == it.Image {
				dup = true
				break
			}
		}
		if !dup {
			merged = append(merged, it)
		}
	}
	return MediaList(merged...)
}

// Without removes the item with the given public id. The removed item is
// returned so the caller can delete the underlying file.
func (d Descriptor) Without(publicID string) (Descriptor, Item, bool) {
	var removed Item
	found := false
	rest := make([]Item, 0, len(d.items))
	for _, it := range d.items {
		if !found && it.PublicID == publicID {
			removed = it
			found = true
			continue
		}
		rest = append(rest, it)
	}
	if !found {
		return d, Item{}, false
	}
	if d.kind == List {
		return MediaList(rest...), removed, true
	}
	if len(rest) == 0 {
		return NoMedia(), removed, true
	}
	return SingleMedia(rest[0]), removed, true
}

func (d Descriptor) MarshalJSON() ([]byte, error) {
	switch d.kind {
	case Single:
		return json.Marshal(d.items[0])
	case List:
		if d.items == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(d.items)
	default:
		return []byte("null"), nil
	}
}

func (d *Descriptor) UnmarshalJSON(b []byte) error {
	*d = Decode(b, None)
	return nil
}

// Encode produces the column value. An empty single descriptor is stored as SQL NULL.
func Encode(d Descriptor) []byte {
	if d.kind == None {
		return nil
	}
	b, _ := d.MarshalJSON()
	return b
}

// Decode parses a stored value into the requested shape. When shape is None
// the shape of the payload itself is kept.
func Decode(raw []byte, shape Kind) Descriptor {
	raw = bytes.TrimSpace(raw)
	empty := func() Descriptor {
		if shape == List {
			return MediaList()
		}
		return NoMedia()
	}
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return empty()
	}

	switch raw[0] {
	case '"':
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return empty()
		}
		inner = strings.TrimSpace(inner)
		if inner == "" || inner[0] == '"' {
			return empty()
		}
		return Decode([]byte(inner), shape)
	case '{':
		var it Item
		if err := json.Unmarshal(raw, &it); err != nil || it.Image == "" {
			return empty()
		}
		if it.PublicID == "" {
			it.PublicID = PublicID(it.Image)
		}
		if shape == List {
			return MediaList(it)
		}
		return SingleMedia(it)
	case '[':
		var items []Item
		if err := json.Unmarshal(raw, &items); err != nil {
			return empty()
		}
		for i := range items {
			if items[i].PublicID == "" {
				items[i].PublicID = PublicID(items[i].Image)
			}
		}
		if shape == Single {
			list := MediaList(items...)
			if first, ok := list.First(); ok {
				return SingleMedia(first)
			}
			return NoMedia()
		}
		return MediaList(items...)
	default:
		return empty()
	}
}

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".mp4":  true,
	".webm": true,
	".ogg":  true,
	".mov":  true,
}

// Allowed reports whether a file name or URL has an accepted image/video extension.
func Allowed(name string) bool {
	if parsed, err := url.Parse(name); err == nil && parsed.Path != "" {
		name = parsed.Path
	}
	return allowedExt[strings.ToLower(path.Ext(name))]
}

// Owner is a record that carries a media descriptor.
type Owner interface {
	GetID() uint
	Media() Descriptor
	SetMedia(Descriptor)
}

// Upload is a file stored while handling a request.
type Upload struct {
	Field    string `json:"field"`
	Filename string `json:"filename"`
	URL      string `json:"file"`
}

// FromUploads builds a descriptor of the given shape. A single descriptor
// keeps only the first upload.
func FromUploads(shape Kind, uploads []Upload) Descriptor {
	items := make([]Item, 0, len(uploads))
	for _, u := range uploads {
		items = append(items, FromURL(u.URL))
	}
	switch shape {
	case List:
		return MediaList(items...)
	case Single:
		if len(items) > 0 {
			return SingleMedia(items[0])
		}
	}
	return NoMedia()
}

func UploadURLs(uploads []Upload) []string {
	urls := make([]string, 0, len(uploads))
	for _, u := range uploads {
		urls = append(urls, u.URL)
	}
	return urls
}
