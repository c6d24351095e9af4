package models

import (
	"time"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/media"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MediaPhotos = "photos"
	MediaVideos = "videos"
)

type Event struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	Eventtitle       string           `json:"Eventtitle" gorm:"not null"`
	Eventdate        string           `json:"Eventdate" gorm:"type:varchar(32);not null;index"`
	Eventtime        string           `json:"Eventtime" gorm:"not null"`
	Eventvenue       string           `json:"Eventvenue" gorm:"not null"`
	EventDescription string           `json:"EventDescription" gorm:"type:text;not null"`
	CloudFileJSON    datatypes.JSON   `json:"-" gorm:"column:cloud_file"`
	CloudFile        media.Descriptor `json:"CloudFile" gorm:"-"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

func (Event) TableName() string { return "events" }

func (e *Event) GetID() uint                   { return e.ID }
func (e *Event) Media() media.Descriptor       { return e.CloudFile }
func (e *Event) SetMedia(d media.Descriptor)   { e.CloudFile = d }
func (e *Event) BeforeSave(tx *gorm.DB) error  { e.CloudFileJSON = media.Encode(e.CloudFile); return nil }
func (e *Event) AfterFind(tx *gorm.DB) error   { e.CloudFile = media.Decode(e.CloudFileJSON, media.Single); return nil }

type Gallery struct {
	ID            uint             `json:"id" gorm:"primaryKey"`
	Year          string           `json:"year" gorm:"type:varchar(8);not null;index"`
	Title         string           `json:"title" gorm:"not null"`
	MediaType     string           `json:"mediaType" gorm:"type:varchar(16);not null"`
	CloudFileJSON datatypes.JSON   `json:"-" gorm:"column:cloud_file;not null"`
	CloudFile     media.Descriptor `json:"CloudFile" gorm:"-"`
	Youtubelink   string           `json:"youtubelink"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

func (Gallery) TableName() string { return "gallery" }

func (g *Gallery) GetID() uint                 { return g.ID }
func (g *Gallery) Media() media.Descriptor     { return g.CloudFile }
func (g *Gallery) SetMedia(d media.Descriptor) { g.CloudFile = d }

func (g *Gallery) BeforeSave(tx *gorm.DB) error {
	if g.CloudFile.Kind() != media.List {
		g.CloudFile = media.MediaList(g.CloudFile.Items()...)
	}
	g.CloudFileJSON = media.Encode(g.CloudFile)
	return nil
}

func (g *Gallery) AfterFind(tx *gorm.DB) error {
	g.CloudFile = media.Decode(g.CloudFileJSON, media.List)
	return nil
}

type BoardMember struct {
	ID            uint             `json:"id" gorm:"primaryKey"`
	Year          string           `json:"year" gorm:"type:varchar(8);not null;index:idx_board_year_role"`
	Firstname     string           `json:"firstname" gorm:"not null"`
	Lastname      string           `json:"lastname" gorm:"not null"`
	Role          string           `json:"role" gorm:"not null;index:idx_board_year_role"`
	CloudFileJSON datatypes.JSON   `json:"-" gorm:"column:cloud_file"`
	CloudFile     media.Descriptor `json:"CloudFile" gorm:"-"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

func (BoardMember) TableName() string { return "boardmembers" }

func (b *BoardMember) GetID() uint                  { return b.ID }
func (b *BoardMember) Media() media.Descriptor      { return b.CloudFile }
func (b *BoardMember) SetMedia(d media.Descriptor)  { b.CloudFile = d }
func (b *BoardMember) BeforeSave(tx *gorm.DB) error { b.CloudFileJSON = media.Encode(b.CloudFile); return nil }
func (b *BoardMember) AfterFind(tx *gorm.DB) error {
	b.CloudFile = media.Decode(b.CloudFileJSON, media.Single)
	return nil
}

type HomepageHighlight struct {
	ID            uint             `json:"id" gorm:"primaryKey"`
	EventName     string           `json:"eventName" gorm:"not null"`
	HighlightText string           `json:"highlightText" gorm:"type:text;not null"`
	CloudFileJSON datatypes.JSON   `json:"-" gorm:"column:cloud_file"`
	CloudFile     media.Descriptor `json:"CloudFile" gorm:"-"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

func (HomepageHighlight) TableName() string { return "homepageHighlight" }

func (h *HomepageHighlight) GetID() uint                  { return h.ID }
func (h *HomepageHighlight) Media() media.Descriptor      { return h.CloudFile }
func (h *HomepageHighlight) SetMedia(d media.Descriptor)  { h.CloudFile = d }
func (h *HomepageHighlight) BeforeSave(tx *gorm.DB) error { h.CloudFileJSON = media.Encode(h.CloudFile); return nil }
func (h *HomepageHighlight) AfterFind(tx *gorm.DB) error {
	h.CloudFile = media.Decode(h.CloudFileJSON, media.Single)
	return nil
}

type News struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Description string    `json:"description" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (News) TableName() string { return "news" }
