// Package controller holds the record lifecycle shared by the media-bearing
// content types: create with uploads, update with replace or append, remove
// a single file, delete one, and delete all.
package controller

import (
	"context"
	"fmt"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/service"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/media"
)

const MsgDisallowedMedia = "Only JPG, PNG, JPEG, WEBP images and MP4, WEBM, OGG, MOV videos are allowed"

// Store is the persistence a content record needs. repository.Repository
// satisfies it.
type Store[E any] interface {
	Create(ctx context.Context, v *E) error
	Get(ctx context.Context, id uint, preloads ...string) (*E, error)
	Save(ctx context.Context, v *E) error
	Delete(ctx context.Context, id uint) error
	All(ctx context.Context, order string) ([]E, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type Messages struct {
	NotFound      string
	Empty         string
	ImageNotFound string
	MediaRequired string
}

type Config[E any] struct {
	Store Store[E]
	// Shape is media.Single for records holding one file and media.List
	// for records that accumulate files.
	Shape    media.Kind
	Files    *service.FileCleaner
	Messages Messages
}

type Content[E any, P interface {
	*E
	media.Owner
}] struct {
	store Store[E]
	shape media.Kind
	files *service.FileCleaner
	msg   Messages
}

func NewContent[E any, P interface {
	*E
	media.Owner
}](cfg Config[E]) *Content[E, P] {
	return &Content[E, P]{store: cfg.Store, shape: cfg.Shape, files: cfg.Files, msg: cfg.Messages}
}

// Create builds a record from the request and attaches the uploads. Any
// rejection discards the uploaded files.
func (c *Content[E, P]) Create(ctx context.Context, build func(P) error, uploads []media.Upload) (P, error) {
	var v E
	rec := P(&v)
	if err := build(rec); err != nil {
		c.discard(uploads)
		return nil, err
	}
	if c.msg.MediaRequired != "" && len(uploads) == 0 {
		return nil, service.BadRequest(c.msg.MediaRequired)
	}
	rec.SetMedia(media.FromUploads(c.shape, uploads))
	if err := c.store.Create(ctx, &v); err != nil {
		c.discard(uploads)
		return nil, fmt.Errorf("create record: %w", err)
	}
	if c.shape == media.Single && len(uploads) > 1 {
		c.discard(uploads[1:])
	}
	return rec, nil
}

func (c *Content[E, P]) Get(ctx context.Context, id uint) (P, error) {
	v, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, c.notFound(err)
	}
	return P(v), nil
}

// Update applies the request to an existing record. New uploads replace the
// file of a single-media record, or are appended to a list. Replaced files
// are removed from storage once the record is saved.
func (c *Content[E, P]) Update(ctx context.Context, id uint, apply func(P) error, uploads []media.Upload) (P, error) {
	rec, err := c.Get(ctx, id)
	if err != nil {
		c.discard(uploads)
		return nil, err
	}
	for _, u := range uploads {
		if !media.Allowed(u.Filename) {
			c.discard(uploads)
			return nil, service.Unprocessable(MsgDisallowedMedia)
		}
	}
	if err := apply(rec); err != nil {
		c.discard(uploads)
		return nil, err
	}

	var replaced []string
	if len(uploads) > 0 {
		current := rec.Media()
		if c.shape == media.List {
			rec.SetMedia(current.Append(media.FromUploads(media.List, uploads).Items()...))
		} else {
			next := media.FromUploads(media.Single, uploads)
			for _, u := range current.URLs() {
				if !next.Contains(u) {
					replaced = append(replaced, u)
				}
			}
			rec.SetMedia(next)
		}
	}
	if err := c.store.Save(ctx, (*E)(rec)); err != nil {
		c.discard(uploads)
		return nil, fmt.Errorf("update record: %w", err)
	}
	c.files.Discard(replaced...)
	return rec, nil
}

// DeleteMedia removes one file from a record. A single-media record loses
// its file whatever the id.
func (c *Content[E, P]) DeleteMedia(ctx context.Context, id uint, publicID string) error {
	rec, err := c.Get(ctx, id)
	if err != nil {
		return err
	}
	current := rec.Media()
	var removed media.Item
	switch {
	case c.shape == media.Single && !current.IsEmpty():
		removed, _ = current.First()
		rec.SetMedia(media.NoMedia())
	default:
		rest, item, ok := current.Without(publicID)
		if !ok {
			return service.NotFound(c.msg.ImageNotFound)
		}
		removed = item
		rec.SetMedia(rest)
	}
	if err := c.store.Save(ctx, (*E)(rec)); err != nil {
		return fmt.Errorf("remove media: %w", err)
	}
	c.files.Discard(removed.Image)
	return nil
}

// Delete removes the row first; its files are cleaned up in the background.
func (c *Content[E, P]) Delete(ctx context.Context, id uint) error {
	rec, err := c.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := c.store.Delete(ctx, id); err != nil {
		return c.notFound(err)
	}
	c.files.Discard(rec.Media().URLs()...)
	return nil
}

func (c *Content[E, P]) DeleteAll(ctx context.Context) error {
	all, err := c.store.All(ctx, "id ASC")
	if err != nil {
		return err
	}
	if len(all) == 0 {
		return service.Unprocessable(c.msg.Empty)
	}
	if _, err := c.store.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete records: %w", err)
	}
	var urls []string
	for i := range all {
		urls = append(urls, P(&all[i]).Media().URLs()...)
	}
	c.files.Discard(urls...)
	return nil
}

func (c *Content[E, P]) discard(uploads []media.Upload) {
	c.files.Discard(media.UploadURLs(uploads)...)
}

func (c *Content[E, P]) notFound(err error) error {
	if service.IsNotFound(err) {
		return service.NotFound(c.msg.NotFound)
	}
	return err
}
