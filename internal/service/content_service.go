// Package service composes the repositories into the operations exposed to callers.
package service

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

// Renderer turns a markdown body into HTML. Implementations must be total.
type Renderer interface {
	Render(markdown string) string
}

// Options tunes listing behaviour.
type Options struct {
	// DefaultPageSize is used when a caller asks for a page size below 1.
	DefaultPageSize int
	// MaxPageSize caps the page size a caller may request.
	MaxPageSize int
}

// ContentService is the entry point for reading and writing blog content.
type ContentService struct {
	store       repository.Store
	renderer    Renderer
	pageSize    int
	maxPageSize int
}

// NewContentService wires a ContentService. Zero Options fall back to 10 and 100.
func NewContentService(store repository.Store, renderer Renderer, opts Options) *ContentService {
	if opts.DefaultPageSize < 1 {
		opts.DefaultPageSize = 10
	}
	if opts.MaxPageSize < opts.DefaultPageSize {
		opts.MaxPageSize = max(100, opts.DefaultPageSize)
	}
	return &ContentService{
		store:       store,
		renderer:    renderer,
		pageSize:    opts.DefaultPageSize,
		maxPageSize: opts.MaxPageSize,
	}
}

func (s *ContentService) normalizePageSize(size int) int {
	if size < 1 {
		return s.pageSize
	}
	if size > s.maxPageSize {
		return s.maxPageSize
	}
	return size
}

func (s *ContentService) render(markdown, html string) string {
	if html != "" || s.renderer == nil {
		return html
	}
	return s.renderer.Render(markdown)
}

// begin starts the span for a service operation. The returned func must be
// deferred with a pointer to the operation's named error result.
func begin(ctx context.Context, op string) (context.Context, func(*error)) {
	span, ctx := observability.NewSpan(ctx, "ContentService."+op)
	return ctx, func(errp *error) {
		err := *errp
		span.SetError(err)
		span.End()
		observability.RecordOutcome(op, err, errorClass)
	}
}

// errorClass maps err to a low-cardinality metrics label.
func errorClass(err error) string {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return strings.ToLower(appErr.Code)
	}
	return "storage"
}

// attachTags fills the Tags field of every post using one batched lookup.
// Posts with no tags get an empty, non-nil slice.
func attachTags(ctx context.Context, tags repository.TagRepository, posts ...*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	byPost, err := tags.FindTagsByPostIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, p := range posts {
		if t, ok := byPost[p.ID]; ok {
			p.Tags = t
		} else {
			p.Tags = []models.Tag{}
		}
	}
	return nil
}
