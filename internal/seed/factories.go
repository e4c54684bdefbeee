package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

// FactoryOptions tunes the random demo content.
type FactoryOptions struct {
	// Seed makes output reproducible when non-zero.
	Seed int64
	// SkipBcrypt stores plain passwords for fast local runs.
	SkipBcrypt bool
	// MaxTagsPerPost caps how many tags each generated post receives.
	MaxTagsPerPost int
	// MaxCommentsPerPost caps how many comments each generated post receives.
	MaxCommentsPerPost int
}

// Factory builds random users, posts and comments through the content service.
type Factory struct {
	svc   *service.ContentService
	users repository.UserRepository
	faker *gofakeit.Faker
	opts  FactoryOptions
}

// NewFactory creates a new Factory. A zero opts.Seed seeds from the clock.
func NewFactory(svc *service.ContentService, users repository.UserRepository, opts FactoryOptions) *Factory {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.MaxTagsPerPost <= 0 {
		opts.MaxTagsPerPost = 3
	}
	if opts.MaxCommentsPerPost < 0 {
		opts.MaxCommentsPerPost = 0
	}
	return &Factory{svc: svc, users: users, faker: gofakeit.New(opts.Seed), opts: opts}
}

// CreateUser constructs and persists a sample user.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.User)) (*models.User, error) {
	password, err := hashPassword("password123", f.opts.SkipBcrypt)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:     f.faker.Name(),
		Email:    fmt.Sprintf("%s.%d@example.com", strings.ToLower(f.faker.Username()), f.faker.Number(100, 99999)),
		Password: password,
		Role:     models.RoleUser,
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost returns a random post input attributed to author in category.
// The slug gets a numeric suffix so repeated calls do not collide.
func (f *Factory) BuildPost(author *models.User, category *models.Category, tags []models.Tag) service.CreatePostInput {
	title := strings.TrimSuffix(f.faker.Sentence(5), ".")
	paragraphs := make([]string, 0, 4)
	paragraphs = append(paragraphs, "# "+title)
	for i := 0; i < f.faker.Number(1, 3); i++ {
		paragraphs = append(paragraphs, f.faker.Paragraph(1, 4, 12, " "))
	}

	return service.CreatePostInput{
		Title:            title,
		Slug:             fmt.Sprintf("%s-%d", f.faker.LoremIpsumWord(), f.faker.Number(100000, 999999)),
		ShortDescription: f.faker.Sentence(12),
		ContentMarkdown:  strings.Join(paragraphs, "\n\n"),
		Status:           models.PostStatusPublished,
		CategoryID:       category.ID,
		CreatedByID:      author.ID,
		Tags:             tags,
	}
}

// CreatePost persists a random post with up to MaxTagsPerPost tags drawn from a
// fixed vocabulary, and up to MaxCommentsPerPost comments by commenter.
func (f *Factory) CreatePost(ctx context.Context, author, commenter *models.User, category *models.Category, overrides ...func(*service.CreatePostInput)) (*models.Post, error) {
	tags, err := f.randomTags(ctx)
	if err != nil {
		return nil, err
	}
	in := f.BuildPost(author, category, tags)
	for _, override := range overrides {
		override(&in)
	}

	post, err := f.svc.CreatePost(ctx, in)
	if err != nil {
		return nil, err
	}
	if commenter == nil {
		return post, nil
	}
	for i := 0; i < f.faker.Number(0, f.opts.MaxCommentsPerPost); i++ {
		if _, err := f.CreateComment(ctx, commenter, post); err != nil {
			return nil, err
		}
	}
	return post, nil
}

// CreateComment constructs and persists a sample comment on post.
func (f *Factory) CreateComment(ctx context.Context, author *models.User, post *models.Post) (*models.Comment, error) {
	return f.svc.CreateComment(ctx, service.CreateCommentInput{
		PostID:      post.ID,
		CreatedByID: author.ID,
		Content:     f.faker.Sentence(f.faker.Number(4, 16)),
	})
}

var demoCategories = []string{"Go", "Databases", "DevOps", "Frontend", "Career"}

var demoTags = []string{
	"go", "sql", "postgresql", "sqlite", "docker", "kubernetes", "testing",
	"performance", "security", "observability", "react", "css",
}

func (f *Factory) randomTags(ctx context.Context) ([]models.Tag, error) {
	n := f.faker.Number(0, f.opts.MaxTagsPerPost)
	out := make([]models.Tag, 0, n)
	for i := 0; i < n; i++ {
		tag, err := f.svc.GetOrCreateTag(ctx, demoTags[f.faker.Number(0, len(demoTags)-1)])
		if err != nil {
			return nil, err
		}
		out = append(out, *tag)
	}
	return out, nil
}

// Demo creates one author, one commenter and count random posts spread across
// the demo categories.
func (f *Factory) Demo(ctx context.Context, count int) ([]*models.Post, error) {
	author, err := f.CreateUser(ctx, func(u *models.User) { u.Role = models.RoleAdmin })
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}
	commenter, err := f.CreateUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create commenter: %w", err)
	}

	categories := make([]*models.Category, 0, len(demoCategories))
	for _, name := range demoCategories {
		c, err := f.svc.GetOrCreateCategory(ctx, name)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		post, err := f.CreatePost(ctx, author, commenter, categories[i%len(categories)])
		if err != nil {
			return posts, fmt.Errorf("failed to create post %d: %w", i, err)
		}
		posts = append(posts, post)
	}
	observability.Logger.InfoContext(ctx, "Demo content created",
		slog.Int("posts", len(posts)),
		slog.Uint64("author_id", uint64(author.ID)),
	)
	return posts, nil
}
