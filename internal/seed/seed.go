// Package seed loads the bundled sample posts and generates demo content for
// development databases.
package seed

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

//go:embed data
var bundled embed.FS

// DataFS returns the sample manifest and markdown files shipped with the binary.
func DataFS() fs.FS {
	sub, err := fs.Sub(bundled, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

const manifestFile = "posts.yml"

// Entry describes one post in the manifest.
type Entry struct {
	Title            string   `yaml:"title"`
	Slug             string   `yaml:"slug"`
	ShortDescription string   `yaml:"short_description"`
	MarkdownFile     string   `yaml:"markdown_file"`
	Category         string   `yaml:"category"`
	Tags             []string `yaml:"tags"`
}

type Manifest struct {
	Posts []Entry `yaml:"posts"`
}

// LoadManifest parses posts.yml from fsys.
func LoadManifest(fsys fs.FS) (*Manifest, error) {
	raw, err := fs.ReadFile(fsys, manifestFile)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	for i, e := range m.Posts {
		if strings.TrimSpace(e.MarkdownFile) == "" {
			return nil, fmt.Errorf("manifest entry %d (%q) has no markdown_file", i, e.Title)
		}
	}
	return &m, nil
}

// Options configuration for the seeder
type Options struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
	// SkipBcrypt stores the password as-is. Only for throwaway databases.
	SkipBcrypt bool
}

// DefaultOptions returns the account the sample posts are attributed to.
func DefaultOptions() Options {
	return Options{
		AdminName:     "Siva",
		AdminEmail:    "siva@gmail.com",
		AdminPassword: "siva",
	}
}

// Seeder creates the sample posts from a manifest.
type Seeder struct {
	svc   *service.ContentService
	users repository.UserRepository
	files fs.FS
	opts  Options
}

func NewSeeder(svc *service.ContentService, users repository.UserRepository, files fs.FS, opts Options) *Seeder {
	return &Seeder{svc: svc, users: users, files: files, opts: opts}
}

// Run creates every manifest post unless the store already holds posts.
// It returns the number of posts created.
func (s *Seeder) Run(ctx context.Context) (int, error) {
	count, err := s.svc.CountPosts(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		observability.Logger.InfoContext(ctx, "Posts already loaded, skipping seed", slog.Int64("posts", count))
		return 0, nil
	}

	manifest, err := LoadManifest(s.files)
	if err != nil {
		return 0, err
	}
	admin, err := ensureUser(ctx, s.users, s.opts)
	if err != nil {
		return 0, fmt.Errorf("failed to create admin user: %w", err)
	}

	created := 0
	for _, entry := range manifest.Posts {
		if err := s.createEntry(ctx, admin, entry); err != nil {
			return created, fmt.Errorf("failed to seed post %q: %w", entry.Slug, err)
		}
		created++
	}
	observability.Logger.InfoContext(ctx, "Seed completed", slog.Int("posts", created))
	return created, nil
}

func (s *Seeder) createEntry(ctx context.Context, author *models.User, entry Entry) error {
	body, err := fs.ReadFile(s.files, path.Clean(entry.MarkdownFile))
	if err != nil {
		return err
	}

	tags := make([]models.Tag, 0, len(entry.Tags))
	for _, name := range entry.Tags {
		tag, err := s.svc.GetOrCreateTag(ctx, name)
		if err != nil {
			return err
		}
		tags = append(tags, *tag)
	}
	category, err := s.svc.GetOrCreateCategory(ctx, entry.Category)
	if err != nil {
		return err
	}

	_, err = s.svc.CreatePost(ctx, service.CreatePostInput{
		Title:            entry.Title,
		Slug:             entry.Slug,
		ShortDescription: entry.ShortDescription,
		ContentMarkdown:  string(body),
		Status:           models.PostStatusPublished,
		CategoryID:       category.ID,
		CreatedByID:      author.ID,
		Tags:             tags,
	})
	return err
}

// ensureUser returns the user with opts.AdminEmail, creating an admin if absent.
func ensureUser(ctx context.Context, users repository.UserRepository, opts Options) (*models.User, error) {
	existing, found, err := users.FindByEmail(ctx, opts.AdminEmail)
	if err != nil {
		return nil, err
	}
	if found {
		return existing, nil
	}

	password, err := hashPassword(opts.AdminPassword, opts.SkipBcrypt)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:     opts.AdminName,
		Email:    opts.AdminEmail,
		Password: password,
		Role:     models.RoleAdmin,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func hashPassword(plain string, skip bool) (string, error) {
	if skip {
		return plain, nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
