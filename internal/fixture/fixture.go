// Package fixture provides the hand-authored post collection used when the
// blog runs without a remote content API.
package fixture

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/blog-content-api/internal/models"
	"github.com/blog-content-api/pkg/htmltext"
	"gopkg.in/yaml.v3"
)

//go:embed data/posts.yaml
var defaultData []byte

// Collection is an immutable set of posts. Every accessor returns copies.
type Collection struct {
	authors    []models.Author
	categories []models.Category
	tags       []models.Tag
	posts      []models.Post
}

type document struct {
	Authors    []authorRecord   `yaml:"authors"`
	Categories []categoryRecord `yaml:"categories"`
	Tags       []tagRecord      `yaml:"tags"`
	Posts      []postRecord     `yaml:"posts"`
}

type authorRecord struct {
	ID           string `yaml:"id"`
	Slug         string `yaml:"slug"`
	Name         string `yaml:"name"`
	Bio          string `yaml:"bio"`
	ProfileImage string `yaml:"profile_image"`
	Email        string `yaml:"email"`
	SocialLinks  *struct {
		Twitter  string `yaml:"twitter"`
		GitHub   string `yaml:"github"`
		LinkedIn string `yaml:"linkedin"`
	} `yaml:"social_links"`
}

type categoryRecord struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

type tagRecord struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
}

type postRecord struct {
	ID            string   `yaml:"id"`
	Title         string   `yaml:"title"`
	Slug          string   `yaml:"slug"`
	Excerpt       string   `yaml:"excerpt"`
	Content       string   `yaml:"content"`
	FeaturedImage string   `yaml:"featured_image"`
	PublishedDate string   `yaml:"published_date"`
	UpdatedDate   string   `yaml:"updated_date"`
	Author        string   `yaml:"author"`
	Categories    []string `yaml:"categories"`
	Tags          []string `yaml:"tags"`
	ReadingTime   int      `yaml:"reading_time"`
	Featured      bool     `yaml:"featured"`
}

// Default returns the embedded collection.
func Default() *Collection {
	c, err := Load(bytes.NewReader(defaultData))
	if err != nil {
		panic(fmt.Sprintf("fixture: embedded data is invalid: %v", err))
	}
	return c
}

// LoadFile reads a collection from a YAML file with the embedded schema
func LoadFile(path string) (*Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and resolves a YAML collection. Authors, categories and tags
// are referenced from posts by slug.
func Load(r io.Reader) (*Collection, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}

	c := &Collection{}
	authorsBySlug := make(map[string]models.Author)
	for _, a := range doc.Authors {
		if a.ID == "" || a.Name == "" {
			return nil, fmt.Errorf("author %q: id and name are required", a.Slug)
		}
		author := models.Author{
			ID:           a.ID,
			Name:         a.Name,
			Bio:          a.Bio,
			ProfileImage: a.ProfileImage,
			Email:        a.Email,
		}
		if a.SocialLinks != nil {
			author.SocialLinks = &models.SocialLinks{
				Twitter:  a.SocialLinks.Twitter,
				GitHub:   a.SocialLinks.GitHub,
				LinkedIn: a.SocialLinks.LinkedIn,
			}
		}
		authorsBySlug[a.Slug] = author
		c.authors = append(c.authors, author)
	}

	categoriesBySlug := make(map[string]models.Category)
	for _, rc := range doc.Categories {
		if rc.Slug == "" {
			return nil, fmt.Errorf("category %q: slug is required", rc.Name)
		}
		if _, dup := categoriesBySlug[rc.Slug]; dup {
			return nil, fmt.Errorf("duplicate category slug %q", rc.Slug)
		}
		cat := models.Category{ID: rc.ID, Name: rc.Name, Slug: rc.Slug, Description: rc.Description}
		categoriesBySlug[rc.Slug] = cat
		c.categories = append(c.categories, cat)
	}

	tagsBySlug := make(map[string]models.Tag)
	for _, rt := range doc.Tags {
		if rt.Slug == "" {
			return nil, fmt.Errorf("tag %q: slug is required", rt.Name)
		}
		if _, dup := tagsBySlug[rt.Slug]; dup {
			return nil, fmt.Errorf("duplicate tag slug %q", rt.Slug)
		}
		tag := models.Tag{ID: rt.ID, Name: rt.Name, Slug: rt.Slug}
		tagsBySlug[rt.Slug] = tag
		c.tags = append(c.tags, tag)
	}

	seen := make(map[string]bool)
	for _, rp := range doc.Posts {
		if rp.ID == "" || rp.Slug == "" {
			return nil, fmt.Errorf("post %q: id and slug are required", rp.Title)
		}
		if seen[rp.Slug] {
			return nil, fmt.Errorf("duplicate post slug %q", rp.Slug)
		}
		seen[rp.Slug] = true

		author, ok := authorsBySlug[rp.Author]
		if !ok {
			return nil, fmt.Errorf("post %q: unknown author %q", rp.Slug, rp.Author)
		}

		post := models.Post{
			ID:            rp.ID,
			Title:         rp.Title,
			Slug:          rp.Slug,
			Excerpt:       rp.Excerpt,
			Content:       rp.Content,
			FeaturedImage: rp.FeaturedImage,
			PublishedDate: rp.PublishedDate,
			UpdatedDate:   rp.UpdatedDate,
			Author:        author,
			Categories:    make([]models.Category, 0, len(rp.Categories)),
			Tags:          make([]models.Tag, 0, len(rp.Tags)),
			ReadingTime:   rp.ReadingTime,
			IsFeatured:    rp.Featured,
		}
		for _, slug := range rp.Categories {
			cat, ok := categoriesBySlug[slug]
			if !ok {
				return nil, fmt.Errorf("post %q: unknown category %q", rp.Slug, slug)
			}
			post.Categories = append(post.Categories, cat)
		}
		for _, slug := range rp.Tags {
			tag, ok := tagsBySlug[slug]
			if !ok {
				return nil, fmt.Errorf("post %q: unknown tag %q", rp.Slug, slug)
			}
			post.Tags = append(post.Tags, tag)
		}
		if post.ReadingTime < 1 {
			post.ReadingTime = htmltext.ReadingTime(post.Content)
		}

		c.posts = append(c.posts, post)
	}

	return c, nil
}

// Posts returns every post in collection order
func (c *Collection) Posts() []models.Post {
	return c.filter(func(models.Post) bool { return true })
}

// Categories returns the declared categories
func (c *Collection) Categories() []models.Category {
	return append([]models.Category{}, c.categories...)
}

// Tags returns the declared tags
func (c *Collection) Tags() []models.Tag {
	return append([]models.Tag{}, c.tags...)
}

// Authors returns the declared authors
func (c *Collection) Authors() []models.Author {
	out := make([]models.Author, 0, len(c.authors))
	for _, a := range c.authors {
		out = append(out, a.Clone())
	}
	return out
}

// FindBySlug returns the first post whose slug equals slug exactly.
func (c *Collection) FindBySlug(slug string) (models.Post, bool) {
	for _, p := range c.posts {
		if p.Slug == slug {
			return p.Clone(), true
		}
	}
	return models.Post{}, false
}

// FilterByCategory returns posts filed under the category slug
func (c *Collection) FilterByCategory(slug string) []models.Post {
	return c.filter(func(p models.Post) bool { return p.HasCategory(slug) })
}

// FilterFeatured returns posts flagged as featured
func (c *Collection) FilterFeatured() []models.Post {
	return c.filter(func(p models.Post) bool { return p.IsFeatured })
}

// Search matches query case-insensitively as a substring of the title,
// excerpt, content or any tag name. A blank query matches nothing.
func (c *Collection) Search(query string) []models.Post {
	if strings.TrimSpace(query) == "" {
		return []models.Post{}
	}
	term := strings.ToLower(query)
	return c.filter(func(p models.Post) bool {
		if strings.Contains(strings.ToLower(p.Title), term) ||
			strings.Contains(strings.ToLower(p.Excerpt), term) ||
			strings.Contains(strings.ToLower(p.Content), term) {
			return true
		}
		for _, t := range p.Tags {
			if strings.Contains(strings.ToLower(t.Name), term) {
				return true
			}
		}
		return false
	})
}

func (c *Collection) filter(keep func(models.Post) bool) []models.Post {
	out := []models.Post{}
	for _, p := range c.posts {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}
