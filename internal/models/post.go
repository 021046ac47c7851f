package models

import (
	"time"
)

// Author is the writer of a post. ID and Name are always set.
type Author struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Bio          string       `json:"bio"`
	ProfileImage string       `json:"profile_image"`
	Email        string       `json:"email,omitempty"`
	SocialLinks  *SocialLinks `json:"social_links,omitempty"`
}

// SocialLinks holds an author's profile URLs
type SocialLinks struct {
	Twitter  string `json:"twitter,omitempty"`
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// Category groups posts. Slug is the only key that is stable across sources.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// Tag labels a post
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Post represents a published article.
// Content is HTML; Excerpt is plain text.
type Post struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content"`
	FeaturedImage string     `json:"featured_image,omitempty"`
	PublishedDate string     `json:"published_date"`
	UpdatedDate   string     `json:"updated_date,omitempty"`
	Author        Author     `json:"author"`
	Categories    []Category `json:"categories"`
	Tags          []Tag      `json:"tags"`
	ReadingTime   int        `json:"reading_time"`
	IsFeatured    bool       `json:"is_featured,omitempty"`
}

// upstreamLayout is the zone-less timestamp format emitted by WordPress
const upstreamLayout = "2006-01-02T15:04:05"

// PublishedTime parses PublishedDate. Zone-less timestamps are read as UTC.
func (p Post) PublishedTime() (time.Time, error) {
	return parseTimestamp(p.PublishedDate)
}

// HasCategory reports whether the post is filed under the category slug
func (p Post) HasCategory(slug string) bool {
	for _, c := range p.Categories {
		if c.Slug == slug {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with p.
func (p Post) Clone() Post {
	out := p
	out.Categories = append([]Category{}, p.Categories...)
	out.Tags = append([]Tag{}, p.Tags...)
	out.Author = p.Author.Clone()
	return out
}

// Clone returns a copy that shares no pointers with a.
func (a Author) Clone() Author {
	if a.SocialLinks != nil {
		links := *a.SocialLinks
		a.SocialLinks = &links
	}
	return a
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(upstreamLayout, s)
}
