package wordpress

import (
	"strconv"

	"github.com/blog-content-api/internal/models"
	"github.com/blog-content-api/pkg/htmltext"
)

// avatarSize is the avatar_urls key used for author profile images
const avatarSize = "96"

// FallbackAuthor is attached to posts whose author was not embedded.
var FallbackAuthor = models.Author{
	ID:           "1",
	Name:         "Saad Khan",
	Bio:          "Tech enthusiast and developer.",
	ProfileImage: "https://images.unsplash.com/photo-1633332755192-727a05c4013d?q=80&w=200&h=200&auto=format&fit=crop",
}

// transformPost converts an upstream record into a Post. It never fails:
// missing embedded data yields an absent image, empty taxonomy lists and
// the fallback author.
func (c *Client) transformPost(p wpPost) models.Post {
	post := models.Post{
		ID:            strconv.FormatInt(p.ID, 10),
		Title:         p.Title.Rendered,
		Slug:          p.Slug,
		Excerpt:       htmltext.StripTags(p.Excerpt.Rendered),
		Content:       p.Content.Rendered,
		PublishedDate: p.Date,
		UpdatedDate:   p.Modified,
		Author:        FallbackAuthor.Clone(),
		Categories:    []models.Category{},
		Tags:          []models.Tag{},
		ReadingTime:   htmltext.ReadingTime(p.Content.Rendered),
		// No upstream signal marks a post as featured.
		IsFeatured: false,
	}

	if c.sanitizer != nil {
		post.Content = c.sanitizer.Sanitize(post.Content)
	}

	emb := p.Embedded
	if emb == nil {
		return post
	}

	if len(emb.FeaturedMedia) > 0 {
		post.FeaturedImage = emb.FeaturedMedia[0].SourceURL
	}

	for _, group := range emb.Terms {
		for _, term := range group {
			switch term.Taxonomy {
			case taxonomyCategory:
				post.Categories = append(post.Categories, models.Category{
					ID:   strconv.FormatInt(term.ID, 10),
					Name: term.Name,
					Slug: term.Slug,
				})
			case taxonomyTag:
				post.Tags = append(post.Tags, models.Tag{
					ID:   strconv.FormatInt(term.ID, 10),
					Name: term.Name,
					Slug: term.Slug,
				})
			}
		}
	}

	// Restricted authors are embedded as error objects with no id or name.
	if len(emb.Author) > 0 && (emb.Author[0].ID != 0 || emb.Author[0].Name != "") {
		a := emb.Author[0]
		post.Author = models.Author{
			ID:           strconv.FormatInt(a.ID, 10),
			Name:         a.Name,
			Bio:          a.Description,
			ProfileImage: a.AvatarURLs[avatarSize],
		}
	}

	return post
}

func transformCategory(c wpCategory) models.Category {
	return models.Category{
		ID:          strconv.FormatInt(c.ID, 10),
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
	}
}
