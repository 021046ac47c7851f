package wordpress

// Wire types for the WordPress REST API (wp/v2). Only the fields the blog
// reads are declared.

type rendered struct {
	Rendered string `json:"rendered"`
}

type wpPost struct {
	ID            int64       `json:"id"`
	Slug          string      `json:"slug"`
	Title         rendered    `json:"title"`
	Excerpt       rendered    `json:"excerpt"`
	Content       rendered    `json:"content"`
	Date          string      `json:"date"`
	Modified      string      `json:"modified"`
	FeaturedMedia int64       `json:"featured_media"`
	Embedded      *wpEmbedded `json:"_embedded,omitempty"`
}

type wpEmbedded struct {
	FeaturedMedia []wpMedia  `json:"wp:featuredmedia"`
	Terms         [][]wpTerm `json:"wp:term"`
	Author        []wpAuthor `json:"author"`
}

type wpMedia struct {
	SourceURL string `json:"source_url"`
}

// taxonomy values used by WordPress for the two built-in term kinds
const (
	taxonomyCategory = "category"
	taxonomyTag      = "post_tag"
)

type wpTerm struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Taxonomy string `json:"taxonomy"`
}

type wpAuthor struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	AvatarURLs  map[string]string `json:"avatar_urls"`
}

type wpCategory struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}
