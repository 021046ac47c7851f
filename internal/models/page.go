package models

// ListOptions narrows a post listing
type ListOptions struct {
	Featured bool
}

// PostPage is one page of a post listing.
// TotalPages is 0 when the source cannot report it.
type PostPage struct {
	Posts      []Post `json:"posts"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
	HasMore    bool   `json:"has_more"`
}

// EmptyPage returns a page with no posts
func EmptyPage(page, pageSize int) PostPage {
	return PostPage{
		Posts:    []Post{},
		Page:     page,
		PageSize: pageSize,
	}
}

// Paginate slices posts into the requested 1-based page.
// Pages past the end are empty, not an error.
func Paginate(posts []Post, page, pageSize int) PostPage {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	total := len(posts)
	out := PostPage{
		Posts:      []Post{},
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}

	start := (page - 1) * pageSize
	if start >= total {
		return out
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	out.Posts = append(out.Posts, posts[start:end]...)
	out.HasMore = page < out.TotalPages
	return out
}
