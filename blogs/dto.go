// Request and response payloads for the blog endpoints.
package blogs

// CreateBlogRequest is the payload for creating a blog. New blogs always
// start as drafts with a zero read count.
type CreateBlogRequest struct {
	Title       string   `json:"title" validate:"required" example:"My first post"`
	Description string   `json:"description" example:"A short teaser"`
	Tags        []string `json:"tags" example:"go,web"`
	Body        string   `json:"body" validate:"required" example:"The full text of the post."`
}

// UpdateBlogRequest is the payload for a partial update. Only non-nil fields
// are applied; a body change re-derives the reading time. The author is not
// part of the payload and can never change.
type UpdateBlogRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Body        *string   `json:"body,omitempty"`
	State       *string   `json:"state,omitempty"`
}

// BlogResponse wraps a single blog.
type BlogResponse struct {
	Success bool  `json:"success"`
	Data    *Blog `json:"data"`
}

// BlogListResponse wraps an unpaginated list of blogs, as returned by the
// my-blogs endpoint.
type BlogListResponse struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Data    []Blog `json:"data"`
}

// PaginatedBlogsResponse is the envelope returned by the public listing
// endpoint: the requested page of blogs plus pagination metadata.
type PaginatedBlogsResponse struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Total   int64  `json:"total"`
	Page    int    `json:"page"`
	Pages   int    `json:"pages"`
	Data    []Blog `json:"data"`
}

// DeleteResponse is the empty success payload returned after a delete.
type DeleteResponse struct {
	Success bool     `json:"success"`
	Data    struct{} `json:"data"`
}
