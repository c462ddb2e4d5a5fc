// HTTP handlers for the blog endpoints.
package blogs

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/blogging-api-go/apperror"
	"github.com/user/blogging-api-go/auth"
)

// Handlers exposes the blog endpoints over HTTP.
type Handlers struct {
	service BlogService
}

// NewHandlers creates the blog handlers.
func NewHandlers(service BlogService) *Handlers {
	return &Handlers{service: service}
}

func blogIDFromRequest(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apperror.NewBadRequestError("invalid blog id", err)
	}
	return id, nil
}

// HandleList godoc
// @Summary List published blogs
// @Description Returns a filtered, sorted, paginated page of blogs. Drafts are excluded unless state is supplied explicitly.
// @Tags blogs
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param search query string false "Case-insensitive substring match on title, description and tags"
// @Param author query int false "Filter by author id"
// @Param state query string false "Filter by lifecycle state (overrides the published default)"
// @Param sortBy query string false "Comma-separated sort keys, '-' prefix for descending"
// @Success 200 {object} blogs.PaginatedBlogsResponse "Paginated envelope"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /blogs [get]
func (h *Handlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.service.List(r.Context(), ParseListQuery(r.URL.Query()))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleMyBlogs godoc
// @Summary List the caller's blogs
// @Description Returns all blogs owned by the authenticated caller, optionally filtered by state. No pagination.
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Param state query string false "Filter by lifecycle state"
// @Success 200 {object} blogs.BlogListResponse "Caller's blogs"
// @Failure 401 {object} apperror.ErrorResponse "Invalid or missing token"
// @Router /blogs/my-blogs [get]
func (h *Handlers) HandleMyBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("no authenticated user in context", nil))
			return
		}

		resp, err := h.service.ListByAuthor(r.Context(), userID, r.URL.Query().Get("state"))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleGet godoc
// @Summary Get a single blog
// @Description Returns one blog by id. Drafts are visible to their owner only. Fetching a published blog increments its read count.
// @Tags blogs
// @Produce json
// @Param id path int true "Blog id"
// @Success 200 {object} blogs.BlogResponse "The blog"
// @Failure 400 {object} apperror.ErrorResponse "Invalid id"
// @Failure 403 {object} apperror.ErrorResponse "No permission to view this blog"
// @Failure 404 {object} apperror.ErrorResponse "Blog not found"
// @Router /blogs/{id} [get]
func (h *Handlers) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := blogIDFromRequest(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		var callerID *int64
		if userID, ok := auth.UserIDFromContext(r.Context()); ok {
			callerID = &userID
		}

		blog, err := h.service.Get(r.Context(), id, callerID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, BlogResponse{Success: true, Data: blog})
	}
}

// HandleCreate godoc
// @Summary Create a blog
// @Description Creates a new draft owned by the caller. Reading time is derived from the body.
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param blogBody body blogs.CreateBlogRequest true "Blog fields"
// @Success 201 {object} blogs.BlogResponse "Created blog"
// @Failure 400 {object} apperror.ErrorResponse "Missing title or body"
// @Failure 401 {object} apperror.ErrorResponse "Invalid or missing token"
// @Failure 409 {object} apperror.ErrorResponse "Title already exists"
// @Router /blogs [post]
func (h *Handlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("no authenticated user in context", nil))
			return
		}

		var req CreateBlogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		blog, err := h.service.Create(r.Context(), userID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusCreated, BlogResponse{Success: true, Data: blog})
	}
}

// HandleUpdate godoc
// @Summary Update a blog
// @Description Applies a partial update to a blog owned by the caller. A body change recomputes the reading time.
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Blog id"
// @Param blogBody body blogs.UpdateBlogRequest true "Fields to update"
// @Success 200 {object} blogs.BlogResponse "Updated blog"
// @Failure 400 {object} apperror.ErrorResponse "Invalid id or state"
// @Failure 401 {object} apperror.ErrorResponse "Caller is not the owner"
// @Failure 404 {object} apperror.ErrorResponse "Blog not found"
// @Failure 409 {object} apperror.ErrorResponse "Title already exists"
// @Router /blogs/{id} [put]
func (h *Handlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("no authenticated user in context", nil))
			return
		}

		id, err := blogIDFromRequest(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		var req UpdateBlogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		blog, err := h.service.Update(r.Context(), id, userID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, BlogResponse{Success: true, Data: blog})
	}
}

// HandleDelete godoc
// @Summary Delete a blog
// @Description Removes a blog owned by the caller.
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Blog id"
// @Success 200 {object} blogs.DeleteResponse "Empty success payload"
// @Failure 401 {object} apperror.ErrorResponse "Caller is not the owner"
// @Failure 404 {object} apperror.ErrorResponse "Blog not found"
// @Router /blogs/{id} [delete]
func (h *Handlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("no authenticated user in context", nil))
			return
		}

		id, err := blogIDFromRequest(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		if err := h.service.Delete(r.Context(), id, userID); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, DeleteResponse{Success: true})
	}
}
