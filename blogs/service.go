package blogs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/blogging-api-go/apperror"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

var validate = validator.New(validator.WithRequiredStructEnabled())

// BlogService defines the blog operations. Handlers depend on this interface
// so they can be tested against a stub implementation.
type BlogService interface {
	// List executes the public listing query and packages the result into
	// the paginated envelope.
	List(ctx context.Context, q ListQuery) (*PaginatedBlogsResponse, error)
	// ListByAuthor returns all of one author's blogs, optionally filtered
	// by state, without pagination.
	ListByAuthor(ctx context.Context, authorID int64, state string) (*BlogListResponse, error)
	// Get fetches a single blog, enforcing visibility rules. Fetching a
	// published blog increments its read count.
	Get(ctx context.Context, id int64, callerID *int64) (*Blog, error)
	// Create stores a new draft owned by authorID.
	Create(ctx context.Context, authorID int64, req CreateBlogRequest) (*Blog, error)
	// Update applies a partial update after ownership checks.
	Update(ctx context.Context, id int64, callerID int64, req UpdateBlogRequest) (*Blog, error)
	// Delete removes a blog after ownership checks.
	Delete(ctx context.Context, id int64, callerID int64) error
}

// dbConn is the subset of pgxpool.Pool the service uses. Tests substitute a
// stub so the lifecycle rules can be exercised without a database.
type dbConn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ dbConn = (*pgxpool.Pool)(nil)

type blogServiceImpl struct {
	db dbConn
}

// NewBlogService creates a BlogService backed by the given pool.
func NewBlogService(db *pgxpool.Pool) BlogService {
	return &blogServiceImpl{db: db}
}

// blogSelect joins the reduced author projection into every blog read. The
// join is read-only; mutations never reach the users table.
const blogSelect = `
	SELECT b.id, b.title, b.description, b.author, b.state, b.read_count,
	       b.reading_time, b.tags, b.body, b.created_at, b.updated_at,
	       u.first_name, u.last_name, u.email
	FROM blogs b
	JOIN users u ON b.author = u.id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlog(row rowScanner) (*Blog, error) {
	var b Blog
	var author AuthorInfo
	err := row.Scan(
		&b.ID, &b.Title, &b.Description, &b.AuthorID, &b.State, &b.ReadCount,
		&b.ReadingTime, &b.Tags, &b.Body, &b.CreatedAt, &b.UpdatedAt,
		&author.FirstName, &author.LastName, &author.Email,
	)
	if err != nil {
		return nil, err
	}
	b.Author = &author
	if b.Tags == nil {
		b.Tags = []string{}
	}
	return &b, nil
}

func (s *blogServiceImpl) List(ctx context.Context, q ListQuery) (*PaginatedBlogsResponse, error) {
	where, args := q.filter()

	var total int64
	countQuery := "SELECT COUNT(*) FROM blogs b " + where
	if err := s.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, apperror.NewDatabaseError("failed to count blogs", err)
	}

	dataQuery := fmt.Sprintf("%s %s %s LIMIT $%d OFFSET $%d",
		blogSelect, where, q.order(), len(args)+1, len(args)+2)
	args = append(args, q.Limit, q.offset())

	rows, err := s.db.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list blogs", err)
	}
	defer rows.Close()

	data := []Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, apperror.NewDatabaseError("failed to scan blog row", err)
		}
		data = append(data, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to iterate blog rows", err)
	}

	return &PaginatedBlogsResponse{
		Success: true,
		Count:   len(data),
		Total:   total,
		Page:    q.Page,
		Pages:   q.pages(total),
		Data:    data,
	}, nil
}

func (s *blogServiceImpl) ListByAuthor(ctx context.Context, authorID int64, state string) (*BlogListResponse, error) {
	query := blogSelect + " WHERE b.author = $1"
	args := []interface{}{authorID}
	if state != "" {
		args = append(args, state)
		query += fmt.Sprintf(" AND b.state = $%d", len(args))
	}
	query += " ORDER BY b.created_at DESC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list author blogs", err)
	}
	defer rows.Close()

	data := []Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, apperror.NewDatabaseError("failed to scan blog row", err)
		}
		data = append(data, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to iterate blog rows", err)
	}

	return &BlogListResponse{Success: true, Count: len(data), Data: data}, nil
}

func (s *blogServiceImpl) Get(ctx context.Context, id int64, callerID *int64) (*Blog, error) {
	blog, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canView(blog.State, blog.AuthorID, callerID) {
		return nil, apperror.NewForbiddenError("you do not have permission to view this blog", nil)
	}

	if blog.State == StatePublished {
		// Load-then-save, not atomic: two concurrent fetches can read the
		// same pre-increment value and under-count by one.
		blog.ReadCount++
		if _, err := s.db.Exec(ctx, "UPDATE blogs SET read_count = $1 WHERE id = $2", blog.ReadCount, blog.ID); err != nil {
			return nil, apperror.NewDatabaseError("failed to update read count", err)
		}
	}

	return blog, nil
}

func (s *blogServiceImpl) Create(ctx context.Context, authorID int64, req CreateBlogRequest) (*Blog, error) {
	if err := validate.Struct(req); err != nil {
		return nil, apperror.NewBadRequestError("title and body are required", err)
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	var id int64
	query := `INSERT INTO blogs (title, description, author, tags, body, reading_time)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`
	err := s.db.QueryRow(ctx, query,
		req.Title, req.Description, authorID, tags, req.Body, ReadingTime(req.Body)).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError("a blog with this title already exists", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create blog", err)
	}

	return s.getByID(ctx, id)
}

func (s *blogServiceImpl) Update(ctx context.Context, id int64, callerID int64, req UpdateBlogRequest) (*Blog, error) {
	if req.State != nil && !BlogState(*req.State).IsValid() {
		return nil, apperror.NewBadRequestError("state must be 'draft' or 'published'", nil)
	}

	// Existence is checked before ownership so a missing blog is a 404 even
	// for callers who would not own it.
	authorID, err := s.getAuthorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if authorID != callerID {
		return nil, apperror.NewAuthError("not authorized to update this blog", nil)
	}

	set, args := req.setClauses()
	if len(set) == 0 {
		return s.getByID(ctx, id)
	}
	set = append(set, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE blogs SET %s WHERE id = $%d", strings.Join(set, ", "), len(args))
	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError("a blog with this title already exists", nil)
		}
		return nil, apperror.NewDatabaseError("failed to update blog", err)
	}

	return s.getByID(ctx, id)
}

func (s *blogServiceImpl) Delete(ctx context.Context, id int64, callerID int64) error {
	authorID, err := s.getAuthorID(ctx, id)
	if err != nil {
		return err
	}
	if authorID != callerID {
		return apperror.NewAuthError("not authorized to delete this blog", nil)
	}

	if _, err := s.db.Exec(ctx, "DELETE FROM blogs WHERE id = $1", id); err != nil {
		return apperror.NewDatabaseError("failed to delete blog", err)
	}
	return nil
}

// setClauses builds the SET fragments for a partial update. Only provided
// fields are touched; a body change re-derives reading_time. The author
// column is never in the list.
func (req UpdateBlogRequest) setClauses() ([]string, []interface{}) {
	var set []string
	var args []interface{}
	add := func(col string, val interface{}) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.Tags != nil {
		add("tags", *req.Tags)
	}
	if req.Body != nil {
		add("body", *req.Body)
		add("reading_time", ReadingTime(*req.Body))
	}
	if req.State != nil {
		add("state", *req.State)
	}
	return set, args
}

func (s *blogServiceImpl) getByID(ctx context.Context, id int64) (*Blog, error) {
	blog, err := scanBlog(s.db.QueryRow(ctx, blogSelect+" WHERE b.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("blog not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get blog", err)
	}
	return blog, nil
}

func (s *blogServiceImpl) getAuthorID(ctx context.Context, id int64) (int64, error) {
	var authorID int64
	err := s.db.QueryRow(ctx, "SELECT author FROM blogs WHERE id = $1", id).Scan(&authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperror.NewNotFoundError("blog not found", nil)
		}
		return 0, apperror.NewDatabaseError("failed to get blog", err)
	}
	return authorID, nil
}

var _ BlogService = (*blogServiceImpl)(nil)
