package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// Post is a content item.
type Post struct {
	ID       int64
	PostType string
	Status   string
	Title    string
}

// PostType is a registered content type.
type PostType struct {
	Name  string
	Label string
}

// CreatePostType registers a new content type.
func (s *Store) CreatePostType(name, label string) error {
	if name == "" {
		return fmt.Errorf("post type name is required")
	}
	_, err := s.db.Exec(
		"INSERT INTO post_types (name, label) VALUES (?, ?)", name, label,
	)
	if err != nil {
		return fmt.Errorf("failed to create post type '%s': %w", name, err)
	}
	return nil
}

// HasPostType reports whether a content type exists.
func (s *Store) HasPostType(name string) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM post_types WHERE name = ?", name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListPostTypes returns all registered content types ordered by name.
func (s *Store) ListPostTypes() ([]PostType, error) {
	rows, err := s.db.Query("SELECT name, label FROM post_types ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []PostType
	for rows.Next() {
		var pt PostType
		if err := rows.Scan(&pt.Name, &pt.Label); err != nil {
			return nil, err
		}
		types = append(types, pt)
	}
	return types, rows.Err()
}

// CreatePost adds a content item and returns its ID.
func (s *Store) CreatePost(postType, status, title string) (int64, error) {
	ok, err := s.HasPostType(postType)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrPostTypeNotFound
	}
	if status == "" {
		status = "publish"
	}

	res, err := s.db.Exec(
		"INSERT INTO posts (post_type, status, title) VALUES (?, ?, ?)",
		postType, status, title,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create post: %w", err)
	}
	return res.LastInsertId()
}

// GetPost returns a post by ID, or ErrPostNotFound.
func (s *Store) GetPost(id int64) (*Post, error) {
	var post Post
	err := s.db.QueryRow(
		"SELECT id, post_type, status, title FROM posts WHERE id = ?", id,
	).Scan(&post.ID, &post.PostType, &post.Status, &post.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts returns posts, optionally filtered by type, ordered by ID.
func (s *Store) ListPosts(postType string) ([]Post, error) {
	query := "SELECT id, post_type, status, title FROM posts"
	var args []any
	if postType != "" {
		query += " WHERE post_type = ?"
		args = append(args, postType)
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var post Post
		if err := rows.Scan(&post.ID, &post.PostType, &post.Status, &post.Title); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}
