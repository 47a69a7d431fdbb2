package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"pets-app/internal/domain/posts"
)

type PostsRepo struct {
	db *sql.DB
}

func NewPostsRepo(db *sql.DB) *PostsRepo {
	return &PostsRepo{db: db}
}

func (r *PostsRepo) Create(ctx context.Context, p posts.Post) error {
	likes, err := likesToJSON(p.Likes)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO posts (
			id, pet_id, pet_name,
			pet_image_data, image_data,
			created_at, likes
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		p.ID,
		p.PetID,
		p.PetName,
		p.PetImageData,
		p.ImageData,
		p.CreatedAt,
		likes,
	)
	return err
}

func (r *PostsRepo) Update(ctx context.Context, p posts.Post) error {
	likes, err := likesToJSON(p.Likes)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE posts
		SET
			pet_name = $2,
			pet_image_data = $3,
			image_data = $4,
			likes = $5
		WHERE id = $1
	`,
		p.ID,
		p.PetName,
		p.PetImageData,
		p.ImageData,
		likes,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const postColumns = `
	id, pet_id, pet_name,
	pet_image_data, image_data,
	created_at, likes
`

func (r *PostsRepo) GetByID(ctx context.Context, id string) (posts.Post, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return posts.Post{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE id = $1
	`, id)

	p, err := scanPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return posts.Post{}, ErrNotFound
		}
		return posts.Post{}, err
	}
	return p, nil
}

func (r *PostsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostsRepo) List(ctx context.Context) ([]posts.Post, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+postColumns+`
		FROM posts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPosts(rows)
}

func (r *PostsRepo) ListByPet(ctx context.Context, petID string) ([]posts.Post, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE pet_id = $1
		ORDER BY created_at DESC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPosts(rows)
}

func scanPost(row rowScanner) (posts.Post, error) {
	var p posts.Post
	var likes []byte
	if err := row.Scan(
		&p.ID,
		&p.PetID,
		&p.PetName,
		&p.PetImageData,
		&p.ImageData,
		&p.CreatedAt,
		&likes,
	); err != nil {
		return posts.Post{}, err
	}

	p.Likes = []string{}
	if len(likes) > 0 {
		if err := json.Unmarshal(likes, &p.Likes); err != nil {
			return posts.Post{}, err
		}
	}
	return p, nil
}

func collectPosts(rows *sql.Rows) ([]posts.Post, error) {
	out := make([]posts.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// likes es una columna jsonb; nunca guardamos null para no tener que
// distinguirlo de lista vacía al leer.
func likesToJSON(likes []string) ([]byte, error) {
	if likes == nil {
		likes = []string{}
	}
	return json.Marshal(likes)
}
