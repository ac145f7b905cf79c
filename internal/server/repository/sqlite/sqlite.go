package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Kirill555dg/NotesApp/internal/server/repository"
	"github.com/Kirill555dg/NotesApp/internal/shared/models"
)

type Repository struct {
	db *sql.DB
}

func New(dsn string) (*Repository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS notes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			tags BLOB NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL,
			FOREIGN KEY(user_id) REFERENCES users(id)
		);
		CREATE INDEX IF NOT EXISTS idx_notes_owner_updated ON notes(user_id, updated_at DESC);
	`); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error { return r.db.Close() }

// Users

func (r *Repository) CreateUser(ctx context.Context, username, passwordHash string) (models.User, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `INSERT INTO users(username,password_hash,created_at) VALUES(?,?,?)`, username, passwordHash, now.UnixNano())
	if err != nil {
		var se *sqlite.Error
		if errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return models.User{}, repository.ErrDuplicateUsername
		}
		return models.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	return models.User{ID: id, Username: username, CreatedAt: now}, nil
}

// GetUserByUsername matches the username case-sensitively and also returns
// the stored password hash for credential checks.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (models.User, string, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, username, password_hash, created_at FROM users WHERE username = ?`, username)
	var u models.User
	var hash string
	var created int64
	if err := row.Scan(&u.ID, &u.Username, &hash, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, "", repository.ErrNotFound
		}
		return models.User{}, "", err
	}
	u.CreatedAt = time.Unix(0, created).UTC()
	return u, hash, nil
}

// Notes
//
// Every notes query filters by owner as well as id: a note belonging to
// another user is indistinguishable from one that does not exist.
// Timestamps are stored as Unix nanoseconds; the driver's text encoding of
// time.Time trims trailing zeros, which would break ORDER BY updated_at.

func (r *Repository) CreateNote(ctx context.Context, userID int64, title, content string, tags []string) (models.Note, error) {
	now := time.Now().UTC()
	tagsJSON, err := marshalTags(tags)
	if err != nil {
		return models.Note{}, err
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO notes(user_id, title, content, tags, created_at, updated_at)
		VALUES(?,?,?,?,?,?)
	`, userID, title, content, tagsJSON, now.UnixNano(), now.UnixNano())
	if err != nil {
		return models.Note{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Note{}, err
	}
	return models.Note{ID: id, UserID: userID, Title: title, Content: content, Tags: normalizeTags(tags), CreatedAt: now, UpdatedAt: now}, nil
}

func (r *Repository) GetNote(ctx context.Context, noteID, userID int64) (models.Note, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, content, tags, created_at, updated_at
		FROM notes WHERE id = ? AND user_id = ?
	`, noteID, userID)
	return scanNote(row)
}

func (r *Repository) ListNotes(ctx context.Context, userID int64, offset, limit int) ([]models.Note, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, title, content, tags, created_at, updated_at
		FROM notes WHERE user_id = ?
		ORDER BY updated_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// UpdateNote is a full replace: title, content and tags are all overwritten.
// The write and the re-read run in one transaction so a concurrent delete
// cannot land between them.
func (r *Repository) UpdateNote(ctx context.Context, noteID, userID int64, title, content string, tags []string) (models.Note, error) {
	now := time.Now().UTC()
	tagsJSON, err := marshalTags(tags)
	if err != nil {
		return models.Note{}, err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Note{}, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE notes SET title = ?, content = ?, tags = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, title, content, tagsJSON, now.UnixNano(), noteID, userID)
	if err != nil {
		return models.Note{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Note{}, err
	}
	if affected == 0 {
		return models.Note{}, repository.ErrNotFound
	}
	row := tx.QueryRowContext(ctx, `
		SELECT id, user_id, title, content, tags, created_at, updated_at
		FROM notes WHERE id = ? AND user_id = ?
	`, noteID, userID)
	n, err := scanNote(row)
	if err != nil {
		return models.Note{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Note{}, err
	}
	return n, nil
}

// DeleteNote removes the note and returns the value it held immediately
// before deletion. The read and the delete run in one transaction.
func (r *Repository) DeleteNote(ctx context.Context, noteID, userID int64) (models.Note, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Note{}, err
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `
		SELECT id, user_id, title, content, tags, created_at, updated_at
		FROM notes WHERE id = ? AND user_id = ?
	`, noteID, userID)
	n, err := scanNote(row)
	if err != nil {
		return models.Note{}, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE id = ? AND user_id = ?`, noteID, userID); err != nil {
		return models.Note{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Note{}, err
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (models.Note, error) {
	var n models.Note
	var tagsBytes []byte
	var created, updated int64
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &tagsBytes, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, repository.ErrNotFound
		}
		return models.Note{}, err
	}
	n.CreatedAt = time.Unix(0, created).UTC()
	n.UpdatedAt = time.Unix(0, updated).UTC()
	n.Tags = []string{}
	if len(tagsBytes) > 0 {
		if err := json.Unmarshal(tagsBytes, &n.Tags); err != nil {
			return models.Note{}, err
		}
	}
	return n, nil
}

func marshalTags(tags []string) ([]byte, error) {
	return json.Marshal(normalizeTags(tags))
}

// normalizeTags keeps the stored and returned tag sets non-nil so the wire
// form is always a JSON array.
func normalizeTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
