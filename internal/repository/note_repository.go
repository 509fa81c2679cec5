package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/bhutuklearning/The-Note-App/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

// ErrNotFound is returned when no note exists for the given id.
var ErrNotFound = errors.New("note not found")

// likesRetryAttempts bounds the MVCC retry loop in IncrementLikes.
const likesRetryAttempts = 5

type NoteRepository interface {
	Create(note *domain.Note) error
	FindByID(id string) (*domain.Note, error)
	FindAll() ([]*domain.Note, error)
	Search(query string) ([]*domain.Note, error)
	Update(note *domain.Note) error
	IncrementLikes(id string, delta int64) (*domain.Note, error)
	Delete(id string) (bool, error)
}

type noteRepository struct {
	client *kivik.Client
	dbName string
}

func NewNoteRepository(client *kivik.Client, dbName string) NoteRepository {
	return &noteRepository{
		client: client,
		dbName: dbName,
	}
}

// EnsureIndexes creates the Mango indexes the repository queries against:
// createdAt for the newest-first listing, and title plus creator name for
// search. Safe to call on every startup; CouchDB treats re-creation as a
// no-op.
func EnsureIndexes(client *kivik.Client, dbName string) error {
	db := client.DB(dbName)

	if err := db.CreateIndex(context.Background(), "", "notes-created-at", map[string]interface{}{
		"fields": []string{"createdAt"},
	}); err != nil {
		return fmt.Errorf("failed to create createdAt index: %w", err)
	}

	if err := db.CreateIndex(context.Background(), "", "notes-text", map[string]interface{}{
		"fields": []string{"title", "createdBy.name"},
	}); err != nil {
		return fmt.Errorf("failed to create text index: %w", err)
	}

	return nil
}

func (r *noteRepository) Create(note *domain.Note) error {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("note:%s", note.ID)
	_, err := db.Put(context.Background(), docID, note)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

func (r *noteRepository) FindByID(id string) (*domain.Note, error) {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("note:%s", id)
	row := db.Get(context.Background(), docID)

	var note domain.Note
	if err := row.ScanDoc(&note); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	return &note, nil
}

func (r *noteRepository) FindAll() ([]*domain.Note, error) {
	db := r.client.DB(r.dbName)

	return r.find(db, listQuery(), "failed to list notes")
}

func (r *noteRepository) Search(query string) ([]*domain.Note, error) {
	db := r.client.DB(r.dbName)

	return r.find(db, searchQuery(query), "failed to search notes")
}

// listQuery selects every note ordered newest first. The selector matches on
// "$gt": null rather than "$exists": the planner cannot answer $exists from
// an index and would reject the sort with no_usable_index; $gt null is
// satisfied by the notes-created-at index.
func listQuery() map[string]interface{} {
	return map[string]interface{}{
		"selector": map[string]interface{}{
			"createdAt": map[string]interface{}{"$gt": nil},
		},
		"sort": []map[string]interface{}{
			{"createdAt": "desc"},
		},
	}
}

// searchQuery matches the query as a case-insensitive substring of the
// title, content or creator name. The input is regexp-escaped, not
// user-supplied regex syntax.
func searchQuery(query string) map[string]interface{} {
	pattern := "(?i)" + regexp.QuoteMeta(query)
	match := map[string]interface{}{"$regex": pattern}

	return map[string]interface{}{
		"selector": map[string]interface{}{
			"$or": []map[string]interface{}{
				{"title": match},
				{"content": match},
				{"createdBy.name": match},
			},
		},
	}
}

func (r *noteRepository) find(db *kivik.DB, query map[string]interface{}, failMsg string) ([]*domain.Note, error) {
	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", failMsg, err)
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		var note domain.Note
		if err := rows.ScanDoc(&note); err != nil {
			continue
		}
		notes = append(notes, &note)
	}

	return notes, nil
}

func (r *noteRepository) Update(note *domain.Note) error {
	db := r.client.DB(r.dbName)
	docID := fmt.Sprintf("note:%s", note.ID)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to fetch existing note for update: %w", err)
	}

	existingDoc["title"] = note.Title
	existingDoc["content"] = note.Content
	existingDoc["createdBy"] = note.CreatedBy
	existingDoc["likes"] = note.Likes
	existingDoc["updatedAt"] = note.UpdatedAt

	_, err := db.Put(context.Background(), docID, existingDoc)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	return nil
}

// IncrementLikes adjusts the like counter by delta in a single rev-checked
// write. A conflicting concurrent write makes the Put fail with 409, in which
// case the doc is re-read and the increment retried, so concurrent likes are
// never lost.
func (r *noteRepository) IncrementLikes(id string, delta int64) (*domain.Note, error) {
	db := r.client.DB(r.dbName)
	docID := fmt.Sprintf("note:%s", id)

	for attempt := 0; attempt < likesRetryAttempts; attempt++ {
		var doc map[string]interface{}
		row := db.Get(context.Background(), docID)
		if err := row.ScanDoc(&doc); err != nil {
			if kivik.HTTPStatus(err) == http.StatusNotFound {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("failed to fetch note for like update: %w", err)
		}

		likes, _ := doc["likes"].(float64)
		doc["likes"] = int64(likes) + delta
		doc["updatedAt"] = time.Now()

		if _, err := db.Put(context.Background(), docID, doc); err != nil {
			if kivik.HTTPStatus(err) == http.StatusConflict {
				continue
			}
			return nil, fmt.Errorf("failed to update likes: %w", err)
		}

		var note domain.Note
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to decode updated note: %w", err)
		}
		if err := json.Unmarshal(raw, &note); err != nil {
			return nil, fmt.Errorf("failed to decode updated note: %w", err)
		}
		return &note, nil
	}

	return nil, fmt.Errorf("failed to update likes: too many conflicting writes")
}

func (r *noteRepository) Delete(id string) (bool, error) {
	db := r.client.DB(r.dbName)
	docID := fmt.Sprintf("note:%s", id)

	var doc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&doc); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to fetch note for delete: %w", err)
	}

	rev, _ := doc["_rev"].(string)
	if _, err := db.Delete(context.Background(), docID, rev); err != nil {
		return false, fmt.Errorf("failed to delete note: %w", err)
	}

	return true, nil
}
