package domain

import "time"

// Note is the persisted entity. The same shape is stored in CouchDB and
// returned over the API, so the JSON tags are the public contract.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedBy Creator   `json:"createdBy"`
	Likes     int64     `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Creator struct {
	Name       string `json:"name"`
	SocialLink string `json:"socialLink,omitempty"`
}

type CreateNoteRequest struct {
	Title     string         `json:"title" validate:"required"`
	Content   string         `json:"content" validate:"required"`
	CreatedBy CreatorRequest `json:"createdBy" validate:"required"`
}

type CreatorRequest struct {
	Name       string `json:"name" validate:"required"`
	SocialLink string `json:"socialLink"`
}

// UpdateNoteRequest carries partial fields. Empty strings mean "leave the
// stored value alone", never "clear it".
type UpdateNoteRequest struct {
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	CreatedBy *CreatorRequest `json:"createdBy"`
}
