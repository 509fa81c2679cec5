package service

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/bhutuklearning/The-Note-App/internal/domain"
	"github.com/bhutuklearning/The-Note-App/internal/repository"
	"github.com/bhutuklearning/The-Note-App/internal/sanitizer"

	"github.com/google/uuid"
)

var socialLinkPattern = regexp.MustCompile(`^https?://.+`)

type NoteService struct {
	repo      repository.NoteRepository
	sanitizer sanitizer.Sanitizer
}

func NewNoteService(repo repository.NoteRepository, s sanitizer.Sanitizer) *NoteService {
	return &NoteService{
		repo:      repo,
		sanitizer: s,
	}
}

func (s *NoteService) ListAll() ([]*domain.Note, error) {
	return s.repo.FindAll()
}

func (s *NoteService) GetByID(id string) (*domain.Note, error) {
	note, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Create(req *domain.CreateNoteRequest) (*domain.Note, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	note := &domain.Note{
		ID:      uuid.New().String(),
		Title:   strings.TrimSpace(req.Title),
		Content: s.sanitizer.Sanitize(req.Content),
		CreatedBy: domain.Creator{
			Name:       strings.TrimSpace(req.CreatedBy.Name),
			SocialLink: req.CreatedBy.SocialLink,
		},
		Likes:     0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(note); err != nil {
		return nil, err
	}

	return note, nil
}

// Update merges the supplied fields into the stored note. Empty values are
// no-ops: sending {"title": ""} leaves the existing title in place rather
// than clearing it.
func (s *NoteService) Update(id string, req *domain.UpdateNoteRequest) (*domain.Note, error) {
	note, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	if title := strings.TrimSpace(req.Title); title != "" {
		note.Title = title
	}
	if req.Content != "" {
		note.Content = s.sanitizer.Sanitize(req.Content)
	}
	if req.CreatedBy != nil {
		if name := strings.TrimSpace(req.CreatedBy.Name); name != "" {
			note.CreatedBy.Name = name
		}
		if req.CreatedBy.SocialLink != "" {
			note.CreatedBy.SocialLink = req.CreatedBy.SocialLink
		}
	}
	note.UpdatedAt = time.Now()

	if err := s.repo.Update(note); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	return note, nil
}

func (s *NoteService) Delete(id string) error {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNoteNotFound
	}
	return nil
}

func (s *NoteService) Like(id string) (*domain.Note, error) {
	return s.adjustLikes(id, 1)
}

func (s *NoteService) Unlike(id string) (*domain.Note, error) {
	return s.adjustLikes(id, -1)
}

func (s *NoteService) adjustLikes(id string, delta int64) (*domain.Note, error) {
	note, err := s.repo.IncrementLikes(id, delta)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return note, nil
}

// Search matches the query as a case-insensitive substring of the title,
// content or creator name. An empty result set is reported as
// ErrNoSearchResults; unlike ListAll, finding nothing here is an error.
func (s *NoteService) Search(query string) ([]*domain.Note, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Field: "q", Message: "search query is required"}
	}

	notes, err := s.repo.Search(query)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, ErrNoSearchResults
	}

	return notes, nil
}

func validateCreate(req *domain.CreateNoteRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if strings.TrimSpace(req.Content) == "" {
		return &ValidationError{Field: "content", Message: "content is required"}
	}
	if strings.TrimSpace(req.CreatedBy.Name) == "" {
		return &ValidationError{Field: "createdBy.name", Message: "creator name is required"}
	}
	if req.CreatedBy.SocialLink != "" && !socialLinkPattern.MatchString(req.CreatedBy.SocialLink) {
		return &ValidationError{Field: "createdBy.socialLink", Message: "social link must be an http(s) URL"}
	}
	return nil
}
