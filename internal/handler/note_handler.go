package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bhutuklearning/The-Note-App/internal/domain"
	"github.com/bhutuklearning/The-Note-App/internal/service"
	"github.com/bhutuklearning/The-Note-App/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type NoteHandler struct {
	service  *service.NoteService
	validate *validator.Validate
}

func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{
		service:  service,
		validate: validator.New(),
	}
}

type likeResponse struct {
	Likes   int64        `json:"likes"`
	NoteID  string       `json:"noteId"`
	Note    *domain.Note `json:"note"`
	Message string       `json:"message"`
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.service.ListAll()
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch notes")
		response.Fail(w, http.StatusInternalServerError, "Failed to fetch notes")
		return
	}

	if notes == nil {
		notes = []*domain.Note{}
	}
	response.JSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	note, err := h.service.GetByID(noteID)
	if err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			response.Err(w, http.StatusNotFound, "Note not found")
			return
		}
		logrus.WithError(err).WithField("note_id", noteID).Error("Failed to fetch note by ID")
		response.Fail(w, http.StatusInternalServerError, "Failed to fetch notes")
		return
	}

	response.JSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Fail(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.Fail(w, http.StatusBadRequest, "All fields are required")
		return
	}

	note, err := h.service.Create(&req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			message := "All fields are required"
			if verr.Field == "createdBy.socialLink" {
				message = verr.Message
			}
			response.Fail(w, http.StatusBadRequest, message)
			return
		}
		logrus.WithError(err).Error("Failed to create note")
		response.Fail(w, http.StatusInternalServerError, "Failed to create note")
		return
	}

	response.OK(w, http.StatusCreated, "Note created successfully", note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	var req domain.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Fail(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	note, err := h.service.Update(noteID, &req)
	if err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			response.Fail(w, http.StatusNotFound, "Note not found")
			return
		}
		logrus.WithError(err).WithField("note_id", noteID).Error("Failed to update note")
		response.Fail(w, http.StatusInternalServerError, "Failed to update note")
		return
	}

	response.OK(w, http.StatusOK, "Note updated successfully", note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	if err := h.service.Delete(noteID); err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			response.Fail(w, http.StatusNotFound, "Note not found")
			return
		}
		logrus.WithError(err).WithField("note_id", noteID).Error("Failed to delete note")
		response.Fail(w, http.StatusInternalServerError, "Failed to delete note")
		return
	}

	response.OK(w, http.StatusOK, "Note deleted successfully", nil)
}

func (h *NoteHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.adjustLikes(w, r, h.service.Like, "Note liked successfully")
}

func (h *NoteHandler) Dislike(w http.ResponseWriter, r *http.Request) {
	h.adjustLikes(w, r, h.service.Unlike, "Note unliked successfully")
}

func (h *NoteHandler) adjustLikes(w http.ResponseWriter, r *http.Request, op func(string) (*domain.Note, error), message string) {
	noteID := mux.Vars(r)["id"]

	note, err := op(noteID)
	if err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			response.Err(w, http.StatusNotFound, "Note not found")
			return
		}
		logrus.WithError(err).WithField("note_id", noteID).Error("Failed to update likes")
		response.Fail(w, http.StatusInternalServerError, "Failed to like note")
		return
	}

	response.JSON(w, http.StatusOK, likeResponse{
		Likes:   note.Likes,
		NoteID:  note.ID,
		Note:    note,
		Message: message,
	})
}

func (h *NoteHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	notes, err := h.service.Search(query)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			response.Message(w, http.StatusBadRequest, "Search query is required")
			return
		}
		if errors.Is(err, service.ErrNoSearchResults) {
			response.Message(w, http.StatusNotFound, "No matching notes found")
			return
		}
		logrus.WithError(err).WithField("query", query).Error("Failed to search notes")
		response.Message(w, http.StatusInternalServerError, "Server error")
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"results": notes})
}
