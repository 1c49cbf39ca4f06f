package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nayeemhs/uniassist/internal/domain"
	"github.com/nayeemhs/uniassist/internal/store"
)

// StudentHandler handles student profile endpoints.
type StudentHandler struct {
	repo store.Repository
}

// NewStudentHandler creates a new student handler.
func NewStudentHandler(repo store.Repository) *StudentHandler {
	return &StudentHandler{repo: repo}
}

// RegisterRoutes registers student routes.
func (h *StudentHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/students", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
	})
}

// Create handles POST /api/students: saves a student profile supplied directly
// by the caller (as opposed to fields extracted from chat).
func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var profile domain.StudentProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.repo.CreateStudent(r.Context(), &profile)
	if err != nil {
		slog.Error("failed to create student", "error", err)
		JSON(w, http.StatusInternalServerError, map[string]interface{}{
			"status":  "error",
			"message": "failed to save student data",
		})
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"message":    "Student data saved successfully",
		"student_id": id,
	})
}

// List handles GET /api/students.
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	students, err := h.repo.ListStudents(r.Context())
	if err != nil {
		slog.Error("failed to list students", "error", err)
		Error(w, http.StatusInternalServerError, "failed to load students")
		return
	}
	if students == nil {
		students = []*domain.StudentProfile{}
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"students": students,
		"total":    len(students),
	})
}

// Get handles GET /api/students/{id}. A missing record yields a structured
// not-found payload, not a fault.
func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		Error(w, http.StatusBadRequest, "invalid student id")
		return
	}

	student, err := h.repo.GetStudent(r.Context(), id)
	if err != nil {
		slog.Error("failed to load student", "student_id", id, "error", err)
		Error(w, http.StatusInternalServerError, "failed to load student")
		return
	}
	if student == nil {
		Error(w, http.StatusNotFound, "student not found")
		return
	}

	JSON(w, http.StatusOK, student)
}
