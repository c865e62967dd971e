package handler

import (
	"errors"
	"net/http"

	"github.com/vasavipoluri/student-registry-api/internal/model"
	"github.com/vasavipoluri/student-registry-api/internal/payload"
	"github.com/vasavipoluri/student-registry-api/internal/usecase"
)

type studentListResponse struct {
	Students []*model.Student `json:"students"`
	User     string           `json:"user"`
}

type studentResponse struct {
	Student *model.Student `json:"student"`
	User    string         `json:"user"`
}

func (h *HTTPHandler) registrationPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, payload.PageResponse{
		Page: "registration",
		User: usernameFromContext(r.Context()),
	})
}

func (h *HTTPHandler) createRegistration(w http.ResponseWriter, r *http.Request) {
	var req payload.StudentRequest
	if !h.decode(w, r, &req) {
		return
	}

	username := usernameFromContext(r.Context())

	students, err := h.registrationUsecase.Create(r.Context(), username, studentParams(req))
	if err != nil {
		if errors.Is(err, usecase.ErrAlreadyRegistered) {
			http.Redirect(w, r, "/already-registered", http.StatusSeeOther)
			return
		}

		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, studentListResponse{
		Students: students,
		User:     username,
	})
}

// getStudent is a plain lookup; reads are not ownership-checked.
func (h *HTTPHandler) getStudent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeErrors(w, http.StatusBadRequest, "invalid student id")
		return
	}

	student, err := h.registrationUsecase.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, studentResponse{
		Student: student,
		User:    usernameFromContext(r.Context()),
	})
}

func (h *HTTPHandler) listStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.registrationUsecase.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, studentListResponse{
		Students: students,
		User:     usernameFromContext(r.Context()),
	})
}

// editStudentForm returns the record for prefilling the edit form, applying
// the same ownership rule as the mutation itself.
func (h *HTTPHandler) editStudentForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeErrors(w, http.StatusBadRequest, "invalid student id")
		return
	}

	username := usernameFromContext(r.Context())

	student, err := h.registrationUsecase.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrStudentNotFound) {
			h.respondError(w, r, usecase.ErrNotOwner)
			return
		}

		h.respondError(w, r, err)
		return
	}

	if student.Email != username {
		h.respondError(w, r, usecase.ErrNotOwner)
		return
	}

	writeJSON(w, http.StatusOK, studentResponse{
		Student: student,
		User:    username,
	})
}

func (h *HTTPHandler) editStudent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeErrors(w, http.StatusBadRequest, "invalid student id")
		return
	}

	var req payload.StudentRequest
	if !h.decode(w, r, &req) {
		return
	}

	username := usernameFromContext(r.Context())

	if err := h.registrationUsecase.Edit(r.Context(), username, id, studentParams(req)); err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, payload.MessageResponse{Message: "Student details updated successfully"})
}

func (h *HTTPHandler) deleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeErrors(w, http.StatusBadRequest, "invalid student id")
		return
	}

	username := usernameFromContext(r.Context())

	if err := h.registrationUsecase.Delete(r.Context(), username, id); err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, payload.MessageResponse{Message: "Student details deleted successfully"})
}

func studentParams(req payload.StudentRequest) usecase.StudentParams {
	return usecase.StudentParams{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Email:       req.Email,
		Phone:       req.Phone,
		CollegeName: req.CollegeName,
		Degree:      req.Degree,
		Course:      req.Course,
	}
}
