package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/arjunm/coursehub/internal/api/middleware"
	"github.com/arjunm/coursehub/internal/domain"
	"github.com/arjunm/coursehub/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CourseHandler struct {
	courseService *service.CourseService
}

func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

type CreateCourseRequest struct {
	Title        string  `json:"title"`
	Subtitle     string  `json:"subtitle"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Level        string  `json:"level"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	ThumbnailURL string  `json:"thumbnailUrl"`
}

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "You are not logged in")
		return
	}

	var req CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" || req.Category == "" {
		writeError(w, http.StatusBadRequest, "Title and category are required")
		return
	}
	if req.Price < 0 {
		writeError(w, http.StatusBadRequest, "Price must be non-negative")
		return
	}

	course, err := h.courseService.CreateCourse(r.Context(), userID, service.CreateCourseInput{
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		Description:  req.Description,
		Category:     req.Category,
		Level:        domain.CourseLevel(req.Level),
		Price:        req.Price,
		Currency:     req.Currency,
		ThumbnailURL: req.ThumbnailURL,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, course)
}

type UpdateCourseRequest struct {
	Title        *string  `json:"title,omitempty"`
	Subtitle     *string  `json:"subtitle,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	ThumbnailURL *string  `json:"thumbnailUrl,omitempty"`
}

func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "You are not logged in")
		return
	}

	courseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid course id")
		return
	}

	var req UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	course, err := h.courseService.UpdateCourse(r.Context(), courseID, userID, service.UpdateCourseInput{
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		Description:  req.Description,
		Category:     req.Category,
		Price:        req.Price,
		ThumbnailURL: req.ThumbnailURL,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) Publish(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, true)
}

func (h *CourseHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, false)
}

func (h *CourseHandler) setPublished(w http.ResponseWriter, r *http.Request, published bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "You are not logged in")
		return
	}

	courseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid course id")
		return
	}

	course, err := h.courseService.SetPublished(r.Context(), courseID, userID, published)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	courseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid course id")
		return
	}

	viewerID, _ := middleware.GetUserID(r.Context())

	course, err := h.courseService.GetCourse(r.Context(), courseID, viewerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	category := r.URL.Query().Get("category")

	courses, err := h.courseService.ListPublished(r.Context(), category, limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"courses": courses})
}

type AddLectureRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	VideoURL        string `json:"videoUrl"`
	DurationSeconds int    `json:"durationSeconds"`
	IsPreview       bool   `json:"isPreview"`
	Position        int    `json:"position"`
}

func (h *CourseHandler) AddLecture(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "You are not logged in")
		return
	}

	courseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid course id")
		return
	}

	var req AddLectureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	lecture, err := h.courseService.AddLecture(r.Context(), courseID, userID, service.AddLectureInput{
		Title:           req.Title,
		Description:     req.Description,
		VideoURL:        req.VideoURL,
		DurationSeconds: req.DurationSeconds,
		IsPreview:       req.IsPreview,
		Position:        req.Position,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, lecture)
}

func (h *CourseHandler) ListLectures(w http.ResponseWriter, r *http.Request) {
	courseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid course id")
		return
	}

	viewerID, _ := middleware.GetUserID(r.Context())

	lectures, err := h.courseService.ListLectures(r.Context(), courseID, viewerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"lectures": lectures})
}

type RateCourseRequest struct {
	Stars   int    `json:"stars"`
	Comment string `json:"comment"`
}

func (h *CourseHandler) Rate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "You are not logged in")
		return
	}

	courseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid course id")
		return
	}

	var req RateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rating, err := h.courseService.RateCourse(r.Context(), courseID, userID, req.Stars, req.Comment)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, rating)
}

func (h *CourseHandler) ListRatings(w http.ResponseWriter, r *http.Request) {
	courseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid course id")
		return
	}

	ratings, err := h.courseService.ListRatings(r.Context(), courseID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"ratings": ratings})
}
