package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/mailer"
	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/model"
	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/search"
	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSearch redirects the browser to the best-matching trek's detail page,
// or home when nothing matches.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	id, ok, err := s.resolver.Resolve(r.Context(), query)
	if err != nil {
		zap.L().Error("search resolve failed", zap.String("query", query), zap.Error(err))
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	http.Redirect(w, r, Links{}.TrekDetailPath(id), http.StatusFound)
}

// handleSuggestions serves the autocomplete dropdown. Results are cached per
// normalized query.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	cacheKey := "search_suggestions_" + search.Normalize(query)

	if v, ok := s.cache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, map[string]any{"results": v.([]model.SuggestionEntry)})
		return
	}

	results, err := s.suggester.Suggest(r.Context(), query)
	if err != nil {
		zap.L().Error("suggestions failed", zap.String("query", query), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to load suggestions")
		return
	}

	s.cache.Set(cacheKey, results, s.suggestionTTL)
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

type contactRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Mobile       string `json:"mobile"`
	UserType     string `json:"user_type"`
	Message      string `json:"message"`
	TrekCategory string `json:"trek_category"`
}

// handleContact validates and persists a contact submission, then composes
// the acknowledgement email and hands it to the background sender. Transport
// failures after hand-off are logged, never surfaced here.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Mobile == "" || req.UserType == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "Please fill all required fields")
		return
	}

	contact := &model.Contact{
		Name:     req.Name,
		Email:    req.Email,
		Mobile:   req.Mobile,
		UserType: req.UserType,
		Message:  req.Message,
	}
	if err := s.store.CreateContact(r.Context(), contact); err != nil {
		zap.L().Error("persist contact failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to save your message")
		return
	}

	email, err := s.mailer.Compose(mailer.Submission{
		Name:         req.Name,
		Email:        req.Email,
		Mobile:       req.Mobile,
		UserType:     req.UserType,
		Message:      req.Message,
		TrekCategory: req.TrekCategory,
	})
	if err != nil {
		zap.L().Error("compose contact email failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to send email: "+eris.Cause(err).Error())
		return
	}
	s.mailer.Dispatch(email)

	writeJSON(w, http.StatusOK, map[string]string{"message": "Message sent successfully"})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	home, err := s.content.HomePage(r.Context(), page)
	if err != nil {
		zap.L().Error("home page failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to load home page")
		return
	}
	writeJSON(w, http.StatusOK, home)
}

func (s *Server) handleListTreks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.TrekFilter{
		Category:   q.Get("category"),
		Difficulty: q.Get("difficulty"),
		Limit:      12,
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 1 {
		filter.Offset = (page - 1) * filter.Limit
	}

	treks, total, err := s.store.ListTreks(r.Context(), filter)
	if err != nil {
		zap.L().Error("list treks failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to load treks")
		return
	}
	if treks == nil {
		treks = []model.Trek{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"treks": treks, "total": total})
}

func (s *Server) handleTrekDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid trek id")
		return
	}

	trek, err := s.store.GetTrek(r.Context(), id)
	if err != nil {
		zap.L().Error("get trek failed", zap.Int64("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to load trek")
		return
	}
	if trek == nil {
		writeError(w, http.StatusNotFound, "Trek not found")
		return
	}

	related, err := s.store.RelatedTreks(r.Context(), id, 4)
	if err != nil {
		zap.L().Warn("related treks failed", zap.Int64("id", id), zap.Error(err))
		related = nil
	}
	if related == nil {
		related = []model.Trek{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"trek": trek, "related": related})
}

func (s *Server) handleBlogs(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	blogs, err := s.content.Blogs(r.Context(), page)
	if err != nil {
		zap.L().Error("list blogs failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to load blogs")
		return
	}
	writeJSON(w, http.StatusOK, blogs)
}

func (s *Server) handleTravelYourWay(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tag")
	if tag == "" {
		writeError(w, http.StatusBadRequest, "tag is required")
		return
	}

	treks, err := s.store.ListTreksByTag(r.Context(), tag)
	if err != nil {
		zap.L().Error("list treks by tag failed", zap.String("tag", tag), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to load treks")
		return
	}
	if treks == nil {
		treks = []model.Trek{}
	}

	categories, err := s.content.TrekCategories(r.Context())
	if err != nil {
		zap.L().Warn("trek categories failed", zap.Error(err))
	}
	if categories == nil {
		categories = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"treks": treks, "tag": tag, "categories": categories})
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	members, err := s.content.TeamMembers(r.Context())
	if err != nil {
		zap.L().Error("team members failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to load team")
		return
	}
	if members == nil {
		members = []model.TeamMember{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"team": members})
}
