package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	appgen "github.com/bryanwahyu/proposal-ai/internal/application/generation"
	appsettings "github.com/bryanwahyu/proposal-ai/internal/application/settings"
	domgen "github.com/bryanwahyu/proposal-ai/internal/domain/generation"
	domset "github.com/bryanwahyu/proposal-ai/internal/domain/settings"
	"github.com/bryanwahyu/proposal-ai/internal/middleware"
)

type Router struct {
	genSvc *appgen.Service
	setSvc *appsettings.Service
}

// NewRouter mounts the API. setSvc may be nil when no database is configured;
// the settings/persona routes are then not registered.
func NewRouter(genSvc *appgen.Service, setSvc *appsettings.Service) http.Handler {
	r := &Router{genSvc: genSvc, setSvc: setSvc}
	mux := chi.NewRouter()

	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.Route("/v1/ai", func(rt chi.Router) {
		rt.Post("/sections", r.wrap(r.handleGenerateSection))
		rt.Post("/analyze", r.wrap(r.handleAnalyzeSolicitation))
		rt.Post("/improve", r.wrap(r.handleImproveContent))
		rt.Post("/summary", r.wrap(r.handleExecutiveSummary))
		rt.Get("/status", r.wrap(r.handleStatus))
		rt.Get("/models", r.wrap(r.handleListModels))
	})

	if setSvc != nil {
		mux.Route("/v1/settings", func(rt chi.Router) {
			rt.Get("/", r.wrap(r.handleListSettings))
			rt.Get("/{key}", r.wrap(r.handleGetSetting))
			rt.Put("/{key}", r.wrap(r.handlePutSetting))
		})
		mux.Route("/v1/personas", func(rt chi.Router) {
			rt.Post("/", r.wrap(r.handleCreatePersona))
			rt.Get("/", r.wrap(r.handleListPersonas))
			rt.Get("/{id}", r.wrap(r.handleGetPersona))
			rt.Delete("/{id}", r.wrap(r.handleDeletePersona))
		})
	}

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap maps domain errors to HTTP statuses in one place. ServiceUnavailable
// is retryable (503), any other gateway failure is a bad upstream (502).
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			var gw *domgen.GatewayError
			switch {
			case errors.Is(err, domgen.ErrServiceUnavailable):
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
			case errors.As(err, &gw):
				http.Error(w, gw.Error(), http.StatusBadGateway)
			case errors.Is(err, domset.ErrNotFound), errors.Is(err, sql.ErrNoRows):
				http.Error(w, "not found", http.StatusNotFound)
			case errors.Is(err, domset.ErrDefaultPersona):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// POST /v1/ai/sections
func (r *Router) handleGenerateSection(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Prompt      string                  `json:"prompt"`
		ContentType string                  `json:"content_type"`
		Hints       domgen.RequirementHints `json:"hints"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	body.Prompt = middleware.SanitizeString(body.Prompt)
	if body.Prompt == "" {
		return fmt.Errorf("prompt is required")
	}
	if body.ContentType != "" {
		if err := middleware.ValidateContentType(body.ContentType); err != nil {
			return err
		}
	}

	middleware.IncrementGenerations()
	res, err := r.genSvc.GenerateSection(req.Context(), appgen.GenerateSectionCommand{
		Prompt:      body.Prompt,
		ContentType: body.ContentType,
		Hints:       body.Hints,
	})
	if err != nil {
		middleware.IncrementGenerationsFailed()
		return err
	}
	middleware.AddWordsGenerated(res.WordCount)
	return writeJSON(w, res)
}

// POST /v1/ai/analyze
func (r *Router) handleAnalyzeSolicitation(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Document string `json:"document"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	body.Document = middleware.SanitizeString(body.Document)
	if body.Document == "" {
		return fmt.Errorf("document is required")
	}

	middleware.IncrementGenerations()
	res, err := r.genSvc.AnalyzeSolicitation(req.Context(), body.Document)
	if err != nil {
		middleware.IncrementGenerationsFailed()
		return err
	}
	return writeJSON(w, res)
}

// POST /v1/ai/improve
func (r *Router) handleImproveContent(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Content         string `json:"content"`
		ImprovementType string `json:"improvement_type"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	if body.Content == "" {
		return fmt.Errorf("content is required")
	}
	if body.ImprovementType != "" {
		if err := middleware.ValidateImprovementType(body.ImprovementType); err != nil {
			return err
		}
	}

	middleware.IncrementGenerations()
	res, err := r.genSvc.ImproveContent(req.Context(), appgen.ImproveContentCommand{
		Content:         body.Content,
		ImprovementType: body.ImprovementType,
	})
	if err != nil {
		middleware.IncrementGenerationsFailed()
		return err
	}
	return writeJSON(w, res)
}

// POST /v1/ai/summary
func (r *Router) handleExecutiveSummary(w http.ResponseWriter, req *http.Request) error {
	var body domgen.ProposalSnapshot
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}

	middleware.IncrementGenerations()
	res, err := r.genSvc.GenerateExecutiveSummary(req.Context(), body)
	if err != nil {
		middleware.IncrementGenerationsFailed()
		return err
	}
	return writeJSON(w, res)
}

// GET /v1/ai/status
func (r *Router) handleStatus(w http.ResponseWriter, req *http.Request) error {
	available := r.genSvc.CheckAvailability(req.Context())
	models, _ := r.genSvc.ListModels(req.Context())
	return writeJSON(w, map[string]any{
		"available": available,
		"models":    models,
	})
}

// GET /v1/ai/models
func (r *Router) handleListModels(w http.ResponseWriter, req *http.Request) error {
	models, err := r.genSvc.ListModels(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, models)
}

// GET /v1/settings
func (r *Router) handleListSettings(w http.ResponseWriter, req *http.Request) error {
	list, err := r.setSvc.ListSettings(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, list)
}

// GET /v1/settings/{key}
func (r *Router) handleGetSetting(w http.ResponseWriter, req *http.Request) error {
	key := chi.URLParam(req, "key")

	setting, value, err := r.setSvc.GetSetting(req.Context(), key)
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]any{
		"key":        setting.Key,
		"type":       setting.Type,
		"value":      value,
		"updated_at": setting.UpdatedAt,
	})
}

// PUT /v1/settings/{key}
func (r *Router) handlePutSetting(w http.ResponseWriter, req *http.Request) error {
	key := chi.URLParam(req, "key")
	var body struct {
		Value string `json:"value"`
		Type  string `json:"type"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	if err := middleware.ValidateSettingType(body.Type); err != nil {
		return err
	}

	setting, err := r.setSvc.PutSetting(req.Context(), key, body.Value, domset.ValueType(body.Type))
	if err != nil {
		return err
	}
	return writeJSON(w, setting)
}

// POST /v1/personas
func (r *Router) handleCreatePersona(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Name         string `json:"name"`
		SystemPrompt string `json:"system_prompt"`
		IsDefault    bool   `json:"is_default"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}

	p, err := r.setSvc.CreatePersona(req.Context(), appsettings.CreatePersonaCommand{
		Name:         body.Name,
		SystemPrompt: body.SystemPrompt,
		IsDefault:    body.IsDefault,
	})
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	return json.NewEncoder(w).Encode(p)
}

// GET /v1/personas
func (r *Router) handleListPersonas(w http.ResponseWriter, req *http.Request) error {
	list, err := r.setSvc.ListPersonas(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, list)
}

// GET /v1/personas/{id}
func (r *Router) handleGetPersona(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")

	p, err := r.setSvc.GetPersona(req.Context(), domset.PersonaID(id))
	if err != nil {
		return err
	}
	return writeJSON(w, p)
}

// DELETE /v1/personas/{id}
func (r *Router) handleDeletePersona(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")

	if err := r.setSvc.DeletePersona(req.Context(), domset.PersonaID(id)); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
