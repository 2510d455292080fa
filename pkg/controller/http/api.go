package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scribe/pkg/domain/model"
	"github.com/secmon-lab/scribe/pkg/usecase"
	"github.com/secmon-lab/scribe/pkg/utils/errutil"
	"github.com/secmon-lab/scribe/pkg/utils/safe"
)

type modelParamsRequest struct {
	Config model.RunConfig     `json:"config"`
	Extra  *usecase.ModelExtra `json:"extra,omitempty"`
}

type reflectionsResponse struct {
	Reflections string `json:"reflections"`
}

type artifactRequest struct {
	Artifact *model.Artifact `json:"artifact"`
	Shorten  bool            `json:"shorten,omitempty"`
	Template string          `json:"template,omitempty"`
}

type artifactResponse struct {
	Content string `json:"content"`
}

func (s *Server) resolveModelHandler(w http.ResponseWriter, r *http.Request) {
	var cfg model.RunConfig
	if !decodeRequest(w, r, &cfg) {
		return
	}

	resolved, err := s.uc.Resolver.Resolve(&cfg)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, resolved.Redacted())
}

func (s *Server) modelParamsHandler(w http.ResponseWriter, r *http.Request) {
	var req modelParamsRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	params, err := s.uc.Models.BuildParams(r.Context(), &req.Config, req.Extra)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, params.Redacted())
}

func (s *Server) contextDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	var cfg model.RunConfig
	if !decodeRequest(w, r, &cfg) {
		return
	}

	messages, err := s.uc.Documents.Build(r.Context(), &cfg)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, messages)
}

func (s *Server) reflectionsHandler(w http.ResponseWriter, r *http.Request) {
	var opts []usecase.ReflectionOption
	switch only := r.URL.Query().Get("only"); only {
	case "":
	case "style":
		opts = append(opts, usecase.WithOnlyStyle())
	case "content":
		opts = append(opts, usecase.WithOnlyContent())
	default:
		handleError(w, r, goerr.Wrap(usecase.ErrInvalidArgument, "only must be style or content", goerr.V("only", only)))
		return
	}

	var cfg model.RunConfig
	if !decodeRequest(w, r, &cfg) {
		return
	}

	reflections, err := s.uc.Reflection.GetFormattedReflections(r.Context(), &cfg, opts...)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, reflectionsResponse{Reflections: reflections})
}

func (s *Server) artifactHandler(w http.ResponseWriter, r *http.Request) {
	var req artifactRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	content, err := usecase.GetArtifactContent(req.Artifact)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var formatted string
	if req.Template != "" {
		formatted = usecase.FormatArtifactContentWithTemplate(req.Template, content, req.Shorten)
	} else {
		formatted = usecase.FormatArtifactContent(content, req.Shorten)
	}

	writeJSON(w, r, artifactResponse{Content: formatted})
}

func decodeRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode request body"), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	safe.Write(r.Context(), w, data)
}

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, statusCode(err))
}

// statusCode maps use case errors onto HTTP status codes
func statusCode(err error) int {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrMissingConfig),
		errors.Is(err, usecase.ErrMissingAssistantID),
		errors.Is(err, usecase.ErrInvalidArgument),
		errors.Is(err, usecase.ErrArtifactNotFound):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrUnknownProvider),
		errors.Is(err, usecase.ErrUnsupportedDocumentType):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
