package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/poiesic/talentrank/core"
	"github.com/poiesic/talentrank/ranking"
	"github.com/poiesic/talentrank/registry"
	"github.com/poiesic/talentrank/tabular"
)

// Search request bounds and defaults.
const (
	MinAge        = 16
	MaxAge        = 99
	DefaultAgeMin = 18
	DefaultAgeMax = 65
	MinTopK       = 1
	MaxTopK       = 20
	DefaultTopK   = 5
)

type datasetResponse struct {
	DatasetID registry.ID `json:"dataset_id"`
}

type searchRequest struct {
	DatasetID string   `json:"dataset_id"`
	Query     *string  `json:"query"`
	Skills    []string `json:"skills"`
	AgeMin    *int     `json:"age_min"`
	AgeMax    *int     `json:"age_max"`
	TopK      *int     `json:"top_k"`
}

type searchResponse struct {
	Results []core.Candidate `json:"results"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit))
			return
		}
		s.writeError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	format, err := tabular.FormatFromName(header.Filename)
	if err != nil {
		s.writeError(w, http.StatusUnsupportedMediaType, "file must be .xlsx, .csv or .tsv")
		return
	}

	table, err := tabular.Read(file, format)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse %s: %v", header.Filename, err))
		return
	}

	id, err := s.svc.LoadDataset(r.Context(), table)
	if err != nil {
		s.logger.Warn("dataset load failed", "file", header.Filename, "err", err)
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to load %s: %v", header.Filename, err))
		return
	}

	writeJSON(w, http.StatusCreated, datasetResponse{DatasetID: id})
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]registry.Info{"datasets": s.svc.Datasets()})
}

func (s *Server) handleEvict(w http.ResponseWriter, r *http.Request) {
	id := registry.ID(r.PathValue("id"))
	if err := s.svc.Evict(id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "unknown dataset_id")
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err))
		return
	}

	q, err := req.toQuery()
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	results, err := s.svc.Search(r.Context(), registry.ID(req.DatasetID), q)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			s.writeError(w, http.StatusNotFound, "unknown dataset_id, upload a dataset first")
		case errors.Is(err, ranking.ErrInvalidQuery):
			s.writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.logger.Error("search failed", "dataset_id", req.DatasetID, "err", err)
			s.writeError(w, http.StatusInternalServerError, "search failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{Results: results})
}

// toQuery applies defaults and range checks. The age_min <= age_max check
// happens after the dataset lookup so unknown ids report 404 first.
func (req *searchRequest) toQuery() (ranking.Query, error) {
	if req.DatasetID == "" {
		return ranking.Query{}, errors.New("dataset_id is required")
	}
	if req.Query == nil {
		return ranking.Query{}, errors.New("query is required")
	}

	q := ranking.Query{
		Text:   *req.Query,
		Skills: req.Skills,
		AgeMin: intOr(req.AgeMin, DefaultAgeMin),
		AgeMax: intOr(req.AgeMax, DefaultAgeMax),
		TopK:   intOr(req.TopK, DefaultTopK),
	}
	if q.AgeMin < MinAge || q.AgeMin > MaxAge {
		return q, fmt.Errorf("age_min must be between %d and %d", MinAge, MaxAge)
	}
	if q.AgeMax < MinAge || q.AgeMax > MaxAge {
		return q, fmt.Errorf("age_max must be between %d and %d", MinAge, MaxAge)
	}
	if q.TopK < MinTopK || q.TopK > MaxTopK {
		return q, fmt.Errorf("top_k must be between %d and %d", MinTopK, MaxTopK)
	}
	return q, nil
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
