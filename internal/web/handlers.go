package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/andesmarket/bulkimport/internal/core"
	"github.com/andesmarket/bulkimport/internal/logging"
	"github.com/go-chi/chi/v5"
)

// defaultHistoryLimit bounds history responses when no limit is given.
const defaultHistoryLimit = 50

// entitySummary is the catalog entry returned by handleListEntities.
type entitySummary struct {
	Key    string         `json:"key"`
	Label  string         `json:"label"`
	Fields []fieldSummary `json:"fields"`
}

type fieldSummary struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Unique   bool   `json:"unique,omitempty"`
}

// handleHealth reports liveness and current pipeline load.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"active_runs": s.service.LimiterActive(),
	})
}

// handleListEntities returns the registered entity schemas.
func (s *Server) handleListEntities(w http.ResponseWriter, r *http.Request) {
	schemas := s.service.Entities()

	out := make([]entitySummary, 0, len(schemas))
	for _, schema := range schemas {
		fields := make([]fieldSummary, 0, len(schema.Fields))
		for _, f := range schema.Fields {
			typ := "string"
			if f.Type == core.ValueNumber {
				typ = "number"
			}
			fields = append(fields, fieldSummary{
				Name:     f.Name,
				Type:     typ,
				Required: f.Required,
				Unique:   f.UniqueKey,
			})
		}
		out = append(out, entitySummary{
			Key:    schema.Key,
			Label:  schema.Label,
			Fields: fields,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"entities": out})
}

// handleValidate runs the validation pipeline on an uploaded file.
//
// The file arrives either as a multipart form field named "file" or as the
// raw request body. The validation verdict is always a 200 response; only
// transport-level problems (missing file, unknown entity, no free run slot)
// produce error statuses.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	entityKey := chi.URLParam(r, "entityKey")
	if _, ok := core.Get(entityKey); !ok {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("unknown entity: %s", entityKey))
		return
	}

	text, fileName, err := readUploadedFile(w, r, s.cfg.Pipeline.MaxFileSize)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.service.ValidateFile(r.Context(), entityKey, fileName, text)
	if err != nil {
		if errors.Is(err, core.ErrTooManyRuns) {
			w.Header().Set("Retry-After", "30")
			writeError(w, r, http.StatusTooManyRequests, err.Error())
			return
		}
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleInsert relays a reconciled record set to the system of record.
// The body is a JSON array of records, or an object with a "records" key.
func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	entityKey := chi.URLParam(r, "entityKey")
	if _, ok := core.Get(entityKey); !ok {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("unknown entity: %s", entityKey))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Pipeline.MaxFileSize)
	records, err := decodeRecords(r.Body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(records) == 0 {
		writeError(w, r, http.StatusBadRequest, "no records to insert")
		return
	}

	outcome, err := s.service.InsertRecords(r.Context(), entityKey, records)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	logging.FromContext(r.Context()).Info("insert relayed",
		"entity", entityKey,
		"records", len(records),
		"ok", outcome.OK,
		"remote_status", outcome.Status,
	)

	status := http.StatusOK
	if !outcome.OK {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, outcome)
}

// handleDownloadTemplate serves a downloadable CSV template for an entity.
func (s *Server) handleDownloadTemplate(w http.ResponseWriter, r *http.Request) {
	entityKey := chi.URLParam(r, "entityKey")
	if _, ok := core.Get(entityKey); !ok {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("unknown entity: %s", entityKey))
		return
	}

	csvText, err := s.service.Template(r.Context(), entityKey)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", entityKey+"_template.csv"))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, csvText)
}

// handleHistory returns recent pipeline runs for an entity.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	entityKey := chi.URLParam(r, "entityKey")
	if _, ok := core.Get(entityKey); !ok {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("unknown entity: %s", entityKey))
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	entries, err := s.service.History(r.Context(), entityKey, limit)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"runs": entries})
}

// readUploadedFile extracts the file text from a multipart form field named
// "file", falling back to the raw request body for clients that post the
// CSV text directly.
func readUploadedFile(w http.ResponseWriter, r *http.Request, maxSize int64) (text, fileName string, err error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxSize); err != nil {
			return "", "", errors.New("file too large or invalid form")
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return "", "", errors.New("no file provided")
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return "", "", errors.New("failed to read file")
		}
		return string(data), header.Filename, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", "", errors.New("failed to read request body")
	}
	if len(data) == 0 {
		return "", "", errors.New("no file provided")
	}
	return string(data), "", nil
}

// decodeRecords accepts either a bare JSON array of records or an object
// wrapping it under "records".
func decodeRecords(body io.Reader) ([]map[string]any, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.New("failed to read request body")
	}

	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err == nil {
		return records, nil
	}

	var wrapper struct {
		Records []map[string]any `json:"records"`
	}
	if err := json.Unmarshal(raw, &wrapper); err == nil && wrapper.Records != nil {
		return wrapper.Records, nil
	}

	return nil, errors.New("body must be a JSON array of records")
}
