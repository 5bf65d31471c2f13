package http

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/schemas"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/sheet"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/storage"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/summarize"
)

type summariesResp struct {
	Summaries []summarize.GenerationRecord `json:"summaries"`
}

func (s *Server) presignSummarize(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errResp{"query param 'name' required"})
		return
	}
	url, err := s.store.PresignPut(r.Context(), name, "text/csv")
	if err != nil {
		s.log.Error("presign failed", zap.String("key", name), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errResp{"presign fail"})
		return
	}
	writeJSON(w, http.StatusOK, schemas.PresignResponse{URL: url})
}

func (s *Server) summarizeData(w http.ResponseWriter, r *http.Request) {
	var req schemas.SummarizeRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{err.Error()})
		return
	}
	if f := req.Missing(); f != "" {
		writeJSON(w, http.StatusBadRequest, errResp{"Missing " + f})
		return
	}

	out, err := s.summarize.Run(r.Context(), req)
	switch {
	case err == nil:
		if out == nil {
			out = []summarize.GenerationRecord{}
		}
		writeJSON(w, http.StatusOK, summariesResp{Summaries: out})
	case errors.Is(err, summarize.ErrNoSource):
		writeJSON(w, http.StatusBadRequest, errResp{"Need 'csv_content' or 's3_key'"})
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errResp{fmt.Sprintf("%s not found in %s", *req.S3Key, s.store.Bucket())})
	case errors.Is(err, sheet.ErrColumnNotFound), errors.Is(err, sheet.ErrMalformedInput):
		writeJSON(w, http.StatusBadRequest, errResp{err.Error()})
	default:
		s.log.Error("summarisation failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errResp{err.Error()})
	}
}
