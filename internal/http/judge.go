package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/qa"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/schemas"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/sheet"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/storage"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/worker"
)

type judgeResp struct {
	Judgements []qa.ScoredRecord `json:"judgements"`
}

func (s *Server) presignJudge(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if !s.staged(name) {
		writeJSON(w, http.StatusBadRequest, errResp{
			fmt.Sprintf("name must start with %s and end with .csv", s.cfg.StagingPrefix)})
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

// judgeRequest decodes and admits an evaluation body, writing the 400 itself
// when the body is unusable.
func (s *Server) judgeRequest(w http.ResponseWriter, r *http.Request) (schemas.EvaluateRequest, bool) {
	var req schemas.EvaluateRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{errBadJSON.Error()})
		return req, false
	}
	if !s.staged(req.S3Key) {
		writeJSON(w, http.StatusBadRequest, errResp{
			fmt.Sprintf("s3_key must be in %s and end with .csv", s.cfg.StagingPrefix)})
		return req, false
	}
	return req, true
}

func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.judgeRequest(w, r)
	if !ok {
		return
	}
	out, err := s.judge.Evaluate(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, judgeResp{Judgements: out})
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errResp{storage.Code(err)})
	case errors.Is(err, sheet.ErrMissingDataRows):
		writeJSON(w, http.StatusBadRequest, errResp{"CSV missing data rows"})
	case errors.Is(err, sheet.ErrMalformedInput):
		writeJSON(w, http.StatusBadRequest, errResp{err.Error()})
	default:
		s.log.Error("evaluation failed", zap.String("key", req.S3Key), zap.Error(err))
		msg := storage.Code(err)
		if msg == "" {
			msg = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, errResp{msg})
	}
}

func (s *Server) submitJob(w http.ResponseWriter, r *http.Request) {
	if s.queue == nil {
		writeJSON(w, http.StatusServiceUnavailable, errResp{"job queue not configured"})
		return
	}
	req, ok := s.judgeRequest(w, r)
	if !ok {
		return
	}
	task, id, err := worker.NewEvaluateTask(req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errResp{err.Error()})
		return
	}
	if _, err := s.queue.EnqueueContext(r.Context(), task); err != nil {
		s.log.Error("enqueue failed", zap.String("job_id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errResp{err.Error()})
		return
	}
	s.metrics.JobEnqueued()
	s.log.Info("evaluation job enqueued", zap.String("job_id", id), zap.String("key", req.S3Key))
	writeJSON(w, http.StatusAccepted, schemas.JobAccepted{JobID: id})
}

func (s *Server) getJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeJSON(w, http.StatusNotFound, errResp{"job result not found"})
		return
	}
	var res worker.Result
	err := s.store.GetJSON(r.Context(), worker.ResultKey(id), &res)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errResp{"job result not found"})
	default:
		s.log.Error("job lookup failed", zap.String("job_id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errResp{err.Error()})
	}
}
