package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dgallion1/heatsheet/internal/pipeline"
	"github.com/dgallion1/heatsheet/internal/sink"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"jobs": s.orchestrator.ListJobs()})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job := s.job(w, r)
	if job == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

// handleJobCSV serves the converted CSV once the job has finished.
func (s *Server) handleJobCSV(w http.ResponseWriter, r *http.Request) {
	job := s.job(w, r)
	if job == nil {
		return
	}
	csv := job.CSV()
	if status := job.Snapshot().Status; !status.Done() || csv == nil {
		jsonError(w, fmt.Sprintf("result not available (status %s)", status), http.StatusConflict)
		return
	}
	name := strings.TrimSuffix(job.Filename, ext(job.Filename)) + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Write(csv)
}

// handleJobTree serves the assembled competitions and the swimmer roster.
func (s *Server) handleJobTree(w http.ResponseWriter, r *http.Request) {
	job := s.job(w, r)
	if job == nil {
		return
	}
	res := job.Result()
	if status := job.Snapshot().Status; !status.Done() || res == nil {
		jsonError(w, fmt.Sprintf("result not available (status %s)", status), http.StatusConflict)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	sink.DumpJSON(w, res.Dump())
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	if !s.orchestrator.DeleteJob(jobID) {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": jobID})
}

func (s *Server) job(w http.ResponseWriter, r *http.Request) *pipeline.Job {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
	}
	return job
}

func ext(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i:]
	}
	return ""
}
