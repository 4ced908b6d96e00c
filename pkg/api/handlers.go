package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/cyclecut/pkg/buildinfo"
	"github.com/matzehuels/cyclecut/pkg/cache"
	cerrors "github.com/matzehuels/cyclecut/pkg/errors"
	"github.com/matzehuels/cyclecut/pkg/geom"
	cyio "github.com/matzehuels/cyclecut/pkg/io"
	"github.com/matzehuels/cyclecut/pkg/pipeline"
	"github.com/matzehuels/cyclecut/pkg/store"
	"github.com/matzehuels/cyclecut/pkg/verify"
)

// SolveRequest is the body of POST /v1/solve.
type SolveRequest struct {
	Threshold float64          `json:"threshold"`
	Points    []geom.Point     `json:"points"`
	Options   pipeline.Options `json:"options"`

	// TimeoutMS bounds the solve in milliseconds. It cannot exceed the
	// server's limit.
	TimeoutMS int64 `json:"timeout_ms,omitempty"`
}

// SolveResponse is the body of a successful POST /v1/solve.
type SolveResponse struct {
	*store.Run
	Report verify.Report `json:"report"`
	Shared bool          `json:"shared"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErrorStatus(w, http.StatusRequestEntityTooLarge, string(cerrors.ErrCodeInvalidInput),
				"request body exceeds "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes")
			return
		}
		writeError(w, cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if req.TimeoutMS < 0 {
		writeError(w, cerrors.New(cerrors.ErrCodeInvalidOptions, "timeout_ms must not be negative"))
		return
	}
	if err := cyio.ValidatePoints(req.Points); err != nil {
		writeError(w, err)
		return
	}

	opts := req.Options
	opts.Threshold = req.Threshold
	opts.Formats = nil
	opts.Timeout = s.solveTimeout
	if req.TimeoutMS > 0 {
		opts.Timeout = min(opts.Timeout, time.Duration(req.TimeoutMS)*time.Millisecond)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, err)
		return
	}

	// Identical requests share one solve. The solve outlives a caller that
	// disconnects so the other callers still get their answer.
	key := s.runner.Keyer.SolutionKey(cache.HashPoints(req.Points), opts.SolutionKeyOpts()) +
		":" + strconv.FormatInt(int64(opts.Timeout), 10)
	v, err, shared := s.solves.Do(key, func() (any, error) {
		return s.solve(context.WithoutCancel(r.Context()), req.Points, opts)
	})
	if err != nil {
		s.logger.Warn("solve failed", "points", len(req.Points), "error", err)
		writeError(w, err)
		return
	}

	resp := *v.(*SolveResponse)
	resp.Shared = shared
	writeJSON(w, http.StatusOK, &resp)
}

// solve runs the pipeline and stores the run.
func (s *Server) solve(ctx context.Context, points []geom.Point, opts pipeline.Options) (*SolveResponse, error) {
	result, err := s.runner.Execute(ctx, points, opts)
	if err != nil {
		if cerrors.GetCode(err) == "" {
			return nil, cerrors.Wrap(cerrors.ErrCodeInternal, err, "solve failed")
		}
		return nil, err
	}

	run := store.NewRun(points, opts.Threshold, opts.FVSOptions(result.Stats.BestRestart), result.Solve)
	run.PointsHash = result.PointsHash
	run.Valid = result.Report.Valid()
	run.Cached = result.CacheInfo.SolveHit
	if err := s.store.Put(ctx, run); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInternal, err, "store run")
	}

	s.logger.Info("solved",
		"run", run.ID,
		"points", len(points),
		"fvs", len(run.Solution),
		"cached", run.Cached,
		"duration", result.Stats.SolveTime)
	return &SolveResponse{Run: run, Report: result.Report}, nil
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !store.ValidID(id) {
		writeError(w, cerrors.New(cerrors.ErrCodeInvalidInput, "invalid run id %q", id))
		return
	}
	run, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, cerrors.Wrap(cerrors.ErrCodeInternal, err, "load run"))
		return
	}
	if run == nil {
		writeError(w, cerrors.New(cerrors.ErrCodeRunNotFound, "run %s not found", id))
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, cerrors.New(cerrors.ErrCodeInvalidInput, "limit must be a non-negative integer, got %q", v))
			return
		}
		limit = n
	}
	runs, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, cerrors.Wrap(cerrors.ErrCodeInternal, err, "list runs"))
		return
	}
	if runs == nil {
		runs = []*store.Run{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}
