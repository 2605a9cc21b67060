package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/renderstim/stimgen/internal/assets"
	"github.com/renderstim/stimgen/internal/dataset"
	"github.com/renderstim/stimgen/internal/latents"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Repository, cfg.Logger))

		r.Get("/status", statusHandler(cfg))
		r.Post("/datasets", createDatasetHandler(cfg))
		r.Get("/datasets", listDatasetsHandler(cfg))
		r.Get("/datasets/{id}", getDatasetHandler(cfg))
		r.Delete("/datasets/{id}", deleteDatasetHandler(cfg))
		r.Get("/datasets/{id}/scenes", listScenesHandler(cfg))
		r.Get("/datasets/{id}/scenes/{index}", getSceneHandler(cfg))
		r.Post("/datasets/{id}/render", renderDatasetHandler(cfg))
		r.Get("/jobs", listJobsHandler(cfg))
		r.Get("/jobs/{id}", getJobHandler(cfg))
		r.Get("/assets/shapes", listShapesHandler(cfg))
		r.Get("/assets/hdri", listHDRIsHandler(cfg))
	})

	return r
}

// writeSamplingError maps the sampling error taxonomy onto HTTP statuses:
// bad parameters are the caller's fault, a missing manifest is a service
// dependency problem.
func writeSamplingError(w http.ResponseWriter, err error) {
	var invalid *latents.InvalidParameterError
	var exhausted *latents.SeedExhaustionError
	var manifest *assets.ManifestError
	switch {
	case errors.As(err, &invalid):
		WriteError(w, http.StatusBadRequest, err.Error(), "INVALID_PARAMETER")
	case errors.As(err, &exhausted):
		WriteError(w, http.StatusBadRequest, err.Error(), "SEED_EXHAUSTED")
	case errors.As(err, &manifest):
		WriteError(w, http.StatusServiceUnavailable, err.Error(), "MANIFEST_UNAVAILABLE")
	default:
		WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
	}
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := int64(time.Since(cfg.StartTime).Seconds())
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:   "ok",
			Version:  "0.1.0",
			UptimeS:  uptime,
			DeviceID: cfg.DeviceID,
		})
	}
}

func statusHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		datasets, _ := cfg.DatasetService.ListDatasets(ctx)
		scenesCount, _ := cfg.DatasetService.CountScenes(ctx)
		jobs, _ := cfg.Repository.ListJobs(ctx, 10)

		state := "idle"
		var activeJob *JobResponse
		jobsRunning := 0
		lastError := ""

		if cfg.Runner != nil && cfg.Runner.IsPaused() {
			state = "paused"
		}

		for _, j := range jobs {
			if j.Status == dataset.JobStatusRunning {
				state = "rendering"
				resp := JobToResponse(j)
				activeJob = &resp
				jobsRunning++
			}
			if j.Status == dataset.JobStatusFailed && lastError == "" {
				lastError = j.Error
			}
		}

		if lastError != "" && state == "idle" {
			state = "error"
		}

		WriteJSON(w, http.StatusOK, StatusResponse{
			State:         state,
			LastError:     lastError,
			DatasetsCount: len(datasets),
			ScenesCount:   scenesCount,
			JobsRunning:   jobsRunning,
			ActiveJob:     activeJob,
		})
	}
}

func createDatasetHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Decoding over the defaults means a request only names the
		// parameters it overrides.
		params := latents.DefaultParameters()
		if err := json.NewDecoder(r.Body).Decode(params); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		d, _, err := cfg.DatasetService.CreateDataset(r.Context(), params)
		if err != nil {
			writeSamplingError(w, err)
			return
		}

		WriteJSON(w, http.StatusCreated, DatasetToResponse(d))
	}
}

func listDatasetsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		datasets, err := cfg.DatasetService.ListDatasets(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list datasets", "INTERNAL_ERROR")
			return
		}

		resp := DatasetsResponse{Datasets: make([]DatasetResponse, len(datasets))}
		for i, d := range datasets {
			resp.Datasets[i] = DatasetToResponse(d)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func getDatasetHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		d, err := cfg.DatasetService.GetDataset(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		if d == nil {
			WriteError(w, http.StatusNotFound, "dataset not found", "NOT_FOUND")
			return
		}
		WriteJSON(w, http.StatusOK, DatasetToResponse(d))
	}
}

func deleteDatasetHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := cfg.DatasetService.DeleteDataset(r.Context(), id); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listScenesHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		scenes, err := cfg.DatasetService.GetScenes(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}

		resp := ScenesResponse{Scenes: make([]SceneResponse, len(scenes))}
		for i, s := range scenes {
			resp.Scenes[i] = SceneToResponse(s)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func getSceneHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil || index < 0 {
			WriteError(w, http.StatusBadRequest, "invalid scene index", "BAD_REQUEST")
			return
		}

		scene, err := cfg.DatasetService.GetScene(r.Context(), id, index)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		if scene == nil {
			WriteError(w, http.StatusNotFound, "scene not found", "NOT_FOUND")
			return
		}
		WriteJSON(w, http.StatusOK, SceneToResponse(scene))
	}
}

func renderDatasetHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		job, err := cfg.DatasetService.StartRender(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}
		WriteJSON(w, http.StatusAccepted, RenderResponse{JobID: job.ID})
	}
}

func listJobsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobs, err := cfg.Repository.ListJobs(r.Context(), 50)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}

		resp := JobsResponse{Jobs: make([]JobResponse, len(jobs))}
		for i, j := range jobs {
			resp.Jobs[i] = JobToResponse(j)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func getJobHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		job, err := cfg.Repository.GetJob(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		if job == nil {
			WriteError(w, http.StatusNotFound, "job not found", "NOT_FOUND")
			return
		}
		WriteJSON(w, http.StatusOK, JobToResponse(job))
	}
}

func listShapesHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		source := r.URL.Query().Get("source")
		if source == "" {
			source = latents.SourceBasicShapes
		}

		shapes, err := cfg.Assets.ShapeIDs(source)
		if err != nil {
			writeSamplingError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, ShapesResponse{Source: source, Shapes: shapes})
	}
}

func listHDRIsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hdris, err := cfg.Assets.HDRIIDs()
		if err != nil {
			writeSamplingError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, HDRIsResponse{HDRIs: hdris})
	}
}
