package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/jyotish/internal/cache"
	"github.com/aristath/jyotish/internal/database"
	"github.com/aristath/jyotish/internal/scheduler"
	"github.com/aristath/jyotish/internal/services"
)

// SystemHandlers serves process and cache monitoring endpoints
type SystemHandlers struct {
	log         zerolog.Logger
	startupTime time.Time
	builder     *services.ContextBuilder
	cacheDB     *database.DB
	sched       *scheduler.Scheduler
}

// NewSystemHandlers creates system handlers. cacheDB and sched may be nil.
func NewSystemHandlers(log zerolog.Logger, builder *services.ContextBuilder, cacheDB *database.DB, sched *scheduler.Scheduler) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("service", "system").Logger(),
		startupTime: time.Now(),
		builder:     builder,
		cacheDB:     cacheDB,
		sched:       sched,
	}
}

// SystemStatusResponse represents the system status response
type SystemStatusResponse struct {
	Status      string                 `json:"status"` // "healthy" or "degraded"
	UptimeHours float64                `json:"uptime_hours"`
	CPUPercent  float64                `json:"cpu_percent"`
	RAMPercent  float64                `json:"ram_percent"`
	Goroutines  int                    `json:"goroutines"`
	HeapMB      float64                `json:"heap_mb"`
	Cache       map[string]cache.Stats `json:"cache"`
	CacheDB     *database.Stats        `json:"cache_db,omitempty"`
	Jobs        []scheduler.JobStatus  `json:"jobs,omitempty"`
}

// HandleSystemStatus returns process and cache health
// GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	cpuPercent, ramPercent := h.getSystemStats()

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	response := SystemStatusResponse{
		Status:      "healthy",
		UptimeHours: time.Since(h.startupTime).Hours(),
		CPUPercent:  cpuPercent,
		RAMPercent:  ramPercent,
		Goroutines:  runtime.NumGoroutine(),
		HeapMB:      float64(ms.HeapAlloc) / 1024 / 1024,
		Cache:       h.builder.Stats(),
	}

	if h.cacheDB != nil {
		if err := h.cacheDB.QuickCheck(r.Context()); err != nil {
			h.log.Warn().Err(err).Msg("Cache database unreachable")
			response.Status = "degraded"
		} else if stats, err := h.cacheDB.GetStats(); err == nil {
			response.CacheDB = stats
		}
	}

	if h.sched != nil {
		response.Jobs = h.sched.Status()
		for _, job := range response.Jobs {
			if job.LastError != "" {
				response.Status = "degraded"
			}
		}
	}

	writeJSON(w, h.log, http.StatusOK, response)
}

// HandleCacheStats returns only the in-memory tier counters
// GET /api/system/cache
func (h *SystemHandlers) HandleCacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.log, http.StatusOK, h.builder.Stats())
}

// getSystemStats calculates CPU and RAM usage percentages
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	// 100ms keeps the endpoint responsive
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}
