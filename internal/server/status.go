package server

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

type statusResponse struct {
	Hostname string  `json:"hostname"`
	OS       string  `json:"os"`
	Arch     string  `json:"arch"`
	CPUUsage float64 `json:"cpu_usage_percent"`
	MemTotal uint64  `json:"mem_total_bytes"`
	MemUsed  uint64  `json:"mem_used_bytes"`
	MemUsage float64 `json:"mem_usage_percent"`
	Store    string  `json:"store"`
	Archive  string  `json:"archive"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	hostname, _ := os.Hostname()

	cpuPercent, _ := cpu.Percent(time.Second, false)
	cpuUsage := 0.0
	if len(cpuPercent) > 0 {
		cpuUsage = cpuPercent[0]
	}

	memInfo, _ := mem.VirtualMemory()

	storeStatus := "ok"
	if err := s.records.Ping(); err != nil {
		storeStatus = "error: " + err.Error()
	}

	archiveStatus := "disabled"
	if s.archive != nil {
		archiveStatus = "ok"
		if !s.archive.Healthy(r.Context()) {
			archiveStatus = "unreachable"
		}
	}

	status := statusResponse{
		Hostname: hostname,
		OS:       runtime.GOOS,
		Arch:     runtime.GOARCH,
		CPUUsage: cpuUsage,
		Store:    storeStatus,
		Archive:  archiveStatus,
	}

	if memInfo != nil {
		status.MemTotal = memInfo.Total
		status.MemUsed = memInfo.Used
		status.MemUsage = memInfo.UsedPercent
	}

	writeJSON(w, http.StatusOK, status)
}
