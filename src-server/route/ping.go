package route

import (
	"net/http"
	"runtime"

	"calendarcorp/src-server/utils"
)

func Ping(muxer *http.ServeMux, as *utils.AppState) {
	type PingRespBody struct {
		Uptime      string  `json:"uptime"`
		MemUsageMiB float64 `json:"memUsageMiB"`
		Goroutines  int     `json:"goroutines"`
	}

	muxer.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		writeJSON(w, http.StatusOK, PingRespBody{
			Uptime:      as.GetUptime().String(),
			MemUsageMiB: float64(m.Sys) / 1024 / 1024,
			Goroutines:  runtime.NumGoroutine(),
		})
	})
}
