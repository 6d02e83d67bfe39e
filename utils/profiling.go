package utils

import (
	"log/slog"
	"net/http"
	"net/http/pprof"

	"cloud.google.com/go/profiler"
	"github.com/gin-gonic/gin"
)

const (
	ProfilingModeGcp  = "gcp"
	ProfilingModeHttp = "http"
)

type ProfilingConfig struct {
	// "gcp" starts the Cloud Profiler agent, "http" exposes pprof under /debug/pprof, anything else does nothing
	Mode         string
	Token        string
	GcpProjectId string
}

func SetupProfilerEndpoints(r *gin.Engine, serviceName, serviceVersion string, config ProfilingConfig) {
	switch config.Mode {
	case ProfilingModeGcp:
		cfg := profiler.Config{
			ProjectID:      config.GcpProjectId,
			Service:        serviceName,
			ServiceVersion: serviceVersion,
		}
		if err := profiler.Start(cfg); err != nil {
			slog.Warn("could not start the cloud profiler", "error", err.Error())
		}

	case ProfilingModeHttp:
		if config.Token == "" {
			slog.Warn("pprof endpoints need a profiling token, they are not exposed")
			return
		}
		pp := r.Group("/debug/pprof")
		pp.Use(func(c *gin.Context) {
			if c.Request.Header.Get("authorization") != "Bearer "+config.Token {
				c.AbortWithStatus(http.StatusUnauthorized)
			}
		})

		pp.GET("/profile", gin.WrapF(pprof.Profile))
		pp.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		pp.GET("/heap", gin.WrapH(pprof.Handler("heap")))
		pp.GET("/block", gin.WrapH(pprof.Handler("block")))
		pp.GET("/mutex", gin.WrapH(pprof.Handler("mutex")))
	}
}
