package api

import (
	"net/http"
	"time"

	limits "github.com/gin-contrib/size"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	timeout "github.com/vearne/gin-timeout"

	"github.com/checkmarble/challenge-backend/usecases"
)

const (
	defaultMaxUploadSizeMb = 10
	defaultImportTimeout   = 55 * time.Second
	defaultRequestTimeout  = 10 * time.Second
)

func timeoutMiddleware(duration time.Duration, fallback time.Duration) gin.HandlerFunc {
	if duration <= 0 {
		duration = fallback
	}
	return timeout.Timeout(
		timeout.WithTimeout(duration),
		timeout.WithErrorHttpCode(http.StatusRequestTimeout),
		timeout.WithDefaultMsg("Request timeout"),
	)
}

func addRoutes(r *gin.Engine, conf Configuration, uc usecases.Usecases) {
	r.GET("/liveness", handleLivenessProbe(uc))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/imports",
		limits.RequestSizeLimiter(conf.maxUploadSize()),
		timeoutMiddleware(conf.ImportTimeout, defaultImportTimeout),
		handlePostImport(uc))

	// the stream is long lived, no request timeout on it
	r.GET("/leaderboard/stream", handleStreamLeaderboard(uc))

	router := r.Group("/", timeoutMiddleware(conf.DefaultTimeout, defaultRequestTimeout))
	router.GET("/leaderboard", handleGetLeaderboard(uc))
	router.GET("/regions/:region_slug/stores", handleListRegionStores(uc))
	router.PATCH("/regions/:region_slug", handlePatchRegion(uc))
}
