package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/checkmarble/challenge-backend/usecases"
)

type Option func(*options)

func WithLocalTest(localTest bool) Option {
	return func(o *options) {
		o.localTest = localTest
	}
}

type options struct {
	localTest bool
}

func applyOptions(opts []Option) *options {
	o := &options{
		localTest: false,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func NewServer(
	router *gin.Engine,
	conf Configuration,
	uc usecases.Usecases,
	opts ...Option,
) *http.Server {
	o := applyOptions(opts)

	addRoutes(router, conf, uc)

	var host string
	if o.localTest {
		host = "localhost"
	} else {
		host = "0.0.0.0"
	}

	// No write timeout: the leaderboard stream stays open. Handlers are bounded by their own timeout middleware.
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%s", host, conf.Port),
		ReadHeaderTimeout: defaultRequestTimeout,
		ReadTimeout:       max(conf.ImportTimeout, defaultImportTimeout),
		IdleTimeout:       max(conf.ImportTimeout, defaultImportTimeout),
		Handler:           h2c.NewHandler(router, &http2.Server{}),
	}
}
