package api

import (
	"time"

	"github.com/checkmarble/challenge-backend/utils"
)

type Configuration struct {
	Env                 string
	AppName             string
	AppVersion          string
	Port                string
	FrontendUrl         string
	RequestLoggingLevel string
	MaxUploadSizeMb     int64
	ImportTimeout       time.Duration
	DefaultTimeout      time.Duration
	Profiling           utils.ProfilingConfig
}

func (conf Configuration) maxUploadSize() int64 {
	if conf.MaxUploadSizeMb <= 0 {
		return defaultMaxUploadSizeMb * 1024 * 1024
	}
	return conf.MaxUploadSizeMb * 1024 * 1024
}
