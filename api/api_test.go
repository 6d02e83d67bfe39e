package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/checkmarble/challenge-backend/infra"
	"github.com/checkmarble/challenge-backend/models"
	"github.com/checkmarble/challenge-backend/repositories"
	"github.com/checkmarble/challenge-backend/repositories/clock"
	"github.com/checkmarble/challenge-backend/usecases"
)

const weeklyExport = `Challenge BUT;;;;
Semaine 11;;;;
;;;;
Région;Magasin;CA N;Budget;CA N-1
Nord;BUT Lille;12 500,00;10 000,00;11 000,00
;BUT Roubaix;7 500,00;10 000,00;
;Total Nord;20 000,00;20 000,00;
Sud;BUT Nîmes;5 000,00;10 000,00;4 000,00
`

type testApi struct {
	server       *http.Server
	repositories repositories.Repositories
}

func newTestApi(t *testing.T) testApi {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos, err := repositories.NewRepositories(
		repositories.WithClock(clock.NewMock(time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC))))
	require.NoError(t, err)
	uc := usecases.NewUsecases(repos, usecases.WithCampaign(models.CampaignConfig{
		Window: models.CampaignWindow{
			Start: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		Location: time.UTC,
	}))

	conf := Configuration{Env: "development", AppName: "challenge-backend", Port: "0", MaxUploadSizeMb: 1}
	router := InitRouterMiddlewares(context.Background(), conf, infra.NoopTelemetry())
	return testApi{
		server:       NewServer(router, conf, uc, WithLocalTest(true)),
		repositories: repos,
	}
}

func (a testApi) expect(t *testing.T) *httpexpect.Expect {
	return httpexpect.WithConfig(httpexpect.Config{
		BaseURL:  "http://challenge.test",
		Reporter: httpexpect.NewAssertReporter(t),
		Client: &http.Client{
			Transport: httpexpect.NewBinder(a.server.Handler),
		},
	})
}

func (a testApi) importWeeklyExport(t *testing.T, e *httpexpect.Expect) {
	e.POST("/imports").
		WithMultipart().
		WithFileBytes("file", "weekly.csv", []byte(weeklyExport)).
		WithFormField("date", "2025-03-14").
		Expect().
		Status(http.StatusOK)
}
