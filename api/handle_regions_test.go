package api

import (
	"net/http"
	"strings"
	"testing"
)

func TestListRegionStores(t *testing.T) {
	a := newTestApi(t)
	e := a.expect(t)
	a.importWeeklyExport(t, e)

	stores := e.GET("/regions/nord/stores").Expect().Status(http.StatusOK).
		JSON().Object().Value("stores").Array()
	stores.Length().IsEqual(2)

	lille := stores.Value(0).Object()
	lille.Value("slug").String().IsEqual("butlille")
	lille.Value("rank").Number().IsEqual(1)
	lille.Value("percent_obj").Number().IsEqual(125)
	lille.Value("percent_prog").Number().IsEqual(13.64)
	lille.Value("date").String().IsEqual("2025-03-14")
	lille.Value("details").Object().Value("revenue").Object().Value("target").Number().IsEqual(10000)
	stores.Value(1).Object().Value("slug").String().IsEqual("butroubaix")

	e.GET("/regions/ouest/stores").Expect().Status(http.StatusNotFound)
}

func TestPatchRegion(t *testing.T) {
	a := newTestApi(t)
	e := a.expect(t)
	a.importWeeklyExport(t, e)

	region := e.PATCH("/regions/sud").WithJSON(map[string]any{"pseudo": "Les Cigales"}).
		Expect().Status(http.StatusOK).
		JSON().Object().Value("region").Object()
	region.Value("pseudo").String().IsEqual("Les Cigales")
	region.Value("display_name").String().IsEqual("Les Cigales")

	// a new import keeps the alias
	a.importWeeklyExport(t, e)
	regions := e.GET("/leaderboard").Expect().Status(http.StatusOK).
		JSON().Object().Value("regions").Array()
	regions.Value(0).Object().Value("display_name").String().IsEqual("Les Cigales")
	regions.Value(1).Object().Value("display_name").String().IsEqual("Nord")

	e.PATCH("/regions/sud").WithJSON(map[string]any{"pseudo": ""}).
		Expect().Status(http.StatusOK).
		JSON().Object().Value("region").Object().Value("pseudo").IsNull()
}

func TestPatchRegion_errors(t *testing.T) {
	a := newTestApi(t)
	e := a.expect(t)
	a.importWeeklyExport(t, e)

	e.PATCH("/regions/ouest").WithJSON(map[string]any{"pseudo": "West"}).
		Expect().Status(http.StatusNotFound)
	e.PATCH("/regions/sud").WithJSON(map[string]any{}).
		Expect().Status(http.StatusBadRequest).
		JSON().Object().Value("message").String().Contains("pseudo is required")
	e.PATCH("/regions/sud").WithJSON(map[string]any{"pseudo": strings.Repeat("a", 51)}).
		Expect().Status(http.StatusBadRequest)
}

func TestLiveness(t *testing.T) {
	e := newTestApi(t).expect(t)

	e.GET("/liveness").Expect().Status(http.StatusOK).
		JSON().Object().Value("mood").String().NotEmpty()
	e.GET("/metrics").Expect().Status(http.StatusOK).
		Body().Contains("go_goroutines")
}
