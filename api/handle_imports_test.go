package api

import (
	"net/http"
	"strings"
	"testing"
)

func TestPostImport(t *testing.T) {
	a := newTestApi(t)
	e := a.expect(t)

	report := e.POST("/imports").
		WithMultipart().
		WithFileBytes("file", "weekly.csv", []byte(weeklyExport)).
		WithFormField("date", "2025-03-14").
		Expect().
		Status(http.StatusOK).
		JSON().Object().Value("import").Object()

	report.Value("file_name").String().IsEqual("weekly.csv")
	report.Value("date").String().IsEqual("2025-03-14")
	report.Value("schema").String().IsEqual("revenue")
	report.Value("stores_imported").Number().IsEqual(3)
	report.Value("regions_imported").Number().IsEqual(2)
	report.Value("header_row_index").Number().IsEqual(2)
	report.Value("duplicate_stores").Array().IsEmpty()
	report.Value("id").String().NotEmpty()
}

func TestPostImport_rejected_file(t *testing.T) {
	e := newTestApi(t).expect(t)

	body := e.POST("/imports").
		WithMultipart().
		WithFileBytes("file", "notes.csv", []byte("hello;world\n")).
		Expect().
		Status(http.StatusBadRequest).
		JSON().Object()
	body.Value("error_code").String().IsEqual("header_not_found")

	e.POST("/imports").
		WithMultipart().
		WithFileBytes("file", "empty.csv", []byte("Région;Magasin;CA N;Budget\n")).
		Expect().
		Status(http.StatusBadRequest).
		JSON().Object().Value("error_code").String().IsEqual("no_data_found")

	e.POST("/imports").
		WithMultipart().
		WithFileBytes("file", "no_budget.csv", []byte("Région;Magasin;CA N;Budget 2024\nNord;BUT Lille;1;2\n")).
		Expect().
		Status(http.StatusBadRequest).
		JSON().Object().Value("error_code").String().IsEqual("required_column_missing")
}

func TestPostImport_bad_form(t *testing.T) {
	e := newTestApi(t).expect(t)

	e.POST("/imports").
		WithMultipart().
		WithFormField("date", "2025-03-14").
		Expect().
		Status(http.StatusBadRequest)

	e.POST("/imports").
		WithMultipart().
		WithFileBytes("file", "weekly.csv", []byte(weeklyExport)).
		WithFormField("date", "14/03/2025").
		Expect().
		Status(http.StatusBadRequest).
		JSON().Object().Value("message").String().Contains("date should be a date formatted as YYYY-MM-DD")

	e.POST("/imports").
		WithMultipart().
		WithFileBytes("file", "weekly.csv", []byte(weeklyExport)).
		WithFormField("encoding", "ebcdic").
		Expect().
		Status(http.StatusBadRequest).
		JSON().Object().Value("error_code").String().IsEqual("unknown_encoding")
}

func TestPostImport_too_large(t *testing.T) {
	e := newTestApi(t).expect(t)

	e.POST("/imports").
		WithMultipart().
		WithFileBytes("file", "huge.csv", []byte(strings.Repeat("x;y\n", 512*1024))).
		Expect().
		Status(http.StatusRequestEntityTooLarge)
}
