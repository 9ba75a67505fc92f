package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankspastic/psia-gradebook/core"
	"github.com/frankspastic/psia-gradebook/core/gradebook"
	"github.com/frankspastic/psia-gradebook/core/mailer"
	"github.com/frankspastic/psia-gradebook/services/email"
	"github.com/frankspastic/psia-gradebook/storage/database/dummy"
)

type testApp struct {
	server    Server
	svc       *gradebook.Service
	repo      gradebook.Repository
	transport *emailsvc.ConsoleTransport
}

func setup(t *testing.T) *testApp {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	repo := dummydb.NewGradebookRepository(db)
	svc := gradebook.NewService(repo)
	transport := emailsvc.NewConsoleTransportMock()

	conf := &core.Config{TestMode: true}
	conf.Server.Addr = "127.0.0.1:0"

	logger := nopLogger{}
	server := NewServer(&Options{
		Conf:           conf,
		Logger:         logger,
		DisableReqLogs: true,
		GradebookSvc:   svc,
		Dispatcher:     mailer.NewDispatcher(svc, transport, logger),
	})
	return &testApp{server: server, svc: svc, repo: repo, transport: transport}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func (app *testApp) request(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("request() failed: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) createClass(t *testing.T, name string) gradebook.Class {
	t.Helper()
	cls, err := app.svc.CreateClass(context.Background(), gradebook.NewClass{Name: name})
	if err != nil {
		t.Fatalf("createClass() failed: %v", err)
	}
	return cls
}

func (app *testApp) createStudent(t *testing.T, classID int, first, last string) gradebook.Student {
	t.Helper()
	st, err := app.svc.CreateStudent(context.Background(), gradebook.NewStudent{
		ClassID:   classID,
		FirstName: first,
		LastName:  last,
	})
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return st
}

func (app *testApp) createAssignment(t *testing.T, classID int, label, date string) gradebook.Assignment {
	t.Helper()
	a, err := app.svc.CreateAssignment(context.Background(), gradebook.NewAssignment{
		ClassID: classID,
		Label:   label,
		Date:    date,
	})
	if err != nil {
		t.Fatalf("createAssignment() failed: %v", err)
	}
	return a
}

func TestClassAPI(t *testing.T) {
	app := setup(t)

	t.Run("create", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/classes", echoMap{"name": "Math 5", "description": "5th grade math"})
		assert.Equal(t, http.StatusCreated, rec.Code)

		var cls gradebook.Class
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cls))
		assert.Equal(t, "Math 5", cls.Name)
		assert.NotZero(t, cls.ID)
	})

	t.Run("create requires a name", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/classes", echoMap{"description": "no name"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "name")
	})

	t.Run("list", func(t *testing.T) {
		rec := app.request(t, http.MethodGet, "/v1/classes", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var classes []gradebook.Class
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &classes))
		assert.Len(t, classes, 1)
	})

	t.Run("retrieve unknown", func(t *testing.T) {
		rec := app.request(t, http.MethodGet, "/v1/classes/999", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		rec := app.request(t, http.MethodGet, "/v1/classes/lol", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("partial update", func(t *testing.T) {
		cls := app.createClass(t, "Science 5")
		rec := app.request(t, http.MethodPut, fmt.Sprintf("/v1/classes/%d", cls.ID), echoMap{"description": "updated"})
		assert.Equal(t, http.StatusNoContent, rec.Code)

		refreshed, err := app.svc.GetClass(context.Background(), cls.ID)
		assert.NoError(t, err)
		assert.Equal(t, "Science 5", refreshed.Name) // untouched
		assert.Equal(t, "updated", refreshed.Description)
	})

	t.Run("delete", func(t *testing.T) {
		cls := app.createClass(t, "History 5")
		rec := app.request(t, http.MethodDelete, fmt.Sprintf("/v1/classes/%d", cls.ID), nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = app.request(t, http.MethodGet, fmt.Sprintf("/v1/classes/%d", cls.ID), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestStudentAPI(t *testing.T) {
	app := setup(t)
	cls := app.createClass(t, "Math 5")

	t.Run("create", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/students", echoMap{
			"class_id":   cls.ID,
			"first_name": "Ana",
			"last_name":  "Cruz",
		})
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("create in unknown class", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/students", echoMap{
			"class_id":   999,
			"first_name": "Ben",
			"last_name":  "Okoye",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid drive url", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/students", echoMap{
			"class_id":         cls.ID,
			"first_name":       "Ben",
			"last_name":        "Okoye",
			"google_drive_url": "not a url",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("class roster", func(t *testing.T) {
		rec := app.request(t, http.MethodGet, fmt.Sprintf("/v1/classes/%d/students", cls.ID), nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var students []gradebook.Student
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &students))
		assert.Len(t, students, 1)
	})
}

func TestGradeMatrixAPI(t *testing.T) {
	app := setup(t)
	cls := app.createClass(t, "Math 5")
	ana := app.createStudent(t, cls.ID, "Ana", "Cruz")
	quiz := app.createAssignment(t, cls.ID, "Quiz 1", "2026-01-12")

	gradesPath := fmt.Sprintf("/v1/classes/%d/grades", cls.ID)
	cellBody := func(value string) echoMap {
		return echoMap{"student_id": ana.ID, "assignment_id": quiz.ID, "value": value}
	}

	t.Run("commit creates", func(t *testing.T) {
		rec := app.request(t, http.MethodPut, gradesPath, cellBody("A-"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "A-")
	})

	t.Run("matrix round trip", func(t *testing.T) {
		rec := app.request(t, http.MethodGet, gradesPath, nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var cells map[string]gradebook.Grade
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cells))
		key := fmt.Sprintf("%d-%d", ana.ID, quiz.ID)
		assert.Equal(t, "A-", cells[key].Grade)
	})

	t.Run("blank clears", func(t *testing.T) {
		rec := app.request(t, http.MethodPut, gradesPath, cellBody(""))
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = app.request(t, http.MethodGet, gradesPath, nil)
		var cells map[string]gradebook.Grade
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cells))
		assert.Empty(t, cells)
	})
}

func TestGradeAPI(t *testing.T) {
	app := setup(t)
	cls := app.createClass(t, "Math 5")
	ana := app.createStudent(t, cls.ID, "Ana", "Cruz")
	quiz := app.createAssignment(t, cls.ID, "Quiz 1", "2026-01-12")

	var created gradebook.Grade

	t.Run("create", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/grades", echoMap{
			"student_id":    ana.ID,
			"assignment_id": quiz.ID,
			"grade":         "B+",
			"notes":         "late",
		})
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, "B+", created.Grade)
	})

	t.Run("create validates", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/grades", echoMap{
			"student_id":    ana.ID,
			"assignment_id": quiz.ID,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate cell conflicts", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/grades", echoMap{
			"student_id":    ana.ID,
			"assignment_id": quiz.ID,
			"grade":         "A",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("update", func(t *testing.T) {
		rec := app.request(t, http.MethodPut, fmt.Sprintf("/v1/grades/%d", created.ID), echoMap{"grade": "A-"})
		assert.Equal(t, http.StatusNoContent, rec.Code)

		got, err := app.svc.GetGrade(context.Background(), ana.ID, quiz.ID)
		assert.NoError(t, err)
		assert.Equal(t, "A-", got.Grade)
	})

	t.Run("delete", func(t *testing.T) {
		rec := app.request(t, http.MethodDelete, fmt.Sprintf("/v1/grades/%d", created.ID), nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = app.request(t, http.MethodDelete, fmt.Sprintf("/v1/grades/%d", created.ID), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSettingsAPI(t *testing.T) {
	app := setup(t)

	rec := app.request(t, http.MethodGet, "/v1/settings/smtp_host", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.request(t, http.MethodPut, "/v1/settings/smtp_host", echoMap{"value": "mail.school.org"})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.request(t, http.MethodGet, "/v1/settings/smtp_host", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var s gradebook.Setting
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.Equal(t, "mail.school.org", s.Value)
}

type echoMap = map[string]interface{}
