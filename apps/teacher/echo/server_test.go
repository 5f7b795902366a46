package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Narendra3579/ssvteachersapp/core"
	"github.com/Narendra3579/ssvteachersapp/core/auth"
	"github.com/Narendra3579/ssvteachersapp/core/classroom"
	alertsvc "github.com/Narendra3579/ssvteachersapp/services/alert"
	inmemstore "github.com/Narendra3579/ssvteachersapp/storage/kvstore/inmem"
	testutil "github.com/Narendra3579/ssvteachersapp/tests"
)

type testApp struct {
	server *Server
	acc    *core.Accessor
	alerts interface{ Shown() []string }
}

func setup(t *testing.T, students ...classroom.Student) *testApp {
	t.Helper()

	conf := &core.Config{TestMode: true}
	conf.HomeworkDueIn = 7 * 24 * time.Hour

	db := inmemstore.Open()
	logger := testutil.NewLogger()
	acc := core.NewAccessor(db.Connect(), logger)
	if len(students) > 0 {
		testutil.WriteKey(t, acc, classroom.StoreKeyStudents, students)
	}

	verifier, err := auth.NewStaticVerifier("teacher", "teacher123")
	require.NoError(t, err)
	authSvc := auth.NewService(acc, verifier, nil)

	state := classroom.NewState(acc, authSvc.IsLoggedIn)
	classSvc := classroom.NewService(state, acc, logger, conf)

	alerts := alertsvc.NewConsoleServiceMock()
	server := NewServer(ServerDeps{
		Conf:     conf,
		Logger:   logger,
		Alerter:  alerts,
		AuthSvc:  authSvc,
		ClassSvc: classSvc,
		State:    state,
	})
	return &testApp{server: server, acc: acc, alerts: alerts}
}

func (app *testApp) request(t *testing.T, method, path string, data interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if data != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(data))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) login(t *testing.T) {
	t.Helper()
	rec := app.request(t, http.MethodPost, "/v1/auth/login", map[string]string{
		"username": "teacher", "password": "teacher123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

var roster = []classroom.Student{
	{ID: 1, Name: "Aarav Sharma", Class: "5A"},
	{ID: 2, Name: "Diya Patel", Class: "5A"},
	{ID: 3, Name: "Meera Nair", Class: "5B"},
}

func Test_home(t *testing.T) {
	app := setup(t)
	rec := app.request(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func Test_authLogin(t *testing.T) {
	t.Run("bad credentials", func(t *testing.T) {
		app := setup(t)
		rec := app.request(t, http.MethodPost, "/v1/auth/login", map[string]string{
			"username": "teacher", "password": "nope",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		// failed logins persist a logged-out state
		assert.False(t, core.ReadKey(app.acc, auth.StoreKeyLoggedIn, true))
	})

	t.Run("missing fields", func(t *testing.T) {
		app := setup(t)
		rec := app.request(t, http.MethodPost, "/v1/auth/login", map[string]string{"username": "teacher"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ok", func(t *testing.T) {
		app := setup(t)
		rec := app.request(t, http.MethodPost, "/v1/auth/login", map[string]string{
			"username": "teacher", "password": "teacher123",
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"loggedIn": true}`, rec.Body.String())
		assert.True(t, core.ReadKey(app.acc, auth.StoreKeyLoggedIn, false))
		assert.Contains(t, app.alerts.Shown(), "Logged in successfully!")
	})
}

func Test_authLogout(t *testing.T) {
	app := setup(t)
	app.login(t)

	rec := app.request(t, http.MethodPost, "/v1/auth/logout", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, core.ReadKey(app.acc, auth.StoreKeyLoggedIn, true))
	assert.Contains(t, app.alerts.Shown(), "Logged out successfully!")
}

func Test_loginRequired(t *testing.T) {
	app := setup(t, roster...)

	for _, path := range []string{"/v1/classes", "/v1/homeworks", "/v1/students/1/notifications"} {
		rec := app.request(t, http.MethodGet, path, nil)
		assert.Equalf(t, http.StatusUnauthorized, rec.Code, "GET %s", path)
	}
}

func Test_classList(t *testing.T) {
	app := setup(t, roster...)
	app.login(t)

	rec := app.request(t, http.MethodGet, "/v1/classes", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"classes": ["5A", "5B"]}`, rec.Body.String())
}

func Test_attendance(t *testing.T) {
	app := setup(t, roster...)
	app.login(t)

	t.Run("sheet defaults to Present", func(t *testing.T) {
		rec := app.request(t, http.MethodGet, "/v1/classes/5A/attendance?date=2024-01-10", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{
			"class": "5A",
			"date": "2024-01-10",
			"students": [
				{"studentId": 1, "name": "Aarav Sharma", "status": "Present"},
				{"studentId": 2, "name": "Diya Patel", "status": "Present"}
			]
		}`, rec.Body.String())
	})

	t.Run("save then re-render", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/classes/5A/attendance", map[string]interface{}{
			"date": "2024-01-10",
			"statuses": []map[string]interface{}{
				{"studentId": 1, "status": "Absent"},
				{"studentId": 2, "status": "Present"},
			},
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, app.alerts.Shown(), "Attendance saved successfully!")

		rec = app.request(t, http.MethodGet, "/v1/classes/5A/attendance?date=2024-01-10", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var sheet struct {
			Students []struct {
				StudentID int    `json:"studentId"`
				Status    string `json:"status"`
			} `json:"students"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sheet))
		require.Len(t, sheet.Students, 2)
		assert.Equal(t, "Absent", sheet.Students[0].Status)
		assert.Equal(t, "Present", sheet.Students[1].Status)
	})
}

func Test_homeworkAssign(t *testing.T) {
	t.Run("validation failure", func(t *testing.T) {
		app := setup(t, roster...)
		app.login(t)

		rec := app.request(t, http.MethodPost, "/v1/homeworks", map[string]string{"class": "5A"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, app.alerts.Shown(), "Please select a class and enter homework description.")

		// nothing was persisted
		hws := core.ReadKey(app.acc, classroom.StoreKeyHomeworks, []classroom.HomeworkAssignment{})
		assert.Empty(t, hws)
	})

	t.Run("ok", func(t *testing.T) {
		app := setup(t, roster...)
		app.login(t)

		rec := app.request(t, http.MethodPost, "/v1/homeworks", map[string]string{
			"class": "5A", "description": "Read chapter 4",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var hw classroom.HomeworkAssignment
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hw))
		assert.Equal(t, "5A", hw.Class)
		assert.NotEmpty(t, hw.DueDate)
		assert.Contains(t, app.alerts.Shown(), "Homework assigned to 5A successfully!")

		// both 5A students got notified, the 5B student did not
		rec = app.request(t, http.MethodGet, "/v1/students/1/notifications", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var notifs []classroom.Notification
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notifs))
		require.Len(t, notifs, 1)
		assert.Equal(t, classroom.NotificationHomework, notifs[0].Type)

		rec = app.request(t, http.MethodGet, "/v1/students/3/notifications", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}

func Test_notificationList(t *testing.T) {
	app := setup(t, roster...)
	app.login(t)

	rec := app.request(t, http.MethodGet, "/v1/students/abc/notifications", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
