package echoapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Narendra3579/ssvteachersapp/core"
	"github.com/Narendra3579/ssvteachersapp/core/classroom"
)

type classroomApi struct {
	svc   *classroom.Service
	state *classroom.State
	alert core.Alerter
}

func registerClassroomAPI(g *echo.Group, loggedIn echo.MiddlewareFunc, svc *classroom.Service, state *classroom.State, alert core.Alerter) {
	api := classroomApi{svc: svc, state: state, alert: alert}

	ag := g.Group("", loggedIn)
	ag.GET("/classes", api.classList)
	ag.GET("/classes/:class/attendance", api.attendanceSheet)
	ag.POST("/classes/:class/attendance", api.attendanceSave)
	ag.GET("/homeworks", api.homeworkList)
	ag.POST("/homeworks", api.homeworkAssign)
	ag.GET("/students/:id/notifications", api.notificationList)
}

// Handlers

func (api *classroomApi) classList(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"classes": api.state.ClassNames()})
}

// attendanceRow is one selectable line of the attendance sheet: a student
// and their current status for the date, defaulting to Present.
type attendanceRow struct {
	StudentID int              `json:"studentId"`
	Name      string           `json:"name"`
	Status    classroom.Status `json:"status"`
}

func (api *classroomApi) attendanceSheet(ctx echo.Context) error {
	class := core.CleanString(ctx.Param("class"))
	if class == "" {
		return errNoClassSelected
	}
	date := core.CleanString(ctx.QueryParam("date"))
	if date == "" {
		date = classroom.Today()
	}

	students := api.state.StudentsInClass(class)
	rows := make([]attendanceRow, 0, len(students))
	for _, stu := range students {
		status := classroom.StatusPresent
		if rec, ok := api.state.AttendanceFor(stu.ID, date); ok {
			status = rec.Status
		}
		rows = append(rows, attendanceRow{StudentID: stu.ID, Name: stu.Name, Status: status})
	}
	return ctx.JSON(http.StatusOK, echo.Map{"class": class, "date": date, "students": rows})
}

type attendanceSaveRequest struct {
	Date     string                    `json:"date"`
	Statuses []classroom.StudentStatus `json:"statuses"`
}

func (api *classroomApi) attendanceSave(ctx echo.Context) error {
	class := core.CleanString(ctx.Param("class"))
	if class == "" {
		api.alert.Alert("Please select a class first.")
		return errNoClassSelected
	}

	data := new(attendanceSaveRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if data.Date = core.CleanString(data.Date); data.Date == "" {
		data.Date = classroom.Today()
	}

	if err := api.svc.RecordAttendance(class, data.Date, data.Statuses); err != nil {
		return err
	}
	api.alert.Alert("Attendance saved successfully!")
	return ctx.JSON(http.StatusOK, echo.Map{"class": class, "date": data.Date, "saved": len(data.Statuses)})
}

func (api *classroomApi) homeworkList(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.state.Homeworks())
}

func (api *classroomApi) homeworkAssign(ctx echo.Context) error {
	data := new(classroom.NewHomework)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	hw, err := api.svc.AssignHomework(*data)
	if err != nil {
		var vErr *core.ValidationError
		if errors.As(err, &vErr) {
			api.alert.Alert("Please select a class and enter homework description.")
		}
		return err
	}
	api.alert.Alert(fmt.Sprintf("Homework assigned to %s successfully!", hw.Class))
	return ctx.JSON(http.StatusCreated, hw)
}

func (api *classroomApi) notificationList(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid student id")
	}
	return ctx.JSON(http.StatusOK, api.svc.StudentNotifications(id))
}
