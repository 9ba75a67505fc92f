package echoapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/frankspastic/psia-gradebook/core/gradebook"
)

type gradebookApi struct {
	service *gradebook.Service
}

func registerGradebookAPI(g *echo.Group, svc *gradebook.Service) {
	api := gradebookApi{service: svc}

	cg := g.Group("/classes")
	cg.GET("", api.classList)
	cg.POST("", api.classCreate)
	cg.GET("/:id", api.classRetrieve)
	cg.PUT("/:id", api.classUpdate)
	cg.DELETE("/:id", api.classDestroy)
	cg.GET("/:id/students", api.classStudents)
	cg.GET("/:id/assignments", api.classAssignments)
	cg.GET("/:id/grades", api.classGradeMatrix)
	cg.PUT("/:id/grades", api.classCommitCell)

	sg := g.Group("/students")
	sg.POST("", api.studentCreate)
	sg.GET("/:id", api.studentRetrieve)
	sg.PUT("/:id", api.studentUpdate)
	sg.DELETE("/:id", api.studentDestroy)
	sg.GET("/:id/contacts", api.studentContacts)
	sg.GET("/:id/grades", api.studentGrades)

	kg := g.Group("/contacts")
	kg.POST("", api.contactCreate)
	kg.PUT("/:id", api.contactUpdate)
	kg.DELETE("/:id", api.contactDestroy)

	ag := g.Group("/assignments")
	ag.POST("", api.assignmentCreate)
	ag.GET("/:id", api.assignmentRetrieve)
	ag.PUT("/:id", api.assignmentUpdate)
	ag.DELETE("/:id", api.assignmentDestroy)
	ag.GET("/:id/grades", api.assignmentGrades)

	gg := g.Group("/grades")
	gg.POST("", api.gradeCreate)
	gg.PUT("/:id", api.gradeUpdate)
	gg.DELETE("/:id", api.gradeDestroy)

	stg := g.Group("/settings")
	stg.GET("/:key", api.settingRetrieve)
	stg.PUT("/:key", api.settingSet)
}

func pathID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// Classes

func (api *gradebookApi) classList(ctx echo.Context) error {
	classes, err := api.service.QueryClasses(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *gradebookApi) classCreate(ctx echo.Context) error {
	data := new(gradebook.NewClass)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	cls, err := api.service.CreateClass(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, cls)
}

func (api *gradebookApi) classRetrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	cls, err := api.service.GetClass(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *gradebookApi) classUpdate(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	data := new(gradebook.UpdateClass)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	if err := api.service.UpdateClass(ctx.Request().Context(), id, *data); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *gradebookApi) classDestroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.service.DeleteClass(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *gradebookApi) classStudents(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	students, err := api.service.QueryStudents(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *gradebookApi) classAssignments(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	assignments, err := api.service.QueryAssignments(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, assignments)
}

// classGradeMatrix serves the sparse matrix keyed "studentID-assignmentID",
// the cell key format the grade grid uses.
func (api *gradebookApi) classGradeMatrix(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	matrix, err := api.service.LoadMatrix(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	cells := make(map[string]gradebook.Grade, len(matrix))
	for key, g := range matrix {
		cells[fmt.Sprintf("%d-%d", key.StudentID, key.AssignmentID)] = g
	}
	return ctx.JSON(http.StatusOK, cells)
}

type commitCellRequest struct {
	StudentID    int    `json:"student_id" validate:"required"`
	AssignmentID int    `json:"assignment_id" validate:"required"`
	Value        string `json:"value"`
}

func (api *gradebookApi) classCommitCell(ctx echo.Context) error {
	if _, err := pathID(ctx); err != nil {
		return err
	}
	data := new(commitCellRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	m := gradebook.Matrix{}
	if err := api.service.CommitCell(ctx.Request().Context(), m, data.StudentID, data.AssignmentID, data.Value); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"value": m.Lookup(data.StudentID, data.AssignmentID)})
}

// Students

func (api *gradebookApi) studentCreate(ctx echo.Context) error {
	data := new(gradebook.NewStudent)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	st, err := api.service.CreateStudent(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, st)
}

func (api *gradebookApi) studentRetrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	st, err := api.service.GetStudent(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *gradebookApi) studentUpdate(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	data := new(gradebook.UpdateStudent)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	if err := api.service.UpdateStudent(ctx.Request().Context(), id, *data); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *gradebookApi) studentDestroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.service.DeleteStudent(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *gradebookApi) studentContacts(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	contacts, err := api.service.QueryContacts(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, contacts)
}

func (api *gradebookApi) studentGrades(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	grades, err := api.service.QueryGradesByStudent(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grades)
}

// Email contacts

func (api *gradebookApi) contactCreate(ctx echo.Context) error {
	data := new(gradebook.NewEmailContact)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	ec, err := api.service.CreateContact(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, ec)
}

func (api *gradebookApi) contactUpdate(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	data := new(gradebook.UpdateEmailContact)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	if err := api.service.UpdateContact(ctx.Request().Context(), id, *data); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *gradebookApi) contactDestroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.service.DeleteContact(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Assignments

func (api *gradebookApi) assignmentCreate(ctx echo.Context) error {
	data := new(gradebook.NewAssignment)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	a, err := api.service.CreateAssignment(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *gradebookApi) assignmentRetrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	a, err := api.service.GetAssignment(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *gradebookApi) assignmentUpdate(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	data := new(gradebook.UpdateAssignment)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	if err := api.service.UpdateAssignment(ctx.Request().Context(), id, *data); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *gradebookApi) assignmentDestroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.service.DeleteAssignment(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *gradebookApi) assignmentGrades(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	grades, err := api.service.QueryGradesByAssignment(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grades)
}

// Grades

func (api *gradebookApi) gradeCreate(ctx echo.Context) error {
	data := new(gradebook.NewGrade)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	grd, err := api.service.CreateGrade(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, grd)
}

func (api *gradebookApi) gradeUpdate(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	data := new(gradebook.UpdateGrade)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	if err := api.service.UpdateGrade(ctx.Request().Context(), id, *data); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *gradebookApi) gradeDestroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.service.DeleteGrade(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Settings

func (api *gradebookApi) settingRetrieve(ctx echo.Context) error {
	s, err := api.service.GetSetting(ctx.Request().Context(), ctx.Param("key"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}

type settingSetRequest struct {
	Value string `json:"value"`
}

func (api *gradebookApi) settingSet(ctx echo.Context) error {
	data := new(settingSetRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := api.service.SetSetting(ctx.Request().Context(), ctx.Param("key"), data.Value); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
