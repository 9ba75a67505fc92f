package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/frankspastic/psia-gradebook/core"
	"github.com/frankspastic/psia-gradebook/core/gradebook"
	"github.com/frankspastic/psia-gradebook/core/mailer"
)

type emailApi struct {
	dispatcher *mailer.Dispatcher
	service    *gradebook.Service
}

func registerEmailAPI(g *echo.Group, dispatcher *mailer.Dispatcher, svc *gradebook.Service) {
	api := emailApi{dispatcher: dispatcher, service: svc}

	eg := g.Group("/email")
	eg.POST("/send", api.send)
	eg.POST("/test", api.testConnection)
}

type sendEmailRequest struct {
	StudentIDs []int                   `json:"student_ids" validate:"required,min=1"`
	Template   gradebook.EmailTemplate `json:"template"`
}

func (req *sendEmailRequest) Validate() error {
	if err := core.Validate.Struct(req); err != nil {
		return err
	}
	if core.CleanString(req.Template.Subject) == "" || core.CleanString(req.Template.Message) == "" {
		return core.NewValidationError(
			errors.New("subject and message are required"),
			core.FieldError{Field: "template", Error: "subject and message are required"},
		)
	}
	return nil
}

// send resolves each requested student into a recipient (contacts, grades)
// and the covered classes into the assignment list, then hands the batch to
// the dispatcher. The outcome is returned as-is, partial count included.
func (api *emailApi) send(ctx echo.Context) error {
	data := new(sendEmailRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()

	recipients := make([]gradebook.EmailRecipient, 0, len(data.StudentIDs))
	// classes in first-seen order so the assignment list is stable
	var classIDs []int
	seen := make(map[int]struct{})
	var allGrades []gradebook.Grade

	for _, id := range data.StudentIDs {
		student, err := api.service.GetStudent(reqCtx, id)
		if err != nil {
			return err
		}
		contacts, err := api.service.QueryContacts(reqCtx, id)
		if err != nil {
			return err
		}
		grades, err := api.service.QueryGradesByStudent(reqCtx, id)
		if err != nil {
			return err
		}
		recipients = append(recipients, gradebook.EmailRecipient{Student: student, Contacts: contacts})
		if _, ok := seen[student.ClassID]; !ok {
			seen[student.ClassID] = struct{}{}
			classIDs = append(classIDs, student.ClassID)
		}
		allGrades = append(allGrades, grades...)
	}

	var assignments []gradebook.Assignment
	for _, classID := range classIDs {
		as, err := api.service.QueryAssignments(reqCtx, classID)
		if err != nil {
			return err
		}
		assignments = append(assignments, as...)
	}

	res := api.dispatcher.Dispatch(reqCtx, recipients, data.Template, assignments, allGrades)
	return ctx.JSON(http.StatusOK, echo.Map{
		"success":   res.Success,
		"sentCount": res.SentCount,
		"error":     res.Error(),
	})
}

// testConnection verifies the submitted settings by opening and closing an
// authenticated session. Nothing is persisted.
func (api *emailApi) testConnection(ctx echo.Context) error {
	settings := new(core.SMTPSettings)
	if err := ctx.Bind(settings); err != nil {
		return err
	}

	if err := api.dispatcher.TestConnection(ctx.Request().Context(), *settings); err != nil {
		return ctx.JSON(http.StatusOK, echo.Map{"success": false, "error": err.Error()})
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true})
}
