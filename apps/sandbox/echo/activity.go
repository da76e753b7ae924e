package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/siddharth-debugs/college-erp-bite/core"
	"github.com/siddharth-debugs/college-erp-bite/core/admitcard"
	inmemdb "github.com/siddharth-debugs/college-erp-bite/storage/inmem"
)

const msgNameTaken = "An activity with this name already exists for the selection."

type activityApi struct {
	opts *Options
}

func registerActivityAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := activityApi{opts: opts}

	ag := g.Group("/academics/activities", jwt)
	ag.GET("/", api.query)
	ag.POST("/", api.create)
	ag.GET("/update/", api.editView)
	ag.POST("/update/", api.update)
	ag.GET("/stats/", api.stats)
	ag.GET("/:id/", api.students)
}

// Handlers

func (api *activityApi) query(ctx echo.Context) error {
	var paging Paging
	paging.Bind(ctx)
	acts, total := api.opts.DB.QueryActivities(paging.Search, paging.Page)
	return ctx.JSON(http.StatusOK, newPage(ctx, paging, total, acts))
}

func (api *activityApi) create(ctx echo.Context) error {
	act, err := api.bindActivity(ctx)
	if err != nil {
		return err
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	act.CreatedBy = claims.FullName

	act, err = api.opts.DB.CreateActivity(act)
	if errors.Is(err, inmemdb.ErrNameTaken) {
		return ctx.JSON(http.StatusOK, echo.Map{"activity_name": []string{msgNameTaken}})
	}
	if err != nil {
		return errors.Wrap(err, "creating activity")
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"id": act.ID, "message": "Activity created successfully"})
}

func (api *activityApi) update(ctx echo.Context) error {
	act, err := api.bindActivity(ctx)
	if err != nil {
		return err
	}
	if act.ID == 0 {
		return core.NewValidationError(errors.New("activity_id is required"),
			core.FieldError{Field: "activity_id", Error: "This field is required."})
	}

	_, err = api.opts.DB.UpdateActivity(act)
	if errors.Is(err, inmemdb.ErrNameTaken) {
		return ctx.JSON(http.StatusOK, echo.Map{"activity_name": []string{msgNameTaken}})
	}
	if err != nil {
		return errors.Wrapf(err, "updating activity %d", act.ID)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Activity updated successfully"})
}

func (api *activityApi) editView(ctx echo.Context) error {
	id, err := queryID(ctx, "activity_id")
	if err != nil {
		return err
	}
	view, err := api.opts.DB.EditView(id)
	if err != nil {
		return errors.Wrap(err, "loading activity")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *activityApi) stats(ctx echo.Context) error {
	id, err := queryID(ctx, "activity_id")
	if err != nil {
		return err
	}
	stats, err := api.opts.DB.Stats(id)
	if err != nil {
		return errors.Wrap(err, "loading activity stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *activityApi) students(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	var paging Paging
	paging.Bind(ctx)
	filter := bindStudentFilter(ctx, paging.Search)

	detail, cards, total, err := api.opts.DB.ActivityStudents(id, filter, paging.Page)
	if err != nil {
		return errors.Wrap(err, "querying activity students")
	}
	type studentsPage struct {
		page
		TotalAdmitCards int `json:"total_admit_cards"`
	}
	return ctx.JSON(http.StatusOK, struct {
		admitcard.ActivityDetail
		Students studentsPage `json:"students"`
	}{
		ActivityDetail: detail,
		Students:       studentsPage{newPage(ctx, paging, total, cards), detail.TotalAdmitCards},
	})
}

// bindActivity binds and validates an admitcard.Payload, resolving it to a stored activity.
func (api *activityApi) bindActivity(ctx echo.Context) (inmemdb.Activity, error) {
	var data admitcard.Payload
	if err := ctx.Bind(&data); err != nil {
		return inmemdb.Activity{}, errors.Wrap(err, "binding to Payload")
	}
	if err := validateStruct(api.opts, data); err != nil {
		return inmemdb.Activity{}, err
	}

	var flds []core.FieldError
	ids := func(field, value string) []int {
		parsed, err := core.ParseIDs(value)
		if err != nil {
			flds = append(flds, core.FieldError{Field: field, Error: "Enter a comma separated list of ids."})
		}
		return parsed
	}
	act := inmemdb.Activity{
		ID:            data.ActivityID,
		Name:          data.ActivityName,
		SelectionName: data.SelectionName,
		StartDate:     data.StartDate,
		EndDate:       data.EndDate,
		ExamStartDate: data.ExamStartDate,
		EmployeeIDs:   ids("employee_ids", data.EmployeeIDs),
		StudentIDs:    ids("student_ids", data.StudentIDs),
		AuthMethodIDs: ids("authentication_method_ids", data.AuthenticationMethodIDs),
		PreCheckIDs:   ids("pre_check_method_ids", data.PreCheckMethodIDs),
	}
	if data.LagIDs == nil {
		flds = append(flds, core.FieldError{Field: "lag_ids", Error: "This field is required."})
	} else if groupID, err := strconv.Atoi(*data.LagIDs); err != nil {
		flds = append(flds, core.FieldError{Field: "lag_ids", Error: "A valid integer is required."})
	} else {
		act.GroupID = groupID
	}
	if len(flds) > 0 {
		return inmemdb.Activity{}, core.NewValidationError(errors.New(flds[0].Error), flds...)
	}
	return act, nil
}

func queryID(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.QueryParam(name))
	if err != nil || id <= 0 {
		return 0, core.NewValidationError(errors.Errorf("invalid %s", name),
			core.FieldError{Field: name, Error: "A valid integer is required."})
	}
	return id, nil
}
