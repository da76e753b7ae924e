package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type studentApi struct {
	opts *Options
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := studentApi{opts: opts}

	sg := g.Group("/students/get-students", jwt)
	sg.GET("/", api.query)
	sg.GET("/:id/", api.retrieve)
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	var paging Paging
	paging.Bind(ctx)
	students, total := api.opts.DB.QueryStudents(paging.Search, paging.Page)
	return ctx.JSON(http.StatusOK, newPage(ctx, paging, total, students))
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	s, err := api.opts.DB.GetStudent(id)
	if err != nil {
		return errors.Wrap(err, "getting student")
	}
	return ctx.JSON(http.StatusOK, s)
}
