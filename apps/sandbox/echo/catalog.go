package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/siddharth-debugs/college-erp-bite/core/admitcard"
)

type catalogApi struct {
	opts *Options
}

func registerCatalogAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := catalogApi{opts: opts}

	g.GET("/academics/get-all-courses-unpaginated/", api.courses, jwt)
	g.GET("/finance/specializations/:id/academic-groups/", api.academicGroups, jwt)
	g.GET("/staff/unpaginated-employee-list/", api.employees, jwt)
}

// Handlers

func (api *catalogApi) courses(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"data": api.opts.DB.Courses()})
}

func (api *catalogApi) academicGroups(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	groups, err := api.opts.DB.AcademicGroups(id)
	if err != nil {
		return errors.Wrap(err, "listing academic groups")
	}
	if groups == nil {
		groups = []admitcard.AcademicGroup{}
	}
	return ctx.JSON(http.StatusOK, groups)
}

func (api *catalogApi) employees(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"employees": api.opts.DB.Employees()})
}
