package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/alexanderramin/matlog/internal/domain"
	"github.com/alexanderramin/matlog/internal/service"
	"github.com/labstack/echo/v4"
)

// conflictRetries is how many times a delete is re-run after a concurrent
// modification.
const conflictRetries = 1

func decodeJSON(c echo.Context, dst any) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return echo.NewHTTPError(http.StatusBadRequest, "request body is required")
		}
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("can not understand the requested json: %v", err))
	}
	return nil
}

// pathParam returns a decoded path parameter. Echo leaves parameters escaped
// when the request carried a raw path.
func pathParam(c echo.Context, name string) (string, error) {
	v := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return v, nil
	}
	decoded, err := url.PathUnescape(v)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("malformed %s", name))
	}
	return decoded, nil
}

func CreateMoveHandler(moves service.MoveService) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := ownerID(c)
		if err != nil {
			return err
		}
		var req createMoveRequest
		if err := decodeJSON(c, &req); err != nil {
			return err
		}
		m, err := moves.Create(c.Request().Context(), service.CreateMoveInput{
			OwnerID:     owner,
			PlanName:    req.PlanName,
			Name:        req.Name,
			Description: req.Description,
			ParentID:    req.ParentID,
			Order:       req.Order,
		})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, toMoveJSON(m))
	}
}

func GetMoveHandler(moves service.MoveService) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := ownerID(c)
		if err != nil {
			return err
		}
		id, err := pathParam(c, "id")
		if err != nil {
			return err
		}
		m, err := moves.GetOwned(c.Request().Context(), id, owner)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, toMoveJSON(m))
	}
}

func PatchMoveHandler(moves service.MoveService) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := ownerID(c)
		if err != nil {
			return err
		}
		id, err := pathParam(c, "id")
		if err != nil {
			return err
		}
		var req patchMoveRequest
		if err := decodeJSON(c, &req); err != nil {
			return err
		}
		m, err := moves.Update(c.Request().Context(), id, owner, service.MovePatch{
			Name:        req.Name,
			Description: req.Description,
			Order:       req.Order,
		})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, toMoveJSON(m))
	}
}

func DeleteMoveHandler(moves service.MoveService) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := ownerID(c)
		if err != nil {
			return err
		}
		id, err := pathParam(c, "id")
		if err != nil {
			return err
		}
		var deleted bool
		err = service.RetryOnConflict(c.Request().Context(), conflictRetries, func(ctx context.Context) error {
			var err error
			deleted, err = moves.DeleteSubtree(ctx, id, owner)
			return err
		})
		if err != nil {
			return err
		}
		if !deleted {
			return domain.ErrNotFound
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func ListPlansHandler(plans service.PlanIndex) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := ownerID(c)
		if err != nil {
			return err
		}
		summaries, err := plans.ListPlans(c.Request().Context(), owner)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, toPlansJSON(summaries))
	}
}

func PlanMovesHandler(plans service.PlanIndex) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := ownerID(c)
		if err != nil {
			return err
		}
		plan, err := pathParam(c, "plan")
		if err != nil {
			return err
		}
		moves, err := plans.ListByPlan(c.Request().Context(), owner, plan)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, toMovesJSON(moves))
	}
}

func PlanTreeHandler(plans service.PlanIndex) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := ownerID(c)
		if err != nil {
			return err
		}
		plan, err := pathParam(c, "plan")
		if err != nil {
			return err
		}
		forest, err := plans.PlanTree(c.Request().Context(), owner, plan)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, toForestJSON(forest))
	}
}

func DeletePlanHandler(plans service.PlanIndex) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := ownerID(c)
		if err != nil {
			return err
		}
		plan, err := pathParam(c, "plan")
		if err != nil {
			return err
		}
		var n int64
		err = service.RetryOnConflict(c.Request().Context(), conflictRetries, func(ctx context.Context) error {
			var err error
			n, err = plans.DeletePlan(ctx, owner, plan)
			return err
		})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, deletedJSON{Deleted: n})
	}
}
