package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const contextRegionKey = "region"

func adminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.IsAdmin {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// regionMiddleware resolves the workspace a request operates on: an
// explicit ?region= wins, then the token's region, then the default.
// resolve normalizes unknown tokens to the default region.
func regionMiddleware(resolve func(string) string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			region := ctx.QueryParam("region")
			if region == "" {
				if claims, err := getContextClaims(ctx); err == nil {
					region = claims.Region
				}
			}
			ctx.Set(contextRegionKey, resolve(region))
			return next(ctx)
		}
	}
}

func getContextRegion(ctx echo.Context) string {
	region, _ := ctx.Get(contextRegionKey).(string)
	return region
}
