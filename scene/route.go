package scene

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"gridroute/config"
	"gridroute/core"
	"gridroute/pathfinding"
)

// Route is the routed path of one connector.
type Route struct {
	Connector Connector    `json:"connector"`
	Points    []core.Point `json:"points"`
	Found     bool         `json:"found"`
	Expanded  int          `json:"expanded"`
}

// Router routes the connectors of a scene. Each connector gets its own
// pathfinding.Router, so connectors are routed concurrently.
type Router struct {
	// Tuning applies to scenes that carry no tuning of their own.
	Tuning config.Tuning
	// Workers bounds the number of connectors routed at once. Zero or less
	// uses runtime.NumCPU.
	Workers int
	// Cache, when set, is consulted before routing a connector.
	Cache *pathfinding.CachedRouter
}

// NewRouter creates a scene router with the given fallback tuning.
func NewRouter(tuning config.Tuning) *Router {
	return &Router{Tuning: tuning}
}

func (r *Router) tuningFor(s *Scene) config.Tuning {
	if s.Tuning != nil {
		return *s.Tuning
	}
	return r.Tuning
}

// Route routes connector i of s.
func (r *Router) Route(s *Scene, i int) (Route, error) {
	req, err := s.Request(i)
	if err != nil {
		return Route{}, err
	}
	opts := r.tuningFor(s).Options()

	var result pathfinding.Result
	if r.Cache != nil {
		result, err = r.Cache.Route(req, opts...)
		if err != nil {
			return Route{}, fmt.Errorf("connector %s: %w", s.Connectors[i].Name(), err)
		}
	} else {
		router, err := pathfinding.NewRouter(req, opts...)
		if err != nil {
			return Route{}, fmt.Errorf("connector %s: %w", s.Connectors[i].Name(), err)
		}
		result = router.FindPath()
	}

	return Route{
		Connector: s.Connectors[i],
		Points:    result.Points,
		Found:     result.Found,
		Expanded:  result.Expanded,
	}, nil
}

// RouteAll routes every connector of s. Routes are returned in connector
// order. The first error cancels the remaining work.
func (r *Router) RouteAll(ctx context.Context, s *Scene) ([]Route, error) {
	routes := make([]Route, len(s.Connectors))

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range s.Connectors {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			route, err := r.Route(s, i)
			if err != nil {
				return err
			}
			routes[i] = route
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return routes, nil
}
