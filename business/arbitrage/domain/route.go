// Package domain contains the core domain types for the arbitrage context.
package domain

// RouteKind discriminates the closed set of route variants.
type RouteKind string

const (
	// RouteSpatial buys on one venue and sells on another within one pair.
	RouteSpatial RouteKind = "spatial"

	// RouteTriangular chains three pairs back to the starting asset.
	RouteTriangular RouteKind = "triangular"
)

// Route is the closed variant over spatial and triangular routes. Exactly the
// two concrete types below implement it, so resolution logic can type-switch
// exhaustively.
type Route interface {
	Kind() RouteKind
	PoolIDs() []string
	Venues() []string
	isRoute()
}

// PoolRef identifies one pool of a route at submission time. Resolution
// re-resolves the id against the then-current market.
type PoolRef struct {
	ID    string
	Venue string
}

// SpatialRoute buys tokenA on From (the cheaper venue) and sells it on To.
type SpatialRoute struct {
	From PoolRef
	To   PoolRef
}

func (SpatialRoute) Kind() RouteKind { return RouteSpatial }
func (SpatialRoute) isRoute()        {}

func (r SpatialRoute) PoolIDs() []string {
	return []string{r.From.ID, r.To.ID}
}

func (r SpatialRoute) Venues() []string {
	return []string{r.From.Venue, r.To.Venue}
}

// TriangularRoute chains WETH -> USDC -> DAI -> WETH across three pools.
type TriangularRoute struct {
	WETHUSDC PoolRef
	USDCDAI  PoolRef
	DAIWETH  PoolRef
}

func (TriangularRoute) Kind() RouteKind { return RouteTriangular }
func (TriangularRoute) isRoute()        {}

func (r TriangularRoute) PoolIDs() []string {
	return []string{r.WETHUSDC.ID, r.USDCDAI.ID, r.DAIWETH.ID}
}

func (r TriangularRoute) Venues() []string {
	return []string{r.WETHUSDC.Venue, r.USDCDAI.Venue, r.DAIWETH.Venue}
}
