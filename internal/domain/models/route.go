package models

// RouteStop is one intermediate stop with its distance from the start point.
type RouteStop struct {
	Name                string  `json:"name"`
	Order               int     `json:"order"`
	DistanceFromStartKm float64 `json:"distanceFromStartKm"`
}

// Route describes a scheduled service corridor. Geography is immutable once
// trips reference the route; fare fields may be revised independently.
type Route struct {
	ID              int64       `json:"id"`
	RouteNumber     string      `json:"routeNumber"`
	RouteName       string      `json:"routeName"`
	StartPoint      string      `json:"startPoint"`
	EndPoint        string      `json:"endPoint"`
	Stops           []RouteStop `json:"stops"`
	TotalDistanceKm float64     `json:"totalDistanceKm"`
	DurationMin     int         `json:"durationMin"`
	BusType         string      `json:"busType"`
	RouteType       string      `json:"routeType"` // local, intercity, interstate
	FarePerKm       float64     `json:"farePerKm"`
	CreatedAt       string      `json:"createdAt,omitempty"`
}
