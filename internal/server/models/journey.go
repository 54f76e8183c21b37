package models

// TimePoint is the moment of a journey, in universe and planet time.
type TimePoint struct {
	ID       int64
	Universe string
	Planet   string
}

type Journey struct {
	ID          int64
	PlanetID    int64
	TimeID      int64
	Time        string
	DoctorID    int64
	Description string
}
