package dto

type PointOutput struct {
	ID        string
	Name      string
	Lat       float64
	Lng       float64
	Materials []string
	Hours     string
	Phone     string
	Address   string
	Website   string
}

type NearestInput struct {
	Lat       float64
	Lng       float64
	Materials []string
}

type NearestOutput struct {
	Point      PointOutput
	DistanceKm float64
}
