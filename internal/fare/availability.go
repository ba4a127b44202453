package fare

import "github.com/iliyamo/train-booking/internal/model"

// Availability holds one seat total per class. It marshals as
// {"1A":n,"2A":n,"3A":n,"SL":n}.
type Availability struct {
	FirstAC  int `json:"1A"`
	SecondAC int `json:"2A"`
	ThirdAC  int `json:"3A"`
	Sleeper  int `json:"SL"`
}

// Get returns the total recorded for c.
func (a Availability) Get(c Class) int {
	switch c {
	case Class1A:
		return a.FirstAC
	case Class2A:
		return a.SecondAC
	case Class3A:
		return a.ThirdAC
	case ClassSL:
		return a.Sleeper
	}
	return 0
}

// Aggregate sums each class's seat count across every stop. Null counts
// contribute zero.
func Aggregate(stops []model.ScheduleStop) Availability {
	var a Availability
	for _, s := range stops {
		a.FirstAC += deref(s.Seats1A)
		a.SecondAC += deref(s.Seats2A)
		a.ThirdAC += deref(s.Seats3A)
		a.Sleeper += deref(s.SeatsSL)
	}
	return a
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
