package domain

import "encoding/json"

type FlightType int

const (
	FlightOneWay FlightType = iota
	FlightRoundtrip
)

func (t FlightType) Valid() bool {
	return t == FlightOneWay || t == FlightRoundtrip
}

type Cabin int

const (
	CabinEconomy Cabin = iota
	CabinPremiumEconomy
	CabinBusiness
	CabinFirst
)

func (c Cabin) Valid() bool {
	return c >= CabinEconomy && c <= CabinFirst
}

// Flight is a priced, scheduled instance of travel on a Pair. Origin,
// destination and type come from the referenced pair; the flights table
// stores the schedule and fare columns.
type Flight struct {
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	Type          FlightType `json:"type"`
	DepartureTime string     `json:"departureTime"`
	ArrivalTime   string     `json:"arrivalTime"`
	FareCarrier   string     `json:"fareCarrier"`
	Price         float64    `json:"price"`
	Currency      string     `json:"currency"`
	Cabin         Cabin      `json:"cabin"`
}

func (f Flight) Serialize() (string, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return "", Internalf("failed to serialize flight: %v", err)
	}
	return string(data), nil
}

func ParseFlight(raw string) (Flight, error) {
	var fields struct {
		Origin        *string     `json:"origin"`
		Destination   *string     `json:"destination"`
		Type          *FlightType `json:"type"`
		DepartureTime *string     `json:"departureTime"`
		ArrivalTime   *string     `json:"arrivalTime"`
		FareCarrier   *string     `json:"fareCarrier"`
		Price         *float64    `json:"price"`
		Currency      *string     `json:"currency"`
		Cabin         *Cabin      `json:"cabin"`
	}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return Flight{}, BadRequestf("failed to deserialize flight: %v", err)
	}
	if fields.Origin == nil || fields.Destination == nil || fields.Type == nil ||
		fields.DepartureTime == nil || fields.ArrivalTime == nil || fields.FareCarrier == nil ||
		fields.Price == nil || fields.Currency == nil || fields.Cabin == nil {
		return Flight{}, BadRequest("flight is missing required fields")
	}
	if !fields.Type.Valid() {
		return Flight{}, BadRequestf("unknown flight type %d", *fields.Type)
	}
	if !fields.Cabin.Valid() {
		return Flight{}, BadRequestf("unknown cabin class %d", *fields.Cabin)
	}
	return Flight{
		Origin:        *fields.Origin,
		Destination:   *fields.Destination,
		Type:          *fields.Type,
		DepartureTime: *fields.DepartureTime,
		ArrivalTime:   *fields.ArrivalTime,
		FareCarrier:   *fields.FareCarrier,
		Price:         *fields.Price,
		Currency:      *fields.Currency,
		Cabin:         *fields.Cabin,
	}, nil
}
