package domain

import "encoding/json"

// Pair is an origin/destination route, independent of any priced flight.
// The (origin, destination) tuple is the natural identifier and is unique
// in the store. IsOneWay and IsRoundtrip are independent booleans; both
// may be true.
type Pair struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	IsOneWay    bool   `json:"isOneWay"`
	IsRoundtrip bool   `json:"isRoundtrip"`
	FareCarrier string `json:"fareCarrier"`
}

func (p Pair) Serialize() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", Internalf("failed to serialize pair: %v", err)
	}
	return string(data), nil
}

func ParsePair(raw string) (Pair, error) {
	var fields struct {
		Origin      *string `json:"origin"`
		Destination *string `json:"destination"`
		IsOneWay    *bool   `json:"isOneWay"`
		IsRoundtrip *bool   `json:"isRoundtrip"`
		FareCarrier *string `json:"fareCarrier"`
	}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return Pair{}, BadRequestf("failed to deserialize pair: %v", err)
	}
	if fields.Origin == nil || fields.Destination == nil || fields.IsOneWay == nil ||
		fields.IsRoundtrip == nil || fields.FareCarrier == nil {
		return Pair{}, BadRequest("pair requires origin, destination, isOneWay, isRoundtrip and fareCarrier")
	}
	return Pair{
		Origin:      *fields.Origin,
		Destination: *fields.Destination,
		IsOneWay:    *fields.IsOneWay,
		IsRoundtrip: *fields.IsRoundtrip,
		FareCarrier: *fields.FareCarrier,
	}, nil
}
