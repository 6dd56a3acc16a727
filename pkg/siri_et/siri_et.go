package siri_et

const Namespace = "http://www.siri.org.uk/siri"

type EstimatedVehicleJourney struct {
	LineRef string
	// nil when the element is missing, which is different from an empty code
	DirectionRef *string

	FramedVehicleJourneyRef struct {
		DataFrameRef           string
		DatedVehicleJourneyRef string
	}

	OperatorRef     string
	OriginName      string
	DestinationName string

	RecordedCalls  *RecordedCalls
	EstimatedCalls *EstimatedCalls
}

type RecordedCalls struct {
	RecordedCall []RecordedCall
}

type RecordedCall struct {
	StopPointRef  string
	Order         int
	StopPointName string

	AimedArrivalTime  string
	ActualArrivalTime string

	AimedDepartureTime  string
	ActualDepartureTime string
}

type EstimatedCalls struct {
	EstimatedCall []EstimatedCall
}

type EstimatedCall struct {
	StopPointRef  string
	Order         int
	StopPointName string

	AimedArrivalTime    string
	ExpectedArrivalTime string

	AimedDepartureTime    string
	ExpectedDepartureTime string
	DepartureStatus       string
}
