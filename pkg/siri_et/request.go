package siri_et

import (
	"encoding/xml"
	"time"
)

const RequestVersion = "2.1"

type SiriRequest struct {
	XMLName xml.Name `xml:"http://www.siri.org.uk/siri Siri"`
	Version string   `xml:"version,attr"`

	ServiceRequest ServiceRequest
}

type ServiceRequest struct {
	RequestTimestamp string
	RequestorRef     string

	EstimatedTimetableRequest EstimatedTimetableRequest
}

type EstimatedTimetableRequest struct {
	Version string `xml:"version,attr"`

	RequestTimestamp string
	PreviewInterval  string `xml:",omitempty"`
	OperatorRef      string `xml:",omitempty"`

	Lines []LineDirection `xml:"Lines>LineDirection,omitempty"`

	StopPointRef string `xml:",omitempty"`
}

type LineDirection struct {
	LineRef      string
	DirectionRef string `xml:",omitempty"`
}

// NewEstimatedTimetableRequest builds a request stamped with the given time in UTC
func NewEstimatedTimetableRequest(requestTime time.Time, requestorRef string) *SiriRequest {
	timestamp := requestTime.UTC().Format(time.RFC3339)

	return &SiriRequest{
		Version: RequestVersion,
		ServiceRequest: ServiceRequest{
			RequestTimestamp: timestamp,
			RequestorRef:     requestorRef,
			EstimatedTimetableRequest: EstimatedTimetableRequest{
				Version:          "1.1",
				RequestTimestamp: timestamp,
			},
		},
	}
}

func (r *SiriRequest) MarshalDocument() ([]byte, error) {
	body, err := xml.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), body...), nil
}
