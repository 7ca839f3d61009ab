// internal/parser/gpx.go
package parser

import (
	"encoding/xml"
	"math"
	"time"

	"garmin-dashboard/internal/models"
)

type gpxFile struct {
	XMLName xml.Name `xml:"gpx"`
	Trk     gpxTrk   `xml:"trk"`
}

type gpxTrk struct {
	Name   string      `xml:"name"`
	Type   string      `xml:"type"`
	TrkSeg []gpxTrkSeg `xml:"trkseg"`
}

type gpxTrkSeg struct {
	TrkPt []gpxTrkPt `xml:"trkpt"`
}

type gpxTrkPt struct {
	Lat  float64 `xml:"lat,attr"`
	Lon  float64 `xml:"lon,attr"`
	Ele  float64 `xml:"ele"`
	Time string  `xml:"time"`
}

type GPXParser struct{}

func NewGPXParser() *GPXParser {
	return &GPXParser{}
}

func (p *GPXParser) Parse(data []byte) (*models.ActivityMetrics, error) {
	var gpx gpxFile
	if err := xml.Unmarshal(data, &gpx); err != nil {
		return nil, err
	}

	var points []gpxTrkPt
	for _, seg := range gpx.Trk.TrkSeg {
		points = append(points, seg.TrkPt...)
	}
	if len(points) == 0 {
		return nil, ErrNoTrackData
	}

	startTime, _ := time.Parse(time.RFC3339, points[0].Time)
	endTime, _ := time.Parse(time.RFC3339, points[len(points)-1].Time)

	metrics := &models.ActivityMetrics{
		ActivityType: gpx.Trk.Type,
		StartTime:    startTime,
	}
	if endTime.After(startTime) {
		metrics.Duration = endTime.Sub(startTime)
	}

	var totalDistance, elevationGain, elevationLoss float64
	prev := points[0]
	for _, curr := range points[1:] {
		totalDistance += haversine(prev.Lat, prev.Lon, curr.Lat, curr.Lon)
		if curr.Ele > prev.Ele {
			elevationGain += curr.Ele - prev.Ele
		} else {
			elevationLoss += prev.Ele - curr.Ele
		}
		prev = curr
	}

	metrics.Distance = totalDistance
	metrics.ElevationGain = elevationGain
	metrics.ElevationLoss = elevationLoss

	return metrics, nil
}

// haversine returns the distance in meters between two points on Earth.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000 // meters

	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}
