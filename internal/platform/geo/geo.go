package geo

import (
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
)

// EarthRadiusKm es el radio medio usado para convertir ángulos a km.
const EarthRadiusKm = 6371.0

// Point es un par lat/lon en grados.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Location es un punto reportado por un navegador, con precisión opcional (metros).
type Location struct {
	Point
	Accuracy *float64 `json:"accuracy,omitempty"`
}

// IsZero indica si alguna coordenada es exactamente 0.
// El cero se sigue usando como "no configurado" para el hogar.
func (p Point) IsZero() bool {
	return p.Lat == 0 || p.Lon == 0
}

// Valid valida rangos (-90..90, -180..180) y que no haya NaN/Inf.
func (p Point) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lon, 0) {
		return false
	}
	return s2.LatLngFromDegrees(p.Lat, p.Lon).IsValid()
}

// DistanceKm calcula la distancia great-circle (haversine) en km.
func DistanceKm(a, b Point) float64 {
	angle := s2.LatLngFromDegrees(a.Lat, a.Lon).Distance(s2.LatLngFromDegrees(b.Lat, b.Lon))
	return angle.Radians() * EarthRadiusKm
}

// Round2 redondea a 2 decimales. Solo para mostrar.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ParseLocation interpreta lat/lon/accuracy tal como llegan de un form.
// Si lat o lon no son numéricos o están fuera de rango devuelve ok=false:
// el caller debe tratarlo como "sin ubicación", no como error.
// Una accuracy inválida se descarta sin invalidar el punto.
func ParseLocation(lat, lon, accuracy string) (Location, bool) {
	la, err := parseFloat(lat)
	if err != nil {
		return Location{}, false
	}
	lo, err := parseFloat(lon)
	if err != nil {
		return Location{}, false
	}

	p := Point{Lat: la, Lon: lo}
	if !p.Valid() {
		return Location{}, false
	}

	loc := Location{Point: p}
	if acc, err := parseFloat(accuracy); err == nil && acc >= 0 && !math.IsInf(acc, 0) && !math.IsNaN(acc) {
		loc.Accuracy = &acc
	}
	return loc, true
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
