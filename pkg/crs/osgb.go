package crs

import "math"

// https://www.ordnancesurvey.co.uk/documents/resources/guide-coordinate-systems-great-britain.pdf
// helmert + transverse mercator, same accuracy (~5m) as the default EPSG:4326 -> EPSG:27700 pipeline without OSTN15.

type ellipsoid struct {
	a, b float64
}

func (e ellipsoid) e2() float64 {
	return 1 - (e.b*e.b)/(e.a*e.a)
}

var (
	wgs84Ellipsoid = ellipsoid{a: 6378137.000, b: 6356752.314245}
	airy1830       = ellipsoid{a: 6377563.396, b: 6356256.909}
)

// national grid true origin
const (
	f0   = 0.9996012717
	lat0 = 49.0 * degToRad
	lon0 = -2.0 * degToRad
	e0   = 400000.0
	n0   = -100000.0
)

const (
	degToRad = math.Pi / 180.0
	radToDeg = 180.0 / math.Pi
	secToRad = degToRad / 3600.0
)

type helmert struct {
	tx, ty, tz float64 // metres
	s          float64 // ppm
	rx, ry, rz float64 // arc seconds
}

// wgs84ToOSGB36 is the OSGB36 datum shift as published by the Ordnance Survey.
var wgs84ToOSGB36 = helmert{
	tx: -446.448, ty: 125.157, tz: -542.060,
	s:  20.4894,
	rx: -0.1502, ry: -0.2470, rz: -0.8421,
}

func (h helmert) apply(x, y, z float64) (float64, float64, float64) {
	s1 := h.s*1e-6 + 1
	rx := h.rx * secToRad
	ry := h.ry * secToRad
	rz := h.rz * secToRad

	x2 := h.tx + x*s1 - y*rz + z*ry
	y2 := h.ty + x*rz + y*s1 - z*rx
	z2 := h.tz - x*ry + y*rx + z*s1
	return x2, y2, z2
}

// invert undoes apply exactly by solving the rotation and scale matrix with Cramer's rule.
func (h helmert) invert(x, y, z float64) (float64, float64, float64) {
	s1 := h.s*1e-6 + 1
	rx := h.rx * secToRad
	ry := h.ry * secToRad
	rz := h.rz * secToRad

	bx, by, bz := x-h.tx, y-h.ty, z-h.tz

	det3 := func(a, b, c, d, e, f, g, i, j float64) float64 {
		return a*(e*j-f*i) - b*(d*j-f*g) + c*(d*i-e*g)
	}
	det := det3(s1, -rz, ry, rz, s1, -rx, -ry, rx, s1)

	x0 := det3(bx, -rz, ry, by, s1, -rx, bz, rx, s1) / det
	y0 := det3(s1, bx, ry, rz, by, -rx, -ry, bz, s1) / det
	z0 := det3(s1, -rz, bx, rz, s1, by, -ry, rx, bz) / det
	return x0, y0, z0
}

// toCartesian converts geodetic lat/lon (radians) and height to earth centred cartesian coordinates.
func toCartesian(lat, lon, h float64, el ellipsoid) (float64, float64, float64) {
	e2 := el.e2()
	sinLat := math.Sin(lat)
	nu := el.a / math.Sqrt(1-e2*sinLat*sinLat)

	x := (nu + h) * math.Cos(lat) * math.Cos(lon)
	y := (nu + h) * math.Cos(lat) * math.Sin(lon)
	z := ((1-e2)*nu + h) * sinLat
	return x, y, z
}

func toGeodetic(x, y, z float64, el ellipsoid) (lat, lon, h float64) {
	e2 := el.e2()
	p := math.Sqrt(x*x + y*y)

	lon = math.Atan2(y, x)
	lat = math.Atan2(z, p*(1-e2))

	var nu float64
	for i := 0; i < 10; i++ {
		sinLat := math.Sin(lat)
		nu = el.a / math.Sqrt(1-e2*sinLat*sinLat)
		next := math.Atan2(z+e2*nu*sinLat, p)
		if math.Abs(next-lat) < 1e-12 {
			lat = next
			break
		}
		lat = next
	}
	h = p/math.Cos(lat) - nu
	return lat, lon, h
}

// meridionalArc is M in the OS guide, the developed arc of meridian from lat0 to lat.
func meridionalArc(lat float64, el ellipsoid) float64 {
	n := (el.a - el.b) / (el.a + el.b)
	n2 := n * n
	n3 := n2 * n

	dLat := lat - lat0
	sLat := lat + lat0

	ma := (1 + n + 5.0/4.0*n2 + 5.0/4.0*n3) * dLat
	mb := (3*n + 3*n2 + 21.0/8.0*n3) * math.Sin(dLat) * math.Cos(sLat)
	mc := (15.0/8.0*n2 + 15.0/8.0*n3) * math.Sin(2*dLat) * math.Cos(2*sLat)
	md := 35.0 / 24.0 * n3 * math.Sin(3*dLat) * math.Cos(3*sLat)
	return el.b * f0 * (ma - mb + mc - md)
}

func radii(lat float64, el ellipsoid) (nu, rho, eta2 float64) {
	e2 := el.e2()
	sinLat := math.Sin(lat)
	t := 1 - e2*sinLat*sinLat

	nu = el.a * f0 / math.Sqrt(t)
	rho = el.a * f0 * (1 - e2) / math.Pow(t, 1.5)
	eta2 = nu/rho - 1
	return nu, rho, eta2
}

// projectTM maps OSGB36 lat/lon (radians) on the Airy ellipsoid to grid eastings/northings.
func projectTM(lat, lon float64) (float64, float64) {
	el := airy1830
	nu, rho, eta2 := radii(lat, el)
	m := meridionalArc(lat, el)

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	cos3 := cosLat * cosLat * cosLat
	cos5 := cos3 * cosLat * cosLat
	tan2 := math.Tan(lat) * math.Tan(lat)
	tan4 := tan2 * tan2

	i := m + n0
	ii := nu / 2 * sinLat * cosLat
	iii := nu / 24 * sinLat * cos3 * (5 - tan2 + 9*eta2)
	iiia := nu / 720 * sinLat * cos5 * (61 - 58*tan2 + tan4)
	iv := nu * cosLat
	v := nu / 6 * cos3 * (nu/rho - tan2)
	vi := nu / 120 * cos5 * (5 - 18*tan2 + tan4 + 14*eta2 - 58*tan2*eta2)

	dLon := lon - lon0
	dLon2 := dLon * dLon
	dLon3 := dLon2 * dLon
	dLon4 := dLon3 * dLon
	dLon5 := dLon4 * dLon
	dLon6 := dLon5 * dLon

	northing := i + ii*dLon2 + iii*dLon4 + iiia*dLon6
	easting := e0 + iv*dLon + v*dLon3 + vi*dLon5
	return easting, northing
}

// unprojectTM is the inverse of projectTM.
func unprojectTM(easting, northing float64) (float64, float64) {
	el := airy1830

	lat := lat0
	m := 0.0
	for {
		lat = (northing-n0-m)/(el.a*f0) + lat
		m = meridionalArc(lat, el)
		if math.Abs(northing-n0-m) < 0.00001 {
			break
		}
	}

	nu, rho, eta2 := radii(lat, el)
	tanLat := math.Tan(lat)
	tan2 := tanLat * tanLat
	tan4 := tan2 * tan2
	tan6 := tan4 * tan2
	secLat := 1 / math.Cos(lat)
	nu3 := nu * nu * nu
	nu5 := nu3 * nu * nu
	nu7 := nu5 * nu * nu

	vii := tanLat / (2 * rho * nu)
	viii := tanLat / (24 * rho * nu3) * (5 + 3*tan2 + eta2 - 9*tan2*eta2)
	ix := tanLat / (720 * rho * nu5) * (61 + 90*tan2 + 45*tan4)
	x := secLat / nu
	xi := secLat / (6 * nu3) * (nu/rho + 2*tan2)
	xii := secLat / (120 * nu5) * (5 + 28*tan2 + 24*tan4)
	xiia := secLat / (5040 * nu7) * (61 + 662*tan2 + 1320*tan4 + 720*tan6)

	dE := easting - e0
	dE2 := dE * dE
	dE3 := dE2 * dE
	dE4 := dE3 * dE
	dE5 := dE4 * dE
	dE6 := dE5 * dE
	dE7 := dE6 * dE

	outLat := lat - vii*dE2 + viii*dE4 - ix*dE6
	outLon := lon0 + x*dE - xi*dE3 + xii*dE5 - xiia*dE7
	return outLat, outLon
}

// WGS84ToBNG converts WGS84 longitude/latitude in degrees to British National Grid easting/northing in metres.
func WGS84ToBNG(lon, lat float64) (float64, float64) {
	x, y, z := toCartesian(lat*degToRad, lon*degToRad, 0, wgs84Ellipsoid)
	x, y, z = wgs84ToOSGB36.apply(x, y, z)
	osLat, osLon, _ := toGeodetic(x, y, z, airy1830)
	return projectTM(osLat, osLon)
}

// BNGToWGS84 converts British National Grid easting/northing to WGS84 longitude/latitude in degrees.
func BNGToWGS84(easting, northing float64) (float64, float64) {
	osLat, osLon := unprojectTM(easting, northing)
	x, y, z := toCartesian(osLat, osLon, 0, airy1830)
	x, y, z = wgs84ToOSGB36.invert(x, y, z)
	lat, lon, _ := toGeodetic(x, y, z, wgs84Ellipsoid)
	return lon * radToDeg, lat * radToDeg
}
