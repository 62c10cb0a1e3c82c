package mapper

import (
	"html/template"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoJSON returns the markers as a FeatureCollection of points.
func (m *Map) GeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, mk := range m.Markers {
		f := geojson.NewFeature(orb.Point{mk.Lon, mk.Lat})
		f.Properties["index"] = i
		f.Properties["popup"] = mk.Popup
		f.Properties["marker-color"] = mk.Color
		f.Properties["icon"] = mk.Icon
		fc.Append(f)
	}
	return fc
}

var pageTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1.0"/>
<title>Monuments near {{.Postcode}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"/>
<link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/Leaflet.awesome-markers/2.0.2/leaflet.awesome-markers.css"/>
<link rel="stylesheet" href="https://netdna.bootstrapcdn.com/bootstrap/3.0.0/css/bootstrap-glyphicons.css"/>
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<script src="https://cdnjs.cloudflare.com/ajax/libs/Leaflet.awesome-markers/2.0.2/leaflet.awesome-markers.js"></script>
<style>html, body { width: 100%; height: 100%; margin: 0; } .map { width: 100%; height: 100%; }</style>
</head>
<body>
<div id="{{.ID}}" class="map"></div>
<script>
var map = L.map({{.ID}}).setView([{{.Center.Lat}}, {{.Center.Lon}}], {{.Zoom}});
L.tileLayer("https://tile.openstreetmap.org/{z}/{x}/{y}.png", {
  maxZoom: 19,
  attribution: "&copy; OpenStreetMap contributors"
}).addTo(map);
var markers = {{.Markers}};
markers.forEach(function (m) {
  var icon = L.AwesomeMarkers.icon({ icon: m.icon, markerColor: m.color, prefix: "glyphicon" });
  var popup = document.createElement("div");
  popup.textContent = m.popup;
  L.marker([m.lat, m.lon], { icon: icon }).bindPopup(popup).addTo(map);
});
</script>
</body>
</html>
`))

// WriteHTML renders the map as a standalone Leaflet page.
func (m *Map) WriteHTML(w io.Writer) error {
	return pageTemplate.Execute(w, m)
}
