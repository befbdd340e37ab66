package scene

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"trirast/internal/raster"
)

// ParseTriangle reads three vertices from pasted text. Accepted forms:
//
//	POLYGON((x y, x y, x y, x y))
//	TRIANGLE((x y, x y, x y))
//	x y, x y, x y
//
// A closing vertex equal to the first is dropped.
func ParseTriangle(s string) ([3]raster.Point, error) {
	var out [3]raster.Point
	s = strings.TrimSpace(s)
	if s == "" {
		return out, errors.New("empty input")
	}
	up := strings.ToUpper(s)
	body := s
	switch {
	case strings.HasPrefix(up, "POLYGON"), strings.HasPrefix(up, "TRIANGLE"):
		i := strings.Index(s, "((")
		j := strings.LastIndex(s, "))")
		if i < 0 || j <= i {
			return out, errors.New("wkt triangle: invalid")
		}
		body = s[i+2 : j]
		if strings.Contains(body, "(") {
			return out, errors.New("wkt triangle: holes not supported")
		}
	case strings.IndexFunc(up, func(r rune) bool { return r >= 'A' && r <= 'Z' && r != 'E' }) >= 0:
		return out, errors.New("unsupported wkt type")
	}

	pts, err := parseTuples(body)
	if err != nil {
		return out, err
	}
	if len(pts) == 4 && pts[3] == pts[0] {
		pts = pts[:3]
	}
	if len(pts) != 3 {
		return out, fmt.Errorf("wkt triangle: need 3 vertices, got %d", len(pts))
	}
	copy(out[:], pts)
	return out, nil
}

// parseTuples splits "x y, x y, ..." into points.
func parseTuples(block string) ([]raster.Point, error) {
	var pts []raster.Point
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(strings.TrimSpace(tup))
		if len(parts) == 0 {
			continue
		}
		if len(parts) < 2 {
			return nil, fmt.Errorf("wkt triangle: bad vertex %q", strings.TrimSpace(tup))
		}
		x, e1 := strconv.ParseFloat(parts[0], 64)
		y, e2 := strconv.ParseFloat(parts[1], 64)
		if e1 != nil || e2 != nil {
			return nil, fmt.Errorf("wkt triangle: bad vertex %q", strings.TrimSpace(tup))
		}
		pts = append(pts, raster.Pt(x, y))
	}
	return pts, nil
}
