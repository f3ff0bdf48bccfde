// internal/geom/geom.go
package geom

import "math"

// Hit — результат проверки пересечения. Dist — расстояние между центрами
// (для SegmentCircle — от центра окружности до ближайшей точки отрезка),
// NX/NY — единичная нормаль для возможного физического отклика, направлена
// от второй фигуры к первой.
type Hit struct {
	Ok   bool
	Dist float64
	NX   float64
	NY   float64
}

// PointInCircle проверяет попадание точки в окружность.
func PointInCircle(px, py, cx, cy, r float64) Hit {
	dx := px - cx
	dy := py - cy
	dist := math.Sqrt(dx*dx + dy*dy)
	return Hit{
		Ok:   dist <= r,
		Dist: dist,
		NX:   safeNormX(dx, dy, dist),
		NY:   safeNormY(dx, dy, dist),
	}
}

// CircleCircle проверяет пересечение двух окружностей.
func CircleCircle(ax, ay, ar, bx, by, br float64) Hit {
	dx := ax - bx
	dy := ay - by
	dist := math.Sqrt(dx*dx + dy*dy)
	return Hit{
		Ok:   dist <= ar+br,
		Dist: dist,
		NX:   safeNormX(dx, dy, dist),
		NY:   safeNormY(dx, dy, dist),
	}
}

// CircleRect проверяет пересечение окружности с прямоугольником,
// заданным левым верхним углом и размерами.
func CircleRect(cx, cy, r, rx, ry, rw, rh float64) Hit {
	// Ближайшая к центру окружности точка прямоугольника.
	nx := clamp(cx, rx, rx+rw)
	ny := clamp(cy, ry, ry+rh)

	dx := cx - nx
	dy := cy - ny
	dist := math.Sqrt(dx*dx + dy*dy)
	return Hit{
		Ok:   dist <= r,
		Dist: dist,
		NX:   safeNormX(dx, dy, dist),
		NY:   safeNormY(dx, dy, dist),
	}
}

// SegmentCircle проверяет пересечение отрезка с окружностью.
// Используется лучевым оружием: отрезок — трасса луча за один тик.
func SegmentCircle(x1, y1, x2, y2, cx, cy, r float64) Hit {
	sx := x2 - x1
	sy := y2 - y1
	lenSq := sx*sx + sy*sy

	// Вырожденный отрезок сводится к проверке точки.
	if lenSq == 0 {
		return PointInCircle(x1, y1, cx, cy, r)
	}

	// Проекция центра на отрезок, зажатая в [0,1].
	t := ((cx-x1)*sx + (cy-y1)*sy) / lenSq
	t = clamp(t, 0, 1)

	px := x1 + t*sx
	py := y1 + t*sy

	dx := px - cx
	dy := py - cy
	dist := math.Sqrt(dx*dx + dy*dy)
	return Hit{
		Ok:   dist <= r,
		Dist: dist,
		NX:   safeNormX(dx, dy, dist),
		NY:   safeNormY(dx, dy, dist),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// При совпадении центров нормаль не определена; возвращаем (1,0),
// чтобы отклик оставался детерминированным.
func safeNormX(dx, dy, dist float64) float64 {
	if dist == 0 {
		return 1
	}
	return dx / dist
}

func safeNormY(dx, dy, dist float64) float64 {
	if dist == 0 {
		return 0
	}
	return dy / dist
}
