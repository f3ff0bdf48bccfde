// internal/geom/spatial.go
package geom

import (
	"math"

	"go-base-defense/internal/types"
)

type cellKey struct {
	X, Y int
}

// SpatialHash группирует объекты по ячейкам фиксированного размера и
// ускоряет запросы "кто рядом с точкой": вместо полного перебора
// посещаются только перекрываемые ячейки. Объект, чей радиус
// пересекает несколько ячеек, вставляется в каждую из них.
type SpatialHash struct {
	cellSize float64
	cells    map[cellKey][]entry
}

type entry struct {
	id     types.ObjectID
	x, y   float64
	radius float64
}

// NewSpatialHash создает хеш с указанным размером ячейки.
func NewSpatialHash(cellSize float64) *SpatialHash {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &SpatialHash{
		cellSize: cellSize,
		cells:    make(map[cellKey][]entry),
	}
}

// Clear очищает хеш, сохраняя выделенные слайсы ячеек.
func (h *SpatialHash) Clear() {
	for k := range h.cells {
		h.cells[k] = h.cells[k][:0]
	}
}

// Insert добавляет объект во все ячейки, которые перекрывает его радиус.
func (h *SpatialHash) Insert(id types.ObjectID, x, y, radius float64) {
	e := entry{id: id, x: x, y: y, radius: radius}

	minX := int(math.Floor((x - radius) / h.cellSize))
	maxX := int(math.Floor((x + radius) / h.cellSize))
	minY := int(math.Floor((y - radius) / h.cellSize))
	maxY := int(math.Floor((y + radius) / h.cellSize))

	for cx := minX; cx <= maxX; cx++ {
		for cy := minY; cy <= maxY; cy++ {
			key := cellKey{cx, cy}
			h.cells[key] = append(h.cells[key], e)
		}
	}
}

// QueryRadius возвращает идентификаторы объектов, чьи окружности
// пересекают круг запроса. Объекты из нескольких ячеек не дублируются.
func (h *SpatialHash) QueryRadius(x, y, radius float64) []types.ObjectID {
	minX := int(math.Floor((x - radius) / h.cellSize))
	maxX := int(math.Floor((x + radius) / h.cellSize))
	minY := int(math.Floor((y - radius) / h.cellSize))
	maxY := int(math.Floor((y + radius) / h.cellSize))

	seen := make(map[types.ObjectID]struct{})
	result := make([]types.ObjectID, 0, 16)

	for cx := minX; cx <= maxX; cx++ {
		for cy := minY; cy <= maxY; cy++ {
			for _, e := range h.cells[cellKey{cx, cy}] {
				if _, dup := seen[e.id]; dup {
					continue
				}
				if CircleCircle(x, y, radius, e.x, e.y, e.radius).Ok {
					seen[e.id] = struct{}{}
					result = append(result, e.id)
				}
			}
		}
	}
	return result
}
