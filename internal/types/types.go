// internal/types/types.go
package types

import "fmt"

// ObjectID — уникальный идентификатор симуляционного объекта.
// Ноль зарезервирован как "нет объекта".
type ObjectID uint64

// Kind — закрытое перечисление видов объектов. Реестр держит по одному
// пулу на каждый вид, индексируя массив этим значением.
type Kind int

const (
	KindStructure Kind = iota
	KindAgent
	KindProjectile

	// KindCount — количество видов, размер массива пулов.
	KindCount
)

func (k Kind) String() string {
	switch k {
	case KindStructure:
		return "structure"
	case KindAgent:
		return "agent"
	case KindProjectile:
		return "projectile"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// TargetingMode — политика выбора цели для оружия.
type TargetingMode int

const (
	TargetNearest TargetingMode = iota
	TargetFurthest
	TargetWeakest
	TargetStrongest
	TargetFastest
	TargetSlowest
)

func (m TargetingMode) String() string {
	switch m {
	case TargetNearest:
		return "nearest"
	case TargetFurthest:
		return "furthest"
	case TargetWeakest:
		return "weakest"
	case TargetStrongest:
		return "strongest"
	case TargetFastest:
		return "fastest"
	case TargetSlowest:
		return "slowest"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseTargetingMode разбирает строку из настроек в режим прицеливания.
func ParseTargetingMode(s string) (TargetingMode, error) {
	switch s {
	case "nearest":
		return TargetNearest, nil
	case "furthest":
		return TargetFurthest, nil
	case "weakest":
		return TargetWeakest, nil
	case "strongest":
		return TargetStrongest, nil
	case "fastest":
		return TargetFastest, nil
	case "slowest":
		return TargetSlowest, nil
	}
	return TargetNearest, fmt.Errorf("unknown targeting mode %q", s)
}
