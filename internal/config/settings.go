// internal/config/settings.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings — настройки, загружаемые из settings.yaml при старте.
// Файл необязателен: при его отсутствии используются значения по умолчанию.
type Settings struct {
	Seed     int64          `yaml:"seed"` // 0 — случайный сид
	Viewport ViewportConfig `yaml:"viewport"`
	Data     DataConfig     `yaml:"data"`
	Combat   CombatSettings `yaml:"combat"`
}

type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type DataConfig struct {
	Agents  string `yaml:"agents"`
	Weapons string `yaml:"weapons"`
}

type CombatSettings struct {
	// Оружие, активное с первого кадра.
	StartingWeapons []string `yaml:"starting_weapons"`
	TargetingMode   string   `yaml:"targeting_mode"`
}

// DefaultSettings возвращает рабочую конфигурацию без файла настроек.
func DefaultSettings() Settings {
	return Settings{
		Seed: 0,
		Viewport: ViewportConfig{
			Width:  ScreenWidth,
			Height: ScreenHeight,
		},
		Data: DataConfig{
			Agents:  "assets/data/agents.json",
			Weapons: "assets/data/weapons.json",
		},
		Combat: CombatSettings{
			StartingWeapons: []string{"WEAPON_CANNON"},
			TargetingMode:   "nearest",
		},
	}
}

// LoadSettings читает settings.yaml. Отсутствующий файл — не ошибка.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse settings file: %w", err)
	}

	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return s, fmt.Errorf("settings: viewport must be positive, got %.0fx%.0f",
			s.Viewport.Width, s.Viewport.Height)
	}
	return s, nil
}
