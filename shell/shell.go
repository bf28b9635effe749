package shell

import (
	"errors"
	"sync"

	"lemonworks/client/api"
)

type Module string

const (
	ModuleProduction Module = "production"
	ModuleInventory  Module = "inventory"
	ModuleSuppliers  Module = "suppliers"
	ModuleEmployees  Module = "employees"
	ModuleMachinery  Module = "machinery"
)

var Modules = []Module{ModuleProduction, ModuleInventory, ModuleSuppliers, ModuleEmployees, ModuleMachinery}

type ThemeColor string

const (
	ColorYellow  ThemeColor = "yellow"
	ColorEmerald ThemeColor = "emerald"
	ColorIndigo  ThemeColor = "indigo"
)

type ThemeMode string

const (
	ModeLight ThemeMode = "light"
	ModeDark  ThemeMode = "dark"
)

var (
	ErrUnknownColor = errors.New("unknown theme color")
	ErrUnknownMode  = errors.New("unknown theme mode")
)

var palette = map[ThemeMode]map[ThemeColor][2]string{
	// text, background
	ModeLight: {
		ColorYellow:  {"#111827", "#fef3c7"},
		ColorEmerald: {"#065f46", "#d1fae5"},
		ColorIndigo:  {"#1e3a8a", "#c7d2fe"},
	},
	ModeDark: {
		ColorYellow:  {"#fdfdfd", "#78350f"},
		ColorEmerald: {"#fdfdfd", "#064e3b"},
		ColorIndigo:  {"#e4e4e7", "#312e81"},
	},
}

type Theme struct {
	Color       ThemeColor `json:"color"`
	Mode        ThemeMode  `json:"mode"`
	IsCollapsed bool       `json:"isCollapsed"`
	TextColor   string     `json:"textColor"`
	BgColor     string     `json:"bgColor"`
}

type State struct {
	ActiveModule Module   `json:"activeModule"`
	Modules      []Module `json:"modules"`
	Theme        Theme    `json:"theme"`
}

// Shell holds the sidebar selection and the theme shared by every screen.
type Shell struct {
	mu          sync.RWMutex
	active      Module
	color       ThemeColor
	mode        ThemeMode
	isCollapsed bool
}

func New() *Shell {
	return &Shell{active: ModuleProduction, color: ColorYellow, mode: ModeLight}
}

// Navigate switches the active module. Unknown names land on production.
func (s *Shell) Navigate(name string) Module {
	target := ModuleProduction
	for _, m := range Modules {
		if string(m) == name {
			target = m
			break
		}
	}
	s.mu.Lock()
	s.active = target
	s.mu.Unlock()
	return target
}

func (s *Shell) SetColor(color string) (Theme, error) {
	c := ThemeColor(color)
	if _, ok := palette[ModeLight][c]; !ok {
		return s.State().Theme, api.Invalid(ErrUnknownColor)
	}
	s.mu.Lock()
	s.color = c
	s.mu.Unlock()
	return s.State().Theme, nil
}

func (s *Shell) SetMode(mode string) (Theme, error) {
	m := ThemeMode(mode)
	if _, ok := palette[m]; !ok {
		return s.State().Theme, api.Invalid(ErrUnknownMode)
	}
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
	return s.State().Theme, nil
}

func (s *Shell) ToggleCollapsed() Theme {
	s.mu.Lock()
	s.isCollapsed = !s.isCollapsed
	s.mu.Unlock()
	return s.State().Theme
}

func (s *Shell) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	colors := palette[s.mode][s.color]
	return State{
		ActiveModule: s.active,
		Modules:      append([]Module{}, Modules...),
		Theme: Theme{
			Color:       s.color,
			Mode:        s.mode,
			IsCollapsed: s.isCollapsed,
			TextColor:   colors[0],
			BgColor:     colors[1],
		},
	}
}
