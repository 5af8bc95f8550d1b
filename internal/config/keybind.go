package config

import (
	"strings"
)

// Keybind - список альтернативных сочетаний: "LeftControl+G, F5" означает
// "G при зажатом LeftControl, или F5". Имена кнопок сравниваются без учета регистра.
type Keybind struct {
	combos [][]string
}

// ParseKeybind разбирает строку сочетаний. Пустая строка - привязки нет.
func ParseKeybind(s string) Keybind {
	var kb Keybind
	for _, alt := range strings.Split(s, ",") {
		var combo []string
		for _, button := range strings.Split(alt, "+") {
			button = strings.TrimSpace(button)
			if button != "" {
				combo = append(combo, button)
			}
		}
		if len(combo) > 0 {
			kb.combos = append(kb.combos, combo)
		}
	}
	return kb
}

// UnmarshalText позволяет env читать Keybind напрямую из переменной окружения.
func (k *Keybind) UnmarshalText(text []byte) error {
	*k = ParseKeybind(string(text))
	return nil
}

func (k Keybind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k Keybind) String() string {
	alts := make([]string, 0, len(k.combos))
	for _, combo := range k.combos {
		alts = append(alts, strings.Join(combo, "+"))
	}
	return strings.Join(alts, ", ")
}

func (k Keybind) Empty() bool { return len(k.combos) == 0 }

// JustPressed - button только что нажата и завершает одно из сочетаний,
// остальные кнопки которого уже зажаты.
func (k Keybind) JustPressed(button string, held func(string) bool) bool {
	for _, combo := range k.combos {
		if !containsButton(combo, button) {
			continue
		}
		ok := true
		for _, other := range combo {
			if strings.EqualFold(other, button) {
				continue
			}
			if !held(other) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// IsDown - одно из сочетаний зажато целиком.
func (k Keybind) IsDown(held func(string) bool) bool {
	for _, combo := range k.combos {
		ok := true
		for _, b := range combo {
			if !held(b) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// Contains - кнопка входит хотя бы в одно сочетание.
func (k Keybind) Contains(button string) bool {
	for _, combo := range k.combos {
		if containsButton(combo, button) {
			return true
		}
	}
	return false
}

func containsButton(combo []string, button string) bool {
	for _, b := range combo {
		if strings.EqualFold(b, button) {
			return true
		}
	}
	return false
}
