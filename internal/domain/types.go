package domain

// Категории трекера, известные ядру. Внешние провайдеры могут добавлять свои.
const (
	CategorySpecial    = "special"
	CategoryAnimals    = "animals"
	CategoryCharacters = "characters"
)

// Звуковые подсказки
const (
	SoundBlocked   = "dwop"
	SoundDoorOpen  = "doorOpen"
	SoundDoorClose = "doorClose"
)
