package ws

import "strings"

// TriggerPrefix — литеральный маркер обращения к ассистенту
const TriggerPrefix = "@ai"

// ParseTrigger проверяет, адресовано ли сообщение ассистенту;
// пустой остаток после маркера — не триггер
func ParseTrigger(body string) (string, bool) {
	trimmed := strings.TrimSpace(body)
	if len(trimmed) < len(TriggerPrefix) {
		return "", false
	}
	if !strings.EqualFold(trimmed[:len(TriggerPrefix)], TriggerPrefix) {
		return "", false
	}

	prompt := strings.TrimSpace(trimmed[len(TriggerPrefix):])
	if prompt == "" {
		return "", false
	}
	return prompt, true
}
