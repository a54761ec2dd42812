package model

import "encoding/json"

// EventTypeMembers — единственный тип push-события, который обрабатывает стор:
// полная замена ростера.
const EventTypeMembers = "members"

// UpdateEvent описывает событие push-канала: тип данных и полезная нагрузка.
// Для type == "members" в Data лежит полный массив участников.
type UpdateEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}
