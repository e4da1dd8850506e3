package dto

type RoomAvailability struct {
	RoomID     int64  `json:"room_id"`
	RoomNumber string `json:"room_number"`
	RoomType   string `json:"room_type"`
	Available  bool   `json:"available"`
	Status     string `json:"status"`
}
