package dto

import "hotel/internal/domains/staff/model"

// StaffResponse is the public staff record. The password hash never leaves
// the service.
type StaffResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Position string `json:"position"`
	IsAdmin  bool   `json:"is_admin"`
}

func (s *StaffResponse) FromModel(staff model.Staff) {
	s.ID = staff.ID
	s.Name = staff.Name
	s.Email = staff.Email
	s.Position = staff.Position
	s.IsAdmin = staff.IsAdmin
}
