package dto

// DepartmentRequest departman oluşturma/güncelleme girdisi.
type DepartmentRequest struct {
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description string  `json:"description"`
	ParentID    *string `json:"parent_id"`
	ManagerID   *string `json:"manager_id"`
}
