package entity

import "time"

// Department şirket içindeki bir birim; ParentID ile hiyerarşi kurulabilir.
type Department struct {
	ID          string    `json:"id" bson:"_id"`
	CompanyID   string    `json:"company_id" bson:"company_id"`
	Name        string    `json:"name" bson:"name"`
	Code        string    `json:"code" bson:"code"`
	Description string    `json:"description" bson:"description"`
	ParentID    *string   `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	ManagerID   *string   `json:"manager_id,omitempty" bson:"manager_id,omitempty"` // employee id
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
