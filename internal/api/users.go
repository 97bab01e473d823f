// File: internal/api/users.go
package api

// swagger:model api.UpdateRoleRequest
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required" example:"admin"`
}

// Pagination 使用者列表的分頁資訊
// swagger:model api.Pagination
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalUsers  int  `json:"totalUsers"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// UserListData 分頁後的使用者列表
// swagger:model api.UserListData
type UserListData struct {
	Users      []UserResponse `json:"users"`
	Pagination Pagination     `json:"pagination"`
}
