package request

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=customer barber admin"`
}
