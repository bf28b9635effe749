package domain

type Worker struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	IsActive bool   `json:"isActive"`
}

type WorkerCreation struct {
	Name     string `json:"name" binding:"required" validate:"required,max=120"`
	Position string `json:"position" binding:"required" validate:"required,max=120"`
	IsActive bool   `json:"isActive"`
}

// WorkerPatch carries the fields to change, nil fields are left untouched.
type WorkerPatch struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Position *string `json:"position,omitempty" validate:"omitempty,min=1,max=120"`
	IsActive *bool   `json:"isActive,omitempty"`
}
