package dto

// CreateUserRequest is the admin-side variant of RegisterRequest.
type CreateUserRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	FavoriteColor string `json:"favoriteColor"`
	Birthday      string `json:"birthday"`
	PhoneNumber   string `json:"phoneNumber"`
	Role          string `json:"role"`
}

type UpdateUserRequest struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	Email          *string `json:"email"`
	Password       *string `json:"password"`
	FavoriteColor  *string `json:"favoriteColor"`
	Birthday       *string `json:"birthday"`
	PhoneNumber    *string `json:"phoneNumber"`
	ProfilePicture *string `json:"profilePicture"`
}

func (r *UpdateUserRequest) Empty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Email == nil && r.Password == nil &&
		r.FavoriteColor == nil && r.Birthday == nil && r.PhoneNumber == nil && r.ProfilePicture == nil
}
