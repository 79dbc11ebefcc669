package types

// UserResponse is the profile shape returned by the auth endpoints. The
// password hash never leaves the persistence layer.
type UserResponse struct {
	ID          uint     `json:"id"`
	FullName    string   `json:"full_name"`
	Email       string   `json:"email"`
	Institution string   `json:"institution"`
	Department  string   `json:"department"`
	Year        string   `json:"year"`
	Skills      []string `json:"skills"`
	LinkedinURL string   `json:"linkedin_url,omitempty"`
	ProfilePic  string   `json:"profile_pic,omitempty"`
}
