// Package users holds the AppUser entity, its partition strategy and search
// specification, and the registration/profile service.
package users

// ContainerName is the document container holding user records.
const ContainerName = "users"

// AppUser is the persisted user document. The Password field always carries
// an argon2id hash; plaintext never survives registration.
type AppUser struct {
	ID        string `json:"id"`
	UserName  string `json:"userName"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (u *AppUser) DocumentID() string      { return u.ID }
func (u *AppUser) SetDocumentID(id string) { u.ID = id }

// FullName is the display name used in token claims and mail greetings.
func (u *AppUser) FullName() string { return u.FirstName + " " + u.LastName }
