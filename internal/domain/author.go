// Package domain contains domain models for the application.
package domain

// Author is the persisted author entity. ID is assigned by the store on creation.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AuthorDTO is the transfer representation of an Author at the service boundary.
type AuthorDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AuthorRequestDTO is the request body for creating or updating an author.
// An id in the body is accepted and ignored.
type AuthorRequestDTO struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// ToDTO projects the entity onto its transfer form.
func (a Author) ToDTO() AuthorDTO {
	return AuthorDTO{ID: a.ID, Name: a.Name}
}

// ToDTO converts the request body into a transfer object.
func (r AuthorRequestDTO) ToDTO() AuthorDTO {
	return AuthorDTO{ID: r.ID, Name: r.Name}
}
