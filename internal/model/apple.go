package model

// Apple is the persisted entity. The db tags are consumed by sqlx in the relational store.
type Apple struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

// AppleDTO is the caller-facing JSON projection of an Apple.
type AppleDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AppleFromDTO copies the wire fields into an entity.
func AppleFromDTO(dto AppleDTO) Apple {
	return Apple{ID: dto.ID, Name: dto.Name}
}

// ToDTO projects the entity onto its wire shape.
func (a Apple) ToDTO() AppleDTO {
	return AppleDTO{ID: a.ID, Name: a.Name}
}
