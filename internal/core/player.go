package core

import (
	"github.com/google/uuid"
)

// Player is an immutable participant identity; equality is by ID
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlayerConfig for requests at the service boundary
type PlayerConfig struct {
	ID   string `json:"id,omitempty" validate:"omitempty,uuid"`
	Name string `json:"name" validate:"required,min=1,max=32"`
}

// NewPlayer creates a Player from PlayerConfig, generating an ID when none is given
func NewPlayer(config PlayerConfig) *Player {
	id := config.ID
	if id == "" {
		id = uuid.New().String()
	}
	return &Player{
		ID:   id,
		Name: config.Name,
	}
}

func (p *Player) String() string {
	if p == nil {
		return "-"
	}
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}
