// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch or persist data,
// abstracting SQL logic away from the service layer. Queries are written
// with ? placeholders and rebound for the active driver.
package repository

import (
	"github.com/deppfellow/portfolio-backend/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Projects    *ProjectRepository
	Clients     *ClientRepository
	Contacts    *ContactRepository
	Subscribers *SubscriberRepository
}

// NewRepositories constructs the repository container on top of s.DB.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Projects:    NewProjectRepository(s.DB),
		Clients:     NewClientRepository(s.DB),
		Contacts:    NewContactRepository(s.DB),
		Subscribers: NewSubscriberRepository(s.DB),
	}
}
