// Package service contains the business logic.
//
// It sits between the driver and repository layers. It validates
// input, performs business operations, and calls repository methods
// to interact with the data
package service

import (
	"github.com/deppfellow/coffee-demo/internal/repository"
	"github.com/deppfellow/coffee-demo/internal/server"
)

type Services struct {
	Coffee *CoffeeService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Coffee: NewCoffeeService(repos.Coffee, s.Logger),
	}
}
