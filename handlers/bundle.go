package handlers

import (
	userRepo "medibook/database/repository/user"
)

// HandlerBundle aggregates every HTTP handler so route registration takes a
// single dependency. UserRepo is carried for the auth middleware.
type HandlerBundle struct {
	Payment   *PaymentHandler
	Booking   *BookingHandler
	Directory *DirectoryHandler
	User      *UserHandler
	Logo      *LogoHandler

	UserRepo userRepo.UserRepository
}
